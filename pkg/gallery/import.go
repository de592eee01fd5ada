package gallery

import (
	"encoding/json"
	"io"
	"os"

	"github.com/fernvale/mosaic/pkg/errors"
)

// ReadJSON decodes a JSON gallery from r.
//
// The input must be a JSON object with a "photos" array:
//
//	{
//	  "photos": [
//	    {"id": "a", "width": 800, "height": 600},
//	    {"id": "b", "width": 400, "height": 500}
//	  ]
//	}
//
// Each photo must have an "id" and positive "width" and "height".
// Optional fields:
//   - title: display title (defaults to the ID)
//   - url: image location, carried through to rendered output
//   - meta: object with arbitrary key-value pairs
//
// ReadJSON returns an error if the JSON is malformed, a photo fails
// validation, or two photos share an ID. Errors carry structured codes:
// use errors.Is to check for ErrCodeInvalidGallery.
//
// The returned Gallery is independent of r and can be modified safely
// after ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (Gallery, error) {
	var g Gallery
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Gallery{}, errors.Wrap(errors.ErrCodeInvalidGallery, err, "decode gallery")
	}
	if err := g.Validate(); err != nil {
		return Gallery{}, err
	}
	return g, nil
}

// ImportJSON reads a JSON gallery file at path.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. It returns the same validation errors as [ReadJSON] for malformed
// galleries.
func ImportJSON(path string) (Gallery, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Gallery{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Gallery{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
