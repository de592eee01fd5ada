package gallery

import (
	"encoding/json"
	"io"
	"os"

	"github.com/fernvale/mosaic/pkg/errors"
)

// WriteJSON encodes a gallery as indented JSON and writes it to w.
// This format can be re-imported with [ReadJSON] for round-trip
// processing.
func WriteJSON(g Gallery, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode gallery")
	}
	return nil
}

// ExportJSON writes a gallery to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g Gallery, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
