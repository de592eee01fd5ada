package errors

import (
	"strings"
	"unicode"
)

// ValidateBand validates a target row-aspect band.
// Both bounds must be positive and min must be strictly below max.
func ValidateBand(min, max float64) error {
	if min <= 0 {
		return New(ErrCodeInvalidConfig, "band min must be positive, got %g", min)
	}
	if max <= 0 {
		return New(ErrCodeInvalidConfig, "band max must be positive, got %g", max)
	}
	if min >= max {
		return New(ErrCodeInvalidConfig, "band min %g must be below band max %g", min, max)
	}
	return nil
}

// ValidateContainerWidth validates the layout container width.
func ValidateContainerWidth(width int) error {
	if width <= 0 {
		return New(ErrCodeInvalidConfig, "container width must be positive, got %d", width)
	}
	return nil
}

// ValidateAspectRatio validates an item aspect ratio.
func ValidateAspectRatio(aspect float64) error {
	if aspect <= 0 {
		return New(ErrCodeInvalidItem, "aspect ratio must be positive, got %g", aspect)
	}
	return nil
}

// ValidateDimensions validates native pixel dimensions of a photo.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidItem, "dimensions must be positive, got %dx%d", width, height)
	}
	return nil
}

// ValidatePhotoID validates a photo identifier for safety and correctness.
// IDs end up in cache keys, SVG element IDs, and store documents, so the
// validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 256 characters
func ValidatePhotoID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItem, "photo id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidItem, "photo id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItem, "photo id contains invalid control characters")
		}
	}

	return nil
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
