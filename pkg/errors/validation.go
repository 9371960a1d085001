package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateFieldName rejects accessor field names that cannot appear in a
// loaded dataset header.
func ValidateFieldName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "field name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidConfig, "field name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "field name %q contains control characters", name)
		}
	}
	return nil
}

// ValidateDimensions checks a container size. Both sides must be finite and positive.
func ValidateDimensions(width, height float64) error {
	if !finite(width) || !finite(height) || width <= 0 || height <= 0 {
		return New(ErrCodeInvalidConfig, "invalid dimensions %vx%v", width, height)
	}
	return nil
}

// ValidateFraction checks that v lies in [0,1).
func ValidateFraction(name string, v float64) error {
	if !finite(v) || v < 0 || v >= 1 {
		return New(ErrCodeInvalidConfig, "%s must be in [0,1), got %v", name, v)
	}
	return nil
}

// ValidatePath validates an input or output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains null bytes")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
