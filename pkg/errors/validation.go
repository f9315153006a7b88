package errors

import (
	"strings"
	"unicode"
)

// MaxTargetWidth bounds the resize target so a hostile width cannot force
// the mapper to allocate unbounded output. 10k columns is already far past
// anything a terminal or text file viewer can usefully display.
const MaxTargetWidth = 10000

// ValidateImagePath validates an input image path.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No null bytes or control characters
//   - Maximum length of 4096 characters
//
// Existence is not checked here; the loader reports FILE_NOT_FOUND when the
// path does not resolve to a readable file.
func ValidateImagePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "image path cannot be empty")
	}

	if len(path) > 4096 {
		return New(ErrCodeInvalidPath, "image path too long (max 4096 characters)")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "image path contains invalid characters")
		}
	}

	return nil
}

// ValidateOutputFileName validates an output file name.
// It ensures the name is a simple basename without path components, so the
// output file always lands inside the configured output directory.
func ValidateOutputFileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "output file name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "output file name cannot contain path separators")
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "output file name cannot be a directory reference")
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output file name contains invalid characters")
		}
	}

	return nil
}

// ValidateTargetWidth validates the resize target width.
func ValidateTargetWidth(width int) error {
	if width < 1 {
		return New(ErrCodeInvalidWidth, "target width must be positive, got %d", width)
	}
	if width > MaxTargetWidth {
		return New(ErrCodeInvalidWidth, "target width too large (max %d), got %d", MaxTargetWidth, width)
	}
	return nil
}
