package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// DiagramExtensions lists the file extensions accepted when opening a diagram.
var DiagramExtensions = []string{".vnav", ".json"}

// ValidateDiagramPath checks that path names a diagram file vnav can open.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be .vnav or .json (case-insensitive)
func ValidateDiagramPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, ok := range DiagramExtensions {
		if ext == ok {
			return nil
		}
	}
	return New(ErrCodeInvalidPath, "unsupported file extension %q (want %s)", ext, strings.Join(DiagramExtensions, " or "))
}

// ValidateDrawingID checks that id can key a drawing in a diagram.
// IDs must be non-empty and free of control characters so they render
// cleanly in error lists.
func ValidateDrawingID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDrawing, "drawing id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidDrawing, "drawing id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDrawing, "drawing id contains invalid control characters")
		}
	}
	return nil
}
