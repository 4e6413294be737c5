package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "no cause",
			err:  New(ErrCodeInvalidDocument, "top level value is %s", "an object"),
			want: "INVALID_DOCUMENT: top level value is an object",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "open %s", "approach.vnav"),
			want: "FILE_NOT_FOUND: open approach.vnav: file does not exist",
		},
		{
			name: "literal percent",
			err:  New(ErrCodeInvalidInput, "100%% sure"),
			want: "INVALID_INPUT: 100% sure",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "open diagram")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false")
	}
	if errors.Unwrap(err) != fs.ErrNotExist {
		t.Errorf("Unwrap() = %v", errors.Unwrap(err))
	}
}

func TestCodeLookup(t *testing.T) {
	inner := New(ErrCodeAnchorNotFound, "anchor %q", "fix")
	tests := []struct {
		name    string
		err     error
		code    Code
		message string
	}{
		{"direct", inner, ErrCodeAnchorNotFound, `anchor "fix"`},
		{"fmt wrapped", fmt.Errorf("resolve leg: %w", inner), ErrCodeAnchorNotFound, `anchor "fix"`},
		{"outermost wins", Wrap(ErrCodeInvalidDocument, inner, "check"), ErrCodeInvalidDocument, "check"},
		{"plain", errors.New("disk full"), "", "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(err, %s) = false", tt.code)
			}
			if Is(tt.err, ErrCodeUnsupported) {
				t.Error("Is(err, UNSUPPORTED) = true")
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestNilError(t *testing.T) {
	if Is(nil, ErrCodeInvalidInput) {
		t.Error("Is(nil) = true")
	}
	if GetCode(nil) != "" {
		t.Errorf("GetCode(nil) = %q", GetCode(nil))
	}
}
