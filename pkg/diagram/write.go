package diagram

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/vnav/pkg/drawing"
	"github.com/matzehuels/vnav/pkg/errors"
)

// Write encodes m as a pretty-printed JSON array sorted by drawing ID.
// The output parses back into an equal map.
func Write(w io.Writer, m drawing.Map) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m.Sorted()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Export writes m to path. The file is replaced atomically, so a failed
// export never leaves a truncated diagram behind.
func Export(path string, m drawing.Map) error {
	if err := errors.ValidateDiagramPath(path); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".vnav-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
