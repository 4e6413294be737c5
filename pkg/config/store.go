package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/vnav/pkg/errors"
)

const appName = "vnav"

// DefaultPath returns the settings file path following the XDG convention.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Store reads and writes one settings file.
type Store struct {
	Path string
}

// Exists reports whether the settings file exists.
func (s Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Load reads the settings file on top of [Defaults]. A missing file yields
// the defaults. Unknown keys are rejected so that typos do not pass
// silently.
func (s Store) Load() (Settings, error) {
	out := Defaults()

	raw, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return out, nil
	}
	if err != nil {
		return out, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", s.Path)
	}

	md, err := toml.Decode(string(raw), &out)
	if err != nil {
		return Defaults(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", s.Path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Defaults(), errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", s.Path, strings.Join(keys, ", "))
	}
	if err := out.Validate(); err != nil {
		return Defaults(), err
	}
	return out, nil
}

// Save validates settings and replaces the file atomically, creating its
// directory if needed.
func (s Store) Save(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(settings); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode settings")
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "create %s", dir)
	}
	f, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "write %s", s.Path)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "write %s", s.Path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "write %s", s.Path)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "write %s", s.Path)
	}
	return nil
}
