package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/versionforge/pkg/errors"
)

// Write encodes m in the given format and writes it to w.
// The output can be re-imported with [Read] for round-trip processing.
func Write(w io.Writer, m *Manifest, format Format) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(m)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(m)
		if err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(m)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest format %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s manifest", format)
	}
	return nil
}

// Export writes m to path in the format implied by its extension.
// This is a convenience wrapper around [Write] for file-based output.
func Export(path string, m *Manifest) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	if err := Write(f, m, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
