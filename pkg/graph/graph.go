package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/adroutes/pkg/errors"
)

// =============================================================================
// Diagram Serialization API
// =============================================================================

// MarshalDiagram converts a diagram to indented JSON bytes.
func MarshalDiagram(d Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDiagram(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDiagramFile writes a diagram to a JSON file.
// The file is created with 0644 permissions.
func WriteDiagramFile(d Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteDiagram(d, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// WriteDiagram writes a diagram as JSON to an io.Writer.
func WriteDiagram(d Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadDiagram decodes and validates a JSON diagram.
func ReadDiagram(r io.Reader) (Diagram, error) {
	var d Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Diagram{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode diagram")
	}
	if err := d.Validate(); err != nil {
		return Diagram{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid diagram")
	}
	return d, nil
}

// ReadDiagramFile reads a JSON diagram from path.
func ReadDiagramFile(path string) (Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return Diagram{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadDiagram(f)
}
