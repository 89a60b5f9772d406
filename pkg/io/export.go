package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/boardfit/pkg/pcb"
)

// WriteJSON encodes a placement as JSON and writes it to w.
// Components are written in canonical catalog order, the output is indented,
// and a trailing newline is appended. The format can be re-imported with
// [ReadJSON] for round-trip processing.
func WriteJSON(p pcb.Placement, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p.Normalized()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a placement to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(p pcb.Placement, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(p, f)
}
