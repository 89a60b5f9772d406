package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/boardfit/pkg/errors"
	"github.com/matzehuels/boardfit/pkg/pcb"
)

// ReadJSON decodes a placement document from r.
//
// The input must be a JSON object with a "board" object and a "components"
// array; see the package documentation for the full format. ReadJSON returns
// an INVALID_INPUT error if the JSON is malformed.
//
// ReadJSON does not check completeness or design rules. Run the returned
// placement through the constraint validator for that. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (pcb.Placement, error) {
	var p pcb.Placement
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return pcb.Placement{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse placement")
	}
	return p, nil
}

// ImportJSON reads a placement file at path.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (pcb.Placement, error) {
	f, err := os.Open(path)
	if err != nil {
		return pcb.Placement{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
