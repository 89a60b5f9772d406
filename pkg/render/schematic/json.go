package schematic

import (
	"encoding/json"

	"github.com/matzehuels/boardfit/pkg/pcb"
	"github.com/matzehuels/boardfit/pkg/pcb/constraint"
	"github.com/matzehuels/boardfit/pkg/pcb/score"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	report *constraint.Report
	score  *score.Breakdown
	seed   uint64
	seeded bool
}

// WithJSONReport includes the validation report in the JSON output.
func WithJSONReport(rep constraint.Report) JSONOption {
	return func(r *jsonRenderer) { r.report = &rep }
}

// WithJSONScore includes the score breakdown in the JSON output.
func WithJSONScore(s score.Breakdown) JSONOption {
	return func(r *jsonRenderer) { r.score = &s }
}

// WithJSONSeed records the solver seed in the JSON output, enabling
// reproducible re-solving.
func WithJSONSeed(seed uint64) JSONOption {
	return func(r *jsonRenderer) { r.seed = seed; r.seeded = true }
}

type jsonOutput struct {
	Placement pcb.Placement      `json:"placement"`
	Report    *constraint.Report `json:"report,omitempty"`
	Score     *score.Breakdown   `json:"score,omitempty"`
	Seed      *uint64            `json:"seed,omitempty"`
}

// RenderJSON exports the placement and associated results as a
// pretty-printed JSON document. Components are written in canonical
// catalog order; the document round-trips through the io package's
// placement readers.
//
// RenderJSON returns an error only if JSON marshaling fails, which does
// not happen for well-formed placements.
func RenderJSON(p pcb.Placement, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Placement: p.Normalized(),
		Report:    r.report,
		Score:     r.score,
	}
	if r.seeded {
		out.Seed = &r.seed
	}

	return json.MarshalIndent(out, "", "  ")
}
