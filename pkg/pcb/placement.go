package pcb

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"

	"github.com/matzehuels/boardfit/pkg/errors"
	"github.com/matzehuels/boardfit/pkg/geometry"
)

// Placement is a full board assignment: the board plus the placed
// components. It is a plain value; validity is a separate question
// answered by pcb/constraint.
type Placement struct {
	Board      Board       `json:"board" bson:"board"`
	Components []Component `json:"components" bson:"components"`
}

// NewPlacement builds a placement on the given board.
func NewPlacement(b Board, components ...Component) Placement {
	return Placement{Board: b, Components: components}
}

// Get returns the component of the given kind, if present.
// With duplicates the first occurrence wins.
func (p Placement) Get(k Kind) (Component, bool) {
	for _, c := range p.Components {
		if c.Kind == k {
			return c, true
		}
	}
	return Component{}, false
}

// Rects returns the occupied areas of all components, in placement order.
func (p Placement) Rects() []geometry.Rect {
	rects := make([]geometry.Rect, len(p.Components))
	for i, c := range p.Components {
		rects[i] = c.Rect()
	}
	return rects
}

// Complete checks that the placement contains exactly one component of
// each catalog kind and nothing else. It returns a MALFORMED_PLACEMENT
// error naming the offending kinds otherwise.
func (p Placement) Complete() error {
	counts := make(map[Kind]int, len(p.Components))
	var unknown []string
	for _, c := range p.Components {
		if !c.Kind.Valid() {
			unknown = append(unknown, string(c.Kind))
			continue
		}
		counts[c.Kind]++
	}

	var missing, duplicated []string
	for _, k := range Kinds() {
		switch counts[k] {
		case 0:
			missing = append(missing, string(k))
		case 1:
		default:
			duplicated = append(duplicated, string(k))
		}
	}

	if len(missing) == 0 && len(duplicated) == 0 && len(unknown) == 0 {
		return nil
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}
	if len(duplicated) > 0 {
		parts = append(parts, "duplicated "+strings.Join(duplicated, ", "))
	}
	if len(unknown) > 0 {
		parts = append(parts, "unknown "+strings.Join(unknown, ", "))
	}
	return errors.New(errors.ErrCodeMalformedPlacement, "placement components: %s", strings.Join(parts, "; "))
}

// Normalized returns a copy with components sorted into canonical kind
// order, so that equivalent placements marshal to identical bytes.
func (p Placement) Normalized() Placement {
	order := make(map[Kind]int, len(footprints))
	for i, k := range Kinds() {
		order[k] = i
	}
	components := slices.Clone(p.Components)
	slices.SortStableFunc(components, func(a, b Component) int {
		ra, ok := order[a.Kind]
		if !ok {
			ra = len(order)
		}
		rb, ok := order[b.Kind]
		if !ok {
			rb = len(order)
		}
		return ra - rb
	})
	p.Components = components
	return p
}

// MarshalPlacement serializes a placement to JSON.
func MarshalPlacement(p Placement) ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalPlacement parses placement JSON.
func UnmarshalPlacement(data []byte) (Placement, error) {
	var p Placement
	if err := json.Unmarshal(data, &p); err != nil {
		return Placement{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse placement")
	}
	return p, nil
}

// Hash returns the content hash of the placement in canonical order.
// Equal placements hash equally regardless of component order.
func (p Placement) Hash() string {
	data, _ := MarshalPlacement(p.Normalized())
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
