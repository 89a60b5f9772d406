package pcb

import (
	"strings"
	"testing"

	"github.com/matzehuels/boardfit/pkg/errors"
)

// fullSet returns one component of each kind at distinct positions.
func fullSet() []Component {
	return []Component{
		{Kind: KindUSB, X: 22, Y: 0},
		{Kind: KindMicro, X: 23, Y: 36},
		{Kind: KindCrystal, X: 28, Y: 36},
		{Kind: KindMikroBus1, X: 0, Y: 20, Rotation: RotationQuarter},
		{Kind: KindMikroBus2, X: 35, Y: 20, Rotation: RotationQuarter},
	}
}

func TestPlacementGet(t *testing.T) {
	p := NewPlacement(DefaultBoard(), fullSet()...)

	c, ok := p.Get(KindCrystal)
	if !ok {
		t.Fatal("Get(KindCrystal) not found")
	}
	if c.X != 28 || c.Y != 36 {
		t.Errorf("Get(KindCrystal) = (%v, %v), want (28, 36)", c.X, c.Y)
	}

	if _, ok := NewPlacement(DefaultBoard()).Get(KindUSB); ok {
		t.Error("Get on empty placement found a component")
	}
}

func TestPlacementGetFirstWins(t *testing.T) {
	p := NewPlacement(DefaultBoard(),
		Component{Kind: KindUSB, X: 1},
		Component{Kind: KindUSB, X: 2},
	)

	c, ok := p.Get(KindUSB)
	if !ok || c.X != 1 {
		t.Errorf("Get() = (%v, %v), want first occurrence at X=1", c.X, ok)
	}
}

func TestPlacementComplete(t *testing.T) {
	tests := []struct {
		name       string
		components []Component
		wantErr    bool
		contains   string
	}{
		{
			name:       "full set",
			components: fullSet(),
			wantErr:    false,
		},
		{
			name:       "missing crystal",
			components: fullSet()[:2],
			wantErr:    true,
			contains:   "missing crystal",
		},
		{
			name:       "duplicated usb",
			components: append(fullSet(), Component{Kind: KindUSB, X: 40, Y: 40}),
			wantErr:    true,
			contains:   "duplicated usb_connector",
		},
		{
			name:       "unknown kind",
			components: append(fullSet(), Component{Kind: "resistor"}),
			wantErr:    true,
			contains:   "unknown resistor",
		},
		{
			name:       "empty",
			components: nil,
			wantErr:    true,
			contains:   "missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlacement(DefaultBoard(), tt.components...)
			err := p.Complete()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Complete() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, errors.ErrCodeMalformedPlacement) {
				t.Errorf("Complete() code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedPlacement)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Complete() = %q, want substring %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestPlacementNormalized(t *testing.T) {
	shuffled := []Component{
		{Kind: KindMikroBus2, X: 35, Y: 20, Rotation: RotationQuarter},
		{Kind: KindCrystal, X: 28, Y: 36},
		{Kind: KindUSB, X: 22, Y: 0},
		{Kind: KindMikroBus1, X: 0, Y: 20, Rotation: RotationQuarter},
		{Kind: KindMicro, X: 23, Y: 36},
	}

	got := NewPlacement(DefaultBoard(), shuffled...).Normalized()
	for i, k := range Kinds() {
		if got.Components[i].Kind != k {
			t.Errorf("Normalized()[%d].Kind = %v, want %v", i, got.Components[i].Kind, k)
		}
	}

	// The receiver is untouched.
	p := NewPlacement(DefaultBoard(), shuffled...)
	p.Normalized()
	if p.Components[0].Kind != KindMikroBus2 {
		t.Error("Normalized() mutated the receiver")
	}
}

func TestPlacementHash(t *testing.T) {
	a := NewPlacement(DefaultBoard(), fullSet()...)

	reversed := fullSet()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	b := NewPlacement(DefaultBoard(), reversed...)

	if a.Hash() != b.Hash() {
		t.Error("Hash() differs for reordered but equal placements")
	}

	moved := fullSet()
	moved[1].X += 1
	c := NewPlacement(DefaultBoard(), moved...)
	if a.Hash() == c.Hash() {
		t.Error("Hash() equal for different placements")
	}
}

func TestUnmarshalPlacement(t *testing.T) {
	p := NewPlacement(DefaultBoard(), fullSet()...)
	data, err := MarshalPlacement(p)
	if err != nil {
		t.Fatalf("MarshalPlacement() error = %v", err)
	}

	got, err := UnmarshalPlacement(data)
	if err != nil {
		t.Fatalf("UnmarshalPlacement() error = %v", err)
	}
	if len(got.Components) != 5 || got.Board != p.Board {
		t.Errorf("UnmarshalPlacement() = %+v, want %+v", got, p)
	}

	if _, err := UnmarshalPlacement([]byte("{not json")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("UnmarshalPlacement(bad) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}
