package pipeline

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boardfit/pkg/cache"
	"github.com/matzehuels/boardfit/pkg/pcb"
	"github.com/matzehuels/boardfit/pkg/pcb/constraint"
	"github.com/matzehuels/boardfit/pkg/pcb/score"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func seedPtr(v uint64) *uint64 {
	return &v
}

// checkedPlacement returns a placement that satisfies every rule,
// together with its report and score.
func checkedPlacement(t *testing.T) (pcb.Placement, constraint.Report, score.Breakdown) {
	t.Helper()
	p := pcb.NewPlacement(pcb.DefaultBoard(),
		pcb.Component{Kind: pcb.KindMikroBus1, X: 0, Y: 20, Rotation: pcb.RotationQuarter},
		pcb.Component{Kind: pcb.KindMikroBus2, X: 35, Y: 20, Rotation: pcb.RotationQuarter},
		pcb.Component{Kind: pcb.KindUSB, X: 22, Y: 0},
		pcb.Component{Kind: pcb.KindMicro, X: 23, Y: 36},
		pcb.Component{Kind: pcb.KindCrystal, X: 28, Y: 36},
	)
	rep, err := constraint.Validate(p, pcb.DefaultConstraints())
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !rep.Valid {
		t.Fatalf("Fixture should satisfy every rule: %+v", rep.Failed())
	}
	return p, rep, score.Compute(p)
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil {
		t.Error("Cache should default to a null cache")
	}
	if r.Keyer == nil {
		t.Error("Keyer should default to the standard keyer")
	}
	if r.Logger == nil {
		t.Error("Logger should have a default")
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	opts := Options{
		Seed:    seedPtr(1),
		Formats: []string{FormatJSON},
	}

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.PlacementHash == "" {
		t.Error("Result should carry the placement hash")
	}
	if len(res.Placement.Components) != len(pcb.Kinds()) {
		t.Errorf("Placement should have %d components, got %d", len(pcb.Kinds()), len(res.Placement.Components))
	}
	if !res.Report.Valid {
		t.Errorf("Solved placement should satisfy every rule: %+v", res.Report.Failed())
	}
	if res.Score.Total <= 0 {
		t.Errorf("Score should be positive, got %g", res.Score.Total)
	}
	if len(res.Artifacts[FormatJSON]) == 0 {
		t.Error("Result should carry the JSON artifact")
	}
	if !res.Stats.Seeded || res.Stats.Seed != 1 {
		t.Errorf("Stats should report seed 1, got %+v", res.Stats)
	}
	if res.Stats.Frames == 0 || res.Stats.Candidates == 0 {
		t.Errorf("Stats should count search work, got %+v", res.Stats)
	}
	if res.CacheInfo.SolveHit || res.CacheInfo.RenderHit {
		t.Error("Null cache should never report hits")
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	opts := Options{Formats: []string{"gif"}}

	if _, err := r.Execute(context.Background(), opts); err == nil {
		t.Error("Invalid format should fail before solving")
	}
}

func TestRunnerSolveCachesSeededRuns(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(fc, nil, quietLogger())
	opts := Options{Seed: seedPtr(1)}

	first, stats, hit, err := r.SolveWithCacheInfo(context.Background(), opts)
	if err != nil {
		t.Fatalf("First solve error: %v", err)
	}
	if hit {
		t.Error("First solve should miss the cache")
	}
	if stats.Frames == 0 {
		t.Error("First solve should do search work")
	}

	second, stats, hit, err := r.SolveWithCacheInfo(context.Background(), opts)
	if err != nil {
		t.Fatalf("Second solve error: %v", err)
	}
	if !hit {
		t.Error("Second solve should hit the cache")
	}
	if stats.Frames != 0 {
		t.Error("Cached solve should not report search work")
	}
	if first.Hash() != second.Hash() {
		t.Error("Cached placement should match the computed one")
	}
}

func TestRunnerUnseededSolveNotCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(fc, nil, quietLogger())

	for i := 0; i < 2; i++ {
		_, _, hit, err := r.SolveWithCacheInfo(context.Background(), Options{})
		if err != nil {
			t.Fatalf("Solve %d error: %v", i, err)
		}
		if hit {
			t.Errorf("Unseeded solve %d should never hit the cache", i)
		}
	}
}

func TestRunnerCheck(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	p, _, _ := checkedPlacement(t)

	rep, breakdown, err := r.Check(context.Background(), p, Options{})
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if !rep.Valid {
		t.Errorf("Placement should satisfy every rule: %+v", rep.Failed())
	}
	if breakdown.Total <= 0 {
		t.Errorf("Score should be positive, got %g", breakdown.Total)
	}
}

func TestRunnerRenderCachesArtifacts(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(fc, nil, quietLogger())
	p, rep, breakdown := checkedPlacement(t)
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	first, hit, err := r.RenderWithCacheInfo(context.Background(), p, rep, breakdown, opts)
	if err != nil {
		t.Fatalf("First render error: %v", err)
	}
	if hit {
		t.Error("First render should miss the cache")
	}
	if len(first) != 2 {
		t.Errorf("Render should produce 2 artifacts, got %d", len(first))
	}

	second, hit, err := r.RenderWithCacheInfo(context.Background(), p, rep, breakdown, opts)
	if err != nil {
		t.Fatalf("Second render error: %v", err)
	}
	if !hit {
		t.Error("Second render should hit the cache")
	}
	for format, data := range first {
		if !bytes.Equal(data, second[format]) {
			t.Errorf("Cached %s artifact should match the rendered one", format)
		}
	}
}

func TestRunnerRenderDifferentConstraintsDifferentArtifacts(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	r := NewRunner(fc, nil, quietLogger())
	p, rep, breakdown := checkedPlacement(t)

	if _, _, err := r.RenderWithCacheInfo(context.Background(), p, rep, breakdown, Options{Formats: []string{FormatSVG}}); err != nil {
		t.Fatalf("First render error: %v", err)
	}

	opts := Options{Formats: []string{FormatSVG}, ProximityRadius: 15}
	_, hit, err := r.RenderWithCacheInfo(context.Background(), p, rep, breakdown, opts)
	if err != nil {
		t.Fatalf("Second render error: %v", err)
	}
	if hit {
		t.Error("Changed rule parameters should key a fresh artifact")
	}
}
