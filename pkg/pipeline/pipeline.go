// Package pipeline provides the core placement pipeline for Boardfit.
//
// This package implements the complete solve → check → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Solve: Search for a placement that satisfies all design rules
//  2. Check: Validate the placement and compute its score
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	seed := uint64(42)
//	opts := pipeline.Options{
//	    Seed:    &seed,
//	    VizType: "schematic",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Solve only
//	p, stats, err := runner.Solve(ctx, opts)
//
//	// Check an existing placement
//	report, breakdown, err := runner.Check(ctx, p, opts)
//
//	// Render an existing placement
//	artifacts, err := runner.Render(ctx, p, report, breakdown, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boardfit/pkg/cache"
	"github.com/matzehuels/boardfit/pkg/errors"
	"github.com/matzehuels/boardfit/pkg/geometry"
	"github.com/matzehuels/boardfit/pkg/pcb"
	"github.com/matzehuels/boardfit/pkg/pcb/constraint"
	"github.com/matzehuels/boardfit/pkg/pcb/place"
	"github.com/matzehuels/boardfit/pkg/pcb/score"
	"github.com/matzehuels/boardfit/pkg/render/schematic"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Visualization types.
const (
	VizTypeSchematic   = "schematic"
	VizTypeConstraints = "constraints"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeSchematic

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the placement pipeline.
// This struct supports JSON serialization for API requests and BSON for
// stored records. Zero values mean "use the default"; durations
// serialize as nanoseconds.
type Options struct {
	// Solve options
	Seed     *uint64       `json:"seed,omitempty" bson:"seed,omitempty"`
	Budget   time.Duration `json:"budget,omitempty" bson:"budget,omitempty"`
	Margin   time.Duration `json:"margin,omitempty" bson:"margin,omitempty"`
	Attempts int           `json:"attempts,omitempty" bson:"attempts,omitempty"`

	// Board and rule options
	BoardWidth      float64 `json:"board_width,omitempty" bson:"board_width,omitempty"`
	BoardHeight     float64 `json:"board_height,omitempty" bson:"board_height,omitempty"`
	ProximityRadius float64 `json:"proximity_radius,omitempty" bson:"proximity_radius,omitempty"`
	BalanceRadius   float64 `json:"balance_radius,omitempty" bson:"balance_radius,omitempty"`
	KeepOutWidth    float64 `json:"keepout_width,omitempty" bson:"keepout_width,omitempty"`
	KeepOutDepth    float64 `json:"keepout_depth,omitempty" bson:"keepout_depth,omitempty"`

	// Render options
	VizType    string   `json:"viz_type,omitempty" bson:"viz_type,omitempty"`
	Formats    []string `json:"formats,omitempty" bson:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty" bson:"scale,omitempty"`
	NoGrid     bool     `json:"no_grid,omitempty" bson:"no_grid,omitempty"`
	NoOverlays bool     `json:"no_overlays,omitempty" bson:"no_overlays,omitempty"`
	Title      string   `json:"title,omitempty" bson:"title,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger                                         `json:"-" bson:"-"`
	Progress func(frames, candidates int, elapsed time.Duration) `json:"-" bson:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-" bson:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Placement is the solved placement.
	Placement pcb.Placement

	// PlacementHash is the content hash of the placement.
	PlacementHash string

	// Report is the validation report.
	Report constraint.Report

	// Score is the score breakdown (lower is better).
	Score score.Breakdown

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and search information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Seed       uint64
	Seeded     bool
	Topologies int
	Frames     int
	Candidates int
	SolveTime  time.Duration
	CheckTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
// The check stage is pure and always recomputed, so it has no entry.
type CacheInfo struct {
	SolveHit  bool // Whether the placement came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// setBoardDefaults sets default board dimensions and rule parameters.
// Both stages need them: the solver searches under the rules, the
// renderer draws overlays sized by them.
func (o *Options) setBoardDefaults() {
	board := pcb.DefaultBoard()
	if o.BoardWidth <= 0 {
		o.BoardWidth = board.Width
	}
	if o.BoardHeight <= 0 {
		o.BoardHeight = board.Height
	}

	cons := pcb.DefaultConstraints()
	if o.ProximityRadius <= 0 {
		o.ProximityRadius = cons.ProximityRadius
	}
	if o.BalanceRadius <= 0 {
		o.BalanceRadius = cons.BalanceRadius
	}
	if o.KeepOutWidth <= 0 {
		o.KeepOutWidth = cons.KeepOut.W
	}
	if o.KeepOutDepth <= 0 {
		o.KeepOutDepth = cons.KeepOut.H
	}
}

// SetSolveDefaults sets default values for the solve stage.
func (o *Options) SetSolveDefaults() {
	if o.Budget <= 0 {
		o.Budget = place.DefaultBudget
	}
	if o.Margin <= 0 {
		o.Margin = place.DefaultMargin
	}
	if o.Attempts <= 0 {
		o.Attempts = place.DefaultAttempts
	}

	o.setBoardDefaults()

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForSolve validates and sets defaults for the solve stage.
func (o *Options) ValidateForSolve() error {
	o.SetSolveDefaults()
	if o.Margin >= o.Budget {
		return errors.New(errors.ErrCodeInvalidInput, "margin %s must be smaller than budget %s", o.Margin, o.Budget)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = schematic.DefaultScale
	}

	o.setBoardDefaults()

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := errors.ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := errors.ValidateFormats(o.Formats); err != nil {
		return err
	}
	return errors.ValidateScale(o.Scale)
}

// IsSchematic returns true if this is a schematic visualization.
func (o *Options) IsSchematic() bool {
	return o.VizType == "" || o.VizType == VizTypeSchematic
}

// IsConstraints returns true if this is a constraint-graph visualization.
func (o *Options) IsConstraints() bool {
	return o.VizType == VizTypeConstraints
}

// SeedValue returns the explicit seed and whether one was set.
func (o *Options) SeedValue() (uint64, bool) {
	if o.Seed == nil {
		return 0, false
	}
	return *o.Seed, true
}

// Board returns the board described by the options.
func (o *Options) Board() pcb.Board {
	return pcb.Board{Width: o.BoardWidth, Height: o.BoardHeight}
}

// Constraints returns the rule parameters described by the options.
func (o *Options) Constraints() pcb.Constraints {
	return pcb.Constraints{
		ProximityRadius: o.ProximityRadius,
		BalanceRadius:   o.BalanceRadius,
		KeepOut:         geometry.Size{W: o.KeepOutWidth, H: o.KeepOutDepth},
	}
}

// Solver returns the configured placement search.
func (o *Options) Solver() place.Search {
	return place.Search{
		Board:       o.Board(),
		Constraints: o.Constraints(),
		Budget:      o.Budget,
		Margin:      o.Margin,
		Attempts:    o.Attempts,
		Progress:    o.Progress,
	}
}

// PlacementKeyOpts returns cache key options for the solve stage.
func (o *Options) PlacementKeyOpts() cache.PlacementKeyOpts {
	return cache.PlacementKeyOpts{
		BoardWidth:      o.BoardWidth,
		BoardHeight:     o.BoardHeight,
		ProximityRadius: o.ProximityRadius,
		BalanceRadius:   o.BalanceRadius,
		KeepOutWidth:    o.KeepOutWidth,
		KeepOutDepth:    o.KeepOutDepth,
		Budget:          o.Budget,
		Margin:          o.Margin,
		Attempts:        o.Attempts,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:          format,
		VizType:         o.VizType,
		Scale:           o.Scale,
		Grid:            !o.NoGrid,
		Overlays:        !o.NoOverlays,
		Title:           o.Title,
		ProximityRadius: o.ProximityRadius,
		BalanceRadius:   o.BalanceRadius,
		KeepOutWidth:    o.KeepOutWidth,
		KeepOutDepth:    o.KeepOutDepth,
	}
}
