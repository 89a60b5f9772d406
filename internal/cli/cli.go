// Package cli implements the boardfit command-line interface.
//
// This package provides commands for solving component placements,
// checking and scoring existing placements, rendering them to visual
// artifacts, and running the HTTP API. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - solve: Search for a valid placement and render it
//   - check: Validate a placement file against the design rules
//   - score: Score a placement file (lower is better)
//   - render: Render a placement file to SVG, PNG, PDF, JSON, or DOT
//   - serve: Run the HTTP API
//   - cache: Manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boardfit/pkg/buildinfo"
	"github.com/matzehuels/boardfit/pkg/cache"
	"github.com/matzehuels/boardfit/pkg/pipeline"
	"github.com/matzehuels/boardfit/pkg/profile"
)

// appName is the application name used for directories and display.
const appName = "boardfit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "boardfit",
		Short:        "Boardfit places components on a PCB under design rules",
		Long:         `Boardfit searches for placements of five components on a fixed board that satisfy all design rules (bounds, clearance, edge seating, connector parallelism, signal proximity, mass balance, keep-out avoidance), then scores and renders the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.scoreCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/boardfit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// applyProfile copies a solver profile into pipeline options. Only
// unset fields are filled: flags bind directly to the options struct
// and are parsed before RunE, so an explicit flag always wins over the
// profile.
func applyProfile(opts *pipeline.Options, p profile.Profile) {
	if opts.BoardWidth <= 0 {
		opts.BoardWidth = p.Board.Width
	}
	if opts.BoardHeight <= 0 {
		opts.BoardHeight = p.Board.Height
	}
	if opts.ProximityRadius <= 0 {
		opts.ProximityRadius = p.Constraints.ProximityRadius
	}
	if opts.BalanceRadius <= 0 {
		opts.BalanceRadius = p.Constraints.BalanceRadius
	}
	if opts.KeepOutWidth <= 0 {
		opts.KeepOutWidth = p.Constraints.KeepoutWidth
	}
	if opts.KeepOutDepth <= 0 {
		opts.KeepOutDepth = p.Constraints.KeepoutDepth
	}
	if opts.Budget <= 0 {
		opts.Budget = time.Duration(p.Search.Budget)
	}
	if opts.Margin <= 0 {
		opts.Margin = time.Duration(p.Search.Margin)
	}
	if opts.Attempts <= 0 {
		opts.Attempts = p.Search.Attempts
	}
	if seed, ok := p.SeedValue(); ok && opts.Seed == nil {
		opts.Seed = &seed
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
