package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/boardfit/pkg/pipeline"
	"github.com/matzehuels/boardfit/pkg/profile"
)

func TestCacheDir(t *testing.T) {
	// Clear XDG_CACHE_HOME to test default behavior
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	if dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("cacheDir() = %q, should honor XDG_CACHE_HOME", dir)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,json,dot", []string{"svg", "json", "dot"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.in)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestApplyProfileFillsDefaults(t *testing.T) {
	opts := pipeline.Options{}
	applyProfile(&opts, profile.Default())

	if opts.BoardWidth != 50 || opts.BoardHeight != 50 {
		t.Errorf("board = %gx%g, want 50x50", opts.BoardWidth, opts.BoardHeight)
	}
	if opts.ProximityRadius != 10 {
		t.Errorf("ProximityRadius = %g, want 10", opts.ProximityRadius)
	}
	if opts.Budget != 2*time.Second {
		t.Errorf("Budget = %s, want 2s", opts.Budget)
	}
	if opts.Seed != nil {
		t.Error("unseeded profile should not set a seed")
	}
}

func TestApplyProfileKeepsExplicitFlags(t *testing.T) {
	opts := pipeline.Options{
		BoardWidth: 80,
		Budget:     5 * time.Second,
	}
	applyProfile(&opts, profile.Default())

	if opts.BoardWidth != 80 {
		t.Errorf("BoardWidth = %g, explicit flag should win over profile", opts.BoardWidth)
	}
	if opts.Budget != 5*time.Second {
		t.Errorf("Budget = %s, explicit flag should win over profile", opts.Budget)
	}
	if opts.BoardHeight != 50 {
		t.Errorf("BoardHeight = %g, profile should fill unset fields", opts.BoardHeight)
	}
}

func TestApplyProfileSeed(t *testing.T) {
	seed := uint64(7)
	prof := profile.Default()
	prof.Search.Seed = &seed

	opts := pipeline.Options{}
	applyProfile(&opts, prof)
	if opts.Seed == nil || *opts.Seed != 7 {
		t.Fatal("profile seed should apply when no flag seed is set")
	}

	flagSeed := uint64(42)
	opts = pipeline.Options{Seed: &flagSeed}
	applyProfile(&opts, prof)
	if *opts.Seed != 42 {
		t.Error("flag seed should win over profile seed")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	want := []string{"solve", "check", "score", "render", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}
