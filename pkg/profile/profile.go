// Package profile loads solver profiles from TOML files.
//
// A profile bundles the board dimensions, the rule parameters, and the
// search settings under one name, so alternative setups (larger boards,
// tighter balance, longer budgets) are files rather than flag soup.
// Values absent from the file keep their defaults.
package profile

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boardfit/pkg/errors"
	"github.com/matzehuels/boardfit/pkg/geometry"
	"github.com/matzehuels/boardfit/pkg/pcb"
	"github.com/matzehuels/boardfit/pkg/pcb/place"
)

// Profile is a named solver setup.
type Profile struct {
	Board       Board       `toml:"board"`
	Constraints Constraints `toml:"constraints"`
	Search      Search      `toml:"search"`
}

// Board is the [board] section.
type Board struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Constraints is the [constraints] section.
type Constraints struct {
	ProximityRadius float64 `toml:"proximity_radius"`
	BalanceRadius   float64 `toml:"balance_radius"`
	KeepoutWidth    float64 `toml:"keepout_width"`
	KeepoutDepth    float64 `toml:"keepout_depth"`
}

// Search is the [search] section. Seed is optional; an unseeded profile
// gets a fresh seed per run.
type Search struct {
	Budget   Duration `toml:"budget"`
	Margin   Duration `toml:"margin"`
	Attempts int      `toml:"attempts"`
	Seed     *uint64  `toml:"seed"`
}

// Duration is a time.Duration that unmarshals from TOML strings like
// "2s" or "250ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns the stock profile: the standard board and rules with
// the standard search budget.
func Default() Profile {
	board := pcb.DefaultBoard()
	cons := pcb.DefaultConstraints()
	return Profile{
		Board: Board{Width: board.Width, Height: board.Height},
		Constraints: Constraints{
			ProximityRadius: cons.ProximityRadius,
			BalanceRadius:   cons.BalanceRadius,
			KeepoutWidth:    cons.KeepOut.W,
			KeepoutDepth:    cons.KeepOut.H,
		},
		Search: Search{
			Budget:   Duration(place.DefaultBudget),
			Margin:   Duration(place.DefaultMargin),
			Attempts: place.DefaultAttempts,
		},
	}
}

// Parse decodes TOML bytes over the default profile, so partial files
// override only what they mention.
func Parse(data []byte) (Profile, error) {
	p := Default()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeInvalidProfile, err, "parse profile")
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Load reads and parses a profile file.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeInvalidProfile, err, "read profile %s", path)
	}
	return Parse(data)
}

// Validate checks the profile for values the solver can work with.
func (p Profile) Validate() error {
	switch {
	case p.Board.Width <= 0 || p.Board.Height <= 0:
		return errors.New(errors.ErrCodeInvalidProfile, "board dimensions must be positive, got %gx%g", p.Board.Width, p.Board.Height)
	case p.Constraints.ProximityRadius <= 0:
		return errors.New(errors.ErrCodeInvalidProfile, "proximity radius must be positive, got %g", p.Constraints.ProximityRadius)
	case p.Constraints.BalanceRadius < 0:
		return errors.New(errors.ErrCodeInvalidProfile, "balance radius must not be negative, got %g", p.Constraints.BalanceRadius)
	case p.Constraints.KeepoutWidth <= 0 || p.Constraints.KeepoutDepth <= 0:
		return errors.New(errors.ErrCodeInvalidProfile, "keep-out dimensions must be positive, got %gx%g", p.Constraints.KeepoutWidth, p.Constraints.KeepoutDepth)
	case p.Search.Budget <= 0:
		return errors.New(errors.ErrCodeInvalidProfile, "search budget must be positive, got %s", time.Duration(p.Search.Budget))
	case p.Search.Margin < 0 || p.Search.Margin >= p.Search.Budget:
		return errors.New(errors.ErrCodeInvalidProfile, "search margin must stay below the budget, got %s", time.Duration(p.Search.Margin))
	case p.Search.Attempts <= 0:
		return errors.New(errors.ErrCodeInvalidProfile, "search attempts must be positive, got %d", p.Search.Attempts)
	}
	return nil
}

// PCBBoard returns the board the profile describes.
func (p Profile) PCBBoard() pcb.Board {
	return pcb.Board{Width: p.Board.Width, Height: p.Board.Height}
}

// PCBConstraints returns the rule parameters the profile describes.
func (p Profile) PCBConstraints() pcb.Constraints {
	return pcb.Constraints{
		ProximityRadius: p.Constraints.ProximityRadius,
		BalanceRadius:   p.Constraints.BalanceRadius,
		KeepOut:         geometry.Size{W: p.Constraints.KeepoutWidth, H: p.Constraints.KeepoutDepth},
	}
}

// Solver builds the search the profile describes.
func (p Profile) Solver() place.Search {
	return place.Search{
		Board:       p.PCBBoard(),
		Constraints: p.PCBConstraints(),
		Budget:      time.Duration(p.Search.Budget),
		Margin:      time.Duration(p.Search.Margin),
		Attempts:    p.Search.Attempts,
	}
}

// SeedValue returns the profile's fixed seed, if one is set.
func (p Profile) SeedValue() (uint64, bool) {
	if p.Search.Seed == nil {
		return 0, false
	}
	return *p.Search.Seed, true
}
