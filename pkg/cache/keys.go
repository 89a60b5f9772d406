package cache

import "time"

// Keyer generates cache keys for the cacheable pipeline stages.
type Keyer interface {
	// PlacementKey identifies the solve result for a seed and solver
	// parameter set.
	PlacementKey(seed uint64, opts PlacementKeyOpts) string

	// ArtifactKey identifies one rendered artifact of a placement.
	ArtifactKey(placementHash string, opts ArtifactKeyOpts) string
}

// PlacementKeyOpts captures every solver input besides the seed that
// changes the solve outcome.
type PlacementKeyOpts struct {
	BoardWidth      float64
	BoardHeight     float64
	ProximityRadius float64
	BalanceRadius   float64
	KeepOutWidth    float64
	KeepOutDepth    float64
	Budget          time.Duration
	Margin          time.Duration
	Attempts        int
}

// ArtifactKeyOpts captures every rendering input that changes the
// produced bytes. The rule parameters are part of the key because they
// size the overlays and decide the validation verdict embedded in JSON
// and DOT artifacts.
type ArtifactKeyOpts struct {
	Format   string
	VizType  string
	Scale    float64
	Grid     bool
	Overlays bool
	Title    string

	ProximityRadius float64
	BalanceRadius   float64
	KeepOutWidth    float64
	KeepOutDepth    float64
}

// DefaultKeyer hashes all inputs into stable keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlacementKey generates a key for solve result caching.
func (k *DefaultKeyer) PlacementKey(seed uint64, opts PlacementKeyOpts) string {
	return hashKey("placement", seed, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(placementHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", placementHash, opts)
}
