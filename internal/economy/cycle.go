// Business-cycle index — a smooth macro-economic modifier on segment
// demand, generated from simplex noise so the cycle is deterministic
// per game seed and free of quarter-to-quarter jumps.
package economy

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/micromogul/internal/company"
)

// CycleSwing is the maximum deviation of the business cycle from 1.0.
const CycleSwing = 0.10

// Cycle produces a per-quarter macro demand multiplier in
// [1-CycleSwing, 1+CycleSwing].
type Cycle struct {
	noise opensimplex.Noise
}

// NewCycle creates a business cycle keyed to a game seed.
func NewCycle(seed int64) *Cycle {
	return &Cycle{noise: opensimplex.NewNormalized(seed)}
}

// Factor returns the macro demand multiplier for a calendar position.
func (c *Cycle) Factor(year, quarter int) float64 {
	t := float64(company.QuartersSinceEpoch(year, quarter))
	// 0.18/quarter frequency gives a full boom/bust wave roughly every
	// 8–9 simulated years.
	n := c.noise.Eval2(t*0.18, 0.5) // normalized to [0, 1]
	return 1 - CycleSwing + 2*CycleSwing*n
}
