// Obsolescence model — age-based appeal decay for released products.
package economy

import "github.com/talgya/micromogul/internal/company"

// ObsolescenceFloor is the hard lower bound on the aging factor; a
// product never becomes fully obsolete.
const ObsolescenceFloor = 0.2

// obsolescencePerQuarter is the appeal lost per quarter on the market.
const obsolescencePerQuarter = 0.15

// ObsolescenceFactor returns the multiplicative demand penalty for a
// product released at (releaseYear, releaseQuarter) observed at
// (currentYear, currentQuarter). Monotonically non-increasing in
// elapsed time, floored at ObsolescenceFloor.
func ObsolescenceFactor(releaseYear, releaseQuarter, currentYear, currentQuarter int) float64 {
	elapsed := company.QuartersBetween(releaseYear, releaseQuarter, currentYear, currentQuarter)
	if elapsed < 0 {
		elapsed = 0
	}
	f := 1 - obsolescencePerQuarter*float64(elapsed)
	if f < ObsolescenceFloor {
		f = ObsolescenceFloor
	}
	return f
}
