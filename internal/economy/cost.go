// BOM cost model — component price decay over calendar time.
package economy

import (
	"math"

	"github.com/talgya/micromogul/internal/company"
	"github.com/talgya/micromogul/internal/hardware"
)

// Quarterly price-decay rates per component class. Memory falls
// fastest, commodity parts slowest.
var decayRates = map[hardware.Category]float64{
	hardware.CategoryCPU:     0.03,
	hardware.CategoryGPU:     0.04,
	hardware.CategoryRAM:     0.05,
	hardware.CategorySound:   0.02,
	hardware.CategoryStorage: 0.03,
	hardware.CategoryDisplay: 0.025,
}

const (
	componentCostFloor = 0.30 // Fraction of base cost components never fall below
	accessoryDecayRate = 0.02 // Cases and accessories decay far slower
	accessoryCostFloor = 0.50
)

// PartCost returns a part's cost at a calendar position, applying
// geometric decay from the epoch: cost(t) = base · (1-rate)^t, floored
// at 30% of base (50% for cases/accessories).
func PartCost(p hardware.Part, year, quarter int) int64 {
	t := company.QuartersSinceEpoch(year, quarter)

	rate, ok := decayRates[p.Category]
	floor := componentCostFloor
	if !ok {
		rate = accessoryDecayRate
		floor = accessoryCostFloor
	}

	c := float64(p.Cost) * math.Pow(1-rate, float64(t))
	min := float64(p.Cost) * floor
	if c < min {
		c = min
	}
	return int64(math.Round(c))
}

// BOMCost returns the total current bill-of-materials cost for a
// component selection. Unknown ids resolve to the catalog's default
// part; they never fail the calculation.
func BOMCost(cat *hardware.Catalog, sel company.ComponentSelection, year, quarter int) int64 {
	var total int64
	for _, id := range []string{sel.CPU, sel.GPU, sel.RAM, sel.Sound, sel.Storage, sel.Display, sel.Case} {
		if id == "" {
			continue
		}
		p, _ := cat.Lookup(id)
		total += PartCost(p, year, quarter)
	}
	return total
}
