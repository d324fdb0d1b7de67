// Profit breakdown — revenue minus every cost category. The net
// profit invariant holds by construction: NetProfit is computed as the
// exact difference of the fields the breakdown reports.
package economy

import "math"

const (
	// lifetimeQuarters is the assumed sales lifetime used to amortize
	// development cost across units.
	lifetimeQuarters = 8

	// devCostCapRatio caps per-unit development amortization at this
	// fraction of the selling price.
	devCostCapRatio = 0.10

	// productionOverheadRatio is assembly/labor cost as a fraction of
	// BOM cost.
	productionOverheadRatio = 0.08

	// fixedOverheadPerUnit covers warranty, packaging, and channel
	// costs per unit shipped.
	fixedOverheadPerUnit = 50
)

// ProfitBreakdown itemizes one quarter of one model's economics.
type ProfitBreakdown struct {
	Revenue          int64 `json:"revenue"`
	BOMCosts         int64 `json:"bom_costs"`
	DevelopmentCosts int64 `json:"development_costs"`
	MarketingCosts   int64 `json:"marketing_costs"`
	ProductionCosts  int64 `json:"production_costs"`
	FixedOverhead    int64 `json:"fixed_overhead"`
	NetProfit        int64 `json:"net_profit"`
}

// TotalCosts returns the sum of all cost categories.
func (p ProfitBreakdown) TotalCosts() int64 {
	return p.BOMCosts + p.DevelopmentCosts + p.MarketingCosts + p.ProductionCosts + p.FixedOverhead
}

// Margin returns net profit as a fraction of revenue, or 0 when there
// was no revenue.
func (p ProfitBreakdown) Margin() float64 {
	if p.Revenue == 0 {
		return 0
	}
	return float64(p.NetProfit) / float64(p.Revenue)
}

// ComputeProfit builds the quarterly breakdown for a model that sold
// unitsSold units at price with the given per-unit BOM cost.
// marketingBudget is the share of the marketing spend attributed to
// this model. Zero units yields a breakdown of zeroes except for the
// attributed marketing spend.
func ComputeProfit(unitsSold, price, bomPerUnit, developmentCost, marketingBudget int64) ProfitBreakdown {
	var b ProfitBreakdown
	b.Revenue = unitsSold * price
	b.BOMCosts = bomPerUnit * unitsSold
	b.MarketingCosts = marketingBudget

	if unitsSold > 0 {
		// Amortize the original development cost over an estimated
		// lifetime of sales (this quarter's rate × lifetimeQuarters),
		// capped at a fraction of the selling price per unit.
		lifetimeUnits := unitsSold * lifetimeQuarters
		perUnitDev := float64(developmentCost) / float64(lifetimeUnits)
		cap := float64(price) * devCostCapRatio
		if perUnitDev > cap {
			perUnitDev = cap
		}
		b.DevelopmentCosts = int64(math.Round(perUnitDev * float64(unitsSold)))

		b.ProductionCosts = int64(math.Round(float64(b.BOMCosts) * productionOverheadRatio))
		b.FixedOverhead = unitsSold * fixedOverheadPerUnit
	}

	b.NetProfit = b.Revenue - b.TotalCosts()
	return b
}

// Add accumulates another breakdown into this one, recomputing net
// profit so the invariant survives aggregation.
func (p *ProfitBreakdown) Add(o ProfitBreakdown) {
	p.Revenue += o.Revenue
	p.BOMCosts += o.BOMCosts
	p.DevelopmentCosts += o.DevelopmentCosts
	p.MarketingCosts += o.MarketingCosts
	p.ProductionCosts += o.ProductionCosts
	p.FixedOverhead += o.FixedOverhead
	p.NetProfit = p.Revenue - p.TotalCosts()
}
