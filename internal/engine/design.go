// Design finalization — turns a component selection into a roster
// model in development. Inputs are explicit and already resolved; the
// engine never fills defaults as a side effect of a read.
package engine

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/talgya/micromogul/internal/company"
	"github.com/talgya/micromogul/internal/economy"
)

// FinalizeDesign creates a new in-development model from a component
// selection and a selling price. The price must already be decided —
// the scoring engine only ever suggests.
func (g *Game) FinalizeDesign(name string, sel company.ComponentSelection, price int64) (*company.ComputerModel, error) {
	if name == "" {
		return nil, fmt.Errorf("model name is required")
	}
	if price < 0 {
		return nil, fmt.Errorf("price must be non-negative, got %d", price)
	}
	if g.Catalog == nil {
		return nil, fmt.Errorf("hardware catalog unavailable")
	}

	ids := []string{sel.CPU, sel.GPU, sel.RAM, sel.Sound, sel.Storage, sel.Display, sel.Case}
	var perfSum, tierSum float64
	var count int
	for _, id := range ids {
		if id == "" {
			continue
		}
		p, known := g.Catalog.Lookup(id)
		if known && !p.AvailableAt(g.Year, g.Quarter) {
			return nil, fmt.Errorf("%s is not available until %d Q%d", p.Name, p.AvailableYear, p.AvailableQuarter)
		}
		perfSum += p.Performance
		tierSum += float64(p.Tier)
		count++
	}
	if count == 0 {
		return nil, fmt.Errorf("design has no components")
	}

	performance := economy.Clamp(perfSum/float64(count), 0, 100)
	complexity := tierSum / float64(count) // avg tier, 1–6

	// Fancier machines take longer and cost more to engineer.
	devTime := int(math.Round(1 + complexity))
	if devTime < 2 {
		devTime = 2
	}
	if devTime > 6 {
		devTime = 6
	}
	devCost := int64(40_000 + complexity*30_000)

	m := &company.ComputerModel{
		ID:              uuid.NewString(),
		Name:            name,
		Components:      sel,
		Price:           price,
		DevelopmentCost: devCost,
		Performance:     performance,
		Complexity:      complexity,
		Status:          company.StatusDevelopment,
		DevelopmentTime: devTime,
	}
	g.AddModel(m)
	return m, nil
}

// DiscontinueModel retires a released model. Discontinued products
// stay in the roster but earn nothing from the next quarter on.
func (g *Game) DiscontinueModel(id string) error {
	m := g.Model(id)
	if m == nil {
		return fmt.Errorf("no model %s", id)
	}
	if m.Status != company.StatusReleased {
		return fmt.Errorf("model %s is %s, only released models can be discontinued", id, m.Status)
	}
	m.Discontinue()
	return nil
}
