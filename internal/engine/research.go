// Research generator (budget-roll variant) — cumulative R&D spend
// buys a chance each quarter at an exclusive component. The
// investment-tracked project workflow in projects.go is the second,
// independent path to exclusive hardware.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/micromogul/internal/company"
	"github.com/talgya/micromogul/internal/economy"
	"github.com/talgya/micromogul/internal/hardware"
)

const (
	// maxUnlockChance caps the per-quarter unlock probability.
	maxUnlockChance = 0.25

	// unlockSpendScale is the cumulative spend at which the chance cap
	// is reached.
	unlockSpendScale = 1_500_000

	// categoryUnlockCap limits exclusive chips per category.
	categoryUnlockCap = 2
)

// Categories the roll generator can produce.
var rollCategories = []company.ChipCategory{
	company.ChipCPU, company.ChipGPU, company.ChipSound, company.ChipCase,
}

// unlockChance converts cumulative research spend into a roll
// probability, capped at maxUnlockChance.
func unlockChance(cumulativeSpend int64) float64 {
	if cumulativeSpend <= 0 {
		return 0
	}
	p := float64(cumulativeSpend) / unlockSpendScale * maxUnlockChance
	if p > maxUnlockChance {
		p = maxUnlockChance
	}
	return p
}

// rollResearch attempts the quarterly unlock roll. On success the new
// chip joins the session and the catalog. Returns nil when nothing
// unlocks.
func (g *Game) rollResearch() *company.CustomChip {
	p := unlockChance(g.CumulativeResearch)
	if p <= 0 || g.Rand.Float() >= p {
		return nil
	}

	// Only categories under the unlock cap are eligible.
	counts := g.ChipsByCategory()
	var eligible []company.ChipCategory
	for _, cat := range rollCategories {
		if counts[cat] < categoryUnlockCap {
			eligible = append(eligible, cat)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	cat := eligible[g.Rand.Intn(len(eligible))]

	chip := g.buildChip(cat, "")
	chip.Exclusive = true // unconditional for the roll variant
	g.Chips = append(g.Chips, chip)
	if g.Catalog != nil {
		g.Catalog.RegisterCustom(chip)
	}

	slog.Info("research unlock",
		"chip", chip.Name, "category", cat,
		"performance", chip.Performance, "cost", chip.Cost)
	return chip
}

// buildChip generates an exclusive part relative to the best current
// market equivalent for its category. Performance uplift and cost
// discount both grow with cumulative research spend.
func (g *Game) buildChip(cat company.ChipCategory, name string) *company.CustomChip {
	base := hardware.DefaultPart
	if g.Catalog != nil {
		base = g.Catalog.BestAvailable(hardware.Category(cat), g.Year, g.Quarter)
	}

	spendFactor := economy.Clamp(float64(g.CumulativeResearch)/3_000_000, 0, 1)
	uplift := 1.08 + 0.25*spendFactor              // +8% … +33% over market best
	discount := 0.95 - 0.30*spendFactor            // 5% … 35% cheaper
	perf := economy.Clamp(base.Performance*uplift, 0, 100)
	cost := int64(float64(base.Cost) * discount)
	if cost < 1 {
		cost = 1
	}

	if name == "" {
		name = fmt.Sprintf("%s %s-X%d", g.Company.Name, categoryLabel(cat), len(g.Chips)+1)
	}

	return &company.CustomChip{
		ID:               uuid.NewString(),
		Name:             name,
		Category:         cat,
		Performance:      perf,
		Cost:             cost,
		Description:      fmt.Sprintf("In-house %s design outperforming the %s", categoryLabel(cat), base.Name),
		DevelopedYear:    g.Year,
		DevelopedQuarter: g.Quarter,
	}
}

func categoryLabel(cat company.ChipCategory) string {
	switch cat {
	case company.ChipCPU:
		return "processor"
	case company.ChipGPU:
		return "video chip"
	case company.ChipSound:
		return "sound chip"
	case company.ChipCase:
		return "chassis"
	}
	return "component"
}
