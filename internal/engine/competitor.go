// Competitor AI — rival market share evolves toward year-indexed
// historical anchors, discounted by the player's share; rivals release
// new machines stochastically and their catalog keeps selling.
package engine

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/talgya/micromogul/internal/company"
	"github.com/talgya/micromogul/internal/economy"
	"github.com/talgya/micromogul/internal/entropy"
	"github.com/talgya/micromogul/internal/news"
)

// Per-quarter bounds on rival share movement.
const (
	maxShareStep  = 2.0
	minRivalShare = 0.1
)

// rivalProfile tunes one rival's behavior.
type rivalProfile struct {
	// Historical market-share anchors, indexed by year−1983 (10 years).
	anchors [10]float64

	// Positioning multipliers applied to the year baseline.
	priceMult float64
	perfMult  float64

	// Base probability of shipping a new machine in a given quarter.
	releaseChance float64

	series string // Product line name for generated models
}

var rivalProfiles = map[string]rivalProfile{
	"macrocomp": {
		anchors:       [10]float64{30, 32, 31, 28, 25, 22, 19, 16, 14, 12},
		priceMult:     0.8,
		perfMult:      0.85,
		releaseChance: 0.18,
		series:        "MC",
	},
	"orchard": {
		anchors:       [10]float64{18, 19, 20, 21, 22, 22, 21, 20, 19, 18},
		priceMult:     1.4,
		perfMult:      1.15,
		releaseChance: 0.12,
		series:        "Orchard",
	},
	"consolidated": {
		anchors:       [10]float64{22, 23, 24, 26, 27, 28, 29, 30, 31, 32},
		priceMult:     1.1,
		perfMult:      1.0,
		releaseChance: 0.15,
		series:        "Series",
	},
	"dynatronics": {
		anchors:       [10]float64{8, 9, 11, 13, 15, 18, 21, 24, 26, 28},
		priceMult:     0.65,
		perfMult:      0.9,
		releaseChance: 0.22,
		series:        "DT",
	},
}

// DefaultCompetitors returns the rival roster for a new 1983 session.
func DefaultCompetitors() []*company.Competitor {
	return []*company.Competitor{
		{
			ID: "macrocomp", Name: "Macrocomp", MarketShare: 30, Reputation: 65,
			MarketingBudget: 80_000, DevelopmentBudget: 120_000,
			Models: []company.CompetitorModel{{
				Name: "MC-20", Price: 299, Performance: 24,
				ReleaseYear: 1982, ReleaseQuarter: 3,
			}},
		},
		{
			ID: "orchard", Name: "Orchard Computer", MarketShare: 18, Reputation: 75,
			MarketingBudget: 60_000, DevelopmentBudget: 150_000,
			Models: []company.CompetitorModel{{
				Name: "Orchard II", Price: 1295, Performance: 38,
				ReleaseYear: 1982, ReleaseQuarter: 1,
			}},
		},
		{
			ID: "consolidated", Name: "Consolidated Micro", MarketShare: 22, Reputation: 80,
			MarketingBudget: 100_000, DevelopmentBudget: 200_000,
			Models: []company.CompetitorModel{{
				Name: "Series 1000", Price: 1565, Performance: 35,
				ReleaseYear: 1982, ReleaseQuarter: 4,
			}},
		},
		{
			ID: "dynatronics", Name: "Dynatronics", MarketShare: 8, Reputation: 45,
			MarketingBudget: 40_000, DevelopmentBudget: 60_000,
			Models: []company.CompetitorModel{{
				Name: "DT-100", Price: 199, Performance: 18,
				ReleaseYear: 1983, ReleaseQuarter: 1,
			}},
		},
	}
}

// shareAnchor returns a rival's historical target share for a year.
func shareAnchor(id string, year int) float64 {
	p, ok := rivalProfiles[id]
	if !ok {
		return 10
	}
	idx := year - company.EpochYear
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.anchors) {
		idx = len(p.anchors) - 1
	}
	return p.anchors[idx]
}

// Year baselines for generated rival machines.

func yearPerfBaseline(year int) float64 {
	return economy.Clamp(20+float64(year-company.EpochYear)*8, 20, 95)
}

func yearPriceBaseline(year int) float64 {
	return 600 + float64(year-company.EpochYear)*180
}

// updateCompetitors runs one quarter of rival evolution and returns
// the total rival units moved this quarter.
func (g *Game) updateCompetitors(report *QuarterReport) int64 {
	var quarterUnits int64

	for _, c := range g.Competitors {
		profile, ok := rivalProfiles[c.ID]
		if !ok {
			profile = rivalProfile{priceMult: 1, perfMult: 1, releaseChance: 0.1, series: "Model"}
		}

		// Share drifts toward the historical anchor, discounted by how
		// much of the market the player already holds.
		target := shareAnchor(c.ID, g.Year) * (100 - g.Company.MarketShare) / 100
		step := economy.Clamp(target-c.MarketShare, -maxShareStep, maxShareStep)
		c.MarketShare = c.MarketShare + step
		if c.MarketShare < minRivalShare {
			c.MarketShare = minRivalShare
		}

		// Possible new machine. Rivals front-load launches into Q1.
		chance := profile.releaseChance
		if g.Quarter == 1 {
			chance += 0.10
		}
		if g.Rand.Float() < chance {
			m := g.generateRivalModel(c, profile)
			c.Models = append(c.Models, m)
			g.pressRelease(report, news.EventRivalRelease, map[string]string{
				"competitor": c.Name,
				"model":      m.Name,
				"price":      strconv.FormatInt(m.Price, 10),
			})
			slog.Debug("rival release", "competitor", c.Name, "model", m.Name, "price", m.Price)
		}

		// Existing machines keep selling in proportion to the rival's
		// updated share, discounted by product age.
		for i := range c.Models {
			m := &c.Models[i]
			obs := economy.ObsolescenceFactor(m.ReleaseYear, m.ReleaseQuarter, g.Year, g.Quarter)
			units := int64(c.MarketShare * 900 * obs * entropy.Jitter(g.Rand, 0.3))
			if units < 0 {
				units = 0
			}
			m.UnitsSold += units
			quarterUnits += units
		}
	}

	return quarterUnits
}

// lapsedChipUplift returns the performance multiplier rivals gain from
// research chips whose exclusivity window has closed. Unconditionally
// exclusive chips never diffuse.
func (g *Game) lapsedChipUplift() float64 {
	uplift := 1.0
	for _, chip := range g.Chips {
		if chip.ExclusiveUntilYear != 0 && !chip.ExclusiveAt(g.Year, g.Quarter) {
			uplift += 0.02
		}
	}
	if uplift > 1.10 {
		uplift = 1.10
	}
	return uplift
}

// generateRivalModel builds a new rival machine from the year baseline
// scaled by the company's positioning.
func (g *Game) generateRivalModel(c *company.Competitor, p rivalProfile) company.CompetitorModel {
	perf := yearPerfBaseline(g.Year) * p.perfMult * g.lapsedChipUplift() * entropy.Jitter(g.Rand, 0.1)
	price := yearPriceBaseline(g.Year) * p.priceMult * entropy.Jitter(g.Rand, 0.15)

	return company.CompetitorModel{
		Name:           fmt.Sprintf("%s %d", p.series, (g.Year%100)*100+len(c.Models)*10),
		Price:          int64(price),
		Performance:    economy.Clamp(perf, 5, 100),
		ReleaseYear:    g.Year,
		ReleaseQuarter: g.Quarter,
	}
}
