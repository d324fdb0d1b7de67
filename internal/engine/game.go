// Package engine ties the economic models together and advances a game
// session one quarter at a time. A Game owns all mutable session state;
// every model it calls is a pure function over that state.
package engine

import (
	"fmt"

	"github.com/talgya/micromogul/internal/company"
	"github.com/talgya/micromogul/internal/economy"
	"github.com/talgya/micromogul/internal/entropy"
	"github.com/talgya/micromogul/internal/hardware"
	"github.com/talgya/micromogul/internal/news"
)

// BaselineDevelopmentBudget is the quarterly development spend at
// which products progress at their nominal rate.
const BaselineDevelopmentBudget = 50_000

// Game is one complete session: the player company, its roster, the
// rivals, research state, and the simulated calendar. Nothing in a
// Game is shared between sessions — see the per-session news registry.
type Game struct {
	Seed int64 `json:"seed"`

	Company     company.Company            `json:"company"`
	Budget      company.Budget             `json:"budget"`
	Models      []*company.ComputerModel   `json:"models"`
	Competitors []*company.Competitor      `json:"competitors"`
	Chips       []*company.CustomChip      `json:"chips"`
	Projects    []*company.ResearchProject `json:"projects"`

	Year    int `json:"year"`
	Quarter int `json:"quarter"`
	EndYear int `json:"end_year"`

	CumulativeResearch int64 `json:"cumulative_research"`
	TotalRevenue       int64 `json:"total_revenue"`

	Ended bool         `json:"ended"`
	Final *FinalResult `json:"final,omitempty"`

	// Rival units accrued during the previous competitor update, used
	// by the market-share calculation.
	RivalQuarterUnits int64 `json:"rival_quarter_units"`

	// Collaborators. Not serialized; rebuilt on load.
	Catalog  *hardware.Catalog `json:"-"`
	Cycle    *economy.Cycle    `json:"-"`
	Rand     entropy.Source    `json:"-"`
	Registry *news.Registry    `json:"-"`
	Press    *news.Generator   `json:"-"`
}

// NewGame creates a fresh session starting in 1983 Q1. A non-zero seed
// makes the whole session deterministic; seed 0 plays with crypto/rand.
func NewGame(companyName string, seed int64) (*Game, error) {
	cat, err := hardware.Load()
	if err != nil {
		return nil, fmt.Errorf("load hardware catalog: %w", err)
	}

	var src entropy.Source
	cycleSeed := seed
	if seed == 0 {
		src = entropy.NewCrypto()
		cycleSeed = 1983
	} else {
		src = entropy.NewSeeded(seed)
	}

	reg := news.NewRegistry()
	g := &Game{
		Seed: seed,
		Company: company.Company{
			Name:        companyName,
			Cash:        500_000,
			Reputation:  50,
			MarketShare: 5,
			Employees:   12,
		},
		Budget: company.Budget{
			Marketing:   25_000,
			Development: 50_000,
			Research:    15_000,
		},
		Competitors: DefaultCompetitors(),
		Year:        company.EpochYear,
		Quarter:     company.EpochQuarter,
		EndYear:     company.DefaultEndYear,

		Catalog:  cat,
		Cycle:    economy.NewCycle(cycleSeed),
		Rand:     src,
		Registry: reg,
		Press:    news.NewGenerator(reg),
	}
	return g, nil
}

// Attach rebuilds the non-serialized collaborators after a load.
func (g *Game) Attach(cat *hardware.Catalog, src entropy.Source, reg *news.Registry) {
	g.Catalog = cat
	g.Cycle = economy.NewCycle(g.cycleSeed())
	g.Rand = src
	g.Registry = reg
	g.Press = news.NewGenerator(reg)

	// Custom chips must be visible in the catalog again.
	for _, chip := range g.Chips {
		cat.RegisterCustom(chip)
	}
}

func (g *Game) cycleSeed() int64 {
	if g.Seed == 0 {
		return 1983
	}
	return g.Seed
}

// Model returns a roster model by id, or nil.
func (g *Game) Model(id string) *company.ComputerModel {
	for _, m := range g.Models {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// AddModel appends a finalized design to the roster.
func (g *Game) AddModel(m *company.ComputerModel) {
	g.Models = append(g.Models, m)
}

// RivalModels flattens every competitor's product list, used by the
// demand model's competition factor.
func (g *Game) RivalModels() []company.CompetitorModel {
	var out []company.CompetitorModel
	for _, c := range g.Competitors {
		out = append(out, c.Models...)
	}
	return out
}

// ChipsByCategory counts unlocked chips per category, the cap input
// for the research generator.
func (g *Game) ChipsByCategory() map[company.ChipCategory]int {
	counts := make(map[company.ChipCategory]int)
	for _, c := range g.Chips {
		counts[c.Category]++
	}
	return counts
}
