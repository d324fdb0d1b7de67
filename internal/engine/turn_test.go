package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/micromogul/internal/company"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g, err := NewGame("Garage Computer Co.", seed)
	require.NoError(t, err)
	return g
}

func releasedModel(name string, price int64, year, quarter int) *company.ComputerModel {
	return &company.ComputerModel{
		ID:   name,
		Name: name,
		Components: company.ComponentSelection{
			CPU: "cpu-6502", GPU: "gpu-tms9918", RAM: "ram-64k", Sound: "snd-ay38910",
			Storage: "sto-cassette", Display: "dsp-rf", Case: "case-breadbin",
		},
		Price:           price,
		DevelopmentCost: 70_000,
		Status:          company.StatusReleased,
		ReleaseYear:     year,
		ReleaseQuarter:  quarter,
	}
}

func TestAdvanceQuarterMovesTheCalendar(t *testing.T) {
	g := newTestGame(t, 1)

	report, err := g.AdvanceQuarter()
	require.NoError(t, err)
	assert.Equal(t, 1983, report.Year)
	assert.Equal(t, 1, report.Quarter)
	assert.Equal(t, 1983, g.Year)
	assert.Equal(t, 2, g.Quarter)

	for i := 0; i < 3; i++ {
		_, err = g.AdvanceQuarter()
		require.NoError(t, err)
	}
	assert.Equal(t, 1984, g.Year)
	assert.Equal(t, 1, g.Quarter)
}

func TestAdvanceQuarterSellsReleasedModels(t *testing.T) {
	g := newTestGame(t, 3)
	m := releasedModel("Home Star", 500, 1983, 1)
	g.AddModel(m)

	report, err := g.AdvanceQuarter()
	require.NoError(t, err)

	assert.Greater(t, m.UnitsSold, int64(0))
	require.Len(t, report.Models, 1)
	assert.Equal(t, m.UnitsSold, report.Models[0].Units)
	assert.Equal(t, report.Models[0].Units*500, report.Models[0].Revenue)

	p := report.Models[0].Profit
	assert.Equal(t, p.Revenue-p.TotalCosts(), p.NetProfit)

	assert.Equal(t, report.Profit-report.Expenses.Total(), report.NetCashFlow,
		"net cash flow is profit minus budget expenses")
}

func TestAdvanceQuarterIgnoresDiscontinuedModels(t *testing.T) {
	g := newTestGame(t, 3)
	live := releasedModel("Live", 500, 1983, 1)
	dead := releasedModel("Dead", 500, 1983, 1)
	dead.Discontinue()
	g.AddModel(live)
	g.AddModel(dead)

	report, err := g.AdvanceQuarter()
	require.NoError(t, err)

	assert.Zero(t, dead.UnitsSold, "discontinued products earn nothing")
	assert.Greater(t, live.UnitsSold, int64(0))
	require.Len(t, report.Models, 1)
	assert.Equal(t, "Live", report.Models[0].Name)
}

// Without a catalog the simplified demand estimate takes over; the
// report must keep the identical shape so callers never observe which
// pathway ran.
func TestAdvanceQuarterWithoutCatalog(t *testing.T) {
	g := newTestGame(t, 3)
	g.Catalog = nil
	m := releasedModel("Home Star", 500, 1983, 1)
	g.AddModel(m)

	report, err := g.AdvanceQuarter()
	require.NoError(t, err)

	require.Len(t, report.Models, 1)
	mr := report.Models[0]
	assert.Greater(t, mr.Units, int64(0))
	assert.Equal(t, mr.Units*500, mr.Revenue)
	assert.Equal(t, mr.Units, m.UnitsSold)
	require.NotEmpty(t, mr.Segments)

	p := mr.Profit
	assert.Equal(t, p.Revenue-p.TotalCosts(), p.NetProfit)
	assert.Equal(t, report.Profit-report.Expenses.Total(), report.NetCashFlow)

	assert.Equal(t, 1983, g.Year)
	assert.Equal(t, 2, g.Quarter, "the calendar still advances")
}

func TestDevelopmentProgressAndRelease(t *testing.T) {
	g := newTestGame(t, 2)
	m, err := g.FinalizeDesign("Sprout", company.ComponentSelection{
		CPU: "cpu-6502", GPU: "gpu-tms9918", RAM: "ram-16k", Sound: "snd-beeper",
		Storage: "sto-cassette", Display: "dsp-rf", Case: "case-breadbin",
	}, 300)
	require.NoError(t, err)
	assert.Equal(t, company.StatusDevelopment, m.Status)
	assert.Equal(t, 2, m.DevelopmentTime)

	_, err = g.AdvanceQuarter()
	require.NoError(t, err)
	assert.Equal(t, company.StatusDevelopment, m.Status)
	assert.InDelta(t, 50, m.DevelopmentProgress, 1e-9)

	_, err = g.AdvanceQuarter()
	require.NoError(t, err)
	assert.Equal(t, company.StatusReleased, m.Status)
	assert.Equal(t, 1983, m.ReleaseYear)
	assert.Equal(t, 2, m.ReleaseQuarter)
	assert.Greater(t, m.UnitsSold, int64(0), "a model released mid-turn sells the same quarter")
}

func TestSeededSessionsAreIdentical(t *testing.T) {
	run := func() ([]int64, *Game) {
		g := newTestGame(t, 42)
		g.AddModel(releasedModel("Twin", 450, 1983, 1))

		var units []int64
		for i := 0; i < 12; i++ {
			r, err := g.AdvanceQuarter()
			require.NoError(t, err)
			units = append(units, r.UnitsSold, r.Revenue, r.Profit, r.NetCashFlow)
		}
		return units, g
	}

	unitsA, ga := run()
	unitsB, gb := run()

	assert.Equal(t, unitsA, unitsB, "same seed, same quarters")
	assert.Equal(t, ga.Company.Cash, gb.Company.Cash)
	assert.Equal(t, ga.Company.MarketShare, gb.Company.MarketShare)
	assert.Equal(t, ga.Company.Reputation, gb.Company.Reputation)
	assert.Equal(t, len(ga.Chips), len(gb.Chips))
}

func TestEndOfGameIsTerminalAndIdempotent(t *testing.T) {
	g := newTestGame(t, 5)
	g.Year = g.EndYear

	cash := g.Company.Cash
	first, err := g.AdvanceQuarter()
	require.NoError(t, err)
	require.NotNil(t, first.End)
	assert.True(t, first.End.IsEnded)
	assert.True(t, g.Ended)
	require.NotNil(t, g.Final)
	assert.Equal(t, cash, g.Company.Cash, "a finished game never mutates")

	final := *g.Final
	second, err := g.AdvanceQuarter()
	require.NoError(t, err)
	require.NotNil(t, second.End)
	assert.Equal(t, final, second.End.Final, "the final result is computed once")
	assert.Equal(t, cash, g.Company.Cash)
}

func TestFinalRankCountsStrongerRivals(t *testing.T) {
	g := newTestGame(t, 5)
	g.Year = g.EndYear
	g.Company.MarketShare = 25

	r, err := g.AdvanceQuarter()
	require.NoError(t, err)

	want := 1
	for _, c := range g.Competitors {
		if c.MarketShare > 25 {
			want++
		}
	}
	assert.Equal(t, want, r.End.Final.Rank)
	assert.NotEmpty(t, r.End.WinnerText)
}

func TestFinalResultCountsLifetimeShipments(t *testing.T) {
	g := newTestGame(t, 5)
	g.Year = g.EndYear

	current := releasedModel("Home Star", 500, 1983, 1)
	current.UnitsSold = 40_000
	g.AddModel(current)

	retired := releasedModel("Home Star Jr", 300, 1983, 1)
	retired.UnitsSold = 9_000
	retired.Status = company.StatusDiscontinued
	g.AddModel(retired)

	r, err := g.AdvanceQuarter()
	require.NoError(t, err)
	require.NotNil(t, r.End)
	assert.Equal(t, int64(49_000), r.End.Final.UnitsShipped,
		"discontinued machines still count toward the lifetime total")
}

func TestReputationDeltaBounds(t *testing.T) {
	assert.Equal(t, 3.0, reputationDelta(1_000_000, 1, 1_000_000), "upper clamp")
	assert.LessOrEqual(t, reputationDelta(0, -1_000_000, 0), 0.0)
	assert.GreaterOrEqual(t, reputationDelta(0, -1_000_000, 0), -2.0, "lower clamp")
}

func TestUpdateMarketShare(t *testing.T) {
	g := newTestGame(t, 1)
	g.Company.MarketShare = 10

	assert.Zero(t, g.updateMarketShare(0), "no units moved anywhere, no movement")

	g.RivalQuarterUnits = 9_000
	delta := g.updateMarketShare(1_000)
	assert.InDelta(t, 0.7*10+0.3*10, g.Company.MarketShare, 1e-9,
		"a 10% instant split blends against the old 10% share")
	assert.InDelta(t, 0.0, delta, 1e-9)

	g.RivalQuarterUnits = 1_000
	g.updateMarketShare(9_000)
	assert.Greater(t, g.Company.MarketShare, 10.0)
	assert.LessOrEqual(t, g.Company.MarketShare, 100.0)
}

func TestCompetitorShareStaysBounded(t *testing.T) {
	g := newTestGame(t, 8)

	before := make(map[string]float64)
	for _, c := range g.Competitors {
		before[c.ID] = c.MarketShare
	}

	report := &QuarterReport{}
	units := g.updateCompetitors(report)
	assert.GreaterOrEqual(t, units, int64(0))

	for _, c := range g.Competitors {
		assert.GreaterOrEqual(t, c.MarketShare, 0.1)
		assert.LessOrEqual(t, c.MarketShare, 100.0)
		step := c.MarketShare - before[c.ID]
		assert.LessOrEqual(t, step, 2.0, "per-quarter drift is capped (%s)", c.ID)
		assert.GreaterOrEqual(t, step, -2.0, "per-quarter drift is capped (%s)", c.ID)
	}
}

func TestQuarterReportNewsIncludesQuarterSummary(t *testing.T) {
	g := newTestGame(t, 6)
	g.AddModel(releasedModel("Noted", 500, 1983, 1))

	report, err := g.AdvanceQuarter()
	require.NoError(t, err)
	require.NotEmpty(t, report.News)

	found := false
	for _, n := range report.News {
		if n.Type == "quarter_report" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMarketDataRanksTopProducts(t *testing.T) {
	g := newTestGame(t, 7)
	g.AddModel(releasedModel("Ranked", 500, 1983, 1))

	report, err := g.AdvanceQuarter()
	require.NoError(t, err)

	md := report.Market
	assert.Greater(t, md.TotalMarketSize, int64(0))
	assert.LessOrEqual(t, len(md.TopProducts), 5)
	for i := 1; i < len(md.TopProducts); i++ {
		assert.GreaterOrEqual(t, md.TopProducts[i-1].UnitsSold, md.TopProducts[i].UnitsSold)
	}
}
