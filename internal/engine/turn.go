// Turn orchestrator — the single entry point that advances a session
// by one quarter. Runs to completion synchronously; on error the
// caller discards the attempt and keeps prior state.
package engine

import (
	"log/slog"
	"sort"
	"strconv"

	"github.com/talgya/micromogul/internal/company"
	"github.com/talgya/micromogul/internal/economy"
	"github.com/talgya/micromogul/internal/news"
	"github.com/talgya/micromogul/internal/status"
)

// Thresholds for hit/flop news coverage.
const (
	hitUnitsThreshold  = 30_000
	flopUnitsThreshold = 500
)

// AdvanceQuarter runs one full turn: development progress, research,
// demand and profit per market-relevant model, cash flow, reputation
// and market share, competitor evolution, and the quarter report.
func (g *Game) AdvanceQuarter() (*QuarterReport, error) {
	// 1. End-of-game is terminal and idempotent: no further mutation.
	if g.Ended || g.Year >= g.EndYear {
		return g.terminalReport(), nil
	}

	report := &QuarterReport{
		Year:    g.Year,
		Quarter: g.Quarter,
		Expenses: ExpenseBreakdown{
			Marketing:   g.Budget.Marketing,
			Development: g.Budget.Development,
			Research:    g.Budget.Research,
		},
	}

	classified := status.Classify(g.Models)

	// 2. Development progress for in-development products.
	g.advanceDevelopment(classified.InDevelopment, report)

	// 3. Cost decay and obsolescence are pure functions of the calendar;
	// log the aging picture for diagnostics.
	g.logAging(classified.MarketRelevant)

	// 4. Research: the budget-roll generator and the investment-tracked
	// project workflow both run every quarter.
	g.CumulativeResearch += g.Budget.Research
	if chip := g.rollResearch(); chip != nil {
		report.NewChip = chip
		g.pressRelease(report, news.EventChipUnlock, map[string]string{
			"chip":     chip.Name,
			"category": string(chip.Category),
		})
	}
	g.fundProjects(report)

	// Re-classify: models released this quarter start selling now.
	classified = status.Classify(g.Models)

	// 5. Demand and profit for every market-relevant product.
	totals := g.runMarket(classified.MarketRelevant, report)

	// 6. Net cash flow is profit minus budget expenses — not revenue
	// minus expenses. Cost of goods already sits inside profit.
	expenses := report.Expenses.Total()
	report.NetCashFlow = totals.NetProfit - expenses

	// 7. Company update.
	g.Company.Cash += report.NetCashFlow
	g.Company.QuarterlyIncome = totals.Revenue
	g.Company.QuarterlyExpense = totals.TotalCosts() + expenses
	g.TotalRevenue += totals.Revenue

	repDelta := reputationDelta(report.UnitsSold, totals.NetProfit, g.Budget.Research)
	g.Company.Reputation = economy.Clamp(g.Company.Reputation+repDelta, 0, 100)
	report.Reputation = g.Company.Reputation
	report.ReputationDelta = repDelta

	// 8. Competitor evolution.
	g.RivalQuarterUnits = g.updateCompetitors(report)

	shareDelta := g.updateMarketShare(report.UnitsSold)
	report.MarketShare = g.Company.MarketShare
	report.MarketShareDelta = shareDelta

	// 9. Narrative and market data for the player screen.
	g.composeNews(report, totals)
	report.Market = g.marketData()

	slog.Info("quarter complete",
		"year", g.Year,
		"quarter", g.Quarter,
		"revenue", totals.Revenue,
		"profit", totals.NetProfit,
		"units", report.UnitsSold,
		"cash", g.Company.Cash,
		"share", g.Company.MarketShare,
		"reputation", g.Company.Reputation,
	)

	// Advance the calendar.
	g.Quarter++
	if g.Quarter > 4 {
		g.Quarter = 1
		g.Year++
	}

	report.Revenue = totals.Revenue
	report.Profit = totals.NetProfit
	report.ProfitMargin = totals.Margin()
	return report, nil
}

// advanceDevelopment moves each in-development model forward. Progress
// is monotonically non-decreasing until release.
func (g *Game) advanceDevelopment(models []*company.ComputerModel, report *QuarterReport) {
	budgetFactor := economy.Clamp(
		float64(g.Budget.Development)/BaselineDevelopmentBudget, 0.5, 2.0)

	for _, m := range models {
		devTime := m.DevelopmentTime
		if devTime < 1 {
			devTime = 1
		}
		m.DevelopmentProgress += (100 / float64(devTime)) * budgetFactor
		if m.DevelopmentProgress >= 100 {
			m.Release(g.Year, g.Quarter)
			g.pressRelease(report, news.EventProductRelease, map[string]string{
				"company": g.Company.Name,
				"model":   m.Name,
				"price":   strconv.FormatInt(m.Price, 10),
			})
			slog.Info("model released", "model", m.Name, "year", g.Year, "quarter", g.Quarter)
		}
	}
}

// logAging reports the decay state of the active roster.
func (g *Game) logAging(models []*company.ComputerModel) {
	for _, m := range models {
		obs := economy.ObsolescenceFactor(m.ReleaseYear, m.ReleaseQuarter, g.Year, g.Quarter)
		bom := g.currentBOM(m)
		slog.Debug("model aging",
			"model", m.Name, "obsolescence", obs, "bom", bom)
	}
}

func (g *Game) currentBOM(m *company.ComputerModel) int64 {
	if g.Catalog == nil {
		return 0
	}
	return economy.BOMCost(g.Catalog, m.Components, g.Year, g.Quarter)
}

// runMarket projects demand and profit for every market-relevant model
// and accumulates the quarter totals.
func (g *Game) runMarket(models []*company.ComputerModel, report *QuarterReport) economy.ProfitBreakdown {
	var totals economy.ProfitBreakdown
	if len(models) == 0 {
		return totals
	}

	// Marketing spend is split evenly across active products.
	perModelMarketing := g.Budget.Marketing / int64(len(models))
	rivals := g.RivalModels()

	for _, m := range models {
		var forecast economy.Forecast
		if g.Catalog != nil {
			forecast = economy.Project(economy.ForecastInput{
				Catalog:         g.Catalog,
				Model:           m,
				Year:            g.Year,
				Quarter:         g.Quarter,
				MarketingBudget: perModelMarketing,
				Reputation:      g.Company.Reputation,
				Rivals:          rivals,
				CycleFactor:     g.Cycle.Factor(g.Year, g.Quarter),
			}, g.Rand)
		} else {
			// Simplified fallback with the identical output shape.
			forecast = fallbackForecast(m, g.Year, g.Quarter, g.Rand)
		}

		m.UnitsSold += forecast.Units

		bom := g.currentBOM(m)
		profit := economy.ComputeProfit(
			forecast.Units, m.Price, bom, m.DevelopmentCost, perModelMarketing)

		report.Models = append(report.Models, ModelResult{
			ModelID:  m.ID,
			Name:     m.Name,
			Units:    forecast.Units,
			Revenue:  forecast.Revenue,
			Profit:   profit,
			Segments: forecast.Segments,
		})
		report.UnitsSold += forecast.Units
		totals.Add(profit)
	}
	return totals
}

// reputationDelta is the bounded per-quarter reputation adjustment
// from sales success and research commitment.
func reputationDelta(units, netProfit, researchBudget int64) float64 {
	var d float64
	if units == 0 {
		d -= 0.5
	} else {
		d += economy.Clamp(float64(units)/40_000, 0, 2)
	}
	if netProfit > 0 {
		d += 0.5
	} else if netProfit < 0 {
		d -= 0.5
	}
	d += 0.5 * economy.Clamp(float64(researchBudget)/100_000, 0, 1)
	return economy.Clamp(d, -2, 3)
}

// updateMarketShare blends the company's share toward this quarter's
// realized unit split against the rivals. Returns the delta.
func (g *Game) updateMarketShare(playerUnits int64) float64 {
	total := playerUnits + g.RivalQuarterUnits
	if total == 0 {
		return 0
	}
	instant := float64(playerUnits) / float64(total) * 100
	old := g.Company.MarketShare
	g.Company.MarketShare = economy.Clamp(0.7*old+0.3*instant, 0, 100)
	return g.Company.MarketShare - old
}

// pressRelease routes an event through the dedup registry and attaches
// the item to the report when it is fresh.
func (g *Game) pressRelease(report *QuarterReport, t news.EventType, payload map[string]string) {
	if item := g.Press.Generate(t, g.Year, g.Quarter, payload); item != nil {
		report.News = append(report.News, *item)
	}
}

// composeNews writes the quarter summary plus hit/flop coverage.
func (g *Game) composeNews(report *QuarterReport, totals economy.ProfitBreakdown) {
	g.pressRelease(report, news.EventQuarterReport, map[string]string{
		"company": g.Company.Name,
		"revenue": strconv.FormatInt(totals.Revenue, 10),
		"units":   strconv.FormatInt(report.UnitsSold, 10),
		"profit":  strconv.FormatInt(totals.NetProfit, 10),
	})

	for _, mr := range report.Models {
		switch {
		case mr.Units >= hitUnitsThreshold:
			g.pressRelease(report, news.EventProductHit, map[string]string{
				"model": mr.Name,
				"units": strconv.FormatInt(mr.Units, 10),
			})
		case mr.Units <= flopUnitsThreshold:
			g.pressRelease(report, news.EventProductFlop, map[string]string{
				"model": mr.Name,
				"units": strconv.FormatInt(mr.Units, 10),
			})
		}
	}
}

// marketData aggregates market-wide figures for reporting.
func (g *Game) marketData() MarketData {
	var size, prevSize int64
	for _, seg := range economy.Segments(g.Year) {
		size += seg.Size
	}
	for _, seg := range economy.Segments(g.Year - 1) {
		prevSize += seg.Size
	}

	md := MarketData{TotalMarketSize: size}
	if prevSize > 0 {
		md.GrowthRate = float64(size-prevSize) / float64(prevSize)
	}

	for _, m := range g.Models {
		if m.Status != company.StatusDevelopment && m.UnitsSold > 0 {
			md.TopProducts = append(md.TopProducts, TopProduct{
				Name: m.Name, Maker: g.Company.Name, UnitsSold: m.UnitsSold,
			})
		}
	}
	for _, c := range g.Competitors {
		for _, rm := range c.Models {
			md.TopProducts = append(md.TopProducts, TopProduct{
				Name: rm.Name, Maker: c.Name, UnitsSold: rm.UnitsSold,
			})
		}
	}
	sort.Slice(md.TopProducts, func(i, j int) bool {
		return md.TopProducts[i].UnitsSold > md.TopProducts[j].UnitsSold
	})
	if len(md.TopProducts) > 5 {
		md.TopProducts = md.TopProducts[:5]
	}
	return md
}

// terminalReport computes the final ranking once and returns the same
// terminal result on every subsequent call.
func (g *Game) terminalReport() *QuarterReport {
	if g.Final == nil {
		rank := 1
		for _, c := range g.Competitors {
			if c.MarketShare > g.Company.MarketShare {
				rank++
			}
		}
		g.Final = &FinalResult{
			Rank:            rank,
			MarketShare:     g.Company.MarketShare,
			Revenue:         g.TotalRevenue,
			UnitsShipped:    status.LifetimeUnits(g.Models),
			CustomChipCount: len(g.Chips),
		}
		g.Ended = true
		slog.Info("game over", "rank", rank, "share", g.Company.MarketShare)
	}

	winner := g.Company.Name
	best := g.Company.MarketShare
	for _, c := range g.Competitors {
		if c.MarketShare > best {
			best = c.MarketShare
			winner = c.Name
		}
	}

	report := &QuarterReport{
		Year:        g.Year,
		Quarter:     g.Quarter,
		MarketShare: g.Company.MarketShare,
		Reputation:  g.Company.Reputation,
		End: &GameEndCondition{
			IsEnded:    true,
			WinnerText: winner + " dominates the home computer era.",
			Final:      *g.Final,
		},
	}
	if item := g.Press.Generate(news.EventGameEnd, g.Year, g.Quarter, map[string]string{
		"company": g.Company.Name,
		"rank":    strconv.Itoa(g.Final.Rank),
	}); item != nil {
		report.News = append(report.News, *item)
	}
	return report
}
