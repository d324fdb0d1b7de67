// Package status classifies computer models into lifecycle buckets and
// provides aggregate helpers over the roster. The turn orchestrator
// consults it to decide which models earn revenue each quarter.
package status

import "github.com/talgya/micromogul/internal/company"

// Classification buckets a roster by lifecycle state.
type Classification struct {
	InDevelopment  []*company.ComputerModel
	MarketRelevant []*company.ComputerModel
	Discontinued   []*company.ComputerModel
}

// Classify partitions models by status. Discontinued models are kept
// in the roster for history but never earn units or revenue.
func Classify(models []*company.ComputerModel) Classification {
	var c Classification
	for _, m := range models {
		switch m.Status {
		case company.StatusDevelopment:
			c.InDevelopment = append(c.InDevelopment, m)
		case company.StatusReleased:
			c.MarketRelevant = append(c.MarketRelevant, m)
		case company.StatusDiscontinued:
			c.Discontinued = append(c.Discontinued, m)
		}
	}
	return c
}

// TotalUnitsSold sums cumulative units across market-relevant models.
func TotalUnitsSold(models []*company.ComputerModel) int64 {
	var total int64
	for _, m := range models {
		if m.Status == company.StatusReleased {
			total += m.UnitsSold
		}
	}
	return total
}

// LifetimeUnits sums cumulative units across the whole roster,
// discontinued models included. Used for ranking and history views.
func LifetimeUnits(models []*company.ComputerModel) int64 {
	var total int64
	for _, m := range models {
		total += m.UnitsSold
	}
	return total
}
