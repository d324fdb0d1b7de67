// Demand model — per-segment appeal, price acceptance, competition,
// seasonality, and marketing factors combined into a projected unit
// and revenue estimate.
package economy

import (
	"math"

	"github.com/talgya/micromogul/internal/company"
	"github.com/talgya/micromogul/internal/entropy"
	"github.com/talgya/micromogul/internal/hardware"
)

const (
	// MarketingBaseBudget is the spend at which marketing effectiveness
	// is neutral for a 50-reputation company.
	MarketingBaseBudget = 25_000

	// UnitVariability is the ± spread of the random jitter applied to
	// each segment's unit estimate.
	UnitVariability = 0.25

	competitionPriceBand = 0.35 // Rivals within ±35% of our price compete
	competitionFloor     = 0.35
)

// Appeal computes the 0–100 attractiveness of a component selection to
// one segment at a calendar year. Weights differ sharply per segment
// and raw scores are scaled by the year's tech-trend multipliers.
func Appeal(cat *hardware.Catalog, sel company.ComponentSelection, seg Segment, year int) float64 {
	cpu, _ := cat.Lookup(sel.CPU)
	gpu, _ := cat.Lookup(sel.GPU)
	ram, _ := cat.Lookup(sel.RAM)
	snd, _ := cat.Lookup(sel.Sound)
	sto, _ := cat.Lookup(sel.Storage)
	dsp, _ := cat.Lookup(sel.Display)
	cs, _ := cat.Lookup(sel.Case)

	var appeal float64
	switch seg {
	case SegmentGamer:
		appeal = 0.38*gpu.Performance*GraphicsTrend(year) +
			0.22*snd.Performance*SoundTrend(year) +
			0.17*cpu.Performance +
			0.13*dsp.Performance +
			0.10*cs.Performance
	case SegmentBusiness:
		appeal = 0.45*cpu.Performance +
			0.25*ram.Performance +
			0.18*sto.Performance*StorageTrend(year) +
			0.12*cs.Quality
	case SegmentWorkstation:
		storagePerf := sto.Performance
		if sto.Tier < 2 {
			// Cassette-class storage doesn't count for professional work.
			storagePerf = 0
		}
		appeal = 0.55*cpu.Performance +
			0.28*ram.Performance +
			0.17*storagePerf*StorageTrend(year)
	}

	return Clamp(appeal, 0, 100)
}

// PriceAcceptance returns the fraction of segment buyers who accept a
// price, given the product's appeal. Exactly 1.0 at or below the
// segment's optimal price, strictly decreasing above it, never
// negative. High appeal raises the acceptance floor so quality
// partially justifies premium pricing.
func PriceAcceptance(price int64, seg MarketSegment, appeal float64) float64 {
	optimal := seg.OptimalPrice()
	if price <= optimal {
		return 1.0
	}

	max := seg.MaxAcceptablePrice
	floor := 0.65 + appealBonus(appeal)

	if price <= max {
		// Linear decay from 1.0 at optimal down to the floor at max.
		span := float64(max - optimal)
		if span <= 0 {
			return floor
		}
		return 1 - (1-floor)*float64(price-optimal)/span
	}

	// Beyond the ceiling acceptance collapses exponentially, steeper
	// for price-sensitive segments.
	over := float64(price-max) / float64(max)
	return floor * math.Exp(-over*seg.PriceElasticity*3)
}

// appealBonus lifts the mid-range acceptance floor for very desirable
// products, capped so the floor stays below 1.0.
func appealBonus(appeal float64) float64 {
	if appeal <= 80 {
		return 0
	}
	b := (appeal - 80) / 200 // up to +0.10 at appeal 100
	if b > 0.10 {
		b = 0.10
	}
	return b
}

// CompetitionFactor scans rival products priced near ours and
// penalizes demand for every rival that outclasses the candidate's
// segment appeal. Floored so a crowded market never zeroes demand.
func CompetitionFactor(price int64, appeal float64, rivals []company.CompetitorModel) float64 {
	factor := 1.0
	lo := float64(price) * (1 - competitionPriceBand)
	hi := float64(price) * (1 + competitionPriceBand)

	for _, r := range rivals {
		p := float64(r.Price)
		if p < lo || p > hi {
			continue
		}
		switch {
		case r.Performance > appeal*1.15:
			factor *= 0.82
		case r.Performance >= appeal*0.95:
			factor *= 0.90
		}
	}

	if factor < competitionFloor {
		factor = competitionFloor
	}
	return factor
}

// MarketingEffectiveness converts a marketing budget into a demand
// multiplier with diminishing returns, scaled by company reputation
// and the segment's reputation sensitivity. Clamped to [0.5, 3.0].
func MarketingEffectiveness(budget int64, reputation, reputationWeight float64) float64 {
	if budget < 0 {
		budget = 0
	}
	eff := math.Sqrt(float64(budget)/MarketingBaseBudget) *
		(0.5 + reputation/100*reputationWeight)
	return Clamp(eff, 0.5, 3.0)
}

// SegmentForecast is the demand projection for one model in one segment.
type SegmentForecast struct {
	Segment Segment `json:"segment"`
	Units   int64   `json:"units"`
	Revenue int64   `json:"revenue"`
	Appeal  float64 `json:"appeal"`
}

// Forecast is the aggregate demand projection for one model.
type Forecast struct {
	Segments []SegmentForecast `json:"segments"`
	Units    int64             `json:"units"`
	Revenue  int64             `json:"revenue"`
}

// ForecastInput carries everything the demand model reads. The model
// never mutates any of it.
type ForecastInput struct {
	Catalog *hardware.Catalog
	Model   *company.ComputerModel

	Year    int
	Quarter int

	MarketingBudget int64
	Reputation      float64

	Rivals []company.CompetitorModel

	// Macro business-cycle factor for this quarter (1.0 = neutral).
	CycleFactor float64
}

// Project runs the full demand model for one released product across
// all active segments. Randomness comes only from src, so a seeded
// source reproduces the projection exactly.
func Project(in ForecastInput, src entropy.Source) Forecast {
	obs := ObsolescenceFactor(in.Model.ReleaseYear, in.Model.ReleaseQuarter, in.Year, in.Quarter)
	cycle := in.CycleFactor
	if cycle <= 0 {
		cycle = 1.0
	}

	var out Forecast
	for _, seg := range Segments(in.Year) {
		appeal := Appeal(in.Catalog, in.Model.Components, seg.Name, in.Year)
		sf := SegmentForecast{Segment: seg.Name, Appeal: appeal}

		if seg.Size > 0 {
			acceptance := PriceAcceptance(in.Model.Price, seg, appeal)
			competition := CompetitionFactor(in.Model.Price, appeal, in.Rivals)
			season := Seasonality(seg.Name, in.Quarter)
			marketing := MarketingEffectiveness(in.MarketingBudget, in.Reputation, seg.ReputationWeight)
			jitter := entropy.Jitter(src, UnitVariability)

			units := float64(seg.Size) * seg.BasePenetration * (appeal / 100) *
				acceptance * competition * obs * season * marketing * cycle * jitter
			if units < 0 {
				units = 0
			}
			sf.Units = int64(units)
			sf.Revenue = sf.Units * in.Model.Price
		}

		out.Segments = append(out.Segments, sf)
		out.Units += sf.Units
		out.Revenue += sf.Revenue
	}
	return out
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
