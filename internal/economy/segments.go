// Package economy provides the quarterly economic models: BOM cost
// decay, demand and price acceptance per market segment, obsolescence
// aging, and the profit breakdown. All functions are pure — the turn
// orchestrator owns every mutation.
package economy

// Segment identifies a market segment.
type Segment string

const (
	SegmentGamer       Segment = "gamer"
	SegmentBusiness    Segment = "business"
	SegmentWorkstation Segment = "workstation"
)

// WorkstationStartYear is the first year the workstation segment has
// any buyers. Before it the segment size is zero.
const WorkstationStartYear = 1987

// OptimalPriceRatio is the fraction of a segment's maximum acceptable
// price below which price acceptance is exactly 1.0.
const OptimalPriceRatio = 0.7

// MarketSegment holds the tuning parameters for one buyer segment in
// one calendar year.
type MarketSegment struct {
	Name               Segment
	Size               int64   // Addressable units this year
	PriceElasticity    float64 // 0–1, lower = less price-sensitive
	MaxAcceptablePrice int64   // Dollars
	BasePenetration    float64 // Fraction of segment a strong product can reach per quarter
	ReputationWeight   float64 // How much reputation sways this segment's buyers
}

// Segments returns the three market segments tuned for a calendar
// year. Sizes and price ceilings grow with the installed base.
func Segments(year int) []MarketSegment {
	years := year - 1983
	if years < 0 {
		years = 0
	}

	grow := func(base int64, rate float64) int64 {
		v := float64(base)
		for i := 0; i < years; i++ {
			v *= 1 + rate
		}
		return int64(v)
	}

	gamer := MarketSegment{
		Name:               SegmentGamer,
		Size:               grow(900_000, 0.12),
		PriceElasticity:    0.8,
		MaxAcceptablePrice: grow(1_200, 0.08),
		BasePenetration:    0.06,
		ReputationWeight:   0.6,
	}
	business := MarketSegment{
		Name:               SegmentBusiness,
		Size:               grow(500_000, 0.15),
		PriceElasticity:    0.5,
		MaxAcceptablePrice: grow(3_500, 0.06),
		BasePenetration:    0.035,
		ReputationWeight:   1.0,
	}
	workstation := MarketSegment{
		Name:               SegmentWorkstation,
		Size:               0,
		PriceElasticity:    0.3,
		MaxAcceptablePrice: grow(8_000, 0.05),
		BasePenetration:    0.02,
		ReputationWeight:   1.2,
	}
	if year >= WorkstationStartYear {
		wsYears := year - WorkstationStartYear
		v := 60_000.0
		for i := 0; i < wsYears; i++ {
			v *= 1.2
		}
		workstation.Size = int64(v)
	}

	return []MarketSegment{gamer, business, workstation}
}

// OptimalPrice is the price at or below which the segment accepts a
// product without discount.
func (s MarketSegment) OptimalPrice() int64 {
	return int64(float64(s.MaxAcceptablePrice) * OptimalPriceRatio)
}

// Seasonality returns the demand multiplier for a quarter (1–4).
// Strongest swings are in the gamer segment (holiday season).
func Seasonality(seg Segment, quarter int) float64 {
	if quarter < 1 || quarter > 4 {
		return 1.0
	}
	switch seg {
	case SegmentGamer:
		return [4]float64{0.8, 0.9, 1.0, 1.4}[quarter-1]
	case SegmentBusiness:
		return [4]float64{1.0, 1.05, 1.1, 0.95}[quarter-1]
	case SegmentWorkstation:
		return [4]float64{1.0, 1.0, 1.05, 1.05}[quarter-1]
	}
	return 1.0
}

// Tech-trend multipliers. Buyer expectations for graphics, sound, and
// storage step up at specific years as the software library catches up
// with the hardware.

// GraphicsTrend scales the weight of graphics performance over time.
func GraphicsTrend(year int) float64 {
	switch {
	case year >= 1988:
		return 1.3
	case year >= 1985:
		return 1.15
	default:
		return 1.0
	}
}

// SoundTrend scales the weight of sound hardware over time.
func SoundTrend(year int) float64 {
	if year >= 1987 {
		return 1.2
	}
	return 1.0
}

// StorageTrend scales the weight of storage over time.
func StorageTrend(year int) float64 {
	if year >= 1986 {
		return 1.25
	}
	return 1.0
}
