// Package scoring evaluates a finished design into a test report:
// per-category quality scores, compatibility, build quality,
// price-value, a qualitative rating, and a market-impact projection.
// The numeric core in this file is fully deterministic; all copywriting
// lives in text.go so wording changes never move a number.
package scoring

import (
	"math"

	"github.com/talgya/micromogul/internal/company"
	"github.com/talgya/micromogul/internal/economy"
	"github.com/talgya/micromogul/internal/hardware"
)

const compatibilityBaseline = 80

// SubScores are the four component sub-scores, each relative to the
// best part on the market in the test year — a 1983 chip scores well
// in 1983 and poorly in 1990.
type SubScores struct {
	CPU   float64 `json:"cpu"`
	GPU   float64 `json:"gpu"`
	RAM   float64 `json:"ram"`
	Sound float64 `json:"sound"`
}

// CategoryScore is one segment's verdict on the design.
type CategoryScore struct {
	Score      float64 `json:"score"`
	Rating     string  `json:"rating"`
	Comment    string  `json:"comment"`
	PriceValue float64 `json:"price_value"`
	Applicable bool    `json:"applicable"`
}

// Compatibility is the tier-balance assessment.
type Compatibility struct {
	Score       float64  `json:"score"`
	Bottlenecks []string `json:"bottlenecks,omitempty"`
	Synergies   []string `json:"synergies,omitempty"`
}

// MarketImpact projects how the launch will land.
type MarketImpact struct {
	ReputationDelta    float64 `json:"reputation_delta"`
	SalesBoostPercent  float64 `json:"sales_boost_percent"`
	CompetitorResponse string  `json:"competitor_response"`
	MarketPosition     string  `json:"market_position"`
}

// PriceRecommendation is advisory only — it is never auto-applied.
type PriceRecommendation struct {
	HasRecommendation bool   `json:"has_recommendation"`
	RecommendedPrice  int64  `json:"recommended_price"`
	Reasoning         string `json:"reasoning"`
}

// TestResult is the full report for one design at one test year.
type TestResult struct {
	ModelName string `json:"model_name"`
	Year      int    `json:"year"`

	Sub SubScores `json:"sub_scores"`

	Gaming      CategoryScore `json:"gaming"`
	Business    CategoryScore `json:"business"`
	Workstation CategoryScore `json:"workstation"`

	Compatibility Compatibility `json:"compatibility"`
	BuildQuality  float64       `json:"build_quality"`
	CaseMatch     bool          `json:"case_match"`

	Overall       float64 `json:"overall"`
	OverallRating string  `json:"overall_rating"`

	Impact MarketImpact `json:"market_impact"`

	Price *PriceRecommendation `json:"price_recommendation,omitempty"`
}

// Evaluate produces the test report for a design priced at price in
// the given year.
func Evaluate(cat *hardware.Catalog, name string, sel company.ComponentSelection, price int64, year int) *TestResult {
	r := &TestResult{ModelName: name, Year: year}

	cpu, _ := cat.Lookup(sel.CPU)
	gpu, _ := cat.Lookup(sel.GPU)
	ram, _ := cat.Lookup(sel.RAM)
	snd, _ := cat.Lookup(sel.Sound)
	sto, _ := cat.Lookup(sel.Storage)
	dsp, _ := cat.Lookup(sel.Display)
	cs, _ := cat.Lookup(sel.Case)

	r.Sub = SubScores{
		CPU:   subScore(cat, cpu, hardware.CategoryCPU, year),
		GPU:   subScore(cat, gpu, hardware.CategoryGPU, year),
		RAM:   subScore(cat, ram, hardware.CategoryRAM, year),
		Sound: subScore(cat, snd, hardware.CategorySound, year),
	}

	r.Gaming = categoryScore(0.45*r.Sub.GPU+0.25*r.Sub.Sound+0.20*r.Sub.CPU+0.10*r.Sub.RAM, true)
	r.Business = categoryScore(0.55*r.Sub.CPU+0.30*r.Sub.RAM+0.10*r.Sub.GPU+0.05*r.Sub.Sound, true)

	wsApplicable := year >= economy.WorkstationStartYear
	var wsRaw float64
	if wsApplicable {
		wsRaw = 0.60*r.Sub.CPU + 0.30*r.Sub.RAM + 0.10*r.Sub.GPU
	}
	r.Workstation = categoryScore(wsRaw, wsApplicable)

	r.Compatibility = compatibility(cpu, gpu, ram, snd, sto)

	quality := (cpu.Quality + gpu.Quality + ram.Quality + snd.Quality + sto.Quality + dsp.Quality) / 6
	r.BuildQuality = economy.Clamp(0.6*quality+0.4*cs.Quality, 0, 100)
	r.CaseMatch = caseMatches(cs, r.Gaming.Score, r.Business.Score)

	r.Gaming.PriceValue = priceValue(price, economy.SegmentGamer, r.Gaming.Score, year)
	r.Business.PriceValue = priceValue(price, economy.SegmentBusiness, r.Business.Score, year)
	if wsApplicable {
		r.Workstation.PriceValue = priceValue(price, economy.SegmentWorkstation, r.Workstation.Score, year)
	}

	r.Overall = overall(r, wsApplicable)
	r.OverallRating = Rating(r.Overall)

	r.Gaming.Rating = Rating(r.Gaming.Score)
	r.Business.Rating = Rating(r.Business.Score)
	if wsApplicable {
		r.Workstation.Rating = Rating(r.Workstation.Score)
	} else {
		r.Workstation.Rating = "Not Applicable"
	}

	r.Impact = marketImpact(r.Overall)
	annotate(r)
	return r
}

// subScore rates a part against the strongest part of its class
// available in the test year.
func subScore(cat *hardware.Catalog, p hardware.Part, class hardware.Category, year int) float64 {
	best := cat.BestAvailable(class, year, 4)
	if best.Performance <= 0 {
		return 0
	}
	return economy.Clamp(p.Performance/best.Performance*100, 0, 100)
}

func categoryScore(raw float64, applicable bool) CategoryScore {
	if !applicable {
		return CategoryScore{Applicable: false}
	}
	return CategoryScore{Score: economy.Clamp(raw, 0, 100), Applicable: true}
}

// compatibility starts at a baseline and rewards balanced component
// tiers; mismatches over two tiers are bottlenecks.
func compatibility(cpu, gpu, ram, snd, sto hardware.Part) Compatibility {
	c := Compatibility{Score: compatibilityBaseline}

	core := []struct {
		name string
		tier int
	}{
		{"CPU", cpu.Tier}, {"graphics", gpu.Tier}, {"memory", ram.Tier},
	}

	minTier, maxTier := core[0].tier, core[0].tier
	for _, x := range core[1:] {
		if x.tier < minTier {
			minTier = x.tier
		}
		if x.tier > maxTier {
			maxTier = x.tier
		}
	}

	if maxTier-minTier <= 1 {
		c.Score += 10
		c.Synergies = append(c.Synergies, synergyBalanced)
	}

	for i := 0; i < len(core); i++ {
		for j := i + 1; j < len(core); j++ {
			gap := core[i].tier - core[j].tier
			if gap < 0 {
				gap = -gap
			}
			if gap > 2 {
				c.Score -= 15
				weak := core[i].name
				if core[j].tier < core[i].tier {
					weak = core[j].name
				}
				c.Bottlenecks = append(c.Bottlenecks, bottleneck(weak))
			}
		}
	}

	// A strong sound chip next to a capable video chip is a noted combo.
	if snd.Tier >= 3 && gpu.Tier >= 3 {
		c.Score += 5
		c.Synergies = append(c.Synergies, synergyMultimedia)
	}
	// Cassette storage throttles everything above entry level.
	if sto.Tier <= 1 && maxTier >= 3 {
		c.Score -= 10
		c.Bottlenecks = append(c.Bottlenecks, bottleneck("storage"))
	}

	c.Score = economy.Clamp(c.Score, 0, 100)
	return c
}

// caseMatches verifies the chosen case style against the hardware
// profile: gamer cases suit gaming-leaning machines, office cases suit
// business-leaning ones.
func caseMatches(cs hardware.Part, gaming, business float64) bool {
	switch cs.Style {
	case "gamer":
		return gaming >= business
	case "office":
		return business >= gaming
	}
	return true
}

// priceValue rates how well the price fits the segment's expected
// price for a machine of this quality: 100 at a perfect fit, falling
// linearly with relative deviation, clamped to [0, 100].
func priceValue(price int64, seg economy.Segment, score float64, year int) float64 {
	expected := expectedPrice(seg, score, year)
	if expected <= 0 {
		return 0
	}
	dev := math.Abs(float64(price)-expected) / expected * 100
	return economy.Clamp(100-dev, 0, 100)
}

// expectedPrice is what the segment expects to pay for a machine of
// the given category score in the given year.
func expectedPrice(seg economy.Segment, score float64, year int) float64 {
	for _, s := range economy.Segments(year) {
		if s.Name == seg {
			return float64(s.OptimalPrice()) * (0.5 + score/100)
		}
	}
	return 0
}

// overall blends category scores with compatibility and build quality.
// Weights shift once the workstation segment is active.
func overall(r *TestResult, wsApplicable bool) float64 {
	var v float64
	if wsApplicable {
		v = 0.30*r.Gaming.Score + 0.25*r.Business.Score + 0.15*r.Workstation.Score +
			0.15*r.Compatibility.Score + 0.15*r.BuildQuality
	} else {
		v = 0.40*r.Gaming.Score + 0.30*r.Business.Score +
			0.15*r.Compatibility.Score + 0.15*r.BuildQuality
	}
	return economy.Clamp(v, 0, 100)
}

// marketImpact projects reputation movement and a sales boost from the
// overall score.
func marketImpact(overall float64) MarketImpact {
	m := MarketImpact{
		SalesBoostPercent:  (overall - 70) * 0.8,
		CompetitorResponse: competitorResponse(overall),
		MarketPosition:     marketPosition(overall),
	}
	switch {
	case overall >= 90:
		m.ReputationDelta = 5
	case overall >= 80:
		m.ReputationDelta = 3
	case overall >= 70:
		m.ReputationDelta = 1
	case overall >= 60:
		m.ReputationDelta = 0
	case overall >= 50:
		m.ReputationDelta = -1
	default:
		m.ReputationDelta = -3
	}
	return m
}

// Rating maps a numeric score onto the eight-tier qualitative scale.
// The thresholds are fixed; tests depend on them exactly.
func Rating(score float64) string {
	switch {
	case score >= 95:
		return "Revolutionary"
	case score >= 85:
		return "Outstanding"
	case score >= 75:
		return "Excellent"
	case score >= 65:
		return "Good"
	case score >= 55:
		return "Decent"
	case score >= 45:
		return "Mediocre"
	case score >= 30:
		return "Poor"
	default:
		return "Dreadful"
	}
}
