// Price advisor — suggests a selling price from the per-category
// price-value picture. Advisory only: it never writes the price back.
package scoring

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/talgya/micromogul/internal/economy"
)

// recommendTolerance is the relative deviation below which the current
// price is considered fine and no recommendation is made.
const recommendTolerance = 0.10

// Recommend computes an advisory price for an evaluated design. The
// suggestion is the category-score-weighted blend of each applicable
// segment's expected price; a recommendation is only raised when the
// current price strays more than recommendTolerance from it.
func Recommend(r *TestResult, currentPrice int64) *PriceRecommendation {
	type band struct {
		seg    economy.Segment
		score  float64
		weight float64
	}
	bands := []band{
		{economy.SegmentGamer, r.Gaming.Score, r.Gaming.Score},
		{economy.SegmentBusiness, r.Business.Score, r.Business.Score},
	}
	if r.Workstation.Applicable {
		bands = append(bands, band{economy.SegmentWorkstation, r.Workstation.Score, r.Workstation.Score})
	}

	var weighted, weightSum float64
	for _, b := range bands {
		if b.weight <= 0 {
			continue
		}
		weighted += expectedPrice(b.seg, b.score, r.Year) * b.weight
		weightSum += b.weight
	}
	if weightSum == 0 {
		return &PriceRecommendation{}
	}

	suggested := int64(math.Round(weighted / weightSum))
	if currentPrice > 0 {
		dev := math.Abs(float64(currentPrice-suggested)) / float64(currentPrice)
		if dev <= recommendTolerance {
			return &PriceRecommendation{
				RecommendedPrice: suggested,
				Reasoning:        "Current price sits within the expected range for this class of machine.",
			}
		}
	}

	reason := fmt.Sprintf("Buyers in the strongest segments expect roughly $%s for this specification.",
		humanize.Comma(suggested))
	if currentPrice > suggested {
		reason = fmt.Sprintf("Priced $%s above what the target segments expect; consider closer to $%s.",
			humanize.Comma(currentPrice-suggested), humanize.Comma(suggested))
	}

	return &PriceRecommendation{
		HasRecommendation: true,
		RecommendedPrice:  suggested,
		Reasoning:         reason,
	}
}
