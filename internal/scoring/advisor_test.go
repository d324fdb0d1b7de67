package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportWithScores(gaming, business float64, year int) *TestResult {
	return &TestResult{
		Year:     year,
		Gaming:   CategoryScore{Score: gaming, Applicable: true},
		Business: CategoryScore{Score: business, Applicable: true},
	}
}

func TestRecommendWithinTolerance(t *testing.T) {
	r := reportWithScores(60, 60, 1985)

	baseline := Recommend(r, 0)
	require.Positive(t, baseline.RecommendedPrice)

	rec := Recommend(r, baseline.RecommendedPrice)
	assert.False(t, rec.HasRecommendation, "a well-placed price raises no flag")
	assert.Equal(t, baseline.RecommendedPrice, rec.RecommendedPrice)
	assert.NotEmpty(t, rec.Reasoning)
}

func TestRecommendOverpriced(t *testing.T) {
	r := reportWithScores(60, 60, 1985)
	suggested := Recommend(r, 0).RecommendedPrice

	rec := Recommend(r, suggested*3)
	assert.True(t, rec.HasRecommendation)
	assert.Equal(t, suggested, rec.RecommendedPrice)
	assert.Contains(t, rec.Reasoning, "above")
}

func TestRecommendUnderpriced(t *testing.T) {
	r := reportWithScores(60, 60, 1985)
	suggested := Recommend(r, 0).RecommendedPrice

	rec := Recommend(r, suggested/3)
	assert.True(t, rec.HasRecommendation)
	assert.NotEmpty(t, rec.Reasoning)
}

func TestRecommendHopelessDesign(t *testing.T) {
	rec := Recommend(reportWithScores(0, 0, 1985), 500)
	assert.False(t, rec.HasRecommendation)
	assert.Zero(t, rec.RecommendedPrice, "no segment wants it, so there is no price to suggest")
}

func TestRecommendWeightsWorkstationWhenActive(t *testing.T) {
	early := reportWithScores(40, 40, 1985)
	late := reportWithScores(40, 40, 1989)
	late.Workstation = CategoryScore{Score: 90, Applicable: true}

	assert.Greater(t, Recommend(late, 0).RecommendedPrice, Recommend(early, 0).RecommendedPrice,
		"a strong workstation showing pulls the suggestion upward")
}

func TestRecommendWithNoCurrentPrice(t *testing.T) {
	r := reportWithScores(70, 30, 1986)
	rec := Recommend(r, 0)
	assert.True(t, rec.HasRecommendation, "with no price set the advisor always suggests one")
	assert.Positive(t, rec.RecommendedPrice)
	assert.Contains(t, rec.Reasoning, "expect")
}
