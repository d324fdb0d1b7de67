package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/micromogul/internal/company"
)

func chipExclusiveUntil(year, quarter int) *company.CustomChip {
	return &company.CustomChip{
		ID:                    "chip-test",
		Exclusive:             true,
		ExclusiveUntilYear:    year,
		ExclusiveUntilQuarter: quarter,
	}
}

func TestLapsedChipUpliftDiffusesToRivals(t *testing.T) {
	g := newTestGame(t, 9)
	g.Year, g.Quarter = 1988, 1

	assert.Equal(t, 1.0, g.lapsedChipUplift(), "no chips, no uplift")

	g.Chips = append(g.Chips, &company.CustomChip{ID: "chip-roll", Exclusive: true})
	assert.Equal(t, 1.0, g.lapsedChipUplift(), "unconditional exclusivity never diffuses")

	g.Chips = append(g.Chips, chipExclusiveUntil(1990, 1))
	assert.Equal(t, 1.0, g.lapsedChipUplift(), "windowed chips stay exclusive inside the window")

	g.Chips = append(g.Chips, chipExclusiveUntil(1987, 3))
	assert.InDelta(t, 1.02, g.lapsedChipUplift(), 1e-9)

	g.Chips = append(g.Chips, chipExclusiveUntil(1988, 1))
	assert.InDelta(t, 1.04, g.lapsedChipUplift(), 1e-9,
		"exclusivity ends at the window boundary")
}

func TestLapsedChipUpliftIsCapped(t *testing.T) {
	g := newTestGame(t, 9)
	g.Year, g.Quarter = 1992, 4

	for i := 0; i < 8; i++ {
		g.Chips = append(g.Chips, chipExclusiveUntil(1985, 1))
	}
	assert.InDelta(t, 1.10, g.lapsedChipUplift(), 1e-9)
}

func TestLapsedChipUpliftRaisesRivalPerformance(t *testing.T) {
	base := newTestGame(t, 9)
	base.Year, base.Quarter = 1989, 1

	boosted := newTestGame(t, 9)
	boosted.Year, boosted.Quarter = 1989, 1
	boosted.Chips = append(boosted.Chips, chipExclusiveUntil(1988, 1))

	require.NotEmpty(t, base.Competitors)
	p, ok := rivalProfiles[base.Competitors[0].ID]
	require.True(t, ok)

	mBase := base.generateRivalModel(base.Competitors[0], p)
	mBoosted := boosted.generateRivalModel(boosted.Competitors[0], p)
	assert.Greater(t, mBoosted.Performance, mBase.Performance,
		"same seed, same rival, the lapsed chip is the only difference")
}
