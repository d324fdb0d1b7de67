package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/micromogul/internal/company"
	"github.com/talgya/micromogul/internal/hardware"
)

func TestPartCostDecaysMonotonically(t *testing.T) {
	cat, err := hardware.Load()
	require.NoError(t, err)

	ram, ok := cat.Lookup("ram-64k")
	require.True(t, ok)

	prev := PartCost(ram, 1983, 1)
	assert.Equal(t, ram.Cost, prev, "cost at the epoch is the baseline")

	for year := 1983; year <= 1992; year++ {
		for q := 1; q <= 4; q++ {
			c := PartCost(ram, year, q)
			assert.LessOrEqual(t, c, prev, "cost must never rise (year %d Q%d)", year, q)
			prev = c
		}
	}
}

func TestPartCostFloor(t *testing.T) {
	cat, err := hardware.Load()
	require.NoError(t, err)

	ram, _ := cat.Lookup("ram-64k")
	far := PartCost(ram, 2050, 1)
	floor := int64(float64(ram.Cost) * 0.30)
	assert.GreaterOrEqual(t, far, floor, "component cost floors at 30% of base")
	assert.Equal(t, far, PartCost(ram, 2060, 1), "cost is stable once floored")

	cs, _ := cat.Lookup("case-breadbin")
	farCase := PartCost(cs, 2050, 1)
	caseFloor := int64(float64(cs.Cost) * 0.50)
	assert.GreaterOrEqual(t, farCase, caseFloor, "accessory cost floors at 50% of base")
}

func TestBOMCostUnknownAndEmptyIDs(t *testing.T) {
	cat, err := hardware.Load()
	require.NoError(t, err)

	assert.Zero(t, BOMCost(cat, company.ComponentSelection{}, 1983, 1),
		"empty selection costs nothing")

	sel := company.ComponentSelection{CPU: "no-such-part"}
	got := BOMCost(cat, sel, 1983, 1)
	assert.Equal(t, hardware.DefaultPart.Cost, got,
		"unknown ids resolve to the default part instead of failing")
}

func TestBOMCostSumsSelection(t *testing.T) {
	cat, err := hardware.Load()
	require.NoError(t, err)

	sel := company.ComponentSelection{CPU: "cpu-6502", RAM: "ram-16k"}
	cpu, _ := cat.Lookup("cpu-6502")
	ram, _ := cat.Lookup("ram-16k")

	want := PartCost(cpu, 1984, 3) + PartCost(ram, 1984, 3)
	assert.Equal(t, want, BOMCost(cat, sel, 1984, 3))
}

func TestObsolescenceFactor(t *testing.T) {
	assert.Equal(t, 1.0, ObsolescenceFactor(1985, 2, 1985, 2), "fresh product has no penalty")
	assert.Equal(t, 1.0, ObsolescenceFactor(1986, 1, 1985, 2), "future release clamps to no penalty")

	prev := 1.0
	for q := 0; q < 20; q++ {
		year, quarter := 1985+(1+q)/4, (1+q)%4+1
		f := ObsolescenceFactor(1985, 2, year, quarter)
		assert.LessOrEqual(t, f, prev, "factor never increases with age")
		assert.GreaterOrEqual(t, f, ObsolescenceFloor)
		prev = f
	}

	assert.Equal(t, ObsolescenceFloor, ObsolescenceFactor(1983, 1, 1992, 4),
		"ancient products bottom out at the floor")
}
