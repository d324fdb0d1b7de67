package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/micromogul/internal/company"
)

func roster() []*company.ComputerModel {
	return []*company.ComputerModel{
		{ID: "dev", Status: company.StatusDevelopment},
		{ID: "live-1", Status: company.StatusReleased, UnitsSold: 1_000},
		{ID: "live-2", Status: company.StatusReleased, UnitsSold: 2_500},
		{ID: "retired", Status: company.StatusDiscontinued, UnitsSold: 9_000},
	}
}

func TestClassifyPartitionsByStatus(t *testing.T) {
	c := Classify(roster())

	assert.Len(t, c.InDevelopment, 1)
	assert.Len(t, c.MarketRelevant, 2)
	assert.Len(t, c.Discontinued, 1)
	assert.Equal(t, "dev", c.InDevelopment[0].ID)
	assert.Equal(t, "retired", c.Discontinued[0].ID)
}

func TestTotalUnitsSoldExcludesDiscontinued(t *testing.T) {
	assert.Equal(t, int64(3_500), TotalUnitsSold(roster()))
}

func TestLifetimeUnitsIncludesWholeRoster(t *testing.T) {
	assert.Equal(t, int64(12_500), LifetimeUnits(roster()))
}

func TestClassifyEmptyRoster(t *testing.T) {
	c := Classify(nil)
	assert.Empty(t, c.InDevelopment)
	assert.Empty(t, c.MarketRelevant)
	assert.Empty(t, c.Discontinued)
}
