package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/micromogul/internal/company"
)

func TestStartProject(t *testing.T) {
	g := newTestGame(t, 1)

	p, err := g.StartProject("Falcon", company.ChipGPU)
	require.NoError(t, err)
	assert.Equal(t, company.ProjectActive, p.Status)
	assert.Equal(t, int64(300_000), p.Threshold)
	assert.Equal(t, 1983, p.StartedYear)

	_, err = g.StartProject("Falcon II", company.ChipGPU)
	assert.Error(t, err, "one active project per category")

	_, err = g.StartProject("Mystery", company.ChipCategory("floppy"))
	assert.Error(t, err, "unknown categories are rejected")

	_, err = g.StartProject("Hermes", company.ChipSound)
	assert.NoError(t, err, "other categories are unaffected")
}

func TestAbandonProject(t *testing.T) {
	g := newTestGame(t, 1)
	p, err := g.StartProject("Falcon", company.ChipGPU)
	require.NoError(t, err)

	require.NoError(t, g.AbandonProject(p.ID))
	assert.Equal(t, company.ProjectAbandoned, p.Status)
	assert.Error(t, g.AbandonProject(p.ID), "already abandoned")
	assert.Error(t, g.AbandonProject("nope"))

	_, err = g.StartProject("Falcon II", company.ChipGPU)
	assert.NoError(t, err, "abandoning frees the category")
}

func TestFundProjectsSplitsBudget(t *testing.T) {
	g := newTestGame(t, 1)
	a, err := g.StartProject("Falcon", company.ChipGPU)
	require.NoError(t, err)
	b, err := g.StartProject("Hermes", company.ChipSound)
	require.NoError(t, err)

	g.Budget.Research = 40_000
	g.fundProjects(&QuarterReport{})

	assert.Equal(t, int64(20_000), a.Invested)
	assert.Equal(t, int64(20_000), b.Invested)
	assert.Equal(t, company.ProjectActive, a.Status)
}

func TestFundProjectsCompletionGrantsWindowedChip(t *testing.T) {
	g := newTestGame(t, 1)
	g.Year, g.Quarter = 1986, 3

	p, err := g.StartProject("Falcon", company.ChipGPU)
	require.NoError(t, err)

	g.Budget.Research = p.Threshold
	report := &QuarterReport{}
	g.fundProjects(report)

	assert.Equal(t, company.ProjectCompleted, p.Status)
	require.NotEmpty(t, p.ChipID)
	require.Len(t, g.Chips, 1)

	chip := g.Chips[0]
	assert.Equal(t, p.ChipID, chip.ID)
	assert.Equal(t, "Falcon", chip.Name)
	assert.True(t, chip.Exclusive)
	assert.Equal(t, 1988, chip.ExclusiveUntilYear, "two years of exclusivity")
	assert.Equal(t, 3, chip.ExclusiveUntilQuarter)
	assert.True(t, chip.ExclusiveAt(1988, 2))
	assert.False(t, chip.ExclusiveAt(1988, 3), "open to rivals once the window closes")

	_, ok := g.Catalog.Lookup(chip.ID)
	assert.True(t, ok)

	found := false
	for _, n := range report.News {
		if n.Type == "project_done" {
			found = true
		}
	}
	assert.True(t, found, "completion makes the news")
}

func TestFundProjectsIgnoresInactive(t *testing.T) {
	g := newTestGame(t, 1)
	p, err := g.StartProject("Falcon", company.ChipGPU)
	require.NoError(t, err)
	require.NoError(t, g.AbandonProject(p.ID))

	g.Budget.Research = 100_000
	g.fundProjects(&QuarterReport{})
	assert.Zero(t, p.Invested, "abandoned projects receive no funding")
}

func TestAddQuarters(t *testing.T) {
	y, q := addQuarters(1983, 1, 8)
	assert.Equal(t, 1985, y)
	assert.Equal(t, 1, q)

	y, q = addQuarters(1983, 4, 1)
	assert.Equal(t, 1984, y)
	assert.Equal(t, 1, q)

	y, q = addQuarters(1986, 2, 0)
	assert.Equal(t, 1986, y)
	assert.Equal(t, 2, q)
}
