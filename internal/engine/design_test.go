package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/micromogul/internal/company"
)

func TestFinalizeDesign(t *testing.T) {
	g := newTestGame(t, 1)

	sel := company.ComponentSelection{
		CPU: "cpu-8088", GPU: "gpu-cga", RAM: "ram-64k", Sound: "snd-ay38910",
		Storage: "sto-floppy525", Display: "dsp-composite", Case: "case-desktop",
	}
	m, err := g.FinalizeDesign("Vanguard", sel, 1_200)
	require.NoError(t, err)

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, company.StatusDevelopment, m.Status)
	assert.Zero(t, m.DevelopmentProgress)
	assert.GreaterOrEqual(t, m.DevelopmentTime, 2)
	assert.LessOrEqual(t, m.DevelopmentTime, 6)
	assert.Greater(t, m.DevelopmentCost, int64(0))
	assert.Greater(t, m.Performance, 0.0)
	assert.LessOrEqual(t, m.Performance, 100.0)
	assert.Same(t, m, g.Model(m.ID), "the design joins the roster")
}

func TestFinalizeDesignValidation(t *testing.T) {
	g := newTestGame(t, 1)
	sel := company.ComponentSelection{CPU: "cpu-6502"}

	_, err := g.FinalizeDesign("", sel, 500)
	assert.Error(t, err, "a name is required")

	_, err = g.FinalizeDesign("Cheapo", sel, -1)
	assert.Error(t, err, "negative prices are rejected")

	_, err = g.FinalizeDesign("Empty", company.ComponentSelection{}, 500)
	assert.Error(t, err, "at least one component is required")
}

func TestFinalizeDesignRejectsUnavailableParts(t *testing.T) {
	g := newTestGame(t, 1) // 1983 Q1

	_, err := g.FinalizeDesign("Time Machine", company.ComponentSelection{GPU: "gpu-vga"}, 900)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")

	g.Year, g.Quarter = 1987, 2
	_, err = g.FinalizeDesign("On Time", company.ComponentSelection{GPU: "gpu-vga"}, 900)
	assert.NoError(t, err)
}

func TestFinalizeDesignAllowsUnknownIDs(t *testing.T) {
	g := newTestGame(t, 1)

	m, err := g.FinalizeDesign("Mystery Box", company.ComponentSelection{CPU: "cpu-custom-99"}, 400)
	require.NoError(t, err)
	assert.Equal(t, 20.0, m.Performance, "unknown parts score as the default part")
}

func TestDiscontinueModel(t *testing.T) {
	g := newTestGame(t, 1)
	m, err := g.FinalizeDesign("Shortlived", company.ComponentSelection{CPU: "cpu-6502"}, 400)
	require.NoError(t, err)

	assert.Error(t, g.DiscontinueModel(m.ID), "cannot discontinue a model still in development")
	assert.Error(t, g.DiscontinueModel("missing"))

	m.Release(1983, 2)
	require.NoError(t, g.DiscontinueModel(m.ID))
	assert.Equal(t, company.StatusDiscontinued, m.Status)

	assert.Error(t, g.DiscontinueModel(m.ID), "already discontinued")
}
