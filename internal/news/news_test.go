package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeduplicatesWithinSession(t *testing.T) {
	gen := NewGenerator(NewRegistry())
	payload := map[string]string{"company": "Garage Computer Co.", "revenue": "120000", "units": "340", "profit": "15000"}

	item := gen.Generate(EventQuarterReport, 1984, 2, payload)
	require.NotNil(t, item)
	assert.NotEmpty(t, item.Headline)
	assert.NotEmpty(t, item.Body)
	assert.Len(t, item.Hash, 64)

	assert.Nil(t, gen.Generate(EventQuarterReport, 1984, 2, payload),
		"the identical event is reported at most once")

	assert.NotNil(t, gen.Generate(EventQuarterReport, 1984, 3, payload),
		"a different quarter is a different event")
	assert.NotNil(t, gen.Generate(EventProductHit, 1984, 2, payload),
		"a different type is a different event")
}

func TestRegistriesAreIndependent(t *testing.T) {
	payload := map[string]string{"model": "Vanguard", "units": "42000"}

	a := NewGenerator(NewRegistry())
	b := NewGenerator(NewRegistry())

	require.NotNil(t, a.Generate(EventProductHit, 1985, 4, payload))
	assert.NotNil(t, b.Generate(EventProductHit, 1985, 4, payload),
		"one session's headlines never suppress another's")
}

func TestRestoreSuppressesSavedEvents(t *testing.T) {
	reg := NewRegistry()
	gen := NewGenerator(reg)
	payload := map[string]string{"chip": "Garage processor-X1", "category": "cpu"}

	item := gen.Generate(EventChipUnlock, 1986, 1, payload)
	require.NotNil(t, item)

	restored := NewRegistry()
	restored.Restore(reg.Seen())
	assert.Nil(t, NewGenerator(restored).Generate(EventChipUnlock, 1986, 1, payload),
		"restored hashes behave like already-reported events")
}

func TestSeenIsSorted(t *testing.T) {
	reg := NewRegistry()
	gen := NewGenerator(reg)
	for q := 1; q <= 4; q++ {
		gen.Generate(EventQuarterReport, 1987, q, map[string]string{"company": "X"})
	}

	seen := reg.Seen()
	require.Len(t, seen, 4)
	for i := 1; i < len(seen); i++ {
		assert.LessOrEqual(t, seen[i-1], seen[i])
	}
}

func TestComposeCoversAllEventTypes(t *testing.T) {
	payload := map[string]string{
		"company": "Garage", "model": "Vanguard", "competitor": "Macrocomp",
		"price": "999", "units": "1200", "revenue": "500000", "profit": "1000",
		"chip": "X1", "category": "gpu", "project": "Falcon", "rank": "2",
	}
	types := []EventType{
		EventQuarterReport, EventProductRelease, EventProductHit, EventProductFlop,
		EventRivalRelease, EventChipUnlock, EventProjectDone, EventGameEnd,
	}

	gen := NewGenerator(NewRegistry())
	for _, et := range types {
		item := gen.Generate(et, 1988, 2, payload)
		require.NotNil(t, item, "type %s", et)
		assert.NotEmpty(t, item.Headline, "type %s", et)
		assert.NotEmpty(t, item.Body, "type %s", et)
	}
}
