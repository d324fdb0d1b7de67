// Simplified demand fallback — used when the hardware catalog (and so
// the full demand pathway) is unavailable. Produces the same Forecast
// shape as the rich model so callers never observe which ran.
package engine

import (
	"github.com/talgya/micromogul/internal/company"
	"github.com/talgya/micromogul/internal/economy"
	"github.com/talgya/micromogul/internal/entropy"
)

// fallbackForecast estimates units from price and age alone, with the
// same randomness discipline as the full model.
func fallbackForecast(m *company.ComputerModel, year, quarter int, src entropy.Source) economy.Forecast {
	obs := economy.ObsolescenceFactor(m.ReleaseYear, m.ReleaseQuarter, year, quarter)

	// Cheaper machines move more units; performance nudges the base.
	base := 20_000.0
	if m.Price > 0 {
		base = 8_000_000 / float64(m.Price)
	}
	units := int64(base * (0.5 + m.Performance/200) * obs * entropy.Jitter(src, 0.3))
	if units < 0 {
		units = 0
	}

	return economy.Forecast{
		Segments: []economy.SegmentForecast{{
			Segment: economy.SegmentGamer,
			Units:   units,
			Revenue: units * m.Price,
			Appeal:  m.Performance,
		}},
		Units:   units,
		Revenue: units * m.Price,
	}
}
