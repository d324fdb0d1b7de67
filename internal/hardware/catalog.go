// Package hardware provides the component catalog: which parts exist,
// when they become available, and what they cost and perform at
// baseline. Catalog data ships as an embedded YAML file so tuning
// passes don't touch code.
package hardware

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/talgya/micromogul/internal/company"
)

//go:embed data/components.yaml
var componentData []byte

// Category is a component class.
type Category string

const (
	CategoryCPU     Category = "cpu"
	CategoryGPU     Category = "gpu"
	CategoryRAM     Category = "ram"
	CategorySound   Category = "sound"
	CategoryStorage Category = "storage"
	CategoryDisplay Category = "display"
	CategoryCase    Category = "case"
)

// Part is one catalog entry.
type Part struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Category    Category `yaml:"category" json:"category"`
	Tier        int      `yaml:"tier" json:"tier"`               // 1–6 coarse ranking bucket
	Performance float64  `yaml:"performance" json:"performance"` // 0–100
	Cost        int64    `yaml:"cost" json:"cost"`               // Baseline BOM cost, dollars
	Quality     float64  `yaml:"quality" json:"quality"`         // 0–100 build quality contribution
	Style       string   `yaml:"style,omitempty" json:"style,omitempty"` // Cases: "gamer" or "office"

	AvailableYear    int `yaml:"available_year" json:"available_year"`
	AvailableQuarter int `yaml:"available_quarter" json:"available_quarter"`
}

// AvailableAt reports whether the part can be bought at the given
// calendar position.
func (p *Part) AvailableAt(year, quarter int) bool {
	return company.QuartersBetween(p.AvailableYear, p.AvailableQuarter, year, quarter) >= 0
}

// DefaultPart is returned for unknown component ids. Conservative
// scores keep an unmapped id from inflating or crashing a build.
var DefaultPart = Part{
	ID:          "unknown",
	Name:        "Unknown Part",
	Category:    "",
	Tier:        1,
	Performance: 20,
	Cost:        50,
	Quality:     40,

	AvailableYear:    company.EpochYear,
	AvailableQuarter: company.EpochQuarter,
}

// Catalog answers part lookups by id and by category.
type Catalog struct {
	parts      map[string]*Part
	byCategory map[Category][]*Part
}

// Load parses the embedded component data into a Catalog.
func Load() (*Catalog, error) {
	return loadFrom(componentData)
}

func loadFrom(data []byte) (*Catalog, error) {
	var doc struct {
		Components []Part `yaml:"components"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse component data: %w", err)
	}
	if len(doc.Components) == 0 {
		return nil, fmt.Errorf("component data is empty")
	}

	c := &Catalog{
		parts:      make(map[string]*Part, len(doc.Components)),
		byCategory: make(map[Category][]*Part),
	}
	for i := range doc.Components {
		p := &doc.Components[i]
		if _, dup := c.parts[p.ID]; dup {
			return nil, fmt.Errorf("duplicate part id %q", p.ID)
		}
		c.parts[p.ID] = p
		c.byCategory[p.Category] = append(c.byCategory[p.Category], p)
	}

	// Keep category lists ordered by performance so "best available"
	// scans are a prefix walk.
	for _, list := range c.byCategory {
		sort.Slice(list, func(i, j int) bool {
			return list[i].Performance > list[j].Performance
		})
	}
	return c, nil
}

// Lookup returns the part for an id, or (DefaultPart copy, false) when
// the id is unknown. Callers never see an error for bad ids — unmapped
// components resolve to conservative defaults.
func (c *Catalog) Lookup(id string) (Part, bool) {
	if p, ok := c.parts[id]; ok {
		return *p, true
	}
	return DefaultPart, false
}

// Parts returns all parts in a category, best performance first.
func (c *Catalog) Parts(cat Category) []*Part {
	return c.byCategory[cat]
}

// AvailableParts returns the parts of a category purchasable at the
// given calendar position, best performance first.
func (c *Catalog) AvailableParts(cat Category, year, quarter int) []*Part {
	var out []*Part
	for _, p := range c.byCategory[cat] {
		if p.AvailableAt(year, quarter) {
			out = append(out, p)
		}
	}
	return out
}

// BestAvailable returns the strongest part of a category on the market
// at the given calendar position. Used as the baseline when generating
// exclusive research components. Returns DefaultPart if nothing is
// available yet.
func (c *Catalog) BestAvailable(cat Category, year, quarter int) Part {
	for _, p := range c.byCategory[cat] {
		if p.AvailableAt(year, quarter) {
			return *p
		}
	}
	return DefaultPart
}

// RegisterCustom adds a player-exclusive chip to the catalog so models
// can reference it like any other part. Tier is derived from
// performance so compatibility scoring treats custom parts uniformly.
func (c *Catalog) RegisterCustom(chip *company.CustomChip) {
	cat := Category(chip.Category)
	p := &Part{
		ID:               chip.ID,
		Name:             chip.Name,
		Category:         cat,
		Tier:             TierForPerformance(chip.Performance),
		Performance:      chip.Performance,
		Cost:             chip.Cost,
		Quality:          70,
		AvailableYear:    chip.DevelopedYear,
		AvailableQuarter: chip.DevelopedQuarter,
	}
	c.parts[p.ID] = p
	c.byCategory[cat] = append(c.byCategory[cat], p)
	sort.Slice(c.byCategory[cat], func(i, j int) bool {
		return c.byCategory[cat][i].Performance > c.byCategory[cat][j].Performance
	})
}

// TierForPerformance maps a 0–100 performance score onto the 1–6 tier
// scale used for compatibility comparisons.
func TierForPerformance(perf float64) int {
	switch {
	case perf >= 90:
		return 6
	case perf >= 75:
		return 5
	case perf >= 60:
		return 4
	case perf >= 45:
		return 3
	case perf >= 25:
		return 2
	default:
		return 1
	}
}
