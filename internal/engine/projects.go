// Research projects (investment-tracked variant) — an explicit funded
// program with a completion threshold and a fixed two-year exclusivity
// window. Coexists with the budget-roll generator in research.go; the
// two mechanisms are deliberately independent.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/micromogul/internal/company"
	"github.com/talgya/micromogul/internal/news"
)

// ExclusivityQuarters is the length of a project chip's exclusivity
// window: two years.
const ExclusivityQuarters = 8

// projectThresholds is the completion cost per category.
var projectThresholds = map[company.ChipCategory]int64{
	company.ChipCPU:   400_000,
	company.ChipGPU:   300_000,
	company.ChipSound: 150_000,
	company.ChipCase:  100_000,
}

// StartProject opens a new research program. Returns an error when a
// program for the category is already active.
func (g *Game) StartProject(name string, cat company.ChipCategory) (*company.ResearchProject, error) {
	for _, p := range g.Projects {
		if p.Status == company.ProjectActive && p.Category == cat {
			return nil, fmt.Errorf("a %s project is already active", cat)
		}
	}

	threshold, ok := projectThresholds[cat]
	if !ok {
		return nil, fmt.Errorf("unknown project category %q", cat)
	}

	p := &company.ResearchProject{
		ID:             uuid.NewString(),
		Name:           name,
		Category:       cat,
		Status:         company.ProjectActive,
		Threshold:      threshold,
		StartedYear:    g.Year,
		StartedQuarter: g.Quarter,
	}
	g.Projects = append(g.Projects, p)
	slog.Info("research project started", "project", name, "category", cat, "threshold", threshold)
	return p, nil
}

// AbandonProject cancels an active program. Invested funds are lost.
func (g *Game) AbandonProject(id string) error {
	for _, p := range g.Projects {
		if p.ID == id {
			if p.Status != company.ProjectActive {
				return fmt.Errorf("project %s is not active", id)
			}
			p.Status = company.ProjectAbandoned
			return nil
		}
	}
	return fmt.Errorf("no project %s", id)
}

// fundProjects splits the research budget across active programs each
// quarter and completes any that cross their threshold. A completed
// project yields a chip exclusive for ExclusivityQuarters.
func (g *Game) fundProjects(report *QuarterReport) {
	var active []*company.ResearchProject
	for _, p := range g.Projects {
		if p.Status == company.ProjectActive {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return
	}

	perProject := g.Budget.Research / int64(len(active))
	for _, p := range active {
		p.Invested += perProject
		if p.Invested < p.Threshold {
			continue
		}

		chip := g.buildChip(p.Category, p.Name)
		chip.Exclusive = true
		chip.ExclusiveUntilYear, chip.ExclusiveUntilQuarter =
			addQuarters(g.Year, g.Quarter, ExclusivityQuarters)
		g.Chips = append(g.Chips, chip)
		if g.Catalog != nil {
			g.Catalog.RegisterCustom(chip)
		}

		p.Status = company.ProjectCompleted
		p.ChipID = chip.ID

		g.pressRelease(report, news.EventProjectDone, map[string]string{
			"project":  p.Name,
			"category": string(p.Category),
		})
		slog.Info("research project completed",
			"project", p.Name, "chip", chip.Name,
			"exclusive_until", fmt.Sprintf("%d Q%d", chip.ExclusiveUntilYear, chip.ExclusiveUntilQuarter))
	}
}

// addQuarters advances a calendar position by n quarters.
func addQuarters(year, quarter, n int) (int, int) {
	q := (quarter - 1) + n
	return year + q/4, q%4 + 1
}
