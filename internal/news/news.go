// Package news turns simulation events into player-facing copy.
// Deduplication state is an explicit per-session registry rather than
// a process-wide set, so concurrent sessions and repeated test runs
// never leak headlines into each other.
package news

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// EventType labels what kind of occurrence an item reports.
type EventType string

const (
	EventQuarterReport  EventType = "quarter_report"
	EventProductRelease EventType = "product_release"
	EventProductHit     EventType = "product_hit"
	EventProductFlop    EventType = "product_flop"
	EventRivalRelease   EventType = "rival_release"
	EventChipUnlock     EventType = "chip_unlock"
	EventProjectDone    EventType = "project_done"
	EventGameEnd        EventType = "game_end"
)

// Item is one generated news entry.
type Item struct {
	Type     EventType `json:"type"`
	Year     int       `json:"year"`
	Quarter  int       `json:"quarter"`
	Headline string    `json:"headline"`
	Body     string    `json:"body"`
	Hash     string    `json:"hash"`
}

// Registry tracks which events have already been reported in this
// session. One registry per game session; never shared.
type Registry struct {
	seen map[string]struct{}
}

// NewRegistry creates an empty dedup registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Seen returns the hashes already recorded, sorted, for persistence.
func (r *Registry) Seen() []string {
	out := make([]string, 0, len(r.seen))
	for h := range r.seen {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// Restore marks a set of hashes as already reported (load path).
func (r *Registry) Restore(hashes []string) {
	for _, h := range hashes {
		r.seen[h] = struct{}{}
	}
}

// contentHash keys an event by type, calendar position, and payload so
// the same event is reported at most once per session.
func contentHash(t EventType, year, quarter int, payload map[string]string) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d|%d", t, year, quarter)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%s", k, payload[k])
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Generator produces news items, consulting the registry to drop
// duplicates.
type Generator struct {
	reg *Registry
}

// NewGenerator creates a generator bound to a session registry.
func NewGenerator(reg *Registry) *Generator {
	return &Generator{reg: reg}
}

// Generate builds a news item for an event, or returns nil when the
// identical event was already reported this session.
func (g *Generator) Generate(t EventType, year, quarter int, payload map[string]string) *Item {
	h := contentHash(t, year, quarter, payload)
	if _, dup := g.reg.seen[h]; dup {
		return nil
	}
	g.reg.seen[h] = struct{}{}

	item := &Item{Type: t, Year: year, Quarter: quarter, Hash: h}
	item.Headline, item.Body = compose(t, year, quarter, payload)
	return item
}

// compose renders headline and body text for an event. Copy lives
// apart from the numeric models so wording changes never touch the
// simulation contracts.
func compose(t EventType, year, quarter int, p map[string]string) (string, string) {
	when := fmt.Sprintf("Q%d %d", quarter, year)
	switch t {
	case EventQuarterReport:
		return fmt.Sprintf("Quarterly results, %s", when),
			fmt.Sprintf("%s posts revenue of $%s with %s units shipped. Net result: $%s.",
				p["company"], humanize.Comma(atoi(p["revenue"])),
				humanize.Comma(atoi(p["units"])), humanize.Comma(atoi(p["profit"])))
	case EventProductRelease:
		return fmt.Sprintf("%s launches the %s", p["company"], p["model"]),
			fmt.Sprintf("The %s hits shelves in %s at $%s.",
				p["model"], when, humanize.Comma(atoi(p["price"])))
	case EventProductHit:
		return fmt.Sprintf("%s is flying off the shelves", p["model"]),
			fmt.Sprintf("Retailers report %s units of the %s moved in %s alone.",
				humanize.Comma(atoi(p["units"])), p["model"], when)
	case EventProductFlop:
		return fmt.Sprintf("Slow quarter for the %s", p["model"]),
			fmt.Sprintf("Only %s units of the %s found buyers in %s.",
				humanize.Comma(atoi(p["units"])), p["model"], when)
	case EventRivalRelease:
		return fmt.Sprintf("%s answers with the %s", p["competitor"], p["model"]),
			fmt.Sprintf("%s announced the %s in %s, priced at $%s.",
				p["competitor"], p["model"], when, humanize.Comma(atoi(p["price"])))
	case EventChipUnlock:
		return fmt.Sprintf("Lab breakthrough: %s", p["chip"]),
			fmt.Sprintf("R&D delivers the %s, an exclusive %s part, in %s.",
				p["chip"], p["category"], when)
	case EventProjectDone:
		return fmt.Sprintf("Research project %s completed", p["project"]),
			fmt.Sprintf("The %s program concludes in %s; its %s design is exclusive for two years.",
				p["project"], when, p["category"])
	case EventGameEnd:
		return "The home computer wars are over",
			fmt.Sprintf("After a decade of competition, %s finishes ranked #%s by market share.",
				p["company"], p["rank"])
	}
	return fmt.Sprintf("Industry note, %s", when), ""
}

func atoi(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
