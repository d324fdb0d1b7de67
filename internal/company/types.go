// Package company provides the core data model for a game session:
// the player company, its computer models, rival manufacturers, and
// the exclusive hardware unlocked through research.
package company

// Epoch of the simulated calendar. All price-decay and obsolescence
// math counts quarters from here.
const (
	EpochYear    = 1983
	EpochQuarter = 1

	// DefaultEndYear is the first year the game is over. A session that
	// reaches this year has its final ranking computed and freezes.
	DefaultEndYear = 1993
)

// QuartersSinceEpoch returns the number of quarters elapsed since the
// calendar epoch (1983 Q1 = 0). Negative inputs clamp to 0.
func QuartersSinceEpoch(year, quarter int) int {
	q := (year-EpochYear)*4 + (quarter - EpochQuarter)
	if q < 0 {
		return 0
	}
	return q
}

// QuartersBetween returns the quarters elapsed from (fromYear, fromQuarter)
// to (toYear, toQuarter). May be negative if "to" precedes "from".
func QuartersBetween(fromYear, fromQuarter, toYear, toQuarter int) int {
	return (toYear-fromYear)*4 + (toQuarter - fromQuarter)
}

// ModelStatus is the lifecycle state of a computer model.
// Transitions are one-way: development → released → discontinued.
type ModelStatus uint8

const (
	StatusDevelopment ModelStatus = iota
	StatusReleased
	StatusDiscontinued
)

// String returns a human-readable status name.
func (s ModelStatus) String() string {
	switch s {
	case StatusDevelopment:
		return "development"
	case StatusReleased:
		return "released"
	case StatusDiscontinued:
		return "discontinued"
	default:
		return "unknown"
	}
}

// Budget holds the player's quarterly spending allocation.
type Budget struct {
	Marketing   int64 `json:"marketing"`
	Development int64 `json:"development"`
	Research    int64 `json:"research"`
}

// Total returns the sum of all budget lines.
func (b Budget) Total() int64 {
	return b.Marketing + b.Development + b.Research
}

// Company is the player-controlled manufacturer.
type Company struct {
	Name        string  `json:"name"`
	Cash        int64   `json:"cash"`
	Reputation  float64 `json:"reputation"`   // 0–100
	MarketShare float64 `json:"market_share"` // 0–100
	Employees   int     `json:"employees"`

	// Snapshot of the most recent quarter, for reporting.
	QuarterlyIncome  int64 `json:"quarterly_income"`
	QuarterlyExpense int64 `json:"quarterly_expense"`
}

// ComponentSelection references the catalog parts a model is built from.
type ComponentSelection struct {
	CPU     string `json:"cpu"`
	GPU     string `json:"gpu"`
	RAM     string `json:"ram"`
	Sound   string `json:"sound"`
	Storage string `json:"storage"`
	Display string `json:"display"`
	Case    string `json:"case"`
}

// ComputerModel is a product designed by the player. Created at design
// finalization, advanced each quarter by the turn orchestrator, and
// never deleted — only flagged discontinued.
type ComputerModel struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Components ComponentSelection `json:"components"`

	Price           int64   `json:"price"`
	DevelopmentCost int64   `json:"development_cost"`
	Performance     float64 `json:"performance"` // Derived from components, 0–100
	Complexity      float64 `json:"complexity"`  // Derived, drives development time

	Status              ModelStatus `json:"status"`
	DevelopmentProgress float64     `json:"development_progress"` // 0–100, monotonic until release
	DevelopmentTime     int         `json:"development_time"`     // Quarters at baseline budget

	ReleaseYear    int `json:"release_year"`
	ReleaseQuarter int `json:"release_quarter"`

	UnitsSold int64 `json:"units_sold"` // Cumulative
}

// Release transitions a model from development to released. It is a
// no-op for any other starting status, so the state machine can never
// skip or reverse.
func (m *ComputerModel) Release(year, quarter int) {
	if m.Status != StatusDevelopment {
		return
	}
	m.Status = StatusReleased
	m.DevelopmentProgress = 100
	m.ReleaseYear = year
	m.ReleaseQuarter = quarter
}

// Discontinue transitions a released model to discontinued.
func (m *ComputerModel) Discontinue() {
	if m.Status != StatusReleased {
		return
	}
	m.Status = StatusDiscontinued
}

// CompetitorModel is a rival product on the market.
type CompetitorModel struct {
	Name           string  `json:"name"`
	Price          int64   `json:"price"`
	Performance    float64 `json:"performance"`
	UnitsSold      int64   `json:"units_sold"`
	ReleaseYear    int     `json:"release_year"`
	ReleaseQuarter int     `json:"release_quarter"`
}

// Competitor is a rival manufacturer.
type Competitor struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	MarketShare float64 `json:"market_share"` // 0–100
	Reputation  float64 `json:"reputation"`   // 0–100

	MarketingBudget   int64 `json:"marketing_budget"`
	DevelopmentBudget int64 `json:"development_budget"`

	Models []CompetitorModel `json:"models"`
}

// ChipCategory is the component class of an exclusive part.
type ChipCategory string

const (
	ChipCPU   ChipCategory = "cpu"
	ChipGPU   ChipCategory = "gpu"
	ChipSound ChipCategory = "sound"
	ChipCase  ChipCategory = "case"
)

// CustomChip is an exclusive component unlocked by the budget-roll
// research generator. Exclusivity is unconditional for this variant;
// chips produced by the research-project workflow instead carry an
// explicit exclusivity window.
type CustomChip struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    ChipCategory `json:"category"`
	Performance float64      `json:"performance"`
	Cost        int64        `json:"cost"`
	Description string       `json:"description"`

	DevelopedYear    int `json:"developed_year"`
	DevelopedQuarter int `json:"developed_quarter"`

	Exclusive bool `json:"exclusive"`

	// Exclusivity window end, set only for project-built chips.
	// Zero values mean unconditional exclusivity.
	ExclusiveUntilYear    int `json:"exclusive_until_year,omitempty"`
	ExclusiveUntilQuarter int `json:"exclusive_until_quarter,omitempty"`
}

// ExclusiveAt reports whether the chip is still player-exclusive at
// the given calendar position.
func (c *CustomChip) ExclusiveAt(year, quarter int) bool {
	if !c.Exclusive {
		return false
	}
	if c.ExclusiveUntilYear == 0 {
		return true // unconditional
	}
	return QuartersBetween(year, quarter, c.ExclusiveUntilYear, c.ExclusiveUntilQuarter) > 0
}

// ProjectStatus is the lifecycle state of a research project.
type ProjectStatus uint8

const (
	ProjectActive ProjectStatus = iota
	ProjectCompleted
	ProjectAbandoned
)

// ResearchProject is the investment-tracked path to exclusive hardware.
// Unlike the budget-roll generator, a project accumulates funding over
// quarters, completes at an explicit threshold, and grants a chip with
// a fixed two-year exclusivity window.
type ResearchProject struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Category ChipCategory  `json:"category"`
	Status   ProjectStatus `json:"status"`

	Invested  int64 `json:"invested"`  // Cumulative funding
	Threshold int64 `json:"threshold"` // Completion cost

	StartedYear    int `json:"started_year"`
	StartedQuarter int `json:"started_quarter"`

	ChipID string `json:"chip_id,omitempty"` // Set on completion
}

// Progress returns completion as a fraction in [0, 1].
func (p *ResearchProject) Progress() float64 {
	if p.Threshold <= 0 {
		return 1
	}
	f := float64(p.Invested) / float64(p.Threshold)
	if f > 1 {
		f = 1
	}
	return f
}
