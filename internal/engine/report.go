// Quarter report types — pure output objects, never canonical state.
package engine

import (
	"github.com/talgya/micromogul/internal/company"
	"github.com/talgya/micromogul/internal/economy"
	"github.com/talgya/micromogul/internal/news"
)

// ModelResult is one model's slice of a quarter.
type ModelResult struct {
	ModelID  string                    `json:"model_id"`
	Name     string                    `json:"name"`
	Units    int64                     `json:"units"`
	Revenue  int64                     `json:"revenue"`
	Profit   economy.ProfitBreakdown   `json:"profit"`
	Segments []economy.SegmentForecast `json:"segments,omitempty"`
}

// ExpenseBreakdown itemizes the quarter's budget spend.
type ExpenseBreakdown struct {
	Marketing   int64 `json:"marketing"`
	Development int64 `json:"development"`
	Research    int64 `json:"research"`
}

// Total returns the sum of all expense lines.
func (e ExpenseBreakdown) Total() int64 {
	return e.Marketing + e.Development + e.Research
}

// TopProduct is a market-data entry for reporting.
type TopProduct struct {
	Name      string `json:"name"`
	Maker     string `json:"maker"`
	UnitsSold int64  `json:"units_sold"`
}

// MarketData aggregates market-wide figures for the player screen.
type MarketData struct {
	TotalMarketSize int64        `json:"total_market_size"`
	GrowthRate      float64      `json:"growth_rate"`
	TopProducts     []TopProduct `json:"top_products"`
}

// FinalResult is the player's standing when the game ends.
type FinalResult struct {
	Rank            int     `json:"rank"`
	MarketShare     float64 `json:"market_share"`
	Revenue         int64   `json:"revenue"`
	UnitsShipped    int64   `json:"units_shipped"` // Lifetime, discontinued models included
	CustomChipCount int     `json:"custom_chip_count"`
}

// GameEndCondition reports a finished game.
type GameEndCondition struct {
	IsEnded    bool        `json:"is_ended"`
	WinnerText string      `json:"winner_text"`
	Final      FinalResult `json:"final_results"`
}

// QuarterReport is the full result of one advance-quarter call.
type QuarterReport struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`

	Revenue      int64   `json:"revenue"`
	Profit       int64   `json:"profit"`
	UnitsSold    int64   `json:"units_sold"`
	ProfitMargin float64 `json:"profit_margin"`
	NetCashFlow  int64   `json:"net_cash_flow"`

	Models   []ModelResult    `json:"models"`
	Expenses ExpenseBreakdown `json:"expenses"`

	MarketShare      float64 `json:"market_share"`
	MarketShareDelta float64 `json:"market_share_delta"`
	Reputation       float64 `json:"reputation"`
	ReputationDelta  float64 `json:"reputation_delta"`

	NewChip *company.CustomChip `json:"new_chip,omitempty"`
	News    []news.Item         `json:"news"`
	Market  MarketData          `json:"market"`

	End *GameEndCondition `json:"game_end,omitempty"`
}
