// Package persistence provides SQLite-based session storage. Saves are
// transactional full replaces; the schema mirrors the session shape
// with JSON columns for nested structures.
package persistence

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/micromogul/internal/company"
	"github.com/talgya/micromogul/internal/engine"
)

// DB wraps a SQLite connection for game session persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS models (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		components_json TEXT NOT NULL,
		price INTEGER NOT NULL,
		development_cost INTEGER NOT NULL,
		performance REAL NOT NULL,
		complexity REAL NOT NULL,
		status INTEGER NOT NULL,
		development_progress REAL NOT NULL,
		development_time INTEGER NOT NULL,
		release_year INTEGER NOT NULL,
		release_quarter INTEGER NOT NULL,
		units_sold INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS competitors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		market_share REAL NOT NULL,
		reputation REAL NOT NULL,
		marketing_budget INTEGER NOT NULL,
		development_budget INTEGER NOT NULL,
		models_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS chips (
		id TEXT PRIMARY KEY,
		chip_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		project_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS news_hashes (
		hash TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS session_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_models_status ON models(status);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// HasSession reports whether a saved session exists.
func (db *DB) HasSession() bool {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM session_meta WHERE key = 'company_json'"); err != nil {
		return false
	}
	return n > 0
}

// SaveSession performs a full transactional save of a game session.
func (db *DB) SaveSession(g *engine.Game) error {
	slog.Info("saving session",
		"models", len(g.Models), "competitors", len(g.Competitors),
		"year", g.Year, "quarter", g.Quarter)

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveModels(tx, g.Models); err != nil {
		return fmt.Errorf("save models: %w", err)
	}
	if err := saveCompetitors(tx, g.Competitors); err != nil {
		return fmt.Errorf("save competitors: %w", err)
	}
	if err := saveJSONTable(tx, "chips", "chip_json", chipRows(g.Chips)); err != nil {
		return fmt.Errorf("save chips: %w", err)
	}
	if err := saveJSONTable(tx, "projects", "project_json", projectRows(g.Projects)); err != nil {
		return fmt.Errorf("save projects: %w", err)
	}
	if err := saveNewsHashes(tx, g.Registry.Seen()); err != nil {
		return fmt.Errorf("save news hashes: %w", err)
	}
	if err := saveMeta(tx, g); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("session saved")
	return nil
}

func saveModels(tx *sqlx.Tx, models []*company.ComputerModel) error {
	if _, err := tx.Exec("DELETE FROM models"); err != nil {
		return err
	}
	stmt, err := tx.Preparex(`INSERT INTO models
		(id, name, components_json, price, development_cost, performance, complexity,
		 status, development_progress, development_time, release_year, release_quarter, units_sold)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range models {
		compJSON, _ := json.Marshal(m.Components)
		_, err := stmt.Exec(
			m.ID, m.Name, string(compJSON), m.Price, m.DevelopmentCost,
			m.Performance, m.Complexity, m.Status, m.DevelopmentProgress,
			m.DevelopmentTime, m.ReleaseYear, m.ReleaseQuarter, m.UnitsSold,
		)
		if err != nil {
			return fmt.Errorf("insert model %s: %w", m.ID, err)
		}
	}
	return nil
}

func saveCompetitors(tx *sqlx.Tx, comps []*company.Competitor) error {
	if _, err := tx.Exec("DELETE FROM competitors"); err != nil {
		return err
	}
	for _, c := range comps {
		modelsJSON, _ := json.Marshal(c.Models)
		_, err := tx.Exec(`INSERT INTO competitors
			(id, name, market_share, reputation, marketing_budget, development_budget, models_json)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.MarketShare, c.Reputation,
			c.MarketingBudget, c.DevelopmentBudget, string(modelsJSON),
		)
		if err != nil {
			return fmt.Errorf("insert competitor %s: %w", c.ID, err)
		}
	}
	return nil
}

type jsonRow struct {
	id   string
	body []byte
}

func chipRows(chips []*company.CustomChip) []jsonRow {
	rows := make([]jsonRow, 0, len(chips))
	for _, c := range chips {
		b, _ := json.Marshal(c)
		rows = append(rows, jsonRow{id: c.ID, body: b})
	}
	return rows
}

func projectRows(projects []*company.ResearchProject) []jsonRow {
	rows := make([]jsonRow, 0, len(projects))
	for _, p := range projects {
		b, _ := json.Marshal(p)
		rows = append(rows, jsonRow{id: p.ID, body: b})
	}
	return rows
}

func saveJSONTable(tx *sqlx.Tx, table, column string, rows []jsonRow) error {
	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return err
	}
	q := fmt.Sprintf("INSERT INTO %s (id, %s) VALUES (?, ?)", table, column)
	for _, r := range rows {
		if _, err := tx.Exec(q, r.id, string(r.body)); err != nil {
			return err
		}
	}
	return nil
}

func saveNewsHashes(tx *sqlx.Tx, hashes []string) error {
	if _, err := tx.Exec("DELETE FROM news_hashes"); err != nil {
		return err
	}
	for _, h := range hashes {
		if _, err := tx.Exec("INSERT INTO news_hashes (hash) VALUES (?)", h); err != nil {
			return err
		}
	}
	return nil
}

func saveMeta(tx *sqlx.Tx, g *engine.Game) error {
	companyJSON, _ := json.Marshal(g.Company)
	budgetJSON, _ := json.Marshal(g.Budget)
	finalJSON := []byte("")
	if g.Final != nil {
		finalJSON, _ = json.Marshal(g.Final)
	}

	pairs := map[string]string{
		"company_json":        string(companyJSON),
		"budget_json":         string(budgetJSON),
		"final_json":          string(finalJSON),
		"seed":                strconv.FormatInt(g.Seed, 10),
		"year":                strconv.Itoa(g.Year),
		"quarter":             strconv.Itoa(g.Quarter),
		"end_year":            strconv.Itoa(g.EndYear),
		"cumulative_research": strconv.FormatInt(g.CumulativeResearch, 10),
		"total_revenue":       strconv.FormatInt(g.TotalRevenue, 10),
		"rival_quarter_units": strconv.FormatInt(g.RivalQuarterUnits, 10),
		"ended":               strconv.FormatBool(g.Ended),
	}
	for k, v := range pairs {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO session_meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return err
		}
	}
	return nil
}

// LoadSession restores a saved session. Collaborators (catalog, RNG,
// news registry) are not stored here; the caller rebuilds them with
// Game.Attach, feeding the returned news hashes into the registry.
func (db *DB) LoadSession() (*engine.Game, []string, error) {
	g := &engine.Game{}

	if err := db.loadMeta(g); err != nil {
		return nil, nil, fmt.Errorf("load meta: %w", err)
	}
	if err := db.loadModels(g); err != nil {
		return nil, nil, fmt.Errorf("load models: %w", err)
	}
	if err := db.loadCompetitors(g); err != nil {
		return nil, nil, fmt.Errorf("load competitors: %w", err)
	}
	if err := db.loadChips(g); err != nil {
		return nil, nil, fmt.Errorf("load chips: %w", err)
	}
	if err := db.loadProjects(g); err != nil {
		return nil, nil, fmt.Errorf("load projects: %w", err)
	}

	var hashes []string
	if err := db.conn.Select(&hashes, "SELECT hash FROM news_hashes"); err != nil {
		return nil, nil, fmt.Errorf("load news hashes: %w", err)
	}

	slog.Info("session restored",
		"models", len(g.Models), "competitors", len(g.Competitors),
		"year", g.Year, "quarter", g.Quarter)
	return g, hashes, nil
}

func (db *DB) getMeta(key string) (string, error) {
	var v string
	err := db.conn.Get(&v, "SELECT value FROM session_meta WHERE key = ?", key)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return v, err
}

func (db *DB) loadMeta(g *engine.Game) error {
	companyJSON, err := db.getMeta("company_json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(companyJSON), &g.Company); err != nil {
		return fmt.Errorf("company: %w", err)
	}
	budgetJSON, err := db.getMeta("budget_json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(budgetJSON), &g.Budget); err != nil {
		return fmt.Errorf("budget: %w", err)
	}
	if finalJSON, _ := db.getMeta("final_json"); finalJSON != "" {
		g.Final = &engine.FinalResult{}
		if err := json.Unmarshal([]byte(finalJSON), g.Final); err != nil {
			return fmt.Errorf("final: %w", err)
		}
	}

	ints := map[string]*int{
		"year":     &g.Year,
		"quarter":  &g.Quarter,
		"end_year": &g.EndYear,
	}
	for k, dst := range ints {
		v, err := db.getMeta(k)
		if err != nil {
			return err
		}
		if *dst, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}

	int64s := map[string]*int64{
		"seed":                &g.Seed,
		"cumulative_research": &g.CumulativeResearch,
		"total_revenue":       &g.TotalRevenue,
		"rival_quarter_units": &g.RivalQuarterUnits,
	}
	for k, dst := range int64s {
		v, err := db.getMeta(k)
		if err != nil {
			return err
		}
		if *dst, err = strconv.ParseInt(v, 10, 64); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}

	ended, err := db.getMeta("ended")
	if err != nil {
		return err
	}
	g.Ended = ended == "true"
	return nil
}

func (db *DB) loadModels(g *engine.Game) error {
	rows, err := db.conn.Queryx(`SELECT id, name, components_json, price, development_cost,
		performance, complexity, status, development_progress, development_time,
		release_year, release_quarter, units_sold FROM models`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		m := &company.ComputerModel{}
		var compJSON string
		if err := rows.Scan(&m.ID, &m.Name, &compJSON, &m.Price, &m.DevelopmentCost,
			&m.Performance, &m.Complexity, &m.Status, &m.DevelopmentProgress,
			&m.DevelopmentTime, &m.ReleaseYear, &m.ReleaseQuarter, &m.UnitsSold); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(compJSON), &m.Components); err != nil {
			return fmt.Errorf("model %s components: %w", m.ID, err)
		}
		g.Models = append(g.Models, m)
	}
	return rows.Err()
}

func (db *DB) loadCompetitors(g *engine.Game) error {
	rows, err := db.conn.Queryx(`SELECT id, name, market_share, reputation,
		marketing_budget, development_budget, models_json FROM competitors`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		c := &company.Competitor{}
		var modelsJSON string
		if err := rows.Scan(&c.ID, &c.Name, &c.MarketShare, &c.Reputation,
			&c.MarketingBudget, &c.DevelopmentBudget, &modelsJSON); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(modelsJSON), &c.Models); err != nil {
			return fmt.Errorf("competitor %s models: %w", c.ID, err)
		}
		g.Competitors = append(g.Competitors, c)
	}
	return rows.Err()
}

func (db *DB) loadChips(g *engine.Game) error {
	var bodies []string
	if err := db.conn.Select(&bodies, "SELECT chip_json FROM chips"); err != nil {
		return err
	}
	for _, b := range bodies {
		chip := &company.CustomChip{}
		if err := json.Unmarshal([]byte(b), chip); err != nil {
			return err
		}
		g.Chips = append(g.Chips, chip)
	}
	return nil
}

func (db *DB) loadProjects(g *engine.Game) error {
	var bodies []string
	if err := db.conn.Select(&bodies, "SELECT project_json FROM projects"); err != nil {
		return err
	}
	for _, b := range bodies {
		p := &company.ResearchProject{}
		if err := json.Unmarshal([]byte(b), p); err != nil {
			return err
		}
		g.Projects = append(g.Projects, p)
	}
	return nil
}
