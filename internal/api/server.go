// Package api provides the HTTP API for a game session.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (the browser frontend's key).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/talgya/micromogul/internal/company"
	"github.com/talgya/micromogul/internal/engine"
	"github.com/talgya/micromogul/internal/hardware"
	"github.com/talgya/micromogul/internal/persistence"
	"github.com/talgya/micromogul/internal/scoring"
	"github.com/talgya/micromogul/internal/status"
)

// Server serves one game session over HTTP. The engine is synchronous
// and single-session, so a single mutex serializes access.
type Server struct {
	Game     *engine.Game
	DB       *persistence.DB
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	mu sync.Mutex

	// Most recent quarter report, for the report endpoint.
	lastReport *engine.QuarterReport
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	// Public endpoints.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/company", s.handleCompany)
	mux.HandleFunc("/api/v1/models", s.handleModels)
	mux.HandleFunc("/api/v1/competitors", s.handleCompetitors)
	mux.HandleFunc("/api/v1/chips", s.handleChips)
	mux.HandleFunc("/api/v1/projects", s.handleProjects)
	mux.HandleFunc("/api/v1/report", s.handleReport)
	mux.HandleFunc("/api/v1/catalog", s.handleCatalog)

	// Control endpoints (POST, require bearer token). Rate limited:
	// every advance replays the save path, so cap the churn.
	rl := NewRateLimiter(60, time.Minute)
	mux.HandleFunc("/api/v1/advance", rateLimited(rl, s.adminOnly(s.handleAdvance)))
	mux.HandleFunc("/api/v1/design", rateLimited(rl, s.adminOnly(s.handleDesign)))
	mux.HandleFunc("/api/v1/discontinue", rateLimited(rl, s.adminOnly(s.handleDiscontinue)))
	mux.HandleFunc("/api/v1/budget", rateLimited(rl, s.adminOnly(s.handleBudget)))
	mux.HandleFunc("/api/v1/project", rateLimited(rl, s.adminOnly(s.handleProject)))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// checkBearerToken returns true if the request carries the admin token.
func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly requires bearer token auth on POST requests.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "control endpoints disabled (no MICROMOGUL_ADMIN_KEY set)", http.StatusForbidden)
			return
		}
		if !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.Game
	writeJSON(w, map[string]any{
		"company":      g.Company.Name,
		"year":         g.Year,
		"quarter":      g.Quarter,
		"cash":         g.Company.Cash,
		"reputation":   g.Company.Reputation,
		"market_share": g.Company.MarketShare,
		"models":       len(g.Models),
		"units_sold":   status.TotalUnitsSold(g.Models),
		"chips":        len(g.Chips),
		"ended":        g.Ended,
	})
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]any{
		"company": s.Game.Company,
		"budget":  s.Game.Budget,
	})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.Game.Models)
}

func (s *Server) handleCompetitors(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.Game.Competitors)
}

func (s *Server) handleChips(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.Game.Chips)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.Game.Projects)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastReport == nil {
		http.Error(w, "no quarter has been played yet", http.StatusNotFound)
		return
	}
	writeJSON(w, s.lastReport)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.Game
	out := make(map[string]any)
	for _, cat := range []hardware.Category{
		hardware.CategoryCPU, hardware.CategoryGPU, hardware.CategoryRAM,
		hardware.CategorySound, hardware.CategoryStorage,
		hardware.CategoryDisplay, hardware.CategoryCase,
	} {
		out[string(cat)] = g.Catalog.AvailableParts(cat, g.Year, g.Quarter)
	}
	writeJSON(w, out)
}

// handleAdvance plays one quarter and saves the session.
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.Game.AdvanceQuarter()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.lastReport = report

	if s.DB != nil {
		if err := s.DB.SaveSession(s.Game); err != nil {
			slog.Error("save after advance failed", "error", err)
		}
	}
	writeJSON(w, report)
}

// designRequest is the finalize-design payload.
type designRequest struct {
	Name       string                     `json:"name"`
	Components company.ComponentSelection `json:"components"`
	Price      int64                      `json:"price"`
}

// handleDesign finalizes a design, returning the new model and its
// test report (with an advisory price recommendation).
func (s *Server) handleDesign(w http.ResponseWriter, r *http.Request) {
	var req designRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.Game.FinalizeDesign(req.Name, req.Components, req.Price)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	result := scoring.Evaluate(s.Game.Catalog, m.Name, m.Components, m.Price, s.Game.Year)
	result.Price = scoring.Recommend(result, m.Price)

	if s.DB != nil {
		if err := s.DB.SaveSession(s.Game); err != nil {
			slog.Error("save after design failed", "error", err)
		}
	}
	writeJSON(w, map[string]any{
		"model":       m,
		"test_result": result,
	})
}

func (s *Server) handleDiscontinue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ModelID string `json:"model_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Game.DiscontinueModel(req.ModelID); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	var req company.Budget
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Marketing < 0 || req.Development < 0 || req.Research < 0 {
		http.Error(w, "budget lines must be non-negative", http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Game.Budget = req
	writeJSON(w, s.Game.Budget)
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.Game.StartProject(req.Name, company.ChipCategory(req.Category))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, p)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
