// Command micromogul runs the home-computer-manufacturer simulation
// backend: one game session, served over HTTP, persisted to SQLite.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/talgya/micromogul/internal/api"
	"github.com/talgya/micromogul/internal/engine"
	"github.com/talgya/micromogul/internal/entropy"
	"github.com/talgya/micromogul/internal/hardware"
	"github.com/talgya/micromogul/internal/news"
	"github.com/talgya/micromogul/internal/persistence"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("MICROMOGUL — Home Computer Wars 1983–1992")

	companyName := envOr("MICROMOGUL_COMPANY", "Garage Computer Co.")
	dbPath := envOr("MICROMOGUL_DB", "data/micromogul.db")
	apiPort := envInt("MICROMOGUL_PORT", 8080)
	seed := int64(envInt("MICROMOGUL_SEED", 0))

	// ── Database ──────────────────────────────────────────────────────
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		slog.Error("failed to create database directory", "path", filepath.Dir(dbPath), "error", err)
		os.Exit(1)
	}
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	// ── Load or Create Session ────────────────────────────────────────
	var game *engine.Game
	if db.HasSession() {
		slog.Info("found saved session, loading...")
		loaded, hashes, err := db.LoadSession()
		if err != nil {
			slog.Error("failed to load session", "error", err)
			os.Exit(1)
		}

		catalog, err := hardware.Load()
		if err != nil {
			slog.Error("failed to load hardware catalog", "error", err)
			os.Exit(1)
		}
		reg := news.NewRegistry()
		reg.Restore(hashes)

		var src entropy.Source
		if loaded.Seed != 0 {
			src = entropy.NewSeeded(loaded.Seed)
		} else {
			src = entropy.NewCrypto()
		}
		loaded.Attach(catalog, src, reg)
		game = loaded
	} else {
		slog.Info("no saved session, starting a new game",
			"company", companyName, "seed", seed)
		game, err = engine.NewGame(companyName, seed)
		if err != nil {
			slog.Error("failed to create game", "error", err)
			os.Exit(1)
		}
		if err := db.SaveSession(game); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	slog.Info("session ready",
		"company", game.Company.Name,
		"year", game.Year,
		"quarter", game.Quarter,
		"cash", game.Company.Cash,
		"models", len(game.Models),
	)

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := os.Getenv("MICROMOGUL_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("MICROMOGUL_ADMIN_KEY not set — control endpoints will be disabled")
	}

	server := &api.Server{
		Game:     game,
		DB:       db,
		Port:     apiPort,
		AdminKey: adminKey,
	}
	server.Start()

	fmt.Printf("\n%s is open for business. It is Q%d %d.\n",
		game.Company.Name, game.Quarter, game.Year)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", apiPort)

	// ── Wait for shutdown ─────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	if err := db.SaveSession(game); err != nil {
		slog.Error("final save failed", "error", err)
	}
	fmt.Println("Session saved. Goodbye.")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
