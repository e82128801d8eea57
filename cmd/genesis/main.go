// Command genesis runs the Gamedin Genesis world simulation daemon.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MKWorldWide/GameDinGenesis/internal/api"
	"github.com/MKWorldWide/GameDinGenesis/internal/config"
	"github.com/MKWorldWide/GameDinGenesis/internal/engine"
	"github.com/MKWorldWide/GameDinGenesis/internal/entropy"
	"github.com/MKWorldWide/GameDinGenesis/internal/nexus"
	"github.com/MKWorldWide/GameDinGenesis/internal/persistence"
	"github.com/MKWorldWide/GameDinGenesis/internal/social"
	"github.com/MKWorldWide/GameDinGenesis/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Gamedin Genesis — Living World Simulation")

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Database ──────────────────────────────────────────────────────
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	st := store.New(db)
	if err := st.SeedInitialData(); err != nil {
		slog.Error("failed to seed world record", "error", err)
		os.Exit(1)
	}

	// ── Generation Gateway ───────────────────────────────────────────
	gw, err := nexus.NewGemini(ctx, cfg.GeminiAPIKey, cfg.Model, cfg.GatewayTimeout)
	if err != nil {
		if errors.Is(err, nexus.ErrMissingCredential) {
			slog.Error("GEMINI_API_KEY not set — the world cannot run without its generator")
		} else {
			slog.Error("failed to create generation gateway", "error", err)
		}
		os.Exit(1)
	}
	defer gw.Close()
	slog.Info("generation gateway ready", "model", cfg.Model)

	// ── Simulation ────────────────────────────────────────────────────
	src := entropy.Crypto()
	scheduler := engine.NewScheduler(st, gw, src, cfg.QuestChance)
	if err := scheduler.Initialize(ctx); err != nil {
		slog.Error("world initialization failed", "error", err)
		os.Exit(1)
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.AdminKey == "" {
		slog.Warn("GENESIS_ADMIN_KEY not set — control-plane POST endpoints will be disabled")
	}
	apiServer := &api.Server{
		Store:     st,
		Scheduler: scheduler,
		Gallery:   social.NewGallery(st),
		Accounts:  social.NewAccounts(st, gw, src),
		Port:      cfg.APIPort,
		AdminKey:  cfg.AdminKey,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	fmt.Printf("\nGenesis is alive: %d factions, ticking every %s.\n",
		len(st.Factions()), cfg.TickInterval)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.APIPort)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	loop := &engine.Loop{Interval: cfg.TickInterval, Scheduler: scheduler}
	loop.Run(ctx)

	fmt.Println("Simulation stopped. World state saved.")
}
