// Package main is the entry point for VaultCrawl.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/samdwyer/vaultcrawl/internal/ai"
	"github.com/samdwyer/vaultcrawl/internal/game"
	"github.com/samdwyer/vaultcrawl/internal/gamedata"
	"github.com/samdwyer/vaultcrawl/internal/session"
	"github.com/samdwyer/vaultcrawl/internal/telemetry"
	"github.com/samdwyer/vaultcrawl/internal/ui"
)

const defaultSavePath = "vaultcrawl.sav"

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	if err := run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg := game.DefaultConfig()
	if seed := os.Getenv("VAULTCRAWL_SEED"); seed != "" {
		v, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("bad VAULTCRAWL_SEED %q: %w", seed, err)
		}
		cfg.Seed = v
	}

	if logPath := os.Getenv("VAULTCRAWL_AI_LOG"); logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open ai log: %w", err)
		}
		defer f.Close()
		ai.EnableDebugLog(f)
	}

	var store *session.Store
	if dbPath := os.Getenv("VAULTCRAWL_DB"); dbPath != "" {
		s, err := session.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open session store: %w", err)
		}
		defer s.Close()
		store = s
	}

	registry, err := gamedata.LoadRegistry()
	if err != nil {
		return fmt.Errorf("load game data: %w", err)
	}

	savePath := os.Getenv("VAULTCRAWL_SAVE")
	if savePath == "" {
		savePath = defaultSavePath
	}

	// Resume a previous run if a save exists, otherwise start fresh.
	var engine *game.Engine
	if _, err := os.Stat(savePath); err == nil {
		engine, err = game.LoadFrom(ctx, savePath, cfg, registry, store)
		if err != nil {
			return fmt.Errorf("load save: %w", err)
		}
	} else {
		engine, err = game.New(ctx, cfg, registry, store)
		if err != nil {
			return err
		}
	}

	app, err := ui.NewApp(engine, savePath)
	if err != nil {
		return err
	}
	return app.Run()
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	apiKey := os.Getenv("HONEYCOMB_VAULTCRAWL_API_KEY")
	dataset := os.Getenv("HONEYCOMB_VAULTCRAWL_DATASET")
	if dataset == "" {
		dataset = "vaultcrawl"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
