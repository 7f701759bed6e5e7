// Package main is the entry point for forageband.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"

	"github.com/samdwyer/forageband/internal/journal"
	"github.com/samdwyer/forageband/internal/robot"
	"github.com/samdwyer/forageband/internal/sim"
	"github.com/samdwyer/forageband/internal/telemetry"
	"github.com/samdwyer/forageband/internal/ui"
)

func main() {
	var (
		width     = flag.Int("width", 150, "grid width")
		height    = flag.Int("height", 50, "grid height")
		seed      = flag.Int64("seed", 42, "terrain seed")
		explorers = flag.Int("explorers", 1, "number of explorer robots")
		miners    = flag.Int("miners", 2, "number of miner robots")
		capacity  = flag.Int("capacity", 5, "miner carrying capacity")
		tick      = flag.Duration("tick", 100*time.Millisecond, "simulation tick interval")
	)
	flag.Parse()

	// Load .env for local development; env vars may also be set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	setupOTelEnv()

	// Cancelled on Ctrl-C / SIGTERM; every robot goroutine observes
	// this at its next tick boundary.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Simulation will run without observability")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	cfg := sim.Config{
		Width:         *width,
		Height:        *height,
		Seed:          *seed,
		Roster:        buildRoster(*explorers, *miners),
		MinerCapacity: *capacity,
		TickInterval:  *tick,
	}

	s, err := sim.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize simulation: %v", err)
	}

	if err := run(ctx, s, cfg); err != nil {
		log.Fatalf("Simulation error: %v", err)
	}
}

// buildRoster lists explorers first, then miners, in id order.
func buildRoster(explorers, miners int) []robot.Role {
	roster := make([]robot.Role, 0, explorers+miners)
	for i := 0; i < explorers; i++ {
		roster = append(roster, robot.RoleExplorer)
	}
	for i := 0; i < miners; i++ {
		roster = append(roster, robot.RoleMiner)
	}
	return roster
}

// run drives the screen until the user quits or the context is
// cancelled, then joins all robot goroutines before restoring the
// terminal.
func run(ctx context.Context, s *sim.Simulation, cfg sim.Config) error {
	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()
	renderer := ui.NewRenderer(screen)

	s.Start(ctx)
	defer s.Stop(context.Background())

	quit := make(chan struct{})
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case *tcell.EventKey:
				if isQuitKey(ev) {
					close(quit)
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			case nil:
				// Screen finalized.
				return
			}
		}
	}()

	redraw := time.NewTicker(cfg.TickInterval)
	defer redraw.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-quit:
			return nil
		case <-redraw.C:
			renderer.Render(s.Snapshot(), s.Journal().Tail(journal.DefaultCapacity))
		}
	}
}

// isQuitKey returns true for Escape, Ctrl-C, or q.
func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// setupOTelEnv configures OTEL environment variables from our custom
// env vars so the OTLP exporter points at Honeycomb.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	apiKey := os.Getenv("HONEYCOMB_FORAGEBAND_API_KEY")
	dataset := os.Getenv("HONEYCOMB_FORAGEBAND_DATASET")
	if dataset == "" {
		dataset = "forageband"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
