package world

import (
	"context"
	"errors"
	"testing"
)

func TestGenerateReproducibility(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultGenConfig(80, 24, 12345)

	w1, err := Generate(ctx, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	w2, err := Generate(ctx, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			c := Coord{X: x, Y: y}
			if w1.CellAt(c) != w2.CellAt(c) {
				t.Errorf("Cell mismatch at (%d,%d): %v != %v", x, y, w1.CellAt(c), w2.CellAt(c))
			}
		}
	}
	for kind := ResourceKind(0); kind < NumResourceKinds; kind++ {
		if w1.InitialTotal(kind) != w2.InitialTotal(kind) {
			t.Errorf("InitialTotal(%v) = %d, want %d", kind, w1.InitialTotal(kind), w2.InitialTotal(kind))
		}
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	ctx := context.Background()
	w1, err := Generate(ctx, DefaultGenConfig(80, 24, 12345))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	w2, err := Generate(ctx, DefaultGenConfig(80, 24, 54321))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	identical := true
	for y := 0; y < 24 && identical; y++ {
		for x := 0; x < 80; x++ {
			c := Coord{X: x, Y: y}
			if w1.CellAt(c) != w2.CellAt(c) {
				identical = false
				break
			}
		}
	}
	if identical {
		t.Error("Worlds with different seeds should not be identical")
	}
}

func TestGenerateBasePlacement(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultGenConfig(40, 40, 7)
	w, err := Generate(ctx, cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	base := w.Base()
	if base.X != 20 || base.Y != 20 {
		t.Errorf("Base() = (%d,%d), want (20,20)", base.X, base.Y)
	}
	if got := w.CellAt(base).Kind; got != CellBase {
		t.Errorf("CellAt(base).Kind = %v, want CellBase", got)
	}

	// The orthogonal neighborhood must be walkable so robots can leave.
	for _, d := range CardinalDirs {
		n := base.Add(d)
		if !w.InBounds(n) {
			continue
		}
		if !w.IsWalkable(n) {
			t.Errorf("base neighbor (%d,%d) is not walkable", n.X, n.Y)
		}
	}
}

func TestGenerateInitialTotalsMatchGrid(t *testing.T) {
	ctx := context.Background()
	w, err := Generate(ctx, DefaultGenConfig(60, 30, 99))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for kind := ResourceKind(0); kind < NumResourceKinds; kind++ {
		if got, want := w.RemainingOnGrid(kind), w.InitialTotal(kind); got != want {
			t.Errorf("RemainingOnGrid(%v) = %d, want initial total %d", kind, got, want)
		}
	}
}

func TestGenerateConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GenConfig)
	}{
		{"zero width", func(c *GenConfig) { c.Width = 0 }},
		{"negative height", func(c *GenConfig) { c.Height = -3 }},
		{"obstacle threshold above noise range", func(c *GenConfig) { c.ObstacleThreshold = 1.5 }},
		{"resource band below noise range", func(c *GenConfig) { c.ResourceBandLow = -2 }},
		{"inverted resource band", func(c *GenConfig) { c.ResourceBandLow = 0.5; c.ResourceBandHigh = 0.2 }},
		{"band overlaps obstacles", func(c *GenConfig) { c.ResourceBandLow = 0.3; c.ResourceBandHigh = 0.9 }},
		{"zero min quantity", func(c *GenConfig) { c.MinQuantity = 0 }},
		{"max below min quantity", func(c *GenConfig) { c.MinQuantity = 5; c.MaxQuantity = 2 }},
		{"zero noise scale", func(c *GenConfig) { c.NoiseScale = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGenConfig(20, 20, 1)
			tt.mutate(&cfg)
			_, err := Generate(context.Background(), cfg)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("Generate() error = %v, want *ConfigError", err)
			}
		})
	}
}
