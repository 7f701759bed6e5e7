package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/forageband/internal/telemetry"
)

const (
	// Default terrain parameters, tuned to roughly a third obstacle
	// coverage with scattered deposits.
	DefaultNoiseScale        = 10.0
	DefaultObstacleThreshold = 0.4
	DefaultResourceBandLow   = -0.82
	DefaultResourceBandHigh  = -0.62
	DefaultMinQuantity       = 3
	DefaultMaxQuantity       = 8
)

// ConfigError reports invalid construction parameters. It is the only
// error surfaced to users; the simulation never starts when one is
// returned.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// GenConfig holds terrain generation parameters. The noise field is
// sampled once per coordinate; values above ObstacleThreshold become
// obstacles and values inside the resource band become deposits. The
// two ranges must not overlap.
type GenConfig struct {
	Width  int
	Height int
	Seed   int64

	NoiseScale        float64 // divisor applied to coordinates before sampling
	ObstacleThreshold float64 // noise above this becomes an obstacle
	ResourceBandLow   float64 // inclusive lower edge of the deposit band
	ResourceBandHigh  float64 // exclusive upper edge of the deposit band
	MinQuantity       int     // smallest deposit size
	MaxQuantity       int     // largest deposit size
}

// DefaultGenConfig returns a GenConfig with the default thresholds.
func DefaultGenConfig(width, height int, seed int64) GenConfig {
	return GenConfig{
		Width:             width,
		Height:            height,
		Seed:              seed,
		NoiseScale:        DefaultNoiseScale,
		ObstacleThreshold: DefaultObstacleThreshold,
		ResourceBandLow:   DefaultResourceBandLow,
		ResourceBandHigh:  DefaultResourceBandHigh,
		MinQuantity:       DefaultMinQuantity,
		MaxQuantity:       DefaultMaxQuantity,
	}
}

// Validate checks the generation parameters. All checks happen at
// construction time; generation itself cannot fail.
func (cfg GenConfig) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return &ConfigError{Field: "dimensions", Reason: fmt.Sprintf("must be positive, got %dx%d", cfg.Width, cfg.Height)}
	}
	if cfg.NoiseScale <= 0 {
		return &ConfigError{Field: "noise scale", Reason: "must be positive"}
	}
	if cfg.ObstacleThreshold < -1 || cfg.ObstacleThreshold > 1 {
		return &ConfigError{Field: "obstacle threshold", Reason: "outside noise range [-1, 1]"}
	}
	if cfg.ResourceBandLow < -1 || cfg.ResourceBandHigh > 1 {
		return &ConfigError{Field: "resource band", Reason: "outside noise range [-1, 1]"}
	}
	if cfg.ResourceBandLow >= cfg.ResourceBandHigh {
		return &ConfigError{Field: "resource band", Reason: "low edge must be below high edge"}
	}
	if cfg.ResourceBandHigh > cfg.ObstacleThreshold {
		return &ConfigError{Field: "resource band", Reason: "must be disjoint from the obstacle range"}
	}
	if cfg.MinQuantity <= 0 || cfg.MaxQuantity < cfg.MinQuantity {
		return &ConfigError{Field: "quantity range", Reason: fmt.Sprintf("need 0 < min <= max, got %d..%d", cfg.MinQuantity, cfg.MaxQuantity)}
	}
	return nil
}

// Generate builds a deterministic world from the config: same seed and
// dimensions, same map. The base sits at the grid center and its
// orthogonal neighborhood is forced walkable so robots can always
// leave it.
func Generate(ctx context.Context, cfg GenConfig) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "terrain.generate")
	defer span.End()
	startTime := time.Now()

	base := Coord{X: cfg.Width / 2, Y: cfg.Height / 2}
	w, err := NewWorld(cfg.Width, cfg.Height, base)
	if err != nil {
		return nil, err
	}

	noise := opensimplex.New(cfg.Seed)
	rng := rand.New(rand.NewSource(cfg.Seed))
	deposits := 0

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			c := Coord{X: x, Y: y}
			if c == base {
				continue
			}
			v := noise.Eval2(float64(x)/cfg.NoiseScale, float64(y)/cfg.NoiseScale)
			switch {
			case v > cfg.ObstacleThreshold:
				w.cells[w.index(c)] = Cell{Kind: CellObstacle}
			case v >= cfg.ResourceBandLow && v < cfg.ResourceBandHigh:
				qty := cfg.MinQuantity + rng.Intn(cfg.MaxQuantity-cfg.MinQuantity+1)
				kind := kindAt(c)
				w.cells[w.index(c)] = Cell{Kind: CellResource, Resource: kind, Quantity: qty}
				w.initial[kind] += qty
				deposits++
			}
		}
	}

	clearBaseNeighborhood(w, base)

	span.SetAttributes(
		attribute.Int("terrain.width", cfg.Width),
		attribute.Int("terrain.height", cfg.Height),
		attribute.Int64("terrain.seed", cfg.Seed),
		attribute.Int("terrain.deposit_count", deposits),
		attribute.Int64("terrain.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return w, nil
}

// kindAt picks a deposit's kind from a hash of its coordinate so the
// choice is stable for a given map.
func kindAt(c Coord) ResourceKind {
	h := c.X*7919 + c.Y*104729
	return ResourceKind(abs(h) % NumResourceKinds)
}

// clearBaseNeighborhood turns obstacles adjacent to the base into open
// ground. Deposits next to the base stay: they are walkable.
func clearBaseNeighborhood(w *World, base Coord) {
	for _, d := range CardinalDirs {
		n := base.Add(d)
		if !w.InBounds(n) {
			continue
		}
		i := w.index(n)
		if w.cells[i].Kind == CellObstacle {
			w.cells[i] = Cell{Kind: CellEmpty}
		}
	}
}
