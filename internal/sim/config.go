package sim

import (
	"fmt"
	"time"

	"github.com/samdwyer/forageband/internal/robot"
	"github.com/samdwyer/forageband/internal/world"
)

// Config holds everything needed to construct a simulation. Zero-value
// noise fields fall back to the world package defaults.
type Config struct {
	Width  int
	Height int
	Seed   int64

	// Terrain shape. Leave zero for defaults.
	ObstacleThreshold float64
	ResourceBandLow   float64
	ResourceBandHigh  float64

	// Roster is the fixed set of robots, in id order.
	Roster []robot.Role

	// MinerCapacity is the carrying capacity shared by all miners.
	MinerCapacity int

	// TickInterval paces every robot's action loop.
	TickInterval time.Duration

	// JournalLines bounds the event feed; zero means the default.
	JournalLines int
}

// DefaultConfig mirrors the classic run: a 150x50 map, one explorer
// and two miners starting at the base.
func DefaultConfig() Config {
	return Config{
		Width:         150,
		Height:        50,
		Seed:          42,
		Roster:        []robot.Role{robot.RoleExplorer, robot.RoleMiner, robot.RoleMiner},
		MinerCapacity: 5,
		TickInterval:  100 * time.Millisecond,
	}
}

// genConfig lowers the sim config into terrain parameters, filling in
// defaults for unset noise fields.
func (c Config) genConfig() world.GenConfig {
	g := world.DefaultGenConfig(c.Width, c.Height, c.Seed)
	if c.ObstacleThreshold != 0 {
		g.ObstacleThreshold = c.ObstacleThreshold
	}
	if c.ResourceBandLow != 0 || c.ResourceBandHigh != 0 {
		g.ResourceBandLow = c.ResourceBandLow
		g.ResourceBandHigh = c.ResourceBandHigh
	}
	return g
}

// Validate rejects configurations the simulation cannot run with.
// Terrain parameters are validated again by the generator.
func (c Config) Validate() error {
	if len(c.Roster) == 0 {
		return &world.ConfigError{Field: "roster", Reason: "needs at least one robot"}
	}
	for _, role := range c.Roster {
		if role != robot.RoleExplorer && role != robot.RoleMiner {
			return &world.ConfigError{Field: "roster", Reason: fmt.Sprintf("unknown role %d", role)}
		}
	}
	if c.MinerCapacity <= 0 {
		return &world.ConfigError{Field: "miner capacity", Reason: "must be positive"}
	}
	if c.TickInterval <= 0 {
		return &world.ConfigError{Field: "tick interval", Reason: "must be positive"}
	}
	return c.genConfig().Validate()
}
