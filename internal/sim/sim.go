// Package sim owns the simulation lifecycle: construction from a
// config, one goroutine per robot, snapshots for rendering, and
// graceful shutdown.
package sim

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/forageband/internal/board"
	"github.com/samdwyer/forageband/internal/journal"
	"github.com/samdwyer/forageband/internal/robot"
	"github.com/samdwyer/forageband/internal/telemetry"
	"github.com/samdwyer/forageband/internal/world"
)

// Simulation is the running handle handed to the UI and the shutdown
// path. All shared state lives in the world and the board; the
// simulation itself only schedules.
type Simulation struct {
	cfg     Config
	world   *world.World
	board   *board.Board
	journal *journal.Journal
	robots  []*robot.Robot

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started atomic.Bool
	ticks   atomic.Uint64
}

// New validates the config, generates the terrain, and builds the
// robot roster at the base. The only possible error is a ConfigError;
// once New returns, the run itself cannot fail.
func New(ctx context.Context, cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tracer := telemetry.Tracer("sim")
	ctx, span := tracer.Start(ctx, "sim.init")
	defer span.End()

	w, err := world.Generate(ctx, cfg.genConfig())
	if err != nil {
		return nil, err
	}

	j := journal.New(cfg.JournalLines)
	logger := j.Logger()

	robots := make([]*robot.Robot, 0, len(cfg.Roster))
	for id, role := range cfg.Roster {
		// Each robot gets its own seeded source so runs replay without
		// a shared locked rng.
		rng := rand.New(rand.NewSource(cfg.Seed + int64(id)))
		switch role {
		case robot.RoleExplorer:
			robots = append(robots, robot.NewExplorer(id, w.Base(), rng, logger))
		case robot.RoleMiner:
			robots = append(robots, robot.NewMiner(id, w.Base(), cfg.MinerCapacity, rng, logger))
		}
	}

	span.SetAttributes(
		attribute.Int("sim.width", cfg.Width),
		attribute.Int("sim.height", cfg.Height),
		attribute.Int64("sim.seed", cfg.Seed),
		attribute.Int("sim.robots", len(robots)),
		attribute.Int("sim.initial_mineral", w.InitialTotal(world.Mineral)),
		attribute.Int("sim.initial_energy", w.InitialTotal(world.Energy)),
	)

	return &Simulation{
		cfg:     cfg,
		world:   w,
		board:   board.New(),
		journal: j,
		robots:  robots,
	}, nil
}

// Start launches one goroutine per robot. Each loops on its own
// ticker, performing exactly one bounded action per tick, and checks
// for cancellation only at tick boundaries so no unit ever stops
// mid-mutation. Cancelling ctx (or calling Stop) shuts all units down.
func (s *Simulation) Start(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(len(s.robots))
	for _, r := range s.robots {
		go s.runRobot(ctx, r)
	}
}

func (s *Simulation) runRobot(ctx context.Context, r *robot.Robot) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Step(s.world, s.board)
			s.ticks.Add(1)
		}
	}
}

// Stop cancels all robot goroutines and joins them. It returns only
// after every in-flight action has completed, so the world is never
// left mid-mutation. Safe to call more than once and after external
// context cancellation.
func (s *Simulation) Stop(ctx context.Context) {
	tracer := telemetry.Tracer("sim")
	_, span := tracer.Start(ctx, "sim.shutdown")
	defer span.End()

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()

	span.SetAttributes(
		attribute.Int64("sim.total_steps", int64(s.ticks.Load())),
		attribute.Int("sim.base_mineral", s.world.BaseInventory(world.Mineral)),
		attribute.Int("sim.base_energy", s.world.BaseInventory(world.Energy)),
	)
}

// Wait blocks until all robot goroutines have exited.
func (s *Simulation) Wait() {
	s.wg.Wait()
}

// World exposes the shared world state.
func (s *Simulation) World() *world.World { return s.world }

// Board exposes the resource board.
func (s *Simulation) Board() *board.Board { return s.board }

// Journal exposes the event feed.
func (s *Simulation) Journal() *journal.Journal { return s.journal }

// Steps returns the total robot actions performed so far.
func (s *Simulation) Steps() uint64 { return s.ticks.Load() }

// Snapshot is a consistent-enough view of the whole simulation for
// rendering: each cell and robot is read atomically, the aggregate is
// not a single point in time.
type Snapshot struct {
	Grid          [][]world.Cell
	Base          world.Coord
	BaseInventory [world.NumResourceKinds]int
	Robots        []robot.Snapshot
	Reports       []board.Report
}

// Snapshot captures the current grid, robot states, base inventory,
// and live reports without ever blocking robot progress for more than
// a single cell or robot read.
func (s *Simulation) Snapshot() Snapshot {
	grid, inv := s.world.Snapshot()
	robots := make([]robot.Snapshot, len(s.robots))
	for i, r := range s.robots {
		robots[i] = r.Snapshot()
	}
	return Snapshot{
		Grid:          grid,
		Base:          s.world.Base(),
		BaseInventory: inv,
		Robots:        robots,
		Reports:       s.board.Snapshot(),
	}
}
