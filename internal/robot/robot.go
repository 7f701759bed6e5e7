// Package robot implements the per-robot behavior state machines. A
// robot talks to the rest of the simulation only through the world and
// board contracts, never to another robot directly.
package robot

import (
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/samdwyer/forageband/internal/board"
	"github.com/samdwyer/forageband/internal/world"
)

// Role is a robot's behavioral class, fixed for its lifetime.
type Role int

const (
	// RoleExplorer wanders and reports deposits to the board.
	RoleExplorer Role = iota
	// RoleMiner claims reported deposits, collects them, and hauls the
	// load back to the base.
	RoleMiner
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleExplorer:
		return "explorer"
	case RoleMiner:
		return "miner"
	default:
		return "unknown"
	}
}

// Rune returns the role's display character.
func (r Role) Rune() rune {
	switch r {
	case RoleExplorer:
		return 'X'
	case RoleMiner:
		return 'R'
	default:
		return '?'
	}
}

// State is a miner's position in its collection cycle. Explorers are
// always StateWandering.
type State int

const (
	// StateWandering is the explorer's single productive state.
	StateWandering State = iota
	// StateIdle - no target; poll the board each tick.
	StateIdle
	// StateTraveling - one greedy step per tick toward the claim.
	StateTraveling
	// StateCollecting - at the deposit, one collect per tick.
	StateCollecting
	// StateReturning - one step per tick back to the base.
	StateReturning
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateWandering:
		return "wandering"
	case StateIdle:
		return "idle"
	case StateTraveling:
		return "traveling"
	case StateCollecting:
		return "collecting"
	case StateReturning:
		return "returning"
	default:
		return "unknown"
	}
}

// Robot is one agent. The mutex guards every mutable field so the
// owning goroutine can step while snapshots read concurrently; it is
// held only for the duration of a single step or read, never across
// ticks.
type Robot struct {
	id       int
	role     Role
	capacity int // miners only
	rng      *rand.Rand
	log      *log.Logger

	mu          sync.Mutex
	pos         world.Coord
	state       State
	carried     int
	carriedKind world.ResourceKind
	target      world.Coord
	hasTarget   bool
	blockStreak int // consecutive fully-blocked travel ticks
}

// NewExplorer creates an explorer at the given position. The rng is
// owned exclusively by this robot; seeding it per robot keeps runs
// reproducible without sharing a locked source.
func NewExplorer(id int, at world.Coord, rng *rand.Rand, logger *log.Logger) *Robot {
	return &Robot{
		id:    id,
		role:  RoleExplorer,
		rng:   rng,
		log:   logger.With("robot", id, "role", RoleExplorer.String()),
		pos:   at,
		state: StateWandering,
	}
}

// NewMiner creates a miner at the given position with a fixed carrying
// capacity.
func NewMiner(id int, at world.Coord, capacity int, rng *rand.Rand, logger *log.Logger) *Robot {
	return &Robot{
		id:       id,
		role:     RoleMiner,
		capacity: capacity,
		rng:      rng,
		log:      logger.With("robot", id, "role", RoleMiner.String()),
		pos:      at,
		state:    StateIdle,
	}
}

// ID returns the robot's identifier.
func (r *Robot) ID() int { return r.id }

// Role returns the robot's role.
func (r *Robot) Role() Role { return r.role }

// Snapshot is a read-only copy of a robot's visible state.
type Snapshot struct {
	ID        int
	Role      Role
	State     State
	Pos       world.Coord
	Carried   int
	Kind      world.ResourceKind
	HasTarget bool
	Target    world.Coord
}

// Snapshot returns a copy of the robot's current state for rendering
// and tests.
func (r *Robot) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		ID:        r.id,
		Role:      r.role,
		State:     r.state,
		Pos:       r.pos,
		Carried:   r.carried,
		Kind:      r.carriedKind,
		HasTarget: r.hasTarget,
		Target:    r.target,
	}
}

// Step performs this robot's single action for the tick.
func (r *Robot) Step(w *world.World, b *board.Board) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.role {
	case RoleExplorer:
		r.stepExplorer(w, b)
	case RoleMiner:
		r.stepMiner(w, b)
	}
}

// tryStep moves the robot to the adjacent cell if the world allows it.
func (r *Robot) tryStep(w *world.World, to world.Coord) bool {
	if !w.Move(r.pos, to) {
		return false
	}
	r.pos = to
	return true
}

// stepRandom attempts one uniformly random orthogonal step, retrying a
// bounded number of times before giving up for the tick.
func (r *Robot) stepRandom(w *world.World) bool {
	const maxRetries = 4
	for i := 0; i < maxRetries; i++ {
		d := world.CardinalDirs[r.rng.Intn(len(world.CardinalDirs))]
		if r.tryStep(w, r.pos.Add(d)) {
			return true
		}
	}
	return false
}
