package robot

import (
	"fmt"

	"github.com/samdwyer/forageband/internal/board"
	"github.com/samdwyer/forageband/internal/world"
)

const (
	// collectPerTick is the fixed amount taken per collect action,
	// clamped by the world to what the cell still holds.
	collectPerTick = 1

	// maxBlockStreak is how many consecutive fully-blocked travel
	// ticks a miner tolerates before abandoning its claim.
	maxBlockStreak = 8
)

// stepMiner advances the miner's collection cycle by one action:
// claim, step, collect, or deposit.
func (r *Robot) stepMiner(w *world.World, b *board.Board) {
	switch r.state {
	case StateIdle:
		rep, ok := b.ClaimNearest(r.pos, r.id)
		if !ok {
			// Nothing unclaimed; stay idle this tick.
			return
		}
		r.target = rep.Coord
		r.hasTarget = true
		r.blockStreak = 0
		r.state = StateTraveling
		r.log.Info("claimed deposit",
			"kind", rep.Kind.String(),
			"x", rep.Coord.X, "y", rep.Coord.Y,
		)

	case StateTraveling:
		if r.moveToward(w, r.target) {
			r.state = StateCollecting
			return
		}
		if r.blockStreak >= maxBlockStreak {
			// Route is stuck; free the claim so another miner can try.
			b.Release(r.target, r.id)
			r.log.Info("abandoned claim", "x", r.target.X, "y", r.target.Y)
			r.clearTarget()
			r.state = StateIdle
		}

	case StateCollecting:
		got, kind, ok := w.Collect(r.pos, collectPerTick)
		if !ok {
			// Exhausted under us, or the report was stale. Either way
			// the cell holds nothing, so the report comes down too.
			b.Remove(r.pos)
			r.clearTarget()
			if r.carried > 0 {
				r.state = StateReturning
			} else {
				r.state = StateIdle
			}
			return
		}
		r.carried += got
		r.carriedKind = kind
		if r.carried > r.capacity {
			panic(fmt.Sprintf("robot %d: carried %d exceeds capacity %d", r.id, r.carried, r.capacity))
		}
		if r.carried == r.capacity {
			if cell := w.CellAt(r.pos); cell.Kind == world.CellResource {
				// Deposit still has material; release the claim so the
				// next idle miner (possibly this one) can take over.
				b.Release(r.pos, r.id)
			} else {
				b.Remove(r.pos)
			}
			r.log.Info("full load", "kind", kind.String(), "carried", r.carried)
			r.clearTarget()
			r.state = StateReturning
		}

	case StateReturning:
		base := w.Base()
		if r.pos == base {
			if !w.Deposit(r.pos, r.carriedKind, r.carried) {
				panic(fmt.Sprintf("robot %d: deposit refused at base (%d,%d)", r.id, r.pos.X, r.pos.Y))
			}
			r.log.Info("deposited",
				"kind", r.carriedKind.String(),
				"amount", r.carried,
			)
			r.carried = 0
			r.state = StateIdle
			return
		}
		r.moveToward(w, base)
	}
}

// clearTarget drops the current claim coordinate.
func (r *Robot) clearTarget() {
	r.hasTarget = false
	r.target = world.Coord{}
	r.blockStreak = 0
}

// moveToward takes one greedy step toward dest: the axis with the
// larger offset first, falling back to the other axis, then to a
// random sidestep when both are blocked. Reports whether the robot now
// stands on dest.
func (r *Robot) moveToward(w *world.World, dest world.Coord) bool {
	if r.pos == dest {
		return true
	}
	dx := dest.X - r.pos.X
	dy := dest.Y - r.pos.Y
	stepX := world.Coord{X: sign(dx)}
	stepY := world.Coord{Y: sign(dy)}

	first, second := stepX, stepY
	if intAbs(dy) > intAbs(dx) {
		first, second = stepY, stepX
	}
	for _, d := range [2]world.Coord{first, second} {
		if d == (world.Coord{}) {
			continue
		}
		if r.tryStep(w, r.pos.Add(d)) {
			r.blockStreak = 0
			return r.pos == dest
		}
	}

	// Both productive axes blocked; sidestep randomly to shake loose.
	r.blockStreak++
	r.stepRandom(w)
	return r.pos == dest
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func intAbs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
