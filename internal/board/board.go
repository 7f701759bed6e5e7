// Package board provides the resource board: the claim table that
// hands discovered deposits from explorers to miners. It is the only
// coordination channel between the two roles.
package board

import (
	"fmt"
	"sync"

	"github.com/samdwyer/forageband/internal/world"
)

// Unclaimed marks a report no miner has claimed.
const Unclaimed = -1

// Report is one discovered deposit. Quantity is the amount seen at
// discovery time; the world cell is authoritative, so a miner must
// still expect the deposit to be smaller or gone on arrival.
type Report struct {
	Coord     world.Coord
	Kind      world.ResourceKind
	Quantity  int
	ClaimedBy int // robot id, or Unclaimed
}

// Board is a concurrent claim table keyed by coordinate.
type Board struct {
	mu      sync.Mutex
	reports map[world.Coord]*Report
}

// New creates an empty board.
func New() *Board {
	return &Board{reports: make(map[world.Coord]*Report)}
}

// Post records a deposit discovered at c and reports whether the entry
// is new. Idempotent per coordinate: re-reporting a known deposit only
// refreshes its quantity, never creates a second entry, and never
// touches its claim.
func (b *Board) Post(c world.Coord, kind world.ResourceKind, quantity int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r, ok := b.reports[c]; ok {
		r.Kind = kind
		r.Quantity = quantity
		return false
	}
	b.reports[c] = &Report{Coord: c, Kind: kind, Quantity: quantity, ClaimedBy: Unclaimed}
	return true
}

// ClaimNearest atomically claims the unclaimed report with the least
// Manhattan distance from the given position and returns a copy of it.
// Equidistant candidates are broken by lowest coordinate so concurrent
// claimants resolve ties the same way. ok is false when nothing is
// unclaimed, which is an ordinary outcome for an idle miner.
func (b *Board) ClaimNearest(from world.Coord, robotID int) (r Report, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var best *Report
	for _, cand := range b.reports {
		if cand.ClaimedBy != Unclaimed {
			continue
		}
		if best == nil {
			best = cand
			continue
		}
		d, bd := cand.Coord.Manhattan(from), best.Coord.Manhattan(from)
		if d < bd || (d == bd && cand.Coord.Less(best.Coord)) {
			best = cand
		}
	}
	if best == nil {
		return Report{}, false
	}
	best.ClaimedBy = robotID
	return *best, true
}

// Release clears the claim on c so another miner may take it. Only the
// claimant may release; anything else means the claim contract was
// broken upstream.
func (b *Board) Release(c world.Coord, robotID int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.reports[c]
	if !ok {
		return
	}
	if r.ClaimedBy != robotID {
		panic(fmt.Sprintf("board: robot %d releasing claim held by %d at (%d,%d)", robotID, r.ClaimedBy, c.X, c.Y))
	}
	r.ClaimedBy = Unclaimed
}

// Remove deletes the report for c, typically after the underlying cell
// was collected down to empty. Removing an absent coordinate is a
// no-op.
func (b *Board) Remove(c world.Coord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.reports, c)
}

// Len returns the number of live reports.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.reports)
}

// Snapshot returns a copy of all live reports, for rendering.
func (b *Board) Snapshot() []Report {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Report, 0, len(b.reports))
	for _, r := range b.reports {
		out = append(out, *r)
	}
	return out
}
