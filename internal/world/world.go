package world

import (
	"fmt"
	"sync"
)

// lockStripes is the number of mutexes the cell grid is sharded over.
// Per-operation locking stays fine-grained without paying for one
// mutex per cell on large maps.
const lockStripes = 64

// World is the shared grid state all robots read and mutate. Every
// mutating operation locks only the stripe covering the single cell it
// touches, so unrelated robots never serialize against each other.
type World struct {
	width  int
	height int
	base   Coord

	cells   []Cell // row-major, y*width+x
	stripes [lockStripes]sync.Mutex

	invMu     sync.Mutex
	inventory [NumResourceKinds]int // deposited at base, per kind
	initial   [NumResourceKinds]int // total placed at generation, per kind
}

// NewWorld creates an all-empty world with the base at the given
// coordinate. Terrain normally comes from Generate; this constructor
// exists for scripted scenarios and tests.
func NewWorld(width, height int, base Coord) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, &ConfigError{Field: "dimensions", Reason: fmt.Sprintf("must be positive, got %dx%d", width, height)}
	}
	w := &World{
		width:  width,
		height: height,
		base:   base,
		cells:  make([]Cell, width*height),
	}
	if !w.InBounds(base) {
		return nil, &ConfigError{Field: "base", Reason: fmt.Sprintf("(%d,%d) out of bounds", base.X, base.Y)}
	}
	w.cells[w.index(base)] = Cell{Kind: CellBase}
	return w, nil
}

// PlaceResource sets a deposit on an empty cell and counts it toward
// the world's initial totals. Setup-time only: it must not be called
// once robots are running.
func (w *World) PlaceResource(c Coord, kind ResourceKind, quantity int) error {
	if !w.InBounds(c) {
		return fmt.Errorf("place resource: (%d,%d) out of bounds", c.X, c.Y)
	}
	if quantity <= 0 {
		return fmt.Errorf("place resource: quantity %d must be positive", quantity)
	}
	i := w.index(c)
	if w.cells[i].Kind != CellEmpty {
		return fmt.Errorf("place resource: cell (%d,%d) is %s", c.X, c.Y, w.cells[i].Kind)
	}
	w.cells[i] = Cell{Kind: CellResource, Resource: kind, Quantity: quantity}
	w.initial[kind] += quantity
	return nil
}

// PlaceObstacle sets an obstacle on an empty cell. Setup-time only,
// like PlaceResource.
func (w *World) PlaceObstacle(c Coord) error {
	if !w.InBounds(c) {
		return fmt.Errorf("place obstacle: (%d,%d) out of bounds", c.X, c.Y)
	}
	i := w.index(c)
	if w.cells[i].Kind != CellEmpty {
		return fmt.Errorf("place obstacle: cell (%d,%d) is %s", c.X, c.Y, w.cells[i].Kind)
	}
	w.cells[i] = Cell{Kind: CellObstacle}
	return nil
}

// Width returns the grid width.
func (w *World) Width() int { return w.width }

// Height returns the grid height.
func (w *World) Height() int { return w.height }

// Base returns the base cell's coordinate.
func (w *World) Base() Coord { return w.base }

// InBounds returns true if the coordinate lies on the grid.
func (w *World) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < w.width && c.Y >= 0 && c.Y < w.height
}

// CellAt returns a copy of the cell at the given coordinate. Out of
// bounds reads come back as an obstacle so callers can treat the map
// edge and walls uniformly.
func (w *World) CellAt(c Coord) Cell {
	if !w.InBounds(c) {
		return Cell{Kind: CellObstacle}
	}
	mu := w.stripe(c)
	mu.Lock()
	defer mu.Unlock()
	return w.cells[w.index(c)]
}

// IsWalkable returns true if a robot may occupy the coordinate.
func (w *World) IsWalkable(c Coord) bool {
	return w.CellAt(c).IsWalkable()
}

// Move validates a single orthogonal step. It returns false (blocked)
// when the destination is off-grid, not adjacent, or an obstacle.
// Robots may share a cell, so another robot never blocks a move.
func (w *World) Move(from, to Coord) bool {
	if !from.Adjacent(to) {
		return false
	}
	return w.IsWalkable(to)
}

// Collect removes up to amount units from the resource cell at c,
// atomically with respect to concurrent collectors. It returns the
// units actually taken and the deposit's kind. got == 0 means the cell
// holds nothing collectible (not an error; the caller re-plans).
// A cell that reaches zero becomes empty in the same critical section,
// so two robots can never race the zero transition.
func (w *World) Collect(c Coord, amount int) (got int, kind ResourceKind, ok bool) {
	if !w.InBounds(c) || amount <= 0 {
		return 0, 0, false
	}
	mu := w.stripe(c)
	mu.Lock()
	defer mu.Unlock()

	cell := &w.cells[w.index(c)]
	if cell.Kind != CellResource || cell.Quantity <= 0 {
		return 0, 0, false
	}
	got = amount
	if got > cell.Quantity {
		got = cell.Quantity
	}
	kind = cell.Resource
	cell.Quantity -= got
	if cell.Quantity < 0 {
		panic(fmt.Sprintf("world: negative quantity at (%d,%d)", c.X, c.Y))
	}
	if cell.Quantity == 0 {
		*cell = Cell{Kind: CellEmpty}
	}
	return got, kind, true
}

// Deposit adds amount units of kind to the base inventory. It returns
// false if the robot is not standing on the base cell.
func (w *World) Deposit(at Coord, kind ResourceKind, amount int) bool {
	if at != w.base {
		return false
	}
	if amount < 0 {
		panic(fmt.Sprintf("world: negative deposit of %s", kind))
	}
	w.invMu.Lock()
	defer w.invMu.Unlock()
	w.inventory[kind] += amount
	return true
}

// BaseInventory returns the deposited total for one resource kind.
func (w *World) BaseInventory(kind ResourceKind) int {
	w.invMu.Lock()
	defer w.invMu.Unlock()
	return w.inventory[kind]
}

// InitialTotal returns the quantity of one kind placed at generation.
func (w *World) InitialTotal(kind ResourceKind) int {
	return w.initial[kind]
}

// RemainingOnGrid sums the uncollected quantity of one kind across all
// cells. It walks the grid stripe by stripe; the result is consistent
// per cell but not a point-in-time snapshot of the whole grid.
func (w *World) RemainingOnGrid(kind ResourceKind) int {
	total := 0
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			c := Coord{X: x, Y: y}
			cell := w.CellAt(c)
			if cell.Kind == CellResource && cell.Resource == kind {
				total += cell.Quantity
			}
		}
	}
	return total
}

// Snapshot copies the full grid and base inventory for rendering.
// Each cell is read under its stripe lock; the copy is consistent
// enough for display without ever blocking robot progress for more
// than one cell read.
func (w *World) Snapshot() ([][]Cell, [NumResourceKinds]int) {
	grid := make([][]Cell, w.height)
	for y := range grid {
		grid[y] = make([]Cell, w.width)
		for x := range grid[y] {
			grid[y][x] = w.CellAt(Coord{X: x, Y: y})
		}
	}
	w.invMu.Lock()
	inv := w.inventory
	w.invMu.Unlock()
	return grid, inv
}

func (w *World) index(c Coord) int {
	return c.Y*w.width + c.X
}

func (w *World) stripe(c Coord) *sync.Mutex {
	return &w.stripes[w.index(c)%lockStripes]
}
