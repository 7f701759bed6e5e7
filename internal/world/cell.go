// Package world provides terrain generation and the shared grid state.
package world

// CellKind identifies what occupies a grid cell.
type CellKind int

const (
	// CellEmpty is open ground robots can walk on.
	CellEmpty CellKind = iota
	// CellObstacle is impassable terrain.
	CellObstacle
	// CellResource is a collectible deposit with a kind and quantity.
	CellResource
	// CellBase is the drop-off point where miners deposit their load.
	CellBase
)

// String returns a human-readable kind name.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellObstacle:
		return "obstacle"
	case CellResource:
		return "resource"
	case CellBase:
		return "base"
	default:
		return "unknown"
	}
}

// ResourceKind identifies a collectible resource type.
type ResourceKind int

const (
	// Mineral deposits, shown as 'M'.
	Mineral ResourceKind = iota
	// Energy deposits, shown as 'E'.
	Energy

	// NumResourceKinds is the number of distinct resource kinds.
	NumResourceKinds = 2
)

// String returns the resource kind name.
func (r ResourceKind) String() string {
	switch r {
	case Mineral:
		return "mineral"
	case Energy:
		return "energy"
	default:
		return "unknown"
	}
}

// Rune returns the resource kind's display character.
func (r ResourceKind) Rune() rune {
	switch r {
	case Mineral:
		return 'M'
	case Energy:
		return 'E'
	default:
		return '?'
	}
}

// Cell is a single grid square. Resource and Quantity are meaningful
// only when Kind is CellResource.
type Cell struct {
	Kind     CellKind
	Resource ResourceKind
	Quantity int
}

// IsWalkable returns true if robots can occupy the cell.
func (c Cell) IsWalkable() bool {
	return c.Kind != CellObstacle
}

// Rune returns the cell's display character.
func (c Cell) Rune() rune {
	switch c.Kind {
	case CellObstacle:
		return '#'
	case CellResource:
		return c.Resource.Rune()
	case CellBase:
		return 'S'
	default:
		return '.'
	}
}
