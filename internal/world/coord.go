package world

// Coord addresses a single grid cell.
type Coord struct {
	X, Y int
}

// Manhattan returns the L1 distance between two coordinates.
func (c Coord) Manhattan(o Coord) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// Less orders coordinates lexicographically by X, then Y. Used as a
// deterministic tie-break when two candidates are equally distant.
func (c Coord) Less(o Coord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

// Adjacent returns true if o is exactly one orthogonal step away.
func (c Coord) Adjacent(o Coord) bool {
	return c.Manhattan(o) == 1
}

// CardinalDirs lists the four orthogonal step offsets.
var CardinalDirs = [4]Coord{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// Add returns the coordinate offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
