package engine

import "fmt"

// Layout is the geometric contract for a board: it defines which positions
// exist, how a shape projects onto absolute positions, and which positions
// count as adjacent. Each geometry implements the contract independently;
// there is no shared base implementation.
type Layout[P comparable] interface {
	// Contains reports whether the position lies within the board's bounds.
	Contains(pos P) bool

	// Translate anchors the shape at the given position and returns the
	// absolute positions it covers. ok is false if any covered position
	// falls outside the board's bounds.
	Translate(anchor P, shape Shape[P]) (cells []P, ok bool)

	// Neighbors returns the positions adjacent to pos under this topology.
	// Out-of-bounds pos yields no neighbors.
	Neighbors(pos P) []P

	// Positions enumerates every position on the board.
	Positions() []P

	// Size returns the total number of positions on the board.
	Size() int
}

// Coord is a position on a two-dimensional grid. X is the column, Y the row,
// both zero-based.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String formats the coordinate as (x,y).
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// RectLayout is a rectangular W×H grid. Each axis can optionally wrap around,
// turning the grid into a cylinder or torus. Adjacency is orthogonal: a cell
// has up to four neighbors (more than four never, fewer at a non-wrapping
// edge).
type RectLayout struct {
	width  int
	height int
	wrapX  bool
	wrapY  bool
}

// NewRectLayout creates a non-wrapping rectangular layout. Width and height
// must both be positive.
func NewRectLayout(width, height int) (RectLayout, error) {
	return NewWrappingRectLayout(width, height, false, false)
}

// NewWrappingRectLayout creates a rectangular layout that wraps around the
// horizontal and/or vertical axis.
func NewWrappingRectLayout(width, height int, wrapX, wrapY bool) (RectLayout, error) {
	if width <= 0 || height <= 0 {
		return RectLayout{}, fmt.Errorf("rect layout dimensions must be positive, got %dx%d", width, height)
	}
	return RectLayout{width: width, height: height, wrapX: wrapX, wrapY: wrapY}, nil
}

// Width returns the number of columns.
func (l RectLayout) Width() int { return l.width }

// Height returns the number of rows.
func (l RectLayout) Height() int { return l.height }

// Contains reports whether the coordinate lies on the grid.
func (l RectLayout) Contains(pos Coord) bool {
	return pos.X >= 0 && pos.X < l.width && pos.Y >= 0 && pos.Y < l.height
}

// normalize applies wrapping to a raw coordinate. ok is false if the
// coordinate is out of bounds on a non-wrapping axis.
func (l RectLayout) normalize(pos Coord) (Coord, bool) {
	if l.wrapX {
		pos.X = ((pos.X % l.width) + l.width) % l.width
	}
	if l.wrapY {
		pos.Y = ((pos.Y % l.height) + l.height) % l.height
	}
	return pos, l.Contains(pos)
}

// Translate anchors the shape at the given coordinate, wrapping offsets on
// wrapping axes.
func (l RectLayout) Translate(anchor Coord, shape Shape[Coord]) ([]Coord, bool) {
	offsets := shape.Offsets()
	cells := make([]Coord, 0, len(offsets))
	seen := make(map[Coord]bool, len(offsets))
	for _, off := range offsets {
		cell, ok := l.normalize(Coord{X: anchor.X + off.X, Y: anchor.Y + off.Y})
		if !ok {
			return nil, false
		}
		// Wrapping on a small board can fold two offsets onto one cell.
		if seen[cell] {
			continue
		}
		seen[cell] = true
		cells = append(cells, cell)
	}
	return cells, true
}

// Neighbors returns the orthogonally adjacent coordinates, honoring wrapping.
func (l RectLayout) Neighbors(pos Coord) []Coord {
	if !l.Contains(pos) {
		return nil
	}
	candidates := []Coord{
		{X: pos.X, Y: pos.Y - 1},
		{X: pos.X, Y: pos.Y + 1},
		{X: pos.X - 1, Y: pos.Y},
		{X: pos.X + 1, Y: pos.Y},
	}
	neighbors := make([]Coord, 0, 4)
	for _, c := range candidates {
		if n, ok := l.normalize(c); ok && n != pos {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// Positions enumerates the grid in row-major order.
func (l RectLayout) Positions() []Coord {
	positions := make([]Coord, 0, l.Size())
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			positions = append(positions, Coord{X: x, Y: y})
		}
	}
	return positions
}

// Size returns width*height.
func (l RectLayout) Size() int { return l.width * l.height }

// Coord3 is a position in a three-dimensional lattice.
type Coord3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// String formats the coordinate as (x,y,z).
func (c Coord3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// CubeLayout is a W×H×D lattice with six-way orthogonal adjacency. It exists
// to prove the Layout contract holds beyond flat grids; the placement and
// shot rules on Board are identical for both geometries.
type CubeLayout struct {
	width  int
	height int
	depth  int
}

// NewCubeLayout creates a three-dimensional lattice layout. All dimensions
// must be positive.
func NewCubeLayout(width, height, depth int) (CubeLayout, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return CubeLayout{}, fmt.Errorf("cube layout dimensions must be positive, got %dx%dx%d", width, height, depth)
	}
	return CubeLayout{width: width, height: height, depth: depth}, nil
}

// Contains reports whether the coordinate lies inside the lattice.
func (l CubeLayout) Contains(pos Coord3) bool {
	return pos.X >= 0 && pos.X < l.width &&
		pos.Y >= 0 && pos.Y < l.height &&
		pos.Z >= 0 && pos.Z < l.depth
}

// Translate anchors the shape at the given coordinate.
func (l CubeLayout) Translate(anchor Coord3, shape Shape[Coord3]) ([]Coord3, bool) {
	offsets := shape.Offsets()
	cells := make([]Coord3, 0, len(offsets))
	for _, off := range offsets {
		cell := Coord3{X: anchor.X + off.X, Y: anchor.Y + off.Y, Z: anchor.Z + off.Z}
		if !l.Contains(cell) {
			return nil, false
		}
		cells = append(cells, cell)
	}
	return cells, true
}

// Neighbors returns the up to six orthogonally adjacent coordinates.
func (l CubeLayout) Neighbors(pos Coord3) []Coord3 {
	if !l.Contains(pos) {
		return nil
	}
	candidates := []Coord3{
		{X: pos.X - 1, Y: pos.Y, Z: pos.Z},
		{X: pos.X + 1, Y: pos.Y, Z: pos.Z},
		{X: pos.X, Y: pos.Y - 1, Z: pos.Z},
		{X: pos.X, Y: pos.Y + 1, Z: pos.Z},
		{X: pos.X, Y: pos.Y, Z: pos.Z - 1},
		{X: pos.X, Y: pos.Y, Z: pos.Z + 1},
	}
	neighbors := make([]Coord3, 0, 6)
	for _, c := range candidates {
		if l.Contains(c) {
			neighbors = append(neighbors, c)
		}
	}
	return neighbors
}

// Positions enumerates the lattice layer by layer, each layer row-major.
func (l CubeLayout) Positions() []Coord3 {
	positions := make([]Coord3, 0, l.Size())
	for z := 0; z < l.depth; z++ {
		for y := 0; y < l.height; y++ {
			for x := 0; x < l.width; x++ {
				positions = append(positions, Coord3{X: x, Y: y, Z: z})
			}
		}
	}
	return positions
}

// Size returns width*height*depth.
func (l CubeLayout) Size() int { return l.width * l.height * l.depth }
