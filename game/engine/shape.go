package engine

// Shape is a ship's footprint: a set of offsets relative to an anchor
// position. The zero offset does not have to be part of the set, but for the
// standard constructors it is. Shapes are immutable; transforms such as
// Rotate return new shapes.
type Shape[P comparable] struct {
	offsets []P
}

// NewShape creates a shape from the given relative offsets. Duplicate offsets
// are collapsed. A shape with zero cells is invalid.
func NewShape[P comparable](offsets ...P) (Shape[P], error) {
	seen := make(map[P]bool, len(offsets))
	unique := make([]P, 0, len(offsets))
	for _, off := range offsets {
		if seen[off] {
			continue
		}
		seen[off] = true
		unique = append(unique, off)
	}
	if len(unique) == 0 {
		return Shape[P]{}, ErrInvalidShape
	}
	return Shape[P]{offsets: unique}, nil
}

// Offsets returns a copy of the shape's relative offsets.
func (s Shape[P]) Offsets() []P {
	out := make([]P, len(s.offsets))
	copy(out, s.offsets)
	return out
}

// Size returns the number of cells in the shape.
func (s Shape[P]) Size() int { return len(s.offsets) }

// Line creates a horizontal line shape of the given length, anchored at its
// leftmost cell.
func Line(length int) (Shape[Coord], error) {
	if length <= 0 {
		return Shape[Coord]{}, ErrInvalidShape
	}
	offsets := make([]Coord, length)
	for i := 0; i < length; i++ {
		offsets[i] = Coord{X: i, Y: 0}
	}
	return Shape[Coord]{offsets: offsets}, nil
}

// Rotate returns the shape rotated a quarter turn clockwise and normalized so
// that the minimum offset on each axis is zero. Normalizing keeps anchor
// semantics stable: the anchor always addresses the shape's top-left corner.
func Rotate(s Shape[Coord]) Shape[Coord] {
	rotated := make([]Coord, len(s.offsets))
	for i, off := range s.offsets {
		rotated[i] = Coord{X: -off.Y, Y: off.X}
	}
	return Shape[Coord]{offsets: normalizeOffsets(rotated)}
}

// Rotations returns the distinct quarter-turn rotations of the shape,
// starting with the shape itself. A line has two, a square one, an L-shape
// four.
func Rotations(s Shape[Coord]) []Shape[Coord] {
	seen := make(map[string]bool, 4)
	out := make([]Shape[Coord], 0, 4)
	current := Shape[Coord]{offsets: normalizeOffsets(s.offsets)}
	for i := 0; i < 4; i++ {
		key := shapeKey(current)
		if !seen[key] {
			seen[key] = true
			out = append(out, current)
		}
		current = Rotate(current)
	}
	return out
}

// normalizeOffsets shifts offsets so the minimum on each axis is zero.
func normalizeOffsets(offsets []Coord) []Coord {
	if len(offsets) == 0 {
		return nil
	}
	minX, minY := offsets[0].X, offsets[0].Y
	for _, off := range offsets[1:] {
		if off.X < minX {
			minX = off.X
		}
		if off.Y < minY {
			minY = off.Y
		}
	}
	out := make([]Coord, len(offsets))
	for i, off := range offsets {
		out[i] = Coord{X: off.X - minX, Y: off.Y - minY}
	}
	return out
}

// shapeKey builds an order-independent identity for a 2D shape, used to
// deduplicate rotations.
func shapeKey(s Shape[Coord]) string {
	occupied := make(map[Coord]bool, len(s.offsets))
	maxX, maxY := 0, 0
	for _, off := range s.offsets {
		occupied[off] = true
		if off.X > maxX {
			maxX = off.X
		}
		if off.Y > maxY {
			maxY = off.Y
		}
	}
	key := make([]byte, 0, (maxX+2)*(maxY+1))
	for y := 0; y <= maxY; y++ {
		for x := 0; x <= maxX; x++ {
			if occupied[Coord{X: x, Y: y}] {
				key = append(key, '#')
			} else {
				key = append(key, '.')
			}
		}
		key = append(key, '/')
	}
	return string(key)
}
