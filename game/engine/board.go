package engine

// CellState is the observable state of a single board position. A position
// has exactly one state at any time; "hit and empty" is unrepresentable
// because a hit on an empty cell is a miss.
type CellState int

const (
	CellEmpty CellState = iota
	CellOccupied
	CellHit
	CellMiss
)

// String returns the lowercase name of the state, used in views and logs.
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellOccupied:
		return "occupied"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Rules are the placement rule toggles for a board. Both default to false,
// which is the classic ruleset: ships may not overlap and may touch.
// The toggles are independent; enabling both allows overlap while forbidding
// mere adjacency, which is legal if unusual.
type Rules struct {
	// AllowOverlap permits two ships to share a cell. A shot on a shared
	// cell registers a hit on every ship covering it.
	AllowOverlap bool `json:"allow_overlap"`

	// NoTouching rejects placements adjacent to a different ship's cell.
	NoTouching bool `json:"no_touching"`
}

// Cell is a read-only view of one board position.
type Cell[P comparable] struct {
	Pos   P
	State CellState
	// Ships lists the ships occupying the position. More than one entry is
	// only possible when overlap is allowed.
	Ships []ShipID
}

// ShotResult is the outcome of a successful shot.
type ShotResult struct {
	// Hit is true if the shot struck a ship.
	Hit bool `json:"hit"`
	// Ship is the hit ship's identity. With overlap allowed and several
	// ships sharing the cell, it is the first ship placed there; every
	// covering ship still registers the hit.
	Ship ShipID `json:"ship,omitempty"`
	// Sunk is true if the shot sank Ship.
	Sunk bool `json:"sunk,omitempty"`
}

// Board tracks one player's side of the ocean: ship placements and shot
// history over an arbitrary Layout. Cell storage is sparse, so the board
// works for any geometry without knowing its extent up front.
//
// Board is not safe for concurrent use; callers serialize access, normally
// by owning the board through a single Game.
type Board[P comparable] struct {
	layout Layout[P]
	rules  Rules

	shot     map[P]bool
	occupied map[P][]ShipID
	ships    map[ShipID][]P
	hits     map[ShipID]int
	sunk     int
}

// NewBoard creates an empty board over the given layout.
func NewBoard[P comparable](layout Layout[P], rules Rules) *Board[P] {
	return &Board[P]{
		layout:   layout,
		rules:    rules,
		shot:     make(map[P]bool),
		occupied: make(map[P][]ShipID),
		ships:    make(map[ShipID][]P),
		hits:     make(map[ShipID]int),
	}
}

// Layout returns the board's geometry.
func (b *Board[P]) Layout() Layout[P] { return b.layout }

// Rules returns the board's placement rule toggles.
func (b *Board[P]) Rules() Rules { return b.rules }

// Place validates and commits a ship placement anchored at the given
// position. Validation is complete before any mutation, so a failed
// placement leaves every cell untouched. Failures wrap ErrDuplicateShip,
// ErrOutOfBounds, ErrOverlap or ErrAdjacentShip.
func (b *Board[P]) Place(ship Ship[P], anchor P) error {
	fail := func(err error) error {
		return &PlacementError[P]{Ship: ship.ID(), Anchor: anchor, Err: err}
	}
	if ship.Shape().Size() == 0 {
		return fail(ErrInvalidShape)
	}
	if _, exists := b.ships[ship.ID()]; exists {
		return fail(ErrDuplicateShip)
	}
	cells, ok := b.layout.Translate(anchor, ship.Shape())
	if !ok {
		return fail(ErrOutOfBounds)
	}
	if !b.rules.AllowOverlap {
		for _, cell := range cells {
			if len(b.occupied[cell]) > 0 {
				return fail(ErrOverlap)
			}
		}
	}
	if b.rules.NoTouching {
		for _, cell := range cells {
			for _, neighbor := range b.layout.Neighbors(cell) {
				if len(b.occupied[neighbor]) > 0 {
					return fail(ErrAdjacentShip)
				}
			}
		}
	}

	for _, cell := range cells {
		b.occupied[cell] = append(b.occupied[cell], ship.ID())
	}
	b.ships[ship.ID()] = cells
	b.hits[ship.ID()] = 0
	return nil
}

// Shoot resolves a shot at the given position. The first shot at a position
// transitions it to hit or miss; any further shot fails with ErrAlreadyShot
// and changes nothing. Out-of-bounds positions fail with ErrOutOfBounds.
func (b *Board[P]) Shoot(pos P) (ShotResult, error) {
	if !b.layout.Contains(pos) {
		return ShotResult{}, &ShotError[P]{Pos: pos, Err: ErrOutOfBounds}
	}
	if b.shot[pos] {
		return ShotResult{}, &ShotError[P]{Pos: pos, Err: ErrAlreadyShot}
	}
	b.shot[pos] = true

	ids := b.occupied[pos]
	if len(ids) == 0 {
		return ShotResult{}, nil
	}
	for _, id := range ids {
		b.hits[id]++
		if b.hits[id] == len(b.ships[id]) {
			b.sunk++
		}
	}
	primary := ids[0]
	return ShotResult{Hit: true, Ship: primary, Sunk: b.IsSunk(primary)}, nil
}

// HasShip reports whether the ship identity has been placed.
func (b *Board[P]) HasShip(id ShipID) bool {
	_, ok := b.ships[id]
	return ok
}

// ShipCells returns the absolute positions occupied by the ship, or nil if
// the ship has not been placed.
func (b *Board[P]) ShipCells(id ShipID) []P {
	cells, ok := b.ships[id]
	if !ok {
		return nil
	}
	out := make([]P, len(cells))
	copy(out, cells)
	return out
}

// PlacedShips returns the identities of every placed ship.
func (b *Board[P]) PlacedShips() []ShipID {
	ids := make([]ShipID, 0, len(b.ships))
	for id := range b.ships {
		ids = append(ids, id)
	}
	return ids
}

// IsSunk reports whether every position of the ship has been hit. An
// unplaced ship is not sunk.
func (b *Board[P]) IsSunk(id ShipID) bool {
	cells, ok := b.ships[id]
	return ok && b.hits[id] == len(cells)
}

// AllSunk reports whether every placed ship is sunk. Sunk counts are
// maintained per shot, so this is O(1). A board with no ships placed is
// never all-sunk.
func (b *Board[P]) AllSunk() bool {
	return len(b.ships) > 0 && b.sunk == len(b.ships)
}

// CellAt returns the read-only view of a single position. ok is false for
// out-of-bounds positions.
func (b *Board[P]) CellAt(pos P) (Cell[P], bool) {
	if !b.layout.Contains(pos) {
		return Cell[P]{}, false
	}
	return b.cellAt(pos), true
}

func (b *Board[P]) cellAt(pos P) Cell[P] {
	cell := Cell[P]{Pos: pos}
	if ids := b.occupied[pos]; len(ids) > 0 {
		cell.Ships = make([]ShipID, len(ids))
		copy(cell.Ships, ids)
		if b.shot[pos] {
			cell.State = CellHit
		} else {
			cell.State = CellOccupied
		}
	} else if b.shot[pos] {
		cell.State = CellMiss
	} else {
		cell.State = CellEmpty
	}
	return cell
}

// Cells returns the view of every position in layout enumeration order,
// for display and serialization collaborators. The board itself never
// formats anything.
func (b *Board[P]) Cells() []Cell[P] {
	positions := b.layout.Positions()
	cells := make([]Cell[P], len(positions))
	for i, pos := range positions {
		cells[i] = b.cellAt(pos)
	}
	return cells
}
