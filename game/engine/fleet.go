package engine

import "fmt"

// ManifestEntry describes one ship a player must field.
type ManifestEntry[P comparable] struct {
	Ship Ship[P]
}

// Manifest is the roster of ships every player must place before the game can
// start. A manifest is immutable and shared between all fleets of a game.
type Manifest[P comparable] struct {
	entries []ManifestEntry[P]
	index   map[ShipID]int
}

// NewManifest creates a manifest from the given ships. Ship identities must be
// unique and the manifest must not be empty.
func NewManifest[P comparable](ships ...Ship[P]) (Manifest[P], error) {
	if len(ships) == 0 {
		return Manifest[P]{}, fmt.Errorf("manifest must contain at least one ship")
	}
	index := make(map[ShipID]int, len(ships))
	entries := make([]ManifestEntry[P], len(ships))
	for i, ship := range ships {
		if _, dup := index[ship.ID()]; dup {
			return Manifest[P]{}, fmt.Errorf("manifest ship %q: %w", ship.ID(), ErrDuplicateShip)
		}
		index[ship.ID()] = i
		entries[i] = ManifestEntry[P]{Ship: ship}
	}
	return Manifest[P]{entries: entries, index: index}, nil
}

// Ships returns the manifest's ships in declaration order.
func (m Manifest[P]) Ships() []Ship[P] {
	out := make([]Ship[P], len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Ship
	}
	return out
}

// IDs returns the manifest's ship identities in declaration order.
func (m Manifest[P]) IDs() []ShipID {
	out := make([]ShipID, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Ship.ID()
	}
	return out
}

// Ship looks up a manifest ship by identity.
func (m Manifest[P]) Ship(id ShipID) (Ship[P], bool) {
	i, ok := m.index[id]
	if !ok {
		return Ship[P]{}, false
	}
	return m.entries[i].Ship, true
}

// Size returns the number of ships in the manifest.
func (m Manifest[P]) Size() int { return len(m.entries) }

// Fleet pairs a board with the manifest it must satisfy. It answers readiness
// questions during setup and defeat questions during play.
type Fleet[P comparable] struct {
	manifest Manifest[P]
	board    *Board[P]
}

// NewFleet creates a fleet over a fresh board with the given layout and rules.
func NewFleet[P comparable](manifest Manifest[P], layout Layout[P], rules Rules) *Fleet[P] {
	return &Fleet[P]{manifest: manifest, board: NewBoard(layout, rules)}
}

// Board returns the fleet's board.
func (f *Fleet[P]) Board() *Board[P] { return f.board }

// Manifest returns the fleet's ship roster.
func (f *Fleet[P]) Manifest() Manifest[P] { return f.manifest }

// IsReady reports whether the board holds exactly the manifest's ships: every
// manifest ship placed and nothing besides. The board rejects duplicate
// identities on its own, so a count match rules out extras.
func (f *Fleet[P]) IsReady() bool {
	if len(f.board.PlacedShips()) != f.manifest.Size() {
		return false
	}
	for _, e := range f.manifest.entries {
		if !f.board.HasShip(e.Ship.ID()) {
			return false
		}
	}
	return true
}

// Pending returns the manifest ships not yet placed, in declaration order.
func (f *Fleet[P]) Pending() []Ship[P] {
	var out []Ship[P]
	for _, e := range f.manifest.entries {
		if !f.board.HasShip(e.Ship.ID()) {
			out = append(out, e.Ship)
		}
	}
	return out
}

// Remaining returns the placed ships that are not yet sunk, in declaration
// order.
func (f *Fleet[P]) Remaining() []Ship[P] {
	var out []Ship[P]
	for _, e := range f.manifest.entries {
		id := e.Ship.ID()
		if f.board.HasShip(id) && !f.board.IsSunk(id) {
			out = append(out, e.Ship)
		}
	}
	return out
}

// Defeated reports whether every ship of a ready fleet has been sunk.
func (f *Fleet[P]) Defeated() bool {
	return f.board.AllSunk()
}
