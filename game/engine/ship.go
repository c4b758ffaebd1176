package engine

// ShipID identifies a ship within a single player's board. IDs only need to
// be unique per board, not globally.
type ShipID string

// Ship is a named shape with identity. Ships are immutable after creation;
// the board records which absolute positions a placed ship occupies.
type Ship[P comparable] struct {
	id    ShipID
	name  string
	shape Shape[P]
}

// NewShip creates a ship from an identity and a shape. The shape must have at
// least one cell.
func NewShip[P comparable](id ShipID, shape Shape[P]) (Ship[P], error) {
	return NewNamedShip(id, string(id), shape)
}

// NewNamedShip creates a ship with a display name distinct from its identity.
func NewNamedShip[P comparable](id ShipID, name string, shape Shape[P]) (Ship[P], error) {
	if shape.Size() == 0 {
		return Ship[P]{}, ErrInvalidShape
	}
	return Ship[P]{id: id, name: name, shape: shape}, nil
}

// ID returns the ship's identity.
func (s Ship[P]) ID() ShipID { return s.id }

// Name returns the ship's display name.
func (s Ship[P]) Name() string { return s.name }

// Shape returns the ship's footprint.
func (s Ship[P]) Shape() Shape[P] { return s.shape }

// Length returns the number of cells the ship covers.
func (s Ship[P]) Length() int { return s.shape.Size() }
