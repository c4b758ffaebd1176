package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the engine. Callers match them with errors.Is;
// placement and shot failures additionally carry context via PlacementError
// and ShotError.
var (
	// ErrInvalidShape is returned when a shape with zero cells is used.
	ErrInvalidShape = errors.New("shape has no cells")

	// ErrOutOfBounds is returned when a position or shape projection falls
	// outside the board's bounds.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrOverlap is returned when a placement collides with an existing ship.
	ErrOverlap = errors.New("position already occupied by another ship")

	// ErrAdjacentShip is returned when the no-touching rule is enabled and a
	// placement touches another ship.
	ErrAdjacentShip = errors.New("position adjacent to another ship")

	// ErrDuplicateShip is returned when a ship identity was already placed.
	ErrDuplicateShip = errors.New("ship already placed")

	// ErrAlreadyShot is returned when a position already holds a hit or miss.
	ErrAlreadyShot = errors.New("position already shot")

	// ErrNotReady is returned when a game is started before every fleet is
	// completely placed.
	ErrNotReady = errors.New("not all fleets are ready")

	// ErrNotStarted is returned when a shot or skip is attempted during the
	// setup phase.
	ErrNotStarted = errors.New("game has not started")

	// ErrSetupOver is returned when a placement is attempted after the game
	// has started.
	ErrSetupOver = errors.New("setup phase is over")

	// ErrWrongTurn is returned when a player acts out of turn order.
	ErrWrongTurn = errors.New("not this player's turn")

	// ErrGameOver is returned for any mutating call after the game finished.
	ErrGameOver = errors.New("game is over")

	// ErrUnknownPlayer is returned when a player index is out of range or
	// targets an invalid opponent.
	ErrUnknownPlayer = errors.New("unknown player")

	// ErrSelfShot is returned when a player targets their own board.
	ErrSelfShot = errors.New("cannot shoot own board")

	// ErrPlayerDefeated is returned when a shot targets a player whose fleet
	// has already been sunk.
	ErrPlayerDefeated = errors.New("player already defeated")

	// ErrPlacementExhausted is returned by the auto placer when no valid
	// arrangement was found within the attempt bound.
	ErrPlacementExhausted = errors.New("no valid placement found within attempt bound")
)

// PlacementError reports a failed placement together with the ship and anchor
// that were attempted. It wraps one of the placement sentinel errors.
type PlacementError[P comparable] struct {
	Ship   ShipID
	Anchor P
	Err    error
}

func (e *PlacementError[P]) Error() string {
	return fmt.Sprintf("cannot place ship %q at %v: %v", e.Ship, e.Anchor, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *PlacementError[P]) Unwrap() error { return e.Err }

// ShotError reports a failed shot together with the targeted position. It
// wraps one of the shot sentinel errors.
type ShotError[P comparable] struct {
	Pos P
	Err error
}

func (e *ShotError[P]) Error() string {
	return fmt.Sprintf("cannot shoot %v: %v", e.Pos, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ShotError[P]) Unwrap() error { return e.Err }
