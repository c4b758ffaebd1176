package engine

import (
	"errors"
	"fmt"
	"math/rand"
)

// DefaultMaxPlaceAttempts bounds how many random anchor/orientation pairs the
// auto placer tries per ship before giving up.
const DefaultMaxPlaceAttempts = 1000

// AutoPlacer places ships at random valid positions. It is deterministic for
// a given seed, which lets a recorded game be replayed exactly.
//
// Placement is rejection sampling: pick a random anchor and orientation, try
// to place, retry on rejection. The attempt bound keeps a crowded or
// impossible board from looping forever; hitting it returns
// ErrPlacementExhausted, which does not prove no arrangement exists.
type AutoPlacer[P comparable] struct {
	// Rand is the randomness source. Required.
	Rand *rand.Rand

	// MaxAttempts bounds the tries per ship. Zero means
	// DefaultMaxPlaceAttempts.
	MaxAttempts int

	// Orientations expands a shape into the orientations to sample from. If
	// nil, ships are placed in their declared orientation only.
	Orientations func(Shape[P]) []Shape[P]
}

// NewAutoPlacer creates a seeded placer for two-dimensional boards that
// samples all quarter-turn rotations of each ship.
func NewAutoPlacer(seed int64) *AutoPlacer[Coord] {
	return &AutoPlacer[Coord]{
		Rand:         rand.New(rand.NewSource(seed)),
		MaxAttempts:  DefaultMaxPlaceAttempts,
		Orientations: Rotations,
	}
}

// NewAutoPlacerFor creates a seeded placer for an arbitrary position type
// with a caller-supplied orientation expander.
func NewAutoPlacerFor[P comparable](seed int64, orientations func(Shape[P]) []Shape[P]) *AutoPlacer[P] {
	return &AutoPlacer[P]{
		Rand:         rand.New(rand.NewSource(seed)),
		MaxAttempts:  DefaultMaxPlaceAttempts,
		Orientations: orientations,
	}
}

// PlaceShip places a single ship at a random valid position on the board.
func (a *AutoPlacer[P]) PlaceShip(board *Board[P], ship Ship[P]) error {
	return a.placeShip(board, ship, board.Layout().Positions())
}

// PlaceFleet places every pending manifest ship of the fleet. Ships already
// on the board are left where they are, so a partially hand-placed fleet can
// be completed automatically. Ships are placed in manifest order to keep the
// outcome a pure function of the seed.
func (a *AutoPlacer[P]) PlaceFleet(fleet *Fleet[P]) error {
	positions := fleet.Board().Layout().Positions()
	for _, ship := range fleet.Manifest().Ships() {
		if fleet.Board().HasShip(ship.ID()) {
			continue
		}
		if err := a.placeShip(fleet.Board(), ship, positions); err != nil {
			return err
		}
	}
	return nil
}

func (a *AutoPlacer[P]) placeShip(board *Board[P], ship Ship[P], positions []P) error {
	if len(positions) == 0 {
		return fmt.Errorf("ship %q: empty layout: %w", ship.ID(), ErrPlacementExhausted)
	}
	orientations := []Shape[P]{ship.Shape()}
	if a.Orientations != nil {
		orientations = a.Orientations(ship.Shape())
	}
	maxAttempts := a.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxPlaceAttempts
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		anchor := positions[a.Rand.Intn(len(positions))]
		shape := orientations[a.Rand.Intn(len(orientations))]
		candidate := Ship[P]{id: ship.id, name: ship.name, shape: shape}
		err := board.Place(candidate, anchor)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrOutOfBounds) || errors.Is(err, ErrOverlap) || errors.Is(err, ErrAdjacentShip) {
			continue
		}
		return err
	}
	return fmt.Errorf("ship %q after %d attempts: %w", ship.ID(), maxAttempts, ErrPlacementExhausted)
}
