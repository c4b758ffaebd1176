package engine

import (
	"errors"
	"testing"
)

func testManifest(t *testing.T) Manifest[Coord] {
	t.Helper()
	manifest, err := NewManifest(
		mustShip(t, "cruiser", mustLine(t, 3)),
		mustShip(t, "destroyer", mustLine(t, 2)),
	)
	if err != nil {
		t.Fatalf("NewManifest failed: %v", err)
	}
	return manifest
}

func TestNewManifest(t *testing.T) {
	manifest := testManifest(t)
	if manifest.Size() != 2 {
		t.Errorf("Size = %d, want 2", manifest.Size())
	}

	ids := manifest.IDs()
	if ids[0] != "cruiser" || ids[1] != "destroyer" {
		t.Errorf("IDs = %v, want declaration order", ids)
	}

	ship, ok := manifest.Ship("destroyer")
	if !ok || ship.Length() != 2 {
		t.Errorf("Ship(destroyer) = %v, %v; want length-2 ship", ship, ok)
	}
	if _, ok := manifest.Ship("ghost"); ok {
		t.Error("Ship should report unknown identities")
	}
}

func TestNewManifest_Invalid(t *testing.T) {
	if _, err := NewManifest[Coord](); err == nil {
		t.Error("empty manifest should fail")
	}

	dup := mustShip(t, "twin", mustLine(t, 2))
	if _, err := NewManifest(dup, dup); !errors.Is(err, ErrDuplicateShip) {
		t.Errorf("duplicate manifest error = %v, want ErrDuplicateShip", err)
	}
}

func TestFleet_Readiness(t *testing.T) {
	fleet := NewFleet(testManifest(t), mustRect(t, 5, 5), Rules{})
	if fleet.IsReady() {
		t.Error("an empty fleet is not ready")
	}
	if pending := fleet.Pending(); len(pending) != 2 {
		t.Errorf("Pending = %d ships, want 2", len(pending))
	}

	cruiser, _ := fleet.Manifest().Ship("cruiser")
	if err := fleet.Board().Place(cruiser, Coord{X: 0, Y: 0}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if fleet.IsReady() {
		t.Error("fleet with a pending ship is not ready")
	}
	if pending := fleet.Pending(); len(pending) != 1 || pending[0].ID() != "destroyer" {
		t.Errorf("Pending = %v, want just the destroyer", pending)
	}

	destroyer, _ := fleet.Manifest().Ship("destroyer")
	if err := fleet.Board().Place(destroyer, Coord{X: 0, Y: 2}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if !fleet.IsReady() {
		t.Error("fleet with all ships placed should be ready")
	}
	if pending := fleet.Pending(); pending != nil {
		t.Errorf("Pending = %v, want nil", pending)
	}
}

func TestFleet_IsReadyRejectsExtraShip(t *testing.T) {
	fleet := NewFleet(testManifest(t), mustRect(t, 5, 5), Rules{})
	cruiser, _ := fleet.Manifest().Ship("cruiser")
	destroyer, _ := fleet.Manifest().Ship("destroyer")
	if err := fleet.Board().Place(cruiser, Coord{X: 0, Y: 0}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if err := fleet.Board().Place(destroyer, Coord{X: 0, Y: 2}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	// The board is also reachable directly, so readiness must reject ships
	// placed outside the manifest.
	rogue := mustShip(t, "rogue", mustLine(t, 2))
	if err := fleet.Board().Place(rogue, Coord{X: 0, Y: 4}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if fleet.IsReady() {
		t.Error("fleet with a non-manifest ship on the board is not ready")
	}
}

func TestFleet_RemainingAndDefeated(t *testing.T) {
	fleet := NewFleet(testManifest(t), mustRect(t, 5, 5), Rules{})
	cruiser, _ := fleet.Manifest().Ship("cruiser")
	destroyer, _ := fleet.Manifest().Ship("destroyer")
	if err := fleet.Board().Place(cruiser, Coord{X: 0, Y: 0}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if err := fleet.Board().Place(destroyer, Coord{X: 0, Y: 2}); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	if remaining := fleet.Remaining(); len(remaining) != 2 {
		t.Fatalf("Remaining = %d ships, want 2", len(remaining))
	}

	for _, pos := range []Coord{{0, 2}, {1, 2}} {
		if _, err := fleet.Board().Shoot(pos); err != nil {
			t.Fatalf("Shoot(%v) failed: %v", pos, err)
		}
	}
	remaining := fleet.Remaining()
	if len(remaining) != 1 || remaining[0].ID() != "cruiser" {
		t.Errorf("Remaining = %v, want just the cruiser", remaining)
	}
	if fleet.Defeated() {
		t.Error("fleet with a floating ship is not defeated")
	}

	for _, pos := range []Coord{{0, 0}, {1, 0}, {2, 0}} {
		if _, err := fleet.Board().Shoot(pos); err != nil {
			t.Fatalf("Shoot(%v) failed: %v", pos, err)
		}
	}
	if !fleet.Defeated() {
		t.Error("fleet with every ship sunk is defeated")
	}
}
