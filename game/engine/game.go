package engine

import "fmt"

// Phase is the lifecycle stage of a game.
type Phase int

const (
	// PhaseSetup is the placement stage. Only Place is legal.
	PhaseSetup Phase = iota
	// PhasePlaying is the turn-taking stage. Only shots and skips are legal.
	PhasePlaying
	// PhaseFinished means one player remains. Every mutating call fails.
	PhaseFinished
)

// String returns the lowercase name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Game drives a match between two or more fleets through setup, play and
// completion. Players are identified by index in the order they were created.
// All fleets share the same manifest, layout and rules.
//
// Game is not safe for concurrent use; wrap it in a lock or confine it to one
// goroutine. The service layer does the former.
type Game[P comparable] struct {
	fleets []*Fleet[P]
	phase  Phase
	turn   int
	alive  []bool
	living int
	winner int
}

// NewGame creates a game for the given number of players. Each player gets a
// fresh board over the same layout with the same rules and must place the
// same manifest. At least two players are required.
func NewGame[P comparable](players int, manifest Manifest[P], layout Layout[P], rules Rules) (*Game[P], error) {
	if players < 2 {
		return nil, fmt.Errorf("game needs at least two players, got %d", players)
	}
	if manifest.Size() == 0 {
		return nil, fmt.Errorf("game manifest is empty")
	}
	fleets := make([]*Fleet[P], players)
	alive := make([]bool, players)
	for i := range fleets {
		fleets[i] = NewFleet(manifest, layout, rules)
		alive[i] = true
	}
	return &Game[P]{
		fleets: fleets,
		phase:  PhaseSetup,
		alive:  alive,
		living: players,
		winner: -1,
	}, nil
}

// Players returns the number of players.
func (g *Game[P]) Players() int { return len(g.fleets) }

// Phase returns the game's current lifecycle stage.
func (g *Game[P]) Phase() Phase { return g.phase }

// Turn returns the index of the player whose turn it is. The value is only
// meaningful while the game is in the playing phase.
func (g *Game[P]) Turn() int { return g.turn }

// Winner returns the winning player's index once the game is finished.
func (g *Game[P]) Winner() (int, bool) {
	if g.phase != PhaseFinished {
		return 0, false
	}
	return g.winner, true
}

// Fleet returns the given player's fleet.
func (g *Game[P]) Fleet(player int) (*Fleet[P], error) {
	if player < 0 || player >= len(g.fleets) {
		return nil, fmt.Errorf("player %d: %w", player, ErrUnknownPlayer)
	}
	return g.fleets[player], nil
}

// Board returns the given player's board.
func (g *Game[P]) Board(player int) (*Board[P], error) {
	fleet, err := g.Fleet(player)
	if err != nil {
		return nil, err
	}
	return fleet.Board(), nil
}

// Alive reports whether the player still has unsunk ships. Every player is
// alive until the game starts and their fleet is defeated.
func (g *Game[P]) Alive(player int) bool {
	return player >= 0 && player < len(g.alive) && g.alive[player]
}

// Place puts one of the player's manifest ships on their board during setup.
// The ship is looked up in the manifest by identity and placed in its
// declared orientation.
func (g *Game[P]) Place(player int, id ShipID, anchor P) error {
	return g.placeShape(player, id, anchor, nil)
}

// PlaceShape places a manifest ship in an alternate orientation of its
// declared shape, for example a rotation. The orientation must cover the
// same number of cells as the declared shape.
func (g *Game[P]) PlaceShape(player int, id ShipID, shape Shape[P], anchor P) error {
	return g.placeShape(player, id, anchor, &shape)
}

func (g *Game[P]) placeShape(player int, id ShipID, anchor P, shape *Shape[P]) error {
	switch g.phase {
	case PhasePlaying:
		return ErrSetupOver
	case PhaseFinished:
		return ErrGameOver
	}
	fleet, err := g.Fleet(player)
	if err != nil {
		return err
	}
	ship, ok := fleet.Manifest().Ship(id)
	if !ok {
		return fmt.Errorf("ship %q is not in the manifest: %w", id, ErrInvalidShape)
	}
	if shape != nil {
		if shape.Size() != ship.Shape().Size() {
			return fmt.Errorf("orientation covers %d cells but ship %q has %d: %w",
				shape.Size(), id, ship.Shape().Size(), ErrInvalidShape)
		}
		ship, err = NewNamedShip(ship.ID(), ship.Name(), *shape)
		if err != nil {
			return err
		}
	}
	return fleet.Board().Place(ship, anchor)
}

// AutoPlace fills the player's remaining manifest ships using the given
// placer. It obeys the same phase rules as Place.
func (g *Game[P]) AutoPlace(player int, placer *AutoPlacer[P]) error {
	switch g.phase {
	case PhasePlaying:
		return ErrSetupOver
	case PhaseFinished:
		return ErrGameOver
	}
	fleet, err := g.Fleet(player)
	if err != nil {
		return err
	}
	return placer.PlaceFleet(fleet)
}

// Ready reports whether every fleet has placed its full manifest.
func (g *Game[P]) Ready() bool {
	for _, fleet := range g.fleets {
		if !fleet.IsReady() {
			return false
		}
	}
	return true
}

// Start transitions the game from setup to play. It fails with ErrNotReady
// until every fleet is completely placed. Player zero moves first.
func (g *Game[P]) Start() error {
	switch g.phase {
	case PhasePlaying:
		return ErrSetupOver
	case PhaseFinished:
		return ErrGameOver
	}
	if !g.Ready() {
		return ErrNotReady
	}
	g.phase = PhasePlaying
	g.turn = 0
	return nil
}

// ShootAt fires the attacker's shot at a position on the target's board. The
// attacker must hold the turn, may not target themselves or a defeated
// player, and the turn passes to the next living player afterwards regardless
// of the outcome. Sinking the target's last ship eliminates the target;
// eliminating the last opponent ends the game.
func (g *Game[P]) ShootAt(attacker, target int, pos P) (ShotResult, error) {
	if err := g.checkTurn(attacker); err != nil {
		return ShotResult{}, err
	}
	if target < 0 || target >= len(g.fleets) {
		return ShotResult{}, fmt.Errorf("target %d: %w", target, ErrUnknownPlayer)
	}
	if target == attacker {
		return ShotResult{}, ErrSelfShot
	}
	if !g.alive[target] {
		return ShotResult{}, fmt.Errorf("target %d: %w", target, ErrPlayerDefeated)
	}

	result, err := g.fleets[target].Board().Shoot(pos)
	if err != nil {
		return ShotResult{}, err
	}
	if g.fleets[target].Defeated() {
		g.alive[target] = false
		g.living--
		if g.living == 1 {
			g.phase = PhaseFinished
			g.winner = attacker
			return result, nil
		}
	}
	g.advanceTurn()
	return result, nil
}

// Shoot fires the current player's shot at their single living opponent. It
// is a convenience for two-sided play; with more than one living opponent the
// target is ambiguous and the call fails.
func (g *Game[P]) Shoot(attacker int, pos P) (ShotResult, error) {
	if err := g.checkTurn(attacker); err != nil {
		return ShotResult{}, err
	}
	target := -1
	for i := range g.fleets {
		if i == attacker || !g.alive[i] {
			continue
		}
		if target >= 0 {
			return ShotResult{}, fmt.Errorf("multiple opponents alive, use ShootAt: %w", ErrUnknownPlayer)
		}
		target = i
	}
	return g.ShootAt(attacker, target, pos)
}

// Skip forfeits the player's turn without firing.
func (g *Game[P]) Skip(player int) error {
	if err := g.checkTurn(player); err != nil {
		return err
	}
	g.advanceTurn()
	return nil
}

func (g *Game[P]) checkTurn(player int) error {
	switch g.phase {
	case PhaseSetup:
		return ErrNotStarted
	case PhaseFinished:
		return ErrGameOver
	}
	if player < 0 || player >= len(g.fleets) {
		return fmt.Errorf("player %d: %w", player, ErrUnknownPlayer)
	}
	if player != g.turn {
		return fmt.Errorf("player %d: %w", player, ErrWrongTurn)
	}
	return nil
}

// advanceTurn moves to the next living player. At least two players are
// alive whenever this is called.
func (g *Game[P]) advanceTurn() {
	for {
		g.turn = (g.turn + 1) % len(g.fleets)
		if g.alive[g.turn] {
			return
		}
	}
}
