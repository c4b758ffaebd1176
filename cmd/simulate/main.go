// Command simulate plays a batch of fully random matches against a
// configuration and prints aggregate statistics: win distribution, match
// length, and hit rate. It is useful for sanity-checking new configs (does
// random placement succeed? how long do matches run?) and for eyeballing
// first-player advantage.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/battlegrid/game/engine"
)

// SimulationStats aggregates the outcome of a batch of random matches.
type SimulationStats struct {
	Games      int
	Wins       []int
	TotalShots int
	TotalHits  int
	MinShots   int
	MaxShots   int
}

func main() {
	cmd := &cli.Command{
		Name:  "simulate",
		Usage: "play random matches against a config and report statistics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/classic.json",
				Usage:   "path to the game configuration file",
			},
			&cli.IntFlag{
				Name:    "games",
				Aliases: []string{"n"},
				Value:   100,
				Usage:   "number of matches to simulate",
			},
			&cli.IntFlag{
				Name:    "seed",
				Aliases: []string{"s"},
				Value:   1,
				Usage:   "base seed; match i uses seed+i for reproducible runs",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			config, err := engine.LoadGameConfig(cmd.String("config"))
			if err != nil {
				return err
			}

			games := cmd.Int("games")
			if games < 1 {
				return fmt.Errorf("games must be at least 1, got %d", games)
			}

			stats, err := runSimulation(config, games, int64(cmd.Int("seed")))
			if err != nil {
				return err
			}

			printStats(config, stats)
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// runSimulation plays the requested number of random matches. Match i uses
// baseSeed+i for both placement and shot order, so a run is reproducible.
func runSimulation(config *engine.GameConfig, games int, baseSeed int64) (*SimulationStats, error) {
	stats := &SimulationStats{
		Games:    games,
		Wins:     make([]int, config.Players),
		MinShots: -1,
	}

	for i := 0; i < games; i++ {
		winner, shots, hits, err := playRandomMatch(config, baseSeed+int64(i))
		if err != nil {
			return nil, fmt.Errorf("match %d: %w", i, err)
		}

		stats.Wins[winner]++
		stats.TotalShots += shots
		stats.TotalHits += hits
		if stats.MinShots == -1 || shots < stats.MinShots {
			stats.MinShots = shots
		}
		if shots > stats.MaxShots {
			stats.MaxShots = shots
		}
	}

	return stats, nil
}

// playRandomMatch sets up a game from the config, auto-places every fleet and
// fires uniformly random untried shots until the match finishes. It returns
// the winner, the total number of shots fired, and how many of them hit.
func playRandomMatch(config *engine.GameConfig, seed int64) (winner, shots, hits int, err error) {
	game, err := engine.NewGameFromConfig(config)
	if err != nil {
		return 0, 0, 0, err
	}

	for player := 0; player < game.Players(); player++ {
		// Offset per player so fleets are not mirror images
		if err := game.AutoPlace(player, engine.NewAutoPlacer(seed+int64(player)*7919)); err != nil {
			return 0, 0, 0, fmt.Errorf("auto-place player %d: %w", player, err)
		}
	}

	if err := game.Start(); err != nil {
		return 0, 0, 0, err
	}

	layout, err := config.Layout()
	if err != nil {
		return 0, 0, 0, err
	}

	// One shuffled queue of untried positions per target board, shared by
	// every attacker. Each board cell is drawn exactly once, so shots never
	// repeat even when several players fire at the same target.
	rng := rand.New(rand.NewSource(seed))
	queues := make(map[int][]engine.Coord)
	nextShot := func(target int) engine.Coord {
		queue, ok := queues[target]
		if !ok {
			queue = layout.Positions()
			rng.Shuffle(len(queue), func(i, j int) {
				queue[i], queue[j] = queue[j], queue[i]
			})
		}
		pos := queue[0]
		queues[target] = queue[1:]
		return pos
	}

	for game.Phase() == engine.PhasePlaying {
		attacker := game.Turn()

		// Shoot at the next living opponent in index order
		target := -1
		for player := 0; player < game.Players(); player++ {
			if player != attacker && game.Alive(player) {
				target = player
				break
			}
		}
		if target == -1 {
			return 0, 0, 0, fmt.Errorf("no living opponent for player %d", attacker)
		}

		result, err := game.ShootAt(attacker, target, nextShot(target))
		if err != nil {
			return 0, 0, 0, fmt.Errorf("shot by player %d: %w", attacker, err)
		}

		shots++
		if result.Hit {
			hits++
		}
	}

	winner, ok := game.Winner()
	if !ok {
		return 0, 0, 0, fmt.Errorf("match finished without a winner")
	}
	return winner, shots, hits, nil
}

func printStats(config *engine.GameConfig, stats *SimulationStats) {
	fmt.Printf("Config: %s (%dx%d, %d players, %d ships)\n",
		config.Name, config.Board.Width, config.Board.Height,
		config.Players, len(config.Fleet))
	fmt.Printf("Matches: %d\n\n", stats.Games)

	fmt.Println("Win distribution:")
	for player, wins := range stats.Wins {
		fmt.Printf("  player %d: %d (%.1f%%)\n",
			player, wins, float64(wins)/float64(stats.Games)*100)
	}

	avgShots := float64(stats.TotalShots) / float64(stats.Games)
	hitRate := 0.0
	if stats.TotalShots > 0 {
		hitRate = float64(stats.TotalHits) / float64(stats.TotalShots) * 100
	}

	fmt.Printf("\nShots per match: avg %.1f, min %d, max %d\n",
		avgShots, stats.MinShots, stats.MaxShots)
	fmt.Printf("Hit rate: %.1f%%\n", hitRate)
}
