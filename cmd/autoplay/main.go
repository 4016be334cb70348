// Command autoplay plays both sides of a complete game against a running
// server over the HTTP API. It is used to smoke-test a deployment.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/battleship/game/engine"
	"github.com/wricardo/mcp-training/battleship/game/service"
)

// Options controls one automated game
type Options struct {
	ConfigID string
	Fleet    int
	MaxTurns int
	Delay    time.Duration
	Verbose  bool
}

// Result summarises an automated game
type Result struct {
	SessionID  string
	Turns      int
	Winner     engine.Player
	WinnerName string
	Scoreboard *service.Scoreboard
}

// play creates a session and drives it to victory
func play(c *Client, opts Options) (*Result, error) {
	info, err := c.CreateSession(opts.ConfigID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	log.Printf("✨ Session created: %s (%s)", info.ID, info.Label)

	if opts.Fleet != 0 {
		result, err := c.SetFleetCount(opts.Fleet)
		if err != nil {
			return nil, err
		}
		if !result.Success {
			return nil, fmt.Errorf("fleet count rejected: %s", result.Message)
		}
	}

	view, err := c.GetState()
	if err != nil {
		return nil, err
	}

	res := &Result{SessionID: info.ID}
	for view.Phase != engine.PlayerVictory {
		switch view.Phase {
		case engine.ChoosingNumberOfShips, engine.PromptPlayerChange:
			// nothing to do but advance

		case engine.PlayerSetup:
			for shipType, ends := range layout(view.RemainingShipTypes, view.CurrentPlayer) {
				if _, err := c.PlaceShip(shipType, ends[0], ends[1]); err != nil {
					return res, err
				}
			}
			log.Printf("⚓ %s placed %d ships", view.CurrentPlayerName, view.FleetCount)

		case engine.PlayerTurn:
			if res.Turns >= opts.MaxTurns {
				return res, fmt.Errorf("no winner after %d turns", res.Turns)
			}
			if view.OpponentBoard == nil {
				return res, fmt.Errorf("turn view has no opponent board")
			}
			target, ok := nextTarget(*view.OpponentBoard)
			if !ok {
				return res, fmt.Errorf("%s has no cell left to fire at", view.CurrentPlayerName)
			}
			result, err := c.Fire(target)
			if err != nil {
				return res, err
			}
			res.Turns++
			if opts.Verbose {
				log.Printf("🎯 %s", result.Message)
			}
			if opts.Delay > 0 {
				time.Sleep(opts.Delay)
			}
		}

		if _, err := c.Advance(); err != nil {
			return res, err
		}
		if view, err = c.GetState(); err != nil {
			return res, err
		}
	}

	res.Winner = view.Winner
	res.WinnerName = view.WinnerName
	if res.Scoreboard, err = c.GetScoreboard(); err != nil {
		return res, err
	}
	return res, nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "autoplay",
		Usage: "play a complete game against a running server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "game server URL"},
			&cli.StringFlag{Name: "config", Usage: "rule set id (server default when empty)"},
			&cli.IntFlag{Name: "fleet", Value: 3, Usage: "ships per player, 0 keeps the rule set's default"},
			&cli.IntFlag{Name: "max-turns", Value: 200, Usage: "give up after this many shots"},
			&cli.DurationFlag{Name: "delay", Usage: "pause between shots"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log every shot"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log.Printf("Connecting to game server at %s", cmd.String("url"))
			client := NewClient(cmd.String("url"))

			res, err := play(client, Options{
				ConfigID: cmd.String("config"),
				Fleet:    int(cmd.Int("fleet")),
				MaxTurns: int(cmd.Int("max-turns")),
				Delay:    cmd.Duration("delay"),
				Verbose:  cmd.Bool("verbose"),
			})
			if err != nil {
				if res != nil {
					log.Printf("Session: %s", res.SessionID)
				}
				return err
			}

			log.Printf("🎉 %s won after %d shots", res.WinnerName, res.Turns)
			for _, p := range res.Scoreboard.Players {
				log.Printf("   %s: %d/%d hits, %d ships sunk", p.Name, p.Hits, p.Shots, p.ShipsSunk)
			}
			log.Printf("Session: %s", res.SessionID)
			return nil
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}
