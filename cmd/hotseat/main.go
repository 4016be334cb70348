// Command hotseat plays battleship on one terminal, two players taking turns
// at the keyboard.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/battleship/game/engine"
)

const helpText = `Commands:
  fleet N              choose how many ships each player places (1-5)
  place TYPE FROM TO   place a ship, e.g. "place 1x3 A1 A3"
  fire CELL            fire a missile, e.g. "fire C4"
  next                 advance to the next phase
  board                show your boards
  score                show hits and progress
  history              show recent actions
  help                 show this help
  quit                 leave the game`

var cellColors = map[engine.CellState]*color.Color{
	engine.Disabled: color.New(color.Faint),
	engine.ShipCell: color.New(color.FgCyan, color.Bold),
	engine.Damaged:  color.New(color.FgYellow, color.Bold),
	engine.Sunk:     color.New(color.FgRed, color.Bold),
	engine.Missed:   color.New(color.FgBlue),
}

// game is the interactive loop around one engine
type game struct {
	engine *engine.GameEngine
	in     *bufio.Scanner
	out    io.Writer
	sub    engine.Subscription
}

func newGame(e *engine.GameEngine, in io.Reader, out io.Writer) *game {
	g := &game{engine: e, in: bufio.NewScanner(in), out: out}
	g.sub = e.OnChange(g.onChange)
	return g
}

// onChange announces phase transitions; refreshes are reported by the commands themselves
func (g *game) onChange(phase engine.Phase, wasRefresh bool) {
	if wasRefresh {
		return
	}
	switch phase {
	case engine.PromptPlayerChange:
		// the player about to take the device is already current
		next := g.engine.CurrentPlayer()
		fmt.Fprintln(g.out, strings.Repeat("\n", 3))
		color.New(color.FgMagenta, color.Bold).Fprintf(g.out, "=== Hand over to %s ===\n", g.engine.PlayerDisplayName(next))
		fmt.Fprintln(g.out, g.engine.Instruction())
		fmt.Fprintln(g.out, "Type 'next' when ready.")
	case engine.PlayerSetup, engine.PlayerTurn:
		color.New(color.Bold).Fprintf(g.out, "\n%s: %s\n", g.engine.PlayerDisplayName(g.engine.CurrentPlayer()), g.engine.Instruction())
		g.printBoards()
	case engine.PlayerVictory:
		winner, _ := g.engine.Winner()
		color.New(color.FgGreen, color.Bold).Fprintf(g.out, "\n🏆 %s wins! %s\n", g.engine.PlayerDisplayName(winner), g.engine.Instruction())
		g.printScore()
	}
}

func (g *game) prompt() {
	name := g.engine.PlayerDisplayName(g.engine.CurrentPlayer())
	if name == "" {
		name = "setup"
	}
	fmt.Fprintf(g.out, "[%s] %s> ", g.engine.Phase(), name)
}

// run reads commands until quit or end of input
func (g *game) run() error {
	defer g.engine.Unsubscribe(g.sub)

	color.New(color.FgCyan, color.Bold).Fprintln(g.out, "Hot-Seat Battleship")
	fmt.Fprintln(g.out, g.engine.Instruction())
	if n := g.engine.FleetCount(); n > 0 {
		fmt.Fprintf(g.out, "Fleet size is %d. Type 'next' to start or 'fleet N' to change it.\n", n)
	}

	for {
		g.prompt()
		if !g.in.Scan() {
			fmt.Fprintln(g.out)
			return g.in.Err()
		}
		fields := strings.Fields(g.in.Text())
		if len(fields) == 0 {
			continue
		}
		if quit := g.dispatch(strings.ToLower(fields[0]), fields[1:]); quit {
			return nil
		}
	}
}

// dispatch runs one command and reports whether the loop should stop
func (g *game) dispatch(cmd string, args []string) bool {
	var err error
	switch cmd {
	case "fleet":
		err = g.setFleet(args)
	case "place":
		err = g.place(args)
	case "fire":
		err = g.fire(args)
	case "next", "n":
		err = g.engine.AdvancePhase()
	case "board", "b":
		g.printBoards()
	case "score":
		g.printScore()
	case "history":
		g.printHistory()
	case "help", "?":
		fmt.Fprintln(g.out, helpText)
	case "quit", "exit", "q":
		fmt.Fprintln(g.out, "Bye")
		return true
	default:
		err = fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(g.out, "❌ %v\n", err)
	}
	return false
}

func (g *game) setFleet(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: fleet N")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid fleet size %q", args[0])
	}
	if !g.engine.SetFleetCount(n) {
		return fmt.Errorf("fleet size must be %d-%d and chosen before setup", engine.MinFleetCount, engine.MaxFleetCount)
	}
	fmt.Fprintf(g.out, "Each player places %d ship(s): %s\n", n, shipList(g.engine.PossibleShipTypes()))
	return nil
}

func (g *game) place(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: place TYPE FROM TO")
	}
	shipType, err := engine.ParseShipType(args[0])
	if err != nil {
		return err
	}
	from, err := engine.ParseCoord(args[1])
	if err != nil {
		return err
	}
	to, err := engine.ParseCoord(args[2])
	if err != nil {
		return err
	}
	if err := g.engine.PlaceShip(shipType, from, to); err != nil {
		return err
	}

	g.printBoards()
	placed := len(g.engine.Fleet(g.engine.CurrentPlayer()))
	if placed == g.engine.FleetCount() {
		fmt.Fprintln(g.out, "All ships placed. Type 'next' to hand over.")
	}
	return nil
}

func (g *game) fire(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: fire CELL")
	}
	target, err := engine.ParseCoord(args[0])
	if err != nil {
		return err
	}
	hit, err := g.engine.FireMissile(target)
	if err != nil {
		return err
	}

	switch last := g.engine.LastAction(); {
	case last != nil && last.Sunk:
		color.New(color.FgRed, color.Bold).Fprintf(g.out, "💥 %s: hit and sunk!\n", target.Label())
	case hit:
		color.New(color.FgYellow, color.Bold).Fprintf(g.out, "🔥 %s: hit!\n", target.Label())
	default:
		color.New(color.FgBlue).Fprintf(g.out, "🌊 %s: miss\n", target.Label())
	}
	g.printBoards()
	fmt.Fprintln(g.out, "Type 'next' to end your turn.")
	return nil
}

// printBoards shows the current player's fleet and their view of the opponent.
// Nothing is shown while the device is being handed over.
func (g *game) printBoards() {
	p := g.engine.CurrentPlayer()
	if !p.Valid() || g.engine.Phase() == engine.PromptPlayerChange {
		return
	}

	own := engine.FormatBoard(g.engine.OwnBoard(p))
	opp := engine.FormatBoard(g.engine.OpponentBoard(p.Other()))

	fmt.Fprintf(g.out, "\n%-24s    %s\n", "Your fleet", "Enemy waters")
	for i := range own {
		fmt.Fprintf(g.out, "%s    %s\n", g.colorize(own[i]), g.colorize(opp[i]))
	}
}

// colorize paints the cell characters of one rendered board row
func (g *game) colorize(line string) string {
	if color.NoColor {
		return line
	}
	var b strings.Builder
	for i, r := range line {
		// row and column labels occupy the first three characters
		if i < 3 {
			b.WriteRune(r)
			continue
		}
		painted := false
		for state, c := range cellColors {
			if string(r) == engine.CellChar(state) {
				b.WriteString(c.Sprint(string(r)))
				painted = true
				break
			}
		}
		if !painted {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (g *game) printScore() {
	for _, p := range []engine.Player{engine.PlayerOne, engine.PlayerTwo} {
		shots, hits := g.engine.Accuracy(p)
		fmt.Fprintf(g.out, "%-12s hits %d/%d  progress %3.0f%%  enemy ships sunk %d\n",
			g.engine.PlayerDisplayName(p), hits, shots, g.engine.Progress(p)*100, len(g.engine.SunkShips(p.Other())))
	}
}

func (g *game) printHistory() {
	history := g.engine.History()
	if len(history) > 10 {
		history = history[len(history)-10:]
	}
	for _, entry := range history {
		who := g.engine.PlayerDisplayName(entry.Player)
		switch entry.Action {
		case "fire":
			result := "miss"
			if entry.Sunk {
				result = "sunk"
			} else if entry.Hit {
				result = "hit"
			}
			fmt.Fprintf(g.out, "%3d. %s fired at %s: %s\n", entry.Number, who, entry.Target.Label(), result)
		case "place_ship":
			fmt.Fprintf(g.out, "%3d. %s placed %s %s-%s\n", entry.Number, who, entry.ShipType, entry.From.Label(), entry.To.Label())
		case "fleet_count":
			fmt.Fprintf(g.out, "%3d. fleet size set to %d\n", entry.Number, entry.FleetCount)
		default:
			fmt.Fprintf(g.out, "%3d. %s -> %s\n", entry.Number, entry.Action, entry.PhaseAfter)
		}
	}
}

func shipList(types []engine.ShipType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func newCommand(in io.Reader, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "hotseat",
		Usage: "play battleship with two players on one terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "rule set file (JSON); built-in rules when empty",
			},
			&cli.IntFlag{
				Name:  "fleet",
				Usage: "ships per player (1-5); chosen in game when 0",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable coloured output",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("no-color") {
				color.NoColor = true
			}

			gameConfig := engine.DefaultGameConfig()
			if path := cmd.String("config"); path != "" {
				loaded, err := engine.LoadGameConfig(path)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				gameConfig = loaded
			}

			e, err := engine.NewEngine(gameConfig)
			if err != nil {
				return err
			}
			if n := cmd.Int("fleet"); n != 0 && !e.SetFleetCount(int(n)) {
				return fmt.Errorf("fleet must be between %d and %d, got %d", engine.MinFleetCount, engine.MaxFleetCount, n)
			}
			return newGame(e, in, out).run()
		},
	}
}

func main() {
	if err := newCommand(os.Stdin, color.Output).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
