// Command analyze prints per-player statistics for persisted battleship
// sessions: shots, hits, accuracy, enemy ships sunk and the winner.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/battleship/game/engine"
	"github.com/wricardo/mcp-training/battleship/game/session"
)

// PlayerStats summarises one player's attack
type PlayerStats struct {
	Player          engine.Player
	Name            string
	Shots           int
	Hits            int
	Accuracy        float64
	ShipsSunk       int
	ProgressPercent int
}

// SessionReport is the analysis of one session file
type SessionReport struct {
	File       string
	ID         string
	Label      string
	ConfigName string
	Phase      engine.Phase
	FleetCount int
	Actions    int
	Players    [2]PlayerStats
	Winner     engine.Player
}

// loadConfig returns the session's rule set, or the built-in one when it is gone
func loadConfig(configDir, name string) *engine.GameConfig {
	if configDir != "" && name != "" {
		if config, err := engine.LoadGameConfig(filepath.Join(configDir, name+".json")); err == nil {
			return config
		}
	}
	return engine.DefaultGameConfig()
}

// analyzeSession rebuilds the engine from a session file and collects statistics
func analyzeSession(path, configDir string) (*SessionReport, error) {
	data, err := session.ReadSessionFile(path)
	if err != nil {
		return nil, err
	}
	if data.GameState == nil {
		return nil, fmt.Errorf("%s has no game state", filepath.Base(path))
	}

	e, err := engine.NewEngine(loadConfig(configDir, data.ConfigName))
	if err != nil {
		return nil, err
	}
	if err := e.SetState(data.GameState); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	report := &SessionReport{
		File:       filepath.Base(path),
		ID:         data.ID,
		Label:      data.Label,
		ConfigName: data.ConfigName,
		Phase:      e.Phase(),
		FleetCount: e.FleetCount(),
		Actions:    len(e.History()),
	}
	if winner, ok := e.Winner(); ok {
		report.Winner = winner
	}

	for i, p := range []engine.Player{engine.PlayerOne, engine.PlayerTwo} {
		shots, hits := e.Accuracy(p)
		stats := PlayerStats{
			Player:          p,
			Name:            e.PlayerDisplayName(p),
			Shots:           shots,
			Hits:            hits,
			ShipsSunk:       len(e.SunkShips(p.Other())),
			ProgressPercent: int(e.Progress(p)*100 + 0.5),
		}
		if shots > 0 {
			stats.Accuracy = float64(hits) / float64(shots)
		}
		report.Players[i] = stats
	}
	return report, nil
}

// analyzeDir analyzes every session file in dir, sorted by file name.
// Files that cannot be analyzed are returned as errors.
func analyzeDir(dir, configDir string) ([]*SessionReport, []error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, []error{err}
	}
	sort.Strings(files)

	var reports []*SessionReport
	var errs []error
	for _, file := range files {
		report, err := analyzeSession(file, configDir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, errs
}

func printReport(w io.Writer, r *SessionReport) {
	header := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	header.Fprintf(w, "\n=== Session %s (%s) ===\n", r.ID, r.Label)
	fmt.Fprintf(w, "Config: %s\n", r.ConfigName)
	fmt.Fprintf(w, "Phase: %s\n", r.Phase)
	if r.FleetCount > 0 {
		fmt.Fprintf(w, "Fleet: %d ships per player\n", r.FleetCount)
	}
	fmt.Fprintf(w, "Actions: %d\n", r.Actions)

	for _, p := range r.Players {
		fmt.Fprintf(w, "  %-12s shots %2d  hits %2d  accuracy %5.1f%%  progress %3d%%  ships sunk %d\n",
			p.Name, p.Shots, p.Hits, p.Accuracy*100, p.ProgressPercent, p.ShipsSunk)
	}

	if r.Winner != engine.NoPlayer {
		good.Fprintf(w, "🏆 Winner: %s\n", r.Players[winnerIndex(r.Winner)].Name)
	} else {
		warn.Fprintf(w, "⏳ In progress\n")
	}
}

func winnerIndex(p engine.Player) int {
	if p == engine.PlayerTwo {
		return 1
	}
	return 0
}

func printSummary(w io.Writer, reports []*SessionReport) {
	finished := 0
	wins := map[string]int{}
	for _, r := range reports {
		if r.Winner != engine.NoPlayer {
			finished++
			wins[r.Players[winnerIndex(r.Winner)].Name]++
		}
	}

	color.New(color.Bold).Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	fmt.Fprintf(w, "Sessions: %d (%d finished)\n", len(reports), finished)

	names := make([]string, 0, len(wins))
	for name := range wins {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %d wins\n", name, wins[name])
	}
}

func run(w io.Writer, dir, configDir string) error {
	reports, errs := analyzeDir(dir, configDir)
	for _, err := range errs {
		color.New(color.FgRed).Fprintf(w, "⚠️  %v\n", err)
	}
	if len(reports) == 0 {
		return fmt.Errorf("no sessions to analyze in %s", dir)
	}

	for _, r := range reports {
		printReport(w, r)
	}
	printSummary(w, reports)
	return nil
}

func newCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "print statistics for persisted battleship sessions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Value:   "sessions",
				Usage:   "directory containing session files",
				Sources: cli.EnvVars("SESSIONS_DIR"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing rule sets, used for player names",
				Sources: cli.EnvVars("CONFIG_DIR"),
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
			return run(w, cmd.String("dir"), cmd.String("config-dir"))
		},
	}
}

func main() {
	if err := newCommand(color.Output).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
