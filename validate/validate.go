// Command validate checks battleship rule set JSON files. For every *.json
// file in the configs directory it checks:
//   - JSON structure and known phase names in "instructions"
//   - the rules enforced by the server (name, description, fleet size range, distinct player names)
//
// With --strict it also requires an instruction for every phase and both
// player names to be set.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/battleship/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single rule set file
func validateConfig(filePath string, strict bool) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	if strict {
		decoder.DisallowUnknownFields()
	}
	if err := decoder.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%s", strings.TrimPrefix(err.Error(), "config validation: "))
	}

	if strict {
		for _, phase := range engine.AllPhases {
			if strings.TrimSpace(config.Instructions[phase]) == "" {
				result.fail("Missing instruction for phase: %s", phase)
			}
		}
		if strings.TrimSpace(config.PlayerNames.One) == "" || strings.TrimSpace(config.PlayerNames.Two) == "" {
			result.fail("Both player names must be set")
		}
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		if config.PlayerNames.One != "" || config.PlayerNames.Two != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Players: %s vs %s", config.PlayerNames.One, config.PlayerNames.Two))
		}
		if config.DefaultFleetCount > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Default fleet: %d ships", config.DefaultFleetCount))
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Instructions: %d/%d phases", len(config.Instructions), len(engine.AllPhases)))
	}

	return result
}

// validateDir validates every *.json file in dir and writes a report to w.
// It returns false when any file is invalid.
func validateDir(dir string, strict bool, w io.Writer) (bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return false, fmt.Errorf("error finding config files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no config files found in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file, strict)

		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid, nil
}

func newCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "validate battleship rule set files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Value:   "configs",
				Usage:   "directory containing rule set JSON files",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "require every phase instruction, both player names, and no unknown fields",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			valid, err := validateDir(cmd.String("dir"), cmd.Bool("strict"), w)
			if err != nil {
				return err
			}
			if !valid {
				return fmt.Errorf("some configurations have errors")
			}
			return nil
		},
	}
}

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
