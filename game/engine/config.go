package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var defaultInstructions = map[Phase]string{
	ChoosingNumberOfShips: "Select the number of ships",
	PlayerSetup:           "Place your ships on the grid",
	PromptPlayerChange:    "It is your opponent's turn",
	PlayerTurn:            "Select a cell to fire a missile",
	PlayerVictory:         "You won!",
}

// DefaultGameConfig returns the built-in rule set
func DefaultGameConfig() *GameConfig {
	instructions := make(map[Phase]string, len(defaultInstructions))
	for phase, text := range defaultInstructions {
		instructions[phase] = text
	}
	return &GameConfig{
		Name:         "default",
		Description:  "Classic hot-seat battleship, players choose 1 to 5 ships",
		PlayerNames:  PlayerNames{One: "Player 1", Two: "Player 2"},
		Instructions: instructions,
	}
}

// ValidateGameConfig validates a rule set
func ValidateGameConfig(config *GameConfig) error {
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.DefaultFleetCount != 0 && !validFleetCount(config.DefaultFleetCount) {
		return fmt.Errorf("config validation: default_fleet_count must be 0 or between %d and %d, got %d",
			MinFleetCount, MaxFleetCount, config.DefaultFleetCount)
	}

	one := strings.TrimSpace(config.PlayerNames.One)
	two := strings.TrimSpace(config.PlayerNames.Two)
	if one != "" && strings.EqualFold(one, two) {
		return fmt.Errorf("config validation: player names must differ, both are %q", one)
	}

	for phase := range config.Instructions {
		if !phase.Valid() {
			return fmt.Errorf("config validation: instructions reference unknown phase %d", uint8(phase))
		}
	}

	return nil
}

// LoadGameConfig loads a rule set from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", configPath, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
