package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `{
	"name": "Test Config",
	"description": "Test configuration",
	"player_names": {"one": "Alice", "two": "Bob"},
	"default_fleet_count": 3,
	"instructions": {
		"choosing_number_of_ships": "Pick a fleet size",
		"player_setup": "Place ships",
		"prompt_player_change": "Pass the device",
		"player_turn": "Fire!",
		"player_victory": "You won!"
	}
}`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func hasError(result ValidationResult, substr string) bool {
	for _, e := range result.Errors {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "valid.json", validConfig)

	for _, strict := range []bool{false, true} {
		result := validateConfig(path, strict)
		if !result.Valid {
			t.Errorf("Expected valid config (strict=%t), but got errors: %v", strict, result.Errors)
		}
		if result.File != "valid.json" {
			t.Errorf("Expected file name valid.json, got %s", result.File)
		}
		if !hasError(result, "✓ Players: Alice vs Bob") {
			t.Errorf("Expected player info, got %v", result.Errors)
		}
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/non/existent/file.json", false)
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !hasError(result, "Failed to read file") {
		t.Errorf("Expected read error, got %v", result.Errors)
	}
}

func TestValidateConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		strict  bool
		want    string
	}{
		{
			name:    "invalid JSON",
			content: `{"name": "test", invalid json}`,
			want:    "Invalid JSON",
		},
		{
			name:    "unknown phase",
			content: `{"name": "x", "description": "y", "instructions": {"reloading": "wait"}}`,
			want:    "Invalid JSON",
		},
		{
			name:    "missing description",
			content: `{"name": "x"}`,
			want:    "description is required",
		},
		{
			name:    "fleet too large",
			content: `{"name": "x", "description": "y", "default_fleet_count": 6}`,
			want:    "default_fleet_count",
		},
		{
			name:    "same player names",
			content: `{"name": "x", "description": "y", "player_names": {"one": "Sam", "two": "sam"}}`,
			want:    "player names must differ",
		},
		{
			name:    "strict requires all instructions",
			content: `{"name": "x", "description": "y", "player_names": {"one": "A", "two": "B"}, "instructions": {"player_turn": "Fire"}}`,
			strict:  true,
			want:    "Missing instruction for phase: player_setup",
		},
		{
			name:    "strict requires player names",
			content: `{"name": "x", "description": "y"}`,
			strict:  true,
			want:    "Both player names must be set",
		},
		{
			name:    "strict rejects unknown fields",
			content: `{"name": "x", "description": "y", "grid_size": 10}`,
			strict:  true,
			want:    "Invalid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.json", tt.content)
			result := validateConfig(path, tt.strict)
			if result.Valid {
				t.Fatal("Expected invalid config")
			}
			if !hasError(result, tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, result.Errors)
			}
		})
	}
}

func TestValidateConfig_LenientAllowsPartialConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "partial.json", `{"name": "x", "description": "y", "grid_size": 10}`)
	if result := validateConfig(path, false); !result.Valid {
		t.Errorf("Expected lenient validation to pass, got %v", result.Errors)
	}
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "good.json", validConfig)

	var out bytes.Buffer
	valid, err := validateDir(dir, true, &out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !valid {
		t.Errorf("Expected all valid, got report:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "All configurations are valid") {
		t.Errorf("Expected success summary, got:\n%s", out.String())
	}

	writeConfig(t, dir, "bad.json", `{"name": ""}`)
	out.Reset()
	valid, err = validateDir(dir, false, &out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if valid {
		t.Error("Expected invalid result with a bad config")
	}
	if !strings.Contains(out.String(), "bad.json") || !strings.Contains(out.String(), "INVALID") {
		t.Errorf("Expected bad.json reported invalid, got:\n%s", out.String())
	}
}

func TestValidateDir_Empty(t *testing.T) {
	if _, err := validateDir(t.TempDir(), false, &bytes.Buffer{}); err == nil {
		t.Error("Expected error for a directory without configs")
	}
}

func TestShippedConfigs(t *testing.T) {
	if _, err := os.Stat("../configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	var out bytes.Buffer
	valid, err := validateDir("../configs", true, &out)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !valid {
		t.Errorf("Expected shipped configs to pass strict validation:\n%s", out.String())
	}
}

func TestCommand(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "good.json", validConfig)

	var out bytes.Buffer
	if err := newCommand(&out).Run(context.Background(), []string{"validate", "--dir", dir, "--strict"}); err != nil {
		t.Fatalf("Expected command to succeed, got %v", err)
	}
	if !strings.Contains(out.String(), "good.json") {
		t.Errorf("Expected report for good.json, got:\n%s", out.String())
	}

	writeConfig(t, dir, "bad.json", `{}`)
	if err := newCommand(&bytes.Buffer{}).Run(context.Background(), []string{"validate", "--dir", dir}); err == nil {
		t.Error("Expected command to fail with an invalid config")
	}
}
