package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/wricardo/mcp-training/battleship/game/engine"
)

func init() {
	color.NoColor = true
}

func play(t *testing.T, args []string, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	if err := newCommand(in, &out).Run(context.Background(), append([]string{"hotseat"}, args...)); err != nil {
		t.Fatalf("Run failed: %v\n%s", err, out.String())
	}
	return out.String()
}

func TestFullGame(t *testing.T) {
	out := play(t, nil,
		"fleet 1",
		"next", "next",
		"place 1x1 A1 A1",
		"next", "next",
		"place 1x1 E5 E5",
		"next", "next",
		"fire B1",
		"next", "next",
		"fire A1",
		"next",
		"quit",
	)

	expected := []string{
		"Each player places 1 ship(s): 1x1",
		"=== Hand over to Player 1 ===",
		"=== Hand over to Player 2 ===",
		"All ships placed",
		"B1: miss",
		"A1: hit and sunk!",
		"Player 2 wins!",
		"Bye",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "❌") {
		t.Errorf("Expected no command errors, got:\n%s", out)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"Unknown command", "dance", "unknown command"},
		{"Fleet out of range", "fleet 9", "fleet size must be"},
		{"Fleet not a number", "fleet many", "invalid fleet size"},
		{"Place before setup", "place 1x1 A1 A1", "ships can only be placed during setup"},
		{"Place bad coordinate", "place 1x1 Z1 Z1", "invalid column"},
		{"Fire before turn", "fire A1", "missiles can only be fired during a turn"},
		{"Advance without fleet", "next", "fleet count must be between"},
		{"Place usage", "place 1x1", "usage: place"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := play(t, nil, tt.command, "quit")
			if !strings.Contains(out, tt.want) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.want, out)
			}
		})
	}
}

func TestFleetFlag(t *testing.T) {
	out := play(t, []string{"--fleet", "2"}, "next", "next", "place 1x2 B1 B3", "place 1x2 B1 B2", "quit")
	if !strings.Contains(out, "Fleet size is 2") {
		t.Errorf("Expected fleet size notice, got:\n%s", out)
	}
	if !strings.Contains(out, "must cover exactly 2 cells") {
		t.Errorf("Expected the long span to be rejected, got:\n%s", out)
	}
	if strings.Contains(out, "All ships placed") {
		t.Errorf("Expected one ship still to place, got:\n%s", out)
	}

	var buf bytes.Buffer
	err := newCommand(strings.NewReader(""), &buf).Run(context.Background(), []string{"hotseat", "--fleet", "7"})
	if err == nil {
		t.Error("Expected error for fleet 7")
	}
}

func TestBoardsHiddenDuringHandover(t *testing.T) {
	e := engine.NewEngineWithDefaults()
	var out bytes.Buffer
	g := newGame(e, strings.NewReader(""), &out)

	e.SetFleetCount(1)
	e.AdvancePhase()
	out.Reset()
	g.printBoards()
	if out.Len() != 0 {
		t.Errorf("Expected no boards during handover, got:\n%s", out.String())
	}

	e.AdvancePhase()
	out.Reset()
	g.printBoards()
	if !strings.Contains(out.String(), "Enemy waters") {
		t.Errorf("Expected boards during setup, got:\n%s", out.String())
	}
}

func TestScoreAndHistory(t *testing.T) {
	out := play(t, nil, "fleet 1", "history", "score", "quit")
	if !strings.Contains(out, "fleet size set to 1") {
		t.Errorf("Expected history entry, got:\n%s", out)
	}
	if !strings.Contains(out, "hits 0/0") {
		t.Errorf("Expected empty score, got:\n%s", out)
	}
}
