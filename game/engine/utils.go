package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnLabels are the board's column headers
const ColumnLabels = "ABCDEFGHI"

// Label formats c as a column letter and 1-based row, e.g. "C4"
func (c Coord) Label() string {
	if c.Col >= 0 && c.Col < len(ColumnLabels) {
		return fmt.Sprintf("%c%d", ColumnLabels[c.Col], c.Row+1)
	}
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// ParseCoord converts a label such as "C4" (column C, row 4) to a Coord
func ParseCoord(label string) (Coord, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) < 2 {
		return Coord{}, fmt.Errorf("invalid coordinate %q", label)
	}
	col := strings.IndexByte(ColumnLabels, label[0])
	if col < 0 {
		return Coord{}, fmt.Errorf("invalid column %q in %q", label[0], label)
	}
	row, ok := parseDigits(label[1:])
	if !ok || row < 1 || row > GridSize {
		return Coord{}, fmt.Errorf("invalid row %q in %q", label[1:], label)
	}
	return Coord{Row: row - 1, Col: col}, nil
}

// parseDigits parses a non-empty string of ASCII digits; signs and spaces are rejected
func parseDigits(s string) (int, bool) {
	if s == "" || len(s) > 3 {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// CellChar maps a cell state to a single display character
func CellChar(s CellState) string {
	switch s {
	case Available:
		return "."
	case Disabled:
		return "#"
	case ShipCell:
		return "S"
	case Damaged:
		return "X"
	case Sunk:
		return "*"
	case Missed:
		return "o"
	default:
		return "?"
	}
}

// FormatBoard renders a board as text lines with column and row labels
func FormatBoard(b Board) []string {
	lines := make([]string, 0, GridSize+1)

	var header strings.Builder
	header.WriteString("   ")
	for _, label := range ColumnLabels {
		header.WriteString(" ")
		header.WriteRune(label)
	}
	lines = append(lines, header.String())

	for r := range b {
		var row strings.Builder
		fmt.Fprintf(&row, "%2d ", r+1)
		for c := range b[r] {
			row.WriteString(" ")
			row.WriteString(CellChar(b[r][c].Render))
		}
		lines = append(lines, row.String())
	}
	return lines
}
