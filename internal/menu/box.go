package menu

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// Box-drawing characters for the menu frame.
const (
	cornerTL = '┌'
	cornerTR = '┐'
	cornerBL = '└'
	cornerBR = '┘'
	edgeH    = '─'
	edgeV    = '│'
)

// MinBoxWidth is a frame with one inner cell.
const MinBoxWidth = 3

// narrow measures labels as a western terminal would, independent of
// the server's locale.
var narrow = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Box frames labels in a box width cells wide and len(labels)+2 rows
// tall.  Labels are NFC-normalised, truncated with an ellipsis when too
// long, and padded with spaces.  Every character must occupy exactly one
// terminal cell, because the renderer wraps rows by codepoint count.
func Box(labels []string, width int) (*Grid, error) {
	if width < MinBoxWidth {
		return nil, fmt.Errorf("box width %d below minimum %d", width, MinBoxWidth)
	}
	inner := width - 2

	g := NewGrid(len(labels)+2, width)
	fillEdge(g, 0, cornerTL, cornerTR)
	for i, label := range labels {
		line, err := fitLabel(label, inner)
		if err != nil {
			return nil, fmt.Errorf("label %d: %w", i, err)
		}
		row := i + 1
		g.Set(row, 0, edgeV)
		g.SetString(row, 1, line)
		g.Set(row, width-1, edgeV)
	}
	fillEdge(g, g.Rows-1, cornerBL, cornerBR)
	return g, nil
}

func fillEdge(g *Grid, row int, left, right rune) {
	g.Set(row, 0, left)
	for c := 1; c < g.Cols-1; c++ {
		g.Set(row, c, edgeH)
	}
	g.Set(row, g.Cols-1, right)
}

// fitLabel returns label as exactly width single-cell codepoints.
func fitLabel(label string, width int) (string, error) {
	s := norm.NFC.String(label)
	if strings.ContainsAny(s, "\r\n\t") {
		return "", fmt.Errorf("%q contains control characters", label)
	}
	if narrow.StringWidth(s) != utf8.RuneCountInString(s) {
		return "", fmt.Errorf("%q contains characters that are not one cell wide", label)
	}
	s = narrow.Truncate(s, width, "…")
	return narrow.FillRight(s, width), nil
}
