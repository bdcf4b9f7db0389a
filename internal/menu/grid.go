// Package menu builds the fixed-size codepoint grids the session
// renders: a plain [Grid] and the bordered [Box] used by the demo.
package menu

import "strings"

// Grid is a Rows x Cols block of codepoints stored row-major.  Rows are
// structural; Cells never contains line breaks.
type Grid struct {
	Rows  int
	Cols  int
	Cells []rune
}

// NewGrid returns a grid filled with spaces.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	cells := make([]rune, rows*cols)
	for i := range cells {
		cells[i] = ' '
	}
	return &Grid{Rows: rows, Cols: cols, Cells: cells}
}

// Set stores r at (row, col).  Out-of-range positions and line breaks
// are ignored.
func (g *Grid) Set(row, col int, r rune) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return
	}
	if r == '\n' || r == '\r' {
		return
	}
	g.Cells[row*g.Cols+col] = r
}

// SetString writes s starting at (row, col), clipped to the row.  It
// returns the number of codepoints written.
func (g *Grid) SetString(row, col int, s string) int {
	n := 0
	for _, r := range s {
		if col+n >= g.Cols {
			break
		}
		g.Set(row, col+n, r)
		n++
	}
	return n
}

// Row returns row i as a slice aliasing Cells.
func (g *Grid) Row(i int) []rune {
	return g.Cells[i*g.Cols : (i+1)*g.Cols]
}

// String renders the grid with "\n" between rows.
func (g *Grid) String() string {
	var b strings.Builder
	for i := 0; i < g.Rows; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(g.Row(i)))
	}
	return b.String()
}
