package beat

import (
	"fmt"
	"strings"
)

// Template is the grid of a measure, one cell per beat.
type Template struct {
	cells []*Cell
}

// NewTemplate returns a template of beats empty cells.
func NewTemplate(beats int) (*Template, error) {
	if beats < 1 {
		return nil, fmt.Errorf("a measure needs at least one beat, got %v", beats)
	}
	cells := make([]*Cell, beats)
	for i := range cells {
		cells[i] = &Cell{}
	}
	return &Template{cells: cells}, nil
}

// FromCells rebuilds a template from the per beat name lists Cells returns.
func FromCells(cells [][]string) (*Template, error) {
	t, err := NewTemplate(len(cells))
	if nil != err {
		return nil, err
	}
	for i, names := range cells {
		for _, name := range names {
			t.cells[i].Add(name)
		}
	}
	return t, nil
}

// Beats is the number of cells in the template.
func (t *Template) Beats() int {
	return len(t.cells)
}

// Cell returns the cell on the given beat.
func (t *Template) Cell(i int) *Cell {
	return t.cells[i]
}

// Cells flattens the grid into per beat name lists, insertion order kept.
func (t *Template) Cells() [][]string {
	cells := make([][]string, len(t.cells))
	for i, c := range t.cells {
		cells[i] = c.Names()
	}
	return cells
}

// Clone deep copies the template so edits cannot reach the original.
func (t *Template) Clone() *Template {
	cells := make([]*Cell, len(t.cells))
	for i, c := range t.cells {
		cells[i] = c.clone()
	}
	return &Template{cells: cells}
}

// String draws the grid one row per referenced oneshot, in the order the
// names first appear, four beats to a bar.
func (t *Template) String() string {
	var names []string
	seen := map[string]bool{}
	width := 0
	for _, c := range t.cells {
		for _, n := range c.names {
			if seen[n] {
				continue
			}
			seen[n] = true
			names = append(names, n)
			if len(n) > width {
				width = len(n)
			}
		}
	}

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%-*v ", width, name)
		for i, c := range t.cells {
			if i%4 == 0 {
				b.WriteString("|")
			}
			if c.Contains(name) {
				b.WriteString("x")
			} else {
				b.WriteString("-")
			}
		}
		b.WriteString("|\n")
	}
	return b.String()
}
