package markdown

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/gorewood/wikimark/internal/doctree"
)

// Alignment of a table cell.
type Alignment int

// Cell alignments, read from the align attribute.
const (
	AlignUnset Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func parseAlignment(s string) Alignment {
	switch s {
	case "left":
		return AlignLeft
	case "center":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignUnset
	}
}

// Cell is one rendered table cell.
type Cell struct {
	Markup string
	Header bool
	Align  Alignment
}

// Grid is a table's rows of cells. The first row is the header row.
type Grid [][]Cell

// table renders a table with a tbody as a pipe table. Rows come from the
// optional thead first, then from tbody. Each cell is rendered once, here;
// Render does not descend into tables.
func table(c *Context, id doctree.NodeID, _ string) (string, bool) {
	t := c.Tree
	tbody, thead := doctree.NoNode, doctree.NoNode
	for _, child := range t.Children(id) {
		if tbody == doctree.NoNode && t.IsElementTag(child, "tbody") {
			tbody = child
		}
		if thead == doctree.NoNode && t.IsElementTag(child, "thead") {
			thead = child
		}
	}
	if tbody == doctree.NoNode {
		c.Logger().TableDropped("no tbody")
		return "", false
	}

	var grid Grid
	if thead != doctree.NoNode {
		for _, row := range rows(t, thead) {
			grid = append(grid, cells(c, row))
		}
	}
	for _, row := range rows(t, tbody) {
		if r := cells(c, row); len(r) > 0 {
			grid = append(grid, r)
		}
	}
	if c.Err() != nil {
		return "", false
	}
	if len(grid) == 0 || len(grid[0]) == 0 {
		c.Logger().TableDropped("empty header row")
		return "", false
	}
	return grid.Format(), true
}

func rows(t *doctree.Tree, section doctree.NodeID) []doctree.NodeID {
	var out []doctree.NodeID
	for _, child := range t.Children(section) {
		if t.IsElementTag(child, "tr") {
			out = append(out, child)
		}
	}
	return out
}

func cells(c *Context, row doctree.NodeID) []Cell {
	t := c.Tree
	var out []Cell
	for _, child := range t.Children(row) {
		if !t.IsElement(child) {
			continue
		}
		markup, _ := c.Render(child)
		align, _ := t.Attr(child, "align")
		out = append(out, Cell{
			Markup: markup,
			Header: t.Tag(child) == "th",
			Align:  parseAlignment(align),
		})
	}
	return out
}

// Widths returns the display width of each column: the widest cell in it.
func (g Grid) Widths() []int {
	var widths []int
	for _, row := range g {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell.Markup))
		}
	}
	return widths
}

// Format lays the grid out as a Markdown pipe table. Short rows are padded
// with empty cells; a separator row follows the first row.
func (g Grid) Format() string {
	widths := g.Widths()
	lines := make([]string, 0, len(g)+1)
	for i, row := range g {
		padded := make([]string, len(widths))
		for col, w := range widths {
			var cell Cell
			if col < len(row) {
				cell = row[col]
			}
			padded[col] = justify(cell, w)
		}
		lines = append(lines, "| "+strings.Join(padded, " | ")+" |")
		if i == 0 {
			dashes := make([]string, len(widths))
			for col, w := range widths {
				dashes[col] = strings.Repeat("-", w)
			}
			lines = append(lines, "|-"+strings.Join(dashes, "-|-")+"-|")
		}
	}
	return strings.Join(lines, "\n") + "\n\n"
}

// justify pads a cell to width w. Centered cells put the odd space on the
// right, so "x" in a five-column cell becomes "  x  " and in a four-column
// cell " x  ", never "  x ".
func justify(cell Cell, w int) string {
	gap := max(w-runewidth.StringWidth(cell.Markup), 0)
	switch cell.Align {
	case AlignRight:
		return strings.Repeat(" ", gap) + cell.Markup
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell.Markup + strings.Repeat(" ", gap-left)
	default:
		return cell.Markup + strings.Repeat(" ", gap)
	}
}
