package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = "  "

// Table lays rows out in aligned columns under a muted rule. The last column
// may be capped with WrapLast so long journal notes continue on the next
// line instead of running past the terminal edge.
type Table struct {
	titles []string
	widths []int
	rows   [][]string
	wrapAt int
}

// NewTable creates a table with the given column titles.
func NewTable(titles ...string) *Table {
	t := &Table{titles: titles, widths: make([]int, len(titles))}
	for i, h := range titles {
		t.widths[i] = visualLen(h)
	}
	return t
}

// WrapLast caps the last column at width cells. Zero disables wrapping.
func (t *Table) WrapLast(width int) *Table {
	t.wrapAt = width
	return t
}

// AddRow appends a row. Missing trailing values render blank; extra values
// are dropped.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.titles))
	copy(row, values)
	for i, cell := range row {
		t.widths[i] = max(t.widths[i], visualLen(cell))
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render returns the formatted table.
func (t *Table) Render() string {
	if len(t.titles) == 0 {
		return ""
	}
	widths := append([]int(nil), t.widths...)
	last := len(widths) - 1
	if t.wrapAt > 0 {
		widths[last] = min(widths[last], t.wrapAt)
	}

	var sb strings.Builder
	header := make([]string, len(t.titles))
	rule := make([]string, len(t.titles))
	for i, h := range t.titles {
		header[i] = StyleHeader.Render(pad(h, widths[i]))
		rule[i] = StyleMuted.Render(strings.Repeat("─", widths[i]))
	}
	sb.WriteString(strings.Join(header, colGap) + "\n")
	sb.WriteString(strings.Join(rule, colGap) + "\n")

	for _, row := range t.rows {
		tail := []string{row[last]}
		if t.wrapAt > 0 {
			tail = strings.Split(wrap(row[last], widths[last]), "\n")
		}
		for n, part := range tail {
			cells := make([]string, len(row))
			for i := 0; i < last; i++ {
				if n == 0 {
					cells[i] = pad(row[i], widths[i])
				} else {
					cells[i] = strings.Repeat(" ", widths[i])
				}
			}
			cells[last] = pad(part, widths[last])
			sb.WriteString(strings.Join(cells, colGap) + "\n")
		}
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// Fprint writes the table to w.
func (t *Table) Fprint(w io.Writer) {
	fmt.Fprint(w, t.Render())
}

// pad right-pads s to width printed cells.
func pad(s string, width int) string {
	if n := visualLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// visualLen is the printed width of s, ignoring ANSI escapes.
func visualLen(s string) int {
	return lipgloss.Width(s)
}
