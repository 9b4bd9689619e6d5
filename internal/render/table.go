package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/hkaraca/rmosdesk/internal/table"
)

// Table writes the snapshot as a column-aligned text table. Columns are the
// first row's key set; an empty snapshot renders nothing, headers included.
// Rows are numbered so edit/show commands can reference them.
func Table(w io.Writer, snap table.Snapshot, fs FieldSpec) {
	cols := snap.Columns()
	if len(cols) == 0 {
		return
	}

	cells := make([][]string, len(snap.Rows))
	widths := make([]int, len(cols)+1)
	widths[0] = utf8.RuneCountInString("#")
	for i, c := range cols {
		widths[i+1] = utf8.RuneCountInString(c)
	}

	for ri := range snap.Rows {
		row := &snap.Rows[ri]
		line := make([]string, len(cols)+1)
		line[0] = fmt.Sprintf("%d", ri+1)
		for ci, col := range cols {
			v, ok := row.Get(col)
			if !ok {
				line[ci+1] = ""
				continue
			}
			line[ci+1] = fs.CellText(col, v)
		}
		for i, cell := range line {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
		cells[ri] = line
	}

	writeLine(w, append([]string{"#"}, cols...), widths)
	sep := make([]string, len(widths))
	for i, n := range widths {
		sep[i] = strings.Repeat("-", n)
	}
	writeLine(w, sep, widths)
	for _, line := range cells {
		writeLine(w, line, widths)
	}
}

func writeLine(w io.Writer, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = pad(cell, widths[i])
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// Detail writes every field of one row on its own line, untruncated. This is
// the full-text view behind a truncated long-text cell.
func Detail(w io.Writer, row *table.Row, fs FieldSpec) {
	width := 0
	for _, k := range row.Keys() {
		if n := utf8.RuneCountInString(k); n > width {
			width = n
		}
	}
	for _, k := range row.Keys() {
		v, _ := row.Get(k)
		text := v.Text
		if v.Kind == table.KindNumber {
			text = FormatNumber(v.Number, v.Text)
		}
		if v.Kind == table.KindDate && fs.Dates[k] {
			text = v.Date.Format(DateDisplayLayout)
		}
		fmt.Fprintf(w, "%s  %s\n", pad(k, width), text)
	}
}
