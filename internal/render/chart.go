package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/hkaraca/rmosdesk/internal/table"
)

const (
	chartWidth  = 40
	maxSeries   = 2
	seriesBar1  = '█'
	seriesBar2  = '░'
	chartIndent = "  "
)

// BarChart draws a horizontal bar chart of up to two numeric series against
// a date-labeled axis, the terminal counterpart of the dashboard's chart.
// Series are the first two numeric columns of the first row; labelField
// supplies the per-row label (dates render via DateDisplayLayout).
func BarChart(w io.Writer, snap table.Snapshot, labelField string) {
	if len(snap.Rows) == 0 {
		return
	}

	series := NumericColumns(&snap.Rows[0], maxSeries)
	if len(series) == 0 {
		return
	}

	max := 0.0
	labels := make([]string, len(snap.Rows))
	labelWidth := 0
	for i := range snap.Rows {
		row := &snap.Rows[i]
		labels[i] = chartLabel(row, labelField)
		if n := utf8.RuneCountInString(labels[i]); n > labelWidth {
			labelWidth = n
		}
		for _, s := range series {
			if v, ok := row.Get(s); ok && v.Kind == table.KindNumber && v.Number > max {
				max = v.Number
			}
		}
	}
	if max <= 0 {
		return
	}

	bars := []rune{seriesBar1, seriesBar2}
	for i, name := range series {
		fmt.Fprintf(w, "%s%c %s\n", chartIndent, bars[i], name)
	}
	fmt.Fprintln(w)

	for i := range snap.Rows {
		row := &snap.Rows[i]
		for si, s := range series {
			v, ok := row.Get(s)
			if !ok || v.Kind != table.KindNumber {
				continue
			}
			// Negative figures get a zero-length bar; the formatted number
			// still shows the value.
			n := int(v.Number / max * chartWidth)
			if n < 0 {
				n = 0
			}
			if n == 0 && v.Number > 0 {
				n = 1
			}
			label := ""
			if si == 0 {
				label = labels[i]
			}
			fmt.Fprintf(w, "%s  %s%s %s\n",
				pad(label, labelWidth),
				strings.Repeat(string(bars[si]), n),
				strings.Repeat(" ", chartWidth-n),
				FormatNumber(v.Number, v.Text))
		}
	}
}

// NumericColumns returns up to limit column names whose value in row is
// numeric, in column order.
func NumericColumns(row *table.Row, limit int) []string {
	var out []string
	for _, k := range row.Keys() {
		v, _ := row.Get(k)
		if v.Kind == table.KindNumber {
			out = append(out, k)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func chartLabel(row *table.Row, labelField string) string {
	v, ok := row.Get(labelField)
	if !ok {
		return ""
	}
	if v.Kind == table.KindDate {
		return v.Date.Format(DateDisplayLayout)
	}
	return v.Text
}
