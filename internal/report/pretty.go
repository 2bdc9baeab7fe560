package report

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/harrison/flowtests/internal/models"
)

// prettyWidth is the column budget a mapping must fit in to stay on one line
const prettyWidth = 80

// FormatMetrics pretty-prints the cross-subject metrics as a nested mapping.
// A mapping that fits in the remaining width stays on one line:
//
//	{'Bar': {}, 'Foo': {16: (1.0, 2.0, 3.0, 4.0)}}
//
// Otherwise its items go one per line, aligned under the first, and each
// value gets the same treatment at its own indent:
//
//	{'Bar': {16: (1.0, 2.0, 3.0, 4.0), 32: (5.0, 6.0, 7.0, 8.0)},
//	 'Foo': {16: (1.0, 2.0, 3.0, 4.0),
//	         32: (5.0, 6.0, 7.0, 8.0),
//	         128: (9.0, 10.0, 11.0, 12.0)}}
//
// Subjects are sorted by name and size keys ascending, so the output does not
// depend on the order subjects were processed in.
func FormatMetrics(m *models.Metrics) string {
	entries := m.Entries()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Subject < entries[j].Subject })

	items := make([]prettyItem, len(entries))
	for i, e := range entries {
		table := e.Table
		items[i] = prettyItem{
			key: quote(e.Subject),
			value: func(indent, allowance int) string {
				return formatTable(table, indent, allowance)
			},
			flat: flatMapping(tableItems(table)),
		}
	}
	return formatMapping(items, 0, 0)
}

// prettyItem is one key of a mapping. flat is the value on a single line;
// value renders it wrapped for the given indent and allowance.
type prettyItem struct {
	key   string
	value func(indent, allowance int) string
	flat  string
}

// formatMapping renders items as "{k: v, ...}", breaking after each item when
// the single-line form is wider than the columns left at indent. allowance
// reserves room for the closing characters written after the mapping.
func formatMapping(items []prettyItem, indent, allowance int) string {
	flat := flatMapping(items)
	if len(items) == 0 || utf8.RuneCountInString(flat) <= prettyWidth-indent-allowance {
		return flat
	}

	var b strings.Builder
	b.WriteString("{")
	indent++
	allowance++
	for i, it := range items {
		last := i == len(items)-1
		b.WriteString(it.key)
		b.WriteString(": ")
		itemAllowance := 1
		if last {
			itemAllowance = allowance
		}
		b.WriteString(it.value(indent+utf8.RuneCountInString(it.key)+2, itemAllowance))
		if !last {
			b.WriteString(",\n")
			b.WriteString(strings.Repeat(" ", indent))
		}
	}
	b.WriteString("}")
	return b.String()
}

// flatMapping renders items on a single line
func flatMapping(items []prettyItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.key + ": " + it.flat
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatTable(t models.MetricTable, indent, allowance int) string {
	return formatMapping(tableItems(t), indent, allowance)
}

func tableItems(t models.MetricTable) []prettyItem {
	sorted := t.SortedByKey()
	items := make([]prettyItem, len(sorted))
	for i, e := range sorted {
		tuple := formatTuple(e.Value)
		items[i] = prettyItem{
			key:   strconv.Itoa(e.Key),
			value: func(int, int) string { return tuple },
			flat:  tuple,
		}
	}
	return items
}

func formatTuple(v models.MetricTuple) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = formatFloat(f)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// formatFloat prints the shortest representation that round-trips, always
// with a decimal point or exponent so integers read as floats ("2.0").
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		format = 'g'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
