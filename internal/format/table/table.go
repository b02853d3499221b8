// Package table lines up stacked label rows into columns, so lists of
// name/date pairs read as a table even in proportional-free contexts like
// button labels.
package table

import "strings"

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const columnGap = "  "

// Format pads every cell to its column's widest entry and joins the cells of
// each row. Ragged rows are allowed; short rows simply contribute fewer
// columns. Widths are measured in runes.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for c, cell := range row {
			cells[c] = pad(cell, widths[c], alignmentFor(alignments, c))
		}
		out[i] = strings.Join(cells, columnGap)
	}
	return out
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			for len(widths) <= c {
				widths = append(widths, 0)
			}
			if w := len([]rune(cell)); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

func alignmentFor(alignments []Alignment, column int) Alignment {
	if column < len(alignments) {
		return alignments[column]
	}
	return AlignLeft
}

func pad(cell string, width int, align Alignment) string {
	gap := width - len([]rune(cell))
	if gap <= 0 {
		return cell
	}
	fill := strings.Repeat(" ", gap)
	if align == AlignRight {
		return fill + cell
	}
	return cell + fill
}
