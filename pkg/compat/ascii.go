package compat

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// emptyGrid is returned by [Matrix.ASCII] when nothing is registered.
const emptyGrid = "No components registered in compatibility matrix."

// ASCII renders the matrix as a text grid. Rows and columns are the sorted
// component names; the diagonal shows ✓, other cells the number of pairs
// recorded for the pair of components, or · when there are none.
func (m *Matrix) ASCII() string {
	components := m.Components()
	if len(components) == 0 {
		return emptyGrid
	}

	width := 0
	for _, c := range components {
		width = max(width, utf8.RuneCountInString(c))
	}
	width += 2

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width))
	b.WriteString("│ ")
	for i, c := range components {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padRight(c, width))
	}
	header := b.String()
	b.WriteByte('\n')

	b.WriteString(strings.Repeat("─", width))
	b.WriteString("┼")
	b.WriteString(strings.Repeat("─", utf8.RuneCountInString(header)-width-1))

	for _, row := range components {
		b.WriteByte('\n')
		b.WriteString(padRight(row, width))
		b.WriteString("│")
		for _, col := range components {
			var cell string
			switch n := m.PairCount(row, col); {
			case row == col:
				cell = "✓"
			case n > 0:
				cell = strconv.Itoa(n)
			default:
				cell = "·"
			}
			b.WriteByte(' ')
			b.WriteString(center(cell, width))
		}
	}
	return b.String()
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
