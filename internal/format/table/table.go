package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Options tunes Format. Zero values mean left aligned columns, no minimum
// width and a two space gap.
type Options struct {
	Alignments []Alignment
	MinWidths  []int
	Gap        int
}

// Format returns the rows padded according to the widest entry in each
// column. Widths are measured on the visible text, so styled cells line up.
func Format(rows [][]string, opts Options) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for c := range widths {
		if c < len(opts.MinWidths) {
			widths[c] = opts.MinWidths[c]
		}
	}
	for _, row := range rows {
		for c, cell := range row {
			if width := lipgloss.Width(cell); width > widths[c] {
				widths[c] = width
			}
		}
	}
	gap := opts.Gap
	if gap <= 0 {
		gap = 2
	}

	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			pad := widths[c] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			if c < len(opts.Alignments) && opts.Alignments[c] == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if c < len(row)-1 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
		}
		out[i] = b.String()
	}
	return out
}
