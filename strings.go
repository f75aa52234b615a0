package dyntable

import (
	"strings"

	"github.com/rivo/uniseg"
)

// WrapLines word-wraps text to lines of at most width cells. Hard line breaks
// are kept, so blank lines survive. A word wider than width is split between
// grapheme clusters.
func WrapLines(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, paragraph := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		lines = append(lines, wrapParagraph(paragraph, width)...)
	}
	return lines
}

// wrapParagraph breaks text, which has no hard line breaks, at the last line
// break opportunity that fits. Spaces at a break are dropped.
func wrapParagraph(text string, width int) []string {
	var (
		lines      []string
		start, end int
		lineWidth  int
		breakAt    = -1
		breakWidth int
		state      = -1
	)
	rest := text
	for len(rest) > 0 {
		var (
			cluster    string
			boundaries int
		)
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)
		w := boundaries >> uniseg.ShiftWidth

		if lineWidth+w > width && end > start {
			switch {
			case strings.TrimSpace(cluster) == "":
				lines = append(lines, text[start:end])
				end += len(cluster)
				start, lineWidth, breakAt = end, 0, -1
				continue
			case breakAt > start:
				lines = append(lines, strings.TrimRight(text[start:breakAt], " "))
				start = breakAt
				lineWidth -= breakWidth
			default:
				lines = append(lines, text[start:end])
				start, lineWidth = end, 0
			}
			breakAt = -1
		}

		end += len(cluster)
		lineWidth += w
		if boundaries&uniseg.MaskLine == uniseg.LineCanBreak {
			breakAt, breakWidth = end, lineWidth
		}
	}
	return append(lines, text[start:end])
}
