package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s       string
	width   int
	isBreak bool
}

// buildStyledBases colours every nucleotide of a displayed strand. End
// markers and dashes are dimmed and mark the places a line may break.
func buildStyledBases(display string) []styledRune {
	out := make([]styledRune, 0, len(display))
	for _, r := range display {
		style := baseStyle(r)
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isBreak: r == '-',
		})
	}
	return out
}

func baseStyle(r rune) lipgloss.Style {
	switch r {
	case 'A':
		return adenineStyle
	case 'U', 'T':
		return uracilStyle
	case 'G':
		return guanineStyle
	case 'C':
		return cytosineStyle
	default:
		return markerStyle
	}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks after the last marker dash that fits, or hard-wraps
// inside a run of bases.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastBreakIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastBreakIdx >= 0 && lastBreakIdx < len(line)-1 {
				out.WriteString(renderStyledRunes(line[:lastBreakIdx+1]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastBreakIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastBreakIdx = lastBreakIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastBreakIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isBreak {
			lastBreakIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastBreakIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isBreak {
			return i
		}
	}
	return -1
}
