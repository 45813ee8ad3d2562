package ui

import (
	"fmt"
	"strings"

	"github.com/brk3/streaks/pkg/streak"
	"github.com/charmbracelet/lipgloss"
)

const weekHeader = "Su Mo Tu We Th Fr Sa"

// Marks are the transient interaction overlays drawn on top of cells.
type Marks struct {
	Focus       int
	Hover       int
	Celebrating streak.IndexSet
}

func glyphs(shape streak.Shape) (done, open string) {
	switch shape {
	case streak.ShapeSquare:
		return "■", "□"
	case streak.ShapeCircle:
		return "●", "○"
	default:
		return "▣", "▢"
	}
}

const (
	glyphFrozen    = "❄"
	glyphCelebrate = "✦"
)

// Cell renders one two-column cell.
func Cell(c streak.Cell, shape streak.Shape, m Marks, st Styles) string {
	if c.Idx == 0 {
		return "  "
	}
	done, open := glyphs(shape)

	var out string
	switch {
	case m.Celebrating.Has(c.Idx):
		out = st.Celebrate.Render(glyphCelebrate)
	case c.Frozen:
		out = st.Frozen.Render(glyphFrozen)
	case c.Completed:
		g := done
		if c.Difficulty != 0 {
			g = fmt.Sprint(int(c.Difficulty))
		}
		style := st.Shades[max(c.Shade, 1)-1]
		if c.InRun {
			style = style.Inherit(st.RunUnderlay)
		}
		out = style.Render(g)
	default:
		out = st.Empty.Render(open)
	}

	marker := " "
	if c.Note != "" {
		marker = st.Muted.Render("·")
	}
	out += marker

	switch {
	case c.Idx == m.Focus:
		out = st.Focus.Render(out)
	case c.Idx == m.Hover:
		out = st.Hover.Render(out)
	case c.Today:
		out = st.Today.Render(out)
	}
	return out
}

// WeekHeader returns the weekday header for labelled blocks, or "" when the
// columns of the layout do not follow the weekday. Week blocks of a
// weekdays-only board pack five days per week into seven columns.
func WeekHeader(kind streak.Layout, weekdaysOnly bool) string {
	if kind == streak.LayoutWeek && weekdaysOnly {
		return ""
	}
	return weekHeader
}

// Board renders the block views of a board as text. header is printed under
// each block label when non-empty.
func Board(title string, shape streak.Shape, header string, blocks []streak.BlockView, m Marks, t Theme) string {
	st := t.Styles()
	var b strings.Builder
	b.WriteString(st.Title.Render(title))
	b.WriteString("\n")

	for _, blk := range blocks {
		b.WriteString("\n")
		if blk.Label != "" {
			b.WriteString(st.Label.Render(blk.Label))
			b.WriteString("\n")
			if header != "" {
				b.WriteString(st.Muted.Render(header))
				b.WriteString("\n")
			}
		}
		for i, c := range blk.Cells {
			b.WriteString(Cell(c, shape, m, st))
			if i%7 == 6 || i == len(blk.Cells)-1 {
				b.WriteString("\n")
			} else {
				b.WriteString(" ")
			}
		}
	}
	return b.String()
}

// Stats renders the streak summary line.
func Stats(s streak.Stats, completed, days, freezesLeft int, t Theme) string {
	st := t.Styles()
	parts := []string{
		LabelValue(st, "current", s.Current),
		LabelValue(st, "longest", s.Max),
		LabelValue(st, "done", fmt.Sprintf("%d/%d", completed, days)),
		LabelValue(st, "freezes", freezesLeft),
	}
	return strings.Join(parts, "  ")
}

func LabelValue(st Styles, label string, value any) string {
	return fmt.Sprintf("%s %v", st.Label.Render(label+":"), value)
}

// Panel wraps body in the themed border.
func Panel(t Theme, title, body string) string {
	st := t.Styles()
	return st.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, st.Title.Render(title), body))
}
