package streak

import (
	"fmt"
	"iter"
	"strings"
	"time"
)

// Layout selects how a board's days are grouped for display.
type Layout string

const (
	LayoutWeek  Layout = "week"
	LayoutMonth Layout = "month"
	LayoutGrid  Layout = "grid"
)

func (l Layout) IsValid() bool {
	switch l {
	case LayoutWeek, LayoutMonth, LayoutGrid:
		return true
	default:
		return false
	}
}

// Next cycles week -> month -> grid -> week.
func (l Layout) Next() Layout {
	switch l {
	case LayoutWeek:
		return LayoutMonth
	case LayoutMonth:
		return LayoutGrid
	default:
		return LayoutWeek
	}
}

func ParseLayout(s string) (Layout, error) {
	l := Layout(strings.ToLower(strings.TrimSpace(s)))
	if !l.IsValid() {
		return "", fmt.Errorf("unknown layout %q (want week, month or grid)", s)
	}
	return l, nil
}

// Shape is a rendering hint for day cells. It has no effect on layout.
type Shape string

const (
	ShapeSquare  Shape = "square"
	ShapeRounded Shape = "rounded"
	ShapeCircle  Shape = "circle"
)

func (s Shape) IsValid() bool {
	switch s {
	case ShapeSquare, ShapeRounded, ShapeCircle:
		return true
	default:
		return false
	}
}

func ParseShape(s string) (Shape, error) {
	sh := Shape(strings.ToLower(strings.TrimSpace(s)))
	if !sh.IsValid() {
		return "", fmt.Errorf("unknown shape %q (want square, rounded or circle)", s)
	}
	return sh, nil
}

const daysPerWeek = 7

// Slot is one cell of a laid-out board. Idx is zero for padding cells.
type Slot struct {
	Idx  int       `json:"idx,omitempty"`
	Date time.Time `json:"date"`
}

func (s Slot) Padding() bool {
	return s.Idx == 0
}

// Block is a labelled group of slots: a month, a week row, or the whole grid.
type Block struct {
	Label string `json:"label"`
	Slots []Slot `json:"slots"`
}

// Rows splits the block into rows of seven slots. The last row of a grid
// block may be shorter.
func (b Block) Rows() [][]Slot {
	var rows [][]Slot
	for i := 0; i < len(b.Slots); i += daysPerWeek {
		rows = append(rows, b.Slots[i:min(i+daysPerWeek, len(b.Slots))])
	}
	return rows
}

// Slots yields one slot per day index, in order, with its calendar date.
func Slots(days int, start time.Time, weekdaysOnly bool) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if days <= 0 {
			return
		}
		d := Day(start)
		if weekdaysOnly {
			d = firstWeekday(d)
		}
		for idx := 1; idx <= days; idx++ {
			if !yield(Slot{Idx: idx, Date: d}) {
				return
			}
			d = d.AddDate(0, 0, 1)
			for weekdaysOnly && isWeekend(d) {
				d = d.AddDate(0, 0, 1)
			}
		}
	}
}

// LayoutBoard lays out days starting at start. It returns nil when days is
// not positive.
func LayoutBoard(days int, start time.Time, weekdaysOnly bool, kind Layout) []Block {
	if days <= 0 {
		return nil
	}
	seq := Slots(days, start, weekdaysOnly)
	switch kind {
	case LayoutMonth:
		return monthBlocks(seq)
	case LayoutGrid:
		return gridBlocks(days, seq)
	default:
		return weekBlocks(seq)
	}
}

func padding(n int) []Slot {
	return make([]Slot, n)
}

func padToWeek(slots []Slot) []Slot {
	if r := len(slots) % daysPerWeek; r != 0 {
		slots = append(slots, padding(daysPerWeek-r)...)
	}
	return slots
}

func monthBlocks(seq iter.Seq[Slot]) []Block {
	var (
		blocks []Block
		cur    *Block
		last   time.Time
	)
	for s := range seq {
		if cur == nil || s.Date.Month() != last.Month() || s.Date.Year() != last.Year() {
			if cur != nil {
				cur.Slots = padToWeek(cur.Slots)
				blocks = append(blocks, *cur)
			}
			cur = &Block{
				Label: fmt.Sprintf("%s %d", s.Date.Month(), s.Date.Year()),
				Slots: padding(int(s.Date.Weekday())),
			}
		} else {
			// weekend gaps on weekdays-only boards keep their columns
			cur.Slots = append(cur.Slots, padding(daysBetween(last, s.Date)-1)...)
		}
		cur.Slots = append(cur.Slots, s)
		last = s.Date
	}
	if cur != nil {
		cur.Slots = padToWeek(cur.Slots)
		blocks = append(blocks, *cur)
	}
	return blocks
}

func weekBlocks(seq iter.Seq[Slot]) []Block {
	var flat []Slot
	for s := range seq {
		if flat == nil {
			flat = padding(int(s.Date.Weekday()))
		}
		flat = append(flat, s)
	}
	flat = padToWeek(flat)

	blocks := make([]Block, 0, len(flat)/daysPerWeek)
	for i := 0; i < len(flat); i += daysPerWeek {
		blocks = append(blocks, Block{
			Label: fmt.Sprintf("W%d", i/daysPerWeek+1),
			Slots: flat[i : i+daysPerWeek],
		})
	}
	return blocks
}

func gridBlocks(days int, seq iter.Seq[Slot]) []Block {
	slots := make([]Slot, 0, days)
	for s := range seq {
		slots = append(slots, s)
	}
	return []Block{{Slots: slots}}
}
