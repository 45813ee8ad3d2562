package streak

import "time"

// Cell is the render-ready state of one slot. Padding cells have Idx 0 and
// nothing else set.
type Cell struct {
	Idx        int        `json:"idx,omitempty"`
	Date       string     `json:"date,omitempty"`
	Completed  bool       `json:"completed,omitempty"`
	Frozen     bool       `json:"frozen,omitempty"`
	Shade      int        `json:"shade,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Note       string     `json:"note,omitempty"`
	InRun      bool       `json:"in_run,omitempty"`
	Today      bool       `json:"today,omitempty"`
}

// BlockView is a Block with every slot resolved to a Cell.
type BlockView struct {
	Label string `json:"label"`
	Cells []Cell `json:"cells"`
}

// View lays b out in kind and attaches per-day state. It carries everything
// needed to draw the board without consulting the board again.
func (b *Board) View(kind Layout, now time.Time) []BlockView {
	stats := b.Stats(now)
	today, ok := TodayIndex(b, now)
	if !ok {
		today = 0
	}

	blocks := b.Blocks(kind)
	out := make([]BlockView, 0, len(blocks))
	for _, blk := range blocks {
		bv := BlockView{Label: blk.Label, Cells: make([]Cell, len(blk.Slots))}
		for i, s := range blk.Slots {
			if s.Padding() {
				continue
			}
			_, inRun := stats.RangeFor(s.Idx)
			bv.Cells[i] = Cell{
				Idx:        s.Idx,
				Date:       s.Date.Format(time.DateOnly),
				Completed:  b.Completed.Has(s.Idx),
				Frozen:     b.Freezes.Has(s.Idx),
				Shade:      b.Shade(s.Idx),
				Difficulty: b.Difficulty[s.Idx],
				Note:       b.Notes[s.Idx],
				InRun:      inRun,
				Today:      s.Idx == today,
			}
		}
		out = append(out, bv)
	}
	return out
}
