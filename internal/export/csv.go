// Package export converts boards to and from CSV.
//
// Each row is (day, date, completed, count, note) followed by heat,
// difficulty and frozen. count is the difficulty when the day was rated and
// the toggle heat otherwise; the trailing columns keep the two apart so an
// export re-imports without loss. Five-column files are accepted and their
// count is read as heat.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/brk3/streaks/pkg/streak"
)

var Header = []string{"day", "date", "completed", "count", "note", "heat", "difficulty", "frozen"}

const minColumns = 5

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// WriteCSV writes one row per day index of b.
func WriteCSV(w io.Writer, b *streak.Board) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for s := range streak.Slots(b.Days, b.StartDate, b.WeekdaysOnly) {
		difficulty := ""
		if d, ok := b.Difficulty[s.Idx]; ok {
			difficulty = strconv.Itoa(int(d))
		}
		row := []string{
			strconv.Itoa(s.Idx),
			s.Date.Format(time.DateOnly),
			flag(b.Completed.Has(s.Idx)),
			strconv.Itoa(b.Count(s.Idx)),
			b.Notes[s.Idx],
			strconv.Itoa(b.Heat[s.Idx]),
			difficulty,
			flag(b.Freezes.Has(s.Idx)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV applies the rows in r to a copy of b and returns the copy. Days
// missing from the file are left untouched. The freeze allowance is reduced
// by the number of frozen days on the result.
func ReadCSV(r io.Reader, b *streak.Board) (*streak.Board, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	out := b.Clone()
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), Header[0]) {
			continue
		}
		if err := applyRow(out, rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	out.FreezesLeft = max(streak.InitialFreezes-out.Freezes.Len(), 0)
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseFlag(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return true, nil
	case "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("flag must be 0 or 1, got %q", s)
	}
}

func atoi(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func applyRow(b *streak.Board, rec []string) error {
	if len(rec) < minColumns {
		return fmt.Errorf("want at least %d columns, got %d", minColumns, len(rec))
	}
	idx, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil {
		return fmt.Errorf("day: %w", err)
	}
	if idx < 1 || idx > b.Days {
		return fmt.Errorf("%w: %d not in [1, %d]", streak.ErrIndexOutOfRange, idx, b.Days)
	}
	if ds := strings.TrimSpace(rec[1]); ds != "" {
		d, err := time.Parse(time.DateOnly, ds)
		if err != nil {
			return fmt.Errorf("date: %w", err)
		}
		if want := b.DateOf(idx); !d.Equal(want) {
			return fmt.Errorf("day %d is %s on this board, file says %s", idx, want.Format(time.DateOnly), ds)
		}
	}
	completed, err := parseFlag(rec[2])
	if err != nil {
		return fmt.Errorf("completed: %w", err)
	}
	count, err := atoi(rec[3])
	if err != nil || count < 0 {
		return fmt.Errorf("count: bad value %q", rec[3])
	}

	heat, difficulty, frozen := count, 0, false
	if len(rec) > minColumns {
		if heat, err = atoi(rec[5]); err != nil || heat < 0 {
			return fmt.Errorf("heat: bad value %q", rec[5])
		}
	}
	if len(rec) > 6 {
		if difficulty, err = atoi(rec[6]); err != nil {
			return fmt.Errorf("difficulty: %w", err)
		}
	}
	if len(rec) > 7 {
		if frozen, err = parseFlag(rec[7]); err != nil {
			return fmt.Errorf("frozen: %w", err)
		}
	}

	if completed {
		b.Completed.Add(idx)
	} else {
		b.Completed.Remove(idx)
	}
	if frozen {
		b.Freezes.Add(idx)
	} else {
		b.Freezes.Remove(idx)
	}
	if heat > 0 {
		b.Heat[idx] = heat
	} else {
		delete(b.Heat, idx)
	}
	if difficulty != 0 {
		b.Difficulty[idx] = streak.Difficulty(difficulty)
	} else {
		delete(b.Difficulty, idx)
	}
	return b.SetNote(idx, rec[4])
}
