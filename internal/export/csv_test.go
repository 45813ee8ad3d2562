package export

import (
	"bytes"
	"errors"
	"maps"
	"strings"
	"testing"
	"time"

	"github.com/brk3/streaks/pkg/streak"
)

func newBoard(t *testing.T, days int, weekdaysOnly bool) *streak.Board {
	t.Helper()
	b, err := streak.NewBoard(streak.BoardConfig{
		Title:        "guitar",
		Days:         days,
		StartDate:    time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC),
		WeekdaysOnly: weekdaysOnly,
	})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestWriteCSV_RowShape(t *testing.T) {
	b := newBoard(t, 3, false)
	_, _ = b.Toggle(1)
	_ = b.SetNote(1, "scales, then chords")
	_, _ = b.SetDifficulty(2, streak.DifficultyHard)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, b); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"day,date,completed,count,note,heat,difficulty,frozen",
		`1,2026-10-12,1,1,"scales, then chords",1,,0`,
		"2,2026-10-13,1,3,,0,3,0",
		"3,2026-10-14,0,0,,0,,0",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Fatalf("got\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, weekdaysOnly := range []bool{false, true} {
		b := newBoard(t, 30, weekdaysOnly)
		_, _ = b.Toggle(1)
		_, _ = b.Toggle(2)
		_, _ = b.Toggle(2)
		_, _ = b.Toggle(2)
		_, _ = b.FreezeToday(5)
		_, _ = b.SetDifficulty(9, streak.DifficultyExtreme)
		_ = b.SetNote(9, "tough \"one\"\nsecond line")

		var buf bytes.Buffer
		if err := WriteCSV(&buf, b); err != nil {
			t.Fatal(err)
		}

		fresh := b.Clone()
		fresh.Completed = streak.IndexSet{}
		fresh.Freezes = streak.IndexSet{}
		fresh.Heat = map[int]int{}
		fresh.Difficulty = map[int]streak.Difficulty{}
		fresh.Notes = map[int]string{}
		fresh.FreezesLeft = streak.InitialFreezes

		got, err := ReadCSV(&buf, fresh)
		if err != nil {
			t.Fatalf("weekdaysOnly=%v: ReadCSV: %v", weekdaysOnly, err)
		}
		if !maps.Equal(got.Completed, b.Completed) {
			t.Errorf("completed %v want %v", got.Completed.Sorted(), b.Completed.Sorted())
		}
		if !maps.Equal(got.Heat, b.Heat) {
			t.Errorf("heat %v want %v", got.Heat, b.Heat)
		}
		if !maps.Equal(got.Difficulty, b.Difficulty) {
			t.Errorf("difficulty %v want %v", got.Difficulty, b.Difficulty)
		}
		if !maps.Equal(got.Notes, b.Notes) {
			t.Errorf("notes %v want %v", got.Notes, b.Notes)
		}
		if !maps.Equal(got.Freezes, b.Freezes) || got.FreezesLeft != b.FreezesLeft {
			t.Errorf("freezes %v/%d want %v/%d", got.Freezes.Sorted(), got.FreezesLeft, b.Freezes.Sorted(), b.FreezesLeft)
		}
	}
}

func TestReadCSV_FiveColumns(t *testing.T) {
	b := newBoard(t, 5, false)
	in := "1,2026-10-12,1,2,morning\n3,,1,0,\n"
	got, err := ReadCSV(strings.NewReader(in), b)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Completed.Has(1) || !got.Completed.Has(3) || got.Heat[1] != 2 || got.Notes[1] != "morning" {
		t.Fatalf("unexpected board %+v", got)
	}
	if len(got.Difficulty) != 0 {
		t.Fatal("five-column rows carry no difficulty")
	}
	if b.Completed.Len() != 0 {
		t.Fatal("ReadCSV must not modify its input")
	}
}

func TestReadCSV_Rejects(t *testing.T) {
	b := newBoard(t, 5, false)
	tests := map[string]string{
		"out of range":  "9,,1,0,\n",
		"wrong date":    "1,2026-01-01,1,0,\n",
		"bad flag":      "1,,yes,0,\n",
		"short row":     "1,,1\n",
		"bad difficult": "1,,1,0,,0,7,0\n",
		"frozen undone": "1,,0,0,,0,,1\n",
	}
	for name, in := range tests {
		if _, err := ReadCSV(strings.NewReader(in), b); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	_, err := ReadCSV(strings.NewReader("9,,1,0,\n"), b)
	if !errors.Is(err, streak.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}
