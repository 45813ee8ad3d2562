package streak

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIndexToDate_AllDays(t *testing.T) {
	start := date(2026, time.January, 30)
	got := IndexToDate(start, 3, false)
	if want := date(2026, time.February, 1); !got.Equal(want) {
		t.Fatalf("got %s want %s", got, want)
	}
	if got := IndexToDate(start, 1, false); !got.Equal(start) {
		t.Fatalf("index 1 should map to start, got %s", got)
	}
}

func TestIndexToDate_WeekdaysOnly(t *testing.T) {
	monday := date(2026, time.October, 12)

	tests := []struct {
		name  string
		start time.Time
		idx   int
		want  time.Time
	}{
		{"monday start counts", monday, 1, monday},
		{"fifth weekday is friday", monday, 5, monday.AddDate(0, 0, 4)},
		{"sixth skips the weekend", monday, 6, monday.AddDate(0, 0, 7)},
		{"eleventh is third monday", monday, 11, monday.AddDate(0, 0, 14)},
		{"saturday start moves to monday", date(2026, time.October, 17), 1, date(2026, time.October, 19)},
		{"sunday start moves to monday", date(2026, time.October, 18), 2, date(2026, time.October, 20)},
		{"wednesday start wraps", date(2026, time.October, 14), 4, date(2026, time.October, 19)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IndexToDate(tt.start, tt.idx, true)
			if !got.Equal(tt.want) {
				t.Fatalf("IndexToDate(%s, %d) = %s, want %s", tt.start.Format(time.DateOnly), tt.idx, got.Format(time.DateOnly), tt.want.Format(time.DateOnly))
			}
		})
	}
}

func TestDateToIndex_InvertsIndexToDate(t *testing.T) {
	for _, weekdaysOnly := range []bool{false, true} {
		for offset := 0; offset < 7; offset++ {
			start := date(2026, time.March, 1).AddDate(0, 0, offset)
			for idx := 1; idx <= 60; idx++ {
				d := IndexToDate(start, idx, weekdaysOnly)
				got, ok := DateToIndex(start, d, weekdaysOnly)
				if !ok || got != idx {
					t.Fatalf("weekdaysOnly=%v start=%s idx=%d: round trip gave %d ok=%v", weekdaysOnly, start.Format(time.DateOnly), idx, got, ok)
				}
			}
		}
	}
}

func TestDateToIndex_NoCell(t *testing.T) {
	monday := date(2026, time.October, 12)
	if _, ok := DateToIndex(monday, monday.AddDate(0, 0, 5), true); ok {
		t.Fatal("saturday should have no index on a weekdays-only board")
	}
	if _, ok := DateToIndex(monday, monday.AddDate(0, 0, -1), false); ok {
		t.Fatal("a date before start should have no index")
	}
}

func TestTodayIndex(t *testing.T) {
	b := &Board{Days: 10, StartDate: date(2026, time.October, 12)}

	now := time.Date(2026, time.October, 14, 21, 30, 0, 0, time.UTC)
	idx, ok := TodayIndex(b, now)
	if !ok || idx != 3 {
		t.Fatalf("got %d ok=%v want 3 true", idx, ok)
	}

	if _, ok := TodayIndex(b, date(2026, time.October, 30)); ok {
		t.Fatal("expected ok=false after the board ends")
	}
	if _, ok := TodayIndex(b, date(2026, time.October, 1)); ok {
		t.Fatal("expected ok=false before the board starts")
	}
}
