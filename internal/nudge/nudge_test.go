package nudge

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/brk3/streaks/internal/storage/memory"
	"github.com/brk3/streaks/pkg/streak"
)

var start = time.Date(2026, 10, 1, 0, 0, 0, 0, time.Local)

func board(t *testing.T, title string, done ...int) *streak.Board {
	t.Helper()
	b, err := streak.NewBoard(streak.BoardConfig{Title: title, Days: 30, StartDate: start})
	if err != nil {
		t.Fatal(err)
	}
	for _, idx := range done {
		if _, err := b.Toggle(idx); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

func TestBoardsAtRisk(t *testing.T) {
	// Day 6 of each board.
	now := time.Date(2026, 10, 6, 21, 0, 0, 0, time.Local)
	q := &mockQuerier{boards: []*streak.Board{
		board(t, "guitar", 3, 4, 5),
		board(t, "coding", 5, 6),
		board(t, "reading", 2, 3),
		board(t, "running"),
	}}

	got, err := BoardsAtRisk(context.Background(), q, now)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"guitar"}) {
		t.Fatalf("got %v, want [guitar]", got)
	}
}

func TestBoardsAtRisk_TodayOffBoard(t *testing.T) {
	now := time.Date(2026, 12, 1, 21, 0, 0, 0, time.Local)
	q := &mockQuerier{boards: []*streak.Board{board(t, "guitar", 29, 30)}}

	got, err := BoardsAtRisk(context.Background(), q, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want none", got)
	}
}

func TestHoursLeft(t *testing.T) {
	cases := map[int]int{0: 24, 12: 12, 21: 3, 23: 1}
	for hour, want := range cases {
		now := time.Date(2026, 10, 6, hour, 0, 0, 0, time.Local)
		if got := HoursLeft(now); got != want {
			t.Errorf("HoursLeft(%02d:00) = %d, want %d", hour, got, want)
		}
	}
}

func TestHoursLeft_NonUTCZone(t *testing.T) {
	for _, loc := range []*time.Location{
		time.FixedZone("EST", -5*3600),
		time.FixedZone("JST", 9*3600),
	} {
		cases := map[int]int{10: 14, 20: 4, 23: 1}
		for hour, want := range cases {
			now := time.Date(2026, 10, 6, hour, 0, 0, 0, loc)
			if got := HoursLeft(now); got != want {
				t.Errorf("HoursLeft(%02d:00 %s) = %d, want %d", hour, loc, got, want)
			}
		}
	}
}

func TestNudge_NonUTCZone(t *testing.T) {
	q := &mockQuerier{boards: []*streak.Board{board(t, "guitar", 4, 5)}}
	n := &mockNotifier{}
	now := time.Date(2026, 10, 6, 21, 0, 0, 0, time.FixedZone("EST", -5*3600))

	sent, err := Nudge(context.Background(), q, n, now, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(sent) != 1 || !n.called || n.hoursLeft != 3 {
		t.Fatalf("sent %v, called %v, hours %d", sent, n.called, n.hoursLeft)
	}
}

func TestNudge(t *testing.T) {
	q := &mockQuerier{boards: []*streak.Board{board(t, "guitar", 4, 5)}}

	t.Run("outside window", func(t *testing.T) {
		n := &mockNotifier{}
		now := time.Date(2026, 10, 6, 9, 0, 0, 0, time.Local)
		if _, err := Nudge(context.Background(), q, n, now, 4); err != nil {
			t.Fatal(err)
		}
		if n.called {
			t.Fatal("notifier called outside the window")
		}
	})

	t.Run("inside window", func(t *testing.T) {
		n := &mockNotifier{}
		now := time.Date(2026, 10, 6, 21, 30, 0, 0, time.Local)
		sent, err := Nudge(context.Background(), q, n, now, 4)
		if err != nil {
			t.Fatal(err)
		}
		if !n.called || !slices.Equal(n.titles, []string{"guitar"}) || n.hoursLeft != 2 {
			t.Fatalf("notifier got %+v", n)
		}
		if !slices.Equal(sent, []string{"guitar"}) {
			t.Fatalf("sent %v", sent)
		}
	})

	t.Run("notifier error", func(t *testing.T) {
		n := &mockNotifier{err: errors.New("smtp down")}
		now := time.Date(2026, 10, 6, 22, 0, 0, 0, time.Local)
		if _, err := Nudge(context.Background(), q, n, now, 4); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("querier error", func(t *testing.T) {
		n := &mockNotifier{}
		now := time.Date(2026, 10, 6, 22, 0, 0, 0, time.Local)
		bad := &mockQuerier{err: errors.New("boom")}
		if _, err := Nudge(context.Background(), bad, n, now, 4); err == nil || n.called {
			t.Fatalf("err=%v called=%v", err, n.called)
		}
	})
}

func TestStoreQuerier(t *testing.T) {
	st := memory.New()
	if err := st.PutBoard(board(t, "guitar", 5)); err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 10, 6, 22, 0, 0, 0, time.Local)
	got, err := BoardsAtRisk(context.Background(), StoreQuerier{Store: st}, now)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"guitar"}) {
		t.Fatalf("got %v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (StoreQuerier{Store: st}).ListBoards(ctx); err == nil {
		t.Fatal("expected cancelled context error")
	}
}
