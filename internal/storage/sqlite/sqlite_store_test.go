package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/pkg/streak"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

func newBoard(t *testing.T, title string) *streak.Board {
	t.Helper()
	b, err := streak.NewBoard(streak.BoardConfig{
		Title:        title,
		Days:         30,
		StartDate:    time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		WeekdaysOnly: true,
		Layout:       streak.LayoutWeek,
		Shape:        streak.ShapeCircle,
	})
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	return b
}

func TestPutAndGetBoard(t *testing.T) {
	store := newTestStore(t)

	b := newBoard(t, "guitar")
	_, _ = b.Toggle(3)
	_, _ = b.Toggle(3)
	_, _ = b.Toggle(3)
	_ = b.SetNote(7, "rest day")
	_, _ = b.SetDifficulty(4, streak.DifficultyExtreme)
	_, _ = b.FreezeToday(5)
	if err := store.PutBoard(b); err != nil {
		t.Fatalf("PutBoard failed: %v", err)
	}

	got, err := store.GetBoard(b.ID)
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}
	if got.Title != "guitar" || !got.WeekdaysOnly || got.Layout != streak.LayoutWeek || got.Shape != streak.ShapeCircle {
		t.Fatalf("board fields lost: %+v", got)
	}
	if !got.StartDate.Equal(b.StartDate) {
		t.Fatalf("start date %v, want %v", got.StartDate, b.StartDate)
	}
	if !got.Completed.Has(3) || got.Heat[3] != 3 {
		t.Fatalf("day 3: completed=%v heat=%d", got.Completed.Has(3), got.Heat[3])
	}
	if got.Notes[7] != "rest day" || got.Completed.Has(7) {
		t.Fatalf("day 7: %q completed=%v", got.Notes[7], got.Completed.Has(7))
	}
	if got.Difficulty[4] != streak.DifficultyExtreme || !got.Freezes.Has(5) || got.FreezesLeft != 2 {
		t.Fatalf("difficulty/freeze lost: %+v", got)
	}
}

func TestGetBoard_NotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetBoard("nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListBoards(t *testing.T) {
	store := newTestStore(t)

	boards, err := store.ListBoards()
	if err != nil || len(boards) != 0 {
		t.Fatalf("empty store: %v %d", err, len(boards))
	}
	for _, title := range []string{"guitar", "exercise"} {
		if err := store.PutBoard(newBoard(t, title)); err != nil {
			t.Fatalf("PutBoard failed: %v", err)
		}
	}
	boards, err = store.ListBoards()
	if err != nil {
		t.Fatal(err)
	}
	if len(boards) != 2 || boards[0].ID > boards[1].ID {
		t.Fatalf("want 2 boards sorted by id, got %d", len(boards))
	}
}

func TestUpdateBoard(t *testing.T) {
	store := newTestStore(t)
	b := newBoard(t, "guitar")
	_, _ = b.Toggle(2)
	if err := store.PutBoard(b); err != nil {
		t.Fatal(err)
	}

	updated, err := store.UpdateBoard(b.ID, func(b *streak.Board) error {
		_, err := b.Toggle(2)
		return err
	})
	if err != nil {
		t.Fatalf("UpdateBoard failed: %v", err)
	}
	if updated.Completed.Has(2) || updated.Heat[2] != 2 {
		t.Fatalf("unexpected board after update: %+v", updated)
	}

	_, err = store.UpdateBoard(b.ID, func(b *streak.Board) error {
		_, _ = b.Toggle(1)
		_, err := b.Toggle(99)
		return err
	})
	if !errors.Is(err, streak.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	got, _ := store.GetBoard(b.ID)
	if got.Completed.Has(1) {
		t.Fatal("partial update was persisted")
	}

	if _, err := store.UpdateBoard("missing", func(*streak.Board) error { return nil }); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteBoard(t *testing.T) {
	store := newTestStore(t)
	b := newBoard(t, "delete-me")
	_, _ = b.Toggle(1)
	if err := store.PutBoard(b); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteBoard(b.ID); err != nil {
		t.Fatalf("DeleteBoard failed: %v", err)
	}
	if _, err := store.GetBoard(b.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected board to be gone, got %v", err)
	}
	if err := store.DeleteBoard(b.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete should report ErrNotFound, got %v", err)
	}
}

func TestControlledStorePersists(t *testing.T) {
	store := newTestStore(t)
	b := newBoard(t, "guitar")
	if err := store.PutBoard(b); err != nil {
		t.Fatal(err)
	}

	cs, err := streak.NewControlledStore(storage.Owner(store, b.ID))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cs.Toggle(6); err != nil {
		t.Fatal(err)
	}
	got, _ := store.GetBoard(b.ID)
	if !got.Completed.Has(6) {
		t.Fatal("controlled toggle did not reach the database")
	}
}
