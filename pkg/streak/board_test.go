package streak

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func newTestBoard(t *testing.T, days int) *Board {
	t.Helper()
	b, err := NewBoard(BoardConfig{
		Title:     "guitar",
		Days:      days,
		StartDate: date(2026, time.October, 1),
	})
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	return b
}

func TestNewBoard_Defaults(t *testing.T) {
	b := newTestBoard(t, 30)
	if b.ID == "" {
		t.Fatal("expected an id")
	}
	if b.FreezesLeft != InitialFreezes {
		t.Fatalf("got %d freezes want %d", b.FreezesLeft, InitialFreezes)
	}
	if b.Layout != LayoutMonth || b.Shape != ShapeRounded {
		t.Fatalf("unexpected defaults %q %q", b.Layout, b.Shape)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("fresh board should validate: %v", err)
	}
}

func TestNewBoard_Invalid(t *testing.T) {
	_, err := NewBoard(BoardConfig{Title: "  ", Days: 0, Layout: "spiral"})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	for _, field := range []string{"title", "days", "start_date", "layout"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected %s to be reported, got %v", field, verr.Fields)
		}
	}
}

func TestToggle_IsItsOwnInverse(t *testing.T) {
	b := newTestBoard(t, 10)

	done, err := b.Toggle(4)
	if err != nil || !done {
		t.Fatalf("first toggle: done=%v err=%v", done, err)
	}
	done, err = b.Toggle(4)
	if err != nil || done {
		t.Fatalf("second toggle: done=%v err=%v", done, err)
	}
	if b.Completed.Has(4) {
		t.Fatal("4 should not be completed after two toggles")
	}
	if b.Heat[4] != 2 {
		t.Fatalf("heat=%d want 2", b.Heat[4])
	}
}

func TestShade_CapsAtFour(t *testing.T) {
	b := newTestBoard(t, 10)
	for i := 0; i < 7; i++ {
		if _, err := b.Toggle(2); err != nil {
			t.Fatal(err)
		}
	}
	if b.Heat[2] != 7 {
		t.Fatalf("heat=%d want 7", b.Heat[2])
	}
	if b.Shade(2) != MaxShade {
		t.Fatalf("shade=%d want %d", b.Shade(2), MaxShade)
	}
	if _, rated := b.Difficulty[2]; rated {
		t.Fatal("toggling must not rate difficulty")
	}
}

func TestFreezeToday_Allowance(t *testing.T) {
	b := newTestBoard(t, 10)

	for i, idx := range []int{1, 2, 3, 4} {
		frozen, err := b.FreezeToday(idx)
		if err != nil {
			t.Fatalf("freeze %d: %v", idx, err)
		}
		if want := i < 3; frozen != want {
			t.Fatalf("freeze %d: got %v want %v", idx, frozen, want)
		}
	}
	if b.FreezesLeft != 0 {
		t.Fatalf("freezesLeft=%d want 0", b.FreezesLeft)
	}
	if b.Completed.Len() != 3 || b.Freezes.Len() != 3 {
		t.Fatalf("completed=%v freezes=%v", b.Completed.Sorted(), b.Freezes.Sorted())
	}
	if b.Completed.Has(4) {
		t.Fatal("the fourth freeze should be a no-op")
	}
}

func TestFreezeToday_AlreadyCompleted(t *testing.T) {
	b := newTestBoard(t, 10)
	if _, err := b.Toggle(5); err != nil {
		t.Fatal(err)
	}
	frozen, err := b.FreezeToday(5)
	if err != nil || frozen {
		t.Fatalf("frozen=%v err=%v", frozen, err)
	}
	if b.FreezesLeft != InitialFreezes {
		t.Fatal("allowance should be untouched")
	}
}

func TestToggle_ClearsFreeze(t *testing.T) {
	b := newTestBoard(t, 10)
	if _, err := b.FreezeToday(3); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Toggle(3); err != nil {
		t.Fatal(err)
	}
	if b.Freezes.Has(3) {
		t.Fatal("un-completing a frozen day must drop the freeze")
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("board invalid after clearing freeze: %v", err)
	}
}

func TestSetDifficulty_CompletesDay(t *testing.T) {
	b := newTestBoard(t, 10)
	newly, err := b.SetDifficulty(6, DifficultyHard)
	if err != nil || !newly {
		t.Fatalf("newly=%v err=%v", newly, err)
	}
	if !b.Completed.Has(6) || b.Difficulty[6] != DifficultyHard {
		t.Fatalf("completed=%v difficulty=%v", b.Completed.Has(6), b.Difficulty[6])
	}
	if b.Count(6) != 3 {
		t.Fatalf("count=%d want 3", b.Count(6))
	}
	if b.Heat[6] != 0 {
		t.Fatal("rating must not change heat")
	}
	if _, err := b.SetDifficulty(6, 5); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}
}

func TestSetNote(t *testing.T) {
	b := newTestBoard(t, 10)
	if err := b.SetNote(2, "slept badly"); err != nil {
		t.Fatal(err)
	}
	if b.Notes[2] != "slept badly" {
		t.Fatalf("got %q", b.Notes[2])
	}
	if err := b.SetNote(2, ""); err != nil {
		t.Fatal(err)
	}
	if _, ok := b.Notes[2]; ok {
		t.Fatal("empty note should clear")
	}
}

func TestMutations_RejectOutOfRange(t *testing.T) {
	b := newTestBoard(t, 10)
	checks := map[string]error{}
	_, checks["toggle"] = b.Toggle(0)
	_, checks["freeze"] = b.FreezeToday(11)
	checks["note"] = b.SetNote(-1, "x")
	_, checks["difficulty"] = b.SetDifficulty(42, DifficultyEasy)
	for op, err := range checks {
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("%s: expected ErrIndexOutOfRange, got %v", op, err)
		}
	}
	if b.Completed.Len() != 0 || len(b.Heat) != 0 || b.FreezesLeft != InitialFreezes {
		t.Fatal("rejected mutations must not change the board")
	}
}

func TestBoard_JSONRoundTrip(t *testing.T) {
	b := newTestBoard(t, 20)
	_, _ = b.Toggle(1)
	_, _ = b.FreezeToday(2)
	_, _ = b.SetDifficulty(3, DifficultyExtreme)
	_ = b.SetNote(3, "long run")

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	var got Board
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("decoded board invalid: %v", err)
	}
	if got.Completed.Len() != 3 || !got.Freezes.Has(2) || got.Difficulty[3] != DifficultyExtreme || got.Notes[3] != "long run" {
		t.Fatalf("decoded board lost state: %+v", got)
	}
	if !got.StartDate.Equal(b.StartDate) {
		t.Fatalf("start date %s want %s", got.StartDate, b.StartDate)
	}
}

func TestClone_IsDeep(t *testing.T) {
	b := newTestBoard(t, 10)
	c := b.Clone()
	_, _ = c.Toggle(1)
	_ = c.SetNote(1, "x")
	if b.Completed.Has(1) || b.Heat[1] != 0 || b.Notes[1] != "" {
		t.Fatal("mutating a clone leaked into the original")
	}
}

func TestParseDifficulty(t *testing.T) {
	for in, want := range map[string]Difficulty{"1": DifficultyEasy, "hard": DifficultyHard, " Extreme ": DifficultyExtreme} {
		got, err := ParseDifficulty(in)
		if err != nil || got != want {
			t.Errorf("ParseDifficulty(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseDifficulty("0"); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}
}
