package streak

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// InitialFreezes is the freeze allowance every new board starts with.
	InitialFreezes = 3
	// MaxShade caps the heat value used for cell shading.
	MaxShade = 4
	MaxDays  = 3650
)

// Difficulty is the user's rating of how hard a day was.
type Difficulty int

const (
	DifficultyEasy    Difficulty = 1
	DifficultyMedium  Difficulty = 2
	DifficultyHard    Difficulty = 3
	DifficultyExtreme Difficulty = 4
)

func (d Difficulty) IsValid() bool {
	return d >= DifficultyEasy && d <= DifficultyExtreme
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	case DifficultyExtreme:
		return "extreme"
	default:
		return "unrated"
	}
}

// ParseDifficulty accepts either the level number or its name.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if d := Difficulty(n); d.IsValid() {
			return d, nil
		}
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDifficulty, n)
	}
	for d := DifficultyEasy; d <= DifficultyExtreme; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: got %q", ErrInvalidDifficulty, s)
}

// BoardConfig is everything the user chooses when creating a board.
type BoardConfig struct {
	Title        string
	Days         int
	StartDate    time.Time
	WeekdaysOnly bool
	Layout       Layout
	Shape        Shape
}

// Board is one tracked habit.
//
// Heat counts every toggle of a day and drives shading only. Difficulty is
// set explicitly from the day detail editor. The two are never mixed.
type Board struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Days         int                `json:"days"`
	StartDate    time.Time          `json:"start_date"`
	WeekdaysOnly bool               `json:"weekdays_only"`
	Layout       Layout             `json:"layout"`
	Shape        Shape              `json:"shape"`
	Completed    IndexSet           `json:"completed"`
	Heat         map[int]int        `json:"heat"`
	Difficulty   map[int]Difficulty `json:"difficulty"`
	Notes        map[int]string     `json:"notes"`
	FreezesLeft  int                `json:"freezes_left"`
	Freezes      IndexSet           `json:"freezes"`
}

// NewBoard validates cfg and returns a fully populated board. An empty
// layout or shape falls back to month and rounded.
func NewBoard(cfg BoardConfig) (*Board, error) {
	if cfg.Layout == "" {
		cfg.Layout = LayoutMonth
	}
	if cfg.Shape == "" {
		cfg.Shape = ShapeRounded
	}

	verr := &ValidationError{}
	title := strings.TrimSpace(cfg.Title)
	if title == "" {
		verr.add("title", "must not be empty")
	}
	if cfg.Days < 1 || cfg.Days > MaxDays {
		verr.add("days", fmt.Sprintf("must be 1-%d", MaxDays))
	}
	if cfg.StartDate.IsZero() {
		verr.add("start_date", "is required")
	}
	if !cfg.Layout.IsValid() {
		verr.add("layout", fmt.Sprintf("unknown layout %q", cfg.Layout))
	}
	if !cfg.Shape.IsValid() {
		verr.add("shape", fmt.Sprintf("unknown shape %q", cfg.Shape))
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	return &Board{
		ID:           uuid.NewString(),
		Title:        title,
		Days:         cfg.Days,
		StartDate:    Day(cfg.StartDate),
		WeekdaysOnly: cfg.WeekdaysOnly,
		Layout:       cfg.Layout,
		Shape:        cfg.Shape,
		Completed:    IndexSet{},
		Heat:         map[int]int{},
		Difficulty:   map[int]Difficulty{},
		Notes:        map[int]string{},
		FreezesLeft:  InitialFreezes,
		Freezes:      IndexSet{},
	}, nil
}

func (b *Board) check(idx int) error {
	if idx < 1 || idx > b.Days {
		return outOfRange(idx, b.Days)
	}
	return nil
}

// Toggle flips idx in the completed set and bumps its heat. It reports
// whether idx is completed afterwards. Clearing a frozen day also drops the
// freeze; the allowance is not refunded.
func (b *Board) Toggle(idx int) (bool, error) {
	if err := b.check(idx); err != nil {
		return false, err
	}
	b.Heat[idx]++
	if b.Completed.Has(idx) {
		b.Completed.Remove(idx)
		b.Freezes.Remove(idx)
		return false, nil
	}
	b.Completed.Add(idx)
	return true, nil
}

// FreezeToday completes todayIdx using one freeze. It is a no-op when no
// freezes are left or the day is already completed.
func (b *Board) FreezeToday(todayIdx int) (bool, error) {
	if err := b.check(todayIdx); err != nil {
		return false, err
	}
	if b.FreezesLeft <= 0 || b.Completed.Has(todayIdx) {
		return false, nil
	}
	b.Completed.Add(todayIdx)
	b.Freezes.Add(todayIdx)
	b.FreezesLeft--
	return true, nil
}

// SetNote replaces the note for idx. Empty text removes it.
func (b *Board) SetNote(idx int, text string) error {
	if err := b.check(idx); err != nil {
		return err
	}
	if text == "" {
		delete(b.Notes, idx)
		return nil
	}
	b.Notes[idx] = text
	return nil
}

// SetDifficulty rates idx and marks it completed. It reports whether the
// day was newly completed by the call.
func (b *Board) SetDifficulty(idx int, d Difficulty) (bool, error) {
	if err := b.check(idx); err != nil {
		return false, err
	}
	if !d.IsValid() {
		return false, fmt.Errorf("%w: got %d", ErrInvalidDifficulty, d)
	}
	b.Difficulty[idx] = d
	if b.Completed.Has(idx) {
		return false, nil
	}
	b.Completed.Add(idx)
	return true, nil
}

// Shade is the display heat of idx, capped at MaxShade.
func (b *Board) Shade(idx int) int {
	return min(b.Heat[idx], MaxShade)
}

// Count is the exported "count or difficulty" value of idx: the difficulty
// when the day was rated, otherwise its heat.
func (b *Board) Count(idx int) int {
	if d, ok := b.Difficulty[idx]; ok {
		return int(d)
	}
	return b.Heat[idx]
}

func (b *Board) DateOf(idx int) time.Time {
	return IndexToDate(b.StartDate, idx, b.WeekdaysOnly)
}

// Blocks lays the board out in kind, ignoring the board's own layout.
func (b *Board) Blocks(kind Layout) []Block {
	return LayoutBoard(b.Days, b.StartDate, b.WeekdaysOnly, kind)
}

// Stats computes streak figures relative to now.
func (b *Board) Stats(now time.Time) Stats {
	today, ok := TodayIndex(b, now)
	if !ok {
		today = 0
	}
	return ComputeStreaks(b.Completed, today)
}

// Clone returns a deep copy safe to hand to another goroutine.
func (b *Board) Clone() *Board {
	c := *b
	c.Completed = b.Completed.Clone()
	c.Freezes = b.Freezes.Clone()
	c.Heat = maps.Clone(b.Heat)
	c.Difficulty = maps.Clone(b.Difficulty)
	c.Notes = maps.Clone(b.Notes)
	if c.Heat == nil {
		c.Heat = map[int]int{}
	}
	if c.Difficulty == nil {
		c.Difficulty = map[int]Difficulty{}
	}
	if c.Notes == nil {
		c.Notes = map[int]string{}
	}
	return &c
}

// Validate checks the board invariants. It is used on boards decoded from
// storage or import, which bypass NewBoard.
func (b *Board) Validate() error {
	verr := &ValidationError{}
	if b.ID == "" {
		verr.add("id", "must not be empty")
	}
	if strings.TrimSpace(b.Title) == "" {
		verr.add("title", "must not be empty")
	}
	if b.Days < 1 || b.Days > MaxDays {
		verr.add("days", fmt.Sprintf("must be 1-%d", MaxDays))
	}
	if b.StartDate.IsZero() {
		verr.add("start_date", "is required")
	}
	if !b.Layout.IsValid() {
		verr.add("layout", fmt.Sprintf("unknown layout %q", b.Layout))
	}
	if !b.Shape.IsValid() {
		verr.add("shape", fmt.Sprintf("unknown shape %q", b.Shape))
	}
	if b.FreezesLeft < 0 {
		verr.add("freezes_left", "must not be negative")
	}
	for idx := range b.Completed {
		if b.check(idx) != nil {
			verr.add("completed", fmt.Sprintf("index %d out of range", idx))
			break
		}
	}
	if !b.Freezes.SubsetOf(b.Completed) {
		verr.add("freezes", "every frozen day must be completed")
	}
	for idx, n := range b.Heat {
		if b.check(idx) != nil || n < 0 {
			verr.add("heat", fmt.Sprintf("bad entry %d=%d", idx, n))
			break
		}
	}
	for idx, d := range b.Difficulty {
		if b.check(idx) != nil || !d.IsValid() {
			verr.add("difficulty", fmt.Sprintf("bad entry %d=%d", idx, d))
			break
		}
	}
	for idx := range b.Notes {
		if b.check(idx) != nil {
			verr.add("notes", fmt.Sprintf("index %d out of range", idx))
			break
		}
	}
	return verr.orNil()
}
