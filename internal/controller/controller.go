// Package controller turns pointer and keyboard input into board mutations
// and tracks the transient per-cell interaction state.
package controller

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brk3/streaks/internal/logger"
	"github.com/brk3/streaks/pkg/streak"
)

var (
	ErrNotToday = errors.New("only today's cell can be toggled")
	ErrClosed   = errors.New("controller closed")
	ErrNoMenu   = errors.New("no context menu open")
	ErrNoDetail = errors.New("no day detail open")
)

const DefaultCelebration = 1200 * time.Millisecond

type CellState int

const (
	Idle CellState = iota
	Hovered
	Focused
	Celebrating
)

func (s CellState) String() string {
	switch s {
	case Hovered:
		return "hovered"
	case Focused:
		return "focused"
	case Celebrating:
		return "celebrating"
	default:
		return "idle"
	}
}

type Key int

const (
	KeyLeft Key = iota + 1
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyEnter
	KeyEscape
)

// Action is an entry of the cell context menu.
type Action int

const (
	ActionNote Action = iota + 1
	ActionToggle
)

type Options struct {
	Hover        bool
	Sound        bool
	CelebrateFor time.Duration
	Now          func() time.Time
	Scheduler    Scheduler
	Effects      Effects
}

// Detail is the staged state of the day detail editor.
type Detail struct {
	Idx        int
	Note       string
	Difficulty streak.Difficulty
}

type Controller struct {
	store streak.Store
	opts  Options
	sub   *streak.Subscription

	mu       sync.Mutex
	hover    int
	focus    int
	menu     int
	detail   *Detail
	original Detail

	// celebrations are touched from store events and timer goroutines, so
	// they have their own lock. Lock order is mu then celebMu.
	celebMu     sync.Mutex
	celebrating map[int]celebration
	gen         int

	closed atomic.Bool
}

type celebration struct {
	gen   int
	timer Timer
}

func New(store streak.Store, opts Options) *Controller {
	if opts.CelebrateFor <= 0 {
		opts.CelebrateFor = DefaultCelebration
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Scheduler == nil {
		opts.Scheduler = realScheduler{}
	}
	if opts.Effects == nil {
		opts.Effects = noEffects{}
	}
	c := &Controller{
		store:       store,
		opts:        opts,
		celebrating: map[int]celebration{},
	}
	c.sub = store.Subscribe(c.onEvent)
	return c
}

func (c *Controller) onEvent(e streak.Event) {
	if c.closed.Load() || e.Kind != streak.DayCompleted || e.Frozen {
		return
	}
	c.celebrate(e.Idx)
	c.opts.Effects.Burst(e.Idx)
	if c.opts.Sound {
		c.opts.Effects.Chime()
	}
}

func (c *Controller) celebrate(idx int) {
	c.celebMu.Lock()
	defer c.celebMu.Unlock()

	if prev, ok := c.celebrating[idx]; ok {
		prev.timer.Stop()
	}
	c.gen++
	gen := c.gen
	t := c.opts.Scheduler.AfterFunc(c.opts.CelebrateFor, func() {
		c.celebMu.Lock()
		defer c.celebMu.Unlock()
		if cur, ok := c.celebrating[idx]; ok && cur.gen == gen {
			delete(c.celebrating, idx)
		}
	})
	c.celebrating[idx] = celebration{gen: gen, timer: t}
}

// Close cancels pending celebration timers and detaches from the store.
func (c *Controller) Close() {
	if c.closed.Swap(true) {
		return
	}
	c.sub.Close()

	c.celebMu.Lock()
	for idx, cel := range c.celebrating {
		cel.timer.Stop()
		delete(c.celebrating, idx)
	}
	c.celebMu.Unlock()
}

func (c *Controller) Board() *streak.Board {
	return c.store.Board()
}

// Today returns today's index, or 0 when today has no cell.
func (c *Controller) Today() int {
	idx, ok := streak.TodayIndex(c.store.Board(), c.opts.Now())
	if !ok {
		return 0
	}
	return idx
}

func (c *Controller) checkIdx(idx int) error {
	if days := c.store.Board().Days; idx < 1 || idx > days {
		return fmt.Errorf("%w: %d not in [1, %d]", streak.ErrIndexOutOfRange, idx, days)
	}
	return nil
}

// State returns the interaction state of idx.
func (c *Controller) State(idx int) CellState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.celebMu.Lock()
	_, celebrating := c.celebrating[idx]
	c.celebMu.Unlock()

	switch {
	case celebrating:
		return Celebrating
	case idx == c.focus:
		return Focused
	case idx == c.hover:
		return Hovered
	default:
		return Idle
	}
}

// Celebrating returns the indices currently celebrating.
func (c *Controller) Celebrating() streak.IndexSet {
	c.celebMu.Lock()
	defer c.celebMu.Unlock()
	out := make(streak.IndexSet, len(c.celebrating))
	for idx := range c.celebrating {
		out.Add(idx)
	}
	return out
}

func (c *Controller) Focused() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focus
}

func (c *Controller) Hovered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hover
}

func (c *Controller) PointerEnter(idx int) {
	if c.closed.Load() || !c.opts.Hover {
		return
	}
	c.mu.Lock()
	c.hover = idx
	c.mu.Unlock()
}

func (c *Controller) PointerLeave(idx int) {
	c.mu.Lock()
	if c.hover == idx {
		c.hover = 0
	}
	c.mu.Unlock()
}

// Click toggles idx when it is today's cell. It reports whether the day is
// completed afterwards.
func (c *Controller) Click(idx int) (bool, error) {
	if c.closed.Load() {
		return false, ErrClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.click(idx)
}

func (c *Controller) click(idx int) (bool, error) {
	today := c.Today()
	if today == 0 || idx != today {
		return false, ErrNotToday
	}
	done, err := c.store.Toggle(idx)
	if err != nil {
		logger.Error("Toggle failed", "idx", idx, "error", err)
		return false, err
	}
	logger.Debug("Toggled day", "idx", idx, "completed", done)
	return done, nil
}

// Focus moves keyboard focus to idx.
func (c *Controller) Focus(idx int) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if err := c.checkIdx(idx); err != nil {
		return err
	}
	c.mu.Lock()
	c.focus = idx
	c.mu.Unlock()
	return nil
}

// Key handles a keyboard event. Arrows move focus by one day horizontally
// and one week vertically, clamped to the board. The first arrow press
// focuses today, or day 1 when today is off the board.
func (c *Controller) Key(k Key) error {
	if c.closed.Load() {
		return ErrClosed
	}
	days := c.store.Board().Days

	c.mu.Lock()
	defer c.mu.Unlock()

	var delta int
	switch k {
	case KeyLeft:
		delta = -1
	case KeyRight:
		delta = 1
	case KeyUp:
		delta = -7
	case KeyDown:
		delta = 7
	case KeySpace, KeyEnter:
		if c.focus == 0 || c.focus != c.Today() {
			return nil
		}
		_, err := c.click(c.focus)
		return err
	case KeyEscape:
		c.focus = 0
		c.menu = 0
		return nil
	default:
		return nil
	}

	if c.focus == 0 {
		c.focus = max(c.Today(), 1)
		return nil
	}
	c.focus = min(max(c.focus+delta, 1), days)
	return nil
}

// ContextMenu opens the cell menu on idx.
func (c *Controller) ContextMenu(idx int) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if err := c.checkIdx(idx); err != nil {
		return err
	}
	c.mu.Lock()
	c.menu = idx
	c.mu.Unlock()
	return nil
}

// MenuOpen returns the index the context menu is open on, or 0.
func (c *Controller) MenuOpen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.menu
}

// ContextAction runs a menu entry and closes the menu. Toggling from the
// menu follows the same today-only rule as a click.
func (c *Controller) ContextAction(a Action) error {
	if c.closed.Load() {
		return ErrClosed
	}
	c.mu.Lock()
	idx := c.menu
	if idx == 0 {
		c.mu.Unlock()
		return ErrNoMenu
	}
	c.menu = 0

	switch a {
	case ActionToggle:
		defer c.mu.Unlock()
		_, err := c.click(idx)
		return err
	case ActionNote:
		c.mu.Unlock()
		return c.OpenDetail(idx)
	default:
		c.mu.Unlock()
		return fmt.Errorf("unknown menu action %d", a)
	}
}

func (c *Controller) OutsideClick() {
	c.mu.Lock()
	c.menu = 0
	c.mu.Unlock()
}

// OpenDetail starts editing idx. It is allowed for any day.
func (c *Controller) OpenDetail(idx int) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if err := c.checkIdx(idx); err != nil {
		return err
	}
	b := c.store.Board()
	d := Detail{Idx: idx, Note: b.Notes[idx], Difficulty: b.Difficulty[idx]}

	c.mu.Lock()
	c.detail = &d
	c.original = d
	c.mu.Unlock()
	return nil
}

// Detail returns the staged edits, or false when the editor is closed.
func (c *Controller) Detail() (Detail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return Detail{}, false
	}
	return *c.detail, true
}

func (c *Controller) StageNote(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return ErrNoDetail
	}
	c.detail.Note = text
	return nil
}

func (c *Controller) StageDifficulty(d streak.Difficulty) error {
	if !d.IsValid() {
		return fmt.Errorf("%w: got %d", streak.ErrInvalidDifficulty, d)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return ErrNoDetail
	}
	c.detail.Difficulty = d
	return nil
}

// SaveDetail commits staged edits that differ from the values the editor
// opened with, then closes the editor. A staged difficulty is also committed
// when the day is not completed, since rating a day completes it.
func (c *Controller) SaveDetail() error {
	if c.closed.Load() {
		return ErrClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return ErrNoDetail
	}
	d, orig := *c.detail, c.original

	if d.Note != orig.Note {
		if err := c.store.SetNote(d.Idx, d.Note); err != nil {
			return err
		}
	}
	if d.Difficulty != 0 && (d.Difficulty != orig.Difficulty || !c.store.Board().Completed.Has(d.Idx)) {
		if err := c.store.SetDifficulty(d.Idx, d.Difficulty); err != nil {
			return err
		}
	}
	logger.Debug("Saved day detail", "idx", d.Idx, "difficulty", d.Difficulty.String())
	c.detail = nil
	return nil
}

func (c *Controller) CancelDetail() {
	c.mu.Lock()
	c.detail = nil
	c.mu.Unlock()
}

// FreezeToday spends a freeze on today's cell.
func (c *Controller) FreezeToday() (bool, error) {
	if c.closed.Load() {
		return false, ErrClosed
	}
	today := c.Today()
	if today == 0 {
		return false, ErrNotToday
	}
	frozen, err := c.store.FreezeToday(today)
	if err != nil {
		return false, err
	}
	logger.Debug("Freeze requested", "idx", today, "frozen", frozen)
	return frozen, nil
}
