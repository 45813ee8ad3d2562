package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brk3/streaks/internal/controller"
	"github.com/brk3/streaks/internal/ui"
	"github.com/brk3/streaks/pkg/streak"
)

const redrawEvery = 100 * time.Millisecond

type mode int

const (
	modeBoard mode = iota
	modeMenu
	modeDetail
)

type boardModel struct {
	ctrl  *controller.Controller
	fx    *recorder
	now   func() time.Time
	theme ui.Theme

	board  *streak.Board
	layout streak.Layout
	mode   mode
	note   textinput.Model

	lastLog string
	width   int
}

type redrawMsg struct{}

func newBoardModel(store streak.Store, opts controller.Options, theme ui.Theme) boardModel {
	fx := &recorder{}
	opts.Effects = fx
	if opts.Now == nil {
		opts.Now = time.Now
	}

	note := textinput.New()
	note.Placeholder = "note"
	note.CharLimit = 280

	b := store.Board()
	return boardModel{
		ctrl:    controller.New(store, opts),
		fx:      fx,
		now:     opts.Now,
		theme:   theme,
		board:   b,
		layout:  b.Layout,
		note:    note,
		lastLog: "Arrows move, space toggles today.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func redraw() tea.Cmd {
	return tea.Tick(redrawEvery, func(time.Time) tea.Msg { return redrawMsg{} })
}

// settle refreshes the cached board and keeps redrawing while any cell is
// still celebrating.
func (m boardModel) settle(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.board = m.ctrl.Board()
	bursts, chimes := m.fx.drain()
	if len(bursts) > 0 {
		msg := fmt.Sprintf("Day %d done! Streak: %d", bursts[len(bursts)-1], m.board.Stats(m.now()).Current)
		if chimes > 0 {
			msg += " ♪"
		}
		m.lastLog = msg
	}
	if m.ctrl.Celebrating().Len() > 0 {
		return m, tea.Batch(cmd, redraw())
	}
	return m, cmd
}

func (m boardModel) fail(err error) boardModel {
	switch {
	case errors.Is(err, controller.ErrNotToday):
		m.lastLog = "Only today's cell can be toggled."
	default:
		m.lastLog = "Error: " + err.Error()
	}
	return m
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case redrawMsg:
		return m.settle(nil)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		switch m.mode {
		case modeMenu:
			m = m.menuKey(msg)
		case modeDetail:
			m, cmd = m.detailKey(msg)
		default:
			if key.Matches(msg, keys.Quit) {
				return m, tea.Quit
			}
			m, cmd = m.boardKey(msg)
		}
		return m.settle(cmd)
	}
	return m, nil
}

var arrows = []struct {
	binding *key.Binding
	key     controller.Key
}{
	{&keys.Left, controller.KeyLeft},
	{&keys.Right, controller.KeyRight},
	{&keys.Up, controller.KeyUp},
	{&keys.Down, controller.KeyDown},
}

func (m boardModel) boardKey(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	for _, a := range arrows {
		if key.Matches(msg, *a.binding) {
			if err := m.ctrl.Key(a.key); err != nil {
				return m.fail(err), nil
			}
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, keys.Toggle):
		focus := m.ctrl.Focused()
		if focus == 0 {
			return m, nil
		}
		if focus != m.ctrl.Today() {
			return m.fail(controller.ErrNotToday), nil
		}
		if err := m.ctrl.Key(controller.KeySpace); err != nil {
			return m.fail(err), nil
		}
	case key.Matches(msg, keys.Escape):
		_ = m.ctrl.Key(controller.KeyEscape)
	case key.Matches(msg, keys.Menu):
		if err := m.ctrl.ContextMenu(m.target()); err != nil {
			return m.fail(err), nil
		}
		m.mode = modeMenu
		m.lastLog = helpLine(keys.MenuToggle, keys.MenuNote, keys.Escape)
	case key.Matches(msg, keys.Detail):
		return m.openDetail(m.target())
	case key.Matches(msg, keys.Freeze):
		frozen, err := m.ctrl.FreezeToday()
		if err != nil {
			return m.fail(err), nil
		}
		if frozen {
			m.lastLog = "Freeze used on today."
		} else {
			m.lastLog = "No freeze used."
		}
	case key.Matches(msg, keys.Rate):
		idx := m.target()
		d := streak.Difficulty(msg.Runes[0] - '0')
		if err := m.rate(idx, d); err != nil {
			return m.fail(err), nil
		}
		m.lastLog = fmt.Sprintf("Day %d rated %s.", idx, d)
	case key.Matches(msg, keys.Layout):
		m.layout = m.layout.Next()
		m.lastLog = "Layout: " + string(m.layout)
	}
	return m, nil
}

// target is the focused day, or today when nothing is focused.
func (m boardModel) target() int {
	if f := m.ctrl.Focused(); f != 0 {
		return f
	}
	return m.ctrl.Today()
}

func (m boardModel) rate(idx int, d streak.Difficulty) error {
	if err := m.ctrl.OpenDetail(idx); err != nil {
		return err
	}
	if err := m.ctrl.StageDifficulty(d); err != nil {
		m.ctrl.CancelDetail()
		return err
	}
	return m.ctrl.SaveDetail()
}

func (m boardModel) openDetail(idx int) (boardModel, tea.Cmd) {
	if err := m.ctrl.OpenDetail(idx); err != nil {
		return m.fail(err), nil
	}
	d, _ := m.ctrl.Detail()
	m.note.SetValue(d.Note)
	m.mode = modeDetail
	m.lastLog = helpLine(keys.Save, keys.Difficulty, keys.Escape)
	return m, m.note.Focus()
}

func (m boardModel) closeDetail() boardModel {
	m.note.Blur()
	m.note.Reset()
	m.mode = modeBoard
	return m
}

func (m boardModel) menuKey(msg tea.KeyMsg) boardModel {
	switch {
	case key.Matches(msg, keys.MenuToggle):
		m.mode = modeBoard
		if err := m.ctrl.ContextAction(controller.ActionToggle); err != nil {
			return m.fail(err)
		}
	case key.Matches(msg, keys.MenuNote):
		idx := m.ctrl.MenuOpen()
		if err := m.ctrl.ContextAction(controller.ActionNote); err != nil {
			m.mode = modeBoard
			return m.fail(err)
		}
		d, _ := m.ctrl.Detail()
		m.note.SetValue(d.Note)
		m.note.Focus()
		m.mode = modeDetail
		m.lastLog = fmt.Sprintf("Editing day %d. ", idx) + helpLine(keys.Save, keys.Difficulty, keys.Escape)
	case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Quit):
		m.ctrl.OutsideClick()
		m.mode = modeBoard
		m.lastLog = ""
	}
	return m
}

func (m boardModel) detailKey(msg tea.KeyMsg) (boardModel, tea.Cmd) {
	d, ok := m.ctrl.Detail()
	if !ok {
		return m.closeDetail(), nil
	}
	switch {
	case key.Matches(msg, keys.Escape):
		m.ctrl.CancelDetail()
		m = m.closeDetail()
		m.lastLog = "Discarded."
		return m, nil
	case key.Matches(msg, keys.Save):
		if err := m.ctrl.SaveDetail(); err != nil {
			return m.fail(err), nil
		}
		m = m.closeDetail()
		m.lastLog = fmt.Sprintf("Saved day %d.", d.Idx)
		return m, nil
	case key.Matches(msg, keys.Difficulty):
		next := d.Difficulty%streak.DifficultyExtreme + 1
		_ = m.ctrl.StageDifficulty(next)
		return m, nil
	}

	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	_ = m.ctrl.StageNote(m.note.Value())
	return m, cmd
}

func (m boardModel) View() string {
	marks := ui.Marks{
		Focus:       m.ctrl.Focused(),
		Hover:       m.ctrl.Hovered(),
		Celebrating: m.ctrl.Celebrating(),
	}
	now := m.now()

	var out []string
	out = append(out, ui.Board(m.board.Title, m.board.Shape, ui.WeekHeader(m.layout, m.board.WeekdaysOnly), m.board.View(m.layout, now), marks, m.theme))
	out = append(out, ui.Stats(m.board.Stats(now), m.board.Completed.Len(), m.board.Days, m.board.FreezesLeft, m.theme))

	switch m.mode {
	case modeMenu:
		out = append(out, ui.Panel(m.theme, fmt.Sprintf("Day %d", m.ctrl.MenuOpen()), helpLine(keys.MenuToggle, keys.MenuNote)))
	case modeDetail:
		if d, ok := m.ctrl.Detail(); ok {
			st := m.theme.Styles()
			body := strings.Join([]string{
				m.note.View(),
				ui.LabelValue(st, "difficulty", d.Difficulty.String()),
			}, "\n")
			out = append(out, ui.Panel(m.theme, fmt.Sprintf("Day %d (%s)", d.Idx, m.board.DateOf(d.Idx).Format(time.DateOnly)), body))
		}
	}

	help := helpLine(keys.Menu, keys.Detail, keys.Freeze, keys.Rate, keys.Layout, keys.Quit)
	out = append(out, "", m.lastLog, m.theme.Styles().Muted.Render(help))
	return strings.Join(out, "\n")
}
