// Package tui is the interactive terminal board.
package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brk3/streaks/internal/controller"
	"github.com/brk3/streaks/internal/ui"
	"github.com/brk3/streaks/pkg/streak"
)

// RunBoard runs the board until the user quits or ctx is cancelled.
func RunBoard(ctx context.Context, store streak.Store, opts controller.Options, theme ui.Theme, out io.Writer) error {
	m := newBoardModel(store, opts, theme)
	defer m.ctrl.Close()

	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
