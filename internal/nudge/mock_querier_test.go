package nudge

import (
	"context"

	"github.com/brk3/streaks/pkg/streak"
)

type mockQuerier struct {
	boards []*streak.Board
	err    error
}

func (f *mockQuerier) ListBoards(ctx context.Context) ([]*streak.Board, error) {
	return f.boards, f.err
}
