package nudge

import (
	"context"

	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/pkg/streak"
)

type Querier interface {
	ListBoards(ctx context.Context) ([]*streak.Board, error)
}

// StoreQuerier reads boards straight from a local store.
type StoreQuerier struct {
	Store storage.Store
}

func (q StoreQuerier) ListBoards(ctx context.Context) ([]*streak.Board, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return q.Store.ListBoards()
}
