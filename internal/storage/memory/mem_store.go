// Package memory keeps boards in process memory only. Nothing survives a
// restart.
package memory

import (
	"slices"
	"strings"
	"sync"

	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/pkg/streak"
)

type Store struct {
	mu     sync.RWMutex
	boards map[string]*streak.Board
}

func New() *Store {
	return &Store{boards: map[string]*streak.Board{}}
}

func (m *Store) PutBoard(b *streak.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.boards[b.ID] = b.Clone()
	return nil
}

func (m *Store) GetBoard(id string) (*streak.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.boards[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return b.Clone(), nil
}

func (m *Store) ListBoards() ([]*streak.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*streak.Board, 0, len(m.boards))
	for _, b := range m.boards {
		out = append(out, b.Clone())
	}
	// bolt iterates in key order; match it
	slices.SortFunc(out, func(a, b *streak.Board) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (m *Store) UpdateBoard(id string, fn func(*streak.Board) error) (*streak.Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.boards[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	work := cur.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	m.boards[id] = work
	return work.Clone(), nil
}

func (m *Store) DeleteBoard(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.boards[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.boards, id)
	return nil
}

func (m *Store) Close() error {
	return nil
}

var _ storage.Store = (*Store)(nil)
