package storage

import (
	"errors"

	"github.com/brk3/streaks/pkg/streak"
)

var ErrNotFound = errors.New("board not found")

type Store interface {
	PutBoard(b *streak.Board) error
	GetBoard(id string) (*streak.Board, error)
	ListBoards() ([]*streak.Board, error)
	// UpdateBoard applies fn to the stored board atomically and saves the
	// result. Nothing is written when fn fails.
	UpdateBoard(id string, fn func(*streak.Board) error) (*streak.Board, error)
	DeleteBoard(id string) error
	Close() error
}

// FindBoard resolves ref as a board id, or failing that as a unique title.
func FindBoard(s Store, ref string) (*streak.Board, error) {
	b, err := s.GetBoard(ref)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return b, err
	}
	boards, err := s.ListBoards()
	if err != nil {
		return nil, err
	}
	var match *streak.Board
	for _, b := range boards {
		if b.Title == ref {
			if match != nil {
				return nil, errors.New("more than one board titled " + ref + ", use the id")
			}
			match = b
		}
	}
	if match == nil {
		return nil, ErrNotFound
	}
	return match, nil
}

type owner struct {
	store Store
	id    string
}

// Owner exposes one stored board as the authority behind a
// streak.ControlledStore, so every mutation is persisted as it happens.
func Owner(s Store, id string) streak.Owner {
	return &owner{store: s, id: id}
}

func (o *owner) Snapshot() (*streak.Board, error) {
	return o.store.GetBoard(o.id)
}

func (o *owner) Apply(fn func(*streak.Board) error) (*streak.Board, error) {
	return o.store.UpdateBoard(o.id, fn)
}
