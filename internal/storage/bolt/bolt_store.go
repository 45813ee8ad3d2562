package bolt

import (
	"encoding/json"
	"fmt"

	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/pkg/streak"
	"go.etcd.io/bbolt"
)

const boardsBucket = "boards"

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boardsBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func decodeBoard(v []byte) (*streak.Board, error) {
	var b streak.Board
	if err := json.Unmarshal(v, &b); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("stored board %s: %w", b.ID, err)
	}
	return b.Clone(), nil
}

func putBoard(bucket *bbolt.Bucket, b *streak.Board) error {
	val, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return bucket.Put([]byte(b.ID), val)
}

func (s *Store) PutBoard(b *streak.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putBoard(tx.Bucket([]byte(boardsBucket)), b)
	})
}

func (s *Store) GetBoard(id string) (*streak.Board, error) {
	var out *streak.Board
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boardsBucket)).Get([]byte(id))
		if v == nil {
			return storage.ErrNotFound
		}
		var err error
		out, err = decodeBoard(v)
		return err
	})
	return out, err
}

func (s *Store) ListBoards() ([]*streak.Board, error) {
	var out []*streak.Board
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boardsBucket)).ForEach(func(_, v []byte) error {
			b, err := decodeBoard(v)
			if err != nil {
				return err
			}
			out = append(out, b)
			return nil
		})
	})
	return out, err
}

func (s *Store) UpdateBoard(id string, fn func(*streak.Board) error) (*streak.Board, error) {
	var out *streak.Board
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boardsBucket))
		v := bucket.Get([]byte(id))
		if v == nil {
			return storage.ErrNotFound
		}
		b, err := decodeBoard(v)
		if err != nil {
			return err
		}
		if err := fn(b); err != nil {
			return err
		}
		if err := putBoard(bucket, b); err != nil {
			return err
		}
		out = b.Clone()
		return nil
	})
	return out, err
}

func (s *Store) DeleteBoard(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boardsBucket))
		if bucket.Get([]byte(id)) == nil {
			return storage.ErrNotFound
		}
		return bucket.Delete([]byte(id))
	})
}

var _ storage.Store = (*Store)(nil)
