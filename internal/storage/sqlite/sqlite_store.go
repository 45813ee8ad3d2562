// Package sqlite stores boards in a SQLite database, one row per board and
// one row per day that carries any state.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/pkg/streak"

	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS boards (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		days INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		weekdays_only INTEGER DEFAULT 0,
		layout TEXT NOT NULL,
		shape TEXT NOT NULL,
		freezes_left INTEGER NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS days (
		board_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		completed INTEGER DEFAULT 0,
		frozen INTEGER DEFAULT 0,
		heat INTEGER DEFAULT 0,
		difficulty INTEGER DEFAULT 0,
		note TEXT DEFAULT '',
		PRIMARY KEY (board_id, idx),
		FOREIGN KEY(board_id) REFERENCES boards(id)
	);`,
}

type Store struct {
	db *sql.DB
}

// Open opens (and creates if missing) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer at a time; sqlite locks the whole file anyway
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	ctx := context.Background()
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

func readBoard(q querier, id string) (*streak.Board, error) {
	var (
		b        streak.Board
		start    string
		weekdays bool
	)
	row := q.QueryRow(`SELECT id, title, days, start_date, weekdays_only, layout, shape, freezes_left
		FROM boards WHERE id = ?`, id)
	if err := row.Scan(&b.ID, &b.Title, &b.Days, &start, &weekdays, &b.Layout, &b.Shape, &b.FreezesLeft); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("board get: %w", err)
	}
	d, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return nil, fmt.Errorf("board %s start_date: %w", id, err)
	}
	b.StartDate = d
	b.WeekdaysOnly = weekdays
	b.Completed = streak.IndexSet{}
	b.Freezes = streak.IndexSet{}
	b.Heat = map[int]int{}
	b.Difficulty = map[int]streak.Difficulty{}
	b.Notes = map[int]string{}

	rows, err := q.Query(`SELECT idx, completed, frozen, heat, difficulty, note FROM days WHERE board_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("days get: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			idx, heat, difficulty int
			completed, frozen     bool
			note                  string
		)
		if err := rows.Scan(&idx, &completed, &frozen, &heat, &difficulty, &note); err != nil {
			return nil, fmt.Errorf("days scan: %w", err)
		}
		if completed {
			b.Completed.Add(idx)
		}
		if frozen {
			b.Freezes.Add(idx)
		}
		if heat > 0 {
			b.Heat[idx] = heat
		}
		if difficulty > 0 {
			b.Difficulty[idx] = streak.Difficulty(difficulty)
		}
		if note != "" {
			b.Notes[idx] = note
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("stored board %s: %w", id, err)
	}
	return &b, nil
}

func writeBoard(tx *sql.Tx, b *streak.Board) error {
	_, err := tx.Exec(`
		INSERT INTO boards (id, title, days, start_date, weekdays_only, layout, shape, freezes_left, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title, days = excluded.days, start_date = excluded.start_date,
			weekdays_only = excluded.weekdays_only, layout = excluded.layout, shape = excluded.shape,
			freezes_left = excluded.freezes_left, updated_at = CURRENT_TIMESTAMP
	`, b.ID, b.Title, b.Days, b.StartDate.Format(time.DateOnly), b.WeekdaysOnly, string(b.Layout), string(b.Shape), b.FreezesLeft)
	if err != nil {
		return fmt.Errorf("board upsert: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM days WHERE board_id = ?`, b.ID); err != nil {
		return fmt.Errorf("days reset: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO days (board_id, idx, completed, frozen, heat, difficulty, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, idx := range dayIndices(b) {
		_, err := stmt.Exec(b.ID, idx, b.Completed.Has(idx), b.Freezes.Has(idx),
			b.Heat[idx], int(b.Difficulty[idx]), b.Notes[idx])
		if err != nil {
			return fmt.Errorf("day %d insert: %w", idx, err)
		}
	}
	return nil
}

// dayIndices lists every index with some stored state.
func dayIndices(b *streak.Board) []int {
	set := b.Completed.Clone()
	for idx := range b.Heat {
		set.Add(idx)
	}
	for idx := range b.Difficulty {
		set.Add(idx)
	}
	for idx := range b.Notes {
		set.Add(idx)
	}
	return set.Sorted()
}

func (s *Store) PutBoard(b *streak.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return s.withTx(func(tx *sql.Tx) error {
		return writeBoard(tx, b)
	})
}

func (s *Store) GetBoard(id string) (*streak.Board, error) {
	return readBoard(s.db, id)
}

func (s *Store) ListBoards() ([]*streak.Board, error) {
	rows, err := s.db.Query(`SELECT id FROM boards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("boards list: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]*streak.Board, 0, len(ids))
	for _, id := range ids {
		b, err := readBoard(s.db, id)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *Store) UpdateBoard(id string, fn func(*streak.Board) error) (*streak.Board, error) {
	var out *streak.Board
	err := s.withTx(func(tx *sql.Tx) error {
		b, err := readBoard(tx, id)
		if err != nil {
			return err
		}
		if err := fn(b); err != nil {
			return err
		}
		if err := b.Validate(); err != nil {
			return err
		}
		if err := writeBoard(tx, b); err != nil {
			return err
		}
		out = b.Clone()
		return nil
	})
	return out, err
}

func (s *Store) DeleteBoard(id string) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM boards WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("board delete: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return storage.ErrNotFound
		}
		_, err = tx.Exec(`DELETE FROM days WHERE board_id = ?`, id)
		return err
	})
}

var _ storage.Store = (*Store)(nil)
