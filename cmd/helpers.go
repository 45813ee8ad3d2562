package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/internal/storage/bolt"
	"github.com/brk3/streaks/internal/storage/memory"
	"github.com/brk3/streaks/internal/storage/sqlite"
	"github.com/brk3/streaks/internal/ui"
	"github.com/brk3/streaks/pkg/streak"
)

func openStore() (storage.Store, error) {
	var (
		st  storage.Store
		err error
	)
	switch cfg.Storage {
	case "memory":
		return memory.New(), nil
	case "sqlite":
		st, err = sqlite.Open(cfg.DBPath)
	default:
		st, err = bolt.Open(cfg.DBPath)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBPath, err)
	}
	return st, nil
}

// withBoard opens the store, resolves ref and hands both to fn.
func withBoard(ref string, fn func(st storage.Store, b *streak.Board) error) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	b, err := storage.FindBoard(st, ref)
	if err != nil {
		return fmt.Errorf("%s: %w", ref, err)
	}
	return fn(st, b)
}

// parseDay accepts a day index, a YYYY-MM-DD date on the board, or "today".
func parseDay(b *streak.Board, arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" || arg == "today" {
		idx, ok := streak.TodayIndex(b, now())
		if !ok {
			return 0, fmt.Errorf("today is not on board %q", b.Title)
		}
		return idx, nil
	}
	if d, err := time.ParseInLocation(time.DateOnly, arg, time.Local); err == nil {
		idx, ok := streak.DateToIndex(b.StartDate, d, b.WeekdaysOnly)
		if !ok || idx > b.Days {
			return 0, fmt.Errorf("%s is not on board %q", arg, b.Title)
		}
		return idx, nil
	}
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("day must be an index, a YYYY-MM-DD date or \"today\": %q", arg)
	}
	return idx, nil
}

func theme() (ui.Theme, error) {
	return ui.ThemeFrom(cfg.Theme)
}
