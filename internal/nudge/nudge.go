// Package nudge reminds the user about streaks that will break at midnight
// unless today is completed.
package nudge

import (
	"context"
	"fmt"
	"time"

	"github.com/brk3/streaks/internal/logger"
	"github.com/brk3/streaks/pkg/streak"
)

type Notifier interface {
	SendNudge(titles []string, hoursLeft int) error
}

// BoardsAtRisk returns the titles of boards whose run ends yesterday and
// whose today cell is still empty.
func BoardsAtRisk(ctx context.Context, q Querier, now time.Time) ([]string, error) {
	boards, err := q.ListBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	var titles []string
	for _, b := range boards {
		today, ok := streak.TodayIndex(b, now)
		if !ok || b.Completed.Has(today) {
			continue
		}
		if run := streak.RunEndingAt(b.Completed, today-1); run > 0 {
			logger.Debug("Streak at risk", "board_id", b.ID, "run", run)
			titles = append(titles, b.Title)
		}
	}
	return titles, nil
}

// HoursLeft is the number of whole hours until midnight in now's location.
func HoursLeft(now time.Time) int {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return int(midnight.Sub(now) / time.Hour)
}

// Nudge sends one notification listing every at-risk board once fewer than
// threshold hours remain in the day. It returns the titles it sent.
func Nudge(ctx context.Context, q Querier, n Notifier, now time.Time, threshold int) ([]string, error) {
	hours := HoursLeft(now)
	if hours >= threshold {
		logger.Debug("Outside nudge window", "hours_left", hours, "threshold", threshold)
		return nil, nil
	}

	titles, err := BoardsAtRisk(ctx, q, now)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		logger.Info("No streaks at risk")
		return nil, nil
	}

	if err := n.SendNudge(titles, hours); err != nil {
		logger.ErrorContext(ctx, "Failed to send nudge", "error", err)
		return nil, fmt.Errorf("send nudge: %w", err)
	}
	logger.InfoContext(ctx, "Nudge sent", "boards", len(titles), "hours_left", hours)
	return titles, nil
}
