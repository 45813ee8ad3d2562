package server

import (
	"time"

	"github.com/brk3/streaks/pkg/streak"
)

type BoardListResponse struct {
	Boards []BoardSummary `json:"boards"`
}

type BoardSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Days        int    `json:"days"`
	Completed   int    `json:"completed"`
	Current     int    `json:"current_streak"`
	Longest     int    `json:"longest_streak"`
	FreezesLeft int    `json:"freezes_left"`
}

type BoardGetResponse struct {
	Board *streak.Board `json:"board"`
	Stats streak.Stats  `json:"stats"`
	Today int           `json:"today"`
}

type LayoutResponse struct {
	BoardID string             `json:"board_id"`
	Layout  streak.Layout      `json:"layout"`
	Shape   streak.Shape       `json:"shape"`
	Blocks  []streak.BlockView `json:"blocks"`
}

type DayResponse struct {
	BoardID   string       `json:"board_id"`
	Idx       int          `json:"idx"`
	Completed bool         `json:"completed"`
	Changed   bool         `json:"changed"`
	Stats     streak.Stats `json:"stats"`
}

type CreateBoardRequest struct {
	Title        string `json:"title"`
	Days         int    `json:"days"`
	StartDate    string `json:"start_date"`
	WeekdaysOnly bool   `json:"weekdays_only"`
	Layout       string `json:"layout"`
	Shape        string `json:"shape"`
}

type NoteRequest struct {
	Note string `json:"note"`
}

type DifficultyRequest struct {
	Difficulty int `json:"difficulty"`
}

func summarize(b *streak.Board, now time.Time) BoardSummary {
	st := b.Stats(now)
	return BoardSummary{
		ID:          b.ID,
		Title:       b.Title,
		Days:        b.Days,
		Completed:   b.Completed.Len(),
		Current:     st.Current,
		Longest:     st.Max,
		FreezesLeft: b.FreezesLeft,
	}
}
