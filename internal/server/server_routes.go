package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/brk3/streaks/internal/export"
	"github.com/brk3/streaks/internal/logger"
	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/pkg/streak"
	"github.com/brk3/streaks/pkg/versioninfo"
	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	if err := writeJSON(w, code, map[string]string{"error": msg}); err != nil {
		logger.Error("Failed to write error response", "error", err)
	}
}

// errorStatus maps engine and storage errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, streak.ErrIndexOutOfRange),
		errors.Is(err, streak.ErrInvalidDifficulty),
		errors.Is(err, streak.ErrInvalidConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, msg string, err error, args ...any) {
	code := errorStatus(err)
	args = append(args, "error", err)
	if code == http.StatusInternalServerError {
		logger.Error(msg, args...)
		writeError(w, code, "storage error")
		return
	}
	logger.Warn(msg, args...)
	writeError(w, code, err.Error())
}

func (s *Server) getVersionInfo(w http.ResponseWriter, _ *http.Request) {
	info := versioninfo.VersionInfo{
		Version:   versioninfo.Version,
		BuildDate: versioninfo.BuildDate,
	}
	if err := writeJSON(w, http.StatusOK, info); err != nil {
		logger.Error("Failed to serialize version info response", "error", err)
	}
}

func (s *Server) listBoards(w http.ResponseWriter, _ *http.Request) {
	boards, err := s.store.ListBoards()
	if err != nil {
		s.fail(w, "Failed to list boards", err)
		return
	}
	updateActiveBoards(len(boards))

	now := s.now()
	resp := BoardListResponse{Boards: make([]BoardSummary, 0, len(boards))}
	for _, b := range boards {
		resp.Boards = append(resp.Boards, summarize(b, now))
	}
	logger.Debug("Listed boards", "count", len(boards))
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize board list response", "error", err)
	}
}

func (s *Server) createBoard(w http.ResponseWriter, r *http.Request) {
	var req CreateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid JSON in create board request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	cfg := streak.BoardConfig{
		Title:        req.Title,
		Days:         req.Days,
		WeekdaysOnly: req.WeekdaysOnly,
		Layout:       streak.Layout(req.Layout),
		Shape:        streak.Shape(req.Shape),
	}
	if cfg.Layout == "" {
		cfg.Layout = streak.Layout(s.cfg.Board.Layout)
	}
	if cfg.Shape == "" {
		cfg.Shape = streak.Shape(s.cfg.Board.Shape)
	}
	if req.StartDate == "" {
		cfg.StartDate = streak.Day(s.now())
	} else {
		d, err := time.Parse(time.DateOnly, req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		cfg.StartDate = d
	}

	b, err := streak.NewBoard(cfg)
	if err != nil {
		s.fail(w, "Rejected board config", err)
		return
	}
	if err := s.store.PutBoard(b); err != nil {
		s.fail(w, "Failed to store board", err, "board_id", b.ID)
		return
	}
	logger.Info("Board created", "board_id", b.ID, "title", b.Title, "days", b.Days)

	if boards, err := s.store.ListBoards(); err != nil {
		logger.Warn("Failed to update active boards metric after create", "error", err)
	} else {
		updateActiveBoards(len(boards))
	}

	if err := writeJSON(w, http.StatusCreated, b); err != nil {
		logger.Error("Failed to serialize create board response", "board_id", b.ID, "error", err)
	}
}

func (s *Server) getBoard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "board_id")
	b, err := s.store.GetBoard(id)
	if err != nil {
		s.fail(w, "Failed to get board", err, "board_id", id)
		return
	}
	now := s.now()
	today, _ := streak.TodayIndex(b, now)
	resp := BoardGetResponse{Board: b, Stats: b.Stats(now), Today: today}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize get board response", "board_id", id, "error", err)
	}
}

func (s *Server) deleteBoard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "board_id")
	logger.Info("Deleting board", "board_id", id)
	if err := s.store.DeleteBoard(id); err != nil {
		s.fail(w, "Failed to delete board", err, "board_id", id)
		return
	}

	if boards, err := s.store.ListBoards(); err != nil {
		logger.Warn("Failed to update active boards metric after deletion", "error", err)
	} else {
		updateActiveBoards(len(boards))
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "board_id")
	b, err := s.store.GetBoard(id)
	if err != nil {
		s.fail(w, "Failed to get board for layout", err, "board_id", id)
		return
	}

	kind := b.Layout
	if q := r.URL.Query().Get("kind"); q != "" {
		if kind, err = streak.ParseLayout(q); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	resp := LayoutResponse{
		BoardID: b.ID,
		Layout:  kind,
		Shape:   b.Shape,
		Blocks:  b.View(kind, s.now()),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize layout response", "board_id", id, "error", err)
	}
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "board_id")
	b, err := s.store.GetBoard(id)
	if err != nil {
		s.fail(w, "Failed to get board for export", err, "board_id", id)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+b.ID+`.csv"`)
	if err := export.WriteCSV(w, b); err != nil {
		logger.Error("Failed to write CSV export", "board_id", id, "error", err)
	}
}

func dayIndex(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "idx"))
}

// mutate runs fn on the stored board inside one store transaction and
// replies with the day state afterwards.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, kind string, idx int, fn func(*streak.Board) (bool, error)) {
	id := chi.URLParam(r, "board_id")
	var changed bool
	b, err := s.store.UpdateBoard(id, func(b *streak.Board) error {
		var err error
		changed, err = fn(b)
		return err
	})
	if err != nil {
		s.fail(w, "Day mutation failed", err, "board_id", id, "kind", kind, "idx", idx)
		return
	}
	if changed {
		recordDayEvent(kind)
	}
	logger.Info("Day updated", "board_id", id, "kind", kind, "idx", idx, "changed", changed)

	resp := DayResponse{
		BoardID:   id,
		Idx:       idx,
		Completed: b.Completed.Has(idx),
		Changed:   changed,
		Stats:     b.Stats(s.now()),
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to serialize day response", "board_id", id, "error", err)
	}
}

func (s *Server) toggleDay(w http.ResponseWriter, r *http.Request) {
	idx, err := dayIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "day index must be an integer")
		return
	}
	s.mutate(w, r, "toggle", idx, func(b *streak.Board) (bool, error) {
		if _, err := b.Toggle(idx); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (s *Server) freezeToday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "board_id")
	b, err := s.store.GetBoard(id)
	if err != nil {
		s.fail(w, "Failed to get board for freeze", err, "board_id", id)
		return
	}
	today, ok := streak.TodayIndex(b, s.now())
	if !ok {
		writeError(w, http.StatusConflict, "today is not on this board")
		return
	}
	s.mutate(w, r, "freeze", today, func(b *streak.Board) (bool, error) {
		return b.FreezeToday(today)
	})
}

func (s *Server) setNote(w http.ResponseWriter, r *http.Request) {
	idx, err := dayIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "day index must be an integer")
		return
	}
	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	s.mutate(w, r, "note", idx, func(b *streak.Board) (bool, error) {
		changed := b.Notes[idx] != req.Note
		return changed, b.SetNote(idx, req.Note)
	})
}

func (s *Server) setDifficulty(w http.ResponseWriter, r *http.Request) {
	idx, err := dayIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "day index must be an integer")
		return
	}
	var req DifficultyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	s.mutate(w, r, "difficulty", idx, func(b *streak.Board) (bool, error) {
		if _, err := b.SetDifficulty(idx, streak.Difficulty(req.Difficulty)); err != nil {
			return false, err
		}
		return true, nil
	})
}
