package server

import (
	"net/http"
	"time"

	"github.com/brk3/streaks/internal/config"
	"github.com/brk3/streaks/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	cfg   *config.Config
	store storage.Store
	now   func() time.Time
}

func New(cfg *config.Config, store storage.Store) *Server {
	return &Server{cfg: cfg, store: store, now: time.Now}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	r.Get("/version", s.getVersionInfo)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/boards", func(r chi.Router) {
		r.Get("/", s.listBoards)
		r.Post("/", s.createBoard)
		r.Route("/{board_id}", func(r chi.Router) {
			r.Get("/", s.getBoard)
			r.Delete("/", s.deleteBoard)
			r.Get("/layout", s.getLayout)
			r.Get("/export.csv", s.exportCSV)
			r.Post("/freeze", s.freezeToday)
			r.Post("/days/{idx}/toggle", s.toggleDay)
			r.Put("/days/{idx}/note", s.setNote)
			r.Put("/days/{idx}/difficulty", s.setDifficulty)
		})
	})
	return r
}
