package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/hexapawn-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameReader interface {
	GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error)
}

// Server exposes health, game lookup and stateless search over HTTP.
type Server struct {
	logger *slog.Logger
	games  gameReader
	search *searchHandler
}

func New(logger *slog.Logger, games gameReader, maxDepth int) *Server {
	logger = logger.With("component", "rest")

	return &Server{
		logger: logger,
		games:  games,
		search: &searchHandler{logger: logger, maxDepth: maxDepth},
	}
}

// Router builds the chi route tree.
func (that *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ping", NewPingHandler().PingHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/games/{playerID}", that.getGame)
		r.Post("/search", that.search.ServeHTTP)
	})

	return r
}

// Start serves until ctx is canceled, then shuts the server down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
