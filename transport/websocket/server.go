package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/hexapawn-backend/internal/entity"
	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
	"github.com/rocketscienceinc/hexapawn-backend/internal/pkg"
)

const (
	sessionCookie   = "user_session"
	shutdownTimeout = 5 * time.Second
)

type gameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error)
	GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, move hexapawn.Move) (*entity.Game, error)
	EndGame(ctx context.Context, game *entity.Game) error
}

type handlerFunc func(ctx context.Context, msg *Message, c *client) error

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	sessionTTL  time.Duration

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameUseCase gameUseCase, sessionTTL time.Duration) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		sessionTTL:  sessionTTL,

		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handlerFunc{
		actionConnect:   server.handleConnect,
		actionGameNew:   server.handleNewGame,
		actionGameTurn:  server.handleGameTurn,
		actionGameLeave: server.handleGameLeave,
	}

	return server
}

// Router serves the websocket endpoint at /ws.
func (that *Server) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		that.serveWS(ctx, w, req)
	})

	return r
}

// Start - starts WebSocket server. It returns once ctx is canceled and the
// server has shut down.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Router(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveWS(ctx context.Context, w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	sessionID, cookie := that.sessionCookie(req)

	var header http.Header
	if cookie != nil {
		header = http.Header{"Set-Cookie": {cookie.String()}}
	}

	conn, err := that.upgrader.Upgrade(w, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established", "session", sessionID)

	c := &client{conn: conn, sessionID: sessionID}
	if err = that.handleMessages(ctx, c); err != nil {
		log.Info("connection closed", "session", sessionID, "reason", err)
	}
}

// sessionCookie returns the session id carried by the request. A fresh
// cookie is returned when the request has none.
func (that *Server) sessionCookie(req *http.Request) (string, *http.Cookie) {
	if cookie, err := req.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	cookie := &http.Cookie{
		Name:     sessionCookie,
		Value:    pkg.GenerateNewSessionID(),
		Expires:  time.Now().Add(that.sessionTTL),
		Path:     "/ws",
		HttpOnly: true,
	}

	return cookie.Value, cookie
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := c.conn.ReadJSON(&message); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				log.Warn("failed to unmarshal message", "error", err)
				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err := c.sendError(message.Action, "unknown action"); err != nil {
				return err
			}

			continue
		}

		if err := handler(ctx, &message, c); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}
