package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/hexapawn-backend/internal/apperror"
	"github.com/rocketscienceinc/hexapawn-backend/internal/config"
	"github.com/rocketscienceinc/hexapawn-backend/internal/entity"
	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
	"github.com/rocketscienceinc/hexapawn-backend/internal/service"
	"github.com/rocketscienceinc/hexapawn-backend/internal/usecase"
)

type memoryStore[T any] struct {
	mu    sync.Mutex
	items map[string]*T
}

func (that *memoryStore[T]) put(id string, item *T) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.items == nil {
		that.items = make(map[string]*T)
	}
	that.items[id] = item
}

func (that *memoryStore[T]) get(id string) (*T, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	item, ok := that.items[id]
	if !ok {
		return nil, fmt.Errorf("%s %w", id, apperror.ErrNotFound)
	}

	return item, nil
}

type memoryPlayers struct{ memoryStore[entity.Player] }

func (that *memoryPlayers) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.put(player.ID, player)
	return nil
}

func (that *memoryPlayers) GetByID(_ context.Context, id string) (*entity.Player, error) {
	return that.get(id)
}

type memoryGames struct{ memoryStore[entity.Game] }

func (that *memoryGames) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.put(game.ID, game)
	return nil
}

func (that *memoryGames) GetByID(_ context.Context, id string) (*entity.Game, error) {
	return that.get(id)
}

func (that *memoryGames) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.items, id)
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	bot, err := service.NewBotService(logger, config.Search{Depth: 3, Evaluator: "material"})
	require.NoError(t, err)

	manager := usecase.NewGameManager(logger, &memoryPlayers{}, &memoryGames{}, bot)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ts := httptest.NewServer(New(logger, manager, time.Hour).Router(ctx))
	t.Cleanup(ts.Close)

	return ts
}

func dial(t *testing.T, ts *httptest.Server, header http.Header) (*websocket.Conn, *http.Response) {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn, resp
}

func roundTrip(t *testing.T, conn *websocket.Conn, action string, payload any) (string, Payload) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: raw}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var resp Message
	require.NoError(t, conn.ReadJSON(&resp))

	var got Payload
	require.NoError(t, json.Unmarshal(resp.Payload, &got))

	return resp.Action, got
}

func mv(fromRow, fromCol, toRow, toCol int) *hexapawn.Move {
	return &hexapawn.Move{
		From: hexapawn.Position{Row: fromRow, Col: fromCol},
		To:   hexapawn.Position{Row: toRow, Col: toCol},
	}
}

func TestServer_Session(t *testing.T) {
	ts := newTestServer(t)

	t.Run("Issues a session cookie and connects a player under it", func(t *testing.T) {
		conn, resp := dial(t, ts, nil)

		var session string
		for _, cookie := range resp.Cookies() {
			if cookie.Name == sessionCookie {
				session = cookie.Value
			}
		}
		require.NotEmpty(t, session)

		action, got := roundTrip(t, conn, actionConnect, Payload{})

		assert.Equal(t, actionConnect, action)
		require.NotNil(t, got.Player)
		assert.Equal(t, session, got.Player.ID)
		assert.Equal(t, hexapawn.White, got.Player.Side)
	})

	t.Run("Reuses the session cookie sent by the client", func(t *testing.T) {
		conn, resp := dial(t, ts, http.Header{"Cookie": {sessionCookie + "=abc"}})
		assert.Empty(t, resp.Cookies())

		_, got := roundTrip(t, conn, actionConnect, Payload{})

		require.NotNil(t, got.Player)
		assert.Equal(t, "abc", got.Player.ID)
	})

	t.Run("Answers unknown actions with an error", func(t *testing.T) {
		conn, _ := dial(t, ts, nil)

		action, got := roundTrip(t, conn, "game:join", Payload{})

		assert.Equal(t, "game:join", action)
		assert.Equal(t, "unknown action", got.Error)
	})
}

func TestServer_PlayerMustMatchSession(t *testing.T) {
	ts := newTestServer(t)

	// Given: a player with a game in progress
	owner, _ := dial(t, ts, http.Header{"Cookie": {sessionCookie + "=owner"}})
	_, started := roundTrip(t, owner, actionGameNew, Payload{Player: &entity.Player{ID: "owner"}})
	require.NotNil(t, started.Game)

	// When: another session names that player
	intruder, _ := dial(t, ts, http.Header{"Cookie": {sessionCookie + "=intruder"}})
	victim := &entity.Player{ID: "owner"}

	tests := []struct {
		action  string
		payload Payload
	}{
		{action: actionConnect, payload: Payload{Player: victim}},
		{action: actionGameNew, payload: Payload{Player: victim}},
		{action: actionGameTurn, payload: Payload{Player: victim, Move: mv(2, 0, 1, 0)}},
		{action: actionGameLeave, payload: Payload{Player: victim}},
	}

	// Then: every action is refused
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			_, got := roundTrip(t, intruder, tt.action, tt.payload)

			assert.Equal(t, errSessionMismatch, got.Error)
			assert.Nil(t, got.Game)
		})
	}

	// And: the owner's game is untouched
	_, current := roundTrip(t, owner, actionGameNew, Payload{Player: &entity.Player{ID: "owner"}})
	require.NotNil(t, current.Game)
	assert.Equal(t, started.Game.ID, current.Game.ID)
	assert.Equal(t, hexapawn.NewBoard(), current.Game.Board)
}

func TestServer_Game(t *testing.T) {
	ts := newTestServer(t)
	conn, _ := dial(t, ts, nil)

	_, connected := roundTrip(t, conn, actionConnect, Payload{})
	require.NotNil(t, connected.Player)
	player := &entity.Player{ID: connected.Player.ID}

	// Given: a new game against the computer
	_, started := roundTrip(t, conn, actionGameNew, Payload{Player: player})
	require.NotNil(t, started.Game)
	assert.Equal(t, hexapawn.NewBoard(), started.Game.Board)
	assert.Equal(t, hexapawn.White, started.Game.Turn)
	assert.Empty(t, started.Game.Players)

	t.Run("Rejects an illegal move", func(t *testing.T) {
		_, got := roundTrip(t, conn, actionGameTurn, Payload{Player: player, Move: mv(2, 0, 0, 0)})

		assert.Contains(t, got.Error, apperror.ErrInvalidMove.Error())
	})

	t.Run("Requires a move", func(t *testing.T) {
		_, got := roundTrip(t, conn, actionGameTurn, Payload{Player: player})

		assert.Equal(t, "Move is required", got.Error)
	})

	t.Run("Human move gets a computer reply", func(t *testing.T) {
		// When: white opens
		_, got := roundTrip(t, conn, actionGameTurn, Payload{Player: player, Move: mv(2, 0, 1, 0)})

		// Then: black has replied and it is white's turn again
		require.Empty(t, got.Error)
		require.NotNil(t, got.Game)
		assert.Equal(t, hexapawn.White, got.Game.Turn)
		assert.Equal(t, hexapawn.Empty, got.Game.Board[2][0])
		assert.NotEqual(t, "BBB/W../.WW", got.Game.Board.String())
	})

	t.Run("Leaving ends the game", func(t *testing.T) {
		_, got := roundTrip(t, conn, actionGameLeave, Payload{Player: player})

		require.NotNil(t, got.Game)
		assert.Equal(t, gameStatusLeave, got.Game.Status)
		assert.Equal(t, entity.OutcomeAbandoned, got.Game.Outcome)

		_, again := roundTrip(t, conn, actionGameLeave, Payload{Player: player})
		assert.Equal(t, "game doesn't exist", again.Error)
	})
}
