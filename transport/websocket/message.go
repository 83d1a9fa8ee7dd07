package websocket

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/hexapawn-backend/internal/entity"
	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
)

const (
	actionConnect   = "connect"
	actionGameNew   = "game:new"
	actionGameTurn  = "game:turn"
	actionGameLeave = "game:leave"

	gameStatusLeave = "leave"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *entity.Game   `json:"game,omitempty"`
	Move   *hexapawn.Move `json:"move,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// client is one websocket connection. gorilla allows a single concurrent
// writer per connection, so writes go through mu.
type client struct {
	conn      *websocket.Conn
	sessionID string

	mu sync.Mutex
}

func (that *client) send(action string, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.conn.WriteJSON(Message{Action: action, Payload: data}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *client) sendError(action, errorMsg string) error {
	return that.send(action, Payload{Error: errorMsg})
}
