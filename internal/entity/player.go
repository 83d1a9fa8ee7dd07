package entity

import (
	"strings"

	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
)

const botPrefix = "bot:"

type Player struct {
	ID     string        `json:"id"`
	Side   hexapawn.Side `json:"side"`
	GameID string        `json:"game_id,omitempty"`
}

// NewBotPlayer returns the computer opponent seated in the game.
func NewBotPlayer(gameID string) *Player {
	return &Player{
		ID:     botPrefix + gameID,
		Side:   hexapawn.ComputerSide,
		GameID: gameID,
	}
}

func (that *Player) IsBot() bool {
	return strings.HasPrefix(that.ID, botPrefix)
}
