package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/hexapawn-backend/internal/apperror"
	"github.com/rocketscienceinc/hexapawn-backend/internal/entity"
)

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload

	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

const errSessionMismatch = "player does not match session"

// playerID returns the session's player id. A player id in the payload must
// name the same player; ok is false otherwise.
func playerID(payload Payload, c *client) (string, bool) {
	if payload.Player != nil && payload.Player.ID != "" && payload.Player.ID != c.sessionID {
		return "", false
	}

	return c.sessionID, true
}

func (that *Server) handleConnect(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return c.sendError(msg.Action, "invalid payload")
	}

	id, ok := playerID(payloadReq, c)
	if !ok {
		log.Warn("player id does not match session")
		return c.sendError(msg.Action, errSessionMismatch)
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, id)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return c.sendError(msg.Action, "failed to create a new player")
	}

	payloadResp := Payload{Player: player}

	if player.GameID != "" {
		game, err := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
		if err == nil {
			payloadResp.Game = maskGameDetails(game)
		} else {
			log.Warn("player game is gone", "gameID", player.GameID, "error", err)
		}
	}

	if err = c.send(msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return c.sendError(msg.Action, "invalid payload")
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return c.sendError(msg.Action, "Player is required")
	}

	id, ok := playerID(payloadReq, c)
	if !ok {
		log.Warn("player id does not match session")
		return c.sendError(msg.Action, errSessionMismatch)
	}

	game, err := that.gameUseCase.GetOrCreateGame(ctx, id)
	if err != nil {
		log.Error("failed to create or get game", "error", err)
		return c.sendError(msg.Action, "failed to create a new game")
	}

	payloadResp := Payload{
		Player: humanPlayer(game),
		Game:   maskGameDetails(game),
	}

	log.Info("player is in game", "gameID", game.ID)

	return c.send(msg.Action, payloadResp)
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return c.sendError(msg.Action, "invalid payload")
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return c.sendError(msg.Action, "Player is required")
	}

	if payloadReq.Move == nil {
		log.Error("Move is missing in payload")
		return c.sendError(msg.Action, "Move is required")
	}

	id, ok := playerID(payloadReq, c)
	if !ok {
		log.Warn("player id does not match session")
		return c.sendError(msg.Action, errSessionMismatch)
	}

	log = log.With("playerID", id)

	game, err := that.gameUseCase.MakeTurn(ctx, id, *payloadReq.Move)
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		log.Info("game finished", "gameID", game.ID, "winner", game.Winner)
	case errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameIsNotStarted),
		errors.Is(err, apperror.ErrNoActiveGames):
		return c.sendError(msg.Action, err.Error())
	case err != nil:
		log.Error("failed to make turn", "error", err)
		return c.sendError(msg.Action, "failed to make turn")
	}

	payloadResp := Payload{
		Player: humanPlayer(game),
		Game:   maskGameDetails(game),
	}

	if err = c.send(msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send game update: %w", err)
	}

	log.Info("Player made a turn", "gameID", game.ID)

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleGameLeave")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return c.sendError(msg.Action, "invalid payload")
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return c.sendError(msg.Action, "Player is required")
	}

	id, ok := playerID(payloadReq, c)
	if !ok {
		log.Warn("player id does not match session")
		return c.sendError(msg.Action, errSessionMismatch)
	}

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, id)
	if err != nil {
		log.Error("failed to find game", "error", err)
		return c.sendError(msg.Action, "game doesn't exist")
	}

	if err = that.gameUseCase.EndGame(ctx, game); err != nil {
		log.Error("failed to end game", "error", err)
		return c.sendError(msg.Action, "failed to end game")
	}

	payloadResp := Payload{
		Player: humanPlayer(game),
		Game:   maskGameDetails(game),
	}
	payloadResp.Game.Status = gameStatusLeave

	log.Info("Player leaving", "gameID", game.ID)

	return c.send(msg.Action, payloadResp)
}

func humanPlayer(game *entity.Game) *entity.Player {
	for _, player := range game.Players {
		if !player.IsBot() {
			return player
		}
	}

	return nil
}

// maskGameDetails hides the seating from the game payload.
func maskGameDetails(game *entity.Game) *entity.Game {
	masked := *game
	masked.Players = nil
	masked.Type = ""

	return &masked
}
