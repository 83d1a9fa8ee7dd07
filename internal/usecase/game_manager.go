package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/hexapawn-backend/internal/apperror"
	"github.com/rocketscienceinc/hexapawn-backend/internal/entity"
	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
	"github.com/rocketscienceinc/hexapawn-backend/internal/pkg"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(game *entity.Game) error
}

// GameManager runs human-versus-computer sessions. Every human move is
// answered by the bot in the same call.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo
	bot        botService
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, bot botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		bot:        bot,
	}
}

// MakeTurn plays the human move and the computer reply. A finished game is
// returned together with apperror.ErrGameFinished after its session has been
// cleaned up.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, move hexapawn.Move) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, err
	}

	if err = game.MakeTurn(player.Side, move); err != nil {
		if errors.Is(err, apperror.ErrGameFinished) {
			that.deleteGame(ctx, game)
		}

		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsOngoing() {
		if err = that.bot.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("failed bot turn: %w", err)
		}
	}

	if game.IsFinished() {
		that.deleteGame(ctx, game)

		return game, apperror.ErrGameFinished
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// GetOrCreateGame returns the player's current game, or seats the player as
// White in a new game against the computer.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID != "" {
		game, err := that.getGameByID(ctx, player.GameID)
		if err == nil {
			return game, nil
		}

		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}

		// the session expired underneath the player
	}

	game, err := that.createGame(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	return game, nil
}

func (that *GameManager) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	return that.getGameByID(ctx, player.GameID)
}

// EndGame abandons the game and frees its players.
func (that *GameManager) EndGame(ctx context.Context, game *entity.Game) error {
	if game == nil {
		return apperror.ErrNoActiveGames
	}

	game.Abandon()

	that.deleteGame(ctx, game)

	return nil
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		return that.createPlayer(ctx, pkg.GenerateNewSessionID())
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return that.createPlayer(ctx, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *GameManager) createPlayer(ctx context.Context, id string) (*entity.Player, error) {
	player := &entity.Player{
		ID:   id,
		Side: hexapawn.HumanSide,
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	game := entity.NewGame(pkg.GenerateGameID())

	player.GameID = game.ID
	player.Side = hexapawn.HumanSide

	game.Players = []*entity.Player{
		player,
		entity.NewBotPlayer(game.ID),
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	that.logger.Info("game created", "gameID", game.ID, "playerID", player.ID)

	return game, nil
}

func (that *GameManager) deleteGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "deleteGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		player.GameID = ""

		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			log.Error("failed to update player", "error", err)
		}
	}

	log.Info("game deleted", "winner", game.Winner, "outcome", game.Outcome)
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
