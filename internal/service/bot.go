package service

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/hexapawn-backend/internal/apperror"
	"github.com/rocketscienceinc/hexapawn-backend/internal/config"
	"github.com/rocketscienceinc/hexapawn-backend/internal/entity"
	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
	"github.com/rocketscienceinc/hexapawn-backend/internal/search"
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct {
	logger   *slog.Logger
	searcher *search.Searcher
	depth    int
}

// NewBotService builds the computer player from the search config. With
// Trace enabled every explored node is logged at debug level.
func NewBotService(logger *slog.Logger, conf config.Search) (BotService, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	evaluate, err := search.EvaluatorByName(conf.Evaluator)
	if err != nil {
		return nil, fmt.Errorf("failed to select evaluator: %w", err)
	}

	logger = logger.With("component", "bot")

	options := []search.Option{search.WithEvaluator(evaluate)}
	if conf.Trace {
		options = append(options, search.WithTrace(traceTo(logger)))
	}

	return &botService{
		logger:   logger,
		searcher: search.New(options...),
		depth:    conf.Depth,
	}, nil
}

func traceTo(logger *slog.Logger) search.TraceFunc {
	return func(move hexapawn.Move, score, depth int) {
		logger.Debug("search node", "move", move.String(), "score", score, "depth", depth)
	}
}

// MakeTurn searches and commits the computer's reply. When the computer has
// nothing to play the game is closed: as a loss if the rules already decide
// the position, otherwise as a stalemate.
func (that *botService) MakeTurn(game *entity.Game) error {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	if game.Turn != hexapawn.ComputerSide {
		return apperror.ErrNotYourTurn
	}

	result, ok := that.searcher.ChooseMove(&game.Board, that.depth)
	if !ok {
		game.UpdateGameState()
		if game.IsOngoing() {
			game.MarkStalemate()
		}

		log.Info("bot has no move", "outcome", game.Outcome)

		return nil
	}

	if err := game.MakeTurn(hexapawn.ComputerSide, result.Move); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Info("bot made a turn",
		"move", result.Move.String(),
		"score", result.Score,
		"nodes", result.Stats.Nodes,
		"cutoffs", result.Stats.Cutoffs,
	)

	return nil
}
