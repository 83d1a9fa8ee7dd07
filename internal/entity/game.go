package entity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/hexapawn-backend/internal/apperror"
	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	WinnerWhite = "white"
	WinnerBlack = "black"
	WinnerNone  = "-"
)

const WithBotType = "bot"

// OutcomeAbandoned marks a game the human left before it was decided.
const OutcomeAbandoned = "abandoned"

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID      string         `json:"id"`
	Board   hexapawn.Board `json:"board"`
	Winner  string         `json:"winner"`
	Outcome string         `json:"outcome"`
	Status  string         `json:"status"`
	Turn    hexapawn.Side  `json:"player_turn"`
	Players []*Player      `json:"players,omitempty"`
	Type    string         `json:"type,omitempty"`
}

// NewGame returns a game against the computer in the starting position with
// the human to move.
func NewGame(id string) *Game {
	return &Game{
		ID:      id,
		Board:   hexapawn.NewBoard(),
		Turn:    hexapawn.HumanSide,
		Outcome: hexapawn.InProgress.String(),
		Status:  StatusOngoing,
		Type:    WithBotType,
	}
}

// MakeTurn validates and plays a move for side. Human moves are checked with
// the single-move predicate, computer moves against the generated move list.
func (that *Game) MakeTurn(side hexapawn.Side, move hexapawn.Move) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Turn != side {
		return apperror.ErrNotYourTurn
	}

	if !that.isAllowed(side, move) {
		return fmt.Errorf("%w: %s for %s", apperror.ErrInvalidMove, move, side)
	}

	hexapawn.ApplyMove(&that.Board, move)
	that.Turn = side.Opponent()

	that.UpdateGameState()

	return nil
}

func (that *Game) isAllowed(side hexapawn.Side, move hexapawn.Move) bool {
	if side == hexapawn.HumanSide {
		return hexapawn.IsValidHumanMove(&that.Board, move.From, move.To)
	}

	return slices.Contains(hexapawn.LegalMoves(&that.Board, side), move)
}

// UpdateGameState recomputes the outcome for the side to move. The rules
// score a side without moves as a loss, so a stalemate only comes from
// MarkStalemate.
func (that *Game) UpdateGameState() {
	outcome := hexapawn.DetermineOutcome(&that.Board, that.Turn)
	that.Outcome = outcome.String()

	switch outcome {
	case hexapawn.WhiteWins:
		that.finish(WinnerWhite)
	case hexapawn.BlackWins:
		that.finish(WinnerBlack)
	default:
		that.Status = StatusOngoing
	}
}

// MarkStalemate finishes the game without a winner. Used when the side to
// move has no reply and the caller chose not to score that as a loss.
func (that *Game) MarkStalemate() {
	that.Outcome = hexapawn.Stalemate.String()
	that.finish(WinnerNone)
}

// Abandon finishes an undecided game without a winner. Decided games keep
// their result.
func (that *Game) Abandon() {
	if that.IsFinished() {
		return
	}

	that.Outcome = OutcomeAbandoned
	that.finish(WinnerNone)
}

func (that *Game) finish(winner string) {
	that.Winner = winner
	that.Status = StatusFinished
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// Bot returns the computer player seated in the game, if any.
func (that *Game) Bot() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}
