package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/hexapawn-backend/internal/apperror"
	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
)

func mv(fromRow, fromCol, toRow, toCol int) hexapawn.Move {
	return hexapawn.Move{
		From: hexapawn.Position{Row: fromRow, Col: fromCol},
		To:   hexapawn.Position{Row: toRow, Col: toCol},
	}
}

func TestNewGame(t *testing.T) {
	// When: a new game is created
	game := NewGame("123")

	// Then: it starts ongoing against the bot with white to move
	expectedGame := &Game{
		ID:      "123",
		Board:   hexapawn.NewBoard(),
		Outcome: "in_progress",
		Status:  StatusOngoing,
		Turn:    hexapawn.White,
		Type:    WithBotType,
	}

	require.Equal(t, expectedGame, game)
	assert.True(t, game.IsWithBot())
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// Then: it should report finished
		assert.True(t, game.IsFinished())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		// Given: a game with StatusOngoing
		game := &Game{Status: StatusOngoing}

		// Then: it should report ongoing
		assert.True(t, game.IsOngoing())
	})

	t.Run("IsWaiting returns true when game status is waiting", func(t *testing.T) {
		// Given: a game with StatusWaiting
		game := &Game{Status: StatusWaiting}

		// Then: it should report waiting
		assert.True(t, game.IsWaiting())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}
		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}
		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}
		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		// Given: a game with unknown status
		game := &Game{Status: "unknown"}

		// When: checking if the game is active
		err := game.ConfirmOngoingState()

		// Then: it should return an error
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownGameStatus)
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Successful opening move", func(t *testing.T) {
		// Given: a new game
		game := NewGame("123")

		// When: white plays (2,0)->(1,0)
		err := game.MakeTurn(hexapawn.White, mv(2, 0, 1, 0))
		require.NoError(t, err)

		// Then: the pawn moved, black is to move and the game goes on
		assert.Equal(t, "BBB/W../.WW", game.Board.String())
		assert.Equal(t, hexapawn.Black, game.Turn)
		assert.Equal(t, StatusOngoing, game.Status)
		assert.Empty(t, game.Winner)
	})

	t.Run("Rejects an invalid human move and keeps the board", func(t *testing.T) {
		// Given: a new game
		game := NewGame("123")

		// When: white tries to jump two rows
		err := game.MakeTurn(hexapawn.White, mv(2, 0, 0, 0))

		// Then: the move is rejected and nothing changed
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, hexapawn.NewBoard(), game.Board)
		assert.Equal(t, hexapawn.White, game.Turn)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a new game where it's white's turn
		game := NewGame("123")

		// When: black tries to move
		err := game.MakeTurn(hexapawn.Black, mv(0, 0, 1, 0))

		// Then: an ErrNotYourTurn error should be returned
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, hexapawn.NewBoard(), game.Board)
	})

	t.Run("Computer move must be generated by the rules", func(t *testing.T) {
		// Given: black to move after white's opening
		game := NewGame("123")
		require.NoError(t, game.MakeTurn(hexapawn.White, mv(2, 0, 1, 0)))

		// When: black tries to step onto the white pawn
		err := game.MakeTurn(hexapawn.Black, mv(0, 0, 1, 0))

		// Then: it is rejected
		require.ErrorIs(t, err, apperror.ErrInvalidMove)

		// When: black captures instead
		require.NoError(t, game.MakeTurn(hexapawn.Black, mv(0, 1, 1, 0)))

		// Then: the white pawn is gone
		assert.Equal(t, "B.B/B../.WW", game.Board.String())
		assert.Equal(t, hexapawn.White, game.Turn)
	})

	t.Run("Reaching row zero wins for white", func(t *testing.T) {
		// Given: a white pawn one step from black's home rank
		game := NewGame("123")
		game.Board = hexapawn.MustParseBoard("B.B/.W./W..")

		// When: white steps forward
		require.NoError(t, game.MakeTurn(hexapawn.White, mv(1, 1, 0, 1)))

		// Then: white wins and the game is finished
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, WinnerWhite, game.Winner)
		assert.Equal(t, "white_wins", game.Outcome)
	})

	t.Run("Leaving white without moves wins for black", func(t *testing.T) {
		// Given: black can block the last white pawn
		game := NewGame("123")
		game.Board = hexapawn.MustParseBoard("B../.../W..")
		game.Turn = hexapawn.Black

		// When: black steps in front of it
		require.NoError(t, game.MakeTurn(hexapawn.Black, mv(0, 0, 1, 0)))

		// Then: white is stuck and black wins
		assert.True(t, game.IsFinished())
		assert.Equal(t, WinnerBlack, game.Winner)
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		// Given: a finished game
		game := NewGame("123")
		game.Status = StatusFinished

		// When: white tries to move
		err := game.MakeTurn(hexapawn.White, mv(2, 0, 1, 0))

		// Then: ErrGameFinished is returned
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestGame_MarkStalemate(t *testing.T) {
	game := NewGame("123")

	game.MarkStalemate()

	assert.True(t, game.IsFinished())
	assert.Equal(t, WinnerNone, game.Winner)
	assert.Equal(t, "stalemate", game.Outcome)
}

func TestGame_Abandon(t *testing.T) {
	t.Run("Undecided game is finished as abandoned", func(t *testing.T) {
		// Given: a game in progress
		game := NewGame("123")

		// When: it is abandoned
		game.Abandon()

		// Then: status, winner and outcome all agree
		assert.True(t, game.IsFinished())
		assert.Equal(t, WinnerNone, game.Winner)
		assert.Equal(t, OutcomeAbandoned, game.Outcome)
	})

	t.Run("Decided game keeps its result", func(t *testing.T) {
		game := NewGame("123")
		game.Board = hexapawn.MustParseBoard("B.B/.W./W..")
		require.NoError(t, game.MakeTurn(hexapawn.White, mv(1, 1, 0, 1)))

		game.Abandon()

		assert.Equal(t, WinnerWhite, game.Winner)
		assert.Equal(t, "white_wins", game.Outcome)
	})
}

func TestGame_UpdateGameState(t *testing.T) {
	t.Run("A side without moves loses rather than stalemates", func(t *testing.T) {
		// Given: white to move and blocked by the black pawn in front of it
		game := NewGame("123")
		game.Board = hexapawn.MustParseBoard(".../B../W..")

		// When: the state is recomputed
		game.UpdateGameState()

		// Then: black wins
		assert.Equal(t, WinnerBlack, game.Winner)
		assert.Equal(t, "black_wins", game.Outcome)
	})

	t.Run("Undecided position stays ongoing", func(t *testing.T) {
		game := NewGame("123")

		game.UpdateGameState()

		assert.True(t, game.IsOngoing())
		assert.Equal(t, "in_progress", game.Outcome)
	})
}

func TestGame_Bot(t *testing.T) {
	game := NewGame("g1")
	assert.Nil(t, game.Bot())

	human := &Player{ID: "p1", GameID: "g1"}
	bot := NewBotPlayer("g1")
	game.Players = []*Player{human, bot}

	assert.Equal(t, bot, game.Bot())
	assert.True(t, bot.IsBot())
	assert.False(t, human.IsBot())
	assert.Equal(t, hexapawn.Black, bot.Side)
}
