package search

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
)

// WinScore is returned for a position Black has already won, and its
// negation for one White has won.
const WinScore = 1000

const (
	EvaluatorMaterial   = "material"
	EvaluatorPositional = "positional"
)

var ErrUnknownEvaluator = errors.New("unknown evaluator")

// Evaluator scores a position from Black's point of view.
type Evaluator func(board *hexapawn.Board) int

// EvaluatorByName resolves a configured evaluator name.
func EvaluatorByName(name string) (Evaluator, error) {
	switch name {
	case EvaluatorMaterial, "":
		return Material, nil
	case EvaluatorPositional:
		return Positional, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvaluator, name)
	}
}

// decided returns the win score if either side has already won.
func decided(board *hexapawn.Board) (int, bool) {
	if hexapawn.HasWon(board, hexapawn.Black) {
		return WinScore, true
	}

	if hexapawn.HasWon(board, hexapawn.White) {
		return -WinScore, true
	}

	return 0, false
}

// Material is the reference evaluator: +1 per Black pawn, -1 per White pawn.
func Material(board *hexapawn.Board) int {
	if score, ok := decided(board); ok {
		return score
	}

	return board.Count(hexapawn.Black) - board.Count(hexapawn.White)
}

// Positional weights.
const (
	pawnWeight     = 10
	advanceWeight  = 3
	centreWeight   = 2
	mobilityWeight = 1
)

// Positional adds pawn advancement, centre-file occupancy and mobility to
// material:
//
//	score = sum over Black pawns  (10 + 3*rowsAdvanced + 2*onCentreFile)
//	      - sum over White pawns  (10 + 3*rowsAdvanced + 2*onCentreFile)
//	      + 1 * (len(LegalMoves(Black)) - len(LegalMoves(White)))
func Positional(board *hexapawn.Board) int {
	if score, ok := decided(board); ok {
		return score
	}

	score := 0
	for row := 0; row < hexapawn.Size; row++ {
		for col := 0; col < hexapawn.Size; col++ {
			side, ok := board[row][col].Side()
			if !ok {
				continue
			}

			value := pawnWeight + advanceWeight*advancement(side, row)
			if col == hexapawn.Size/2 {
				value += centreWeight
			}

			if side == hexapawn.Black {
				score += value
			} else {
				score -= value
			}
		}
	}

	mobility := len(hexapawn.LegalMoves(board, hexapawn.Black)) - len(hexapawn.LegalMoves(board, hexapawn.White))

	return score + mobilityWeight*mobility
}

func advancement(side hexapawn.Side, row int) int {
	if side == hexapawn.Black {
		return row - side.HomeRank()
	}
	return side.HomeRank() - row
}
