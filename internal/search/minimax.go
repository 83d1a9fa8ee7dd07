package search

import "github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"

// MiniMax is AlphaBeta without pruning. Both must agree on score and move;
// it is kept as the reference the pruned search is checked against.
func (that *Searcher) MiniMax(board *hexapawn.Board, depth int, maximizing bool) (Result, bool) {
	mustPositiveDepth(depth)

	var result Result
	var ok bool
	result.Score, result.Move, ok = that.miniMax(board, depth, maximizing, &result.Stats)

	return result, ok
}

func (that *Searcher) miniMax(board *hexapawn.Board, depth int, maximizing bool, stats *Stats) (int, hexapawn.Move, bool) {
	stats.Nodes++

	if _, over := decided(board); depth == 0 || over {
		stats.Leaves++
		return that.evaluate(board), hexapawn.Move{}, false
	}

	moves := hexapawn.LegalMoves(board, sideToMove(maximizing))
	if len(moves) == 0 {
		stats.Leaves++
		return that.evaluate(board), hexapawn.Move{}, false
	}

	bestScore := Infinity
	if maximizing {
		bestScore = -Infinity
	}

	var bestMove hexapawn.Move
	found := false

	for _, move := range moves {
		captured := hexapawn.ApplyMove(board, move)
		score, _, _ := that.miniMax(board, depth-1, !maximizing, stats)
		hexapawn.UndoMove(board, move, captured)

		if that.trace != nil {
			that.trace(move, score, depth)
		}

		// Strictly > / < to match alphabeta
		if (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestScore, bestMove, found = score, move, true
		}
	}

	return bestScore, bestMove, found
}
