package search

import "github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"

// AlphaBeta returns the minimax score of the board within [alpha, beta] and
// the move leading to it. Black is the maximizing side. ok is false when the
// node is a leaf (already decided or no legal move).
func (that *Searcher) AlphaBeta(board *hexapawn.Board, depth, alpha, beta int, maximizing bool) (Result, bool) {
	mustPositiveDepth(depth)

	var result Result
	var ok bool
	result.Score, result.Move, ok = that.alphaBeta(board, depth, alpha, beta, maximizing, &result.Stats)

	return result, ok
}

func (that *Searcher) alphaBeta(board *hexapawn.Board, depth, alpha, beta int, maximizing bool, stats *Stats) (int, hexapawn.Move, bool) {
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
		score, _, _ := that.alphaBeta(board, depth-1, alpha, beta, !maximizing, stats)
		hexapawn.UndoMove(board, move, captured)

		if that.trace != nil {
			that.trace(move, score, depth)
		}

		// Strict comparison: the earliest move wins ties.
		if maximizing {
			if score > bestScore {
				bestScore, bestMove, found = score, move, true
			}
			alpha = max(alpha, score)
		} else {
			if score < bestScore {
				bestScore, bestMove, found = score, move, true
			}
			beta = min(beta, score)
		}

		if beta <= alpha {
			stats.Cutoffs++
			break
		}
	}

	return bestScore, bestMove, found
}
