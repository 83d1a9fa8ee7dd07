package hexapawn

// Outcome is the state of a game as seen by the rules.
type Outcome uint8

const (
	InProgress Outcome = iota
	WhiteWins
	BlackWins
	// Stalemate is only recorded by callers that treat a side without moves
	// as a draw; the rules themselves score that case as a loss.
	Stalemate
)

func (that Outcome) String() string {
	switch that {
	case WhiteWins:
		return "white_wins"
	case BlackWins:
		return "black_wins"
	case Stalemate:
		return "stalemate"
	default:
		return "in_progress"
	}
}

// WinnerOutcome maps a winning side to its outcome.
func WinnerOutcome(side Side) Outcome {
	if side == Black {
		return BlackWins
	}
	return WhiteWins
}

// diagonals are visited left before right.
var diagonals = [2]int{-1, 1}

// LegalMoves enumerates the side's moves in a fixed order: source cells
// row-major, then the straight step, then the left and right captures.
// Search relies on this order to break ties.
func LegalMoves(board *Board, side Side) []Move {
	moves := make([]Move, 0, 2*Size)

	pawn := side.Pawn()
	enemy := side.Opponent().Pawn()
	forward := side.Forward()

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if board[row][col] != pawn {
				continue
			}

			toRow := row + forward
			if toRow < 0 || toRow >= Size {
				continue
			}

			from := Position{Row: row, Col: col}

			if board[toRow][col] == Empty {
				moves = append(moves, Move{From: from, To: Position{Row: toRow, Col: col}})
			}

			for _, delta := range diagonals {
				toCol := col + delta
				if toCol < 0 || toCol >= Size {
					continue
				}

				if board[toRow][toCol] == enemy {
					moves = append(moves, Move{From: from, To: Position{Row: toRow, Col: toCol}})
				}
			}
		}
	}

	return moves
}

// HasLegalMove is LegalMoves without the allocation.
func HasLegalMove(board *Board, side Side) bool {
	pawn := side.Pawn()
	enemy := side.Opponent().Pawn()
	forward := side.Forward()

	for row := 0; row < Size; row++ {
		toRow := row + forward
		if toRow < 0 || toRow >= Size {
			continue
		}

		for col := 0; col < Size; col++ {
			if board[row][col] != pawn {
				continue
			}

			if board[toRow][col] == Empty {
				return true
			}

			for _, delta := range diagonals {
				toCol := col + delta
				if toCol >= 0 && toCol < Size && board[toRow][toCol] == enemy {
					return true
				}
			}
		}
	}

	return false
}

// ApplyMove moves the piece and returns whatever stood on the destination.
// The move must lie on the board; anything else panics.
func ApplyMove(board *Board, move Move) Piece {
	captured := board[move.To.Row][move.To.Col]
	board[move.To.Row][move.To.Col] = board[move.From.Row][move.From.Col]
	board[move.From.Row][move.From.Col] = Empty

	return captured
}

// UndoMove reverts ApplyMove. captured must be the value ApplyMove returned for
// the same move; nothing is validated.
func UndoMove(board *Board, move Move, captured Piece) {
	board[move.From.Row][move.From.Col] = board[move.To.Row][move.To.Col]
	board[move.To.Row][move.To.Col] = captured
}

// IsTerminalFor reports whether the position is lost for side: it has no
// pawns, it has no legal move, or an opposing pawn stands on its home rank.
// The winner is always side's opponent.
func IsTerminalFor(board *Board, side Side) (bool, Side) {
	opponent := side.Opponent()

	switch {
	case board.Count(side) == 0:
		return true, opponent
	case !HasLegalMove(board, side):
		return true, opponent
	case board.HasPawnOnRank(opponent, side.HomeRank()):
		return true, opponent
	default:
		return false, opponent
	}
}

// HasWon reports whether side has already won the position.
func HasWon(board *Board, side Side) bool {
	terminal, _ := IsTerminalFor(board, side.Opponent())
	return terminal
}

// DetermineOutcome evaluates both sides against the same board. A pawn on its
// goal rank decides the game outright. Otherwise the side that just moved is
// checked first, so a position where both sides are stuck goes to the player
// who made the last move.
func DetermineOutcome(board *Board, toMove Side) Outcome {
	for _, side := range [2]Side{toMove.Opponent(), toMove} {
		if board.HasPawnOnRank(side, side.GoalRank()) {
			return WinnerOutcome(side)
		}
	}

	if terminal, winner := IsTerminalFor(board, toMove); terminal {
		return WinnerOutcome(winner)
	}

	if terminal, winner := IsTerminalFor(board, toMove.Opponent()); terminal {
		return WinnerOutcome(winner)
	}

	return InProgress
}

// IsValidHumanMove validates a single candidate move for the human side. It
// accepts arbitrary coordinates and only looks at the piece on from.
func IsValidHumanMove(board *Board, from, to Position) bool {
	if !from.InBounds() || !to.InBounds() {
		return false
	}

	if board.At(from) != HumanSide.Pawn() {
		return false
	}

	if to.Row != from.Row+HumanSide.Forward() {
		return false
	}

	target := board.At(to)

	switch to.Col - from.Col {
	case 0:
		return target == Empty
	case -1, 1:
		return target == HumanSide.Opponent().Pawn()
	default:
		return false
	}
}
