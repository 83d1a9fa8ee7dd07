package search

import (
	"fmt"

	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
)

// Infinity bounds the initial search window. Every evaluator score lies
// strictly inside it.
const Infinity = 1 << 30

// TraceFunc observes each explored child: the move, its backed-up score and
// the remaining depth at the node it was played from.
type TraceFunc func(move hexapawn.Move, score, depth int)

type Option func(searcher *Searcher)

// WithEvaluator replaces the reference material evaluator.
func WithEvaluator(evaluate Evaluator) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithTrace(trace TraceFunc) Option {
	return func(s *Searcher) {
		s.trace = trace
	}
}

// Searcher runs fixed-depth minimax searches. It holds no per-search state, so
// one Searcher may serve many games as long as each board has a single owner.
type Searcher struct {
	evaluate Evaluator
	trace    TraceFunc
}

func New(options ...Option) *Searcher {
	s := &Searcher{
		evaluate: Material,
	}
	for _, option := range options {
		option(s)
	}

	return s
}

// Stats counts the work done by one search call.
type Stats struct {
	Nodes   uint64 // #nodes visited, root included
	Leaves  uint64 // #nodes scored by the evaluator
	Cutoffs uint64 // #nodes that stopped early on beta <= alpha
}

type Result struct {
	Move  hexapawn.Move
	Score int
	Stats Stats
}

// ChooseMove searches for the computer side's move. The computer plays Black,
// the maximizing side. ok is false when the computer has no legal move or the
// position is already decided. The board is restored before returning.
func (that *Searcher) ChooseMove(board *hexapawn.Board, depth int) (Result, bool) {
	return that.AlphaBeta(board, depth, -Infinity, Infinity, true)
}

var defaultSearcher = New()

// ChooseComputerMove runs the reference searcher on the board.
func ChooseComputerMove(board *hexapawn.Board, depth int) (hexapawn.Move, int, bool) {
	result, ok := defaultSearcher.ChooseMove(board, depth)
	return result.Move, result.Score, ok
}

// sideToMove maps the maximizing flag to a side: Black maximizes.
func sideToMove(maximizing bool) hexapawn.Side {
	if maximizing {
		return hexapawn.Black
	}
	return hexapawn.White
}

func mustPositiveDepth(depth int) {
	if depth < 1 {
		panic(fmt.Sprintf("search: depth must be positive, got %d", depth))
	}
}
