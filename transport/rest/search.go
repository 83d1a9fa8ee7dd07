package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/hexapawn-backend/internal/hexapawn"
	"github.com/rocketscienceinc/hexapawn-backend/internal/search"
)

type searchRequest struct {
	Board     hexapawn.Board `json:"board"`
	Depth     int            `json:"depth"`
	Evaluator string         `json:"evaluator,omitempty"`
}

type searchResponse struct {
	Found   bool           `json:"found"`
	Move    *hexapawn.Move `json:"move,omitempty"`
	Score   int            `json:"score"`
	Outcome string         `json:"outcome"`
	Nodes   uint64         `json:"nodes"`
	Leaves  uint64         `json:"leaves"`
	Cutoffs uint64         `json:"cutoffs"`
}

// searchHandler answers "what would the computer play here" for an arbitrary
// board with Black to move. It keeps no state between requests.
type searchHandler struct {
	logger   *slog.Logger
	maxDepth int
}

func (that *searchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "search")

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	if req.Depth < 1 || req.Depth > that.maxDepth {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("depth must be between 1 and %d", that.maxDepth))
		return
	}

	evaluate, err := search.EvaluatorByName(req.Evaluator)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	board := req.Board
	result, ok := search.New(search.WithEvaluator(evaluate)).ChooseMove(&board, req.Depth)

	resp := searchResponse{
		Found:   ok,
		Score:   result.Score,
		Outcome: hexapawn.DetermineOutcome(&board, hexapawn.ComputerSide).String(),
		Nodes:   result.Stats.Nodes,
		Leaves:  result.Stats.Leaves,
		Cutoffs: result.Stats.Cutoffs,
	}
	if ok {
		resp.Move = &result.Move
	}

	log.Debug("search done", "board", board.String(), "depth", req.Depth, "found", ok, "score", result.Score)

	writeJSON(w, http.StatusOK, resp)
}
