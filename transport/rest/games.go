package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/hexapawn-backend/internal/apperror"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (that *Server) getGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "getGame")

	playerID := chi.URLParam(r, "playerID")

	game, err := that.games.GetGameByPlayerID(r.Context(), playerID)
	switch {
	case errors.Is(err, apperror.ErrNotFound), errors.Is(err, apperror.ErrNoActiveGames):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		log.Error("failed to get game", "playerID", playerID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get the game")
		return
	}

	game.Players = nil

	writeJSON(w, http.StatusOK, game)
}
