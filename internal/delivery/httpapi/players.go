package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type registerPlayerRequest struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username"`
}

type updateQuestRequest struct {
	Status string `json:"status"`
}

type summaryResponse struct {
	PlayerID string `json:"player_id"`
	Summary  string `json:"summary"`
}

func (s *Server) handleRegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var req registerPlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	player, err := s.deps.Players.RegisterOrGet(r.Context(), req.PlayerID, req.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, player)
}

func (s *Server) handleUpdateQuest(w http.ResponseWriter, r *http.Request) {
	var req updateQuestRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, err.Error())
		return
	}

	quest, err := s.deps.Players.UpdateQuest(r.Context(),
		chi.URLParam(r, "playerID"), chi.URLParam(r, "questID"), req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, quest)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	playerID := strings.TrimSpace(chi.URLParam(r, "playerID"))

	summary, err := s.deps.Players.Summarize(r.Context(), playerID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{PlayerID: playerID, Summary: summary})
}
