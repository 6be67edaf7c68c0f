package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hustlehq/tycoonsim/internal/command"
	"github.com/hustlehq/tycoonsim/internal/logger"
)

type HireRequest struct {
	CandidateID string `json:"candidate_id" validate:"required,max=100"`
}

// HandleHireCandidate promotes a recruitment pool candidate onto the roster
func HandleHireCandidate(svc command.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID := chi.URLParam(r, "businessID")

		var req HireRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Hire candidate"); err != nil {
			return
		}

		state, err := svc.HireCandidate(r.Context(), businessID, req.CandidateID)
		if err != nil {
			respondServiceError(w, r, "hire candidate", err)
			return
		}

		logger.FromContext(r.Context()).Info("Candidate hired",
			"business_id", businessID, "candidate_id", req.CandidateID)

		respondJSON(w, http.StatusOK, DataResponse{
			Message: MsgCandidateHiredSuccess,
			Data:    state,
		})
	}
}
