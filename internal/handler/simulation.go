package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hustlehq/tycoonsim/internal/command"
	"github.com/hustlehq/tycoonsim/internal/logger"
)

// SimulationStatusResponse reports whether a business's simulation is paused
type SimulationStatusResponse struct {
	BusinessID string `json:"business_id"`
	Paused     bool   `json:"paused"`
}

// HandlePauseSimulation pauses the tick loop for one business
func HandlePauseSimulation(svc command.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID := chi.URLParam(r, "businessID")

		if err := svc.PauseSimulation(r.Context(), businessID); err != nil {
			respondServiceError(w, r, "pause simulation", err)
			return
		}

		logger.FromContext(r.Context()).Info("Simulation paused", "business_id", businessID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSimulationPaused})
	}
}

// HandleResumeSimulation resumes a paused business. Gate timers restart from
// the resume instant, so no tick backlog fires.
func HandleResumeSimulation(svc command.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID := chi.URLParam(r, "businessID")

		if err := svc.ResumeSimulation(r.Context(), businessID); err != nil {
			respondServiceError(w, r, "resume simulation", err)
			return
		}

		logger.FromContext(r.Context()).Info("Simulation resumed", "business_id", businessID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSimulationResumed})
	}
}

// HandleSimulationStatus reports the pause state for one business
func HandleSimulationStatus(svc command.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID := chi.URLParam(r, "businessID")

		paused, err := svc.IsPaused(businessID)
		if err != nil {
			respondServiceError(w, r, "simulation status", err)
			return
		}

		respondJSON(w, http.StatusOK, SimulationStatusResponse{
			BusinessID: businessID,
			Paused:     paused,
		})
	}
}
