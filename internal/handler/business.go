package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hustlehq/tycoonsim/internal/catalog"
	"github.com/hustlehq/tycoonsim/internal/command"
	"github.com/hustlehq/tycoonsim/internal/logger"
)

type CreateBusinessRequest struct {
	OwnerID string `json:"owner_id" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Name    string `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	TypeID  string `json:"type_id" validate:"required,max=100"`
}

// HandleCreateBusiness creates a business from a catalog archetype and
// registers it with the simulation scheduler
func HandleCreateBusiness(svc command.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateBusinessRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create business"); err != nil {
			return
		}

		state, err := svc.CreateBusiness(r.Context(), req.OwnerID, req.Name, req.TypeID)
		if err != nil {
			respondServiceError(w, r, "create business", err)
			return
		}

		log.Info("Business created", "business_id", state.ID, "type_id", req.TypeID)

		respondJSON(w, http.StatusCreated, DataResponse{
			Message: MsgBusinessCreatedSuccess,
			Data:    state,
		})
	}
}

// HandleGetBusiness returns a business snapshot, served from the short-TTL
// cache when a fresh copy is available
func HandleGetBusiness(svc command.Service, cache *SnapshotCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID := chi.URLParam(r, "businessID")

		if state, ok := cache.Get(businessID); ok {
			respondJSON(w, http.StatusOK, state)
			return
		}

		state, err := svc.GetBusiness(r.Context(), businessID)
		if err != nil {
			respondServiceError(w, r, "get business", err)
			return
		}

		cache.Set(businessID, state)
		respondJSON(w, http.StatusOK, state)
	}
}

// BusinessTypeSummary is the list-view projection of a catalog archetype
type BusinessTypeSummary struct {
	ID                   string `json:"id"`
	Category             string `json:"category"`
	DisplayName          string `json:"display_name"`
	StartingCapitalCents int64  `json:"starting_capital_cents"`
	OpenHour             int    `json:"open_hour"`
	CloseHour            int    `json:"close_hour"`
	Products             int    `json:"products"`
}

// HandleListBusinessTypes lists the catalog archetypes a business can be
// created from
func HandleListBusinessTypes(cat catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types := cat.ListBusinessTypes()

		summaries := make([]BusinessTypeSummary, 0, len(types))
		for _, bt := range types {
			summaries = append(summaries, BusinessTypeSummary{
				ID:                   bt.ID,
				Category:             bt.Category,
				DisplayName:          bt.DisplayName,
				StartingCapitalCents: int64(bt.StartingCapitalCents),
				OpenHour:             bt.OpenHour,
				CloseHour:            bt.CloseHour,
				Products:             len(bt.Products),
			})
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: summaries})
	}
}

// HandleCacheStats returns snapshot cache hit/miss statistics for monitoring
func HandleCacheStats(cache *SnapshotCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, cache.Stats())
	}
}
