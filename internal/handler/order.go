package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hustlehq/tycoonsim/internal/command"
	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/logger"
)

// HandleListOrders lists a business's orders, optionally filtered by status.
// The status query parameter takes a comma-separated list, e.g.
// ?status=pending,accepted. No filter returns every order, newest last.
func HandleListOrders(svc command.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID := chi.URLParam(r, "businessID")

		statuses, ok := parseStatusFilter(w, r)
		if !ok {
			return
		}

		orders, err := svc.ListOrders(r.Context(), businessID, statuses...)
		if err != nil {
			respondServiceError(w, r, "list orders", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: orders})
	}
}

// HandleAcceptOrder manually accepts a pending order
func HandleAcceptOrder(svc command.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID := chi.URLParam(r, "businessID")
		orderID := chi.URLParam(r, "orderID")

		o, err := svc.AcceptOrder(r.Context(), businessID, orderID)
		if err != nil {
			respondServiceError(w, r, "accept order", err)
			return
		}

		logger.FromContext(r.Context()).Info("Order accepted",
			"business_id", businessID, "order_id", orderID)

		respondJSON(w, http.StatusOK, DataResponse{
			Message: MsgOrderAcceptedSuccess,
			Data:    o,
		})
	}
}

// HandleRejectOrder manually rejects a pending order
func HandleRejectOrder(svc command.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID := chi.URLParam(r, "businessID")
		orderID := chi.URLParam(r, "orderID")

		o, err := svc.RejectOrder(r.Context(), businessID, orderID)
		if err != nil {
			respondServiceError(w, r, "reject order", err)
			return
		}

		logger.FromContext(r.Context()).Info("Order rejected",
			"business_id", businessID, "order_id", orderID)

		respondJSON(w, http.StatusOK, DataResponse{
			Message: MsgOrderRejectedSuccess,
			Data:    o,
		})
	}
}

type CompleteOrderRequest struct {
	QualityOverride *int `json:"quality_override" validate:"omitempty,min=0,max=100"`
}

// HandleCompleteOrder manually completes a workable order. The body is
// optional; when present it may carry a quality override for the completion
// roll.
func HandleCompleteOrder(svc command.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businessID := chi.URLParam(r, "businessID")
		orderID := chi.URLParam(r, "orderID")

		var req CompleteOrderRequest
		if r.ContentLength > 0 {
			if err := DecodeAndValidateRequest(r, w, &req, "Complete order"); err != nil {
				return
			}
		}

		o, err := svc.CompleteOrder(r.Context(), businessID, orderID, req.QualityOverride)
		if err != nil {
			respondServiceError(w, r, "complete order", err)
			return
		}

		logger.FromContext(r.Context()).Info("Order completed",
			"business_id", businessID, "order_id", orderID)

		respondJSON(w, http.StatusOK, DataResponse{
			Message: MsgOrderCompletedSuccess,
			Data:    o,
		})
	}
}

// parseStatusFilter parses the optional comma-separated status query
// parameter. On an unknown status it writes a 400 and returns false.
func parseStatusFilter(w http.ResponseWriter, r *http.Request) ([]domain.OrderStatus, bool) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil, true
	}

	parts := strings.Split(raw, ",")
	statuses := make([]domain.OrderStatus, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if !ValidOrderStatuses[p] {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidStatus, p))
			return nil, false
		}
		statuses = append(statuses, domain.OrderStatus(p))
	}
	return statuses, true
}
