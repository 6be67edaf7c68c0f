package handler

import (
	"errors"
	"net/http"

	"github.com/hustlehq/tycoonsim/internal/domain"
)

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to operators
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	// Business messages
	ErrMsgBusinessNotFoundError     = "Business not found"
	ErrMsgBusinessExistsError       = "A business with that ID already exists"
	ErrMsgBusinessTypeNotFoundError = "Unknown business type"

	// Order messages
	ErrMsgOrderNotFoundError     = "Order not found"
	ErrMsgInvalidTransitionError = "Order changed state before your action landed. Refresh and retry."
	ErrMsgOrderAlreadyFinalError = "Order is already finalized"
	ErrMsgInsufficientStockError = "Not enough stock to complete this order. Restock and retry."
	ErrMsgUnknownProductError    = "Unknown product"

	// Staffing messages
	ErrMsgCandidateNotFoundError = "Candidate is no longer in the recruitment pool"
	ErrMsgInvalidRoleError       = "Invalid employee role"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that operators can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	// Check for specific domain errors
	switch {
	case errors.Is(err, domain.ErrBusinessNotFound):
		return http.StatusNotFound, ErrMsgBusinessNotFoundError
	case errors.Is(err, domain.ErrBusinessExists):
		return http.StatusConflict, ErrMsgBusinessExistsError
	case errors.Is(err, domain.ErrBusinessTypeNotFound):
		return http.StatusBadRequest, ErrMsgBusinessTypeNotFoundError
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, ErrMsgOrderNotFoundError
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, ErrMsgInvalidTransitionError
	case errors.Is(err, domain.ErrOrderAlreadyFinal):
		return http.StatusConflict, ErrMsgOrderAlreadyFinalError
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict, ErrMsgInsufficientStockError
	case errors.Is(err, domain.ErrUnknownProduct):
		return http.StatusBadRequest, ErrMsgUnknownProductError
	case errors.Is(err, domain.ErrCandidateNotFound):
		return http.StatusBadRequest, ErrMsgCandidateNotFoundError
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, ErrMsgInvalidRoleError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	// Surface short, non-system error messages as-is; anything else stays generic
	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
