package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Business errors
	ErrMsgBusinessNotFound = "business not found"
	ErrMsgBusinessExists   = "business already exists"

	// Catalog errors
	ErrMsgBusinessTypeNotFound = "business type not found"

	// Order errors
	ErrMsgOrderNotFound     = "order not found"
	ErrMsgInvalidTransition = "invalid order transition"
	ErrMsgOrderAlreadyFinal = "order already finalized"
	ErrMsgInsufficientStock = "insufficient stock"
	ErrMsgUnknownProduct    = "unknown product"

	// Staffing errors
	ErrMsgCandidateNotFound = "candidate not found"
	ErrMsgInvalidRole       = "invalid role"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Business errors
	ErrBusinessNotFound = errors.New(ErrMsgBusinessNotFound)
	ErrBusinessExists   = errors.New(ErrMsgBusinessExists)

	// Catalog errors
	ErrBusinessTypeNotFound = errors.New(ErrMsgBusinessTypeNotFound)

	// Order errors
	ErrOrderNotFound     = errors.New(ErrMsgOrderNotFound)
	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)
	ErrOrderAlreadyFinal = errors.New(ErrMsgOrderAlreadyFinal)
	ErrInsufficientStock = errors.New(ErrMsgInsufficientStock)
	ErrUnknownProduct    = errors.New(ErrMsgUnknownProduct)

	// Staffing errors
	ErrCandidateNotFound = errors.New(ErrMsgCandidateNotFound)
	ErrInvalidRole       = errors.New(ErrMsgInvalidRole)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
