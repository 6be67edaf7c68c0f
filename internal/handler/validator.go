package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hustlehq/tycoonsim/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Key validation errors on wire names, not Go struct field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validation for order status filters
	_ = v.RegisterValidation("orderstatus", validateOrderStatus)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	// Check if it's a validator.ValidationErrors
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "orderstatus":
			errs[field] = "Invalid order status"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidOrderStatuses defines the order statuses accepted in list filters
var ValidOrderStatuses = map[string]bool{
	string(domain.OrderPending):    true,
	string(domain.OrderAccepted):   true,
	string(domain.OrderInProgress): true,
	string(domain.OrderCompleted):  true,
	string(domain.OrderFailed):     true,
	string(domain.OrderRejected):   true,
}

// Custom validation function for order status
func validateOrderStatus(fl validator.FieldLevel) bool {
	status := fl.Field().String()
	// Allow empty if not required (handled by 'required' tag if needed)
	if status == "" {
		return true
	}
	return ValidOrderStatuses[strings.ToLower(status)]
}
