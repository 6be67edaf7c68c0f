// Package catalog loads and serves the immutable business-type definitions
// every business is created from. Definitions come from a JSON config file
// validated at startup; after load the catalog is read-only.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/hustlehq/tycoonsim/internal/domain"
)

// Sentinel errors for the catalog loader
var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrDuplicateTypeID = errors.New("duplicate business type id")
)

// Config represents the JSON configuration for business types
type Config struct {
	Version       string                `json:"version"`
	Description   string                `json:"description"`
	BusinessTypes []domain.BusinessType `json:"business_types"`
}

// Loader handles loading and validating the business-type configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
}

type catalogLoader struct {
	validate *validator.Validate
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &catalogLoader{
		validate: validator.New(),
	}
}

// Load reads and parses a business-types JSON file
func (l *catalogLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFailed, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}

	if err := l.Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the business-type configuration for errors
func (l *catalogLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	if len(config.BusinessTypes) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoTypesDefined)
	}

	seen := make(map[string]bool, len(config.BusinessTypes))

	for i := range config.BusinessTypes {
		bt := &config.BusinessTypes[i]

		if seen[bt.ID] {
			return fmt.Errorf("%w: '%s'", ErrDuplicateTypeID, bt.ID)
		}
		seen[bt.ID] = true

		if err := l.validate.Struct(bt); err != nil {
			return fmt.Errorf("%w: business type '%s': %v", ErrInvalidConfig, bt.ID, err)
		}

		if err := validateProducts(bt); err != nil {
			return err
		}
	}

	return nil
}

func validateProducts(bt *domain.BusinessType) error {
	productIDs := make(map[string]bool, len(bt.Products))
	for i := range bt.Products {
		p := &bt.Products[i]
		if productIDs[p.ID] {
			return fmt.Errorf(ErrFmtDuplicateProduct, ErrInvalidConfig, bt.ID, p.ID)
		}
		productIDs[p.ID] = true

		if p.ConsumesInventory && p.UnitsPerSale <= 0 {
			return fmt.Errorf(ErrFmtBadConsumption, ErrInvalidConfig, bt.ID, p.ID)
		}
	}
	return nil
}
