// Package naming generates person names for simulated customers and job
// candidates from a configurable pool file. Pools are loaded once at startup;
// selection is driven by the caller's seeded RNG so runs stay reproducible.
package naming

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
)

// Config is the JSON shape of a name pool file
type Config struct {
	Version    string   `json:"version"`
	Schema     string   `json:"schema"`
	FirstNames []string `json:"first_names"`
	LastNames  []string `json:"last_names"`
}

// Resolver picks names from loaded pools
type Resolver struct {
	firstNames []string
	lastNames  []string
}

// NewResolver loads name pools from the given config file
func NewResolver(path string) (*Resolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrContextFailedToLoadNames, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrContextFailedToParseConfig, path, err)
	}

	if config.Schema != SchemaNamePools {
		return nil, fmt.Errorf(ErrMsgInvalidSchema, path, SchemaNamePools, config.Schema)
	}
	if len(config.FirstNames) == 0 || len(config.LastNames) == 0 {
		return nil, fmt.Errorf(ErrMsgEmptyPool, path)
	}

	return &Resolver{
		firstNames: config.FirstNames,
		lastNames:  config.LastNames,
	}, nil
}

// NewDefaultResolver returns a resolver backed by the built-in pools,
// used by tests and as a fallback when no config file is present
func NewDefaultResolver() *Resolver {
	return &Resolver{
		firstNames: defaultFirstNames,
		lastNames:  defaultLastNames,
	}
}

// FullName returns "First Last" drawn from the pools
func (r *Resolver) FullName(rnd *rand.Rand) string {
	first := r.firstNames[rnd.Intn(len(r.firstNames))]
	last := r.lastNames[rnd.Intn(len(r.lastNames))]
	return fmt.Sprintf(FullNameTemplate, first, last)
}

// FirstName returns a single first name, used for casual customer display
func (r *Resolver) FirstName(rnd *rand.Rand) string {
	return r.firstNames[rnd.Intn(len(r.firstNames))]
}
