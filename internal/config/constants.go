package config

import "time"

// Default service settings
const (
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultServiceName = "tycoonsim"
	DefaultVersion     = "dev"
	DefaultEnvironment = "dev"
	DefaultCatalogPath = "configs/business_types.json"
)

// Default simulation cadences. The tick fires every second; each concern
// runs on its own slower interval so one tick stays cheap.
const (
	DefaultTickInterval        = 1 * time.Second
	DefaultRecruitmentInterval = 2 * time.Minute
	DefaultAutoWorkCooldown    = 10 * time.Second
	DefaultWageInterval        = 45 * time.Second
	DefaultOrderGenInterval    = 15 * time.Second
	DefaultPayrollInterval     = 6 * time.Minute
)
