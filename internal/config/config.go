package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key guarding the command surface
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// UseMemoryStore runs against the in-memory repositories instead of
	// postgres. Useful for local play and tests.
	UseMemoryStore bool

	// Simulation cadences. The tick interval drives the loop; each
	// sub-process is gated by its own interval.
	TickInterval        time.Duration
	RecruitmentInterval time.Duration
	AutoWorkCooldown    time.Duration
	WageInterval        time.Duration
	OrderGenInterval    time.Duration
	PayrollInterval     time.Duration

	// NarratorURL is the websocket endpoint narration events are pushed to.
	// Empty disables the push client.
	NarratorURL      string
	NarratorPassword string

	CatalogPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "tycoonsim"),

		NarratorURL:      getEnv("NARRATOR_WS_URL", ""),
		NarratorPassword: getEnv("NARRATOR_WS_PASSWORD", ""),

		CatalogPath: getEnv("CATALOG_PATH", DefaultCatalogPath),
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cfg.UseMemoryStore, err = getEnvBool("USE_MEMORY_STORE", false)
	if err != nil {
		return nil, err
	}

	for _, d := range []struct {
		key string
		dst *time.Duration
		def time.Duration
	}{
		{"TICK_INTERVAL", &cfg.TickInterval, DefaultTickInterval},
		{"RECRUITMENT_INTERVAL", &cfg.RecruitmentInterval, DefaultRecruitmentInterval},
		{"AUTO_WORK_COOLDOWN", &cfg.AutoWorkCooldown, DefaultAutoWorkCooldown},
		{"WAGE_INTERVAL", &cfg.WageInterval, DefaultWageInterval},
		{"ORDER_GEN_INTERVAL", &cfg.OrderGenInterval, DefaultOrderGenInterval},
		{"PAYROLL_INTERVAL", &cfg.PayrollInterval, DefaultPayrollInterval},
	} {
		v, err := getEnvDuration(d.key, d.def)
		if err != nil {
			return nil, err
		}
		*d.dst = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the loaded configuration is usable
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("TICK_INTERVAL must be positive, got %s", c.TickInterval)
	}
	if c.AutoWorkCooldown < c.TickInterval {
		return fmt.Errorf("AUTO_WORK_COOLDOWN (%s) must be at least one tick (%s)", c.AutoWorkCooldown, c.TickInterval)
	}
	return nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
