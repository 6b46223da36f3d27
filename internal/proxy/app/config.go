package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jasiripay/krabridge/internal/proxy/domain"
)

type Config struct {
	Apps map[string]domain.AppIdentity // Sandbox app registrations keyed by name (app1, app2)

	PinByIDURL  string // Optional: sandbox PIN-by-ID endpoint (missing -> 500 per request)
	PinByPinURL string // Optional: sandbox PIN-by-PIN endpoint

	TokenStore     string        // Token cache driver (memory, sqlite) (default: memory)
	TokenStoreFile string        // Path to the sqlite cache file (default: ./krabridge.db)
	TokenTTL       time.Duration // Client-side token cache TTL (default: 1h)

	MaxRetries    int           // Retry budget for 504/timeout (default: 5)
	Timeout       time.Duration // Per-attempt upstream timeout (default: 60s)
	TLSSkipVerify bool          // Sandbox-only: disable upstream certificate validation (default: false)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Apps: loadApps(),

		PinByIDURL:  os.Getenv("KRA_PIN_BY_ID_URL"),
		PinByPinURL: os.Getenv("KRA_PIN_BY_PIN_URL"),

		TokenStore:     getEnvOrDefault("TOKEN_STORE", "memory"),
		TokenStoreFile: getEnvOrDefault("TOKEN_STORE_FILE", "krabridge.db"),
		TokenTTL:       getEnvDurationOrDefault("TOKEN_TTL", time.Hour),

		MaxRetries:    getEnvIntOrDefault("KRA_MAX_RETRIES", 5),
		Timeout:       getEnvDurationOrDefault("KRA_TIMEOUT", 60*time.Second),
		TLSSkipVerify: getEnvBoolOrDefault("KRA_TLS_SKIP_VERIFY", false),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

// loadApps reads the per-app identity table from the environment. An app is
// registered only when all three of its settings are present; a partially
// configured app is treated as absent and surfaces later as an
// invalid-app-selection error.
func loadApps() map[string]domain.AppIdentity {
	apps := make(map[string]domain.AppIdentity)

	for _, name := range []string{"app1", "app2"} {
		prefix := "KRA_" + strings.ToUpper(name) + "_"

		identity := domain.AppIdentity{
			Name:           name,
			TokenURL:       os.Getenv(prefix + "TOKEN_URL"),
			ConsumerKey:    os.Getenv(prefix + "CONSUMER_KEY"),
			ConsumerSecret: os.Getenv(prefix + "CONSUMER_SECRET"),
		}

		if identity.TokenURL == "" || identity.ConsumerKey == "" || identity.ConsumerSecret == "" {
			continue
		}
		apps[name] = identity
	}

	return apps
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	if len(c.Apps) == 0 {
		return fmt.Errorf("no sandbox apps configured: set KRA_APP1_TOKEN_URL, KRA_APP1_CONSUMER_KEY and KRA_APP1_CONSUMER_SECRET")
	}
	if c.TokenStore != "memory" && c.TokenStore != "sqlite" {
		return fmt.Errorf("unknown TOKEN_STORE %q (want memory or sqlite)", c.TokenStore)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
