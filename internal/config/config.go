package config

import (
	"errors"
	"os"
)

// devJWTSecret is only ever used outside production. Easier for debugging
// and for running integration fixtures without extra setup.
const devJWTSecret = "giftlist-dev-secret-do-not-use-in-prod"

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	// JWT configuration
	JWTSecret string
	// Federated identity provider (OIDC-style)
	ProviderJWKSURL  string
	ProviderIssuer   string
	ProviderAudience string
	// Debug flags
	Debug bool
	// LogDir, when set, mirrors structured logs into timestamped files
	LogDir      string
	LogMaxFiles int
}

// ErrMissingJWTSecret is returned by Load when running in prod without an
// explicitly supplied JWT_SECRET. Guessable defaults are refused there.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set in production")

func Load() (*Config, error) {
	env := getEnv("ENVIRONMENT", "dev")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if env == "prod" {
			return nil, ErrMissingJWTSecret
		}
		secret = devJWTSecret
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      env,
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:      getTablePrefix(env),
		JWTSecret:        secret,
		ProviderJWKSURL:  getEnv("PROVIDER_JWKS_URL", ""),
		ProviderIssuer:   getEnv("PROVIDER_ISSUER", ""),
		ProviderAudience: getEnv("PROVIDER_AUDIENCE", ""),
		Debug:            getEnv("DEBUG", getDefaultDebug(env)) == "true",
		LogDir:           getEnv("LOG_DIR", ""),
		LogMaxFiles:      10,
	}, nil
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
