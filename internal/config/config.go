package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port           string
	StorageDriver  string
	DatabaseURL    string
	JWTSecret      string
	JWTIssuer      string
	JWTTTL         time.Duration
	CORSOrigins    []string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	LoginRateLimit int
	TrustProxy     bool
	Admin          AdminBootstrap
}

// AdminBootstrap describes the administrator account ensured at startup.
type AdminBootstrap struct {
	Email    string
	Password string
	Name     string
}

// Enabled reports whether an administrator should be provisioned.
func (a AdminBootstrap) Enabled() bool {
	return a.Email != "" && a.Password != ""
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:          fallback(os.Getenv("PORT"), "8080"),
		StorageDriver: strings.ToLower(fallback(os.Getenv("STORAGE_DRIVER"), DriverPostgres)),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:     fallback(os.Getenv("JWT_ISSUER"), "society-backend"),
		CORSOrigins:   parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       atoiOr(os.Getenv("REDIS_DB"), 0),
		Admin: AdminBootstrap{
			Email:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
			Password: os.Getenv("ADMIN_PASSWORD"),
			Name:     fallback(os.Getenv("ADMIN_NAME"), "Administrator"),
		},
	}

	// Zero means tokens never expire.
	if minutes := atoiOr(os.Getenv("JWT_TTL_MINUTES"), 0); minutes > 0 {
		cfg.JWTTTL = time.Duration(minutes) * time.Minute
	}

	// Only honour X-Forwarded-For when a reverse proxy sets it.
	cfg.TrustProxy, _ = strconv.ParseBool(strings.TrimSpace(os.Getenv("TRUST_PROXY_HEADERS")))

	cfg.LoginRateLimit = atoiOr(os.Getenv("LOGIN_RATE_LIMIT"), 10)
	if cfg.LoginRateLimit < 0 {
		cfg.LoginRateLimit = 0
	}

	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required")
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// RedisEnabled reports whether login throttling and ledger events should use Redis.
func (c Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func atoiOr(value string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return n
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
