package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// SubmitStrategy controls how the pending queue reconciles state after a
// successful answer submission.
type SubmitStrategy string

const (
	// SubmitStrategyOptimistic removes the answered record locally and trusts
	// the backend's acceptance without re-fetching.
	SubmitStrategyOptimistic SubmitStrategy = "optimistic"
	// SubmitStrategyReconcile re-fetches the pending list after every
	// successful submission.
	SubmitStrategyReconcile SubmitStrategy = "reconcile"
)

// Config aggregates runtime configuration for the console.
type Config struct {
	App     AppConfig
	Backend BackendConfig
	Queue   QueueConfig
	Logger  LoggerConfig
}

// AppConfig controls the exposed JSON surface.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// BackendConfig points at the support backend serving the request queues.
type BackendConfig struct {
	BaseURL        string `validate:"required,url"`
	TimeoutSeconds int    `validate:"gt=0"`
}

// QueueConfig tunes queue behavior.
type QueueConfig struct {
	SubmitStrategy SubmitStrategy `validate:"oneof=optimistic reconcile"`
	MaxNotices     int            `validate:"gt=0"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults
// where possible, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "supervisor-console"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8090"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://127.0.0.1:8000"),
			TimeoutSeconds: getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 10),
		},
		Queue: QueueConfig{
			SubmitStrategy: SubmitStrategy(getEnv("QUEUE_SUBMIT_STRATEGY", string(SubmitStrategyOptimistic))),
			MaxNotices:     getEnvAsInt("QUEUE_MAX_NOTICES", 50),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the backend call timeout duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
