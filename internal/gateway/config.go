package gateway

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is read from GATEWAY_* environment variables.
type Config struct {
	HTTPAddr     string        `envconfig:"HTTP_ADDR" default:":8081"`
	ServerURL    string        `envconfig:"SERVER_URL" required:"true"`
	Timeout      time.Duration `envconfig:"TIMEOUT" default:"10s"`
	RPS          float64       `envconfig:"RPS" default:"100"`
	Burst        int           `envconfig:"BURST" default:"50"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	IsProduction bool          `envconfig:"PRODUCTION" default:"false"`

	// BreakerFailures consecutive failures open the breaker for BreakerCooldown.
	BreakerFailures uint32        `envconfig:"BREAKER_FAILURES" default:"5"`
	BreakerCooldown time.Duration `envconfig:"BREAKER_COOLDOWN" default:"30s"`
}

// LoadConfig reads an optional .env and then the GATEWAY_ prefixed environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("GATEWAY", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load gateway config: %w", err)
	}
	if cfg.ServerURL == "" {
		return Config{}, fmt.Errorf("GATEWAY_SERVER_URL is required")
	}
	if cfg.RPS <= 0 {
		return Config{}, fmt.Errorf("invalid GATEWAY_RPS: must be positive, got %v", cfg.RPS)
	}
	if cfg.Burst <= 0 {
		return Config{}, fmt.Errorf("invalid GATEWAY_BURST: must be positive, got %d", cfg.Burst)
	}
	return cfg, nil
}
