// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"strings"

	pkgconfig "github.com/elbatin/JustzMatbaa/pkg/config"
)

// Config holds every runtime setting for the print shop service.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"justzmatbaa"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPPort            int `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeoutSecs int `env:"SHUTDOWN_TIMEOUT_SECS" envDefault:"15"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// CartTTLHours bounds how long an untouched cart survives. 0 keeps
	// carts forever.
	CartTTLHours int `env:"CART_TTL_HOURS" envDefault:"168"`

	// KafkaBrokers is a comma-separated broker list. Empty disables event
	// publishing entirely.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	// AdminAPIToken gates the admin surface. The admin API is disabled when
	// the token is empty.
	AdminAPIToken string `env:"ADMIN_API_TOKEN" envDefault:""`

	// PaymentDelayMS simulates the payment gateway round trip at checkout.
	PaymentDelayMS int `env:"PAYMENT_DELAY_MS" envDefault:"2000"`

	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := pkgconfig.Load(&cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if c.CartTTLHours < 0 {
		return fmt.Errorf("CART_TTL_HOURS must not be negative")
	}
	if c.PaymentDelayMS < 0 {
		return fmt.Errorf("PAYMENT_DELAY_MS must not be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL: %q", c.LogLevel)
	}
	if c.TraceSampleRate < 0 || c.TraceSampleRate > 1 {
		return fmt.Errorf("TRACE_SAMPLE_RATE must be within [0,1]")
	}
	return nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}
