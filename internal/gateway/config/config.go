// Package config loads the development gateway settings from GATEWAY_*
// environment variables.
package config

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/kotoba/internal/timex"
	"github.com/sethvargo/go-envconfig"
)

const envPrefix = "GATEWAY_"

type Config struct {
	Addr string `env:"ADDR,default=:8080"`

	JWTSecret string         `env:"JWT_SECRET,default=kotoba-development-secret-change-me"`
	TokenTTL  timex.Duration `env:"TOKEN_TTL,default=24h"`

	// OTPCode, when set, is issued for every recovery request instead of a
	// random code.
	OTPCode string         `env:"OTP_CODE"`
	OTPTTL  timex.Duration `env:"OTP_TTL,default=10m"`

	ReadTimeout  timex.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout timex.Duration `env:"WRITE_TIMEOUT,default=30s"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
}

// Load reads the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads GATEWAY_* keys from l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config

	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(envPrefix, l),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("%sJWT_SECRET must be at least 32 characters long", envPrefix)
	}
	return &cfg, nil
}
