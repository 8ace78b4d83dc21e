package config

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/kotoba/internal/timex"
	"github.com/sethvargo/go-envconfig"
)

const envPrefix = "KOTOBA_"

type envConfig struct {
	ServerURL      string         `env:"SERVER_URL"`
	ChatModel      string         `env:"CHAT_MODEL"`
	DBPath         string         `env:"DB_PATH"`
	RequestTimeout timex.Duration `env:"REQUEST_TIMEOUT"`
	LogFormat      string         `env:"LOG_FORMAT"`
	LogLevel       string         `env:"LOG_LEVEL"`
}

// parseEnv overlays cfg with the KOTOBA_* variables found in l.
func parseEnv(ctx context.Context, cfg *Config, l envconfig.Lookuper) error {
	var ec envConfig

	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &ec,
		Lookuper: envconfig.PrefixLookuper(envPrefix, l),
	})
	if err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	overlay(&cfg.ServerURL, ec.ServerURL)
	overlay(&cfg.ChatModel, ec.ChatModel)
	overlay(&cfg.DBPath, ec.DBPath)
	overlay(&cfg.LogFormat, ec.LogFormat)
	overlay(&cfg.LogLevel, ec.LogLevel)
	if ec.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = ec.RequestTimeout.Duration
	}
	return nil
}
