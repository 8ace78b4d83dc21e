package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/pflag"
)

// Config holds runtime settings of the kotoba client.
type Config struct {
	ServerURL      string
	ChatModel      string
	DBPath         string
	RequestTimeout time.Duration
	LogFormat      string
	LogLevel       string
}

// LoadDefaults populates c with defaults for a gateway on localhost.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.ChatModel = "kotoba-tutor"
	c.DBPath = defaultDBPath()
	c.RequestTimeout = 15 * time.Second
	c.LogFormat = "text"
	c.LogLevel = "warn"
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "kotoba.db"
	}
	return filepath.Join(dir, "kotoba", "kotoba.db")
}

// Load builds a Config from defaults, the JSON file, the process
// environment and the flags in fs. fs may be nil.
func Load(ctx context.Context, fs *pflag.FlagSet) (*Config, error) {
	return LoadFrom(ctx, fs, envconfig.OsLookuper())
}

// LoadFrom is Load with an explicit environment source.
func LoadFrom(ctx context.Context, fs *pflag.FlagSet, env envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if fs != nil {
		if path, _ := fs.GetString(flagConfig); path != "" {
			if err := parseJSON(cfg, path); err != nil {
				return nil, err
			}
		}
	}
	if err := parseEnv(ctx, cfg, env); err != nil {
		return nil, err
	}
	if fs != nil {
		if err := parseFlags(cfg, fs); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
