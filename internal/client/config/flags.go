package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

const (
	flagConfig    = "config"
	flagServer    = "server"
	flagModel     = "model"
	flagDB        = "db"
	flagTimeout   = "timeout"
	flagLogFormat = "log-format"
	flagLogLevel  = "log-level"
)

// BindFlags registers the configuration flags on fs. Their defaults are
// empty: only flags the user sets take part in Load.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP(flagConfig, "c", "", "JSON configuration file")
	fs.StringP(flagServer, "s", "", "API gateway base URL")
	fs.String(flagModel, "", "chat model name")
	fs.String(flagDB, "", "path of the local database")
	fs.Duration(flagTimeout, 0, "request timeout, e.g. 15s")
	fs.String(flagLogFormat, "", "log format: text, json or zap")
	fs.String(flagLogLevel, "", "log level: debug, info, warn or error")
}

// parseFlags copies the flags that were explicitly set into cfg.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	strs := map[string]*string{
		flagServer:    &cfg.ServerURL,
		flagModel:     &cfg.ChatModel,
		flagDB:        &cfg.DBPath,
		flagLogFormat: &cfg.LogFormat,
		flagLogLevel:  &cfg.LogLevel,
	}
	for name, dst := range strs {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return fmt.Errorf("flag --%s: %w", name, err)
		}
		*dst = v
	}

	if fs.Lookup(flagTimeout) != nil && fs.Changed(flagTimeout) {
		d, err := fs.GetDuration(flagTimeout)
		if err != nil {
			return fmt.Errorf("flag --%s: %w", flagTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
