package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/kotoba/internal/timex"
)

// JSONConfig is the on-disk shape of the configuration file. Absent or
// empty fields keep their earlier value.
type JSONConfig struct {
	ServerURL      string          `json:"server_url"`
	ChatModel      string          `json:"chat_model"`
	DBPath         string          `json:"db_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogFormat      string          `json:"log_format"`
	LogLevel       string          `json:"log_level"`
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJSON overlays cfg with the file at path.
func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	overlay(&cfg.ServerURL, jc.ServerURL)
	overlay(&cfg.ChatModel, jc.ChatModel)
	overlay(&cfg.DBPath, jc.DBPath)
	overlay(&cfg.LogFormat, jc.LogFormat)
	overlay(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}
