package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func flags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "kotoba.db", filepath.Base(c.DBPath))
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), nil, envconfig.MapLookuper(nil))
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, cfg))
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"server_url":      "http://json:1",
		"chat_model":      "json-model",
		"db_path":         "/tmp/json.db",
		"request_timeout": "20s",
		"log_level":       "debug",
	})

	env := envconfig.MapLookuper(map[string]string{
		"KOTOBA_SERVER_URL":      "http://env:2",
		"KOTOBA_REQUEST_TIMEOUT": "30s",
		"SERVER_URL":             "http://unprefixed:9",
	})

	fs := flags(t, "-c", path, "--server", "http://flag:3", "--log-format", "json")

	cfg, err := LoadFrom(context.Background(), fs, env)
	require.NoError(t, err)

	assert.Equal(t, "http://flag:3", cfg.ServerURL)
	assert.Equal(t, "json-model", cfg.ChatModel)
	assert.Equal(t, "/tmp/json.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	env := envconfig.MapLookuper(map[string]string{"KOTOBA_CHAT_MODEL": "env-model"})

	cfg, err := LoadFrom(context.Background(), flags(t, "--timeout", "5s"), env)
	require.NoError(t, err)
	assert.Equal(t, "env-model", cfg.ChatModel)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := LoadFrom(ctx, flags(t, "-c", filepath.Join(t.TempDir(), "missing.json")), envconfig.MapLookuper(nil))
	assert.ErrorContains(t, err, "failed to read config file")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
	_, err = LoadFrom(ctx, flags(t, "--config", bad), envconfig.MapLookuper(nil))
	assert.ErrorContains(t, err, "failed to parse config file")

	_, err = LoadFrom(ctx, nil, envconfig.MapLookuper(map[string]string{"KOTOBA_REQUEST_TIMEOUT": "soon"}))
	assert.ErrorContains(t, err, "failed to read environment")
}
