// Package config loads the kotoba client settings.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. An optional JSON file named by --config/-c.
//  3. KOTOBA_* environment variables.
//  4. Command-line flags that were explicitly set.
//
// Flags registered by BindFlags:
//
//	-c, --config string       JSON configuration file
//	-s, --server string       API gateway base URL
//	    --model string        chat model name
//	    --db string           path of the local SQLite database
//	    --timeout duration    request timeout
//	    --log-format string   text, json or zap
//	    --log-level string    debug, info, warn or error
//
// # JSON schema
//
// Durations are strings like "15s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "chat_model": "kotoba-tutor",
//	  "db_path": "/home/me/.config/kotoba/kotoba.db",
//	  "request_timeout": "15s",
//	  "log_format": "text",
//	  "log_level": "info"
//	}
//
// # Environment
//
// KOTOBA_SERVER_URL, KOTOBA_CHAT_MODEL, KOTOBA_DB_PATH,
// KOTOBA_REQUEST_TIMEOUT, KOTOBA_LOG_FORMAT, KOTOBA_LOG_LEVEL.
package config
