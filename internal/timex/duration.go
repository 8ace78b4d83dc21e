// Package timex holds time helpers shared by configuration and local stores.
package timex

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration so it can be read from JSON ("3s" or integer
// nanoseconds) and from environment variables ("15s", "7d").
type Duration struct {
	time.Duration
}

// ParseDuration accepts Go duration syntax plus a whole-day suffix "d".
func ParseDuration(v string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(v, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid days value: %w", err)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %w", err)
	}
	return d, nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// EnvDecode implements envconfig.Decoder.
func (d *Duration) EnvDecode(_ context.Context, v string) error {
	if v == "" {
		return nil
	}
	parsed, err := ParseDuration(v)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// UnmarshalText accepts the same syntax as ParseDuration.
func (d *Duration) UnmarshalText(b []byte) error {
	return d.EnvDecode(context.Background(), string(b))
}
