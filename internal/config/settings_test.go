package config

import (
	"testing"
	"time"
)

type fakeSettings map[string]string

func (f fakeSettings) GetSetting(key string) (string, error) {
	return f[key], nil
}

func TestLoader_TypedAccess(t *testing.T) {
	loader := NewLoader(fakeSettings{
		"log.max_backups": "7",
		"log.compress":    "false",
		"log.level":       "debug",
		"poll.interval":   "90s",
		"bad.int":         "not-a-number",
	})

	if got := loader.Int("log.max_backups", 3); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := loader.Int("bad.int", 3); got != 3 {
		t.Fatalf("expected fallback 3 for unparsable value, got %d", got)
	}
	if got := loader.Int("missing", 5); got != 5 {
		t.Fatalf("expected default 5, got %d", got)
	}

	if loader.Bool("log.compress", true) {
		t.Fatal("expected explicit 'false' to win over the default")
	}
	if !loader.Bool("missing.bool", true) {
		t.Fatal("expected default true for missing key")
	}

	if got := loader.String("log.level", "info"); got != "debug" {
		t.Fatalf("expected 'debug', got %q", got)
	}
	if got := loader.String("missing", "info"); got != "info" {
		t.Fatalf("expected default 'info', got %q", got)
	}

	if got := loader.Duration("poll.interval", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
	if got := loader.Duration("missing", time.Minute); got != time.Minute {
		t.Fatalf("expected default 1m, got %v", got)
	}
}
