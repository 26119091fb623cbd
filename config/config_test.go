package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	_ = os.Unsetenv("MIDWAY_PORT")
	_ = os.Unsetenv("MIDWAY_PLACES_TIMEOUT_SECONDS")
	_ = os.Unsetenv("MIDWAY_PRESENCE_FRESHNESS_SECONDS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port: %s", cfg.Port)
	}
	if cfg.PlacesTimeout() != 3*time.Second {
		t.Fatalf("unexpected default places timeout: %v", cfg.PlacesTimeout())
	}
	if cfg.PresenceFreshness() != 2*time.Minute {
		t.Fatalf("unexpected default freshness window: %v", cfg.PresenceFreshness())
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	_ = os.Setenv("MIDWAY_PORT", "9999")
	defer func() { _ = os.Unsetenv("MIDWAY_PORT") }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.Port != "9999" {
		t.Fatalf("port env override failed, got %s", cfg.Port)
	}
}
