package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the service configuration. Environment variables use the
// MIDWAY_ prefix, e.g. MIDWAY_PORT.
type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	AWSRegion string `envconfig:"AWS_REGION" default:"us-east-1"`

	// Avatar storage
	AvatarBucket string `envconfig:"AVATAR_BUCKET" default:"midway-avatars"`

	// Place-search collaborator; empty base URL disables it and candidate
	// generation runs on synthetic fallbacks only
	PlacesBaseURL        string `envconfig:"PLACES_BASE_URL" default:""`
	PlacesAPIKey         string `envconfig:"PLACES_API_KEY" default:""`
	PlacesTimeoutSeconds int    `envconfig:"PLACES_TIMEOUT_SECONDS" default:"3"`

	// Presence freshness window in seconds
	PresenceFreshnessSeconds int `envconfig:"PRESENCE_FRESHNESS_SECONDS" default:"120"`

	// Background loop intervals
	MatchSweepSeconds    int `envconfig:"MATCH_SWEEP_SECONDS" default:"60"`
	ProximityScanSeconds int `envconfig:"PROXIMITY_SCAN_SECONDS" default:"1"`
}

// Load parses the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("midway", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// PlacesTimeout returns the place-search timeout as a duration
func (c *Config) PlacesTimeout() time.Duration {
	return time.Duration(c.PlacesTimeoutSeconds) * time.Second
}

// PresenceFreshness returns the presence freshness window as a duration
func (c *Config) PresenceFreshness() time.Duration {
	return time.Duration(c.PresenceFreshnessSeconds) * time.Second
}
