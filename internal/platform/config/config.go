// Package config loads service-level configuration from the environment.
// Adapter-specific settings (model names, binary paths) live next to their
// adapters; this struct only carries what the composition root wires itself.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration.
type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	// EnhancedDir is where generated studio images are persisted.
	EnhancedDir string `env:"ENHANCED_DIR" envDefault:"enhanced_images"`

	// ClassifierRPM limits vision-model calls per minute across all scans.
	ClassifierRPM int `env:"CLASSIFIER_RPM" envDefault:"30"`

	// ScanCacheTTL is how long completed scan results stay cached in Redis.
	ScanCacheTTL time.Duration `env:"SCAN_CACHE_TTL" envDefault:"1h"`

	// ProbeTimeout bounds the pre-download URL reachability check.
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT" envDefault:"10s"`

	// JWTExpiration is the lifetime of issued access tokens.
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"1h"`

	// BrandDetection enables the Cloud Vision logo-hint pass on the top product.
	BrandDetection bool `env:"BRAND_DETECTION" envDefault:"false"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
