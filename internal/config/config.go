// Package config loads server configuration from environment variables.
package config

import (
	"fmt"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/breakwater-app/breakwater/internal/detect"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	DriverMemory    = "memory"
	DriverFirestore = "firestore"
	DriverPostgres  = "postgres"
)

// Config holds the server configuration. Every field maps to an
// environment variable named in its koanf tag.
type Config struct {
	// Port the HTTP server listens on.
	Port int `koanf:"PORT"`

	// StorageDriver selects the persistence backend: memory, firestore
	// or postgres.
	StorageDriver string `koanf:"STORAGE_DRIVER"`

	// ProjectID is the Google Cloud project for the firestore driver.
	ProjectID string `koanf:"GOOGLE_CLOUD_PROJECT"`

	Postgres PostgresConfig

	Detect DetectConfig
}

// PostgresConfig holds connection settings for the postgres driver.
type PostgresConfig struct {
	Host     string `koanf:"POSTGRES_HOST"`
	Port     int    `koanf:"POSTGRES_PORT"`
	Database string `koanf:"POSTGRES_DB"`
	User     string `koanf:"POSTGRES_USER"`
	Password string `koanf:"POSTGRES_PASSWORD"`
	SSLMode  string `koanf:"POSTGRES_SSLMODE"`
}

// DetectConfig holds the tunable knobs of the detection engine.
type DetectConfig struct {
	ToleranceAbs float64 `koanf:"DETECT_TOLERANCE_ABS"`
	TolerancePct float64 `koanf:"DETECT_TOLERANCE_PCT"`
	MinScore     float64 `koanf:"DETECT_MIN_SCORE"`
	ScoringModel string  `koanf:"DETECT_SCORING_MODEL"`
	Weekly       bool    `koanf:"DETECT_WEEKLY"`
}

// Load reads configuration from the environment and applies defaults.
func Load() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	// Flat env keys do not reach nested structs through the outer
	// unmarshal, so each section binds separately.
	var cfg Config
	for _, target := range []any{&cfg, &cfg.Postgres, &cfg.Detect} {
		if err := k.UnmarshalWithConf("", target, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
			return Config{}, fmt.Errorf("unmarshaling config: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.StorageDriver == "" {
		c.StorageDriver = DriverMemory
	}
	if c.Postgres.Port == 0 {
		c.Postgres.Port = 5432
	}
	if c.Detect.ToleranceAbs == 0 {
		c.Detect.ToleranceAbs = 2.0
	}
	if c.Detect.TolerancePct == 0 {
		c.Detect.TolerancePct = 0.06
	}
	if c.Detect.MinScore == 0 {
		c.Detect.MinScore = 0.6
	}
	if c.Detect.ScoringModel == "" {
		c.Detect.ScoringModel = string(detect.ScoringAdditive)
	}
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverFirestore, DriverPostgres:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch detect.ScoringModel(c.Detect.ScoringModel) {
	case detect.ScoringAdditive, detect.ScoringTiers:
	default:
		return fmt.Errorf("unknown DETECT_SCORING_MODEL %q", c.Detect.ScoringModel)
	}
	if c.StorageDriver == DriverFirestore && c.ProjectID == "" {
		return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required for the firestore driver")
	}
	if c.StorageDriver == DriverPostgres && c.Postgres.Host == "" {
		return fmt.Errorf("POSTGRES_HOST is required for the postgres driver")
	}
	return nil
}

// DetectorConfig converts the environment knobs into engine configuration.
func (c Config) DetectorConfig() detect.Config {
	return detect.Config{
		ToleranceAbs: c.Detect.ToleranceAbs,
		TolerancePct: c.Detect.TolerancePct,
		MinScore:     c.Detect.MinScore,
		ScoringModel: detect.ScoringModel(c.Detect.ScoringModel),
		Weekly:       c.Detect.Weekly,
	}
}
