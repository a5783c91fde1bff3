package config

import (
	"github.com/caarlos0/env/v11"

	"campaign-insights/internal/config/configs"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library.
// The nested structs are tagged with envPrefix so their fields are parsed
// with the given prefix. See the configs package for defaults.
type Config struct {
	// Env names the deployment environment (e.g. prod, dev). It is attached
	// to every log line.
	Env string `env:"ENV" envDefault:"prod"`

	HTTP configs.HTTP   `envPrefix:"HTTP_"`
	Log  configs.Logger `envPrefix:"LOG_"`

	// Segment holds the clustering defaults used when a request does not
	// name a cluster count.
	Segment configs.Segment `envPrefix:"SEGMENT_"`

	Insight    configs.Insight    `envPrefix:"INSIGHT_"`
	Completion configs.Completion `envPrefix:"COMPLETION_"`

	// Redis enables the completion cache when ADDR is set.
	Redis configs.Redis `envPrefix:"REDIS_"`

	// S3 enables dataset import and export through object storage.
	S3 configs.S3 `envPrefix:"S3_"`

	Mailer configs.Mailer `envPrefix:"MAILER_"`
	Ledger configs.Ledger `envPrefix:"LEDGER_"`
}

// Load reads configuration from environment variables into a Config and
// checks it. All fields take their defaults when no variable is set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Segment.Validate(); err != nil {
		return cfg, err
	}
	if err := cfg.Completion.Validate(); err != nil {
		return cfg, err
	}
	if err := cfg.Mailer.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
