package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Variant is the round timing configuration for a single game variant
type Variant struct {
	CountdownSeconds     int `yaml:"countdownSeconds" envconfig:"countdown_seconds"`
	CalculationThreshold int `yaml:"calculationThreshold" envconfig:"calculation_threshold"`
	CooldownSeconds      int `yaml:"cooldownSeconds" envconfig:"cooldown_seconds"`
	RetryDelaySeconds    int `yaml:"retryDelaySeconds" envconfig:"retry_delay_seconds"`
	MaxRetries           int `yaml:"maxRetries" envconfig:"max_retries"`
}

// Config provides configuration for the live games server
type Config struct {
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Log            struct {
		Level string `yaml:"level"`
	}
	Greedy    Variant `yaml:"greedy"`
	TeenPatti Variant `yaml:"teenPatti" envconfig:"teen_patti"`
}

// Load will load the configuration from the YAML file at path, then apply
// LGS_* environment overrides. A missing file is not an error; the defaults
// plus the environment are used instead.
func Load(path string) (Config, error) {
	var config Config

	file, err := os.Open(path)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return Config{}, err
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	if err := envconfig.Process("lgs", &config); err != nil {
		return Config{}, err
	}

	config.applyDefaults()
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.PGDSN == "" {
		c.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	}

	if c.MigrationsPath == "" {
		c.MigrationsPath = "./sql"
	}

	applyVariantDefaults(&c.Greedy, 15, 3)
	applyVariantDefaults(&c.TeenPatti, 25, 6)
}

func applyVariantDefaults(v *Variant, countdown, cooldown int) {
	if v.CountdownSeconds == 0 {
		v.CountdownSeconds = countdown
	}

	if v.CalculationThreshold == 0 {
		v.CalculationThreshold = 5
	}

	if v.CooldownSeconds == 0 {
		v.CooldownSeconds = cooldown
	}

	if v.RetryDelaySeconds == 0 {
		v.RetryDelaySeconds = 2
	}

	if v.MaxRetries == 0 {
		v.MaxRetries = 5
	}
}
