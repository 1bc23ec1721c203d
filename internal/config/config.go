package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/sithvalentine/wealth-builder-mvp/internal/domain"
)

type Config struct {
	Log struct {
		Mode  string `yaml:"mode" validate:"omitempty,oneof=development production dev prod"`
		Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	Store struct {
		Driver string `yaml:"driver" validate:"required,oneof=sqlite postgres memory"`
		DSN    string `yaml:"dsn" validate:"required_unless=Driver memory"`
	} `yaml:"store"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db" validate:"gte=0"`
	} `yaml:"redis"`
	Quiz struct {
		TTL     string `yaml:"ttl"`
		LockTTL string `yaml:"lockTtl"`
	} `yaml:"quiz"`
	Grading struct {
		DefaultWeights Weights `yaml:"defaultWeights"`
	} `yaml:"grading"`
}

// Weights mirrors domain.CategoryWeights with every value required.
type Weights struct {
	Projects      *float64 `yaml:"projects" validate:"required,gte=0"`
	Quiz          *float64 `yaml:"quiz" validate:"required,gte=0"`
	Participation *float64 `yaml:"participation" validate:"required,gte=0"`
	RealWorld     *float64 `yaml:"realWorld" validate:"required,gte=0"`
}

func (w Weights) Domain() domain.CategoryWeights {
	return domain.CategoryWeights{
		Projects:      deref(w.Projects),
		Quiz:          deref(w.Quiz),
		Participation: deref(w.Participation),
		RealWorld:     deref(w.RealWorld),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Load reads YAML config from path and validates it.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks required settings once at load time.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
