package models

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "RCA"

var sqlIdent = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// LoadConfig reads RCA_* environment variables, applying defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config from env: %w", err)
	}
	return cfg, nil
}

// Validate checks that a source is configured and the table name is safe to inline in SQL.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("sqlident", func(fl validator.FieldLevel) bool {
		return sqlIdent.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
