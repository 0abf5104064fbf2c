package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are CLI defaults taken from the environment. Flags override them.
type Settings struct {
	RemoveDuplicates bool   `env:"PROFILEFIX_REMOVE_DUPLICATES" envDefault:"false"`
	TuningPath       string `env:"PROFILEFIX_CONFIG"`
	Verbose          bool   `env:"PROFILEFIX_VERBOSE" envDefault:"false"`
}

// ParseEnv loads Settings from environment variables.
func ParseEnv() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
