package config

import (
	"github.com/skillsenselab/fpipe/logger"
	"github.com/skillsenselab/fpipe/validation"
	"github.com/skillsenselab/fpipe/variable"
)

// Settings is the root configuration for the library.
type Settings struct {
	Name     string         `yaml:"name" mapstructure:"name" validate:"required"`
	Logging  logger.Config  `yaml:"logging" mapstructure:"logging"`
	Resolver ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
}

// ResolverConfig tunes the value resolver.
type ResolverConfig struct {
	// MaxDepth bounds recursive substitution inside nested structures.
	MaxDepth int `yaml:"max_depth" mapstructure:"max_depth" validate:"gte=1,lte=1000"`
}

// ApplyDefaults applies default values to the settings.
func (s *Settings) ApplyDefaults() {
	if s.Name == "" {
		s.Name = "fpipe"
	}
	s.Logging.ApplyDefaults()
	if s.Resolver.MaxDepth == 0 {
		s.Resolver.MaxDepth = variable.DefaultMaxDepth
	}
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	if err := s.Logging.Validate(); err != nil {
		return err
	}
	return validation.Validate(s)
}

// Default returns settings with all defaults applied.
func Default() Settings {
	var s Settings
	s.ApplyDefaults()
	return s
}
