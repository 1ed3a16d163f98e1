// Package config reads the binary's settings from the environment.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	LogLevel string `env:"GOEVENTS_LOG_LEVEL" envDefault:"info"`
	// Focusin controls whether documents fire focusin/focusout. Turning it
	// off exercises the engine's capture based focus emulation.
	Focusin bool   `env:"GOEVENTS_FOCUSIN" envDefault:"true"`
	Script  string `env:"GOEVENTS_SCRIPT"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}

func (c Config) Level() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel, errors.Wrapf(err, "GOEVENTS_LOG_LEVEL %q", c.LogLevel)
	}
	return lvl, nil
}
