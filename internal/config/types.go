// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/invowk/iconsprite/internal/normalize"
	"github.com/invowk/iconsprite/internal/scan"
	"github.com/invowk/iconsprite/internal/sprite"
)

const (
	// DefaultServeAddr is the dev server listen address.
	DefaultServeAddr = "127.0.0.1:5173"
	// DefaultServeRoot is the directory served by the dev server.
	DefaultServeRoot = "."
)

// ErrInvalidConfig is the sentinel error wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config is the effective iconsprite configuration.
	Config struct {
		// Dir is the icons directory. Required.
		Dir string `json:"dir,omitempty" mapstructure:"dir"`
		// Prefix is the symbol identifier prefix.
		Prefix string `json:"prefix,omitempty" mapstructure:"prefix"`
		// Watch enables the directory watcher when serving.
		Watch bool `json:"watch,omitempty" mapstructure:"watch"`
		// Ignore lists doublestar globs matched against icon file names.
		Ignore []string `json:"ignore,omitempty" mapstructure:"ignore"`
		// Debounce is the watch coalescing window; zero delivers every event.
		Debounce time.Duration `json:"debounce,omitempty" mapstructure:"debounce"`
		// Normalize configures additional passes and substitutions.
		Normalize normalize.Config `json:"normalize,omitempty" mapstructure:"normalize"`
		// Serve configures the development server.
		Serve ServeConfig `json:"serve,omitempty" mapstructure:"serve"`
	}

	// ServeConfig configures the development server.
	ServeConfig struct {
		// Addr is the listen address.
		Addr string `json:"addr,omitempty" mapstructure:"addr"`
		// Root is the site directory whose files are served.
		Root string `json:"root,omitempty" mapstructure:"root"`
	}
)

// DefaultConfig returns the configuration used when no file or env override is present.
func DefaultConfig() *Config {
	return &Config{
		Prefix: sprite.DefaultPrefix,
		Ignore: []string{},
		Normalize: normalize.Config{
			Passes:        []string{},
			Substitutions: []normalize.SubstitutionRule{},
		},
		Serve: ServeConfig{
			Addr: DefaultServeAddr,
			Root: DefaultServeRoot,
		},
	}
}

// Validate checks constraints that the file schema cannot see, such as values
// coming from flags or the environment. Dir is required.
func (c *Config) Validate() error {
	var errs []error
	if c.Dir == "" {
		errs = append(errs, errors.New("dir: the icons directory is required"))
	}
	if c.Prefix == "" {
		errs = append(errs, errors.New("prefix: must not be empty"))
	}
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce: must not be negative, got %s", c.Debounce))
	}
	if err := scan.ValidatePatterns(c.Ignore); err != nil {
		errs = append(errs, fmt.Errorf("ignore: %w", err))
	}
	if err := normalize.ValidateConfig(c.Normalize); err != nil {
		errs = append(errs, fmt.Errorf("normalize: %w", err))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
