// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/invowk/iconsprite/internal/config"
	"github.com/invowk/iconsprite/internal/issue"
	"github.com/invowk/iconsprite/internal/normalize"
	"github.com/invowk/iconsprite/internal/sprite"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}, nil
}

// logger returns a component logger writing to the App's stderr.
func (a *App) logger(prefix string, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: prefix,
		Level:  level,
	})
}

// loadConfig loads the configuration, applies command-line overrides and
// validates the result.
func (a *App) loadConfig(ctx context.Context, flags *rootFlagValues) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		return nil, err
	}

	applyRootOverrides(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Pass the icons directory with --dir or set 'dir' in " + config.FileName()).
			WithSuggestion("Run 'iconsprite config show' to see the effective configuration").
			Wrap(err).
			BuildError()
	}
	return cfg, nil
}

// newBuilder creates the sprite builder for cfg.
func (a *App) newBuilder(cfg *config.Config, verbose bool) (*sprite.Builder, error) {
	n, err := normalize.New(cfg.Normalize)
	if err != nil {
		return nil, err
	}
	return sprite.NewBuilder(cfg.Dir,
		sprite.WithPrefix(cfg.Prefix),
		sprite.WithIgnore(cfg.Ignore...),
		sprite.WithNormalizer(n),
		sprite.WithLogger(a.logger("sprite", verbose)),
	), nil
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
