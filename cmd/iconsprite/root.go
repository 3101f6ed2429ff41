// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/invowk/iconsprite/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	verbose    bool
	configPath string
	dir        string
	prefix     string
}

// NewRootCommand creates the root command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "iconsprite",
		Short: "Bundle a directory of SVG icons into an inline sprite",
		Long: TitleStyle.Render("iconsprite") + SubtitleStyle.Render(" - Bundle a directory of SVG icons into an inline sprite") + `

iconsprite reads every '.svg' file of a directory, optimizes it and wraps it
in a <symbol> element. The symbols are collected into one hidden <svg> sprite
that is injected right before </body> of your HTML pages, so icons can be
referenced with <use href="#icon-name"/>.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a config file with: iconsprite config init --dir ./src/icons
  2. Serve your site with live reload: iconsprite serve --root ./public

` + SubtitleStyle.Render("Examples:") + `
  iconsprite build --dir icons            Print the sprite
  iconsprite build --out dist/sprite.svg  Write the sprite to a file
  iconsprite inject site/index.html       Inject the sprite into a page
  iconsprite watch                        Print icon changes as they happen
  iconsprite explain no-icons-found       Explain a warning`,
		SilenceUsage: true,
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&flags.configPath, "config", "", "config file (default is ./"+config.FileName()+")")
	pf.StringVarP(&flags.dir, "dir", "d", "", "icons directory (overrides the config file)")
	pf.StringVarP(&flags.prefix, "prefix", "p", "", "symbol id prefix (overrides the config file)")

	rootCmd.AddCommand(
		newBuildCommand(app, flags),
		newInjectCommand(app, flags),
		newWatchCommand(app, flags),
		newServeCommand(app, flags),
		newConfigCommand(app, flags),
		newExplainCommand(app),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the root command.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// fail renders err on w and returns an ExitError so that cobra does not print
// it a second time.
func fail(cmd *cobra.Command, w io.Writer, err error, verbose bool) error {
	fmt.Fprintln(w, ErrorStyle.Render("✗ ")+formatErrorForDisplay(err, verbose))
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: 1, Err: err}
}
