// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/iconsprite/internal/config"
	"github.com/invowk/iconsprite/internal/issue"
)

// newConfigCommand creates the `iconsprite config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage iconsprite configuration",
		Long: `Manage iconsprite configuration.

Configuration is read from ./` + config.FileName() + ` (or the file given with
--config) and can be overridden with ` + config.EnvPrefix + `_* environment
variables, e.g. ` + config.EnvPrefix + `_DIR or ` + config.EnvPrefix + `_SERVE_ADDR.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app, rootFlags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: rootFlags.configPath})
			if err != nil {
				return fail(cmd, app.stderr, err, rootFlags.verbose)
			}
			applyRootOverrides(cfg, rootFlags)
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a configuration file in the current directory",
		Long: `Create a configuration file with the default settings.

The icons directory is taken from --dir (default "icons"). An existing file
is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, app, rootFlags)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file that would be read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := config.LoadWithPath(cmd.Context(), config.LoadOptions{ConfigFilePath: rootFlags.configPath})
			if err != nil {
				return fail(cmd, app.stderr, err, rootFlags.verbose)
			}
			if path == "" {
				fmt.Fprintln(app.stdout, SubtitleStyle.Render("(using defaults)"))
				return nil
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, rootFlags *rootFlagValues) error {
	cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: rootFlags.configPath})
	if err != nil {
		if rendered, renderErr := issue.Get(issue.ConfigLoadFailedId).Render("dark"); renderErr == nil {
			fmt.Fprint(app.stderr, rendered)
		}
		return fail(cmd, app.stderr, err, rootFlags.verbose)
	}
	applyRootOverrides(cfg, rootFlags)

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	row := func(key, value string) {
		if value == "" {
			value = SubtitleStyle.Render("(not set)")
		} else {
			value = valueStyle.Render(value)
		}
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render(key), value)
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)
	row("dir", cfg.Dir)
	row("prefix", cfg.Prefix)
	row("watch", strconv.FormatBool(cfg.Watch))
	row("ignore", strings.Join(cfg.Ignore, ", "))
	row("debounce", cfg.Debounce.String())
	row("normalize.passes", strings.Join(cfg.Normalize.Passes, ", "))
	for _, sub := range cfg.Normalize.Substitutions {
		row("normalize.substitutions", fmt.Sprintf("%s: %s -> %s", sub.Name, sub.Pattern, sub.Replacement))
	}
	row("serve.addr", cfg.Serve.Addr)
	row("serve.root", cfg.Serve.Root)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(app.stdout)
		fmt.Fprintf(app.stdout, "%s %s\n", WarningStyle.Render("!"), err)
	}
	return nil
}

func initConfig(cmd *cobra.Command, app *App, rootFlags *rootFlagValues) error {
	path := rootFlags.configPath
	if path == "" {
		path = config.FileName()
	}
	iconsDir := rootFlags.dir
	if iconsDir == "" {
		iconsDir = "icons"
	}

	created, err := config.CreateDefaultConfig(path, iconsDir)
	if err != nil {
		return fail(cmd, app.stderr, issue.WrapWithContext(err, "create configuration", path), rootFlags.verbose)
	}
	if !created {
		fmt.Fprintf(app.stdout, "%s %s already exists, left unchanged\n", WarningStyle.Render("!"), CmdStyle.Render(path))
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(path))
	return nil
}

// applyRootOverrides applies --dir and --prefix on top of the loaded config.
func applyRootOverrides(cfg *config.Config, flags *rootFlagValues) {
	if flags.dir != "" {
		cfg.Dir = flags.dir
	}
	if flags.prefix != "" {
		cfg.Prefix = flags.prefix
	}
}
