// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/invowk/iconsprite/internal/devserver"
	"github.com/invowk/iconsprite/internal/plugin"
)

type serveFlagValues struct {
	addr    string
	root    string
	noWatch bool
}

func newServeCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &serveFlagValues{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a site with the sprite injected and live reload",
		Long: `Serve the files of a site directory. Every HTML page gets the current sprite
injected before </body> together with a small live-reload client.

When watching is enabled, any change to an icon makes connected browsers
reload the whole page. Prometheus metrics are exposed on ` + devserver.MetricsPath + `.`,
		Example: `  iconsprite serve --root public
  iconsprite serve --addr :8080 --no-watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, app, rootFlags, flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (overrides the config file)")
	cmd.Flags().StringVar(&flags.root, "root", "", "site directory (overrides the config file)")
	cmd.Flags().BoolVar(&flags.noWatch, "no-watch", false, "do not watch the icons directory")

	return cmd
}

func runServe(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *serveFlagValues) error {
	ctx := cmd.Context()

	cfg, err := app.loadConfig(ctx, rootFlags)
	if err != nil {
		return fail(cmd, app.stderr, err, rootFlags.verbose)
	}
	if flags.addr != "" {
		cfg.Serve.Addr = flags.addr
	}
	if flags.root != "" {
		cfg.Serve.Root = flags.root
	}

	builder, err := app.newBuilder(cfg, rootFlags.verbose)
	if err != nil {
		return fail(cmd, app.stderr, err, rootFlags.verbose)
	}

	p := plugin.NewFromBuilder(builder,
		plugin.WithWatch(cfg.Watch && !flags.noWatch),
		plugin.WithIgnore(cfg.Ignore...),
		plugin.WithDebounce(cfg.Debounce),
		plugin.WithLogger(app.logger(plugin.Name, rootFlags.verbose)),
	)
	srv := devserver.New(devserver.Config{Addr: cfg.Serve.Addr, Root: cfg.Serve.Root}, p, builder,
		devserver.WithLogger(app.logger("serve", rootFlags.verbose)),
	)

	if err := srv.Start(ctx); err != nil {
		return fail(cmd, app.stderr, err, rootFlags.verbose)
	}
	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-srv.Err():
	}

	// ctx is already done on Ctrl+C; Stop applies its own shutdown timeout.
	if err := srv.Stop(context.WithoutCancel(ctx)); err != nil && serveErr == nil {
		serveErr = err
	}
	if serveErr != nil {
		return fail(cmd, app.stderr, serveErr, rootFlags.verbose)
	}
	return nil
}
