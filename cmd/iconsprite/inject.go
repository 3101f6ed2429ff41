// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/invowk/iconsprite/internal/issue"
	"github.com/invowk/iconsprite/internal/plugin"
)

type injectFlagValues struct {
	out   string
	write bool
}

// builtSprite is a sprite assembled once and shared by every page.
type builtSprite string

func (s builtSprite) Sprite(context.Context) string {
	return string(s)
}

func newInjectCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &injectFlagValues{}

	cmd := &cobra.Command{
		Use:   "inject <file.html>...",
		Short: "Inject the sprite into HTML pages",
		Long: `Inject the sprite right before the first </body> of each page.

Pages without </body> are left unchanged. By default the result is printed to
stdout; use --write to update the files in place.`,
		Example: `  iconsprite inject public/index.html
  iconsprite inject public/index.html --out dist/index.html
  iconsprite inject -w public/*.html`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInject(cmd, app, rootFlags, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "write the page to this file (single input only)")
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite the input files in place")
	cmd.MarkFlagsMutuallyExclusive("out", "write")

	return cmd
}

func runInject(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *injectFlagValues, files []string) error {
	ctx := cmd.Context()

	if len(files) > 1 && !flags.write {
		return fail(cmd, app.stderr, errors.New("multiple pages need --write"), rootFlags.verbose)
	}

	cfg, err := app.loadConfig(ctx, rootFlags)
	if err != nil {
		return fail(cmd, app.stderr, err, rootFlags.verbose)
	}
	builder, err := app.newBuilder(cfg, rootFlags.verbose)
	if err != nil {
		return fail(cmd, app.stderr, err, rootFlags.verbose)
	}

	p := plugin.New(builtSprite(builder.Sprite(ctx)), cfg.Dir,
		plugin.WithWatch(false),
		plugin.WithLogger(app.logger(plugin.Name, rootFlags.verbose)),
	)
	defer p.BuildEnd()

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fail(cmd, app.stderr, issue.WrapWithContext(err, "read page", file), rootFlags.verbose)
		}
		page := p.TransformIndexHTML(ctx, string(data))

		target := file
		switch {
		case flags.out != "":
			target = flags.out
		case !flags.write:
			fmt.Fprint(app.stdout, page)
			continue
		}
		if err := os.WriteFile(target, []byte(page), 0o644); err != nil {
			return fail(cmd, app.stderr, issue.WrapWithContext(err, "write page", target), rootFlags.verbose)
		}
		fmt.Fprintf(app.stderr, "%s %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(target))
	}
	return nil
}
