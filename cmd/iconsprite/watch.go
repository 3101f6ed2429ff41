// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/invowk/iconsprite/internal/issue"
	"github.com/invowk/iconsprite/internal/watch"
)

type watchFlagValues struct {
	out      string
	debounce time.Duration
}

func newWatchCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &watchFlagValues{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report icon changes and optionally keep a sprite file up to date",
		Long: `Watch the icons directory and print one line per change until interrupted.

With --out the sprite is written once at startup and rebuilt after every
change. Only top-level '.svg' files are watched.`,
		Example: `  iconsprite watch
  iconsprite watch --out dist/sprite.svg --debounce 100ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, app, rootFlags, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "rebuild the sprite into this file on every change")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", 0, "collapse bursts of changes (overrides the config file)")

	return cmd
}

func runWatch(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *watchFlagValues) error {
	ctx := cmd.Context()

	cfg, err := app.loadConfig(ctx, rootFlags)
	if err != nil {
		return fail(cmd, app.stderr, err, rootFlags.verbose)
	}
	if cmd.Flags().Changed("debounce") {
		cfg.Debounce = flags.debounce
	}
	builder, err := app.newBuilder(cfg, rootFlags.verbose)
	if err != nil {
		return fail(cmd, app.stderr, err, rootFlags.verbose)
	}

	rebuild := func() {
		if flags.out == "" {
			return
		}
		res, err := builder.Build(ctx)
		if err != nil {
			return
		}
		if err := writeSprite(flags.out, res.Document.String()); err != nil {
			fmt.Fprintln(app.stderr, WarningStyle.Render("!")+" "+formatErrorForDisplay(err, rootFlags.verbose))
			return
		}
		fmt.Fprintf(app.stdout, "%s %d symbol(s) written to %s\n", SuccessStyle.Render("✓"), res.Document.Len(), CmdStyle.Render(flags.out))
	}

	// Rebuilds run on this goroutine; the watcher only marks one as pending.
	pending := make(chan struct{}, 1)
	session := watch.Start(cfg.Dir, func(e watch.Event) {
		fmt.Fprintf(app.stdout, "%s %s %s\n", CmdStyle.Render("→"), e.Kind, e.Name)
		select {
		case pending <- struct{}{}:
		default:
		}
	},
		watch.WithIgnore(cfg.Ignore...),
		watch.WithDebounce(cfg.Debounce),
		watch.WithLogger(app.logger("watch", rootFlags.verbose)),
	)
	if session == nil {
		err := issue.NewErrorContext().
			WithOperation("watch icons directory").
			WithResource(cfg.Dir).
			WithSuggestion("Create the directory first, then run 'iconsprite watch' again").
			WithIssue(issue.WatchStartFailedId).
			Wrap(watch.ErrWatchStartFailed).
			BuildError()
		return fail(cmd, app.stderr, err, rootFlags.verbose)
	}
	defer session.Stop()

	rebuild()

	fmt.Fprintf(app.stderr, "%s Watching %s (Ctrl+C to stop)\n", SubtitleStyle.Render("•"), CmdStyle.Render(session.Dir()))

	for {
		select {
		case <-ctx.Done():
			session.Stop()
			<-session.Done()
			return nil
		case <-pending:
			rebuild()
		case <-session.Done():
			if session.State() == watch.StateFailed {
				return fail(cmd, app.stderr, errors.New("watcher stopped unexpectedly"), rootFlags.verbose)
			}
			return nil
		}
	}
}
