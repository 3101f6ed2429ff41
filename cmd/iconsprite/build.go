// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/invowk/iconsprite/internal/issue"
	"github.com/invowk/iconsprite/internal/sprite"
)

type buildFlagValues struct {
	out    string
	strict bool
	list   bool
}

func newBuildCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &buildFlagValues{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Assemble the sprite and print it or write it to a file",
		Long: `Assemble the sprite from the icons directory.

Icons that cannot be read, optimized or parsed are skipped with a warning; the
rest of the sprite is still produced. Use --strict to turn skipped icons into
a non-zero exit code (` + fmt.Sprint(ExitWarnings) + `).`,
		Example: `  iconsprite build --dir icons
  iconsprite build --out dist/sprite.svg
  iconsprite build --list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, app, rootFlags, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "write the sprite to this file instead of stdout")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with a non-zero code when icons are skipped")
	cmd.Flags().BoolVar(&flags.list, "list", false, "print the symbol ids instead of the sprite")

	return cmd
}

func runBuild(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *buildFlagValues) error {
	ctx := cmd.Context()

	cfg, err := app.loadConfig(ctx, rootFlags)
	if err != nil {
		return fail(cmd, app.stderr, err, rootFlags.verbose)
	}
	builder, err := app.newBuilder(cfg, rootFlags.verbose)
	if err != nil {
		return fail(cmd, app.stderr, err, rootFlags.verbose)
	}

	res, err := builder.Build(ctx)
	if err != nil {
		return fail(cmd, app.stderr, err, rootFlags.verbose)
	}

	switch {
	case flags.list:
		for _, id := range res.Document.IDs() {
			fmt.Fprintln(app.stdout, id)
		}
	case flags.out != "":
		if err := writeSprite(flags.out, res.Document.String()); err != nil {
			return fail(cmd, app.stderr, err, rootFlags.verbose)
		}
	default:
		if markup := res.Document.String(); markup != "" {
			fmt.Fprintln(app.stdout, markup)
		}
	}

	renderBuildSummary(app.stderr, res, flags.out)

	if flags.strict && len(res.Warnings) > 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: ExitWarnings}
	}
	return nil
}

func writeSprite(path, markup string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return issue.WrapWithContext(err, "create output directory", dir)
		}
	}
	if markup != "" {
		markup += "\n"
	}
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		return issue.WrapWithContext(err, "write sprite", path)
	}
	return nil
}

func renderBuildSummary(w io.Writer, res sprite.Result, out string) {
	icon := SuccessStyle.Render("✓")
	if len(res.Warnings) > 0 {
		icon = WarningStyle.Render("!")
	}
	fmt.Fprintf(w, "%s %d symbol(s) from %d file(s)", icon, res.Document.Len(), res.Scanned)
	if out != "" {
		fmt.Fprintf(w, " written to %s", CmdStyle.Render(out))
	}
	fmt.Fprintln(w)

	for _, warn := range res.Warnings {
		name := ""
		if iss := issue.Get(warn.IssueID()); iss != nil {
			name = iss.Name()
		}
		fmt.Fprintf(w, "  %s %s", WarningStyle.Render("!"), warn.Error())
		if name != "" {
			fmt.Fprintf(w, " %s", SubtitleStyle.Render("(iconsprite explain "+name+")"))
		}
		fmt.Fprintln(w)
	}
}
