// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/iconsprite/internal/issue"
)

func newExplainCommand(app *App) *cobra.Command {
	var style string

	cmd := &cobra.Command{
		Use:   "explain [issue]",
		Short: "Explain a warning or error",
		Long: `Show the documentation of a warning or error reported by iconsprite.

Without arguments, all known issues are listed.`,
		Example: `  iconsprite explain
  iconsprite explain symbol-extraction-miss`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var names []string
			for _, iss := range issue.Values() {
				names = append(names, iss.Name())
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(app.stdout, TitleStyle.Render("Known issues"))
				for _, iss := range issue.Values() {
					fmt.Fprintf(app.stdout, "  %s\n", CmdStyle.Render(iss.Name()))
				}
				return nil
			}

			iss, ok := issue.Lookup(args[0])
			if !ok {
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
				fmt.Fprintf(app.stderr, "%s unknown issue %q, run 'iconsprite explain' to list them\n", ErrorStyle.Render("✗"), args[0])
				return &ExitError{Code: 1}
			}
			rendered, err := iss.Render(style)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, rendered)
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "dark", "glamour style (dark, light, notty, ascii)")

	return cmd
}
