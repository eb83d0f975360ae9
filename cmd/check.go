package cmd

import (
	"github.com/spf13/cobra"
)

var checkFlags patchFlags

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Fail when a listed function is missing its guard",
		Long: `Run apply without writing anything and exit non-zero when a guard would be
inserted or a listed function cannot be guarded. Intended for CI.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Check(cmd.Context(), checkFlags.args(args))
		},
	}
	checkFlags.bind(cmd)
	cmd.Flags().Lookup("dry-run").Hidden = true

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
