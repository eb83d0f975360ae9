package cmd

import (
	"github.com/spf13/cobra"
)

var dedupeFlags targetFlags

// dedupeCmd represents the dedupe command.
var dedupeCmd = newDedupeCmd()

func newDedupeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dedupe [paths...]",
		Short: "Remove repeated definitions of the same exported function",
		Long: `Keep the first definition of every exported async function and remove the
later ones, which a bad merge or a repeated paste can leave behind.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Dedupe(cmd.Context(), dedupeFlags.args(args))
		},
	}
	dedupeFlags.bind(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(dedupeCmd)
}
