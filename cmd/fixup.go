package cmd

import (
	"github.com/spf13/cobra"
)

var fixupFlags targetFlags

// fixupCmd represents the fixup command.
var fixupCmd = newFixupCmd()

func newFixupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixup [paths...]",
		Short: "Repair identifiers inside previously inserted guards",
		Long: `Scan every guard block and replace references to identifiers the enclosing
function does not declare, such as a hard-coded id, with the function's
id-like parameter. Only lines inside a guard are touched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Fixup(cmd.Context(), fixupFlags.args(args))
		},
	}
	fixupFlags.bind(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(fixupCmd)
}
