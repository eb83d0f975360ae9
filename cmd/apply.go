package cmd

import (
	"github.com/spf13/cobra"
)

const applyLongDescription = `Insert a guard block at the top of the try block of every function listed
in the spec file. Functions that already carry a guard are left unchanged,
so running apply twice is safe.

A function the spec names but the file does not define, or whose body does
not open with try, is reported and skipped; pass --strict to turn that into
a failing exit code.`

var applyFlags patchFlags

// applyCmd represents the apply command.
var applyCmd = newApplyCmd()

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [paths...]",
		Short: "Insert guards into the functions listed in a spec file",
		Long:  applyLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Apply(cmd.Context(), applyFlags.args(args))
		},
	}
	applyFlags.bind(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(applyCmd)
}
