package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/guardpatch/internal/domain"
	m "github.com/mouse-blink/guardpatch/internal/model"
)

var viewLastFlag int

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously saved run reports",
		Long:  "View previously saved run reports from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.View(domain.ViewArgs{Reports: m.Path(reportsOutputDirFlag), Last: viewLastFlag})
		},
	}
	cmd.Flags().IntVarP(&viewLastFlag, "last", "l", 0, "show only the most recent N runs")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
