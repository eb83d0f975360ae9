// Package cmd provides the root command and CLI setup for guardpatch.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/guardpatch/internal/adapter"
	"github.com/mouse-blink/guardpatch/internal/config"
	"github.com/mouse-blink/guardpatch/internal/controller"
	"github.com/mouse-blink/guardpatch/internal/domain"
	m "github.com/mouse-blink/guardpatch/internal/model"
	"github.com/mouse-blink/guardpatch/internal/pkg/logger"
)

var cfg *config.Config
var workflow domain.Workflow

var configFlag string
var logLevelFlag string
var reportsOutputDirFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guardpatch",
		Short: "Inject authorization guards into exported async functions",
		Long: `guardpatch inserts an authentication and membership check at the top of
the try block of exported async TypeScript/JavaScript functions, such as
server actions, and leaves functions that already carry one untouched.

Targets may be files or directories:
  - ./app/actions        scan one directory
  - ./app/...            recursively scan app
  - ./a.ts ./b.ts        patch the listed files`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default .guardpatch.yaml in . or $HOME)")
	cmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	cmd.PersistentFlags().StringVarP(&reportsOutputDirFlag, "output", "o", "", "directory for run reports, empty disables them (default from config)")

	return cmd
}

// setup loads configuration, configures logging and builds the workflow
// unless one is already installed.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	if logLevelFlag != "" {
		loaded.Log.Level = logLevelFlag
	}

	if err := logger.Init(loaded.Log.Level, loaded.Log.Format); err != nil {
		return err
	}

	if !cmd.Flags().Changed("output") {
		reportsOutputDirFlag = loaded.Reports.Dir
	}

	cfg = loaded

	if workflow != nil {
		return nil
	}

	patcher, err := domain.NewPatcher(cfg.EngineOptions())
	if err != nil {
		return err
	}

	workflow = domain.NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewSpecStore(),
		adapter.NewReportStore(),
		controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout())),
		patcher,
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	_ = logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// backupEnabled resolves --no-backup against the configured default.
func backupEnabled(noBackup bool) bool {
	if noBackup {
		return false
	}

	return cfg == nil || cfg.Backup.Enabled
}
