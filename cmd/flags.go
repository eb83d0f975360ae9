package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/guardpatch/internal/domain"
	m "github.com/mouse-blink/guardpatch/internal/model"
)

// targetFlags are shared by every command that rewrites files.
type targetFlags struct {
	dryRun   bool
	noBackup bool
	parallel int
}

func (f *targetFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, "print a diff instead of writing files")
	cmd.Flags().BoolVar(&f.noBackup, "no-backup", false, "do not write a timestamped backup before changing a file")
	cmd.Flags().IntVarP(&f.parallel, "parallel", "p", 1, "number of files processed concurrently")
}

func (f *targetFlags) args(paths []string) domain.TargetArgs {
	return domain.TargetArgs{
		Targets:  parsePaths(paths),
		DryRun:   f.dryRun,
		Backup:   backupEnabled(f.noBackup),
		Reports:  m.Path(reportsOutputDirFlag),
		Parallel: f.parallel,
	}
}

// patchFlags configure apply and check.
type patchFlags struct {
	targetFlags

	specs  string
	dedupe bool
	strip  []string
	strict bool
}

func (f *patchFlags) bind(cmd *cobra.Command) {
	f.targetFlags.bind(cmd)
	cmd.Flags().StringVarP(&f.specs, "specs", "s", "", "YAML file listing the functions to guard (required)")
	cmd.Flags().BoolVar(&f.dedupe, "dedupe", false, "remove repeated function definitions before patching")
	cmd.Flags().StringArrayVar(&f.strip, "strip", nil, "remove lines starting with this prefix before patching (can be repeated)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail when any function is missing or cannot be guarded")
	_ = cmd.MarkFlagRequired("specs")
}

func (f *patchFlags) args(paths []string) domain.ApplyArgs {
	return domain.ApplyArgs{
		TargetArgs: f.targetFlags.args(paths),
		Specs:      m.Path(f.specs),
		Dedupe:     f.dedupe,
		Strip:      f.strip,
		Strict:     f.strict,
	}
}
