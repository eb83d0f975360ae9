package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/guardpatch/internal/adapter"
	"github.com/mouse-blink/guardpatch/internal/controller"
	m "github.com/mouse-blink/guardpatch/internal/model"
	"github.com/mouse-blink/guardpatch/internal/pkg/logger"
)

// Command names recorded in run reports.
const (
	CommandApply  = "apply"
	CommandCheck  = "check"
	CommandDedupe = "dedupe"
	CommandFixup  = "fixup"
)

// TargetArgs selects the files a command runs over and how results are written.
type TargetArgs struct {
	Targets  []m.Path
	DryRun   bool
	Backup   bool
	Reports  m.Path // empty disables report persistence
	Parallel int
}

// ApplyArgs configures Apply and Check.
type ApplyArgs struct {
	TargetArgs
	Specs  m.Path
	Dedupe bool
	Strip  []string
	Strict bool
}

// ViewArgs configures View.
type ViewArgs struct {
	Reports m.Path
	Last    int // 0 shows every report
}

// Workflow wires the patch engine to files, reports and the UI.
type Workflow interface {
	Apply(ctx context.Context, args ApplyArgs) error
	Check(ctx context.Context, args ApplyArgs) error
	Dedupe(ctx context.Context, args TargetArgs) error
	Fixup(ctx context.Context, args TargetArgs) error
	View(args ViewArgs) error
}

type workflow struct {
	fs      adapter.SourceFSAdapter
	specs   adapter.SpecStore
	reports adapter.ReportStore
	ui      controller.UI
	patcher Patcher

	now   func() time.Time
	runID func() string
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	specs adapter.SpecStore,
	reports adapter.ReportStore,
	ui controller.UI,
	patcher Patcher,
) Workflow {
	return &workflow{
		fs:      fs,
		specs:   specs,
		reports: reports,
		ui:      ui,
		patcher: patcher,
		now:     time.Now,
		runID:   uuid.NewString,
	}
}

// transform is one command's text-to-text pass over a single file. It
// fills the counters of rep it is responsible for.
type transform func(source string, rep *m.PatchReport) (string, error)

// Apply injects guards into every target.
func (w *workflow) Apply(ctx context.Context, args ApplyArgs) error {
	specs, err := w.specs.LoadSpecs(args.Specs)
	if err != nil {
		return fmt.Errorf("load specs: %w", err)
	}

	run, err := w.run(ctx, CommandApply, args.TargetArgs, w.applyPass(args, specs))
	if err != nil {
		return err
	}

	if args.Strict && !run.OK() {
		return fmt.Errorf("%w: %d not found, %d mismatched",
			ErrIncomplete, run.Total(m.StatusFunctionNotFound), run.Total(m.StatusPatternMismatch))
	}

	return nil
}

// Check runs Apply without writing and fails when any target would change
// or any spec cannot be applied.
func (w *workflow) Check(ctx context.Context, args ApplyArgs) error {
	specs, err := w.specs.LoadSpecs(args.Specs)
	if err != nil {
		return fmt.Errorf("load specs: %w", err)
	}

	args.DryRun = true

	run, err := w.run(ctx, CommandCheck, args.TargetArgs, w.applyPass(args, specs))
	if err != nil {
		return err
	}

	if !run.OK() {
		return fmt.Errorf("%w: %d not found, %d mismatched",
			ErrIncomplete, run.Total(m.StatusFunctionNotFound), run.Total(m.StatusPatternMismatch))
	}

	if pending := run.Total(m.StatusApplied); pending > 0 {
		return fmt.Errorf("%w: %d function(s)", ErrChangesPending, pending)
	}

	return nil
}

// Dedupe removes repeated definitions from every target.
func (w *workflow) Dedupe(ctx context.Context, args TargetArgs) error {
	_, err := w.run(ctx, CommandDedupe, args, func(source string, rep *m.PatchReport) (string, error) {
		out, removed := w.patcher.Dedupe(source)
		rep.Duplicates = removed

		return out, nil
	})

	return err
}

// Fixup corrects identifiers inside existing guards of every target.
func (w *workflow) Fixup(ctx context.Context, args TargetArgs) error {
	_, err := w.run(ctx, CommandFixup, args, func(source string, rep *m.PatchReport) (string, error) {
		out, fixes, err := w.patcher.Fixup(source)
		if err != nil {
			return source, err
		}

		rep.LinesFixed = len(fixes.Fixes)
		rep.Fixes = fixes.Fixes
		rep.Unresolved = fixes.Unresolved

		return out, nil
	})

	return err
}

// View displays previously saved run reports.
func (w *workflow) View(args ViewArgs) error {
	reports, err := w.reports.LoadReports(args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	if args.Last > 0 && len(reports) > args.Last {
		reports = reports[len(reports)-args.Last:]
	}

	return w.ui.DisplayHistory(reports)
}

// applyPass strips, dedupes, then applies specs, in that order, so the
// locator always sees the surviving definition.
func (w *workflow) applyPass(args ApplyArgs, specs []m.PatchSpec) transform {
	return func(source string, rep *m.PatchReport) (string, error) {
		text := source

		if len(args.Strip) > 0 {
			text, rep.LinesStrip = w.patcher.Strip(text, args.Strip)
		}

		if args.Dedupe {
			text, rep.Duplicates = w.patcher.Dedupe(text)
		}

		out, applied, err := w.patcher.Apply(text, specs)
		rep.Outcomes = applied.Outcomes

		if err != nil {
			return source, err
		}

		return out, nil
	}
}

// run executes pass over every target, at most args.Parallel files at a
// time, then persists and displays the run report. Engine failures are
// recorded per file; I/O failures abort the run.
func (w *workflow) run(ctx context.Context, command string, args TargetArgs, pass transform) (m.RunReport, error) {
	run := m.RunReport{
		RunID:     w.runID(),
		Command:   command,
		StartedAt: w.now(),
		DryRun:    args.DryRun,
	}

	log := logger.With(zap.String("run_id", run.RunID), zap.String("command", command))

	files, err := w.fs.Expand(args.Targets)
	if err != nil {
		return run, err
	}

	if len(files) == 0 {
		return run, fmt.Errorf("no source files in %v", args.Targets)
	}

	run.Files = make([]m.PatchReport, len(files))
	previews := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(args.Parallel, 1))

	for i, path := range files {
		g.Go(func() error {
			rep, preview, err := w.processFile(gctx, path, args, run.StartedAt, pass)
			run.Files[i] = rep
			previews[i] = preview

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return run, err
	}

	var failed []error

	for i, rep := range run.Files {
		logFile(log, rep)

		if rep.Error != "" {
			failed = append(failed, fmt.Errorf("%s: %s", rep.Target, rep.Error))
		}

		if args.DryRun && previews[i] != "" {
			if err := w.ui.DisplayPreview(rep.Target, previews[i]); err != nil {
				return run, err
			}
		}
	}

	if args.Reports != "" {
		path, err := w.reports.SaveReport(args.Reports, run)
		if err != nil {
			return run, fmt.Errorf("save report: %w", err)
		}

		log.Debug("report saved", zap.String("path", string(path)))
	}

	if err := w.ui.DisplayRun(run); err != nil {
		return run, err
	}

	return run, errors.Join(failed...)
}

// processFile reads path, runs pass and writes the result unless dry-run.
// The returned preview is the diff of a dry run.
func (w *workflow) processFile(ctx context.Context, path m.Path, args TargetArgs, at time.Time, pass transform) (m.PatchReport, string, error) {
	rep := m.PatchReport{Target: path}

	if err := ctx.Err(); err != nil {
		return rep, "", err
	}

	data, err := w.fs.ReadFile(path)
	if err != nil {
		return rep, "", fmt.Errorf("read %s: %w", path, err)
	}

	source := string(data)

	hash, err := w.fs.HashFile(path)
	if err != nil {
		return rep, "", fmt.Errorf("hash %s: %w", path, err)
	}

	rep.Hash = hash
	rep.BytesBefore = len(source)

	out, err := pass(source, &rep)
	if err != nil {
		rep.Error = err.Error()
		rep.BytesAfter = len(source)

		return rep, "", nil
	}

	rep.BytesAfter = len(out)

	if out == source {
		return rep, "", nil
	}

	if args.DryRun {
		return rep, Preview(source, out), nil
	}

	if args.Backup {
		backup, err := w.fs.Backup(path, at)
		if err != nil {
			return rep, "", fmt.Errorf("backup %s: %w", path, err)
		}

		rep.Backup = backup
	}

	if err := w.fs.WriteFile(path, []byte(out)); err != nil {
		return rep, "", fmt.Errorf("write %s: %w", path, err)
	}

	rep.Written = true

	return rep, "", nil
}

func logFile(log *zap.Logger, rep m.PatchReport) {
	fields := []zap.Field{zap.String("target", string(rep.Target))}

	for _, o := range rep.Outcomes {
		of := append(fields, zap.String("function", o.Function), zap.String("status", string(o.Status)))

		switch {
		case o.Status.Failed():
			log.Warn("spec not applied", append(of, zap.String("reason", o.Reason))...)
		default:
			log.Info("spec processed", append(of, zap.Int("bytes", o.ByteDelta))...)
		}
	}

	for _, issue := range rep.Unresolved {
		log.Warn("guard line not repaired", append(fields,
			zap.Int("line", issue.Line),
			zap.String("function", issue.Function),
			zap.String("reason", issue.Reason),
		)...)
	}

	if rep.Error != "" {
		log.Error("pass aborted", append(fields, zap.String("error", rep.Error))...)

		return
	}

	log.Info("file processed", append(fields,
		zap.Int("duplicates_removed", rep.Duplicates),
		zap.Int("lines_fixed", rep.LinesFixed),
		zap.Int("lines_stripped", rep.LinesStrip),
		zap.Bool("written", rep.Written),
	)...)
}
