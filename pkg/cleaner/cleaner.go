// pkg/cleaner/cleaner.go

package cleaner

import (
	"fmt"
	"io"
	"os"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/config"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/fileops"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/interrupt"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/match"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/timewindow"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/zscrub_err"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/zscrub_io"
)

// Settings is the validated user intent for one clean run, assembled
// from flags or from the interactive wizard.
type Settings struct {
	HistFile string
	Mode     timewindow.Mode
	Keywords []string
	Patterns []string
	Backup   bool
	DryRun   bool
	Passes   int

	// Out receives user-facing output; defaults to stdout.
	Out io.Writer
}

// Run is the top-level clean operation: resolve and precheck the
// history file, derive the window, compile filters, then hand off to
// the engine under an interrupt controller.
func Run(rc *zscrub_io.RuntimeContext, s Settings) error {
	log := otelzap.Ctx(rc.Ctx)
	out := s.Out
	if out == nil {
		out = os.Stdout
	}

	path := s.HistFile
	if path == "" {
		path = config.Histfile(rc.Log)
	}
	path, err := fileops.ResolvePath(path, rc.Log)
	if err != nil {
		return zscrub_err.NewExpectedError(err)
	}
	if err := fileops.PrecheckFile(path, rc.Log); err != nil {
		return zscrub_err.NewExpectedError(err)
	}
	rc.Attributes["histfile"] = path

	window, err := timewindow.Derive(s.Mode, time.Now())
	if err != nil {
		return zscrub_err.NewExpectedError(cerr.Wrap(err, "deriving time window"))
	}

	filters, err := match.NewFilterSet(s.Keywords, s.Patterns)
	if err != nil {
		return zscrub_err.NewExpectedError(err)
	}

	fmt.Fprintf(out, "History file: %s\n", path)
	fmt.Fprintf(out, "Time window:  %s\n", window)
	for _, desc := range filters.Describe() {
		fmt.Fprintf(out, "Filter:       %s\n", desc)
	}
	if s.DryRun {
		fmt.Fprintln(out, "Dry run: no changes will be made.")
		if s.Backup {
			fmt.Fprintln(out, "Note: --backup has no effect in a dry run.")
		}
	}

	log.Info("Starting clean run",
		zap.String("path", path),
		zap.String("mode", s.Mode.Kind.String()),
		zap.String("window", window.String()),
		zap.Bool("dry_run", s.DryRun),
		zap.Bool("backup", s.Backup),
		zap.Int("passes", s.Passes))

	ctrl := interrupt.NewController()
	defer ctrl.Stop()

	engine := NewEngine(ctrl)
	report, err := engine.Run(rc.Ctx, Options{
		Path:    path,
		Window:  window,
		Filters: filters,
		Backup:  s.Backup && !s.DryRun,
		DryRun:  s.DryRun,
		Passes:  s.Passes,
		Out:     out,
	})
	if err != nil {
		return err
	}

	if s.DryRun {
		fmt.Fprintf(out, "Scanned %d lines: %d entries kept, %d would be deleted.\n",
			report.LinesRead, report.Kept, report.Deleted)
		return nil
	}

	if report.Deleted == 0 {
		fmt.Fprintf(out, "Scanned %d lines: no matching entries, history file untouched.\n",
			report.LinesRead)
		return nil
	}

	fmt.Fprintf(out, "Scanned %d lines: %d entries kept, %d securely deleted.\n",
		report.LinesRead, report.Kept, report.Deleted)
	if report.BackupPath != "" {
		fmt.Fprintf(out, "Backup saved to %s\n", report.BackupPath)
	}
	return nil
}
