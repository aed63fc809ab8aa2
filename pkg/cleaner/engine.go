// pkg/cleaner/engine.go

package cleaner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/fileops"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/history"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/interrupt"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/match"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/shred"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/timewindow"
)

// CommitLostError reports the worst commit outcome: the original file
// was destroyed but the rewritten copy could not be moved into place.
// The surviving entries are intact in TempPath.
type CommitLostError struct {
	TempPath string
	cause    error
}

func (e *CommitLostError) Error() string {
	return fmt.Sprintf("history file destroyed but replacement could not be installed, surviving entries are in %s: %v", e.TempPath, e.cause)
}

func (e *CommitLostError) Unwrap() error { return e.cause }

// Options configures one engine run. Out receives dry-run previews and
// must not be nil when DryRun is set.
type Options struct {
	Path    string
	Window  timewindow.Window
	Filters *match.FilterSet
	Backup  bool
	DryRun  bool
	Passes  int
	Out     io.Writer
}

// Report summarizes what a run did (or, for a dry run, would do).
type Report struct {
	LinesRead  int
	Kept       int
	Deleted    int
	BackupPath string
}

// Engine applies one filtering pass to a history file. A record is
// deleted when its timestamp falls inside the window AND the filter
// set matches its command; preamble and malformed blocks are always
// kept. The survivors are materialized fully in memory before any
// byte of the original is touched.
type Engine struct {
	ctrl *interrupt.Controller
}

// NewEngine binds the engine to an interrupt controller. The
// controller is polled at every loop top during the scan; once the
// original file starts being destroyed the run no longer honors
// cancellation and drives the commit to completion.
func NewEngine(ctrl *interrupt.Controller) *Engine {
	return &Engine{ctrl: ctrl}
}

// Run executes the scan and, unless DryRun is set, the commit.
func (e *Engine) Run(ctx context.Context, opts Options) (*Report, error) {
	log := otelzap.Ctx(ctx)

	f, err := os.Open(opts.Path)
	if os.IsNotExist(err) {
		log.Info("History file does not exist, nothing to clean", zap.String("path", opts.Path))
		return &Report{}, nil
	}
	if err != nil {
		return nil, cerr.Wrapf(err, "opening %q", opts.Path)
	}

	report := &Report{}
	var survivors bytes.Buffer

	parser := history.NewParser(f, log.ZapLogger())
	for {
		if err := e.ctrl.Err(); err != nil {
			_ = f.Close()
			return nil, err
		}

		rec, err := parser.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = f.Close()
			return nil, err
		}

		if e.shouldDelete(rec, opts) {
			report.Deleted++
			if opts.DryRun {
				e.printDoomed(opts.Out, rec)
			}
		} else {
			report.Kept++
			survivors.WriteString(rec.Raw())
		}
	}
	report.LinesRead = parser.LinesRead()
	if err := f.Close(); err != nil {
		return nil, cerr.Wrapf(err, "closing %q", opts.Path)
	}

	if opts.DryRun || report.Deleted == 0 {
		return report, nil
	}
	if err := e.ctrl.Err(); err != nil {
		return nil, err
	}

	if err := e.commit(ctx, opts, survivors.Bytes(), report); err != nil {
		return report, err
	}
	return report, nil
}

func (e *Engine) shouldDelete(rec *history.Record, opts Options) bool {
	if rec.AlwaysKept() {
		return false
	}
	return opts.Window.Contains(rec.Timestamp) && opts.Filters.Matches(rec.Command)
}

func (e *Engine) printDoomed(out io.Writer, rec *history.Record) {
	if out == nil {
		return
	}
	fmt.Fprintf(out, "--- Would delete (Entry ending line %d): ---\n", rec.EndLine)
	for _, line := range rec.Lines {
		fmt.Fprintln(out, line)
	}
}

// commit replaces the original with the survivors: temp file in the
// same directory, optional backup, secure erase of the original, then
// rename into place. Before the erase starts every failure leaves the
// original untouched; after it, the run presses on regardless of
// cancellation because the original is already gone or damaged.
func (e *Engine) commit(ctx context.Context, opts Options, survivors []byte, report *Report) error {
	log := otelzap.Ctx(ctx)
	dir := filepath.Dir(opts.Path)
	base := filepath.Base(opts.Path)

	tempPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()[:8]))
	e.ctrl.RegisterTemp(tempPath)

	if err := e.writeTemp(tempPath, survivors); err != nil {
		e.ctrl.ClearTemp()
		return err
	}

	if opts.Backup {
		backupPath := fmt.Sprintf("%s.backup_%s", opts.Path, uuid.NewString()[:8])
		if err := fileops.CopyFile(opts.Path, backupPath); err != nil {
			result := cerr.Wrap(err, "backup failed, original left untouched")
			if rmErr := os.Remove(tempPath); rmErr != nil {
				result = multierror.Append(result, cerr.Wrapf(rmErr, "removing temp file %q", tempPath))
			}
			e.ctrl.ClearTemp()
			return result
		}
		report.BackupPath = backupPath
		log.Info("Backup written", zap.String("path", backupPath))
	}

	if err := e.ctrl.Err(); err != nil {
		if rmErr := os.Remove(tempPath); rmErr != nil {
			log.Warn("Could not remove temp file after interrupt",
				zap.String("path", tempPath), zap.Error(rmErr))
		}
		e.ctrl.ClearTemp()
		return err
	}

	// Point of no return. The eraser runs without a cancellation hook
	// so a late Ctrl-C cannot strand a half-overwritten original.
	eraser := shred.New(opts.Passes)
	if err := eraser.Erase(ctx, opts.Path); err != nil {
		// The temp file holds the survivors; leave it for inspection.
		e.ctrl.ClearTemp()
		return cerr.Wrapf(err, "secure erase of %q failed, surviving entries are in %q", opts.Path, tempPath)
	}

	if err := os.Rename(tempPath, opts.Path); err != nil {
		e.ctrl.ClearTemp()
		return &CommitLostError{TempPath: tempPath, cause: err}
	}
	e.ctrl.ClearTemp()

	log.Info("History file rewritten",
		zap.String("path", opts.Path),
		zap.Int("kept", report.Kept),
		zap.Int("deleted", report.Deleted))
	return nil
}

func (e *Engine) writeTemp(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return cerr.Wrapf(err, "creating temp file %q", path)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return cerr.Wrapf(err, "writing temp file %q", path)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return cerr.Wrapf(err, "syncing temp file %q", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return cerr.Wrapf(err, "closing temp file %q", path)
	}
	return nil
}
