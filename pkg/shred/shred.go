// pkg/shred/shred.go

package shred

import (
	"context"
	crand "crypto/rand"
	"math/rand/v2"
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/config"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/interrupt"
)

// DowngradedError reports that multi-pass overwriting failed and the
// eraser fell back to a plain unlink. Removed says whether the
// fallback unlink itself succeeded.
type DowngradedError struct {
	Path    string
	Removed bool
	cause   error
}

func (e *DowngradedError) Error() string {
	if e.Removed {
		return "secure overwrite failed, file removed without shredding: " + e.cause.Error()
	}
	return "secure overwrite failed and file could not be removed: " + e.cause.Error()
}

func (e *DowngradedError) Unwrap() error { return e.cause }

// Eraser overwrites a file's contents with random data before
// unlinking it. Zero value is not usable; construct with New.
type Eraser struct {
	Passes    int
	ChunkSize int

	// Interrupted is polled between chunks; a true return aborts the
	// current pass with interrupt.ErrInterrupted.
	Interrupted func() bool

	// onPass, when set, observes each completed pass. Used by tests.
	onPass func(pass int, written int64)
}

// New returns an Eraser with the given pass count, falling back to
// the configured defaults for non-positive values.
func New(passes int) *Eraser {
	if passes <= 0 {
		passes = config.DefaultShredPasses
	}
	return &Eraser{
		Passes:    passes,
		ChunkSize: config.DefaultShredChunk,
	}
}

// Erase destroys the file at path. Regular files are overwritten
// Passes times with fresh random bytes, each pass flushed to disk,
// then renamed to an unrelated name and unlinked. Missing files are a
// no-op. Non-regular files are unlinked without overwriting, since
// writing random data through a symlink or device node would damage
// the wrong target.
func (e *Eraser) Erase(ctx context.Context, path string) error {
	log := otelzap.Ctx(ctx)

	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return cerr.Wrapf(err, "stat %q", path)
	}

	if !info.Mode().IsRegular() {
		log.Warn("Not a regular file, removing without overwrite",
			zap.String("path", path), zap.String("mode", info.Mode().String()))
		if err := os.Remove(path); err != nil {
			return cerr.Wrapf(err, "removing %q", path)
		}
		return nil
	}

	size := info.Size()
	if size > 0 {
		if err := e.overwrite(ctx, path, size); err != nil {
			if cerr.Is(err, interrupt.ErrInterrupted) {
				return err
			}
			removeErr := os.Remove(path)
			return &DowngradedError{Path: path, Removed: removeErr == nil, cause: err}
		}
	}

	// Obscure the name before unlinking so the directory entry no
	// longer hints at what was stored.
	obscured := filepath.Join(filepath.Dir(path), uuid.NewString()[:15])
	if err := os.Rename(path, obscured); err != nil {
		log.Debug("Obscuring rename failed, unlinking in place",
			zap.String("path", path), zap.Error(err))
		obscured = path
	}
	if err := os.Remove(obscured); err != nil {
		return cerr.Wrapf(err, "removing %q", obscured)
	}

	log.Info("File securely erased",
		zap.String("path", path),
		zap.Int64("bytes", size),
		zap.Int("passes", e.Passes))
	return nil
}

func (e *Eraser) overwrite(ctx context.Context, path string, size int64) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return cerr.Wrapf(err, "opening %q for overwrite", path)
	}
	defer func() { _ = f.Close() }()

	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return cerr.Wrap(err, "seeding overwrite generator")
	}
	rng := rand.NewChaCha8(seed)

	chunk := e.ChunkSize
	if chunk <= 0 {
		chunk = config.DefaultShredChunk
	}
	buf := make([]byte, chunk)
	defer func() {
		for i := range buf {
			buf[i] = 0
		}
	}()

	for pass := 1; pass <= e.Passes; pass++ {
		if e.Interrupted != nil && e.Interrupted() {
			return interrupt.ErrInterrupted
		}
		if _, err := f.Seek(0, 0); err != nil {
			return cerr.Wrapf(err, "seeking in %q", path)
		}

		var written int64
		for written < size {
			if e.Interrupted != nil && e.Interrupted() {
				return interrupt.ErrInterrupted
			}
			n := size - written
			if n > int64(len(buf)) {
				n = int64(len(buf))
			}
			rng.Read(buf[:n])
			if _, err := f.Write(buf[:n]); err != nil {
				return cerr.Wrapf(err, "overwrite pass %d of %q", pass, path)
			}
			written += n
		}

		// Force the pass to media. A failing fdatasync (weird
		// filesystems, tmpfs) is logged rather than aborting the
		// whole erase.
		if err := unix.Fdatasync(int(f.Fd())); err != nil {
			otelzap.Ctx(ctx).Warn("fdatasync failed after overwrite pass",
				zap.String("path", path), zap.Int("pass", pass), zap.Error(err))
		}

		if e.onPass != nil {
			e.onPass(pass, written)
		}
	}
	return nil
}
