// pkg/fileops/path_operations.go

package fileops

import (
	"os"
	"path/filepath"

	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// ResolvePath makes path absolute and resolves symlinks where the
// target already exists. A path whose final component does not exist
// yet resolves through its parent, so a fresh history file is still
// accepted.
func ResolvePath(path string, log *zap.Logger) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", cerr.Wrapf(err, "resolving %q", path)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		log.Warn("Could not canonicalize path, using absolute form",
			zap.String("path", abs), zap.Error(err))
		return abs, nil
	}

	// File absent: canonicalize the parent so the rename-into-place
	// later happens on the real directory.
	dir, base := filepath.Split(abs)
	resolvedDir, dirErr := filepath.EvalSymlinks(filepath.Clean(dir))
	if dirErr != nil {
		return abs, nil
	}
	return filepath.Join(resolvedDir, base), nil
}

// PrecheckFile verifies, before any work starts, that the history file
// location is usable: the parent directory exists, is a directory and
// is writable; and the file itself, if present, is a regular file that
// can be read and written. A missing file is fine.
func PrecheckFile(path string, log *zap.Logger) error {
	dir := filepath.Dir(path)

	dirInfo, err := os.Stat(dir)
	if err != nil {
		return cerr.Wrapf(err, "history file directory %q", dir)
	}
	if !dirInfo.IsDir() {
		return cerr.Newf("path containing history file is not a directory: %q", dir)
	}
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return cerr.Wrapf(err, "cannot write to history file directory %q", dir)
	}

	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		log.Info("History file does not exist yet", zap.String("path", path))
		return nil
	}
	if err != nil {
		return cerr.Wrapf(err, "checking history file %q", path)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		// Follow one level; the resolved target was already produced
		// by ResolvePath in the normal flow.
		info, err = os.Stat(path)
		if err != nil {
			return cerr.Wrapf(err, "resolving history file symlink %q", path)
		}
	}
	if !info.Mode().IsRegular() {
		return cerr.Newf("history file exists but is not a regular file: %q", path)
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return cerr.Wrapf(err, "cannot read history file %q", path)
	}
	if err := unix.Access(path, unix.W_OK); err != nil {
		return cerr.Wrapf(err, "cannot write to history file %q", path)
	}
	return nil
}
