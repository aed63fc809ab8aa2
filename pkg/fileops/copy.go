// pkg/fileops/copy.go

package fileops

import (
	"io"
	"os"

	cerr "github.com/cockroachdb/errors"
)

// CopyFile copies src to dst, preserving src's permission bits and
// syncing dst before returning so a backup survives a crash right
// after the copy.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return cerr.Wrapf(err, "opening %q", src)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return cerr.Wrapf(err, "stat %q", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return cerr.Wrapf(err, "creating %q", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return cerr.Wrapf(err, "copying %q to %q", src, dst)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return cerr.Wrapf(err, "syncing %q", dst)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return cerr.Wrapf(err, "closing %q", dst)
	}
	return nil
}
