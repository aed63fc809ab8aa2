// pkg/zscrub_err/user_test.go

package zscrub_err

import (
	"io"
	"os"
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestPrintErrorExpected(t *testing.T) {
	out := captureStderr(t, func() {
		PrintError("flag check", NewExpectedError(cerr.New("bad mode")))
	})
	assert.Contains(t, out, "Notice")
	assert.Contains(t, out, "flag check")
	assert.Contains(t, out, "bad mode")
}

func TestPrintErrorUnexpected(t *testing.T) {
	out := captureStderr(t, func() {
		PrintError("cleanup", cerr.New("disk gone"))
	})
	assert.Contains(t, out, "Error")
	assert.Contains(t, out, "disk gone")
}

func TestPrintErrorNilIsSilent(t *testing.T) {
	out := captureStderr(t, func() {
		PrintError("nothing", nil)
	})
	assert.Empty(t, out)
}
