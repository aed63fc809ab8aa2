// pkg/cleaner/engine_test.go

package cleaner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/interrupt"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/match"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/timewindow"
)

const sampleHistory = ": 1000:0;ls -la\n" +
	": 2000:0;export API_TOKEN=abc123\n" +
	": 3000:0;for f in *; do\\\n" +
	"  echo \"$f\"\\\n" +
	"done\n" +
	": 4000:0;git push\n"

func writeHistory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".zsh_history")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestEngine(t *testing.T) (*Engine, *interrupt.Controller) {
	t.Helper()
	ctrl := interrupt.NewController()
	t.Cleanup(ctrl.Stop)
	return NewEngine(ctrl), ctrl
}

func allTime() timewindow.Window {
	return timewindow.Window{Start: 0, End: timewindow.NoEnd}
}

func mustFilters(t *testing.T, keywords, patterns []string) *match.FilterSet {
	t.Helper()
	set, err := match.NewFilterSet(keywords, patterns)
	require.NoError(t, err)
	return set
}

func TestDryRunNeverMutates(t *testing.T) {
	path := writeHistory(t, sampleHistory)
	engine, _ := newTestEngine(t)

	var out bytes.Buffer
	report, err := engine.Run(context.Background(), Options{
		Path:    path,
		Window:  allTime(),
		Filters: mustFilters(t, nil, nil),
		DryRun:  true,
		Backup:  true,
		Out:     &out,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Deleted)
	assert.Equal(t, 0, report.Kept)
	assert.Equal(t, 6, report.LinesRead)
	assert.Empty(t, report.BackupPath)
	assert.Contains(t, out.String(), "Would delete")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleHistory, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "dry run must not leave temp or backup files")
}

func TestDeleteAllRewritesEmpty(t *testing.T) {
	path := writeHistory(t, sampleHistory)
	engine, _ := newTestEngine(t)

	report, err := engine.Run(context.Background(), Options{
		Path:    path,
		Window:  allTime(),
		Filters: mustFilters(t, nil, nil),
		Passes:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Deleted)
	assert.Equal(t, 0, report.Kept)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestKeywordFilterKeepsRest(t *testing.T) {
	path := writeHistory(t, sampleHistory)
	engine, _ := newTestEngine(t)

	report, err := engine.Run(context.Background(), Options{
		Path:    path,
		Window:  allTime(),
		Filters: mustFilters(t, []string{"API_TOKEN"}, nil),
		Passes:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Deleted)
	assert.Equal(t, 3, report.Kept)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "API_TOKEN")
	assert.Contains(t, string(data), "ls -la")
	assert.Contains(t, string(data), "git push")
	// Multiline record survives as one block.
	assert.Contains(t, string(data), "for f in *; do\\\n  echo \"$f\"\\\ndone\n")
}

func TestWindowFilter(t *testing.T) {
	path := writeHistory(t, sampleHistory)
	engine, _ := newTestEngine(t)

	report, err := engine.Run(context.Background(), Options{
		Path:    path,
		Window:  timewindow.Window{Start: 1500, End: 3500},
		Filters: mustFilters(t, nil, nil),
		Passes:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Deleted)
	assert.Equal(t, 2, report.Kept)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ": 1000:0;ls -la\n: 4000:0;git push\n", string(data))
}

func TestPreambleAlwaysKept(t *testing.T) {
	content := "orphan line\nanother orphan\n" + sampleHistory
	path := writeHistory(t, content)
	engine, _ := newTestEngine(t)

	report, err := engine.Run(context.Background(), Options{
		Path:    path,
		Window:  allTime(),
		Filters: mustFilters(t, nil, nil),
		Passes:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Deleted)
	assert.Equal(t, 1, report.Kept)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "orphan line\nanother orphan\n", string(data))
}

func TestNoMatchesLeavesFileAlone(t *testing.T) {
	path := writeHistory(t, sampleHistory)
	engine, _ := newTestEngine(t)

	report, err := engine.Run(context.Background(), Options{
		Path:    path,
		Window:  allTime(),
		Filters: mustFilters(t, []string{"no-such-needle"}, nil),
		Backup:  true,
		Passes:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Deleted)
	assert.Empty(t, report.BackupPath, "no rewrite means no backup")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleHistory, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBackupHoldsOriginalContent(t *testing.T) {
	path := writeHistory(t, sampleHistory)
	engine, _ := newTestEngine(t)

	report, err := engine.Run(context.Background(), Options{
		Path:    path,
		Window:  allTime(),
		Filters: mustFilters(t, []string{"git"}, nil),
		Backup:  true,
		Passes:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Deleted)
	require.NotEmpty(t, report.BackupPath)
	assert.True(t, strings.Contains(filepath.Base(report.BackupPath), ".backup_"))

	backup, err := os.ReadFile(report.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, sampleHistory, string(backup))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "git push")
}

func TestInterruptBeforeScanLeavesOriginal(t *testing.T) {
	path := writeHistory(t, sampleHistory)
	engine, ctrl := newTestEngine(t)
	ctrl.Trip()

	_, err := engine.Run(context.Background(), Options{
		Path:    path,
		Window:  allTime(),
		Filters: mustFilters(t, nil, nil),
		Passes:  1,
	})
	assert.True(t, cerr.Is(err, interrupt.ErrInterrupted))

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, sampleHistory, string(data))

	entries, err2 := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err2)
	assert.Len(t, entries, 1, "no temp artifact may remain after an interrupt")
}

func TestMissingFileIsNoop(t *testing.T) {
	engine, _ := newTestEngine(t)

	report, err := engine.Run(context.Background(), Options{
		Path:    filepath.Join(t.TempDir(), "absent"),
		Window:  allTime(),
		Filters: mustFilters(t, nil, nil),
		Passes:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.LinesRead)
	assert.Equal(t, 0, report.Deleted)
}

func TestMalformedBlockNeverDeleted(t *testing.T) {
	content := ": 1000:0;keep me\n" +
		": 99999999999999999999:0;rm -rf /\n" +
		": 2000:0;delete me\n"
	path := writeHistory(t, content)
	engine, _ := newTestEngine(t)

	report, err := engine.Run(context.Background(), Options{
		Path:    path,
		Window:  timewindow.Window{Start: 1500, End: timewindow.NoEnd},
		Filters: mustFilters(t, nil, nil),
		Passes:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Deleted)
	assert.Equal(t, 2, report.Kept)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "keep me")
	assert.Contains(t, string(data), "99999999999999999999")
	assert.NotContains(t, string(data), "delete me")
}

func TestMalformedBlockSurvivesDeleteAll(t *testing.T) {
	// Even when its well-formed neighbor is deleted, a block behind an
	// unparsable header must stay in the file.
	content := ": 1000:0;delete me\n" +
		": 99999999999999999999:0;secret command\n"
	path := writeHistory(t, content)
	engine, _ := newTestEngine(t)

	report, err := engine.Run(context.Background(), Options{
		Path:    path,
		Window:  allTime(),
		Filters: mustFilters(t, nil, nil),
		Passes:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Deleted)
	assert.Equal(t, 1, report.Kept)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "secret command")
	assert.NotContains(t, string(data), "delete me")
}
