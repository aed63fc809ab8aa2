// pkg/timewindow/date_test.go

package timewindow

import (
	"testing"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-08-20", time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)},
		{"2026-08-20 10:15", time.Date(2026, 8, 20, 10, 15, 0, 0, time.Local)},
		{"2026-08-20 10:15:30", time.Date(2026, 8, 20, 10, 15, 30, 0, time.Local)},
		{"  2026-08-20  ", time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in, false)
		require.NoError(t, err, "input %q", tt.in)
		assert.True(t, got.Equal(tt.want), "input %q: got %v", tt.in, got)
	}
}

func TestParseDateInvalidFormat(t *testing.T) {
	for _, in := range []string{"", "not a date", "20-08-2026", "2026/08/20"} {
		_, err := ParseDate(in, false)
		assert.True(t, cerr.Is(err, ErrInvalidFormat), "input %q: %v", in, err)
	}
}

func TestParseDateOutOfRange(t *testing.T) {
	_, err := ParseDate("2026-13-40", false)
	assert.True(t, cerr.Is(err, ErrOutOfRange))

	_, err = ParseDate("1969-12-30", false)
	assert.True(t, cerr.Is(err, ErrOutOfRange))
}

func TestParseDatePreciseRequiresTime(t *testing.T) {
	_, err := ParseDate("2026-08-20", true)
	assert.True(t, cerr.Is(err, ErrMissingTimeComponent))

	got, err := ParseDate("2026-08-20 10:15", true)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Minute())
}
