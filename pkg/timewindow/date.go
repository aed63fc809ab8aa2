// pkg/timewindow/date.go

package timewindow

import (
	"strings"
	"time"

	cerr "github.com/cockroachdb/errors"
)

// Date parsing error kinds. Callers branch on these with errors.Is
// instead of matching message text.
var (
	ErrInvalidFormat        = cerr.New("invalid date/time format")
	ErrOutOfRange           = cerr.New("date/time value out of range")
	ErrMissingTimeComponent = cerr.New("time component required in precise mode")
)

// Layouts tried in order of specificity, covering the
// `YYYY-MM-DD [HH:MM[:SS]]` input surface.
var dateLayouts = []struct {
	layout  string
	hasTime bool
}{
	{"2006-01-02 15:04:05", true},
	{"2006-01-02 15:04", true},
	{"2006-01-02", false},
}

// ParseDate converts a date string to a local time. With precise set,
// a time component is mandatory; otherwise a bare date means local
// midnight. All interpretation is in the process's local zone, the
// same zone zsh used when it stamped the history entries.
func ParseDate(s string, precise bool) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, cerr.Wrapf(ErrInvalidFormat, "empty date string")
	}

	var lastErr error
	for _, l := range dateLayouts {
		t, err := time.ParseInLocation(l.layout, trimmed, time.Local)
		if err != nil {
			lastErr = err
			continue
		}
		if precise && !l.hasTime {
			return time.Time{}, cerr.Wrapf(ErrMissingTimeComponent,
				"%q: use YYYY-MM-DD HH:MM or YYYY-MM-DD HH:MM:SS", trimmed)
		}
		if t.Unix() < 0 {
			return time.Time{}, cerr.Wrapf(ErrOutOfRange, "%q predates the epoch", trimmed)
		}
		return t, nil
	}

	if lastErr != nil && strings.Contains(lastErr.Error(), "out of range") {
		return time.Time{}, cerr.Wrapf(ErrOutOfRange, "%q", trimmed)
	}
	return time.Time{}, cerr.Wrapf(ErrInvalidFormat,
		"%q: use YYYY-MM-DD with optional HH:MM[:SS]", trimmed)
}

// endOfDay returns 23:59:59 local time on t's calendar day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.Local)
}

// startOfDay returns local midnight on t's calendar day.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
