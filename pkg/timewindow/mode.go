// pkg/timewindow/mode.go

package timewindow

import (
	cerr "github.com/cockroachdb/errors"
)

// Kind selects one of the supported cleaning windows.
type Kind int

const (
	KindNone Kind = iota
	KindToday
	KindLastNDays
	KindSpecificDay
	KindBetween
	KindBefore
	KindAfter
	KindOlderThan
	KindNewerThan
	KindAllTime
)

// ErrNoMode is returned when a window is derived before a mode was
// selected. This is a configuration bug in the caller, not a
// per-record condition.
var ErrNoMode = cerr.New("time window mode not set")

// ErrInvalidDays is returned for day-count modes with a non-positive count.
var ErrInvalidDays = cerr.New("day count must be a positive integer")

// Mode is the tagged variant describing which window to derive.
// Only the fields relevant to Kind are consulted.
type Mode struct {
	Kind      Kind
	Date      string // specific_day, before, after
	StartDate string // between
	EndDate   string // between
	Days      int    // last_n_days, older_than, newer_than
	Precise   bool   // dates carry an explicit time component
}

var kindNames = map[Kind]string{
	KindNone:        "none",
	KindToday:       "today",
	KindLastNDays:   "last_n_days",
	KindSpecificDay: "specific_day",
	KindBetween:     "between",
	KindBefore:      "before",
	KindAfter:       "after",
	KindOlderThan:   "older_than",
	KindNewerThan:   "newer_than",
	KindAllTime:     "all",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind maps a CLI mode string to a Kind. last_7_days and
// last_30_days are fixed-width aliases of the same day-count window.
func ParseKind(s string) (Kind, int, error) {
	switch s {
	case "today":
		return KindToday, 0, nil
	case "last_7_days":
		return KindLastNDays, 7, nil
	case "last_30_days":
		return KindLastNDays, 30, nil
	case "specific_day":
		return KindSpecificDay, 0, nil
	case "between":
		return KindBetween, 0, nil
	case "before":
		return KindBefore, 0, nil
	case "after":
		return KindAfter, 0, nil
	case "older_than":
		return KindOlderThan, 0, nil
	case "newer_than":
		return KindNewerThan, 0, nil
	case "all":
		return KindAllTime, 0, nil
	default:
		return KindNone, 0, cerr.Newf("invalid mode %q", s)
	}
}

// NeedsDate reports whether the mode consumes the single --date value.
func (k Kind) NeedsDate() bool {
	return k == KindSpecificDay || k == KindBefore || k == KindAfter
}

// NeedsRange reports whether the mode consumes --start-date/--end-date.
func (k Kind) NeedsRange() bool {
	return k == KindBetween
}

// NeedsDays reports whether the mode consumes --days.
func (k Kind) NeedsDays() bool {
	return k == KindOlderThan || k == KindNewerThan
}
