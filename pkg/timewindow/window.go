// pkg/timewindow/window.go

package timewindow

import (
	"math"
	"time"

	cerr "github.com/cockroachdb/errors"
)

// NoEnd marks an unbounded upper edge.
const NoEnd int64 = math.MaxInt64

const secondsPerDay = 24 * 60 * 60

// Window is an inclusive [Start, End] epoch interval. A record whose
// timestamp falls inside the window is eligible for deletion.
type Window struct {
	Start int64
	End   int64
}

// Contains reports whether ts falls inside the window.
func (w Window) Contains(ts int64) bool {
	return ts >= w.Start && ts <= w.End
}

// String renders the window as local timestamps for operator output,
// with the open upper edge shown as infinity.
func (w Window) String() string {
	return FormatEpoch(w.Start) + " .. " + FormatEpoch(w.End)
}

// FormatEpoch renders an epoch second in the local zone; NoEnd is "∞".
func FormatEpoch(epoch int64) string {
	if epoch == NoEnd {
		return "∞"
	}
	return time.Unix(epoch, 0).Local().Format("2006-01-02 15:04:05 MST")
}

// Derive maps a mode to its window. It is the single total function
// over the mode variant: every kind is handled, and KindNone fails
// fast with ErrNoMode before any file is touched.
//
// The non-precise Before adjustment subtracts exactly one second from
// the parsed boundary rather than computing the end of the previous
// local day, so behavior at DST transition instants is
// implementation-defined.
func Derive(m Mode, now time.Time) (Window, error) {
	switch m.Kind {
	case KindNone:
		return Window{}, ErrNoMode

	case KindToday:
		return Window{Start: startOfDay(now).Unix(), End: NoEnd}, nil

	case KindLastNDays:
		if m.Days <= 0 {
			return Window{}, cerr.Wrapf(ErrInvalidDays, "last_n_days: %d", m.Days)
		}
		return Window{Start: now.Unix() - int64(m.Days)*secondsPerDay, End: NoEnd}, nil

	case KindSpecificDay:
		t, err := ParseDate(m.Date, m.Precise)
		if err != nil {
			return Window{}, err
		}
		if m.Precise {
			return Window{Start: t.Unix(), End: t.Unix()}, nil
		}
		return Window{Start: startOfDay(t).Unix(), End: endOfDay(t).Unix()}, nil

	case KindBetween:
		s, err := ParseDate(m.StartDate, m.Precise)
		if err != nil {
			return Window{}, cerr.Wrap(err, "start date")
		}
		e, err := ParseDate(m.EndDate, m.Precise)
		if err != nil {
			return Window{}, cerr.Wrap(err, "end date")
		}
		if !m.Precise {
			s = startOfDay(s)
			e = endOfDay(e)
		}
		if e.Before(s) {
			return Window{}, cerr.Wrapf(ErrOutOfRange, "end date precedes start date")
		}
		return Window{Start: s.Unix(), End: e.Unix()}, nil

	case KindBefore:
		t, err := ParseDate(m.Date, m.Precise)
		if err != nil {
			return Window{}, err
		}
		// Strictly before the boundary in both precise and day modes.
		return Window{Start: 0, End: t.Unix() - 1}, nil

	case KindAfter:
		t, err := ParseDate(m.Date, m.Precise)
		if err != nil {
			return Window{}, err
		}
		return Window{Start: t.Unix(), End: NoEnd}, nil

	case KindOlderThan:
		if m.Days <= 0 {
			return Window{}, cerr.Wrapf(ErrInvalidDays, "older_than: %d", m.Days)
		}
		return Window{Start: 0, End: now.Unix() - int64(m.Days)*secondsPerDay}, nil

	case KindNewerThan:
		if m.Days <= 0 {
			return Window{}, cerr.Wrapf(ErrInvalidDays, "newer_than: %d", m.Days)
		}
		return Window{Start: now.Unix() - int64(m.Days)*secondsPerDay, End: NoEnd}, nil

	case KindAllTime:
		return Window{Start: 0, End: NoEnd}, nil

	default:
		return Window{}, cerr.Newf("unhandled mode kind %d", m.Kind)
	}
}
