package dateutil

import (
	"time"

	"github.com/araddon/dateparse"

	"github.com/Ketchio-dev/note-web-sub000/core/domain"
	"github.com/Ketchio-dev/note-web-sub000/util/timeutil"
)

// ParseValue interprets a stored property value as a point in time. Strings
// go through lenient parsing so "2024-05-01", "May 1, 2024" and ISO stamps
// all work; numbers are unix seconds. Anything else is not a date.
func ParseValue(v domain.Value, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	if s, ok := v.String(); ok {
		if s == "" {
			return time.Time{}, false
		}
		t, err := dateparse.ParseIn(s, loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	if f, ok := v.Float(); ok {
		return time.Unix(int64(f), 0).In(loc), true
	}
	return time.Time{}, false
}

// DayTimestamp parses the value and collapses it to midnight of its calendar
// day. Date filters and sorts compare days, not instants.
func DayTimestamp(v domain.Value, loc *time.Location) (int64, bool) {
	t, ok := ParseValue(v, loc)
	if !ok {
		return 0, false
	}
	return timeutil.CutToDay(t, loc).Unix(), true
}

// Timestamp parses the value keeping time-of-day, for sorts that include it.
func Timestamp(v domain.Value, loc *time.Location) (int64, bool) {
	t, ok := ParseValue(v, loc)
	if !ok {
		return 0, false
	}
	return t.Unix(), true
}
