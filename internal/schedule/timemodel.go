package schedule

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect. Touching
// intervals (one ends exactly where the other starts) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Clock is a time of day on the slot grid.
type Clock struct {
	Hour   int
	Minute int
}

// String formats the clock as 24-hour "HH:MM", the shape used in API
// responses.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// TimeModel anchors all date/time handling to one fixed business
// timezone. Every comparison in the scheduling core happens in this
// frame; the wall clock is injectable so the lead-time rule is testable.
type TimeModel struct {
	loc *time.Location
	now func() time.Time
}

func NewTimeModel(loc *time.Location, now func() time.Time) *TimeModel {
	if now == nil {
		now = time.Now
	}
	return &TimeModel{loc: loc, now: now}
}

// Location returns the fixed business timezone.
func (tm *TimeModel) Location() *time.Location { return tm.loc }

// Now returns the current instant in the business frame.
func (tm *TimeModel) Now() time.Time {
	return tm.now().In(tm.loc)
}

// ParseDate parses an ISO "YYYY-MM-DD" date into midnight of that day in
// the business frame.
func (tm *TimeModel) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, tm.loc)
	if err != nil {
		return time.Time{}, invalidf("date", "%q is not a YYYY-MM-DD date", s)
	}
	return t, nil
}

// ParseClock parses a 24-hour "HH:MM" time of day.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return Clock{}, invalidf("time", "%q is not a HH:MM time", s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// At combines a parsed date with a time of day in the business frame.
func (tm *TimeModel) At(date time.Time, c Clock) time.Time {
	y, m, d := date.In(tm.loc).Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, tm.loc)
}

// DayBounds returns the [00:00, 24:00) span of date's day in the
// business frame, used to scope calendar queries.
func (tm *TimeModel) DayBounds(date time.Time) Interval {
	y, m, d := date.In(tm.loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, tm.loc)
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// SameDay reports whether two instants fall on the same civil day in the
// business frame.
func (tm *TimeModel) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(tm.loc).Date()
	by, bm, bd := b.In(tm.loc).Date()
	return ay == by && am == bm && ad == bd
}
