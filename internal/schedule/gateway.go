package schedule

import (
	"context"
	"time"
)

// Event is a raw calendar entry as reported by the backend calendar.
// All-day entries carry only a date on the wire; the gateway normalizes
// them to the containing day's bounds and sets AllDay.
type Event struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// EventInput describes an event to be inserted into the backend calendar.
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
}

// CalendarGateway is the boundary to the external calendar. The calendar
// is the single source of truth: nothing else persists busy spans or
// confirmed reservations. Implementations surface transport, auth and
// quota failures as *UpstreamError.
type CalendarGateway interface {
	// ListEvents returns all events overlapping [timeMin, timeMax).
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]Event, error)

	// InsertEvent creates an event and returns its external id.
	InsertEvent(ctx context.Context, calendarID string, ev EventInput) (string, error)

	// FreeBusy returns the busy intervals the calendar reports for
	// [timeMin, timeMax).
	FreeBusy(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]Interval, error)
}
