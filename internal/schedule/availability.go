package schedule

import "time"

// Grid is the configured sequence of candidate slot starts for a day.
// It is configuration, not derived data: times are distinct and in
// ascending order.
type Grid struct {
	Times        []Clock
	SlotDuration time.Duration
}

// DefaultGrid mirrors the clinic's consultation hours: hourly slots with
// a midday break, 30 minutes each.
func DefaultGrid() Grid {
	return Grid{
		Times: []Clock{
			{8, 0}, {9, 0}, {10, 0}, {11, 0},
			{14, 0}, {15, 0}, {16, 0}, {17, 0},
		},
		SlotDuration: 30 * time.Minute,
	}
}

// Engine computes free slots for a day from a BusyIndex, the slot grid
// and the lead-time buffer.
type Engine struct {
	tm     *TimeModel
	grid   Grid
	buffer time.Duration
}

func NewEngine(tm *TimeModel, grid Grid, buffer time.Duration) *Engine {
	return &Engine{tm: tm, grid: grid, buffer: buffer}
}

// Grid returns the engine's configured slot grid.
func (e *Engine) Grid() Grid { return e.grid }

// FreeSlots returns the grid times still free on date, in grid order.
// A fully blocked day has no free slots regardless of grid or buffer.
// For today, slots starting at or before now+buffer are excluded; dates
// already past yield nothing for the same reason.
func (e *Engine) FreeSlots(date time.Time, idx BusyIndex) []Clock {
	if idx.FullyBlocked {
		return nil
	}

	now := e.tm.Now()
	cutoff := now.Add(e.buffer)
	endOfToday := e.tm.DayBounds(now).End

	free := make([]Clock, 0, len(e.grid.Times))
	for _, c := range e.grid.Times {
		start := e.tm.At(date, c)
		if start.Before(endOfToday) && !start.After(cutoff) {
			continue
		}
		if e.IsSlotFree(start, idx) {
			free = append(free, c)
		}
	}
	return free
}

// IsSlotFree reports whether the slot starting at start intersects no
// busy span. Half-open test: a span ending exactly at start does not
// block the slot.
func (e *Engine) IsSlotFree(start time.Time, idx BusyIndex) bool {
	if idx.FullyBlocked {
		return false
	}
	slot := Interval{Start: start, End: start.Add(e.grid.SlotDuration)}
	for _, span := range idx.Spans {
		if slot.Overlaps(span) {
			return false
		}
	}
	return true
}
