package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clocks(ss ...string) []Clock {
	out := make([]Clock, 0, len(ss))
	for _, s := range ss {
		c, err := ParseClock(s)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

func slotStrings(cs []Clock) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.String())
	}
	return out
}

func newTestEngine(now time.Time, buffer time.Duration) (*Engine, *TimeModel) {
	tm := testModel(now)
	return NewEngine(tm, DefaultGrid(), buffer), tm
}

func TestFreeSlotsExampleGrid(t *testing.T) {
	// Querying tomorrow with one busy span [09:00, 09:45): 09:00 overlaps,
	// 10:00 does not.
	now := time.Date(2026, 9, 13, 12, 0, 0, 0, ist)
	engine, tm := newTestEngine(now, 30*time.Minute)

	date, err := tm.ParseDate("2026-09-14")
	require.NoError(t, err)

	idx := BuildBusyIndex([]Event{timed(9, 0, 9, 45)})
	got := slotStrings(engine.FreeSlots(date, idx))

	assert.Equal(t, []string{"08:00", "10:00", "11:00", "14:00", "15:00", "16:00", "17:00"}, got)
}

func TestFreeSlotsFullDayLeaveDominates(t *testing.T) {
	now := time.Date(2026, 9, 13, 12, 0, 0, 0, ist)
	engine, tm := newTestEngine(now, 30*time.Minute)

	date, err := tm.ParseDate("2026-09-14")
	require.NoError(t, err)

	idx := BuildBusyIndex([]Event{
		{Start: tm.DayBounds(date).Start, End: tm.DayBounds(date).End, AllDay: true},
		timed(9, 0, 9, 30),
	})

	assert.Empty(t, engine.FreeSlots(date, idx))
}

func TestFreeSlotsBufferRule(t *testing.T) {
	// now = 09:05 with a 30m buffer: 09:00 and 09:30 are gone today, the
	// identical grid is fully open tomorrow.
	now := time.Date(2026, 9, 14, 9, 5, 0, 0, ist)
	tm := testModel(now)
	grid := Grid{Times: clocks("09:00", "09:30", "10:00"), SlotDuration: 30 * time.Minute}
	engine := NewEngine(tm, grid, 30*time.Minute)

	today, err := tm.ParseDate("2026-09-14")
	require.NoError(t, err)
	tomorrow, err := tm.ParseDate("2026-09-15")
	require.NoError(t, err)

	assert.Equal(t, []string{"10:00"}, slotStrings(engine.FreeSlots(today, BusyIndex{})))
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotStrings(engine.FreeSlots(tomorrow, BusyIndex{})))
}

func TestFreeSlotsBufferBoundaryExcluded(t *testing.T) {
	// A slot starting exactly at now+buffer is excluded.
	now := time.Date(2026, 9, 14, 9, 30, 0, 0, ist)
	tm := testModel(now)
	grid := Grid{Times: clocks("10:00", "10:30"), SlotDuration: 30 * time.Minute}
	engine := NewEngine(tm, grid, 30*time.Minute)

	today, err := tm.ParseDate("2026-09-14")
	require.NoError(t, err)

	assert.Equal(t, []string{"10:30"}, slotStrings(engine.FreeSlots(today, BusyIndex{})))
}

func TestFreeSlotsPastDateHasNone(t *testing.T) {
	now := time.Date(2026, 9, 14, 9, 0, 0, 0, ist)
	engine, tm := newTestEngine(now, 30*time.Minute)

	yesterday, err := tm.ParseDate("2026-09-13")
	require.NoError(t, err)

	assert.Empty(t, engine.FreeSlots(yesterday, BusyIndex{}))
}

func TestFreeSlotsTouchingSpanLeavesSlotFree(t *testing.T) {
	// An event ending exactly at 10:00 does not block the [10:00, 10:30)
	// slot.
	now := time.Date(2026, 9, 13, 12, 0, 0, 0, ist)
	engine, tm := newTestEngine(now, 30*time.Minute)

	date, err := tm.ParseDate("2026-09-14")
	require.NoError(t, err)

	idx := BuildBusyIndex([]Event{timed(9, 0, 10, 0)})
	got := slotStrings(engine.FreeSlots(date, idx))

	assert.Contains(t, got, "10:00")
	assert.NotContains(t, got, "09:00")
}

func TestFreeSlotsPreservesGridOrder(t *testing.T) {
	now := time.Date(2026, 9, 13, 12, 0, 0, 0, ist)
	engine, tm := newTestEngine(now, 30*time.Minute)

	date, err := tm.ParseDate("2026-09-14")
	require.NoError(t, err)

	got := engine.FreeSlots(date, BusyIndex{})
	require.Equal(t, len(DefaultGrid().Times), len(got))
	for i, c := range DefaultGrid().Times {
		assert.Equal(t, c, got[i])
	}
}

func TestIsSlotFree(t *testing.T) {
	now := time.Date(2026, 9, 13, 12, 0, 0, 0, ist)
	engine, tm := newTestEngine(now, 30*time.Minute)

	date, err := tm.ParseDate("2026-09-14")
	require.NoError(t, err)
	idx := BuildBusyIndex([]Event{timed(9, 0, 9, 45)})

	cases := []struct {
		clock string
		want  bool
	}{
		{"08:30", true},  // ends exactly at span start
		{"08:45", false}, // overlaps span head
		{"09:00", false},
		{"09:30", false}, // overlaps span tail
		{"09:45", true},  // starts exactly at span end
		{"10:00", true},
	}
	for _, tc := range cases {
		t.Run(tc.clock, func(t *testing.T) {
			c, err := ParseClock(tc.clock)
			require.NoError(t, err)
			assert.Equal(t, tc.want, engine.IsSlotFree(tm.At(date, c), idx))
		})
	}

	assert.False(t, engine.IsSlotFree(tm.At(date, Clock{8, 0}), BusyIndex{FullyBlocked: true}))
}
