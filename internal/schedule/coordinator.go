package schedule

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Reservation is a caller's intent to book one slot.
type Reservation struct {
	Date    string // "YYYY-MM-DD"
	Time    string // "HH:MM"
	Subject string
	Notes   string
}

// Confirmation is the terminal success state of a reservation attempt.
type Confirmation struct {
	EventID string
	Start   time.Time
	End     time.Time
}

// lockTable hands out one lock per calendar id. Serialization is
// per-calendar rather than per-slot: write volume is low and the lock is
// held only for one list and at most one insert, so finer granularity
// buys nothing. Each lock is a 1-buffered channel so a waiter can give
// up when its context is canceled instead of blocking on a mutex.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func (t *lockTable) get(calendarID string) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.locks == nil {
		t.locks = make(map[string]chan struct{})
	}
	l, ok := t.locks[calendarID]
	if !ok {
		l = make(chan struct{}, 1)
		t.locks[calendarID] = l
	}
	return l
}

// Coordinator performs the atomic "still free? then reserve" sequence
// for one slot. The check-then-insert runs under a per-calendar lock so
// two concurrent attempts for the same slot cannot both commit.
type Coordinator struct {
	gw          CalendarGateway
	engine      *Engine
	tm          *TimeModel
	calendarID  string
	callTimeout time.Duration
	locks       lockTable
}

func NewCoordinator(gw CalendarGateway, engine *Engine, tm *TimeModel, calendarID string, callTimeout time.Duration) *Coordinator {
	return &Coordinator{
		gw:          gw,
		engine:      engine,
		tm:          tm,
		calendarID:  calendarID,
		callTimeout: callTimeout,
	}
}

// Reserve books one slot. It returns exactly one of: a Confirmation, a
// *ValidationError (nothing was sent to the calendar), ErrConflict (the
// slot was taken, nothing was written), or an *UpstreamError (the
// calendar backend failed; the attempted write must not be assumed
// committed).
func (c *Coordinator) Reserve(ctx context.Context, req Reservation) (Confirmation, error) {
	date, err := c.tm.ParseDate(req.Date)
	if err != nil {
		return Confirmation{}, err
	}
	clock, err := ParseClock(req.Time)
	if err != nil {
		return Confirmation{}, err
	}
	if strings.TrimSpace(req.Subject) == "" {
		return Confirmation{}, invalidf("name", "must not be empty")
	}

	start := c.tm.At(date, clock)
	end := start.Add(c.engine.Grid().SlotDuration)

	// A caller that gives up before the lock is acquired does no work:
	// neither an attempt abandoned up front nor one canceled while
	// waiting out a contended lock may touch the calendar.
	if err := ctx.Err(); err != nil {
		return Confirmation{}, &UpstreamError{Op: "reserve", Err: err}
	}
	lock := c.locks.get(c.calendarID)
	select {
	case lock <- struct{}{}:
	case <-ctx.Done():
		return Confirmation{}, &UpstreamError{Op: "reserve", Err: ctx.Err()}
	}
	defer func() { <-lock }()

	// Inside the locked section the attempt runs to a terminal state
	// even if the caller goes away: an insert interrupted mid-flight
	// would leave the calendar ambiguous. Each outbound call is still
	// bounded by the configured timeout.
	opCtx := context.WithoutCancel(ctx)

	events, err := c.listWindow(opCtx, start, end)
	if err != nil {
		return Confirmation{}, err
	}
	idx := BuildBusyIndex(events)
	if idx.FullyBlocked {
		return Confirmation{}, ErrFullDayLeave
	}
	if !c.engine.IsSlotFree(start, idx) {
		return Confirmation{}, ErrConflict
	}

	id, err := c.insert(opCtx, req, start, end)
	if err != nil {
		return Confirmation{}, err
	}
	return Confirmation{EventID: id, Start: start, End: end}, nil
}

func (c *Coordinator) listWindow(ctx context.Context, start, end time.Time) ([]Event, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()
	events, err := c.gw.ListEvents(ctx, c.calendarID, start, end)
	if err != nil {
		return nil, asUpstream("list events", err)
	}
	return events, nil
}

func (c *Coordinator) insert(ctx context.Context, req Reservation, start, end time.Time) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()
	id, err := c.gw.InsertEvent(ctx, c.calendarID, EventInput{
		Summary:     fmt.Sprintf("Appointment - %s", strings.TrimSpace(req.Subject)),
		Description: req.Notes,
		Start:       start,
		End:         end,
		TimeZone:    c.tm.Location().String(),
	})
	if err != nil {
		return "", asUpstream("insert event", err)
	}
	return id, nil
}

func asUpstream(op string, err error) error {
	if _, ok := err.(*UpstreamError); ok {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}
