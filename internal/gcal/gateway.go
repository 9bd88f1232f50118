package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"appointment-service/internal/schedule"
)

// Gateway implements schedule.CalendarGateway on top of the Google
// Calendar v3 API.
type Gateway struct {
	svc *calendar.Service
	loc *time.Location
}

// New builds a Gateway from an OAuth2 client credentials file and a
// previously authorized token file (the token must already exist; this
// service never opens an interactive consent flow). The location anchors
// all-day events, which arrive as bare dates.
func New(ctx context.Context, credentialsFile, tokenFile string, loc *time.Location) (*Gateway, error) {
	credBytes, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	cfg, err := google.ConfigFromJSON(credBytes, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	tokBytes, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read token (authorize first): %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(tokBytes, &tok); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, &tok)))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &Gateway{svc: svc, loc: loc}, nil
}

func (g *Gateway) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]schedule.Event, error) {
	call := g.svc.Events.List(calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(250).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339))

	var events []schedule.Event
	err := call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			ev, err := g.convertEvent(item)
			if err != nil {
				return err
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, upstream("list events", err)
	}
	return events, nil
}

func (g *Gateway) InsertEvent(ctx context.Context, calendarID string, ev schedule.EventInput) (string, error) {
	created, err := g.svc.Events.Insert(calendarID, &calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: ev.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: ev.TimeZone,
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", upstream("insert event", err)
	}
	return created.Id, nil
}

func (g *Gateway) FreeBusy(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]schedule.Interval, error) {
	res, err := g.svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: timeMin.Format(time.RFC3339),
		TimeMax: timeMax.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, upstream("freebusy", err)
	}

	cal, ok := res.Calendars[calendarID]
	if !ok {
		return nil, upstream("freebusy", fmt.Errorf("calendar %q missing from response", calendarID))
	}
	busy := make([]schedule.Interval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, upstream("freebusy", fmt.Errorf("bad busy start %q: %w", period.Start, err))
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, upstream("freebusy", fmt.Errorf("bad busy end %q: %w", period.End, err))
		}
		busy = append(busy, schedule.Interval{Start: start.In(g.loc), End: end.In(g.loc)})
	}
	return busy, nil
}

// convertEvent maps a wire event to a schedule.Event. Timed events carry
// RFC3339 date-times; all-day events carry only a date, which is widened
// to that day's bounds in the business frame.
func (g *Gateway) convertEvent(item *calendar.Event) (schedule.Event, error) {
	if item.Start == nil || item.End == nil {
		return schedule.Event{}, fmt.Errorf("event %s has no start/end", item.Id)
	}

	if item.Start.Date != "" {
		day, err := time.ParseInLocation("2006-01-02", item.Start.Date, g.loc)
		if err != nil {
			return schedule.Event{}, fmt.Errorf("bad all-day start %q: %w", item.Start.Date, err)
		}
		return schedule.Event{Start: day, End: day.AddDate(0, 0, 1), AllDay: true}, nil
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return schedule.Event{}, fmt.Errorf("bad start %q: %w", item.Start.DateTime, err)
	}
	end, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return schedule.Event{}, fmt.Errorf("bad end %q: %w", item.End.DateTime, err)
	}
	return schedule.Event{Start: start.In(g.loc), End: end.In(g.loc)}, nil
}

func upstream(op string, err error) error {
	if apiErr, ok := err.(*googleapi.Error); ok {
		return &schedule.UpstreamError{Op: op, Err: fmt.Errorf("google calendar returned %d: %s", apiErr.Code, apiErr.Message)}
	}
	return &schedule.UpstreamError{Op: op, Err: err}
}
