package gcal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"

	"appointment-service/internal/schedule"
)

var ist = time.FixedZone("UTC+05:30", 5*3600+30*60)

func TestConvertTimedEvent(t *testing.T) {
	g := &Gateway{loc: ist}

	ev, err := g.convertEvent(&calendar.Event{
		Id: "abc",
		Start: &calendar.EventDateTime{
			DateTime: "2026-09-14T10:00:00+05:30",
		},
		End: &calendar.EventDateTime{
			DateTime: "2026-09-14T10:30:00+05:30",
		},
	})
	require.NoError(t, err)

	assert.False(t, ev.AllDay)
	assert.True(t, ev.Start.Equal(time.Date(2026, 9, 14, 10, 0, 0, 0, ist)))
	assert.True(t, ev.End.Equal(time.Date(2026, 9, 14, 10, 30, 0, 0, ist)))
	assert.Equal(t, ist, ev.Start.Location())
}

func TestConvertTimedEventNormalizesZone(t *testing.T) {
	g := &Gateway{loc: ist}

	// A UTC wire time lands in the business frame.
	ev, err := g.convertEvent(&calendar.Event{
		Start: &calendar.EventDateTime{DateTime: "2026-09-14T04:30:00Z"},
		End:   &calendar.EventDateTime{DateTime: "2026-09-14T05:00:00Z"},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, ev.Start.In(ist).Hour())
	assert.True(t, ev.Start.Equal(time.Date(2026, 9, 14, 10, 0, 0, 0, ist)))
}

func TestConvertAllDayEvent(t *testing.T) {
	g := &Gateway{loc: ist}

	ev, err := g.convertEvent(&calendar.Event{
		Start: &calendar.EventDateTime{Date: "2026-09-14"},
		End:   &calendar.EventDateTime{Date: "2026-09-15"},
	})
	require.NoError(t, err)

	assert.True(t, ev.AllDay)
	assert.True(t, ev.Start.Equal(time.Date(2026, 9, 14, 0, 0, 0, 0, ist)))
	assert.Equal(t, 24*time.Hour, ev.End.Sub(ev.Start))
}

func TestConvertEventRejectsMalformedPayloads(t *testing.T) {
	g := &Gateway{loc: ist}

	cases := []struct {
		name string
		item *calendar.Event
	}{
		{"no start", &calendar.Event{End: &calendar.EventDateTime{Date: "2026-09-15"}}},
		{"no end", &calendar.Event{Start: &calendar.EventDateTime{Date: "2026-09-14"}}},
		{"bad date", &calendar.Event{
			Start: &calendar.EventDateTime{Date: "14/09/2026"},
			End:   &calendar.EventDateTime{Date: "2026-09-15"},
		}},
		{"bad datetime", &calendar.Event{
			Start: &calendar.EventDateTime{DateTime: "yesterday"},
			End:   &calendar.EventDateTime{DateTime: "2026-09-14T10:30:00Z"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.convertEvent(tc.item)
			assert.Error(t, err)
		})
	}
}

func TestUpstreamWrapsGoogleAPIErrors(t *testing.T) {
	err := upstream("list events", &googleapi.Error{Code: 429, Message: "rate limit"})

	var uErr *schedule.UpstreamError
	require.ErrorAs(t, err, &uErr)
	assert.Contains(t, uErr.Error(), "429")
	assert.Contains(t, uErr.Error(), "list events")
}

func TestUpstreamWrapsTransportErrors(t *testing.T) {
	cause := errors.New("connection refused")
	err := upstream("insert event", cause)

	var uErr *schedule.UpstreamError
	require.ErrorAs(t, err, &uErr)
	assert.ErrorIs(t, err, cause)
}
