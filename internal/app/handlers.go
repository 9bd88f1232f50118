package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"appointment-service/internal/schedule"
)

// App wires the HTTP adapter to the scheduling core. It translates
// requests into core operations and core results into the JSON shapes
// the existing frontend expects.
type App struct {
	Gateway     schedule.CalendarGateway
	TimeModel   *schedule.TimeModel
	Engine      *schedule.Engine
	Coordinator *schedule.Coordinator
	CalendarID  string
	CallTimeout time.Duration
	Metrics     *Metrics
}

// GET /available-slots?date=YYYY-MM-DD
func (a *App) AvailableSlotsHandler(c *gin.Context) {
	a.Metrics.SlotQuery()

	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Missing date"})
		return
	}
	date, err := a.TimeModel.ParseDate(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	// Advisory snapshot: no lock is taken here. A slot shown free may be
	// gone by the time it is booked; the coordinator's locked recheck is
	// what actually guarantees exclusivity.
	bounds := a.TimeModel.DayBounds(date)
	ctx, cancel := context.WithTimeout(c.Request.Context(), a.CallTimeout)
	defer cancel()
	events, err := a.Gateway.ListEvents(ctx, a.CalendarID, bounds.Start, bounds.End)
	if err != nil {
		// A failed read must not masquerade as a fully booked day.
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	free := a.Engine.FreeSlots(date, schedule.BuildBusyIndex(events))
	slots := make([]string, 0, len(free))
	for _, clock := range free {
		slots = append(slots, clock.String())
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "slots": slots})
}

// POST /create-appointment
func (a *App) CreateAppointmentHandler(c *gin.Context) {
	var req createAppointmentReq
	if err := c.BindJSON(&req); err != nil {
		a.Metrics.Reservation("validation_error")
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	conf, err := a.Coordinator.Reserve(c.Request.Context(), schedule.Reservation{
		Date:    req.Date,
		Time:    req.Time,
		Subject: req.Name,
		Notes:   req.notes(),
	})

	var vErr *schedule.ValidationError
	switch {
	case err == nil:
		a.Metrics.Reservation("success")
		c.JSON(http.StatusOK, gin.H{"status": "success", "eventId": conf.EventID})
	case errors.As(err, &vErr):
		a.Metrics.Reservation("validation_error")
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": vErr.Error()})
	case errors.Is(err, schedule.ErrFullDayLeave):
		a.Metrics.Reservation("conflict")
		c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "Doctor is not available on this date"})
	case errors.Is(err, schedule.ErrConflict):
		a.Metrics.Reservation("conflict")
		c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "Doctor is not available for this time slot"})
	default:
		a.Metrics.Reservation("upstream_error")
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
	}
}

// GET /healthz
func (a *App) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
