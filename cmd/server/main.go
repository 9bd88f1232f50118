package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"appointment-service/internal/app"
	"appointment-service/internal/gcal"
	"appointment-service/internal/schedule"
	"appointment-service/internal/server"
)

func main() {
	godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	gateway, err := gcal.New(ctx, cfg.CredentialsFile, cfg.TokenFile, cfg.Location)
	if err != nil {
		log.Fatalf("calendar gateway: %v", err)
	}

	tm := schedule.NewTimeModel(cfg.Location, nil)
	engine := schedule.NewEngine(tm, cfg.Grid, cfg.Buffer)
	coordinator := schedule.NewCoordinator(gateway, engine, tm, cfg.CalendarID, cfg.CallTimeout)

	// Probe the calendar once so a bad or expired token fails loudly at
	// startup instead of on the first booking.
	probeCtx, cancel := context.WithTimeout(ctx, cfg.CallTimeout)
	now := tm.Now()
	if _, err := gateway.FreeBusy(probeCtx, cfg.CalendarID, now, now.Add(time.Hour)); err != nil {
		log.Fatalf("calendar probe failed: %v", err)
	}
	cancel()

	appInstance := &app.App{
		Gateway:     gateway,
		TimeModel:   tm,
		Engine:      engine,
		Coordinator: coordinator,
		CalendarID:  cfg.CalendarID,
		CallTimeout: cfg.CallTimeout,
	}

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/healthz", appInstance.HealthHandler)

	if cfg.MetricsEnabled {
		appInstance.Metrics = app.NewMetrics(prometheus.DefaultRegisterer)
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	authed := router.Group("/")
	authed.Use(app.AuthMiddleware(cfg.StaticTokens, cfg.JWTSecret))
	{
		authed.GET("/available-slots", appInstance.AvailableSlotsHandler)
		authed.POST("/create-appointment", appInstance.CreateAppointmentHandler)
	}

	log.Printf("serving calendar %s on :%s", cfg.CalendarID, cfg.Port)
	server.Run(router, cfg.Port)
}
