package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"appointment-service/internal/schedule"
)

// Config is the process configuration, read from the environment once at
// startup. Everything the six copy-pasted variants of this service used
// to hardcode (timezone offset, slot grid, slot duration, buffer) is a
// knob here.
type Config struct {
	Port            string
	CalendarID      string
	CredentialsFile string
	TokenFile       string

	Location    *time.Location
	Grid        schedule.Grid
	Buffer      time.Duration
	CallTimeout time.Duration

	StaticTokens []string
	JWTSecret    string

	MetricsEnabled bool
}

const defaultSlotTimes = "08:00,09:00,10:00,11:00,14:00,15:00,16:00,17:00"

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:            envOr("PORT", "8080"),
		CalendarID:      envOr("CALENDAR_ID", "primary"),
		CredentialsFile: envOr("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		TokenFile:       envOr("GOOGLE_TOKEN_FILE", "token.json"),
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_HMAC_SECRET")),
		MetricsEnabled:  os.Getenv("METRICS_ENABLED") == "true",
	}

	if raw := strings.TrimSpace(os.Getenv("STATIC_TOKENS")); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				cfg.StaticTokens = append(cfg.StaticTokens, t)
			}
		}
	}

	loc, err := parseOffset(envOr("BUSINESS_TZ_OFFSET", "+05:30"))
	if err != nil {
		return nil, err
	}
	cfg.Location = loc

	times := envOr("SLOT_TIMES", defaultSlotTimes)
	grid := schedule.Grid{}
	for _, s := range strings.Split(times, ",") {
		c, err := schedule.ParseClock(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("SLOT_TIMES: %w", err)
		}
		grid.Times = append(grid.Times, c)
	}

	slotMins, err := envMinutes("SLOT_DURATION_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	grid.SlotDuration = slotMins
	cfg.Grid = grid

	if cfg.Buffer, err = envMinutes("BUFFER_MINUTES", 30); err != nil {
		return nil, err
	}

	timeoutSecs := envOr("CALENDAR_TIMEOUT_SECONDS", "10")
	secs, err := strconv.Atoi(timeoutSecs)
	if err != nil || secs <= 0 {
		return nil, fmt.Errorf("CALENDAR_TIMEOUT_SECONDS: invalid value %q", timeoutSecs)
	}
	cfg.CallTimeout = time.Duration(secs) * time.Second

	return cfg, nil
}

// parseOffset turns "+05:30" style offsets into a fixed location.
func parseOffset(s string) (*time.Location, error) {
	t, err := time.Parse("-07:00", s)
	if err != nil {
		return nil, fmt.Errorf("BUSINESS_TZ_OFFSET: invalid offset %q", s)
	}
	_, offset := t.Zone()
	return time.FixedZone("UTC"+s, offset), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envMinutes(key string, fallback int) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(fallback) * time.Minute, nil
	}
	mins, err := strconv.Atoi(raw)
	if err != nil || mins <= 0 {
		return 0, fmt.Errorf("%s: invalid value %q", key, raw)
	}
	return time.Duration(mins) * time.Minute, nil
}
