package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the tracker. It is loaded once and passed
// into constructors; nothing else reads the environment.
type Config struct {
	DatabaseURL string
	// Timezone is the IANA name of the single reference zone used to resolve
	// "today" and week/month boundaries for every user.
	Timezone  string
	WeekStart time.Weekday
	// RolloverAt is the local HH:MM at which the daily rollover job seeds a
	// fresh pending record for every live habit.
	RolloverAt      string
	RolloverEnabled bool
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Timezone:        strings.TrimSpace(os.Getenv("REFERENCE_TIMEZONE")),
		RolloverAt:      strings.TrimSpace(os.Getenv("ROLLOVER_AT")),
		RolloverEnabled: strings.TrimSpace(os.Getenv("ROLLOVER_DISABLED")) == "",
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "habit_tracker.db"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Manila"
	}
	if cfg.RolloverAt == "" {
		cfg.RolloverAt = "00:00"
	}

	weekStart, err := parseWeekStart(strings.TrimSpace(os.Getenv("WEEK_START")))
	if err != nil {
		return cfg, err
	}
	cfg.WeekStart = weekStart

	// Fail now rather than at the first boundary computation.
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return cfg, fmt.Errorf("REFERENCE_TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// Location resolves the reference timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func parseWeekStart(raw string) (time.Weekday, error) {
	if raw == "" {
		return time.Sunday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(raw, d.String()) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("WEEK_START %q is not a weekday name", raw)
}
