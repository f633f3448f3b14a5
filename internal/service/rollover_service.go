package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"habit-tracker/internal/calendar"
	"habit-tracker/internal/repository"
)

// RolloverService starts the new calendar day: every live habit gets a fresh
// pending record. Seeding goes through the daily upsert, so running the job
// twice (restart, overlapping schedule) cannot create duplicates.
type RolloverService struct {
	habits      *repository.HabitRepository
	completions *repository.CompletionRepository
	cal         *calendar.Calendar
}

func NewRolloverService(habits *repository.HabitRepository, completions *repository.CompletionRepository, cal *calendar.Calendar) *RolloverService {
	return &RolloverService{habits: habits, completions: completions, cal: cal}
}

// RollOver seeds a pending record for now's calendar day for every live
// habit. Per-habit failures are collected, not fatal for the rest.
func (s *RolloverService) RollOver(ctx context.Context, now time.Time) error {
	habits, err := s.habits.ListAllLive(ctx)
	if err != nil {
		return fmt.Errorf("rollover: %w", err)
	}

	day := s.cal.DayOf(now)
	var failed []error
	for _, habit := range habits {
		if _, err := s.completions.UpsertDaily(ctx, habit.ID, day, now); err != nil {
			log.Printf("rollover habit %d: %v", habit.ID, err)
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("rollover: %d of %d habits failed: %w", len(failed), len(habits), errors.Join(failed...))
	}
	return nil
}
