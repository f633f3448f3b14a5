package service

import (
	"context"
	"time"

	"habit-tracker/internal/calendar"
	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
)

// AccomplishService owns the per-(habit, day) record lifecycle: lazy seeding
// and the toggle. A day has at most one record; existence checks go by
// calendar day in the reference zone, never by timestamp equality.
type AccomplishService struct {
	completions *repository.CompletionRepository
	cal         *calendar.Calendar
}

func NewAccomplishService(completions *repository.CompletionRepository, cal *calendar.Calendar) *AccomplishService {
	return &AccomplishService{completions: completions, cal: cal}
}

// SeedToday makes sure today's record exists, pending. If the day already has
// a record it is returned unchanged, whatever its state.
func (s *AccomplishService) SeedToday(ctx context.Context, habitID uint, now time.Time) (*model.CompletionRecord, error) {
	return s.completions.UpsertDaily(ctx, habitID, s.cal.DayOf(now), now)
}

// Toggle flips today's record. The first toggle of a day with no record
// lands on done: habit creation seeds pending, and the first user action
// means the habit was accomplished. Every toggle refreshes DateChanged;
// Day never moves.
func (s *AccomplishService) Toggle(ctx context.Context, habitID uint, now time.Time) (*model.CompletionRecord, error) {
	record, err := s.completions.UpsertDaily(ctx, habitID, s.cal.DayOf(now), now)
	if err != nil {
		return nil, err
	}

	record.Done = !record.Done
	record.DateChanged = now
	if err := s.completions.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// StatusForDay reports the done flag for a habit on a given day; a missing
// record reads as not done.
func (s *AccomplishService) StatusForDay(ctx context.Context, habitID uint, day time.Time) (bool, error) {
	record, err := s.completions.FindForDay(ctx, habitID, s.cal.DayOf(day))
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, nil
	}
	return record.Done, nil
}
