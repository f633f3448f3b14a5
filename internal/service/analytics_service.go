package service

import (
	"context"
	"sync"
	"time"

	"habit-tracker/internal/calendar"
	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
	"habit-tracker/internal/stats"
)

// HabitStreakSummary is one habit's streaks on the dashboard.
type HabitStreakSummary struct {
	HabitID uint
	Name    string
	Color   string
	Streaks stats.StreakResult
}

// ConsistencyReport relates completions to goal-implied expectations over a
// window.
type ConsistencyReport struct {
	Done     int
	Expected float64
	Percent  float64
}

// AnalyticsService fetches ordered completion events through the store
// adapter and folds them with the pure calculators. It never retries or
// masks a store failure; an empty history yields zero results instead.
type AnalyticsService struct {
	habits      *repository.HabitRepository
	completions *repository.CompletionRepository
	cal         *calendar.Calendar
}

func NewAnalyticsService(habits *repository.HabitRepository, completions *repository.CompletionRepository, cal *calendar.Calendar) *AnalyticsService {
	return &AnalyticsService{habits: habits, completions: completions, cal: cal}
}

// HabitStreaks computes current and best streak for one habit over its whole
// history.
func (s *AnalyticsService) HabitStreaks(ctx context.Context, user *model.User, habitID uint, now time.Time) (stats.StreakResult, error) {
	habit, err := s.habits.FindByID(ctx, user.ID, habitID)
	if err != nil {
		return stats.StreakResult{}, err
	}

	records, err := s.completions.Find(ctx, []uint{habit.ID}, true, nil, repository.Ascending)
	if err != nil {
		return stats.StreakResult{}, err
	}
	return stats.ComputeStreaks(records, now, s.cal), nil
}

// UserStreak folds every habit's completions for the period into one merged
// per-day streak: any habit done on a day keeps that day alive.
func (s *AnalyticsService) UserStreak(ctx context.Context, user *model.User, period stats.Period, now time.Time) (stats.StreakResult, error) {
	habits, err := s.habits.ListByUser(ctx, user.ID)
	if err != nil {
		return stats.StreakResult{}, err
	}
	if len(habits) == 0 {
		return stats.StreakResult{}, nil
	}

	window, err := s.windowFor(period, now)
	if err != nil {
		return stats.StreakResult{}, err
	}

	records, err := s.completions.Find(ctx, habitIDs(habits), true, window, repository.Ascending)
	if err != nil {
		return stats.StreakResult{}, err
	}
	return stats.ComputeStreaks(records, now, s.cal), nil
}

// UserHabitStreaks computes the dashboard, one streak result per habit.
// Habits are independent record sets, so the fetches run concurrently.
func (s *AnalyticsService) UserHabitStreaks(ctx context.Context, user *model.User, now time.Time) ([]HabitStreakSummary, error) {
	habits, err := s.habits.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]HabitStreakSummary, len(habits))
	errs := make([]error, len(habits))

	var wg sync.WaitGroup
	for i, habit := range habits {
		wg.Add(1)
		go func(i int, habit model.Habit) {
			defer wg.Done()
			records, err := s.completions.Find(ctx, []uint{habit.ID}, true, nil, repository.Ascending)
			if err != nil {
				errs[i] = err
				return
			}
			summaries[i] = HabitStreakSummary{
				HabitID: habit.ID,
				Name:    habit.Name,
				Color:   habit.Color,
				Streaks: stats.ComputeStreaks(records, now, s.cal),
			}
		}(i, habit)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return summaries, nil
}

// UserConsistency relates the period's completions to what the habits' weekly
// goals would expect over that window.
func (s *AnalyticsService) UserConsistency(ctx context.Context, user *model.User, period stats.Period, now time.Time) (ConsistencyReport, error) {
	habits, err := s.habits.ListByUser(ctx, user.ID)
	if err != nil {
		return ConsistencyReport{}, err
	}
	if len(habits) == 0 {
		return ConsistencyReport{}, nil
	}

	window, err := s.windowFor(period, now)
	if err != nil {
		return ConsistencyReport{}, err
	}

	records, err := s.completions.Find(ctx, habitIDs(habits), true, window, repository.Ascending)
	if err != nil {
		return ConsistencyReport{}, err
	}

	if window == nil {
		// All time: the window runs from the first recorded day through today.
		if len(records) == 0 {
			return ConsistencyReport{}, nil
		}
		window = &repository.Window{
			Start: calendar.Canonical(records[0].Day),
			End:   s.cal.DayOf(now).AddDate(0, 0, 1),
		}
	}

	totalGoal := 0
	for _, habit := range habits {
		totalGoal += habit.Goal
	}

	done := stats.CountDone(records)
	weeks := stats.WeeksIn(window.Start, window.End)
	return ConsistencyReport{
		Done:     done,
		Expected: float64(totalGoal) * weeks,
		Percent:  stats.Consistency(done, totalGoal, weeks),
	}, nil
}

// UserAccomplishedCounts builds the dense day-by-day completion tally for the
// period, one entry per calendar day with the habit names completed that day.
func (s *AnalyticsService) UserAccomplishedCounts(ctx context.Context, user *model.User, period stats.Period, now time.Time) ([]stats.DayCount, error) {
	habits, err := s.habits.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(habits) == 0 {
		return nil, nil
	}

	window, err := s.windowFor(period, now)
	if err != nil {
		return nil, err
	}

	records, err := s.completions.Find(ctx, habitIDs(habits), true, window, repository.Ascending)
	if err != nil {
		return nil, err
	}

	if window == nil {
		if len(records) == 0 {
			return nil, nil
		}
		window = &repository.Window{
			Start: calendar.Canonical(records[0].Day),
			End:   s.cal.DayOf(now).AddDate(0, 0, 1),
		}
	}

	names := make(map[uint]string, len(habits))
	for _, habit := range habits {
		names[habit.ID] = habit.Name
	}

	// DailyCounts takes an inclusive range; the window end is exclusive.
	return stats.DailyCounts(records, names, window.Start, window.End.AddDate(0, 0, -1)), nil
}

// GoalProgress reports one habit's completions this week against its goal.
func (s *AnalyticsService) GoalProgress(ctx context.Context, user *model.User, habitID uint, now time.Time) (float64, error) {
	habit, err := s.habits.FindByID(ctx, user.ID, habitID)
	if err != nil {
		return 0, err
	}

	window, err := s.windowFor(stats.PeriodWeek, now)
	if err != nil {
		return 0, err
	}

	records, err := s.completions.Find(ctx, []uint{habit.ID}, true, window, repository.Ascending)
	if err != nil {
		return 0, err
	}
	return stats.GoalProgress(stats.CountDone(records), habit.Goal)
}

// windowFor maps a period to a repository window; nil means unbounded.
func (s *AnalyticsService) windowFor(period stats.Period, now time.Time) (*repository.Window, error) {
	start, end, bounded, err := period.Window(now, s.cal)
	if err != nil {
		return nil, err
	}
	if !bounded {
		return nil, nil
	}
	return &repository.Window{Start: start, End: end}, nil
}

func habitIDs(habits []model.Habit) []uint {
	ids := make([]uint, len(habits))
	for i, habit := range habits {
		ids[i] = habit.ID
	}
	return ids
}
