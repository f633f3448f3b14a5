package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
)

// HabitInput carries data for creating or updating a habit.
type HabitInput struct {
	Name  string
	Goal  int
	Color string
}

// HabitService wraps habit CRUD and seeds the completion lifecycle.
type HabitService struct {
	habits     *repository.HabitRepository
	accomplish *AccomplishService
}

func NewHabitService(habits *repository.HabitRepository, accomplish *AccomplishService) *HabitService {
	return &HabitService{habits: habits, accomplish: accomplish}
}

// CreateHabit validates input, stores the habit and seeds today's pending
// record so the new habit shows up on the dashboard immediately.
func (s *HabitService) CreateHabit(ctx context.Context, user *model.User, input HabitInput, now time.Time) (*model.Habit, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !model.ValidGoal(input.Goal) {
		return nil, model.ErrInvalidGoal
	}
	color := input.Color
	if color == "" {
		color = model.DefaultHabitColor
	}
	if !model.ValidColor(color) {
		return nil, model.ErrInvalidColor
	}

	habit := model.Habit{
		UserID: user.ID,
		Name:   strings.TrimSpace(input.Name),
		Goal:   input.Goal,
		Color:  color,
	}
	if err := s.habits.Create(ctx, &habit); err != nil {
		return nil, err
	}

	if _, err := s.accomplish.SeedToday(ctx, habit.ID, now); err != nil {
		return nil, err
	}
	return &habit, nil
}

func (s *HabitService) ListHabits(ctx context.Context, user *model.User) ([]model.Habit, error) {
	return s.habits.ListByUser(ctx, user.ID)
}

func (s *HabitService) GetHabit(ctx context.Context, user *model.User, habitID uint) (*model.Habit, error) {
	return s.habits.FindByID(ctx, user.ID, habitID)
}

// UpdateHabit changes name, goal and color. Completion history is untouched.
func (s *HabitService) UpdateHabit(ctx context.Context, user *model.User, habitID uint, input HabitInput) (*model.Habit, error) {
	habit, err := s.habits.FindByID(ctx, user.ID, habitID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		habit.Name = name
	}
	if input.Goal != 0 {
		if !model.ValidGoal(input.Goal) {
			return nil, model.ErrInvalidGoal
		}
		habit.Goal = input.Goal
	}
	if input.Color != "" {
		if !model.ValidColor(input.Color) {
			return nil, model.ErrInvalidColor
		}
		habit.Color = input.Color
	}

	if err := s.habits.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// DeleteHabit tombstones the habit. Its records stay for history until the
// owning user is deleted.
func (s *HabitService) DeleteHabit(ctx context.Context, user *model.User, habitID uint) error {
	return s.habits.SoftDelete(ctx, user.ID, habitID)
}
