package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"habit-tracker/internal/model"
)

// HabitRepository handles CRUD for habits. Reads exclude tombstoned habits
// via gorm's soft-delete scope.
type HabitRepository struct {
	db *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

func (r *HabitRepository) Create(ctx context.Context, habit *model.Habit) error {
	if err := r.db.WithContext(ctx).Create(habit).Error; err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

// FindByID looks a habit up scoped to its owner.
func (r *HabitRepository) FindByID(ctx context.Context, userID, habitID uint) (*model.Habit, error) {
	var habit model.Habit
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, habitID).
		First(&habit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("habit %d: %w", habitID, model.ErrHabitNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find habit: %w", err)
	}
	return &habit, nil
}

func (r *HabitRepository) ListByUser(ctx context.Context, userID uint) ([]model.Habit, error) {
	var habits []model.Habit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

// ListAllLive returns every non-tombstoned habit across all users, for the
// day-rollover job.
func (r *HabitRepository) ListAllLive(ctx context.Context) ([]model.Habit, error) {
	var habits []model.Habit
	if err := r.db.WithContext(ctx).Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("list live habits: %w", err)
	}
	return habits, nil
}

func (r *HabitRepository) Update(ctx context.Context, habit *model.Habit) error {
	if err := r.db.WithContext(ctx).Save(habit).Error; err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	return nil
}

// SoftDelete tombstones a habit. Its completion records are kept until the
// owning user is deleted.
func (r *HabitRepository) SoftDelete(ctx context.Context, userID, habitID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, habitID).
		Delete(&model.Habit{})
	if res.Error != nil {
		return fmt.Errorf("delete habit: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("habit %d: %w", habitID, model.ErrHabitNotFound)
	}
	return nil
}
