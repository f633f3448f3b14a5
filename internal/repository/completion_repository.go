package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"habit-tracker/internal/model"
)

// Order directions for completion scans.
type Order string

const (
	// Ascending walks from the oldest event forward.
	Ascending Order = "ASC"
	// Descending walks most recent first.
	Descending Order = "DESC"
)

// Window is a half-open [Start, End) interval over canonical days.
type Window struct {
	Start time.Time
	End   time.Time
}

// Validate rejects inverted windows before they reach a query.
func (w Window) Validate() error {
	if !w.Start.Before(w.End) {
		return model.ErrInvalidWindow
	}
	return nil
}

// CompletionRepository is the accomplishment store adapter: ordered scans
// plus an atomic per-day upsert.
type CompletionRepository struct {
	db *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// Find returns completion records for the given habits ordered by day, with
// date_changed as tiebreaker. A nil window means all of history; doneOnly
// drops pending records.
func (r *CompletionRepository) Find(ctx context.Context, habitIDs []uint, doneOnly bool, window *Window, order Order) ([]model.CompletionRecord, error) {
	if len(habitIDs) == 0 {
		return nil, nil
	}
	if window != nil {
		if err := window.Validate(); err != nil {
			return nil, err
		}
	}

	q := r.db.WithContext(ctx).Where("habit_id IN ?", habitIDs)
	if doneOnly {
		q = q.Where("done = ?", true)
	}
	if window != nil {
		q = q.Where("day >= ? AND day < ?", window.Start, window.End)
	}

	var records []model.CompletionRecord
	if err := q.Order(fmt.Sprintf("day %s, date_changed %s", order, order)).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("find completions: %w", err)
	}
	return records, nil
}

// FindForDay looks up the record for one habit on one canonical day.
// Lookup is by calendar day, never by exact timestamp equality.
func (r *CompletionRepository) FindForDay(ctx context.Context, habitID uint, day time.Time) (*model.CompletionRecord, error) {
	var record model.CompletionRecord
	err := r.db.WithContext(ctx).
		Where("habit_id = ? AND day = ?", habitID, day).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find completion for day: %w", err)
	}
	return &record, nil
}

// UpsertDaily returns the record for (habit, day), creating a pending one if
// none exists. The conditional insert rides the (habit_id, day) unique index,
// so two concurrent callers cannot both create; the loser of the race reads
// the winner's row.
func (r *CompletionRepository) UpsertDaily(ctx context.Context, habitID uint, day, now time.Time) (*model.CompletionRecord, error) {
	record := model.CompletionRecord{
		HabitID:     habitID,
		Day:         day,
		Done:        false,
		DateChanged: now,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "habit_id"}, {Name: "day"}},
			DoNothing: true,
		}).
		Create(&record).Error
	if err != nil {
		return nil, fmt.Errorf("upsert completion: %w", err)
	}

	// On conflict the insert is a no-op; fetch whichever row is live.
	existing, err := r.FindForDay(ctx, habitID, day)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("upsert completion: record for habit %d vanished", habitID)
	}
	return existing, nil
}

// Save persists a flipped done flag and refreshed date_changed. Day and
// created_at never change after creation.
func (r *CompletionRepository) Save(ctx context.Context, record *model.CompletionRecord) error {
	err := r.db.WithContext(ctx).
		Model(record).
		Updates(map[string]interface{}{
			"done":         record.Done,
			"date_changed": record.DateChanged,
		}).Error
	if err != nil {
		return fmt.Errorf("save completion: %w", err)
	}
	return nil
}

// CountForDay reports how many records exist for (habit, day). Used to check
// the one-record-per-day invariant.
func (r *CompletionRepository) CountForDay(ctx context.Context, habitID uint, day time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.CompletionRecord{}).
		Where("habit_id = ? AND day = ?", habitID, day).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count completions: %w", err)
	}
	return n, nil
}

// DeleteByHabit removes a habit's records in bulk.
func (r *CompletionRepository) DeleteByHabit(ctx context.Context, habitID uint) error {
	if err := r.db.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Delete(&model.CompletionRecord{}).Error; err != nil {
		return fmt.Errorf("delete completions: %w", err)
	}
	return nil
}
