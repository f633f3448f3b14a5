package model

import "time"

// CompletionRecord says whether a habit was accomplished on one calendar day.
//
// Day is the record's identity: the canonical calendar day it represents,
// stored as UTC midnight of the reference-zone date, set at creation and
// never moved. DateChanged is only "last changed" and is refreshed on every
// toggle. The unique index on (habit_id, day) is what keeps concurrent
// toggles from creating two records for the same day.
type CompletionRecord struct {
	ID          uint      `gorm:"primaryKey"`
	HabitID     uint      `gorm:"not null;uniqueIndex:uidx_habit_day"`
	Day         time.Time `gorm:"type:date;not null;uniqueIndex:uidx_habit_day"`
	Done        bool      `gorm:"not null;default:false"`
	DateChanged time.Time `gorm:"not null"`
	CreatedAt   time.Time
}
