package model

import (
	"time"

	"gorm.io/gorm"
)

// Palette colors a habit may carry. First entry is the default.
var HabitColors = []string{"#BFFF95", "#89E2CD", "#FBEF95", "#FEBCEA", "#F2C394"}

const DefaultHabitColor = "#BFFF95"

// Goal bounds: completions-per-week target.
const (
	MinGoal = 1
	MaxGoal = 7
)

// Habit is a user-defined recurring activity with a weekly completion goal.
// Habits are tombstoned via DeletedAt, never hard-deleted while their
// completion records are still referenced.
type Habit struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Name      string `gorm:"not null"`
	Goal      int    `gorm:"not null"`
	Color     string `gorm:"default:#BFFF95"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Completions []CompletionRecord `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE"`
}

// ValidGoal reports whether goal is a usable weekly target.
func ValidGoal(goal int) bool {
	return goal >= MinGoal && goal <= MaxGoal
}

// ValidColor reports whether color is part of the product palette.
func ValidColor(color string) bool {
	for _, c := range HabitColors {
		if c == color {
			return true
		}
	}
	return false
}
