package model

import "time"

// User owns a set of habits. Deleting a user cascades to habits and their
// completion records through the FK constraints.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Habits    []Habit `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
