package model

import "errors"

// Input errors are rejected before any computation runs. Store failures are
// wrapped and propagated as-is so callers can tell "no data" from "could not
// get data".
var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrInvalidGoal   = errors.New("goal must be between 1 and 7")
	ErrInvalidColor  = errors.New("color is not in the habit palette")
	ErrInvalidWindow = errors.New("window start must precede end")
	ErrInvalidPeriod = errors.New("invalid period")
)
