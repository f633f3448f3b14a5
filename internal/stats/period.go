package stats

import (
	"time"

	"habit-tracker/internal/calendar"
	"habit-tracker/internal/model"
)

// Period selects the analytics window.
type Period string

const (
	PeriodDay     Period = "daily"
	PeriodWeek    Period = "weekly"
	PeriodMonth   Period = "monthly"
	PeriodAllTime Period = "all time"
)

// ParsePeriod maps a frequency string onto a Period. Unknown values are an
// input error, never defaulted.
func ParsePeriod(raw string) (Period, error) {
	switch Period(raw) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodAllTime:
		return Period(raw), nil
	default:
		return "", model.ErrInvalidPeriod
	}
}

// Window resolves the period to a half-open [start, end) interval of
// canonical day keys around now. bounded is false for the all-time period,
// which has no window.
func (p Period) Window(now time.Time, cal *calendar.Calendar) (start, end time.Time, bounded bool, err error) {
	switch p {
	case PeriodDay:
		start = cal.DayOf(now)
		return start, start.AddDate(0, 0, 1), true, nil
	case PeriodWeek:
		start = cal.DayOf(cal.StartOfWeek(now))
		return start, start.AddDate(0, 0, 7), true, nil
	case PeriodMonth:
		start = cal.DayOf(cal.StartOfMonth(now))
		return start, cal.DayOf(cal.EndOfMonth(now)).AddDate(0, 0, 1), true, nil
	case PeriodAllTime:
		return time.Time{}, time.Time{}, false, nil
	default:
		return time.Time{}, time.Time{}, false, model.ErrInvalidPeriod
	}
}

// WeeksIn measures a half-open day-key window in weeks. Weekly goals scale
// by this to give the expected completion count for the window.
func WeeksIn(start, end time.Time) float64 {
	days := end.Sub(start).Hours() / 24
	if days <= 0 {
		return 0
	}
	return days / 7
}
