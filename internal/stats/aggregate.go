package stats

import (
	"math"
	"sort"
	"time"

	"habit-tracker/internal/calendar"
	"habit-tracker/internal/model"
)

// DayCount is one calendar day's completion tally with the names of the
// habits completed that day.
type DayCount struct {
	Day    time.Time
	Count  int
	Habits []string
}

// DailyCounts tallies done records per calendar day across [start, end]
// inclusive, where start and end are day keys. The result is dense: exactly
// one entry per day of the range, zero-filled, so a calendar view renders
// without gap-filling. habitNames maps habit IDs to display names; unknown
// IDs keep the count but contribute no name.
func DailyCounts(records []model.CompletionRecord, habitNames map[uint]string, start, end time.Time) []DayCount {
	type tally struct {
		count int
		names map[string]struct{}
	}
	byDay := make(map[time.Time]*tally)
	for _, rec := range records {
		if !rec.Done {
			continue
		}
		day := calendar.Canonical(rec.Day)
		t, ok := byDay[day]
		if !ok {
			t = &tally{names: make(map[string]struct{})}
			byDay[day] = t
		}
		t.count++
		if name, ok := habitNames[rec.HabitID]; ok {
			t.names[name] = struct{}{}
		}
	}

	first := calendar.Canonical(start)
	last := calendar.Canonical(end)
	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	out := make([]DayCount, 0, len(days))
	for _, day := range days {
		dc := DayCount{Day: day, Habits: []string{}}
		if t, ok := byDay[day]; ok {
			dc.Count = t.count
			for name := range t.names {
				dc.Habits = append(dc.Habits, name)
			}
			sort.Strings(dc.Habits)
		}
		out = append(out, dc)
	}
	return out
}

// GoalProgress reports completions against a weekly goal as a percentage,
// rounded to two decimals. Over-achievement is not clamped; 4 of 3 is 133.33.
func GoalProgress(doneThisWeek, goal int) (float64, error) {
	if goal <= 0 {
		return 0, model.ErrInvalidGoal
	}
	return round2(float64(doneThisWeek) / float64(goal) * 100), nil
}

// Consistency reports actual completions against goal-implied expected
// completions over a window measured in weeks. A zero denominator (no goals,
// empty window) is defined as 0, never NaN.
func Consistency(doneCount, totalWeeklyGoal int, weeks float64) float64 {
	expected := float64(totalWeeklyGoal) * weeks
	if expected <= 0 {
		return 0
	}
	return round2(float64(doneCount) / expected * 100)
}

// CountDone tallies done records, one per record (duplicates within a day
// already prevented at the store).
func CountDone(records []model.CompletionRecord) int {
	n := 0
	for _, rec := range records {
		if rec.Done {
			n++
		}
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
