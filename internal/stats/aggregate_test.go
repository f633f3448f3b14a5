package stats

import (
	"errors"
	"math"
	"testing"
	"time"

	"habit-tracker/internal/model"
)

func TestDailyCountsIsDense(t *testing.T) {
	cal := testCalendar(t)
	records := doneOn(t, "2024-01-02", "2024-01-02", "2024-01-05")
	records[1].HabitID = 2

	names := map[uint]string{1: "Read", 2: "Run"}
	start := dayAt(t, "2024-01-01")
	end := dayAt(t, "2024-01-07")

	counts := DailyCounts(records, names, start, end)
	if len(counts) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(counts))
	}
	for i, dc := range counts {
		if !cal.SameDay(dc.Day, start.AddDate(0, 0, i)) {
			t.Fatalf("entry %d has day %v", i, dc.Day)
		}
	}
	if counts[0].Count != 0 || len(counts[0].Habits) != 0 {
		t.Fatalf("empty day should be zero-filled: %+v", counts[0])
	}
	if counts[1].Count != 2 {
		t.Fatalf("Jan 2 count = %d, want 2", counts[1].Count)
	}
	if len(counts[1].Habits) != 2 || counts[1].Habits[0] != "Read" || counts[1].Habits[1] != "Run" {
		t.Fatalf("Jan 2 habits = %v, want sorted [Read Run]", counts[1].Habits)
	}
	if counts[4].Count != 1 {
		t.Fatalf("Jan 5 count = %d, want 1", counts[4].Count)
	}
}

func TestDailyCountsSkipsPending(t *testing.T) {
	records := []model.CompletionRecord{
		{HabitID: 1, Day: dayAt(t, "2024-01-03"), Done: false},
	}
	counts := DailyCounts(records, map[uint]string{1: "Read"}, dayAt(t, "2024-01-01"), dayAt(t, "2024-01-07"))
	for _, dc := range counts {
		if dc.Count != 0 {
			t.Fatalf("pending record counted: %+v", dc)
		}
	}
}

func TestGoalProgressNotClamped(t *testing.T) {
	got, err := GoalProgress(2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 66.67 {
		t.Fatalf("GoalProgress(2,3) = %v, want 66.67", got)
	}

	got, err = GoalProgress(4, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 133.33 {
		t.Fatalf("GoalProgress(4,3) = %v, want 133.33", got)
	}
}

func TestGoalProgressRejectsNonPositiveGoal(t *testing.T) {
	if _, err := GoalProgress(2, 0); !errors.Is(err, model.ErrInvalidGoal) {
		t.Fatalf("expected ErrInvalidGoal, got %v", err)
	}
	if _, err := GoalProgress(2, -1); !errors.Is(err, model.ErrInvalidGoal) {
		t.Fatalf("expected ErrInvalidGoal, got %v", err)
	}
}

func TestConsistencyZeroDenominator(t *testing.T) {
	if got := Consistency(5, 0, 1); got != 0 {
		t.Fatalf("zero goals should give 0, got %v", got)
	}
	if got := Consistency(5, 3, 0); got != 0 {
		t.Fatalf("zero weeks should give 0, got %v", got)
	}
	if math.IsNaN(Consistency(0, 0, 0)) {
		t.Fatal("consistency must never be NaN")
	}
}

func TestConsistency(t *testing.T) {
	// 4 completions against a weekly expectation of 6 over one week.
	if got := Consistency(4, 6, 1); got != 66.67 {
		t.Fatalf("Consistency(4,6,1) = %v, want 66.67", got)
	}
	// Over-achievement passes 100.
	if got := Consistency(8, 6, 1); got != 133.33 {
		t.Fatalf("Consistency(8,6,1) = %v, want 133.33", got)
	}
}

func TestPeriodWindows(t *testing.T) {
	cal := testCalendar(t)
	// Wednesday June 5 2024, 12:00 Manila.
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, cal.Location())

	start, end, bounded, err := PeriodWeek.Window(now, cal)
	if err != nil || !bounded {
		t.Fatalf("weekly window: bounded=%v err=%v", bounded, err)
	}
	if !cal.SameDay(start, dayAt(t, "2024-06-02")) {
		t.Fatalf("week start = %v, want June 2 (Sunday)", start)
	}
	if !cal.SameDay(end, dayAt(t, "2024-06-09")) {
		t.Fatalf("week end (exclusive) = %v, want June 9", end)
	}
	if WeeksIn(start, end) != 1 {
		t.Fatalf("WeeksIn(week) = %v, want 1", WeeksIn(start, end))
	}

	start, end, bounded, err = PeriodMonth.Window(now, cal)
	if err != nil || !bounded {
		t.Fatalf("monthly window: bounded=%v err=%v", bounded, err)
	}
	if !cal.SameDay(start, dayAt(t, "2024-06-01")) || !cal.SameDay(end, dayAt(t, "2024-07-01")) {
		t.Fatalf("month window = [%v, %v)", start, end)
	}

	start, end, bounded, err = PeriodDay.Window(now, cal)
	if err != nil || !bounded {
		t.Fatalf("daily window: bounded=%v err=%v", bounded, err)
	}
	if !cal.SameDay(start, dayAt(t, "2024-06-05")) || end.Sub(start) != 24*time.Hour {
		t.Fatalf("day window = [%v, %v)", start, end)
	}

	if _, _, bounded, err = PeriodAllTime.Window(now, cal); err != nil || bounded {
		t.Fatalf("all-time window: bounded=%v err=%v", bounded, err)
	}
}

func TestParsePeriod(t *testing.T) {
	if _, err := ParsePeriod("fortnightly"); !errors.Is(err, model.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
	for _, raw := range []string{"daily", "weekly", "monthly", "all time"} {
		if _, err := ParsePeriod(raw); err != nil {
			t.Fatalf("ParsePeriod(%q): %v", raw, err)
		}
	}
}
