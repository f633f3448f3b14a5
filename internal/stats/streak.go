// Package stats folds ordered completion events into streak and consistency
// metrics. Everything here is pure computation over in-memory slices; the
// store is never touched and failures from it are the caller's to propagate.
package stats

import (
	"sort"
	"time"

	"habit-tracker/internal/calendar"
	"habit-tracker/internal/model"
)

// StreakRun is one consecutive run of completed days. Valid is false when no
// run exists, in which case Start and End carry no meaning.
type StreakRun struct {
	Length int
	Start  time.Time
	End    time.Time
	Valid  bool
}

// StreakResult pairs the run ending today with the longest run anywhere in
// history. Best is never shorter than Current.
type StreakResult struct {
	Current StreakRun
	Best    StreakRun
}

// ComputeStreaks derives current and best streak from completion events. The
// same fold serves a single habit or a whole user's merged event set: days
// are deduplicated first, so several habits completed on one day count that
// day once.
//
// Current streak is the run of consecutive days ending on now's calendar day;
// if today has no completion it is zero. Best streak scans the whole history;
// ties keep the earliest run.
func ComputeStreaks(records []model.CompletionRecord, now time.Time, cal *calendar.Calendar) StreakResult {
	days := uniqueDoneDays(records)
	if len(days) == 0 {
		return StreakResult{}
	}

	current := currentRun(days, now, cal)
	best := bestRun(days)
	if current.Length > best.Length {
		best = current
	}
	return StreakResult{Current: current, Best: best}
}

// uniqueDoneDays collapses done records to one canonical day key apiece,
// sorted ascending. Duplicate rows for a day (legacy data) count once.
// Stored Day values are already day keys; they are re-normalized with
// calendar.Canonical, not DayOf, which would shift them in zones west of UTC.
func uniqueDoneDays(records []model.CompletionRecord) []time.Time {
	seen := make(map[time.Time]struct{}, len(records))
	for _, rec := range records {
		if !rec.Done {
			continue
		}
		seen[calendar.Canonical(rec.Day)] = struct{}{}
	}
	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func currentRun(days []time.Time, now time.Time, cal *calendar.Calendar) StreakRun {
	today := cal.DayOf(now)
	last := len(days) - 1
	if !days[last].Equal(today) {
		return StreakRun{}
	}

	run := StreakRun{Length: 1, Start: today, End: today, Valid: true}
	for i := last; i > 0; i-- {
		if days[i].Sub(days[i-1]) != 24*time.Hour {
			break
		}
		run.Length++
		run.Start = days[i-1]
	}
	return run
}

func bestRun(days []time.Time) StreakRun {
	best := StreakRun{}
	run := StreakRun{Length: 1, Start: days[0], End: days[0], Valid: true}

	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run.Length++
			run.End = days[i]
			continue
		}
		if run.Length > best.Length {
			best = run
		}
		run = StreakRun{Length: 1, Start: days[i], End: days[i], Valid: true}
	}
	if run.Length > best.Length {
		best = run
	}
	return best
}
