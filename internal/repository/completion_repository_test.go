package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/model"
)

func newTestDB(t *testing.T) (*UserRepository, *HabitRepository, *CompletionRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := NewDB(dsn)
	require.NoError(t, err)
	return NewUserRepository(db), NewHabitRepository(db), NewCompletionRepository(db)
}

func seedHabit(t *testing.T, users *UserRepository, habits *HabitRepository) *model.Habit {
	t.Helper()
	ctx := context.Background()
	user := &model.User{Email: "ana@example.com", Name: "Ana"}
	require.NoError(t, users.Create(ctx, user))
	habit := &model.Habit{UserID: user.ID, Name: "Read", Goal: 3, Color: model.DefaultHabitColor}
	require.NoError(t, habits.Create(ctx, habit))
	return habit
}

func day(t *testing.T, d string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", d)
	require.NoError(t, err)
	return parsed
}

func TestUpsertDailyIsIdempotent(t *testing.T) {
	users, habits, completions := newTestDB(t)
	ctx := context.Background()
	habit := seedHabit(t, users, habits)

	d := day(t, "2024-06-04")
	now := d.Add(8 * time.Hour)

	first, err := completions.UpsertDaily(ctx, habit.ID, d, now)
	require.NoError(t, err)
	assert.False(t, first.Done)

	second, err := completions.UpsertDaily(ctx, habit.ID, d, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	count, err := completions.CountForDay(ctx, habit.ID, d)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUpsertDailyKeepsExistingState(t *testing.T) {
	users, habits, completions := newTestDB(t)
	ctx := context.Background()
	habit := seedHabit(t, users, habits)

	d := day(t, "2024-06-04")
	record, err := completions.UpsertDaily(ctx, habit.ID, d, d.Add(8*time.Hour))
	require.NoError(t, err)

	record.Done = true
	record.DateChanged = d.Add(9 * time.Hour)
	require.NoError(t, completions.Save(ctx, record))

	again, err := completions.UpsertDaily(ctx, habit.ID, d, d.Add(10*time.Hour))
	require.NoError(t, err)
	assert.True(t, again.Done, "upsert must not reset an existing record")
}

func TestFindOrderingAndFilters(t *testing.T) {
	users, habits, completions := newTestDB(t)
	ctx := context.Background()
	habit := seedHabit(t, users, habits)

	for _, spec := range []struct {
		day  string
		done bool
	}{
		{"2024-06-01", true},
		{"2024-06-02", false},
		{"2024-06-03", true},
		{"2024-06-04", true},
	} {
		d := day(t, spec.day)
		record, err := completions.UpsertDaily(ctx, habit.ID, d, d.Add(8*time.Hour))
		require.NoError(t, err)
		if spec.done {
			record.Done = true
			record.DateChanged = d.Add(9 * time.Hour)
			require.NoError(t, completions.Save(ctx, record))
		}
	}

	asc, err := completions.Find(ctx, []uint{habit.ID}, true, nil, Ascending)
	require.NoError(t, err)
	require.Len(t, asc, 3)
	assert.True(t, asc[0].Day.Before(asc[2].Day))

	desc, err := completions.Find(ctx, []uint{habit.ID}, true, nil, Descending)
	require.NoError(t, err)
	require.Len(t, desc, 3)
	assert.True(t, desc[0].Day.After(desc[2].Day))

	all, err := completions.Find(ctx, []uint{habit.ID}, false, nil, Ascending)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestFindWindowIsHalfOpen(t *testing.T) {
	users, habits, completions := newTestDB(t)
	ctx := context.Background()
	habit := seedHabit(t, users, habits)

	for _, d := range []string{"2024-06-01", "2024-06-02", "2024-06-03"} {
		parsed := day(t, d)
		record, err := completions.UpsertDaily(ctx, habit.ID, parsed, parsed.Add(8*time.Hour))
		require.NoError(t, err)
		record.Done = true
		record.DateChanged = parsed.Add(9 * time.Hour)
		require.NoError(t, completions.Save(ctx, record))
	}

	window := &Window{Start: day(t, "2024-06-01"), End: day(t, "2024-06-03")}
	got, err := completions.Find(ctx, []uint{habit.ID}, true, window, Ascending)
	require.NoError(t, err)
	require.Len(t, got, 2, "end of window is exclusive")
	assert.True(t, got[1].Day.Before(day(t, "2024-06-03")))
}

func TestFindRejectsInvertedWindow(t *testing.T) {
	users, habits, completions := newTestDB(t)
	habit := seedHabit(t, users, habits)

	window := &Window{Start: day(t, "2024-06-03"), End: day(t, "2024-06-01")}
	_, err := completions.Find(context.Background(), []uint{habit.ID}, true, window, Ascending)
	assert.True(t, errors.Is(err, model.ErrInvalidWindow))
}

func TestFindEmptyHabitSet(t *testing.T) {
	_, _, completions := newTestDB(t)
	got, err := completions.Find(context.Background(), nil, true, nil, Ascending)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHabitSoftDeleteHidesFromLists(t *testing.T) {
	users, habits, _ := newTestDB(t)
	ctx := context.Background()
	habit := seedHabit(t, users, habits)

	require.NoError(t, habits.SoftDelete(ctx, habit.UserID, habit.ID))

	_, err := habits.FindByID(ctx, habit.UserID, habit.ID)
	assert.True(t, errors.Is(err, model.ErrHabitNotFound))

	listed, err := habits.ListByUser(ctx, habit.UserID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestUserDeleteCascades(t *testing.T) {
	users, habits, completions := newTestDB(t)
	ctx := context.Background()
	habit := seedHabit(t, users, habits)

	d := day(t, "2024-06-04")
	_, err := completions.UpsertDaily(ctx, habit.ID, d, d.Add(8*time.Hour))
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, habit.UserID))

	count, err := completions.CountForDay(ctx, habit.ID, d)
	require.NoError(t, err)
	assert.Zero(t, count)
}
