package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/trainer_scheduler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddShift_RequiresStartBeforeEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name       string
		start, end model.TimeOfDay
		wantErr    bool
	}{
		{name: "normal", start: hm(9, 0), end: hm(12, 0)},
		{name: "one minute", start: hm(9, 0), end: hm(9, 1)},
		{name: "until midnight", start: hm(20, 0), end: model.MinutesPerDay},
		{name: "equal", start: hm(9, 0), end: hm(9, 0), wantErr: true},
		{name: "reversed", start: hm(12, 0), end: hm(9, 0), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := f.svc.AddShift(ctx, "T2", time.Wednesday, tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeRange)
				assert.Empty(t, id)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, id)
		})
	}

	shifts, err := f.svc.ListShiftsForDay(ctx, "T2", time.Wednesday)
	require.NoError(t, err)
	assert.Len(t, shifts, 3)
}

func TestReplaceAndRemoveShift(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	shifts, err := f.svc.ListShifts(ctx, "T1")
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	shift := shifts[0]

	_, err = f.book(t, "T1", monday, hm(9, 0), 60)
	require.NoError(t, err)

	// смена переезжает на вторник, записанная тренировка остаётся
	shift.DayOfWeek = time.Tuesday
	require.NoError(t, f.svc.ReplaceShift(ctx, shift))

	ok, err := f.svc.IsSlotAvailable(ctx, "T1", tuesday, hm(10, 0), 60)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.IsSlotAvailable(ctx, "T1", monday, hm(10, 0), 60)
	require.NoError(t, err)
	assert.False(t, ok)

	sessions, err := f.svc.GetTrainerSessions(ctx, "T1", monday)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	shift.StartTime, shift.EndTime = shift.EndTime, shift.StartTime
	assert.ErrorIs(t, f.svc.ReplaceShift(ctx, shift), ErrInvalidTimeRange)

	require.NoError(t, f.svc.RemoveShift(ctx, shift.ID))
	require.NoError(t, f.svc.RemoveShift(ctx, shift.ID))

	_, err = f.svc.GetShift(ctx, shift.ID)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestSuggestStartTimes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// перекрывающаяся смена не даёт дублей
	_, err := f.svc.AddShift(ctx, "T1", time.Monday, hm(9, 0), hm(10, 0))
	require.NoError(t, err)

	_, err = f.book(t, "T1", monday, hm(10, 0), 60)
	require.NoError(t, err)

	starts, err := f.svc.SuggestStartTimes(ctx, "T1", monday, 60, 30)
	require.NoError(t, err)
	assert.Equal(t, []model.TimeOfDay{hm(9, 0), hm(11, 0)}, starts)

	for _, start := range starts {
		ok, err := f.svc.IsSlotAvailable(ctx, "T1", monday, start, 60)
		require.NoError(t, err)
		assert.True(t, ok, start.String())
	}

	none, err := f.svc.SuggestStartTimes(ctx, "T1", tuesday, 60, 30)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.svc.SuggestStartTimes(ctx, "T1", monday, 0, 30)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}
