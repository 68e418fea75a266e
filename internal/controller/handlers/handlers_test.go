package handlers

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/trainer_scheduler/internal/model"
	"github.com/Freeeeeet/trainer_scheduler/internal/service"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandArgs(t *testing.T) {
	assert.Equal(t, []string{"t1", "2026-10-19"}, commandArgs("/suggest@gym_bot  t1   2026-10-19"))
	assert.Empty(t, commandArgs("/mysessions"))
	assert.Nil(t, commandArgs("   "))
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{in: "0", want: time.Sunday},
		{in: "1", want: time.Monday},
		{in: "6", want: time.Saturday},
		{in: "7", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "Mon", want: time.Monday},
		{in: "wednesday", want: time.Wednesday},
		{in: "Пн", want: time.Monday},
		{in: "пятница", want: time.Friday},
		{in: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseShiftArgs(t *testing.T) {
	args, err := ParseShiftArgs([]string{"t1", "пн", "09:00", "12:00"})
	require.NoError(t, err)
	assert.Equal(t, ShiftArgs{
		TrainerID: "t1",
		Day:       time.Monday,
		Start:     model.MustTimeOfDay(9, 0),
		End:       model.MustTimeOfDay(12, 0),
	}, args)

	_, err = ParseShiftArgs([]string{"t1", "пн", "09:00"})
	assert.ErrorIs(t, err, errUsage)

	_, err = ParseShiftArgs([]string{"t1", "пн", "9am", "12:00"})
	assert.Error(t, err)
}

func TestParseSlotArgs(t *testing.T) {
	args, err := ParseSlotArgs([]string{"t1", "2026-10-19", "10:00", "60"}, true)
	require.NoError(t, err)
	assert.Equal(t, "t1", args.TrainerID)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), args.Date)
	assert.Equal(t, model.MustTimeOfDay(10, 0), args.Start)
	assert.Equal(t, 60, args.DurationMinutes)
	assert.Equal(t, DefaultSessionType, args.SessionType)

	args, err = ParseSlotArgs([]string{"t1", "2026-10-19", "10:00", "60", "yoga"}, true)
	require.NoError(t, err)
	assert.Equal(t, "yoga", args.SessionType)

	tests := []struct {
		name      string
		args      []string
		allowType bool
	}{
		{name: "type not allowed", args: []string{"t1", "2026-10-19", "10:00", "60", "yoga"}},
		{name: "too few", args: []string{"t1", "2026-10-19", "10:00"}, allowType: true},
		{name: "bad date", args: []string{"t1", "19.10.2026", "10:00", "60"}, allowType: true},
		{name: "bad time", args: []string{"t1", "2026-10-19", "25:00", "60"}, allowType: true},
		{name: "too short", args: []string{"t1", "2026-10-19", "10:00", "5"}, allowType: true},
		{name: "too long", args: []string{"t1", "2026-10-19", "10:00", "600"}, allowType: true},
		{name: "not a number", args: []string{"t1", "2026-10-19", "10:00", "hour"}, allowType: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSlotArgs(tt.args, tt.allowType)
			assert.Error(t, err)
		})
	}
}

func TestParseSuggestArgs(t *testing.T) {
	args, err := ParseSuggestArgs([]string{"t2", "2026-10-20", "90"})
	require.NoError(t, err)
	assert.Equal(t, "t2", args.TrainerID)
	assert.Equal(t, time.Tuesday, args.Date.Weekday())
	assert.Equal(t, 90, args.DurationMinutes)

	_, err = ParseSuggestArgs([]string{"t2", "2026-10-20"})
	assert.ErrorIs(t, err, errUsage)
}

func TestParseCancelArgs(t *testing.T) {
	args, err := ParseCancelArgs([]string{"s-1", "заболел", "простите"})
	require.NoError(t, err)
	assert.Equal(t, CancelArgs{SessionID: "s-1", Reason: "заболел простите"}, args)

	args, err = ParseCancelArgs([]string{"s-1"})
	require.NoError(t, err)
	assert.Empty(t, args.Reason)

	_, err = ParseCancelArgs(nil)
	assert.ErrorIs(t, err, errUsage)

	_, err = ParseCancelArgs([]string{"s-1", strings.Repeat("я", CancelReasonMaxLength+1)})
	assert.Error(t, err)
}

func TestMemberFrom(t *testing.T) {
	assert.Equal(t, Member{ID: "42", Name: "Olga Ivanova"},
		memberFrom(&models.User{ID: 42, FirstName: "Olga", LastName: "Ivanova"}))
	assert.Equal(t, Member{ID: "7", Name: "olga"},
		memberFrom(&models.User{ID: 7, Username: "olga"}))
}

func TestUserMessage(t *testing.T) {
	outside := &service.ConflictError{Reason: service.ConflictOutsideShift, TrainerID: "t1"}
	overlap := &service.ConflictError{Reason: service.ConflictOverlap, TrainerID: "t1", ConflictingSessionID: "s-1"}

	assert.Contains(t, UserMessage(outside), "не работает")
	assert.Contains(t, UserMessage(fmt.Errorf("book: %w", overlap)), "занято")
	assert.Contains(t, UserMessage(fmt.Errorf("x: %w", service.ErrTrainerNotFound)), "Тренер не найден")
	assert.Contains(t, UserMessage(service.ErrSessionNotFound), "Тренировка не найдена")
	assert.Contains(t, UserMessage(service.ErrAlreadyCancelled), "уже отменена")
	assert.Contains(t, UserMessage(service.ErrInvalidTimeRange), "интервал")
	assert.Contains(t, UserMessage(errors.New("connection refused")), "Попробуйте позже")

	assert.True(t, isUserError(overlap))
	assert.True(t, isUserError(fmt.Errorf("wrap: %w", service.ErrSlotNotFound)))
	assert.False(t, isUserError(errors.New("connection refused")))
}
