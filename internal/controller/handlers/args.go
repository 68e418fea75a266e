package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/trainer_scheduler/internal/model"
)

var errUsage = errors.New("usage")

// ShiftArgs аргументы /addshift
type ShiftArgs struct {
	TrainerID string
	Day       time.Weekday
	Start     model.TimeOfDay
	End       model.TimeOfDay
}

// SlotArgs аргументы /free и /book
type SlotArgs struct {
	TrainerID       string
	Date            time.Time
	Start           model.TimeOfDay
	DurationMinutes int
	SessionType     string
}

// SuggestArgs аргументы /suggest
type SuggestArgs struct {
	TrainerID       string
	Date            time.Time
	DurationMinutes int
}

// CancelArgs аргументы /cancel
type CancelArgs struct {
	SessionID string
	Reason    string
}

// commandArgs разбивает текст команды и отбрасывает саму команду (вместе с @botname)
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday, "вс": time.Sunday, "воскресенье": time.Sunday,
	"mon": time.Monday, "monday": time.Monday, "пн": time.Monday, "понедельник": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday, "вт": time.Tuesday, "вторник": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday, "ср": time.Wednesday, "среда": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday, "чт": time.Thursday, "четверг": time.Thursday,
	"fri": time.Friday, "friday": time.Friday, "пт": time.Friday, "пятница": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday, "сб": time.Saturday, "суббота": time.Saturday,
}

// ParseWeekday принимает 0-6 (0 = воскресенье), английские и русские названия
func ParseWeekday(s string) (time.Weekday, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("weekday %d out of range 0-6", n)
		}
		return time.Weekday(n), nil
	}

	if day, ok := weekdayNames[strings.ToLower(s)]; ok {
		return day, nil
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

func parseDuration(s string) (int, error) {
	minutes, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if minutes < SessionMinDuration || minutes > SessionMaxDuration {
		return 0, fmt.Errorf("duration must be between %d and %d minutes", SessionMinDuration, SessionMaxDuration)
	}
	return minutes, nil
}

// ParseShiftArgs /addshift <trainer> <day> <HH:MM> <HH:MM>
func ParseShiftArgs(args []string) (ShiftArgs, error) {
	if len(args) != 4 {
		return ShiftArgs{}, errUsage
	}

	day, err := ParseWeekday(args[1])
	if err != nil {
		return ShiftArgs{}, err
	}
	start, err := model.ParseTimeOfDay(args[2])
	if err != nil {
		return ShiftArgs{}, err
	}
	end, err := model.ParseTimeOfDay(args[3])
	if err != nil {
		return ShiftArgs{}, err
	}

	return ShiftArgs{TrainerID: args[0], Day: day, Start: start, End: end}, nil
}

// ParseSlotArgs /free <trainer> <YYYY-MM-DD> <HH:MM> <minutes> и /book с необязательным типом
func ParseSlotArgs(args []string, allowType bool) (SlotArgs, error) {
	if len(args) < 4 || len(args) > 5 || (len(args) == 5 && !allowType) {
		return SlotArgs{}, errUsage
	}

	date, err := model.ParseDate(args[1])
	if err != nil {
		return SlotArgs{}, fmt.Errorf("invalid date %q", args[1])
	}
	start, err := model.ParseTimeOfDay(args[2])
	if err != nil {
		return SlotArgs{}, err
	}
	duration, err := parseDuration(args[3])
	if err != nil {
		return SlotArgs{}, err
	}

	sessionType := DefaultSessionType
	if len(args) == 5 {
		sessionType = args[4]
	}

	return SlotArgs{
		TrainerID:       args[0],
		Date:            date,
		Start:           start,
		DurationMinutes: duration,
		SessionType:     sessionType,
	}, nil
}

// ParseSuggestArgs /suggest <trainer> <YYYY-MM-DD> <minutes>
func ParseSuggestArgs(args []string) (SuggestArgs, error) {
	if len(args) != 3 {
		return SuggestArgs{}, errUsage
	}

	date, err := model.ParseDate(args[1])
	if err != nil {
		return SuggestArgs{}, fmt.Errorf("invalid date %q", args[1])
	}
	duration, err := parseDuration(args[2])
	if err != nil {
		return SuggestArgs{}, err
	}

	return SuggestArgs{TrainerID: args[0], Date: date, DurationMinutes: duration}, nil
}

// ParseCancelArgs /cancel <session_id> [причина]
func ParseCancelArgs(args []string) (CancelArgs, error) {
	if len(args) == 0 {
		return CancelArgs{}, errUsage
	}

	reason := strings.Join(args[1:], " ")
	if utf8.RuneCountInString(reason) > CancelReasonMaxLength {
		return CancelArgs{}, fmt.Errorf("reason longer than %d characters", CancelReasonMaxLength)
	}

	return CancelArgs{SessionID: args[0], Reason: reason}, nil
}
