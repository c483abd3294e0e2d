// Package alarm holds the alarm domain model and its recurrence rules.
package alarm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RepeatType defines the recurrence cadence of an alarm.
type RepeatType string

const (
	RepeatOnce     RepeatType = "once"
	RepeatDaily    RepeatType = "daily"
	RepeatWeekdays RepeatType = "weekdays"
	RepeatWeekends RepeatType = "weekends"
	RepeatCustom   RepeatType = "custom"
	RepeatInterval RepeatType = "interval"
)

const (
	MinSnoozeMinutes = 1
	MaxSnoozeMinutes = 60
)

// timePattern matches 24-hour HH:MM wall-clock times without seconds.
var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// Alarm is the persisted alarm record. Time is a wall-clock time of day,
// interpreted in the owner's local time at evaluation time. LastFired and
// SnoozedUntil are bookkeeping fields maintained by the lifecycle transitions.
type Alarm struct {
	ID            uuid.UUID
	OwnerID       string
	Title         string
	Description   string
	Time          string
	Enabled       bool
	RepeatType    RepeatType
	RepeatDays    []string
	IntervalDays  int
	SnoozeMinutes int
	Sound         string
	Vibrate       bool
	GradualVolume bool
	LastFired     *time.Time
	SnoozedUntil  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ErrNotFound is returned when an alarm id does not exist.
var ErrNotFound = errors.New("alarm not found")

// ValidationError reports a rejected field. It never leaves a record
// partially written: validation runs before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// Validate checks the record invariants before create/replace.
func (a *Alarm) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return &ValidationError{Field: "title", Reason: "Alarm title is required"}
	}

	if !timePattern.MatchString(a.Time) {
		return &ValidationError{Field: "time", Reason: "Time must be in HH:MM format"}
	}

	switch a.RepeatType {
	case RepeatOnce, RepeatDaily, RepeatWeekdays, RepeatWeekends:
	case RepeatCustom:
		if len(a.RepeatDays) == 0 {
			return &ValidationError{
				Field:  "repeatDays",
				Reason: "custom repeat requires at least one weekday",
			}
		}
		seen := make(map[string]struct{}, len(a.RepeatDays))
		for _, day := range a.RepeatDays {
			if _, ok := weekdayNames[day]; !ok {
				return &ValidationError{
					Field:  "repeatDays",
					Reason: fmt.Sprintf("unknown weekday %q", day),
				}
			}
			if _, dup := seen[day]; dup {
				return &ValidationError{
					Field:  "repeatDays",
					Reason: fmt.Sprintf("duplicate weekday %q", day),
				}
			}
			seen[day] = struct{}{}
		}
	case RepeatInterval:
		if a.IntervalDays < 1 {
			return &ValidationError{Field: "intervalDays", Reason: "must be at least 1"}
		}
	default:
		return &ValidationError{
			Field:  "repeatType",
			Reason: fmt.Sprintf("unknown repeat type %q", a.RepeatType),
		}
	}

	if a.SnoozeMinutes < MinSnoozeMinutes || a.SnoozeMinutes > MaxSnoozeMinutes {
		return &ValidationError{
			Field: "snoozeMinutes",
			Reason: fmt.Sprintf(
				"must be between %d and %d", MinSnoozeMinutes, MaxSnoozeMinutes,
			),
		}
	}

	return nil
}

// Clock returns the alarm's time of day. Call Validate first: malformed
// values yield zero.
func (a *Alarm) Clock() (hour, minute int) {
	parts := strings.SplitN(a.Time, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute
}

// Weekdays maps RepeatDays to time.Weekday values, skipping unknown names.
func (a *Alarm) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, len(a.RepeatDays))
	for _, name := range a.RepeatDays {
		if wd, ok := weekdayNames[name]; ok {
			days = append(days, wd)
		}
	}
	return days
}
