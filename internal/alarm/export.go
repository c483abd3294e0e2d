package alarm

import (
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"
)

const (
	calendarProduct = "-//Raimguhinov//alarm-go//EN"
	calendarVersion = "2.0"
)

var rruleDay = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// ExportCalendar renders alarms as an iCalendar feed, one VEVENT per alarm
// with an RRULE derived from its repeat pattern. One-shot alarms carry no
// RRULE. The reference instant seeds each event's DTSTART.
func ExportCalendar(alarms []Alarm, reference time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, calendarVersion)
	cal.Props.SetText(ical.PropProductID, calendarProduct)

	cal.Children = make([]*ical.Component, 0, len(alarms))
	for i := range alarms {
		cal.Children = append(cal.Children, exportEvent(&alarms[i], reference))
	}

	return cal
}

func exportEvent(a *Alarm, reference time.Time) *ical.Component {
	event := ical.NewEvent()

	event.Props.SetText(ical.PropUID, a.ID.String())
	event.Props.SetText(ical.PropSummary, a.Title)
	if a.Description != "" {
		event.Props.SetText(ical.PropDescription, a.Description)
	}
	event.Props.SetDateTime(ical.PropDateTimeStamp, reference.UTC())

	start, ok := NewLifecycle(a).NextFire(reference)
	if !ok {
		// Disabled or exhausted alarms still export with their wall-clock
		// time so a client can show them; they just never recur.
		hour, minute := a.Clock()
		start = time.Date(
			reference.Year(), reference.Month(), reference.Day(),
			hour, minute, 0, 0, reference.Location(),
		)
	}
	event.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())

	if ro := recurrenceOption(a); ro != nil {
		ro.Dtstart = start.UTC()
		event.Props.SetRecurrenceRule(ro)
	}

	return event.Component
}

func recurrenceOption(a *Alarm) *rrule.ROption {
	switch a.RepeatType {
	case RepeatDaily:
		return &rrule.ROption{Freq: rrule.DAILY}
	case RepeatWeekdays:
		return &rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
		}
	case RepeatWeekends:
		return &rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{rrule.SA, rrule.SU},
		}
	case RepeatCustom:
		byDay := make([]rrule.Weekday, 0, len(a.RepeatDays))
		for _, wd := range a.Weekdays() {
			byDay = append(byDay, rruleDay[wd])
		}
		return &rrule.ROption{Freq: rrule.WEEKLY, Byweekday: byDay}
	case RepeatInterval:
		return &rrule.ROption{Freq: rrule.DAILY, Interval: a.IntervalDays}
	}
	return nil
}
