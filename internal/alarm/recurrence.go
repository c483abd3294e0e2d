package alarm

import "time"

// NextFireInstant computes the first instant at or after reference on which
// the alarm is due, or ok=false when the alarm is disabled or a one-shot that
// already fired. The caller supplies reference explicitly, so the computation
// is deterministic and safe to run concurrently.
//
// The scan walks forward day by day from reference's calendar day, bounded by
// the repeat pattern's period, checking day eligibility and, on the starting
// day only, that the alarm's time of day has not already passed (or already
// fired at that exact instant).
func NextFireInstant(a *Alarm, reference time.Time, lastFired *time.Time) (time.Time, bool) {
	if !a.Enabled {
		return time.Time{}, false
	}
	if a.RepeatType == RepeatOnce && lastFired != nil {
		return time.Time{}, false
	}

	hour, minute := a.Clock()
	loc := reference.Location()
	anchor := dateOf(a.CreatedAt.In(loc))
	if lastFired != nil {
		// Counting the interval cadence from the last fire keeps interval
		// alarms self-correcting after a missed or delayed occurrence.
		anchor = dateOf(lastFired.In(loc))
	}

	start := dateOf(reference)
	for i := 0; i <= scanBound(a); i++ {
		day := start.AddDate(0, 0, i)
		if !eligibleDay(a, day, anchor) {
			continue
		}

		candidate := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
		if i == 0 {
			if candidate.Before(reference) {
				continue
			}
			if lastFired != nil && sameDay(lastFired.In(loc), candidate) &&
				!candidate.After(*lastFired) {
				continue
			}
		}

		return candidate, true
	}

	return time.Time{}, false
}

// scanBound is the number of extra days past the starting day that can hold
// the next occurrence. Bounding the scan guarantees termination.
func scanBound(a *Alarm) int {
	switch a.RepeatType {
	case RepeatDaily, RepeatOnce:
		return 1
	case RepeatWeekdays, RepeatWeekends:
		return 7
	case RepeatCustom:
		return 8
	case RepeatInterval:
		return a.IntervalDays
	}
	return 0
}

func eligibleDay(a *Alarm, day, anchor time.Time) bool {
	switch a.RepeatType {
	case RepeatDaily, RepeatOnce:
		return true
	case RepeatWeekdays:
		wd := day.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case RepeatWeekends:
		wd := day.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case RepeatCustom:
		for _, wd := range a.Weekdays() {
			if day.Weekday() == wd {
				return true
			}
		}
		return false
	case RepeatInterval:
		return daysBetween(anchor, day)%a.IntervalDays == 0
	}
	return false
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// daysBetween counts calendar days from a to b, rounding through DST shifts.
func daysBetween(a, b time.Time) int {
	d := int(b.Sub(a).Hours()/24 + 0.5)
	if b.Before(a) {
		d = -int(a.Sub(b).Hours()/24 + 0.5)
	}
	return d
}
