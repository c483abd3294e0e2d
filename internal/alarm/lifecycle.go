package alarm

import "time"

// State is the derived scheduling state of an alarm.
type State string

const (
	StateDisabled State = "disabled"
	StateArmed    State = "armed"
	StateSnoozed  State = "snoozed"
)

// Lifecycle exposes the toggle/fire/snooze state machine over one record.
// It mutates only the wrapped record; persistence is the caller's concern.
// Invalid transitions (fire or snooze on a disabled alarm) are no-ops.
type Lifecycle struct {
	rec *Alarm
}

func NewLifecycle(rec *Alarm) *Lifecycle {
	return &Lifecycle{rec: rec}
}

func (l *Lifecycle) Record() *Alarm {
	return l.rec
}

func (l *Lifecycle) State() State {
	switch {
	case !l.rec.Enabled:
		return StateDisabled
	case l.rec.SnoozedUntil != nil:
		return StateSnoozed
	default:
		return StateArmed
	}
}

// Toggle flips enabled. Turning off clears any pending snooze; turning on
// carries no memory of skipped occurrences, the next fire is recomputed from
// whatever reference the caller supplies afterwards.
func (l *Lifecycle) Toggle() bool {
	l.rec.Enabled = !l.rec.Enabled
	l.rec.SnoozedUntil = nil
	return l.rec.Enabled
}

// Fire records that an occurrence fired at the given instant. A disabled
// alarm cannot have fired, so the transition is ignored. For one-shot alarms
// the resolver returns nothing afterwards, though enabled stays true: the
// record still shows as "on" in a client until it is toggled or edited.
func (l *Lifecycle) Fire(now time.Time) bool {
	if !l.rec.Enabled {
		return false
	}
	at := now
	l.rec.LastFired = &at
	l.rec.SnoozedUntil = nil
	return true
}

// Snooze postpones the pending occurrence by the record's snooze window.
// The postponed instant overrides the regular cadence exactly once; after it
// fires (or is snoozed again) recurrence resumes relative to LastFired.
func (l *Lifecycle) Snooze(now time.Time) (time.Time, bool) {
	if !l.rec.Enabled {
		return time.Time{}, false
	}
	at := now
	until := now.Add(time.Duration(l.rec.SnoozeMinutes) * time.Minute)
	l.rec.LastFired = &at
	l.rec.SnoozedUntil = &until
	return until, true
}

// Replace swaps in the updated fields as if the alarm were newly created:
// validation runs first and the fire/snooze bookkeeping is reset.
func (l *Lifecycle) Replace(updated *Alarm) error {
	if err := updated.Validate(); err != nil {
		return err
	}

	updated.ID = l.rec.ID
	updated.OwnerID = l.rec.OwnerID
	updated.CreatedAt = l.rec.CreatedAt
	updated.LastFired = nil
	updated.SnoozedUntil = nil
	*l.rec = *updated

	return nil
}

// NextFire is the effective next fire instant for display and polling.
// A pending snooze wins over the resolver's regular-cadence answer.
func (l *Lifecycle) NextFire(reference time.Time) (time.Time, bool) {
	if !l.rec.Enabled {
		return time.Time{}, false
	}
	if l.rec.SnoozedUntil != nil {
		return *l.rec.SnoozedUntil, true
	}
	return NextFireInstant(l.rec, reference, l.rec.LastFired)
}
