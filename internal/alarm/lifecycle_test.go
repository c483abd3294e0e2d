package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLifecycle_State(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatDaily)
	lc := NewLifecycle(a)
	require.Equal(t, StateArmed, lc.State())

	now := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	_, ok := lc.Snooze(now)
	require.True(t, ok)
	require.Equal(t, StateSnoozed, lc.State())

	lc.Toggle()
	require.Equal(t, StateDisabled, lc.State())
}

func TestLifecycle_ToggleClearsSnooze(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatDaily)
	lc := NewLifecycle(a)

	now := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	_, ok := lc.Snooze(now)
	require.True(t, ok)
	require.NotNil(t, a.SnoozedUntil)

	enabled := lc.Toggle()
	require.False(t, enabled)
	require.Nil(t, a.SnoozedUntil)
}

func TestLifecycle_ToggleOffOnNeverReusesStaleInstant(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatDaily)
	lc := NewLifecycle(a)

	lc.Toggle() // off
	_, ok := lc.NextFire(time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC))
	require.False(t, ok)

	lc.Toggle() // back on
	ref := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	next, ok := lc.NextFire(ref)
	require.True(t, ok)
	require.False(t, next.Before(ref))
}

func TestLifecycle_FireOnDisabledIsNoOp(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatDaily)
	a.Enabled = false
	lc := NewLifecycle(a)

	now := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	require.False(t, lc.Fire(now))
	require.Nil(t, a.LastFired)

	_, ok := lc.Snooze(now)
	require.False(t, ok)
	require.Nil(t, a.SnoozedUntil)
}

func TestLifecycle_SnoozeOverridesCadence(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatDaily)
	a.SnoozeMinutes = 10
	lc := NewLifecycle(a)

	now := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	until, ok := lc.Snooze(now)
	require.True(t, ok)
	require.True(t, until.Equal(now.Add(10*time.Minute)))

	// The snoozed instant wins over the regular daily cadence.
	next, ok := lc.NextFire(now.Add(time.Minute))
	require.True(t, ok)
	require.True(t, next.Equal(until))
}

func TestLifecycle_CadenceResumesAfterSnoozedFire(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatDaily)
	lc := NewLifecycle(a)

	now := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	until, ok := lc.Snooze(now)
	require.True(t, ok)

	// The snoozed occurrence fires; normal recurrence resumes relative to
	// the snooze-adjusted last fire.
	require.True(t, lc.Fire(until))
	require.Nil(t, a.SnoozedUntil)

	next, ok := lc.NextFire(until.Add(time.Minute))
	require.True(t, ok)
	require.True(t, next.Equal(time.Date(2024, 6, 2, 7, 0, 0, 0, time.UTC)))
}

func TestLifecycle_SnoozeAgainPostponesAgain(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatDaily)
	lc := NewLifecycle(a)

	first := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	firstUntil, ok := lc.Snooze(first)
	require.True(t, ok)

	secondUntil, ok := lc.Snooze(firstUntil)
	require.True(t, ok)
	require.True(t, secondUntil.After(firstUntil))

	next, ok := lc.NextFire(firstUntil)
	require.True(t, ok)
	require.True(t, next.Equal(secondUntil))
}

func TestLifecycle_OnceStaysEnabledAfterFire(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatOnce)
	lc := NewLifecycle(a)

	now := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	require.True(t, lc.Fire(now))

	// Enabled stays true for display, but nothing is due anymore.
	require.True(t, a.Enabled)
	require.Equal(t, StateArmed, lc.State())
	_, ok := lc.NextFire(now.Add(time.Minute))
	require.False(t, ok)
}

func TestLifecycle_ReplaceValidatesAndResets(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatDaily)
	lc := NewLifecycle(a)

	now := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)
	_, ok := lc.Snooze(now)
	require.True(t, ok)

	bad := testAlarm(RepeatCustom)
	err := lc.Replace(bad)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "repeatDays", vErr.Field)
	// Failed replace leaves the record untouched.
	require.NotNil(t, a.SnoozedUntil)

	good := testAlarm(RepeatWeekends)
	good.Title = "Sleep in"
	require.NoError(t, lc.Replace(good))
	require.Equal(t, "Sleep in", a.Title)
	require.Equal(t, RepeatWeekends, a.RepeatType)
	require.Nil(t, a.LastFired)
	require.Nil(t, a.SnoozedUntil)
}
