package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 2024-06-01 is a Saturday.
var testCreatedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testAlarm(repeat RepeatType) *Alarm {
	return &Alarm{
		Title:         "Wake up",
		Time:          "07:00",
		Enabled:       true,
		RepeatType:    repeat,
		IntervalDays:  1,
		SnoozeMinutes: 5,
		CreatedAt:     testCreatedAt,
	}
}

func TestNextFireInstant_Disabled(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatDaily)
	a.Enabled = false

	_, ok := NextFireInstant(a, testCreatedAt, nil)
	require.False(t, ok)
}

func TestNextFireInstant_DailyWithin24Hours(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatDaily)

	refs := []time.Time{
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 6, 59, 59, 0, time.UTC),
		time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 7, 0, 1, 0, time.UTC),
		time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC),
	}

	for _, ref := range refs {
		next, ok := NextFireInstant(a, ref, nil)
		require.True(t, ok, "reference %s", ref)
		require.False(t, next.Before(ref))
		require.LessOrEqual(t, next.Sub(ref), 24*time.Hour)
		require.Equal(t, 7, next.Hour())
		require.Equal(t, 0, next.Minute())
	}
}

func TestNextFireInstant_ExactReferenceInstant(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatDaily)
	ref := time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)

	// Not fired yet: the reference instant itself is due.
	next, ok := NextFireInstant(a, ref, nil)
	require.True(t, ok)
	require.True(t, next.Equal(ref))

	// Already fired at that instant: move to the next day.
	next, ok = NextFireInstant(a, ref, &ref)
	require.True(t, ok)
	require.True(t, next.Equal(ref.AddDate(0, 0, 1)))
}

func TestNextFireInstant_OnceFiresExactlyOnce(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatOnce)
	ref := time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC)

	next, ok := NextFireInstant(a, ref, nil)
	require.True(t, ok)
	require.True(t, next.Equal(time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)))

	fired := next
	_, ok = NextFireInstant(a, next.Add(time.Hour), &fired)
	require.False(t, ok)

	_, ok = NextFireInstant(a, next.AddDate(0, 0, 3), &fired)
	require.False(t, ok)
}

func TestNextFireInstant_WeekdaySets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		repeat  RepeatType
		allowed map[time.Weekday]bool
	}{
		{
			name:   "weekdays",
			repeat: RepeatWeekdays,
			allowed: map[time.Weekday]bool{
				time.Monday: true, time.Tuesday: true, time.Wednesday: true,
				time.Thursday: true, time.Friday: true,
			},
		},
		{
			name:   "weekends",
			repeat: RepeatWeekends,
			allowed: map[time.Weekday]bool{
				time.Saturday: true, time.Sunday: true,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := testAlarm(tt.repeat)

			// Walk a full week of reference days.
			for day := 0; day < 7; day++ {
				ref := time.Date(2024, 6, 1+day, 10, 0, 0, 0, time.UTC)
				next, ok := NextFireInstant(a, ref, nil)
				require.True(t, ok)
				require.True(t, tt.allowed[next.Weekday()],
					"resolved %s from reference %s", next.Weekday(), ref.Weekday())
			}
		})
	}
}

func TestNextFireInstant_CustomDays(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatCustom)
	a.Time = "09:00"
	a.RepeatDays = []string{"Monday", "Wednesday"}

	// 2024-06-04 is a Tuesday; next eligible day is Wednesday the 5th.
	ref := time.Date(2024, 6, 4, 10, 0, 0, 0, time.UTC)

	next, ok := NextFireInstant(a, ref, nil)
	require.True(t, ok)
	require.True(t, next.Equal(time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)))
	require.Equal(t, time.Wednesday, next.Weekday())
}

func TestNextFireInstant_IntervalAnchoredOnCreation(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatInterval)
	a.IntervalDays = 2

	// Day 0, before the alarm time: fires the same day.
	ref := time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC)
	next, ok := NextFireInstant(a, ref, nil)
	require.True(t, ok)
	require.True(t, next.Equal(time.Date(2024, 6, 1, 7, 0, 0, 0, time.UTC)))

	// After firing on day 0, day 1 is skipped and day 2 is due.
	fired := next
	ref = time.Date(2024, 6, 2, 6, 0, 0, 0, time.UTC)
	next, ok = NextFireInstant(a, ref, &fired)
	require.True(t, ok)
	require.True(t, next.Equal(time.Date(2024, 6, 3, 7, 0, 0, 0, time.UTC)))
}

func TestNextFireInstant_IntervalSelfCorrectsAfterLateFire(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatInterval)
	a.IntervalDays = 3

	// The occurrence due on day 0 actually fired on day 1 (missed, caught up
	// late). The cadence re-anchors on the fire day instead of drifting.
	fired := time.Date(2024, 6, 2, 9, 30, 0, 0, time.UTC)
	ref := fired.Add(time.Hour)

	next, ok := NextFireInstant(a, ref, &fired)
	require.True(t, ok)
	require.True(t, next.Equal(time.Date(2024, 6, 5, 7, 0, 0, 0, time.UTC)))
}

func TestNextFireInstant_Pure(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatCustom)
	a.RepeatDays = []string{"Friday"}
	ref := time.Date(2024, 6, 3, 15, 4, 5, 0, time.UTC)
	fired := time.Date(2024, 5, 31, 7, 0, 0, 0, time.UTC)

	first, ok1 := NextFireInstant(a, ref, &fired)
	second, ok2 := NextFireInstant(a, ref, &fired)

	require.Equal(t, ok1, ok2)
	require.True(t, first.Equal(second))
}

func TestNextFireInstant_HonorsReferenceLocation(t *testing.T) {
	t.Parallel()

	a := testAlarm(RepeatDaily)
	loc := time.FixedZone("UTC+5", 5*60*60)
	ref := time.Date(2024, 6, 1, 6, 0, 0, 0, loc)

	next, ok := NextFireInstant(a, ref, nil)
	require.True(t, ok)
	require.Equal(t, loc, next.Location())
	require.Equal(t, 7, next.Hour())
}
