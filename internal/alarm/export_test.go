package alarm

import (
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func encodeCalendar(t *testing.T, cal *ical.Calendar) string {
	t.Helper()

	var sb strings.Builder
	require.NoError(t, ical.NewEncoder(&sb).Encode(cal))
	return sb.String()
}

func TestExportCalendar(t *testing.T) {
	t.Parallel()

	reference := time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC)

	daily := *testAlarm(RepeatDaily)
	daily.ID = uuid.New()

	custom := *testAlarm(RepeatCustom)
	custom.ID = uuid.New()
	custom.Title = "Standup"
	custom.RepeatDays = []string{"Monday", "Wednesday"}

	interval := *testAlarm(RepeatInterval)
	interval.ID = uuid.New()
	interval.IntervalDays = 3

	out := encodeCalendar(t, ExportCalendar(
		[]Alarm{daily, custom, interval}, reference,
	))

	require.Contains(t, out, "BEGIN:VCALENDAR")
	require.Contains(t, out, "END:VCALENDAR")
	require.Equal(t, 3, strings.Count(out, "BEGIN:VEVENT"))

	require.Contains(t, out, "UID:"+daily.ID.String())
	require.Contains(t, out, "SUMMARY:Standup")
	require.Contains(t, out, "FREQ=DAILY")
	require.Contains(t, out, "BYDAY=MO,WE")
	require.Contains(t, out, "INTERVAL=3")
}

func TestExportCalendar_OnceHasNoRecurrenceRule(t *testing.T) {
	t.Parallel()

	once := *testAlarm(RepeatOnce)
	once.ID = uuid.New()

	out := encodeCalendar(t, ExportCalendar(
		[]Alarm{once}, time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC),
	))

	require.Contains(t, out, "BEGIN:VEVENT")
	require.NotContains(t, out, "RRULE")
	// DTSTART reflects the next occurrence: 07:00 on the reference day.
	require.Contains(t, out, "DTSTART:20240601T070000Z")
}

func TestExportCalendar_DisabledStillListed(t *testing.T) {
	t.Parallel()

	off := *testAlarm(RepeatDaily)
	off.ID = uuid.New()
	off.Enabled = false

	out := encodeCalendar(t, ExportCalendar(
		[]Alarm{off}, time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC),
	))

	require.Contains(t, out, "BEGIN:VEVENT")
	require.Contains(t, out, "UID:"+off.ID.String())
}
