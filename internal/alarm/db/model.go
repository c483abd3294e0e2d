package db

import (
	"github.com/Raimguhinov/alarm-go/internal/alarm"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type alarmRow struct {
	ID            pgtype.UUID
	OwnerID       pgtype.Text
	Title         pgtype.Text
	Description   pgtype.Text
	Time          pgtype.Text
	Enabled       pgtype.Bool
	RepeatType    pgtype.Text
	RepeatDays    []string
	IntervalDays  pgtype.Int4
	SnoozeMinutes pgtype.Int4
	Sound         pgtype.Text
	Vibrate       pgtype.Bool
	GradualVolume pgtype.Bool
	LastFired     pgtype.Timestamptz
	SnoozedUntil  pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func (r *alarmRow) toDomain() *alarm.Alarm {
	a := &alarm.Alarm{
		ID:            uuid.UUID(r.ID.Bytes),
		OwnerID:       r.OwnerID.String,
		Title:         r.Title.String,
		Description:   r.Description.String,
		Time:          r.Time.String,
		Enabled:       r.Enabled.Bool,
		RepeatType:    alarm.RepeatType(r.RepeatType.String),
		RepeatDays:    r.RepeatDays,
		IntervalDays:  int(r.IntervalDays.Int32),
		SnoozeMinutes: int(r.SnoozeMinutes.Int32),
		Sound:         r.Sound.String,
		Vibrate:       r.Vibrate.Bool,
		GradualVolume: r.GradualVolume.Bool,
		CreatedAt:     r.CreatedAt.Time,
		UpdatedAt:     r.UpdatedAt.Time,
	}

	if r.LastFired.Valid {
		t := r.LastFired.Time
		a.LastFired = &t
	}
	if r.SnoozedUntil.Valid {
		t := r.SnoozedUntil.Time
		a.SnoozedUntil = &t
	}

	return a
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
