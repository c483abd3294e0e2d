package db

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Raimguhinov/alarm-go/internal/alarm"
	"github.com/Raimguhinov/alarm-go/pkg/logger"
	"github.com/Raimguhinov/alarm-go/pkg/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const alarmTable = "alarm.alarms"

const alarmColumns = `id, owner_id, title, description, time_of_day, enabled,
	repeat_type, repeat_days, interval_days, snooze_minutes, sound, vibrate,
	gradual_volume, last_fired, snoozed_until, created_at, updated_at`

type repository struct {
	client *postgres.Postgres
	logger *logger.Logger
}

func NewRepository(client *postgres.Postgres, logger *logger.Logger) alarm.Repository {
	return &repository{
		client: client,
		logger: logger,
	}
}

// repeatDaysArg keeps the NOT NULL repeat_days column satisfied: a nil
// slice binds as SQL NULL, which bypasses the column default.
func repeatDaysArg(days []string) []string {
	if days == nil {
		return []string{}
	}
	return days
}

func (r *repository) createQuery(id uuid.UUID, a *alarm.Alarm) (string, []interface{}, error) {
	return r.client.Builder.
		Insert(alarmTable).
		Columns(
			"id", "owner_id", "title", "description", "time_of_day", "enabled",
			"repeat_type", "repeat_days", "interval_days", "snooze_minutes",
			"sound", "vibrate", "gradual_volume",
		).
		Values(
			pgUUID(id), a.OwnerID, a.Title, a.Description, a.Time, a.Enabled,
			string(a.RepeatType), repeatDaysArg(a.RepeatDays), a.IntervalDays,
			a.SnoozeMinutes, a.Sound, a.Vibrate, a.GradualVolume,
		).
		Suffix("RETURNING " + alarmColumns).
		ToSql()
}

func (r *repository) Create(ctx context.Context, a *alarm.Alarm) (*alarm.Alarm, error) {
	r.logger.Debug("postgres.Create")

	if err := a.Validate(); err != nil {
		return nil, err
	}

	sql, args, err := r.createQuery(uuid.New(), a)
	if err != nil {
		return nil, err
	}

	created, err := r.scanRow(r.client.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		err = r.client.ToPgErr(err)
		r.logger.Error("postgres.Create", logger.Err(err))
		return nil, err
	}
	return created, nil
}

func (r *repository) getQuery(id uuid.UUID) (string, []interface{}, error) {
	return r.client.Builder.
		Select(alarmColumns).
		From(alarmTable).
		Where(squirrel.Eq{"id": pgUUID(id)}).
		ToSql()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*alarm.Alarm, error) {
	r.logger.Debug("postgres.Get")

	sql, args, err := r.getQuery(id)
	if err != nil {
		return nil, err
	}

	found, err := r.scanRow(r.client.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, r.wrapErr("postgres.Get", err)
	}
	return found, nil
}

func (r *repository) listQuery(ownerID string) (string, []interface{}, error) {
	return r.client.Builder.
		Select(alarmColumns).
		From(alarmTable).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
}

func (r *repository) List(ctx context.Context, ownerID string) ([]alarm.Alarm, error) {
	r.logger.Debug("postgres.List")

	sql, args, err := r.listQuery(ownerID)
	if err != nil {
		return nil, err
	}

	rows, err := r.client.Pool.Query(ctx, sql, args...)
	if err != nil {
		err = r.client.ToPgErr(err)
		r.logger.Error("postgres.List", logger.Err(err))
		return nil, err
	}
	defer rows.Close()

	var alarms []alarm.Alarm
	for rows.Next() {
		a, err := r.scanRow(rows)
		if err != nil {
			err = r.client.ToPgErr(err)
			r.logger.Error("postgres.List", logger.Err(err))
			return nil, err
		}
		alarms = append(alarms, *a)
	}
	return alarms, rows.Err()
}

func (r *repository) replaceQuery(id uuid.UUID, a *alarm.Alarm) (string, []interface{}, error) {
	return r.client.Builder.
		Update(alarmTable).
		Set("title", a.Title).
		Set("description", a.Description).
		Set("time_of_day", a.Time).
		Set("enabled", a.Enabled).
		Set("repeat_type", string(a.RepeatType)).
		Set("repeat_days", repeatDaysArg(a.RepeatDays)).
		Set("interval_days", a.IntervalDays).
		Set("snooze_minutes", a.SnoozeMinutes).
		Set("sound", a.Sound).
		Set("vibrate", a.Vibrate).
		Set("gradual_volume", a.GradualVolume).
		Set("last_fired", nil).
		Set("snoozed_until", nil).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": pgUUID(id)}).
		Suffix("RETURNING " + alarmColumns).
		ToSql()
}

func (r *repository) Replace(ctx context.Context, id uuid.UUID, a *alarm.Alarm) (*alarm.Alarm, error) {
	r.logger.Debug("postgres.Replace")

	if err := a.Validate(); err != nil {
		return nil, err
	}

	sql, args, err := r.replaceQuery(id, a)
	if err != nil {
		return nil, err
	}

	updated, err := r.scanRow(r.client.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, r.wrapErr("postgres.Replace", err)
	}
	return updated, nil
}

func (r *repository) deleteQuery(id uuid.UUID) (string, []interface{}, error) {
	return r.client.Builder.
		Delete(alarmTable).
		Where(squirrel.Eq{"id": pgUUID(id)}).
		Suffix("RETURNING " + alarmColumns).
		ToSql()
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (*alarm.Alarm, error) {
	r.logger.Debug("postgres.Delete")

	sql, args, err := r.deleteQuery(id)
	if err != nil {
		return nil, err
	}

	deleted, err := r.scanRow(r.client.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, r.wrapErr("postgres.Delete", err)
	}
	return deleted, nil
}

// toggleQuery flips enabled in a single statement so concurrent toggles
// on the same id serialize at the row level.
func (r *repository) toggleQuery(id uuid.UUID) (string, []interface{}, error) {
	return r.client.Builder.
		Update(alarmTable).
		Set("enabled", squirrel.Expr("NOT enabled")).
		Set("snoozed_until", nil).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": pgUUID(id)}).
		Suffix("RETURNING " + alarmColumns).
		ToSql()
}

func (r *repository) Toggle(ctx context.Context, id uuid.UUID) (*alarm.Alarm, error) {
	r.logger.Debug("postgres.Toggle")

	sql, args, err := r.toggleQuery(id)
	if err != nil {
		return nil, err
	}

	toggled, err := r.scanRow(r.client.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, r.wrapErr("postgres.Toggle", err)
	}
	return toggled, nil
}

func (r *repository) markFiredQuery(id uuid.UUID, at time.Time) (string, []interface{}, error) {
	return r.client.Builder.
		Update(alarmTable).
		Set("last_fired", at).
		Set("snoozed_until", nil).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": pgUUID(id), "enabled": true}).
		Suffix("RETURNING " + alarmColumns).
		ToSql()
}

func (r *repository) MarkFired(ctx context.Context, id uuid.UUID, at time.Time) (*alarm.Alarm, error) {
	r.logger.Debug("postgres.MarkFired")

	sql, args, err := r.markFiredQuery(id, at)
	if err != nil {
		return nil, err
	}

	fired, err := r.scanRow(r.client.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Disabled alarms cannot fire; return the record unchanged.
			return r.Get(ctx, id)
		}
		err = r.client.ToPgErr(err)
		r.logger.Error("postgres.MarkFired", logger.Err(err))
		return nil, err
	}
	return fired, nil
}

// markSnoozedQuery derives snoozed_until from the row's own snooze window
// inside the statement, keeping concurrent snoozes atomic per record.
func (r *repository) markSnoozedQuery(id uuid.UUID, at time.Time) (string, []interface{}, error) {
	return r.client.Builder.
		Update(alarmTable).
		Set("last_fired", at).
		Set("snoozed_until", squirrel.Expr("?::timestamptz + make_interval(mins => snooze_minutes)", at)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": pgUUID(id), "enabled": true}).
		Suffix("RETURNING " + alarmColumns).
		ToSql()
}

func (r *repository) MarkSnoozed(ctx context.Context, id uuid.UUID, at time.Time) (*alarm.Alarm, error) {
	r.logger.Debug("postgres.MarkSnoozed")

	sql, args, err := r.markSnoozedQuery(id, at)
	if err != nil {
		return nil, err
	}

	snoozed, err := r.scanRow(r.client.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Disabled alarms cannot snooze; return the record unchanged.
			return r.Get(ctx, id)
		}
		err = r.client.ToPgErr(err)
		r.logger.Error("postgres.MarkSnoozed", logger.Err(err))
		return nil, err
	}
	return snoozed, nil
}

// wrapErr translates driver errors at the gateway boundary: pgx.ErrNoRows
// means the id matched nothing, which callers see as alarm.ErrNotFound.
func (r *repository) wrapErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return alarm.ErrNotFound
	}
	err = r.client.ToPgErr(err)
	r.logger.Error(op, logger.Err(err))
	return err
}

func (r *repository) scanRow(row pgx.Row) (*alarm.Alarm, error) {
	var rec alarmRow

	err := row.Scan(
		&rec.ID, &rec.OwnerID, &rec.Title, &rec.Description, &rec.Time,
		&rec.Enabled, &rec.RepeatType, &rec.RepeatDays, &rec.IntervalDays,
		&rec.SnoozeMinutes, &rec.Sound, &rec.Vibrate, &rec.GradualVolume,
		&rec.LastFired, &rec.SnoozedUntil, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return rec.toDomain(), nil
}
