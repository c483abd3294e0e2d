package alarm

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence gateway for alarm records. Implementations
// must validate invariants before writing and serialize concurrent updates to
// the same id; single-statement read-modify-writes satisfy that.
type Repository interface {
	Create(ctx context.Context, a *Alarm) (*Alarm, error)
	Get(ctx context.Context, id uuid.UUID) (*Alarm, error)
	List(ctx context.Context, ownerID string) ([]Alarm, error)
	Replace(ctx context.Context, id uuid.UUID, a *Alarm) (*Alarm, error)
	Delete(ctx context.Context, id uuid.UUID) (*Alarm, error)

	// Toggle flips enabled and clears any pending snooze atomically.
	Toggle(ctx context.Context, id uuid.UUID) (*Alarm, error)
	// MarkFired records a fired occurrence; a no-op on disabled alarms.
	MarkFired(ctx context.Context, id uuid.UUID, at time.Time) (*Alarm, error)
	// MarkSnoozed records a snooze at the given instant; the postponed
	// instant is derived from the record's own snooze window. A no-op on
	// disabled alarms.
	MarkSnoozed(ctx context.Context, id uuid.UUID, at time.Time) (*Alarm, error)
}
