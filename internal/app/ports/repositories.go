package ports

import (
	"context"
	"time"

	"homestead/internal/domain/sim"
)

// StateDelta is one key-level change derived from applying a tool result.
// Scope is "location", "lock", "counter", "flag", "task" or "turn"; Owner is
// the actor or room the key belongs to, empty for global scopes.
type StateDelta struct {
	Turn  int
	Scope string
	Owner string
	Key   string
	Op    string
	Value string
}

type SnapshotRecord struct {
	Turn      int
	TurnIndex int
	State     []byte
	TakenAt   time.Time
}

type EventRepository interface {
	Append(ctx context.Context, events []sim.Event) error
	ListByTurnRange(ctx context.Context, fromTurn, toTurn int, limit int) ([]sim.Event, error)
}

type StateDeltaRepository interface {
	Append(ctx context.Context, deltas []StateDelta) error
}

type SnapshotRepository interface {
	Save(ctx context.Context, snap SnapshotRecord) error
	Latest(ctx context.Context) (SnapshotRecord, error)
}
