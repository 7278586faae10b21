package ports

import (
	"context"

	"homestead/internal/domain/sim"
)

// PerceptionSink receives the events an actor could perceive on a turn,
// typically backed by a per-actor memory database.
type PerceptionSink interface {
	RecordPerceived(ctx context.Context, actorID string, events []sim.Event) error
}

// EventArchiver persists the raw event stream outside the primary store.
type EventArchiver interface {
	Archive(events []sim.Event) error
	Close() error
}
