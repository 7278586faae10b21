package memory

import (
	"context"

	"homestead/internal/domain/sim"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, events []sim.Event) error {
	r.store.events = append(r.store.events, events...)
	return nil
}

func (r EventRepo) ListByTurnRange(_ context.Context, fromTurn, toTurn, limit int) ([]sim.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []sim.Event
	for _, ev := range r.store.events {
		if ev.Turn < fromTurn {
			continue
		}
		if toTurn > 0 && ev.Turn > toTurn {
			continue
		}
		out = append(out, ev)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
