package memory

import (
	"context"

	"homestead/internal/app/ports"
)

type DeltaRepo struct {
	store *Store
}

func NewDeltaRepo(store *Store) DeltaRepo {
	return DeltaRepo{store: store}
}

func (r DeltaRepo) Append(_ context.Context, deltas []ports.StateDelta) error {
	r.store.deltas = append(r.store.deltas, deltas...)
	return nil
}
