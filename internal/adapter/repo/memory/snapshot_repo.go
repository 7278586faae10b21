package memory

import (
	"context"

	"homestead/internal/app/ports"
)

type SnapshotRepo struct {
	store *Store
}

func NewSnapshotRepo(store *Store) SnapshotRepo {
	return SnapshotRepo{store: store}
}

func (r SnapshotRepo) Save(_ context.Context, snap ports.SnapshotRecord) error {
	r.store.snapshots = append(r.store.snapshots, snap)
	return nil
}

func (r SnapshotRepo) Latest(context.Context) (ports.SnapshotRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if len(r.store.snapshots) == 0 {
		return ports.SnapshotRecord{}, ports.ErrNotFound
	}
	return r.store.snapshots[len(r.store.snapshots)-1], nil
}
