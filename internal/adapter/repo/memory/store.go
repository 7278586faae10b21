// Package memory provides repository implementations backed by process
// memory, used when no database DSN is configured and in tests. Writers rely
// on the TxManager holding the store lock.
package memory

import (
	"sync"

	"homestead/internal/app/ports"
	"homestead/internal/domain/sim"
)

type Store struct {
	mu        sync.RWMutex
	events    []sim.Event
	deltas    []ports.StateDelta
	snapshots []ports.SnapshotRecord
}

func NewStore() *Store {
	return &Store{}
}
