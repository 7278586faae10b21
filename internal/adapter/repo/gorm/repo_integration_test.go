package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"homestead/internal/app/ports"
	"homestead/internal/domain/sim"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("HOMESTEAD_DB_DSN")
	if dsn == "" {
		t.Skip("HOMESTEAD_DB_DSN is required for integration test")
	}
	return dsn
}

func TestEventRepo_AppendAndListByTurnRange(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx := context.Background()
	_ = db.Exec("DELETE FROM sim_events").Error

	repo := NewEventRepo(db)
	events := []sim.Event{
		sim.NewEvent(0, "kevin", "move", map[string]any{"src": "living_room", "dst": "kitchen"}, true, "moved"),
		sim.NewEvent(1, "anna", "skip", nil, true, "skipped turn"),
		sim.NewEvent(2, "kevin", "end_turn", nil, true, "ended turn"),
	}
	if err := repo.Append(ctx, events); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.ListByTurnRange(ctx, 0, 1, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("windowed events = %d, want 2", len(got))
	}
	if got[0].Type != "move" || got[0].Args["dst"] != "kitchen" {
		t.Fatalf("first event round trip broken: %+v", got[0])
	}
}

func TestSnapshotRepo_LatestWins(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx := context.Background()
	_ = db.Exec("DELETE FROM world_snapshots").Error

	repo := NewSnapshotRepo(db)
	if _, err := repo.Latest(ctx); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("empty table must yield ErrNotFound, got %v", err)
	}
	for turn := 0; turn < 3; turn++ {
		err := repo.Save(ctx, ports.SnapshotRecord{
			Turn:    turn,
			State:   []byte(fmt.Sprintf(`{"Turn":%d}`, turn)),
			TakenAt: time.Now(),
		})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Turn != 2 {
		t.Fatalf("latest turn = %d, want 2", latest.Turn)
	}
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx := context.Background()
	_ = db.Exec("DELETE FROM state_deltas").Error

	tm := NewTxManager(db)
	deltaRepo := NewDeltaRepo(db)
	boom := errors.New("boom")
	err = tm.RunInTx(ctx, func(txCtx context.Context) error {
		if err := deltaRepo.Append(txCtx, []ports.StateDelta{{Turn: 0, Scope: "turn", Key: "cursor", Op: "set", Value: "0/1"}}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	var count int64
	if err := db.Table("state_deltas").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("rolled back tx must leave no rows, got %d", count)
	}
}
