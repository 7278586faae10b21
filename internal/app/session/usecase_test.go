package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"homestead/internal/app/ports"
	"homestead/internal/app/toolbox"
	"homestead/internal/domain/house"
	"homestead/internal/domain/sim"
)

type passTx struct{}

func (passTx) RunInTx(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }

type stubEventRepo struct {
	events []sim.Event
	fail   error
}

func (s *stubEventRepo) Append(_ context.Context, events []sim.Event) error {
	if s.fail != nil {
		return s.fail
	}
	s.events = append(s.events, events...)
	return nil
}

func (s *stubEventRepo) ListByTurnRange(context.Context, int, int, int) ([]sim.Event, error) {
	return s.events, nil
}

type stubDeltaRepo struct {
	deltas []ports.StateDelta
}

func (s *stubDeltaRepo) Append(_ context.Context, deltas []ports.StateDelta) error {
	s.deltas = append(s.deltas, deltas...)
	return nil
}

type stubSnapRepo struct {
	saved []ports.SnapshotRecord
}

func (s *stubSnapRepo) Save(_ context.Context, snap ports.SnapshotRecord) error {
	s.saved = append(s.saved, snap)
	return nil
}

func (s *stubSnapRepo) Latest(context.Context) (ports.SnapshotRecord, error) {
	if len(s.saved) == 0 {
		return ports.SnapshotRecord{}, ports.ErrNotFound
	}
	return s.saved[len(s.saved)-1], nil
}

type stubSink struct {
	perceived map[string][]sim.Event
}

func (s *stubSink) RecordPerceived(_ context.Context, actorID string, events []sim.Event) error {
	if s.perceived == nil {
		s.perceived = map[string][]sim.Event{}
	}
	s.perceived[actorID] = append(s.perceived[actorID], events...)
	return nil
}

type stubMetrics struct {
	success, denied, failure int
}

func (m *stubMetrics) RecordSuccess(string) { m.success++ }
func (m *stubMetrics) RecordDenied(string)  { m.denied++ }
func (m *stubMetrics) RecordFailure(string) { m.failure++ }

func newSession(t *testing.T, uc UseCase) *UseCase {
	t.Helper()
	tb, err := toolbox.BuildToolbox()
	if err != nil {
		t.Fatalf("build toolbox: %v", err)
	}
	return New(uc, house.Default(), tb, sim.MakeInitialState())
}

func TestExecute_MovePersistsEventsDeltasAndSnapshot(t *testing.T) {
	eventRepo := &stubEventRepo{}
	deltaRepo := &stubDeltaRepo{}
	snapRepo := &stubSnapRepo{}
	metrics := &stubMetrics{}
	u := newSession(t, UseCase{
		TxManager: passTx{},
		EventRepo: eventRepo,
		DeltaRepo: deltaRepo,
		SnapRepo:  snapRepo,
		Metrics:   metrics,
		Now:       func() time.Time { return time.Unix(0, 0) },
	})

	resp, err := u.Execute(context.Background(), Request{
		ActorID: "kevin",
		Tool:    "move_to",
		Args:    map[string]any{"dst": "kitchen"},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !resp.Result.OK {
		t.Fatalf("move failed: %s", resp.Result.Message)
	}
	if resp.CurrentActor != "anna" {
		t.Fatalf("current actor = %s, want anna", resp.CurrentActor)
	}
	if len(eventRepo.events) != 1 || eventRepo.events[0].Type != "move" {
		t.Fatalf("unexpected persisted events: %v", eventRepo.events)
	}

	var scopes []string
	for _, d := range deltaRepo.deltas {
		scopes = append(scopes, d.Scope)
	}
	wantScopes := map[string]bool{"location": true, "turn": true}
	for _, s := range scopes {
		if !wantScopes[s] {
			t.Fatalf("unexpected delta scope %s in %v", s, scopes)
		}
	}
	if len(scopes) != 2 {
		t.Fatalf("deltas = %v, want location+turn", deltaRepo.deltas)
	}

	if len(snapRepo.saved) != 1 || snapRepo.saved[0].TurnIndex != 1 {
		t.Fatalf("snapshot not saved with the new cursor: %+v", snapRepo.saved)
	}
	if metrics.success != 1 {
		t.Fatalf("success metric = %d", metrics.success)
	}
	if u.State().Locations["kevin"] != "kitchen" {
		t.Fatalf("live state not replaced")
	}
}

func TestExecute_OutOfTurnDenied(t *testing.T) {
	eventRepo := &stubEventRepo{}
	metrics := &stubMetrics{}
	u := newSession(t, UseCase{TxManager: passTx{}, EventRepo: eventRepo, Metrics: metrics})

	resp, err := u.Execute(context.Background(), Request{ActorID: "anna", Tool: "skip"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.Result.OK {
		t.Fatalf("acting out of turn must be denied")
	}
	if len(eventRepo.events) != 0 {
		t.Fatalf("denied invoke must not persist events")
	}
	if metrics.denied != 1 {
		t.Fatalf("denied metric = %d", metrics.denied)
	}
	if u.State().TurnIndex != 0 {
		t.Fatalf("denied invoke must not advance the turn")
	}
}

func TestExecute_PersistFailureKeepsOldState(t *testing.T) {
	eventRepo := &stubEventRepo{fail: errors.New("db down")}
	metrics := &stubMetrics{}
	u := newSession(t, UseCase{TxManager: passTx{}, EventRepo: eventRepo, Metrics: metrics})

	_, err := u.Execute(context.Background(), Request{
		ActorID: "kevin",
		Tool:    "move_to",
		Args:    map[string]any{"dst": "kitchen"},
	})
	if err == nil {
		t.Fatalf("persist failure must surface")
	}
	if u.State().Locations["kevin"] != "living_room" {
		t.Fatalf("failed persist must not replace the live state")
	}
	if metrics.failure != 1 {
		t.Fatalf("failure metric = %d", metrics.failure)
	}
}

func TestExecute_FansOutPerceivedEvents(t *testing.T) {
	sink := &stubSink{}
	u := newSession(t, UseCase{TxManager: passTx{}, Perception: sink})

	resp, err := u.Execute(context.Background(), Request{
		ActorID: "kevin",
		Tool:    "move_to",
		Args:    map[string]any{"dst": "kitchen"},
	})
	if err != nil || !resp.Result.OK {
		t.Fatalf("move: %v %+v", err, resp.Result)
	}

	if len(sink.perceived["kevin"]) != 1 {
		t.Fatalf("kevin must perceive his own move")
	}
	// After the move kevin is in the kitchen and anna in the living room, so
	// anna does not witness it.
	if len(sink.perceived["anna"]) != 0 {
		t.Fatalf("anna should not perceive a move out of her room: %v", sink.perceived["anna"])
	}
}

func TestObserve_UnknownActor(t *testing.T) {
	u := newSession(t, UseCase{})
	if _, err := u.Observe("ghost"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("want ErrInvalidRequest, got %v", err)
	}
}
