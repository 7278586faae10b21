// Package session owns the live world: one mutable slot holding the current
// immutable snapshot, guarded by a mutex, plus the persistence fan-out that
// runs after every successful invocation.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"homestead/internal/app/perception"
	"homestead/internal/app/ports"
	"homestead/internal/app/toolbox"
	"homestead/internal/domain/house"
	"homestead/internal/domain/sim"
)

var ErrInvalidRequest = errors.New("invalid session request")

type UseCase struct {
	TxManager  ports.TxManager
	EventRepo  ports.EventRepository
	DeltaRepo  ports.StateDeltaRepository
	SnapRepo   ports.SnapshotRepository
	Perception ports.PerceptionSink
	Archive    ports.EventArchiver
	Metrics    ports.ToolMetrics
	Now        func() time.Time

	house   house.House
	toolbox *toolbox.Registry

	mu    sync.Mutex
	state sim.WorldState
}

// New seeds a session with the given house and initial state.
func New(uc UseCase, h house.House, tb *toolbox.Registry, initial sim.WorldState) *UseCase {
	uc.house = h
	uc.toolbox = tb
	uc.state = initial
	return &uc
}

// State returns the current snapshot. The returned value is safe to keep:
// all mutators copy.
func (u *UseCase) State() sim.WorldState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Observe renders one actor's view of the current world.
func (u *UseCase) Observe(actor string) (perception.View, error) {
	u.mu.Lock()
	state := u.state
	u.mu.Unlock()
	if !state.KnownActor(actor) {
		return perception.View{}, ErrInvalidRequest
	}
	return perception.Observe(u.toolbox, u.house, state, actor), nil
}

// Execute runs one tool invocation for the current actor and persists its
// outcome. The in-memory state is replaced only after persistence succeeds.
func (u *UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.ActorID == "" || req.Tool == "" {
		return Response{}, ErrInvalidRequest
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	before := u.state
	if !before.KnownActor(req.ActorID) {
		return Response{}, ErrInvalidRequest
	}
	if before.CurrentActor() != req.ActorID {
		res := sim.Fail(fmt.Sprintf("Denied: not your turn (current: %s).", before.CurrentActor()))
		u.record(req.Tool, res)
		return u.respond(before, req.ActorID, res), nil
	}

	ac := toolbox.ActionContext{House: u.house, State: before, Actor: req.ActorID}
	ac, res := u.toolbox.Invoke(req.Tool, ac, req.Args)
	after := ac.State

	if err := u.persist(ctx, before, after, res.Events); err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordFailure(req.Tool)
		}
		return Response{}, err
	}

	u.state = after
	u.record(req.Tool, res)
	return u.respond(after, req.ActorID, res), nil
}

func (u *UseCase) respond(state sim.WorldState, actor string, res sim.ToolResult) Response {
	return Response{
		Result:       res,
		Turn:         state.Turn,
		TurnIndex:    state.TurnIndex,
		CurrentActor: state.CurrentActor(),
		Events:       res.Events,
		VisibleTools: u.toolbox.Specs(toolbox.ActionContext{House: u.house, State: state, Actor: actor}),
	}
}

func (u *UseCase) persist(ctx context.Context, before, after sim.WorldState, events []sim.Event) error {
	if len(events) == 0 && before.Turn == after.Turn && before.TurnIndex == after.TurnIndex {
		return nil
	}
	run := func(fn func(context.Context) error) error {
		if u.TxManager == nil {
			return fn(ctx)
		}
		return u.TxManager.RunInTx(ctx, fn)
	}
	err := run(func(txCtx context.Context) error {
		if u.EventRepo != nil && len(events) > 0 {
			if err := u.EventRepo.Append(txCtx, events); err != nil {
				return err
			}
		}
		if u.DeltaRepo != nil {
			if deltas := deriveDeltas(before, after); len(deltas) > 0 {
				if err := u.DeltaRepo.Append(txCtx, deltas); err != nil {
					return err
				}
			}
		}
		if u.SnapRepo != nil {
			raw, err := json.Marshal(after)
			if err != nil {
				return err
			}
			now := time.Now
			if u.Now != nil {
				now = u.Now
			}
			return u.SnapRepo.Save(txCtx, ports.SnapshotRecord{
				Turn:      after.Turn,
				TurnIndex: after.TurnIndex,
				State:     raw,
				TakenAt:   now(),
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.fanOut(ctx, after, events)
	return nil
}

// fanOut feeds each actor the events it could perceive and archives the raw
// stream. Both sinks are best-effort: the transaction already committed.
func (u *UseCase) fanOut(ctx context.Context, state sim.WorldState, events []sim.Event) {
	if u.Perception != nil && len(events) > 0 {
		for _, actorID := range sortedStringKeys(state.Locations) {
			perceived := perceivedBy(state, actorID, events)
			if len(perceived) == 0 {
				continue
			}
			_ = u.Perception.RecordPerceived(ctx, actorID, perceived)
		}
	}
	if u.Archive != nil && len(events) > 0 {
		_ = u.Archive.Archive(events)
	}
}

// perceivedBy filters events to those an actor witnesses: its own actions
// plus anything done in the room it currently occupies.
func perceivedBy(state sim.WorldState, actorID string, events []sim.Event) []sim.Event {
	var out []sim.Event
	for _, ev := range events {
		if ev.Actor == actorID || state.Locations[ev.Actor] == state.Locations[actorID] {
			out = append(out, ev)
		}
	}
	return out
}

func (u *UseCase) record(tool string, res sim.ToolResult) {
	if u.Metrics == nil {
		return
	}
	if res.OK {
		u.Metrics.RecordSuccess(tool)
	} else {
		u.Metrics.RecordDenied(tool)
	}
}
