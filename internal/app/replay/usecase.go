// Package replay reconstructs world state from the append-only event log.
// The log is the only durable evidence of engine behavior, so the fold here
// recovers exactly what events record: occupancy, locks, completed tasks and
// the turn counter.
package replay

import (
	"context"

	"homestead/internal/app/ports"
	"homestead/internal/domain/sim"
)

type Request struct {
	FromTurn int
	ToTurn   int
	Limit    int
}

type Response struct {
	Events     []sim.Event    `json:"events"`
	FinalState sim.WorldState `json:"final_state"`
}

type UseCase struct {
	Events  ports.EventRepository
	Initial func() sim.WorldState
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	events, err := u.Events.ListByTurnRange(ctx, req.FromTurn, req.ToTurn, req.Limit)
	if err != nil {
		return Response{}, err
	}
	initial := sim.MakeInitialState
	if u.Initial != nil {
		initial = u.Initial
	}
	return Response{Events: events, FinalState: Fold(initial(), events)}, nil
}

// Fold applies events oldest-first on top of the given base state.
func Fold(state sim.WorldState, events []sim.Event) sim.WorldState {
	for _, ev := range events {
		state = applyEvent(state, ev)
	}
	return state
}

func applyEvent(state sim.WorldState, ev sim.Event) sim.WorldState {
	if !ev.OK {
		return state
	}
	switch ev.Type {
	case "move", "forced_move":
		if dst, ok := ev.Args["dst"].(string); ok && dst != "" {
			state = state.WithLocation(ev.Actor, dst)
		}
	case "lock_room":
		if roomID, ok := ev.Args["room_id"].(string); ok {
			state = state.WithLock(roomID, true)
		}
	case "unlock_room":
		if roomID, ok := ev.Args["room_id"].(string); ok {
			state = state.WithLock(roomID, false)
		}
	case "task_completed":
		if taskID, ok := ev.Args["task_id"].(string); ok {
			state = state.WithTaskDone(taskID)
		}
	}
	if ev.Turn > state.Turn {
		state.Turn = ev.Turn
	}
	return state
}
