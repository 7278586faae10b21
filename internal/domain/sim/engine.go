package sim

import (
	"fmt"
	"sort"

	"homestead/internal/domain/house"
)

// EntitiesInRoom lists the actors currently in the room, sorted for stable
// perception output.
func EntitiesInRoom(state WorldState, roomID string) []string {
	out := make([]string, 0, 2)
	for id, loc := range state.Locations {
		if loc == roomID {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Locks block entry only. An actor inside a locked room can always leave;
// that asymmetry is deliberate, not a missing check.
func CanEnterRoom(state WorldState, roomID string) bool {
	return !state.IsLocked(roomID)
}

func CanExitRoom(WorldState, string) bool {
	return true
}

// RoomOwner resolves which actor, if any, owns the room.
func RoomOwner(state WorldState, roomID string) (string, bool) {
	for id, actor := range state.Actors {
		if actor.Owns(roomID) {
			return id, true
		}
	}
	return "", false
}

// CanToggleLock gates both lock and unlock: only the registered owner may
// toggle, and only while inside the room or directly adjacent to it.
func CanToggleLock(h house.House, state WorldState, who, roomID string) (bool, string) {
	if !h.HasRoom(roomID) {
		return false, fmt.Sprintf("Unknown room: %s", roomID)
	}
	owner, ok := RoomOwner(state, roomID)
	if !ok {
		return false, fmt.Sprintf("Room has no owner: %s", roomID)
	}
	if who != owner {
		return false, fmt.Sprintf("Denied: only %s can lock/unlock %s", owner, roomID)
	}
	loc, ok := state.Locations[who]
	if !ok {
		return false, fmt.Sprintf("Unknown entity: %s", who)
	}
	if loc == roomID || h.Adjacent(loc, roomID) {
		return true, "OK"
	}
	return false, fmt.Sprintf("Denied: %s must be in %s or adjacent to it to lock/unlock", who, roomID)
}

// AdvanceTurn rotates the sub-turn pointer. The round counter increments only
// when the pointer wraps, i.e. exactly once per full cycle through the order.
// With an empty order every call increments the round (single-actor fallback).
// The incoming actor's per-turn flags are reset here, at the turn boundary.
func AdvanceTurn(state WorldState) WorldState {
	if len(state.TurnOrder) == 0 {
		state.Turn++
		return state
	}
	next := state.TurnIndex + 1
	if next >= len(state.TurnOrder) {
		next = 0
		state.Turn++
	}
	state.TurnIndex = next
	return state.WithFlag(state.TurnOrder[next], FlagCookedThisTurn, false)
}

// ApplyMove computes the room transition for who -> dst. Turn advancement is
// the dispatch pipeline's job, not this function's.
func ApplyMove(h house.House, state WorldState, who, dst string) (WorldState, ToolResult) {
	src, ok := state.Locations[who]
	if !ok {
		return state, Fail(fmt.Sprintf("Unknown entity: %s", who))
	}
	if !h.HasRoom(dst) {
		return state, Fail(fmt.Sprintf("Unknown room: %s", dst))
	}
	if dst == src {
		return state, Fail(fmt.Sprintf("Invalid move: %s -> %s is not allowed.", src, dst))
	}
	if !h.Adjacent(src, dst) {
		return state, Fail(fmt.Sprintf("Blocked: %s -> %s", src, dst))
	}
	if !CanEnterRoom(state, dst) {
		return state, Fail(fmt.Sprintf("Locked: cannot enter %s", dst))
	}

	next := state.WithLocation(who, dst)
	next, ev := next.Emit(who, "move", map[string]any{"src": src, "dst": dst}, true, fmt.Sprintf("moved %s -> %s", src, dst))
	return next, Success(fmt.Sprintf("OK: %s moved to %s.", who, dst), ev)
}

// LockRoom locks an owned, currently unlocked room.
func LockRoom(h house.House, state WorldState, who, roomID string) (WorldState, ToolResult) {
	return toggleLock(h, state, who, roomID, true)
}

// UnlockRoom unlocks an owned, currently locked room.
func UnlockRoom(h house.House, state WorldState, who, roomID string) (WorldState, ToolResult) {
	return toggleLock(h, state, who, roomID, false)
}

func toggleLock(h house.House, state WorldState, who, roomID string, lock bool) (WorldState, ToolResult) {
	if !state.Lockable(roomID) {
		return state, Fail(fmt.Sprintf("No lock state for room: %s", roomID))
	}
	if ok, msg := CanToggleLock(h, state, who, roomID); !ok {
		return state, Fail(msg)
	}
	if state.IsLocked(roomID) == lock {
		if lock {
			return state, Fail(fmt.Sprintf("Already locked: %s", roomID))
		}
		return state, Fail(fmt.Sprintf("Already unlocked: %s", roomID))
	}

	verb := "unlock_room"
	past := "unlocked"
	if lock {
		verb = "lock_room"
		past = "locked"
	}
	next := state.WithLock(roomID, lock)
	next, ev := next.Emit(who, verb, map[string]any{"room_id": roomID}, true, fmt.Sprintf("%s %s", past, roomID))
	return next, Success(fmt.Sprintf("OK: %s %s %s.", who, past, roomID), ev)
}

// EndTurn is the explicit "I'm done" action. It advances the rotation itself
// and opts out of the pipeline's automatic advancement.
func EndTurn(state WorldState, who string) (WorldState, ToolResult) {
	next, ev := state.Emit(who, "end_turn", nil, true, "ended turn")
	next = AdvanceTurn(next)
	return next, Success(fmt.Sprintf("Turn advanced to %d.", next.Turn), ev).KeepTurn()
}

// SkipTurn is behaviorally identical to EndTurn but logged as a distinct
// event type so the record shows intent.
func SkipTurn(state WorldState, who string) (WorldState, ToolResult) {
	next, ev := state.Emit(who, "skip", nil, true, "skipped turn")
	next = AdvanceTurn(next)
	return next, Success(fmt.Sprintf("Turn advanced to %d.", next.Turn), ev).KeepTurn()
}
