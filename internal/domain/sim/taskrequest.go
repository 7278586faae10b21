package sim

import (
	"fmt"
	"sort"

	"homestead/internal/domain/house"
)

// RequestableTools is the bounded catalog of chores one actor may ask
// another to perform through a task_request interaction.
var RequestableTools = map[string]bool{
	"clean_living_room": true,
	"wash_dishes":       true,
	"cook":              true,
	"move_to":           true,
}

// PendingTaskRequestIDsForTarget lists pending task requests directed at the
// actor, sorted for stable choices output.
func PendingTaskRequestIDsForTarget(state WorldState, actor string) []string {
	var out []string
	for id, in := range state.Interactions {
		if in.Kind == KindTaskRequest && in.Status == StatusPending && in.Target == actor {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// TaskRequest opens a pending task_request carrying the chore payload. It
// spends one unit of the requester's bounded request budget; unlike talk
// requests it does consume the requester's turn.
func TaskRequest(state WorldState, initiator, target, roomID, tool string, args map[string]any) (WorldState, ToolResult) {
	if initiator == target {
		return state, Fail("Denied: you cannot request a task from yourself.")
	}
	if !state.KnownActor(target) {
		return state, Fail(fmt.Sprintf("Unknown entity: %s", target))
	}
	if !RequestableTools[tool] {
		return state, Fail(fmt.Sprintf("Denied: tool not requestable: %s", tool))
	}
	if state.Counter(initiator, CounterRequestsLeft) <= 0 {
		return state, Fail("Denied: no requests left.")
	}

	if args == nil {
		args = map[string]any{}
	}
	next := state.WithCounter(initiator, CounterRequestsLeft, -1, 0)
	next, id := next.AllocateInteractionID()
	next = next.WithInteraction(Interaction{
		ID:          id,
		Kind:        KindTaskRequest,
		Initiator:   initiator,
		Target:      target,
		RoomID:      roomID,
		Status:      StatusPending,
		CreatedTurn: next.Turn,
		Task:        &TaskPayload{Tool: tool, Args: args},
	})
	next, ev := next.Emit(initiator, "task_request",
		map[string]any{"target": target, "tool": tool, "tool_args": args, "interaction_id": id}, true, "task requested")
	msg := fmt.Sprintf("OK: %s requested %s from %s. (requests left: %d)",
		initiator, tool, target, next.Counter(initiator, CounterRequestsLeft))
	return next, Success(msg, ev).WithData("interaction_id", id)
}

// TaskAccept fulfills a pending request: the acceptor is relocated to the
// room the chore implies (bypassing adjacency but still respecting locks),
// the chore runs synchronously, and the interaction closes. A locked
// destination converts the accept into a reject without charging the
// target's reject budget.
func TaskAccept(h house.House, state WorldState, target, interactionID string) (WorldState, ToolResult) {
	in, res := lookupTaskRequest(state, interactionID)
	if !res.OK {
		return state, res
	}
	if in.Status != StatusPending {
		return state, Fail(fmt.Sprintf("Invalid state: %s", in.Status))
	}
	if target != in.Target {
		return state, Fail(fmt.Sprintf("Denied: only %s can accept this task request.", in.Target))
	}
	if in.Task == nil {
		return state, Fail("Malformed task request: no payload.")
	}

	tool := in.Task.Tool
	toolArgs := in.Task.Args
	dest, res := resolveTaskDestination(h, tool, toolArgs)
	if !res.OK {
		return state, res
	}

	if dest != "" && !CanEnterRoom(state, dest) {
		next := declineTaskRequest(state, interactionID, target, "destination locked")
		next, ev := next.Emit(target, "task_reject",
			map[string]any{"interaction_id": interactionID, "reason": "destination locked"}, true,
			"rejected (destination locked)")
		return next, ToolResult{
			OK:          false,
			Message:     fmt.Sprintf("Cannot accept: destination locked (%s).", dest),
			Events:      []Event{ev},
			ConsumeTurn: true,
		}
	}

	next := state
	var events []Event
	if dest != "" && next.Locations[target] != dest {
		next = next.WithLocation(target, dest)
		var ev Event
		next, ev = next.Emit(target, "forced_move",
			map[string]any{"dst": dest, "reason": "task_accept"}, true, "moved for task")
		events = append(events, ev)
	}

	next, taskRes := runRequestedTask(next, target, tool, toolArgs, dest)
	if !taskRes.OK {
		// The chore itself refused (e.g. already done); surface that instead
		// of half-closing the interaction.
		return state, taskRes
	}
	events = append(events, taskRes.Events...)

	next = closeTaskRequest(next, interactionID, target, "accepted+done")
	next, ev := next.Emit(target, "task_fulfilled",
		map[string]any{"interaction_id": interactionID, "tool": tool, "tool_args": toolArgs}, true, "task fulfilled")
	events = append(events, ev)
	return next, ToolResult{
		OK:          true,
		Message:     fmt.Sprintf("Accepted and completed: %s.", tool),
		Events:      events,
		ConsumeTurn: true,
	}
}

// TaskReject declines a pending request at the cost of one reject.
func TaskReject(state WorldState, target, interactionID, reason string) (WorldState, ToolResult) {
	in, res := lookupTaskRequest(state, interactionID)
	if !res.OK {
		return state, res
	}
	if in.Status != StatusPending {
		return state, Fail(fmt.Sprintf("Invalid state: %s", in.Status))
	}
	if target != in.Target {
		return state, Fail(fmt.Sprintf("Denied: only %s can reject this task request.", in.Target))
	}
	if state.Counter(target, CounterRejectsLeft) <= 0 {
		return state, Fail("Denied: no rejects left.")
	}
	if reason == "" {
		reason = "rejected"
	}

	next := state.WithCounter(target, CounterRejectsLeft, -1, 0)
	next = declineTaskRequest(next, interactionID, target, reason)
	next, ev := next.Emit(target, "task_reject",
		map[string]any{"interaction_id": interactionID, "reason": reason}, true, "task rejected")
	msg := fmt.Sprintf("OK: %s rejected the task request. (rejects left: %d)",
		target, next.Counter(target, CounterRejectsLeft))
	return next, Success(msg, ev)
}

// AutoRejectPendingTaskRequests implements request decay: acting on anything
// other than a response implicitly rejects every request pending against the
// actor. Decay is free; it never charges the reject budget.
func AutoRejectPendingTaskRequests(state WorldState, target, reason string) (WorldState, []Event) {
	var events []Event
	for _, id := range PendingTaskRequestIDsForTarget(state, target) {
		state = declineTaskRequest(state, id, target, reason)
		var ev Event
		state, ev = state.Emit(target, "task_reject",
			map[string]any{"interaction_id": id, "reason": reason, "auto": true}, true,
			fmt.Sprintf("auto-rejected (%s)", reason))
		events = append(events, ev)
	}
	return state, events
}

// resolveTaskDestination maps a requested chore to the room it must run in.
// An empty room id means the chore has no positional requirement.
func resolveTaskDestination(h house.House, tool string, args map[string]any) (string, ToolResult) {
	switch tool {
	case "clean_living_room":
		return "living_room", ToolResult{OK: true}
	case "wash_dishes", "cook":
		return "kitchen", ToolResult{OK: true}
	case "move_to":
		dst, _ := args["dst"].(string)
		if dst == "" {
			return "", Fail("Malformed task request: move_to needs a dst.")
		}
		if !h.HasRoom(dst) {
			return "", Fail(fmt.Sprintf("Unknown room: %s", dst))
		}
		return dst, ToolResult{OK: true}
	default:
		return "", Fail(fmt.Sprintf("Denied: tool not requestable: %s", tool))
	}
}

func runRequestedTask(state WorldState, actor, tool string, args map[string]any, dest string) (WorldState, ToolResult) {
	switch tool {
	case "clean_living_room", "wash_dishes":
		return CompleteTask(state, actor, tool)
	case "cook":
		food, _ := args["food"].(string)
		return CompleteTask(state, actor, "cook:"+food)
	case "move_to":
		return state, Success(fmt.Sprintf("Moved to %s.", dest))
	default:
		return state, Fail(fmt.Sprintf("Denied: tool not requestable: %s", tool))
	}
}

func lookupTaskRequest(state WorldState, interactionID string) (Interaction, ToolResult) {
	in, ok := state.Interactions[interactionID]
	if !ok {
		return Interaction{}, Fail(fmt.Sprintf("Unknown interaction: %s", interactionID))
	}
	if in.Kind != KindTaskRequest {
		return Interaction{}, Fail("Not a task request interaction.")
	}
	return in, ToolResult{OK: true}
}

func declineTaskRequest(state WorldState, interactionID, endedBy, reason string) WorldState {
	in, ok := state.Interactions[interactionID]
	if !ok {
		return state
	}
	ended := state.Turn
	in.Status = StatusDeclined
	in.EndedBy = endedBy
	in.EndedReason = reason
	in.EndedTurn = &ended
	return state.WithInteraction(in)
}

func closeTaskRequest(state WorldState, interactionID, endedBy, reason string) WorldState {
	return closeInteraction(state, interactionID, endedBy, reason)
}
