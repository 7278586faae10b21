package sim

import (
	"fmt"
	"sort"
)

// DefaultMaxExchanges bounds a conversation to three back-and-forths, six
// utterances total.
const DefaultMaxExchanges = 3

// ActiveTalkID returns the active talk the actor participates in, if any.
// Talk exclusivity guarantees at most one exists.
func ActiveTalkID(state WorldState, actor string) (string, bool) {
	for id, in := range state.Interactions {
		if in.Kind == KindTalk && in.Status == StatusActive && in.Participant(actor) {
			return id, true
		}
	}
	return "", false
}

// PendingTalkIDsForTarget lists pending talk requests directed at the actor,
// sorted for stable choices output.
func PendingTalkIDsForTarget(state WorldState, actor string) []string {
	var out []string
	for id, in := range state.Interactions {
		if in.Kind == KindTalk && in.Status == StatusPending && in.Target == actor {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// TalkRequest opens a pending talk interaction between two co-located actors.
func TalkRequest(state WorldState, initiator, target, roomID string) (WorldState, ToolResult) {
	if initiator == target {
		return state, Fail("Denied: you cannot request to talk with yourself.")
	}
	if state.Locations[initiator] != roomID || state.Locations[target] != roomID {
		return state, Fail("Talk request requires both actors to be in the same room.")
	}
	for _, in := range state.Interactions {
		if in.Kind != KindTalk {
			continue
		}
		if in.Status == StatusActive && (in.Participant(initiator) || in.Participant(target)) {
			return state, Fail("Denied: someone is already in an active conversation.")
		}
		if in.Status == StatusPending && in.Initiator == initiator && in.Target == target {
			return state, Fail(fmt.Sprintf("Denied: you already have a pending talk request to %s.", target))
		}
	}

	next, id := state.AllocateInteractionID()
	next = next.WithInteraction(Interaction{
		ID:           id,
		Kind:         KindTalk,
		Initiator:    initiator,
		Target:       target,
		RoomID:       roomID,
		Status:       StatusPending,
		CreatedTurn:  next.Turn,
		MaxExchanges: next.talkMaxExchanges(),
	})
	next, ev := next.Emit(initiator, "talk_request",
		map[string]any{"target": target, "room_id": roomID, "interaction_id": id}, true, "talk requested")
	return next, Success(fmt.Sprintf("OK: %s requested to talk with %s.", initiator, target), ev).WithData("interaction_id", id)
}

// TalkAccept moves a pending talk to active. Only the target may accept, and
// only while both parties still share the room. Accepting does not consume a
// turn: exchanges run as a sub-loop outside the global rotation.
func TalkAccept(state WorldState, who, interactionID string) (WorldState, ToolResult) {
	in, res := lookupTalk(state, interactionID)
	if !res.OK {
		return state, res
	}
	if in.Status != StatusPending {
		return state, Fail(fmt.Sprintf("Invalid state: %s", in.Status))
	}
	if who != in.Target {
		return state, Fail(fmt.Sprintf("Denied: only %s can accept this talk request.", in.Target))
	}
	if state.Locations[in.Initiator] != in.RoomID || state.Locations[in.Target] != in.RoomID {
		return state, Fail("Talk no longer possible: not in the same room.")
	}

	started := state.Turn
	in.Status = StatusActive
	in.StartedTurn = &started
	next := state.WithInteraction(in)
	next, ev := next.Emit(who, "talk_start", map[string]any{"interaction_id": interactionID}, true, "talk started")
	return next, Success(fmt.Sprintf("OK: talk started between %s and %s.", in.Initiator, in.Target), ev).KeepTurn()
}

// TalkDecline rejects a pending talk. Target-only, no turn consumed.
func TalkDecline(state WorldState, who, interactionID string) (WorldState, ToolResult) {
	in, res := lookupTalk(state, interactionID)
	if !res.OK {
		return state, res
	}
	if in.Status != StatusPending {
		return state, Fail(fmt.Sprintf("Invalid state: %s", in.Status))
	}
	if who != in.Target {
		return state, Fail(fmt.Sprintf("Denied: only %s can decline this talk request.", in.Target))
	}

	in.Status = StatusDeclined
	next := state.WithInteraction(in)
	next, ev := next.Emit(who, "talk_decline", map[string]any{"interaction_id": interactionID}, true, "talk declined")
	return next, Success(fmt.Sprintf("OK: %s declined the talk request.", who), ev).KeepTurn()
}

// TalkSay records one utterance. If the participants have separated the talk
// force-closes instead; reaching the utterance cap closes it after recording.
func TalkSay(state WorldState, who, interactionID, text string) (WorldState, ToolResult) {
	in, res := lookupTalk(state, interactionID)
	if !res.OK {
		return state, res
	}
	if in.Status != StatusActive {
		return state, Fail(fmt.Sprintf("Invalid state: %s", in.Status))
	}
	if !in.Participant(who) {
		return state, Fail("Denied: you are not a participant in this talk.")
	}
	if state.Locations[in.Initiator] != in.RoomID || state.Locations[in.Target] != in.RoomID {
		next := closeInteraction(state, interactionID, who, "separated")
		next, ev := next.Emit(who, "talk_end",
			map[string]any{"interaction_id": interactionID, "reason": "separated"}, true, "talk ended (separated)")
		return next, Success("Talk ended: participants are no longer in the same room.", ev).KeepTurn()
	}

	in.Messages = append(append([]Message{}, in.Messages...), Message{Speaker: who, Text: text, Turn: state.Turn})
	next := state.WithInteraction(in)
	next, evSay := next.Emit(who, "talk_say",
		map[string]any{"interaction_id": interactionID, "text": text}, true, "said something")

	if in.Utterances() >= in.MaxUtterances() {
		next = closeInteraction(next, interactionID, who, "max_exchanges")
		var evEnd Event
		next, evEnd = next.Emit(who, "talk_end",
			map[string]any{"interaction_id": interactionID, "reason": "max_exchanges"}, true, "talk ended (max exchanges)")
		return next, Success(fmt.Sprintf("%s: %s  [talk ended: max exchanges]", who, text), evSay, evEnd).KeepTurn()
	}
	return next, Success(fmt.Sprintf("%s: %s", who, text), evSay).KeepTurn()
}

// TalkEnd lets either participant close an active talk.
func TalkEnd(state WorldState, who, interactionID string) (WorldState, ToolResult) {
	in, res := lookupTalk(state, interactionID)
	if !res.OK {
		return state, res
	}
	if in.Status != StatusActive {
		return state, Fail(fmt.Sprintf("Invalid state: %s", in.Status))
	}
	if !in.Participant(who) {
		return state, Fail("Denied: you are not a participant in this talk.")
	}

	next := closeInteraction(state, interactionID, who, "ended_by_actor")
	next, ev := next.Emit(who, "talk_end",
		map[string]any{"interaction_id": interactionID, "reason": "ended_by_actor"}, true, "talk ended")
	return next, Success(fmt.Sprintf("OK: talk ended by %s.", who), ev).KeepTurn()
}

// AutoDeclinePendingTalks implements talk decay: when the target acts on
// anything other than responding, every talk pending against them is treated
// as implicitly declined.
func AutoDeclinePendingTalks(state WorldState, target, reason string) (WorldState, []Event) {
	var events []Event
	for _, id := range PendingTalkIDsForTarget(state, target) {
		in := state.Interactions[id]
		ended := state.Turn
		in.Status = StatusDeclined
		in.EndedBy = target
		in.EndedReason = reason
		in.EndedTurn = &ended
		state = state.WithInteraction(in)
		var ev Event
		state, ev = state.Emit(target, "talk_decline",
			map[string]any{"interaction_id": id, "reason": reason, "auto": true}, true,
			fmt.Sprintf("auto-declined (%s)", reason))
		events = append(events, ev)
	}
	return state, events
}

func lookupTalk(state WorldState, interactionID string) (Interaction, ToolResult) {
	in, ok := state.Interactions[interactionID]
	if !ok {
		return Interaction{}, Fail(fmt.Sprintf("Unknown interaction: %s", interactionID))
	}
	if in.Kind != KindTalk {
		return Interaction{}, Fail("Not a talk interaction.")
	}
	return in, ToolResult{OK: true}
}

func closeInteraction(state WorldState, interactionID, endedBy, reason string) WorldState {
	in, ok := state.Interactions[interactionID]
	if !ok {
		return state
	}
	ended := state.Turn
	in.Status = StatusClosed
	in.EndedBy = endedBy
	in.EndedReason = reason
	in.EndedTurn = &ended
	return state.WithInteraction(in)
}
