package toolbox

import (
	"strings"

	"homestead/internal/domain/sim"
)

type talkRequestTool struct{ baseTool }

func (talkRequestTool) Name() string { return "talk_request" }

func (talkRequestTool) Description() string {
	return "Request to start a conversation with someone in the same room."
}

func (talkRequestTool) ArgsSchema() string {
	return `{"type":"object","properties":{"target":{"type":"string","minLength":1}},"required":["target"]}`
}

func (talkRequestTool) Visible(ac ActionContext) bool {
	return len(coLocatedOthers(ac)) > 0 && !inActiveTalk(ac)
}

func (talkRequestTool) Choices(ac ActionContext) map[string][]string {
	return map[string][]string{"target": coLocatedOthers(ac)}
}

func (talkRequestTool) CanRun(ac ActionContext, args map[string]any) (bool, string) {
	target, _ := stringArg(args, "target")
	if target == ac.Actor {
		return false, "Denied: you cannot request to talk with yourself."
	}
	return true, "OK"
}

func (talkRequestTool) Run(ac ActionContext, args map[string]any) (sim.WorldState, sim.ToolResult) {
	roomID, ok := ac.State.Locations[ac.Actor]
	if !ok {
		return ac.State, sim.Fail("Unknown location.")
	}
	target, _ := stringArg(args, "target")
	return sim.TalkRequest(ac.State, ac.Actor, target, roomID)
}

type talkAcceptTool struct{ baseTool }

func (talkAcceptTool) Name() string { return "talk_accept" }

func (talkAcceptTool) Description() string {
	return "Accept a pending talk request directed at you."
}

func (talkAcceptTool) ArgsSchema() string {
	return `{"type":"object","properties":{"interaction_id":{"type":"string","minLength":1}},"required":["interaction_id"]}`
}

func (talkAcceptTool) Visible(ac ActionContext) bool {
	return len(sim.PendingTalkIDsForTarget(ac.State, ac.Actor)) > 0
}

func (talkAcceptTool) Choices(ac ActionContext) map[string][]string {
	return map[string][]string{"interaction_id": sim.PendingTalkIDsForTarget(ac.State, ac.Actor)}
}

func (talkAcceptTool) Run(ac ActionContext, args map[string]any) (sim.WorldState, sim.ToolResult) {
	id, _ := stringArg(args, "interaction_id")
	return sim.TalkAccept(ac.State, ac.Actor, id)
}

type talkDeclineTool struct{ baseTool }

func (talkDeclineTool) Name() string { return "talk_decline" }

func (talkDeclineTool) Description() string {
	return "Decline a pending talk request directed at you."
}

func (talkDeclineTool) ArgsSchema() string {
	return `{"type":"object","properties":{"interaction_id":{"type":"string","minLength":1}},"required":["interaction_id"]}`
}

func (talkDeclineTool) Visible(ac ActionContext) bool {
	return len(sim.PendingTalkIDsForTarget(ac.State, ac.Actor)) > 0
}

func (talkDeclineTool) Choices(ac ActionContext) map[string][]string {
	return map[string][]string{"interaction_id": sim.PendingTalkIDsForTarget(ac.State, ac.Actor)}
}

func (talkDeclineTool) Run(ac ActionContext, args map[string]any) (sim.WorldState, sim.ToolResult) {
	id, _ := stringArg(args, "interaction_id")
	return sim.TalkDecline(ac.State, ac.Actor, id)
}

type talkSayTool struct{ baseTool }

func (talkSayTool) Name() string { return "talk_say" }

func (talkSayTool) Description() string {
	return "Say something in an active talk interaction you are part of."
}

func (talkSayTool) ArgsSchema() string {
	return `{"type":"object","properties":{"interaction_id":{"type":"string","minLength":1},"text":{"type":"string","minLength":1}},"required":["interaction_id","text"]}`
}

func (talkSayTool) Visible(ac ActionContext) bool {
	return len(activeTalkIDs(ac)) > 0
}

func (talkSayTool) Choices(ac ActionContext) map[string][]string {
	return map[string][]string{"interaction_id": activeTalkIDs(ac)}
}

func (talkSayTool) CanRun(_ ActionContext, args map[string]any) (bool, string) {
	text, _ := stringArg(args, "text")
	if strings.TrimSpace(text) == "" {
		return false, "talk_say.text cannot be empty"
	}
	return true, "OK"
}

func (talkSayTool) Run(ac ActionContext, args map[string]any) (sim.WorldState, sim.ToolResult) {
	id, _ := stringArg(args, "interaction_id")
	text, _ := stringArg(args, "text")
	return sim.TalkSay(ac.State, ac.Actor, id, text)
}

type talkEndTool struct{ baseTool }

func (talkEndTool) Name() string { return "talk_end" }

func (talkEndTool) Description() string {
	return "End an active talk interaction you are part of."
}

func (talkEndTool) ArgsSchema() string {
	return `{"type":"object","properties":{"interaction_id":{"type":"string","minLength":1}},"required":["interaction_id"]}`
}

func (talkEndTool) Visible(ac ActionContext) bool {
	return len(activeTalkIDs(ac)) > 0
}

func (talkEndTool) Choices(ac ActionContext) map[string][]string {
	return map[string][]string{"interaction_id": activeTalkIDs(ac)}
}

func (talkEndTool) Run(ac ActionContext, args map[string]any) (sim.WorldState, sim.ToolResult) {
	id, _ := stringArg(args, "interaction_id")
	return sim.TalkEnd(ac.State, ac.Actor, id)
}
