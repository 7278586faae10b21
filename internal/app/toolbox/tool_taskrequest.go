package toolbox

import (
	"fmt"
	"sort"

	"homestead/internal/domain/sim"
)

// availableRequestTools hides catalog entries whose one-time task is already
// done; move_to is always requestable.
func availableRequestTools(state sim.WorldState) []string {
	var out []string
	for _, name := range sortedKeys(sim.RequestableTools) {
		switch name {
		case "clean_living_room", "wash_dishes":
			if state.TaskDone(name) {
				continue
			}
		case "cook":
			if len(remainingFoods(state)) == 0 {
				continue
			}
		}
		out = append(out, name)
	}
	return out
}

func otherActors(ac ActionContext) []string {
	var out []string
	for id := range ac.State.Actors {
		if id != ac.Actor {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

type taskRequestTool struct{ baseTool }

func (taskRequestTool) Name() string { return "task_request" }

func (taskRequestTool) Description() string {
	return "Request another actor to perform a task. Costs 1 request and your turn."
}

func (taskRequestTool) ArgsSchema() string {
	return `{"type":"object","properties":{"target":{"type":"string","minLength":1},"tool":{"type":"string","minLength":1},"args":{"type":"object"}},"required":["target","tool"]}`
}

func (taskRequestTool) Visible(ac ActionContext) bool {
	return ac.State.Actors[ac.Actor].Can("request") &&
		ac.State.Counter(ac.Actor, sim.CounterRequestsLeft) > 0 &&
		len(availableRequestTools(ac.State)) > 0
}

func (taskRequestTool) Choices(ac ActionContext) map[string][]string {
	return map[string][]string{
		"target": otherActors(ac),
		"tool":   availableRequestTools(ac.State),
	}
}

func (taskRequestTool) CanRun(ac ActionContext, args map[string]any) (bool, string) {
	if !ac.State.Actors[ac.Actor].Can("request") {
		return false, "Denied: you are not allowed to request tasks."
	}
	if ac.State.Counter(ac.Actor, sim.CounterRequestsLeft) <= 0 {
		return false, "Denied: no requests left."
	}
	tool, _ := stringArg(args, "tool")
	if !sim.RequestableTools[tool] {
		return false, fmt.Sprintf("Denied: tool not requestable. Allowed: %v", sortedKeys(sim.RequestableTools))
	}
	toolArgs := taskArgs(args)

	switch tool {
	case "clean_living_room", "wash_dishes":
		if ac.State.TaskDone(tool) {
			return false, "Denied: task already completed."
		}
	case "cook":
		food, _ := toolArgs["food"].(string)
		if !knownFood(food) {
			return false, "task_request cook requires args: {food: egg|bacon|hotdog}"
		}
		if ac.State.TaskDone("cook:" + food) {
			return false, fmt.Sprintf("Denied: already cooked %s.", food)
		}
	case "move_to":
		dst, _ := toolArgs["dst"].(string)
		if dst == "" {
			return false, "task_request move_to requires args: {dst}"
		}
	}
	return true, "OK"
}

func (taskRequestTool) Run(ac ActionContext, args map[string]any) (sim.WorldState, sim.ToolResult) {
	target, _ := stringArg(args, "target")
	tool, _ := stringArg(args, "tool")
	roomID, ok := ac.State.Locations[ac.Actor]
	if !ok {
		roomID = "living_room"
	}
	return sim.TaskRequest(ac.State, ac.Actor, target, roomID, tool, taskArgs(args))
}

func taskArgs(args map[string]any) map[string]any {
	raw, _ := args["args"].(map[string]any)
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return out
}

type taskAcceptTool struct{ baseTool }

func (taskAcceptTool) Name() string { return "task_accept" }

func (taskAcceptTool) Description() string {
	return "Accept a pending task request. Accepting moves you to the relevant room and executes the task immediately."
}

func (taskAcceptTool) ArgsSchema() string {
	return `{"type":"object","properties":{"interaction_id":{"type":"string","minLength":1}},"required":["interaction_id"]}`
}

func (taskAcceptTool) Visible(ac ActionContext) bool {
	return len(sim.PendingTaskRequestIDsForTarget(ac.State, ac.Actor)) > 0
}

func (taskAcceptTool) Choices(ac ActionContext) map[string][]string {
	return map[string][]string{"interaction_id": sim.PendingTaskRequestIDsForTarget(ac.State, ac.Actor)}
}

func (taskAcceptTool) CanRun(ac ActionContext, args map[string]any) (bool, string) {
	id, _ := stringArg(args, "interaction_id")
	if !pendingTaskRequestFor(ac, id) {
		return false, "Denied: no such pending task request."
	}
	return true, "OK"
}

func (taskAcceptTool) Run(ac ActionContext, args map[string]any) (sim.WorldState, sim.ToolResult) {
	id, _ := stringArg(args, "interaction_id")
	return sim.TaskAccept(ac.House, ac.State, ac.Actor, id)
}

type taskRejectTool struct{ baseTool }

func (taskRejectTool) Name() string { return "task_reject" }

func (taskRejectTool) Description() string {
	return "Reject a pending task request. Costs 1 reject."
}

func (taskRejectTool) ArgsSchema() string {
	return `{"type":"object","properties":{"interaction_id":{"type":"string","minLength":1},"reason":{"type":"string"}},"required":["interaction_id"]}`
}

func (taskRejectTool) Visible(ac ActionContext) bool {
	return len(sim.PendingTaskRequestIDsForTarget(ac.State, ac.Actor)) > 0
}

func (taskRejectTool) Choices(ac ActionContext) map[string][]string {
	return map[string][]string{"interaction_id": sim.PendingTaskRequestIDsForTarget(ac.State, ac.Actor)}
}

func (taskRejectTool) CanRun(ac ActionContext, args map[string]any) (bool, string) {
	if ac.State.Counter(ac.Actor, sim.CounterRejectsLeft) <= 0 {
		return false, "Denied: no rejects left."
	}
	id, _ := stringArg(args, "interaction_id")
	if !pendingTaskRequestFor(ac, id) {
		return false, "Denied: no such pending task request."
	}
	return true, "OK"
}

func (taskRejectTool) Run(ac ActionContext, args map[string]any) (sim.WorldState, sim.ToolResult) {
	id, _ := stringArg(args, "interaction_id")
	reason, ok := stringArg(args, "reason")
	if !ok || reason == "" {
		reason = "rejected"
	}
	return sim.TaskReject(ac.State, ac.Actor, id, reason)
}

func pendingTaskRequestFor(ac ActionContext, id string) bool {
	for _, pending := range sim.PendingTaskRequestIDsForTarget(ac.State, ac.Actor) {
		if pending == id {
			return true
		}
	}
	return false
}
