package toolbox

import (
	"fmt"

	"homestead/internal/domain/sim"
)

func canDoChores(ac ActionContext) bool {
	return ac.State.Actors[ac.Actor].Can("chores")
}

type cleanLivingRoomTool struct{ baseTool }

func (cleanLivingRoomTool) Name() string { return "clean_living_room" }

func (cleanLivingRoomTool) Description() string {
	return "Clean the living room (one-time)."
}

func (cleanLivingRoomTool) ArgsSchema() string { return emptyArgsSchema }

func (cleanLivingRoomTool) Visible(ac ActionContext) bool {
	return canDoChores(ac) &&
		ac.State.Locations[ac.Actor] == "living_room" &&
		!ac.State.TaskDone("clean_living_room")
}

func (cleanLivingRoomTool) CanRun(ac ActionContext, _ map[string]any) (bool, string) {
	if !canDoChores(ac) {
		return false, "Denied: you are not allowed to do chores."
	}
	if ac.State.Locations[ac.Actor] != "living_room" {
		return false, "Denied: must be in living_room."
	}
	if ac.State.TaskDone("clean_living_room") {
		return false, "Denied: living room already cleaned."
	}
	return true, "OK"
}

func (cleanLivingRoomTool) Run(ac ActionContext, _ map[string]any) (sim.WorldState, sim.ToolResult) {
	return sim.CompleteTask(ac.State, ac.Actor, "clean_living_room")
}

type washDishesTool struct{ baseTool }

func (washDishesTool) Name() string { return "wash_dishes" }

func (washDishesTool) Description() string {
	return "Wash the dishes (one-time)."
}

func (washDishesTool) ArgsSchema() string { return emptyArgsSchema }

func (washDishesTool) Visible(ac ActionContext) bool {
	return canDoChores(ac) &&
		ac.State.Locations[ac.Actor] == "kitchen" &&
		!ac.State.TaskDone("wash_dishes")
}

func (washDishesTool) CanRun(ac ActionContext, _ map[string]any) (bool, string) {
	if !canDoChores(ac) {
		return false, "Denied: you are not allowed to do chores."
	}
	if ac.State.Locations[ac.Actor] != "kitchen" {
		return false, "Denied: must be in kitchen."
	}
	if ac.State.TaskDone("wash_dishes") {
		return false, "Denied: dishes already washed."
	}
	return true, "OK"
}

func (washDishesTool) Run(ac ActionContext, _ map[string]any) (sim.WorldState, sim.ToolResult) {
	return sim.CompleteTask(ac.State, ac.Actor, "wash_dishes")
}

type cookTool struct{ baseTool }

func (cookTool) Name() string { return "cook" }

func (cookTool) Description() string {
	return "Cook one item (egg/bacon/hotdog). Each item is one-time."
}

func (cookTool) ArgsSchema() string {
	return `{"type":"object","properties":{"food":{"type":"string","minLength":1}},"required":["food"]}`
}

func remainingFoods(state sim.WorldState) []string {
	var out []string
	for _, food := range sim.CookFoods {
		if !state.TaskDone("cook:" + food) {
			out = append(out, food)
		}
	}
	return out
}

func (cookTool) Visible(ac ActionContext) bool {
	return canDoChores(ac) &&
		ac.State.Locations[ac.Actor] == "kitchen" &&
		len(remainingFoods(ac.State)) > 0
}

func (cookTool) Choices(ac ActionContext) map[string][]string {
	return map[string][]string{"food": remainingFoods(ac.State)}
}

func (cookTool) CanRun(ac ActionContext, args map[string]any) (bool, string) {
	if !canDoChores(ac) {
		return false, "Denied: you are not allowed to do chores."
	}
	if ac.State.Locations[ac.Actor] != "kitchen" {
		return false, "Denied: must be in kitchen."
	}
	food, _ := stringArg(args, "food")
	if !knownFood(food) {
		return false, "cook requires args: {food: egg|bacon|hotdog}"
	}
	if ac.State.TaskDone("cook:" + food) {
		return false, fmt.Sprintf("Denied: already cooked %s.", food)
	}
	return true, "OK"
}

func knownFood(food string) bool {
	for _, f := range sim.CookFoods {
		if f == food {
			return true
		}
	}
	return false
}

func (cookTool) Run(ac ActionContext, args map[string]any) (sim.WorldState, sim.ToolResult) {
	food, _ := stringArg(args, "food")
	return sim.CompleteTask(ac.State, ac.Actor, "cook:"+food)
}

type guessTool struct{ baseTool }

func (guessTool) Name() string { return "guess" }

func (guessTool) Description() string {
	return "Guess a completed task id (e.g. clean_living_room, wash_dishes, cook:egg). Costs 1 guess."
}

func (guessTool) ArgsSchema() string {
	return `{"type":"object","properties":{"task_id":{"type":"string","minLength":1}},"required":["task_id"]}`
}

func (guessTool) Visible(ac ActionContext) bool {
	return ac.State.Actors[ac.Actor].Can("guess")
}

func (guessTool) CanRun(ac ActionContext, _ map[string]any) (bool, string) {
	if !ac.State.Actors[ac.Actor].Can("guess") {
		return false, "Denied: you are not allowed to guess."
	}
	return true, "OK"
}

func (guessTool) Run(ac ActionContext, args map[string]any) (sim.WorldState, sim.ToolResult) {
	taskID, _ := stringArg(args, "task_id")
	return sim.Guess(ac.State, ac.Actor, taskID)
}
