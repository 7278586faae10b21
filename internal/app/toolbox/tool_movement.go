package toolbox

import (
	"sort"

	"homestead/internal/domain/sim"
)

type moveToTool struct{ baseTool }

func (moveToTool) Name() string { return "move_to" }

func (moveToTool) Description() string {
	return "Move to an adjacent room."
}

func (moveToTool) ArgsSchema() string {
	return `{"type":"object","properties":{"dst":{"type":"string","minLength":1}},"required":["dst"]}`
}

func (moveToTool) Choices(ac ActionContext) map[string][]string {
	src, ok := ac.State.Locations[ac.Actor]
	if !ok {
		return nil
	}
	var open []string
	for _, dst := range ac.House.Neighbors(src) {
		if sim.CanEnterRoom(ac.State, dst) {
			open = append(open, dst)
		}
	}
	sort.Strings(open)
	return map[string][]string{"dst": open}
}

func (moveToTool) Run(ac ActionContext, args map[string]any) (sim.WorldState, sim.ToolResult) {
	dst, _ := stringArg(args, "dst")
	return sim.ApplyMove(ac.House, ac.State, ac.Actor, dst)
}
