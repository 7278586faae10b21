package toolbox

import "homestead/internal/domain/sim"

type skipTool struct{ baseTool }

func (skipTool) Name() string        { return "skip" }
func (skipTool) Description() string { return "Skip your turn." }
func (skipTool) ArgsSchema() string  { return emptyArgsSchema }

func (skipTool) Run(ac ActionContext, _ map[string]any) (sim.WorldState, sim.ToolResult) {
	return sim.SkipTurn(ac.State, ac.Actor)
}

type endTurnTool struct{ baseTool }

func (endTurnTool) Name() string        { return "end_turn" }
func (endTurnTool) Description() string { return "End your turn." }
func (endTurnTool) ArgsSchema() string  { return emptyArgsSchema }

func (endTurnTool) Run(ac ActionContext, _ map[string]any) (sim.WorldState, sim.ToolResult) {
	return sim.EndTurn(ac.State, ac.Actor)
}
