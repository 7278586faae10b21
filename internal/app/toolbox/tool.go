package toolbox

import (
	"sort"

	"homestead/internal/domain/house"
	"homestead/internal/domain/sim"
)

// ActionContext bundles everything a tool may read: the static house plan,
// the current immutable world snapshot and the acting entity.
type ActionContext struct {
	House house.House
	State sim.WorldState
	Actor string
}

// Spec is the machine-readable description of one tool as presented to a
// caller: static description and args schema, plus per-call dynamic choices.
type Spec struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	ArgsSchema  string              `json:"args_schema"`
	Choices     map[string][]string `json:"choices,omitempty"`
}

// Tool is one named action in the catalog. Visible gates whether the tool
// shows up in spec listings for the given context; CanRun does cheap
// state-dependent precondition checks; Run performs the effect and must
// return the input state unchanged on failure.
type Tool interface {
	Name() string
	Description() string
	ArgsSchema() string
	Visible(ac ActionContext) bool
	Choices(ac ActionContext) map[string][]string
	CanRun(ac ActionContext, args map[string]any) (bool, string)
	Run(ac ActionContext, args map[string]any) (sim.WorldState, sim.ToolResult)
}

type baseTool struct{}

func (baseTool) Visible(ActionContext) bool                   { return true }
func (baseTool) Choices(ActionContext) map[string][]string    { return nil }
func (baseTool) CanRun(ActionContext, map[string]any) (bool, string) { return true, "OK" }

const emptyArgsSchema = `{"type":"object"}`

func coLocatedOthers(ac ActionContext) []string {
	roomID, ok := ac.State.Locations[ac.Actor]
	if !ok {
		return nil
	}
	var out []string
	for _, id := range sim.EntitiesInRoom(ac.State, roomID) {
		if id != ac.Actor {
			out = append(out, id)
		}
	}
	return out
}

func inActiveTalk(ac ActionContext) bool {
	_, ok := sim.ActiveTalkID(ac.State, ac.Actor)
	return ok
}

func activeTalkIDs(ac ActionContext) []string {
	if id, ok := sim.ActiveTalkID(ac.State, ac.Actor); ok {
		return []string{id}
	}
	return nil
}

func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
