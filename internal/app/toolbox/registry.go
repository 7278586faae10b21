package toolbox

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"homestead/internal/domain/sim"
)

// responseTools are exempt from the decay step: answering a pending
// interaction must not cancel that same interaction first.
var responseTools = map[string]bool{
	"talk_accept":  true,
	"talk_decline": true,
	"task_accept":  true,
	"task_reject":  true,
}

// Registry maps tool names to implementations and owns the compiled args
// schemas. Invoke is the single place where decay and turn advancement
// are decided.
type Registry struct {
	tools   map[string]Tool
	order   []string
	schemas map[string]*jsonschema.Schema
}

func NewRegistry() *Registry {
	return &Registry{
		tools:   map[string]Tool{},
		schemas: map[string]*jsonschema.Schema{},
	}
}

func (r *Registry) Register(t Tool) error {
	name := t.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("duplicate tool: %s", name)
	}
	schema, err := jsonschema.CompileString(name+".json", t.ArgsSchema())
	if err != nil {
		return fmt.Errorf("compile args schema for %s: %w", name, err)
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	r.schemas[name] = schema
	return nil
}

// BuildToolbox assembles the full tool catalog in presentation order.
func BuildToolbox() (*Registry, error) {
	r := NewRegistry()
	tools := []Tool{
		moveToTool{},
		lockRoomTool{},
		unlockRoomTool{},
		skipTool{},
		endTurnTool{},
		talkRequestTool{},
		talkAcceptTool{},
		talkDeclineTool{},
		talkSayTool{},
		talkEndTool{},
		cleanLivingRoomTool{},
		washDishesTool{},
		cookTool{},
		guessTool{},
		taskRequestTool{},
		taskAcceptTool{},
		taskRejectTool{},
	}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Specs lists the tools currently visible to the context's actor, with
// dynamic choices resolved against the current state.
func (r *Registry) Specs(ac ActionContext) []Spec {
	var out []Spec
	for _, name := range r.order {
		t := r.tools[name]
		if !t.Visible(ac) {
			continue
		}
		out = append(out, Spec{
			Name:        t.Name(),
			Description: t.Description(),
			ArgsSchema:  t.ArgsSchema(),
			Choices:     t.Choices(ac),
		})
	}
	return out
}

// Invoke runs one tool invocation end to end: lookup, args validation,
// preconditions, decay of pending interactions aimed at the actor, the tool
// body, then turn advancement when the result consumed the turn. Failing
// calls return the context unchanged apart from decay side effects.
func (r *Registry) Invoke(toolName string, ac ActionContext, args map[string]any) (ActionContext, sim.ToolResult) {
	t, ok := r.tools[toolName]
	if !ok {
		return ac, sim.Fail(fmt.Sprintf("Unknown tool: %s", toolName))
	}
	if args == nil {
		args = map[string]any{}
	}
	if err := r.schemas[toolName].Validate(args); err != nil {
		return ac, sim.Fail(fmt.Sprintf("Invalid args for %s: %s", toolName, schemaErrorSummary(err)))
	}
	if ok, msg := t.CanRun(ac, args); !ok {
		return ac, sim.Fail(msg)
	}

	state := ac.State
	var decayEvents []sim.Event
	if !responseTools[toolName] {
		var evs []sim.Event
		state, evs = sim.AutoDeclinePendingTalks(state, ac.Actor, "decay")
		decayEvents = append(decayEvents, evs...)
		state, evs = sim.AutoRejectPendingTaskRequests(state, ac.Actor, "decay")
		decayEvents = append(decayEvents, evs...)
	}

	newState, res := t.Run(ActionContext{House: ac.House, State: state, Actor: ac.Actor}, args)
	if len(decayEvents) > 0 {
		res.Events = append(decayEvents, res.Events...)
	}
	if res.OK && res.ConsumeTurn {
		newState = sim.AdvanceTurn(newState)
	}
	return ActionContext{House: ac.House, State: newState, Actor: ac.Actor}, res
}

func schemaErrorSummary(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	loc := strings.TrimPrefix(leaf.InstanceLocation, "/")
	if loc == "" {
		return leaf.Message
	}
	return fmt.Sprintf("%s: %s", loc, leaf.Message)
}
