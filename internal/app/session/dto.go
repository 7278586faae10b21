package session

import (
	"homestead/internal/app/toolbox"
	"homestead/internal/domain/sim"
)

type Request struct {
	ActorID string         `json:"actor_id"`
	Tool    string         `json:"tool"`
	Args    map[string]any `json:"args,omitempty"`
}

type Response struct {
	Result       sim.ToolResult `json:"result"`
	Turn         int            `json:"turn"`
	TurnIndex    int            `json:"turn_index"`
	CurrentActor string         `json:"current_actor"`
	Events       []sim.Event    `json:"events"`
	VisibleTools []toolbox.Spec `json:"visible_tools"`
}
