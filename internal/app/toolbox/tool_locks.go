package toolbox

import (
	"sort"

	"homestead/internal/domain/sim"
)

// toggleableRooms lists rooms the actor could flip to the opposite lock
// state right now: owned, carrying a lock, inside or adjacent, and currently
// in the given state.
func toggleableRooms(ac ActionContext, wantLocked bool) []string {
	src, ok := ac.State.Locations[ac.Actor]
	if !ok {
		return nil
	}
	var out []string
	for roomID, locked := range ac.State.RoomLocked {
		if locked != wantLocked {
			continue
		}
		owner, ok := sim.RoomOwner(ac.State, roomID)
		if !ok || owner != ac.Actor {
			continue
		}
		if src != roomID && !ac.House.Adjacent(src, roomID) {
			continue
		}
		out = append(out, roomID)
	}
	sort.Strings(out)
	return out
}

type lockRoomTool struct{ baseTool }

func (lockRoomTool) Name() string { return "lock" }

func (lockRoomTool) Description() string {
	return "Lock a room you own, preventing others from entering."
}

func (lockRoomTool) ArgsSchema() string {
	return `{"type":"object","properties":{"room_id":{"type":"string","minLength":1}},"required":["room_id"]}`
}

func (lockRoomTool) Visible(ac ActionContext) bool {
	return len(toggleableRooms(ac, false)) > 0
}

func (lockRoomTool) Choices(ac ActionContext) map[string][]string {
	return map[string][]string{"room_id": toggleableRooms(ac, false)}
}

func (lockRoomTool) Run(ac ActionContext, args map[string]any) (sim.WorldState, sim.ToolResult) {
	roomID, _ := stringArg(args, "room_id")
	return sim.LockRoom(ac.House, ac.State, ac.Actor, roomID)
}

type unlockRoomTool struct{ baseTool }

func (unlockRoomTool) Name() string { return "unlock" }

func (unlockRoomTool) Description() string {
	return "Unlock a room you own, allowing others to enter."
}

func (unlockRoomTool) ArgsSchema() string {
	return `{"type":"object","properties":{"room_id":{"type":"string","minLength":1}},"required":["room_id"]}`
}

func (unlockRoomTool) Visible(ac ActionContext) bool {
	return len(toggleableRooms(ac, true)) > 0
}

func (unlockRoomTool) Choices(ac ActionContext) map[string][]string {
	return map[string][]string{"room_id": toggleableRooms(ac, true)}
}

func (unlockRoomTool) Run(ac ActionContext, args map[string]any) (sim.WorldState, sim.ToolResult) {
	roomID, _ := stringArg(args, "room_id")
	return sim.UnlockRoom(ac.House, ac.State, ac.Actor, roomID)
}
