// Package perception renders the engine's state into the textual and
// machine-readable surfaces consumed by callers: a room description for the
// acting entity and the visible tool catalog with dynamic choices.
package perception

import (
	"sort"
	"strings"

	"homestead/internal/app/toolbox"
	"homestead/internal/domain/house"
	"homestead/internal/domain/sim"
)

// View is one actor's full observation of the world at a point in time.
type View struct {
	Actor  string         `json:"actor"`
	RoomID string         `json:"room_id"`
	Look   string         `json:"look"`
	Turn   int            `json:"turn"`
	Tools  []toolbox.Spec `json:"tools"`
}

// RenderLook describes the actor's current room: lock banner, free text,
// objects, reachable and known rooms, and co-located actors.
func RenderLook(h house.House, state sim.WorldState, actor string) string {
	roomID, ok := state.Locations[actor]
	room, known := h.Rooms[roomID]
	if !ok || !known {
		return "You are nowhere. (This is probably a bug.)"
	}

	movable := h.Neighbors(roomID)
	sort.Strings(movable)
	allRooms := make([]string, 0, len(h.Rooms))
	for id := range h.Rooms {
		allRooms = append(allRooms, id)
	}
	sort.Strings(allRooms)

	var out []string
	out = append(out, room.Name+" ("+room.ID+")")

	if state.Lockable(room.ID) {
		if state.IsLocked(room.ID) {
			out = append(out, "Room state: LOCKED")
		} else {
			out = append(out, "Room state: unlocked")
		}
	}

	out = append(out, room.Description)

	if len(room.Objects) > 0 {
		out = append(out, "Notable objects: "+strings.Join(room.Objects, ", "))
	}

	if len(movable) > 0 {
		out = append(out, "Movable spaces: "+strings.Join(movable, ", "))
	} else {
		out = append(out, "Movable spaces: (none)")
	}
	out = append(out, "Known spaces: "+strings.Join(allRooms, ", "))

	var others []string
	for _, id := range sim.EntitiesInRoom(state, roomID) {
		if id != actor {
			others = append(others, id)
		}
	}
	if len(others) > 0 {
		out = append(out, "Also here: "+strings.Join(others, ", "))
	} else {
		out = append(out, "You are alone.")
	}

	return strings.Join(out, "\n")
}

// Observe bundles the rendered look with the actor's visible tools.
func Observe(tb *toolbox.Registry, h house.House, state sim.WorldState, actor string) View {
	return View{
		Actor:  actor,
		RoomID: state.Locations[actor],
		Look:   RenderLook(h, state, actor),
		Turn:   state.Turn,
		Tools:  tb.Specs(toolbox.ActionContext{House: h, State: state, Actor: actor}),
	}
}
