package perception

import (
	"strings"
	"testing"

	"homestead/internal/app/toolbox"
	"homestead/internal/domain/house"
	"homestead/internal/domain/sim"
)

func TestRenderLook_LivingRoom(t *testing.T) {
	h := house.Default()
	state := sim.MakeInitialState()

	look := RenderLook(h, state, "kevin")
	lines := strings.Split(look, "\n")
	if !strings.Contains(lines[0], "(living_room)") {
		t.Fatalf("first line must name the room: %q", lines[0])
	}
	if !strings.Contains(look, "Movable spaces: anna_room, dining_room, kevin_room, kitchen") {
		t.Fatalf("movable spaces missing or unsorted:\n%s", look)
	}
	if !strings.Contains(look, "Known spaces: anna_room, dining_room, kevin_room, kitchen, living_room") {
		t.Fatalf("known spaces missing:\n%s", look)
	}
	if !strings.Contains(look, "Also here: anna") {
		t.Fatalf("co-located actor missing:\n%s", look)
	}
	// The living room carries no lock, so no lock banner.
	if strings.Contains(look, "Room state:") {
		t.Fatalf("living room should have no lock banner:\n%s", look)
	}
}

func TestRenderLook_LockBannerAndAlone(t *testing.T) {
	h := house.Default()
	state := sim.MakeInitialState().WithLocation("anna", "anna_room")

	look := RenderLook(h, state, "anna")
	if !strings.Contains(look, "Room state: LOCKED") {
		t.Fatalf("locked room must show the LOCKED banner:\n%s", look)
	}
	if !strings.Contains(look, "You are alone.") {
		t.Fatalf("solo occupant must see the alone line:\n%s", look)
	}

	state = state.WithLock("anna_room", false)
	look = RenderLook(h, state, "anna")
	if !strings.Contains(look, "Room state: unlocked") {
		t.Fatalf("unlocked room must show the unlocked banner:\n%s", look)
	}
}

func TestRenderLook_UnknownLocation(t *testing.T) {
	h := house.Default()
	state := sim.MakeInitialState()
	if got := RenderLook(h, state, "ghost"); !strings.Contains(got, "nowhere") {
		t.Fatalf("unknown actor should render the nowhere line, got %q", got)
	}
}

func TestObserve_IncludesVisibleTools(t *testing.T) {
	tb, err := toolbox.BuildToolbox()
	if err != nil {
		t.Fatalf("build toolbox: %v", err)
	}
	h := house.Default()
	state := sim.MakeInitialState()

	view := Observe(tb, h, state, "kevin")
	if view.RoomID != "living_room" {
		t.Fatalf("room id = %q", view.RoomID)
	}
	var hasMove bool
	for _, spec := range view.Tools {
		if spec.Name == "move_to" {
			hasMove = true
		}
	}
	if !hasMove {
		t.Fatalf("move_to must be listed for kevin")
	}
}
