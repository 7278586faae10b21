package sim

import (
	"testing"

	"homestead/internal/domain/house"
)

func TestAdvanceTurn_WrapsOncePerCycle(t *testing.T) {
	state := MakeInitialState()
	if state.TurnIndex != 0 || state.Turn != 0 {
		t.Fatalf("unexpected initial pointer: index=%d turn=%d", state.TurnIndex, state.Turn)
	}

	for i := 0; i < len(state.TurnOrder); i++ {
		state = AdvanceTurn(state)
	}
	if state.TurnIndex != 0 {
		t.Fatalf("expected wrap back to index 0, got %d", state.TurnIndex)
	}
	if state.Turn != 1 {
		t.Fatalf("expected exactly one round increment, got turn=%d", state.Turn)
	}
}

func TestAdvanceTurn_EmptyOrderIncrementsRound(t *testing.T) {
	state := MakeInitialState()
	state.TurnOrder = nil
	state.TurnIndex = 0

	for i := 1; i <= 3; i++ {
		state = AdvanceTurn(state)
		if state.Turn != i {
			t.Fatalf("call %d: expected turn=%d, got %d", i, i, state.Turn)
		}
	}
	if state.CurrentActor() != "player" {
		t.Fatalf("empty order should fall back to player, got %q", state.CurrentActor())
	}
}

func TestAdvanceTurn_ResetsPerTurnFlags(t *testing.T) {
	state := MakeInitialState()
	state = state.WithFlag("anna", FlagCookedThisTurn, true)

	state = AdvanceTurn(state) // anna's sub-turn begins
	if state.CurrentActor() != "anna" {
		t.Fatalf("expected anna's sub-turn, got %q", state.CurrentActor())
	}
	if cooked, _ := state.Flag("anna", FlagCookedThisTurn).(bool); cooked {
		t.Fatalf("per-turn flag should reset at the turn boundary")
	}
}

func TestApplyMove_Legality(t *testing.T) {
	h := house.Default()

	cases := []struct {
		name    string
		who     string
		dst     string
		wantOK  bool
	}{
		{name: "adjacent unlocked", who: "kevin", dst: "kitchen", wantOK: true},
		{name: "no-op move", who: "kevin", dst: "living_room", wantOK: false},
		{name: "unknown room", who: "kevin", dst: "garage", wantOK: false},
		{name: "unknown actor", who: "ghost", dst: "kitchen", wantOK: false},
		{name: "locked destination", who: "kevin", dst: "anna_room", wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := MakeInitialState()
			next, res := ApplyMove(h, state, tc.who, tc.dst)
			if res.OK != tc.wantOK {
				t.Fatalf("ok=%v want %v (%s)", res.OK, tc.wantOK, res.Message)
			}
			if !tc.wantOK {
				if next.Locations[tc.who] != state.Locations[tc.who] {
					t.Fatalf("failed move must not relocate the actor")
				}
				if len(next.Events) != len(state.Events) {
					t.Fatalf("failed move must not emit events")
				}
			}
		})
	}
}

func TestApplyMove_NonAdjacent(t *testing.T) {
	h := house.Default()
	state := MakeInitialState().WithLocation("kevin", "kevin_room")

	_, res := ApplyMove(h, state, "kevin", "kitchen")
	if res.OK {
		t.Fatalf("kevin_room -> kitchen is not adjacent, move must fail")
	}
}

func TestApplyMove_SuccessEmitsEventAndLeavesTurnAlone(t *testing.T) {
	h := house.Default()
	state := MakeInitialState()

	next, res := ApplyMove(h, state, "kevin", "kitchen")
	if !res.OK {
		t.Fatalf("move failed: %s", res.Message)
	}
	if next.Locations["kevin"] != "kitchen" {
		t.Fatalf("kevin should be in the kitchen, got %q", next.Locations["kevin"])
	}
	if len(next.Events) != 1 || next.Events[0].Type != "move" {
		t.Fatalf("expected exactly one move event, got %+v", next.Events)
	}
	if next.TurnIndex != 0 || next.Turn != 0 {
		t.Fatalf("ApplyMove must not advance the turn itself")
	}
	// old snapshot untouched
	if state.Locations["kevin"] != "living_room" {
		t.Fatalf("previous snapshot was mutated")
	}
}

func TestLockAsymmetry(t *testing.T) {
	state := MakeInitialState()
	if CanEnterRoom(state, "anna_room") {
		t.Fatalf("locked room must block entry")
	}
	if !CanExitRoom(state, "anna_room") {
		t.Fatalf("locks never block exit")
	}
	if !CanEnterRoom(state, "kevin_room") {
		t.Fatalf("unlocked room must allow entry")
	}
}

func TestCanToggleLock(t *testing.T) {
	h := house.Default()

	cases := []struct {
		name   string
		who    string
		room   string
		from   string
		wantOK bool
	}{
		{name: "owner adjacent", who: "anna", room: "anna_room", from: "living_room", wantOK: true},
		{name: "owner inside", who: "anna", room: "anna_room", from: "anna_room", wantOK: true},
		{name: "owner too far", who: "anna", room: "anna_room", from: "kitchen", wantOK: false},
		{name: "not the owner", who: "kevin", room: "anna_room", from: "living_room", wantOK: false},
		{name: "ownerless room", who: "anna", room: "kitchen", from: "kitchen", wantOK: false},
		{name: "unknown room", who: "anna", room: "attic", from: "living_room", wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := MakeInitialState().WithLocation(tc.who, tc.from)
			ok, msg := CanToggleLock(h, state, tc.who, tc.room)
			if ok != tc.wantOK {
				t.Fatalf("ok=%v want %v (%s)", ok, tc.wantOK, msg)
			}
		})
	}
}

func TestLockUnlockRoom(t *testing.T) {
	h := house.Default()
	state := MakeInitialState()

	next, res := UnlockRoom(h, state, "anna", "anna_room")
	if !res.OK {
		t.Fatalf("unlock failed: %s", res.Message)
	}
	if next.IsLocked("anna_room") {
		t.Fatalf("anna_room should be unlocked")
	}

	if _, res := UnlockRoom(h, next, "anna", "anna_room"); res.OK {
		t.Fatalf("double unlock must fail")
	}

	next, res = LockRoom(h, next, "anna", "anna_room")
	if !res.OK || !next.IsLocked("anna_room") {
		t.Fatalf("relock failed: %s", res.Message)
	}

	if _, res := LockRoom(h, next, "anna", "kitchen"); res.OK {
		t.Fatalf("kitchen has no lock state, lock must fail")
	}
}

func TestSkipAndEndTurnAdvanceWithDistinctEvents(t *testing.T) {
	state := MakeInitialState()

	next, res := SkipTurn(state, "kevin")
	if !res.OK || res.ConsumeTurn {
		t.Fatalf("skip already advanced, pipeline must not advance again")
	}
	if next.TurnIndex != 1 {
		t.Fatalf("expected turn_index=1, got %d", next.TurnIndex)
	}
	if next.Events[len(next.Events)-1].Type != "skip" {
		t.Fatalf("expected a skip event")
	}

	next, res = EndTurn(next, "anna")
	if !res.OK || res.ConsumeTurn {
		t.Fatalf("end_turn already advanced, pipeline must not advance again")
	}
	if next.TurnIndex != 0 || next.Turn != 1 {
		t.Fatalf("expected wrap to index 0 turn 1, got index=%d turn=%d", next.TurnIndex, next.Turn)
	}
	if next.Events[len(next.Events)-1].Type != "end_turn" {
		t.Fatalf("expected an end_turn event")
	}
}
