package sim

import "fmt"

// WorldState is the single aggregate the engine operates on. It is a value:
// every mutator returns a fresh copy and leaves the receiver untouched, so
// callers can hold old snapshots for replay or testing without aliasing bugs.
type WorldState struct {
	Locations  map[string]string
	RoomLocked map[string]bool

	Turn      int
	TurnOrder []string
	TurnIndex int

	Actors map[string]Actor

	CompletedTasks map[string]bool
	ActorCounters  map[string]map[string]int
	ActorFlags     map[string]map[string]any

	Interactions map[string]Interaction
	Events       []Event

	// TalkMaxExchanges caps conversations opened from this state; zero falls
	// back to DefaultMaxExchanges.
	TalkMaxExchanges int

	NextInteractionID int
	NextTaskID        int
}

// Counter names used by the default scenario.
const (
	CounterGuessesLeft  = "guesses_left"
	CounterRejectsLeft  = "rejects_left"
	CounterRequestsLeft = "requests_left"
)

// Per-turn flags reset when an actor's sub-turn begins.
const FlagCookedThisTurn = "cooked_this_turn"

// FlagGuessedTaskIDs persists across turns; it records past guesses.
const FlagGuessedTaskIDs = "guessed_task_ids"

// MakeInitialState reproduces the default household scenario: both NPCs start
// in the living room, Anna's room starts locked, and the resource counters
// give Kevin nine requests and Anna one guess plus three rejects.
func MakeInitialState() WorldState {
	actors := map[string]Actor{
		"kevin": {
			ID:          "kevin",
			DisplayName: "Kevin",
			Kind:        ActorNPC,
			OwnedRooms:  map[string]bool{"kevin_room": true},
			Permissions: map[string]bool{"request": true},
		},
		"anna": {
			ID:          "anna",
			DisplayName: "Anna",
			Kind:        ActorNPC,
			OwnedRooms:  map[string]bool{"anna_room": true},
			Permissions: map[string]bool{"chores": true, "guess": true},
		},
	}

	return WorldState{
		Locations: map[string]string{
			"kevin": "living_room",
			"anna":  "living_room",
		},
		RoomLocked: map[string]bool{
			"anna_room":  true,
			"kevin_room": false,
		},
		Turn:      0,
		TurnOrder: []string{"kevin", "anna"},
		TurnIndex: 0,
		Actors:    actors,
		CompletedTasks: map[string]bool{},
		ActorCounters: map[string]map[string]int{
			"kevin": {CounterRequestsLeft: 9},
			"anna":  {CounterGuessesLeft: 1, CounterRejectsLeft: 3},
		},
		ActorFlags: map[string]map[string]any{
			"kevin": {FlagCookedThisTurn: false},
			"anna":  {FlagCookedThisTurn: false},
		},
		Interactions:      map[string]Interaction{},
		Events:            nil,
		TalkMaxExchanges:  DefaultMaxExchanges,
		NextInteractionID: 1,
		NextTaskID:        1,
	}
}

func (s WorldState) talkMaxExchanges() int {
	if s.TalkMaxExchanges > 0 {
		return s.TalkMaxExchanges
	}
	return DefaultMaxExchanges
}

// CurrentActor returns whose sub-turn it is. An empty turn order falls back
// to a single implicit "player" actor.
func (s WorldState) CurrentActor() string {
	if len(s.TurnOrder) == 0 {
		return "player"
	}
	return s.TurnOrder[s.TurnIndex]
}

func (s WorldState) KnownActor(id string) bool {
	_, ok := s.Locations[id]
	return ok
}

func (s WorldState) IsLocked(roomID string) bool {
	return s.RoomLocked[roomID]
}

// Lockable reports whether the room carries lock state at all; rooms absent
// from RoomLocked cannot be locked.
func (s WorldState) Lockable(roomID string) bool {
	_, ok := s.RoomLocked[roomID]
	return ok
}

func (s WorldState) Counter(actor, key string) int {
	return s.ActorCounters[actor][key]
}

func (s WorldState) Flag(actor, key string) any {
	return s.ActorFlags[actor][key]
}

func (s WorldState) TaskDone(taskID string) bool {
	return s.CompletedTasks[taskID]
}

// ---- copy-on-write mutators ----

func (s WorldState) WithLocation(actor, roomID string) WorldState {
	locations := cloneStringMap(s.Locations)
	locations[actor] = roomID
	s.Locations = locations
	return s
}

func (s WorldState) WithLock(roomID string, locked bool) WorldState {
	lockedMap := cloneBoolMap(s.RoomLocked)
	lockedMap[roomID] = locked
	s.RoomLocked = lockedMap
	return s
}

func (s WorldState) WithInteraction(in Interaction) WorldState {
	interactions := make(map[string]Interaction, len(s.Interactions)+1)
	for id, existing := range s.Interactions {
		interactions[id] = existing
	}
	interactions[in.ID] = in
	s.Interactions = interactions
	return s
}

func (s WorldState) WithTaskDone(taskID string) WorldState {
	done := cloneBoolMap(s.CompletedTasks)
	done[taskID] = true
	s.CompletedTasks = done
	return s
}

// WithCounter adjusts a bounded per-actor resource. The result never drops
// below zero; ceil caps it when ceil > 0.
func (s WorldState) WithCounter(actor, key string, delta, ceil int) WorldState {
	next := s.Counter(actor, key) + delta
	if next < 0 {
		next = 0
	}
	if ceil > 0 && next > ceil {
		next = ceil
	}
	counters := make(map[string]map[string]int, len(s.ActorCounters))
	for id, kv := range s.ActorCounters {
		counters[id] = kv
	}
	actorCounters := make(map[string]int, len(counters[actor])+1)
	for k, v := range counters[actor] {
		actorCounters[k] = v
	}
	actorCounters[key] = next
	counters[actor] = actorCounters
	s.ActorCounters = counters
	return s
}

func (s WorldState) WithFlag(actor, key string, value any) WorldState {
	flags := make(map[string]map[string]any, len(s.ActorFlags))
	for id, kv := range s.ActorFlags {
		flags[id] = kv
	}
	actorFlags := make(map[string]any, len(flags[actor])+1)
	for k, v := range flags[actor] {
		actorFlags[k] = v
	}
	actorFlags[key] = value
	flags[actor] = actorFlags
	s.ActorFlags = flags
	return s
}

// AppendEvents adds to the append-only log. The log is never reordered or
// truncated; a fresh backing array keeps old snapshots stable.
func (s WorldState) AppendEvents(events ...Event) WorldState {
	if len(events) == 0 {
		return s
	}
	log := make([]Event, 0, len(s.Events)+len(events))
	log = append(log, s.Events...)
	log = append(log, events...)
	s.Events = log
	return s
}

// Emit appends a single event and returns it so callers can thread it into
// the ToolResult they are building.
func (s WorldState) Emit(actor, eventType string, args map[string]any, ok bool, message string) (WorldState, Event) {
	ev := NewEvent(s.Turn, actor, eventType, args, ok, message)
	return s.AppendEvents(ev), ev
}

// AllocateInteractionID hands out deterministic ids (i1, i2, ...).
func (s WorldState) AllocateInteractionID() (WorldState, string) {
	n := s.NextInteractionID
	if n < 1 {
		n = 1
	}
	s.NextInteractionID = n + 1
	return s, fmt.Sprintf("i%d", n)
}

func cloneStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneBoolMap(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
