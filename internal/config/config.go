// Package config loads a household scenario from YAML: the room graph, the
// actor roster and the starting resources. An empty path yields the built-in
// two-sibling scenario.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"homestead/internal/domain/house"
	"homestead/internal/domain/sim"
)

type Config struct {
	Rooms            []RoomSpec  `yaml:"rooms"`
	Edges            []EdgeSpec  `yaml:"edges"`
	Actors           []ActorSpec `yaml:"actors"`
	TurnOrder        []string    `yaml:"turn_order,omitempty"`
	TalkMaxExchanges int         `yaml:"talk_max_exchanges,omitempty"`
}

type RoomSpec struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Objects     []string `yaml:"objects,omitempty"`
	Lockable    bool     `yaml:"lockable"`
	Locked      bool     `yaml:"locked"`
}

type EdgeSpec struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type ActorSpec struct {
	ID          string         `yaml:"id"`
	DisplayName string         `yaml:"display_name,omitempty"`
	Kind        string         `yaml:"kind,omitempty"`
	Start       string         `yaml:"start"`
	OwnedRooms  []string       `yaml:"owned_rooms,omitempty"`
	Permissions []string       `yaml:"permissions,omitempty"`
	Counters    map[string]int `yaml:"counters,omitempty"`
}

func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	cfg = Config{}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("scenario.yaml: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("scenario.yaml: %w", err)
	}
	return cfg, nil
}

// defaults mirrors the built-in house and roster so a config-driven start is
// indistinguishable from the hardcoded one.
func defaults() Config {
	h := house.Default()
	st := sim.MakeInitialState()

	var rooms []RoomSpec
	for _, id := range sortedRoomIDs(h) {
		room := h.Rooms[id]
		locked, lockable := st.RoomLocked[id]
		rooms = append(rooms, RoomSpec{
			ID:          room.ID,
			Name:        room.Name,
			Description: room.Description,
			Objects:     append([]string(nil), room.Objects...),
			Lockable:    lockable,
			Locked:      locked,
		})
	}

	var edges []EdgeSpec
	for _, src := range sortedRoomIDs(h) {
		dsts := make([]string, 0, len(h.Edges[src]))
		for dst := range h.Edges[src] {
			dsts = append(dsts, dst)
		}
		sort.Strings(dsts)
		for _, dst := range dsts {
			edges = append(edges, EdgeSpec{From: src, To: dst})
		}
	}

	var actors []ActorSpec
	for _, id := range st.TurnOrder {
		actor := st.Actors[id]
		actors = append(actors, ActorSpec{
			ID:          actor.ID,
			DisplayName: actor.DisplayName,
			Kind:        string(actor.Kind),
			Start:       st.Locations[id],
			OwnedRooms:  sortedSetKeys(actor.OwnedRooms),
			Permissions: sortedSetKeys(actor.Permissions),
			Counters:    cloneCounters(st.ActorCounters[id]),
		})
	}

	return Config{
		Rooms:            rooms,
		Edges:            edges,
		Actors:           actors,
		TurnOrder:        append([]string(nil), st.TurnOrder...),
		TalkMaxExchanges: sim.DefaultMaxExchanges,
	}
}

// Normalize fills derivable fields: symmetric edges, actor kinds, display
// names and the turn order.
func (c *Config) Normalize() {
	if c == nil {
		return
	}
	seen := map[[2]string]bool{}
	for _, e := range c.Edges {
		seen[[2]string{e.From, e.To}] = true
	}
	for _, e := range c.Edges {
		back := [2]string{e.To, e.From}
		if !seen[back] {
			seen[back] = true
			c.Edges = append(c.Edges, EdgeSpec{From: e.To, To: e.From})
		}
	}
	for i := range c.Actors {
		if strings.TrimSpace(c.Actors[i].Kind) == "" {
			c.Actors[i].Kind = string(sim.ActorNPC)
		}
		if strings.TrimSpace(c.Actors[i].DisplayName) == "" {
			c.Actors[i].DisplayName = titleCase(c.Actors[i].ID)
		}
		if strings.TrimSpace(c.Actors[i].Start) == "" && len(c.Rooms) > 0 {
			c.Actors[i].Start = c.Rooms[0].ID
		}
	}
	if len(c.TurnOrder) == 0 {
		for _, a := range c.Actors {
			c.TurnOrder = append(c.TurnOrder, a.ID)
		}
	}
	if c.TalkMaxExchanges <= 0 {
		c.TalkMaxExchanges = sim.DefaultMaxExchanges
	}
}

func (c *Config) Validate() error {
	if len(c.Rooms) == 0 {
		return fmt.Errorf("no rooms defined")
	}
	rooms := map[string]bool{}
	for _, r := range c.Rooms {
		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("room with empty id")
		}
		if rooms[r.ID] {
			return fmt.Errorf("duplicate room %q", r.ID)
		}
		rooms[r.ID] = true
	}
	for _, e := range c.Edges {
		if !rooms[e.From] || !rooms[e.To] {
			return fmt.Errorf("edge %q -> %q references unknown room", e.From, e.To)
		}
	}
	if len(c.Actors) == 0 {
		return fmt.Errorf("no actors defined")
	}
	actors := map[string]bool{}
	for _, a := range c.Actors {
		if strings.TrimSpace(a.ID) == "" {
			return fmt.Errorf("actor with empty id")
		}
		if actors[a.ID] {
			return fmt.Errorf("duplicate actor %q", a.ID)
		}
		actors[a.ID] = true
		if !rooms[a.Start] {
			return fmt.Errorf("actor %q starts in unknown room %q", a.ID, a.Start)
		}
		for _, owned := range a.OwnedRooms {
			if !rooms[owned] {
				return fmt.Errorf("actor %q owns unknown room %q", a.ID, owned)
			}
		}
	}
	if len(c.TurnOrder) == 0 {
		return fmt.Errorf("empty turn order")
	}
	for _, id := range c.TurnOrder {
		if !actors[id] {
			return fmt.Errorf("turn order references unknown actor %q", id)
		}
	}
	return nil
}

// House materializes the static room graph.
func (c Config) House() house.House {
	rooms := make(map[string]house.Room, len(c.Rooms))
	for _, r := range c.Rooms {
		rooms[r.ID] = house.Room{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			Objects:     append([]string(nil), r.Objects...),
		}
	}
	edges := make(map[string]map[string]bool, len(c.Rooms))
	for _, e := range c.Edges {
		if edges[e.From] == nil {
			edges[e.From] = map[string]bool{}
		}
		edges[e.From][e.To] = true
	}
	return house.House{Rooms: rooms, Edges: edges}
}

// InitialState materializes turn zero of the scenario.
func (c Config) InitialState() sim.WorldState {
	locations := make(map[string]string, len(c.Actors))
	actors := make(map[string]sim.Actor, len(c.Actors))
	counters := make(map[string]map[string]int, len(c.Actors))
	flags := make(map[string]map[string]any, len(c.Actors))
	for _, a := range c.Actors {
		locations[a.ID] = a.Start
		owned := make(map[string]bool, len(a.OwnedRooms))
		for _, id := range a.OwnedRooms {
			owned[id] = true
		}
		perms := make(map[string]bool, len(a.Permissions))
		for _, p := range a.Permissions {
			perms[p] = true
		}
		actors[a.ID] = sim.Actor{
			ID:          a.ID,
			DisplayName: a.DisplayName,
			Kind:        sim.ActorKind(a.Kind),
			OwnedRooms:  owned,
			Permissions: perms,
		}
		counters[a.ID] = cloneCounters(a.Counters)
		flags[a.ID] = map[string]any{sim.FlagCookedThisTurn: false}
	}

	locked := map[string]bool{}
	for _, r := range c.Rooms {
		if r.Lockable {
			locked[r.ID] = r.Locked
		}
	}

	return sim.WorldState{
		Locations:         locations,
		RoomLocked:        locked,
		Turn:              0,
		TurnOrder:         append([]string(nil), c.TurnOrder...),
		TurnIndex:         0,
		Actors:            actors,
		CompletedTasks:    map[string]bool{},
		ActorCounters:     counters,
		ActorFlags:        flags,
		Interactions:      map[string]sim.Interaction{},
		TalkMaxExchanges:  c.TalkMaxExchanges,
		NextInteractionID: 1,
		NextTaskID:        1,
	}
}

func sortedRoomIDs(h house.House) []string {
	out := make([]string, 0, len(h.Rooms))
	for id := range h.Rooms {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func sortedSetKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func titleCase(id string) string {
	if id == "" {
		return id
	}
	return strings.ToUpper(id[:1]) + id[1:]
}

func cloneCounters(in map[string]int) map[string]int {
	if in == nil {
		return map[string]int{}
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
