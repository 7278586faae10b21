package house

import "fmt"

// Room is a static description of one space in the house. Rooms never change
// at runtime; mutable facts (locks, occupants) live in the world state.
type Room struct {
	ID          string
	Name        string
	Description string
	Objects     []string
}

// House is the immutable room graph. Edges are stored directed but every
// default layout keeps them symmetric; adjacency controls legal movement.
type House struct {
	Rooms map[string]Room
	Edges map[string]map[string]bool
}

func (h House) HasRoom(id string) bool {
	_, ok := h.Rooms[id]
	return ok
}

// Adjacent reports whether dst can be reached from src in one move.
func (h House) Adjacent(src, dst string) bool {
	return h.Edges[src][dst]
}

// Neighbors returns the rooms reachable from id, unsorted.
func (h House) Neighbors(id string) []string {
	out := make([]string, 0, len(h.Edges[id]))
	for dst := range h.Edges[id] {
		out = append(out, dst)
	}
	return out
}

// Validate checks that every edge endpoint names a known room.
func (h House) Validate() error {
	if len(h.Rooms) == 0 {
		return fmt.Errorf("house has no rooms")
	}
	for src, dsts := range h.Edges {
		if !h.HasRoom(src) {
			return fmt.Errorf("edge source %q is not a room", src)
		}
		for dst := range dsts {
			if !h.HasRoom(dst) {
				return fmt.Errorf("edge %q -> %q targets unknown room", src, dst)
			}
		}
	}
	return nil
}
