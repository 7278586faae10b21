package house

// Default builds the five-room household layout: a living-room hub with the
// kitchen/dining loop and two private bedrooms off the hub.
func Default() House {
	rooms := map[string]Room{
		"living_room": {
			ID:   "living_room",
			Name: "Living Room",
			Description: "A cramped but functional living room. A sagging couch faces a small TV. " +
				"There's a faint hum from a router that's holding the whole universe together.",
			Objects: []string{"couch", "coffee_table", "tv", "router", "window_curtains"},
		},
		"dining_room": {
			ID:   "dining_room",
			Name: "Dining Room",
			Description: "A modest dining room with a table that looks like it's seen too many 'serious talks'. " +
				"Chairs slightly misaligned, like someone stood up mid-conversation.",
			Objects: []string{"dining_table", "chairs", "placemats", "cabinet"},
		},
		"kitchen": {
			ID:   "kitchen",
			Name: "Kitchen",
			Description: "A practical kitchen. Clean enough to cook, messy enough to be believable. " +
				"There's a rice cooker that feels like a national infrastructure asset.",
			Objects: []string{"rice_cooker", "sink", "fridge", "counter", "knife_rack"},
		},
		"anna_room": {
			ID:   "anna_room",
			Name: "Anna's Room",
			Description: "Anna's room is neat in a deliberate way, like order is a defense mechanism. " +
				"Soft lighting, a desk, and a quiet sense of 'don't touch my stuff'.",
			Objects: []string{"desk", "lamp", "bookshelf", "bed", "closet"},
		},
		"kevin_room": {
			ID:   "kevin_room",
			Name: "Kevin's Room",
			Description: "Kevin's room has the energy of unfinished projects. " +
				"A chair with clothes on it. A desk that's trying its best.",
			Objects: []string{"desk", "chair", "laundry_pile", "bed", "power_strip"},
		},
	}

	edges := map[string]map[string]bool{
		"living_room": edgeSet("dining_room", "kitchen", "kevin_room", "anna_room"),
		"dining_room": edgeSet("living_room", "kitchen"),
		"kitchen":     edgeSet("living_room", "dining_room"),
		"anna_room":   edgeSet("living_room"),
		"kevin_room":  edgeSet("living_room"),
	}

	return House{Rooms: rooms, Edges: edges}
}

func edgeSet(ids ...string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}
