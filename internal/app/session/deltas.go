package session

import (
	"fmt"
	"sort"

	"homestead/internal/app/ports"
	"homestead/internal/domain/sim"
)

// deriveDeltas diffs two snapshots into key-level change records. Only
// scopes the engine actually mutates are diffed: occupancy, locks, counters,
// completed tasks, interaction statuses and the turn cursor.
func deriveDeltas(before, after sim.WorldState) []ports.StateDelta {
	var out []ports.StateDelta

	for _, actor := range sortedStringKeys(after.Locations) {
		if before.Locations[actor] != after.Locations[actor] {
			out = append(out, ports.StateDelta{
				Turn:  after.Turn,
				Scope: "location",
				Owner: actor,
				Key:   "room_id",
				Op:    "set",
				Value: after.Locations[actor],
			})
		}
	}

	for _, roomID := range sortedBoolKeys(after.RoomLocked) {
		if before.RoomLocked[roomID] != after.RoomLocked[roomID] {
			out = append(out, ports.StateDelta{
				Turn:  after.Turn,
				Scope: "lock",
				Owner: roomID,
				Key:   "locked",
				Op:    "set",
				Value: fmt.Sprintf("%t", after.RoomLocked[roomID]),
			})
		}
	}

	for _, actor := range sortedNestedKeys(after.ActorCounters) {
		for _, key := range sortedIntKeys(after.ActorCounters[actor]) {
			if before.ActorCounters[actor][key] != after.ActorCounters[actor][key] {
				out = append(out, ports.StateDelta{
					Turn:  after.Turn,
					Scope: "counter",
					Owner: actor,
					Key:   key,
					Op:    "set",
					Value: fmt.Sprintf("%d", after.ActorCounters[actor][key]),
				})
			}
		}
	}

	for _, taskID := range sortedBoolKeys(after.CompletedTasks) {
		if !before.CompletedTasks[taskID] && after.CompletedTasks[taskID] {
			out = append(out, ports.StateDelta{
				Turn:  after.Turn,
				Scope: "task",
				Owner: "",
				Key:   taskID,
				Op:    "set",
				Value: "done",
			})
		}
	}

	for _, id := range sortedInteractionKeys(after.Interactions) {
		if before.Interactions[id].Status != after.Interactions[id].Status {
			out = append(out, ports.StateDelta{
				Turn:  after.Turn,
				Scope: "interaction",
				Owner: id,
				Key:   "status",
				Op:    "set",
				Value: string(after.Interactions[id].Status),
			})
		}
	}

	if before.Turn != after.Turn || before.TurnIndex != after.TurnIndex {
		out = append(out, ports.StateDelta{
			Turn:  after.Turn,
			Scope: "turn",
			Owner: "",
			Key:   "cursor",
			Op:    "set",
			Value: fmt.Sprintf("%d/%d", after.Turn, after.TurnIndex),
		})
	}

	return out
}

func sortedStringKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedBoolKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedIntKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedNestedKeys(m map[string]map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedInteractionKeys(m map[string]sim.Interaction) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
