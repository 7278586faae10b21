package sqlite

import (
	"context"
	"testing"

	"homestead/internal/domain/sim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:", "session-test")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecentPerceived(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	events := []sim.Event{
		sim.NewEvent(0, "kevin", "move", map[string]any{"src": "living_room", "dst": "kitchen"}, true, "moved"),
		sim.NewEvent(1, "anna", "talk_request", map[string]any{"target": "kevin"}, true, ""),
	}
	if err := store.RecordPerceived(ctx, "anna", events); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := store.RecentPerceived(ctx, "anna", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("perceived = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].Type != "talk_request" || got[1].Type != "move" {
		t.Fatalf("unexpected order: %s, %s", got[0].Type, got[1].Type)
	}
	if got[1].Args["dst"] != "kitchen" {
		t.Fatalf("event args lost in round trip: %v", got[1].Args)
	}

	if other, err := store.RecentPerceived(ctx, "kevin", 10); err != nil || len(other) != 0 {
		t.Fatalf("kevin should have no perceived events, got %d (%v)", len(other), err)
	}
}

func TestEpisodesAndSemanticMemory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.AddEpisode(ctx, "anna", 3, "Kevin asked me to wash dishes; I accepted."); err != nil {
		t.Fatalf("episode: %v", err)
	}
	if err := store.AddSemantic(ctx, "anna", 3, "other_npc", "kevin", "Kevin tends to ask for kitchen chores."); err != nil {
		t.Fatalf("semantic: %v", err)
	}
	if err := store.AddSemantic(ctx, "anna", 5, "other_npc", "kevin", "Kevin locked his room today."); err != nil {
		t.Fatalf("semantic: %v", err)
	}

	facts, err := store.SemanticBySubject(ctx, "anna", "other_npc", "kevin")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(facts) != 2 {
		t.Fatalf("facts = %d, want 2", len(facts))
	}
	if facts[0] != "Kevin locked his room today." {
		t.Fatalf("newest fact first, got %q", facts[0])
	}
}
