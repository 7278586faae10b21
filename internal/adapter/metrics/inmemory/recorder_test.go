package inmemory

import "testing"

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("move_to")
	r.RecordSuccess("skip")
	r.RecordDenied("lock")
	r.RecordFailure("move_to")

	s := r.Snapshot()
	if s.InvokeTotal != 4 {
		t.Fatalf("expected total 4, got %d", s.InvokeTotal)
	}
	if s.InvokeSuccess != 2 {
		t.Fatalf("expected success 2, got %d", s.InvokeSuccess)
	}
	if s.InvokeDenied != 1 {
		t.Fatalf("expected denied 1, got %d", s.InvokeDenied)
	}
	if s.InvokeFailure != 1 {
		t.Fatalf("expected failure 1, got %d", s.InvokeFailure)
	}
	if s.ByTool["move_to"] != 2 {
		t.Fatalf("expected move_to count 2, got %d", s.ByTool["move_to"])
	}
}
