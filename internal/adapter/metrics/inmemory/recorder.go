package inmemory

import "sync"

type Snapshot struct {
	InvokeTotal   uint64            `json:"invoke_total"`
	InvokeSuccess uint64            `json:"invoke_success"`
	InvokeDenied  uint64            `json:"invoke_denied"`
	InvokeFailure uint64            `json:"invoke_failure"`
	ByTool        map[string]uint64 `json:"by_tool"`
}

type Recorder struct {
	mu      sync.Mutex
	success uint64
	denied  uint64
	failure uint64
	byTool  map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byTool: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(tool string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byTool[tool]++
}

func (r *Recorder) RecordDenied(tool string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.denied++
	r.byTool[tool]++
}

func (r *Recorder) RecordFailure(tool string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
	r.byTool[tool]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		InvokeSuccess: r.success,
		InvokeDenied:  r.denied,
		InvokeFailure: r.failure,
		InvokeTotal:   r.success + r.denied + r.failure,
		ByTool:        make(map[string]uint64, len(r.byTool)),
	}
	for k, v := range r.byTool {
		out.ByTool[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
