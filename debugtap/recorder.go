package debugtap

import "sync"

// Recorder is the default Tap implementation: it records every
// evalSig write into a per-slot ring buffer and exposes them back out
// as a time series, the shape the UI's "getBusSeries" query needs
// (spec.md §8 scenario 7). Runtime execution is single-threaded per
// frame (spec.md §5), but a UI may query a Recorder from a different
// goroutine while frames keep advancing, so access is guarded by a
// mutex the way the teacher guards shared port/state access
// (core/port.go, cgra/cgra.go).
type Recorder struct {
	mu          sync.Mutex
	buffers     map[int]*ring
	ringCapacity int
	graph       *DebugGraph
	currentTMs  float64
	last        Snapshot
}

// NewRecorder returns an empty Recorder using the default 150-sample
// ring capacity (defaultRingCapacity).
func NewRecorder() *Recorder {
	return NewRecorderWithCapacity(defaultRingCapacity)
}

// NewRecorderWithCapacity is like NewRecorder but sizes every slot's
// ring buffer to capacity samples — the path config.RuntimeOptions'
// WithTapRingCapacity drives.
func NewRecorderWithCapacity(capacity int) *Recorder {
	return &Recorder{buffers: make(map[int]*ring), ringCapacity: capacity}
}

// Advance stamps the simulated time RecordSlotValue attaches to
// subsequent samples. The runtime calls this once at the start of
// each frame, before executing any step (spec.md §4.6 step 1).
func (r *Recorder) Advance(tMs float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currentTMs = tMs
}

// RecordSlotValue appends one sample to the slot's ring buffer. The
// runtime calls this after every evalSig write (spec.md §4.6 step 3).
func (r *Recorder) RecordSlotValue(slot int, value float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.buffers[slot]
	if !ok {
		b = newRing(r.ringCapacity)
		r.buffers[slot] = b
	}
	b.push(r.currentTMs, value)
}

// OnDebugGraph installs a freshly compiled graph and clears every
// buffer — a recompile invalidates slot numbering, so stale samples
// under old slot IDs must not survive (spec.md §4.7 "Cleared on
// recompile").
func (r *Recorder) OnDebugGraph(graph *DebugGraph) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.graph = graph
	r.buffers = make(map[int]*ring)
}

// OnSnapshot keeps the latest snapshot in the Recorder. Nothing in
// Recorder reads it back: sample timestamps come from Advance, and
// GetBusSeries reads only the ring buffers.
func (r *Recorder) OnSnapshot(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = snap
}

// GetBusSeries returns the trailing samples recorded for slot within
// the last windowMs of simulated time, oldest first.
func (r *Recorder) GetBusSeries(slot int, windowMs float64) []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.buffers[slot]
	if !ok {
		return nil
	}
	cutoff := r.currentTMs - windowMs
	var out []Sample
	for _, s := range b.series() {
		if s.TMs >= cutoff {
			out = append(out, Sample{TMs: s.TMs, Value: s.Value})
		}
	}
	return out
}

// Sample is the exported, read-only view of a recorded point.
type Sample struct {
	TMs   float64
	Value float64
}

// Graph returns the most recently installed DebugGraph, or nil before
// the first compile.
func (r *Recorder) Graph() *DebugGraph {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.graph
}
