package runtime

import (
	"math"

	"github.com/oscilla-sh/oscilla/ir"
)

// StateCell holds one persistent state slot's value, surviving a hot
// recompile via MigrateState (spec.md §3 "Runtime state" lifecycle).
type StateCell struct {
	Value    float64
	Vector   []float64
	IsVector bool
}

func stateCellFromMeta(meta ir.StateSlotMeta) *StateCell {
	if meta.IsVector {
		vec := make([]float64, len(meta.InitialVector))
		copy(vec, meta.InitialVector)
		return &StateCell{Vector: vec, IsVector: true}
	}
	return &StateCell{Value: meta.InitialValue}
}

// RuntimeState is the pre-allocated backing store an IRProgram reads
// and writes every frame: a flat f64 array for scalar slots, one
// Buffer per typed-array (field) slot, and a state-slot array for
// persistent cells. Nothing here is allocated during ExecuteFrame —
// all shapes are known at compile time from SlotMeta (spec.md §5:
// "ValueStore.f64 and typed arrays are pre-allocated at compile time").
type RuntimeState struct {
	values  []float64 // StorageF64 slots, stride-packed at offsets[slot]
	offsets []int     // per-slot byte (component) offset into values

	buffers map[ir.Slot]*Buffer // StorageTypedArray slots
	pool    *BufferPool

	events []float64 // StorageUint8 slots, stored as 0.0/1.0

	state []*StateCell // one per StateSlot, index == int(StateSlot)

	external map[string]float64 // SigExternal host-provided inputs

	wrapPrev map[ir.EventExprID]float64 // last frame's phase sample, per EventWrap node

	tMs    float64
	lastMs float64
	dt     float64
}

// NewRuntimeState allocates a RuntimeState sized for program, acquiring
// field buffers from pool and seeding state cells from
// program.StateSlotMeta's initial values.
func NewRuntimeState(program ir.IRProgram, pool *BufferPool) *RuntimeState {
	s := &RuntimeState{
		offsets:  make([]int, len(program.SlotMeta)),
		buffers:  make(map[ir.Slot]*Buffer),
		pool:     pool,
		events:   make([]float64, len(program.SlotMeta)),
		state:    make([]*StateCell, len(program.StateSlotMeta)),
		external: make(map[string]float64),
		wrapPrev: make(map[ir.EventExprID]float64),
	}

	offset := 0
	for i, meta := range program.SlotMeta {
		if meta.Storage != ir.StorageF64 {
			continue
		}
		s.offsets[i] = offset
		offset += meta.Stride
	}
	s.values = make([]float64, offset)

	for i, meta := range program.StateSlotMeta {
		s.state[i] = stateCellFromMeta(meta)
	}

	allocateFieldBuffers(s, program)

	return s
}

// allocateFieldBuffers pre-allocates a Buffer for every
// StorageTypedArray slot a materialize or projection step targets,
// sized from the FieldExpr/ProjectionStep's compile-time known count.
func allocateFieldBuffers(s *RuntimeState, program ir.IRProgram) {
	for _, step := range program.Steps {
		switch step.Kind {
		case ir.StepMaterialize:
			fe := program.FieldExprs[step.FieldExprRef]
			s.ensureBuffer(program, step.BufferSlotRef, fe.Count)
		case ir.StepProjection:
			s.ensureBuffer(program, step.Projection.OutputSlot, step.Projection.InstanceCount)
		}
	}
}

func (s *RuntimeState) ensureBuffer(program ir.IRProgram, slot ir.Slot, count int) {
	if _, ok := s.buffers[slot]; ok {
		return
	}
	meta := program.SlotMeta[slot]
	s.buffers[slot] = s.pool.Acquire(meta.Type.Payload, count)
}

// ReadScalar returns the first component of a StorageF64 slot.
func (s *RuntimeState) ReadScalar(slot ir.Slot) float64 {
	return s.values[s.offsets[slot]]
}

// ReadVec returns all stride components of a StorageF64 slot.
func (s *RuntimeState) ReadVec(slot ir.Slot, stride int) []float64 {
	off := s.offsets[slot]
	return s.values[off : off+stride]
}

// WriteVec copies v's components into slot, starting at the slot's
// offset. It neither pads nor truncates: len(v) components are written,
// so v is expected to have exactly the slot's stride.
func (s *RuntimeState) WriteVec(slot ir.Slot, v []float64) {
	off := s.offsets[slot]
	copy(s.values[off:off+len(v)], v)
}

// ReadEvent returns a StorageUint8 slot's current 0.0/1.0 value.
func (s *RuntimeState) ReadEvent(slot ir.Slot) float64 { return s.events[slot] }

// WriteEvent ORs fired into slot's current value — events are
// monotonic-within-frame (spec.md §4.6: "multiple producers targeting
// the same event slot OR together").
func (s *RuntimeState) WriteEvent(slot ir.Slot, fired bool) {
	if fired {
		s.events[slot] = 1.0
	}
}

// ZeroEvents resets every event scalar to 0 at the start of a frame
// (spec.md §4.6 step 2).
func (s *RuntimeState) ZeroEvents() {
	for i := range s.events {
		s.events[i] = 0
	}
}

// Buffer returns the materialized backing storage for a field slot.
func (s *RuntimeState) Buffer(slot ir.Slot) *Buffer { return s.buffers[slot] }

// StateRead returns the scalar value of a state cell.
func (s *RuntimeState) StateRead(slot ir.StateSlot) float64 {
	return s.state[slot].Value
}

// StateWrite sets the scalar value of a state cell. Steps are
// scheduled so every stateWrite's read side observes the PREVIOUS
// frame's value (spec.md §4.6: "reads observe last frame's write").
func (s *RuntimeState) StateWrite(slot ir.StateSlot, v float64) {
	s.state[slot].Value = v
}

// StateReadVector returns the vector value of a vector state cell.
func (s *RuntimeState) StateReadVector(slot ir.StateSlot) []float64 {
	return s.state[slot].Vector
}

// StateWriteVector sets the vector value of a vector state cell.
func (s *RuntimeState) StateWriteVector(slot ir.StateSlot, v []float64) {
	cell := s.state[slot]
	if len(cell.Vector) != len(v) {
		cell.Vector = make([]float64, len(v))
	}
	copy(cell.Vector, v)
}

// SetExternal installs a host-provided input value, read back through
// SigExternal expressions (spec.md §6 "External inputs").
func (s *RuntimeState) SetExternal(key string, value float64) {
	s.external[key] = value
}

func (s *RuntimeState) readExternal(key string) float64 {
	return s.external[key]
}

// AdvanceTime updates the time axes for this frame; tMs is wrapped
// against the program's TimeModel when bounded/looped.
func (s *RuntimeState) AdvanceTime(nowMs float64, model ir.TimeModel) {
	wrapped := nowMs
	bounded := model.Kind != "infinite" && model.DurationMs > 0
	if bounded {
		wrapped = wrapMod(nowMs, model.DurationMs)
	}
	s.dt = wrapped - s.lastMs
	if bounded && s.dt < 0 {
		// looped back past the window boundary: dt is the small step
		// across the seam, not the large backward jump.
		s.dt = wrapMod(wrapped-s.lastMs, model.DurationMs)
	}
	s.lastMs = wrapped
	s.tMs = wrapped
}

func wrapMod(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	return r
}

// releaseBuffers returns every field buffer to pool, used when
// migrating to a new program whose slot layout supersedes this one.
func (s *RuntimeState) releaseBuffers() {
	for _, buf := range s.buffers {
		s.pool.Release(buf)
	}
}
