package ir

import "github.com/oscilla-sh/oscilla/types"

// Builder accumulates the four IR streams during compilation. It is
// append-only: slot and state-slot IDs are assigned monotonically and
// are never reused or renumbered, per spec.md §3's determinism
// invariant — a later compile pass may add nodes but must never
// shuffle ones a prior pass already emitted.
type Builder struct {
	sigExprs   []SigExpr
	fieldExprs []FieldExpr
	eventExprs []EventExpr
	steps      []Step

	slotMeta      []SlotMeta
	stateSlotMeta []StateSlotMeta
	stateIndex    map[string]StateSlot
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{stateIndex: make(map[string]StateSlot)}
}

// AllocSlot reserves a new value slot of the given canonical type and
// returns its ID. The slot's storage class is derived from the type;
// callers never choose storage directly.
func (b *Builder) AllocSlot(t types.CanonicalType) Slot {
	b.slotMeta = append(b.slotMeta, SlotMeta{
		Type:    t,
		Stride:  t.Stride(),
		Storage: storageClassFor(t),
	})
	return Slot(len(b.slotMeta) - 1)
}

// AllocStateSlot returns the StateSlot for stableID, allocating a new
// scalar state cell seeded with initial if one does not already exist
// for this compile. Repeated calls with the same stableID within one
// compile return the same slot — this is how a Step's stateWrite and
// a later SigStateRead end up pointing at the same cell.
func (b *Builder) AllocStateSlot(stableID string, initial float64) StateSlot {
	if existing, ok := b.stateIndex[stableID]; ok {
		return existing
	}
	b.stateSlotMeta = append(b.stateSlotMeta, StateSlotMeta{
		StableID:     stableID,
		InitialValue: initial,
	})
	slot := StateSlot(len(b.stateSlotMeta) - 1)
	b.stateIndex[stableID] = slot
	return slot
}

// AllocVectorStateSlot is the vector-valued counterpart to
// AllocStateSlot, used by blocks whose persistent state is a small
// fixed-size array rather than a scalar (e.g. a multi-tap delay line).
func (b *Builder) AllocVectorStateSlot(stableID string, initial []float64) StateSlot {
	if existing, ok := b.stateIndex[stableID]; ok {
		return existing
	}
	b.stateSlotMeta = append(b.stateSlotMeta, StateSlotMeta{
		StableID:      stableID,
		IsVector:      true,
		InitialVector: initial,
	})
	slot := StateSlot(len(b.stateSlotMeta) - 1)
	b.stateIndex[stableID] = slot
	return slot
}

// AddSig appends a SigExpr and returns its ID.
func (b *Builder) AddSig(e SigExpr) SigExprID {
	b.sigExprs = append(b.sigExprs, e)
	return SigExprID(len(b.sigExprs) - 1)
}

// AddField appends a FieldExpr and returns its ID.
func (b *Builder) AddField(e FieldExpr) FieldExprID {
	b.fieldExprs = append(b.fieldExprs, e)
	return FieldExprID(len(b.fieldExprs) - 1)
}

// AddEvent appends an EventExpr and returns its ID.
func (b *Builder) AddEvent(e EventExpr) EventExprID {
	b.eventExprs = append(b.eventExprs, e)
	return EventExprID(len(b.eventExprs) - 1)
}

// AddStep appends a Step to the schedule in emission order. Compiler
// passes are responsible for emitting steps in a valid topological
// order; Builder does not reorder or validate them.
func (b *Builder) AddStep(s Step) {
	b.steps = append(b.steps, s)
}

// PatchFieldExtent backfills a FieldBroadcast node's Instance/Count
// once its true domain is known. A broadcast field is lowered from a
// scalar signal alone — its producer block has no sibling field in
// scope to unify against — so it mints a placeholder Count of 0 and
// waits for a later pass to patch it in, the same way an assembler
// back-patches a forward jump once the label's address is resolved.
// It is a no-op once a node already carries a nonzero Count, so a
// node already unified (or never needing it) is never clobbered.
func (b *Builder) PatchFieldExtent(id FieldExprID, instance types.InstanceRef, count int) {
	if b.fieldExprs[id].Count != 0 {
		return
	}
	b.fieldExprs[id].Instance = instance
	b.fieldExprs[id].Count = count
}

// Sig, Field, and Event give read access to already-emitted nodes,
// used by later lowering code (block lower() functions, and the
// compiler's instance unification and broadcast backfill) that needs
// to inspect what an ID refers to.
func (b *Builder) Sig(id SigExprID) SigExpr      { return b.sigExprs[id] }
func (b *Builder) Field(id FieldExprID) FieldExpr { return b.fieldExprs[id] }
func (b *Builder) Event(id EventExprID) EventExpr { return b.eventExprs[id] }

// SlotType returns the canonical type a slot was allocated with.
func (b *Builder) SlotType(s Slot) types.CanonicalType {
	return b.slotMeta[s].Type
}

// Build finalizes the accumulated streams into an immutable
// IRProgram. The Builder remains usable afterward (callers that want
// an immutable snapshot should stop mutating it).
func (b *Builder) Build(timeModel TimeModel) IRProgram {
	return IRProgram{
		SigExprs:      append([]SigExpr(nil), b.sigExprs...),
		FieldExprs:    append([]FieldExpr(nil), b.fieldExprs...),
		EventExprs:    append([]EventExpr(nil), b.eventExprs...),
		Steps:         append([]Step(nil), b.steps...),
		SlotMeta:      append([]SlotMeta(nil), b.slotMeta...),
		StateSlotMeta: append([]StateSlotMeta(nil), b.stateSlotMeta...),
		TimeModel:     timeModel,
	}
}
