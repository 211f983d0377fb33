package blocks

import (
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/types"
)

// EmitSig appends a SigExpr, allocates its slot, schedules the
// evalSig step that writes it, and returns the ValueRef a block's
// lower() hands back for that output. Most built-in blocks go through
// this helper (or EmitSigFromExisting) rather than making the
// builder's separate calls inline, so "allocate, then schedule, in
// that order" stays the same across block implementations;
// OscillatorDef allocates and schedules its output inline.
func EmitSig(b *ir.Builder, e ir.SigExpr, t types.CanonicalType) ValueRef {
	id := b.AddSig(e)
	slot := b.AllocSlot(t)
	b.AddStep(ir.Step{Kind: ir.StepEvalSig, SigExprRef: id, SlotRef: slot})
	return ValueRef{Kind: ValueSig, SigID: id, Slot: slot, Stride: t.Stride()}
}

// EmitEvent is EmitSig's counterpart for EventExpr nodes.
func EmitEvent(b *ir.Builder, e ir.EventExpr) ValueRef {
	t := types.NewCanonicalType(types.Bool, types.TriggerUnit, types.Extent{
		Cardinality: types.One,
		Temporality: types.Discrete,
		Binding:     types.BindingBound,
	})
	id := b.AddEvent(e)
	slot := b.AllocSlot(t)
	b.AddStep(ir.Step{Kind: ir.StepEvalEvent, EventExprRef: id, EventSlotRef: slot})
	return ValueRef{Kind: ValueEvent, EventID: id, Slot: slot, Stride: 1}
}

// EmitField is EmitSig's counterpart for FieldExpr nodes.
func EmitField(b *ir.Builder, e ir.FieldExpr, t types.CanonicalType) ValueRef {
	id := b.AddField(e)
	slot := b.AllocSlot(t)
	b.AddStep(ir.Step{Kind: ir.StepMaterialize, FieldExprRef: id, BufferSlotRef: slot})
	return ValueRef{Kind: ValueField, FieldID: id, Slot: slot, Stride: t.Stride()}
}

// StateWrite schedules a stateWrite step from a SigExpr into a state
// slot. It does not itself emit the SigExpr — callers pass the ID of
// one already built (often the same expression driving an output).
func StateWrite(b *ir.Builder, sig ir.SigExprID, state ir.StateSlot) {
	b.AddStep(ir.Step{Kind: ir.StepStateWrite, SigExprRef: sig, StateSlotRef: state})
}
