package runtime_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/render"
	"github.com/oscilla-sh/oscilla/runtime"
	"github.com/oscilla-sh/oscilla/types"
)

func floatType() types.CanonicalType {
	return types.NewCanonicalType(types.Float, types.NoneUnit, types.DefaultExtent())
}

var _ = Describe("ExecuteFrame", func() {
	It("evaluates a constant signal into its slot", func() {
		b := ir.NewBuilder()
		c := b.AddSig(ir.SigExpr{Kind: ir.SigConst, Const: 42})
		slot := b.AllocSlot(floatType())
		b.AddStep(ir.Step{Kind: ir.StepEvalSig, SigExprRef: c, SlotRef: slot})
		program := b.Build(ir.TimeModel{Kind: "infinite"})

		rt := runtime.CreateRuntime(program)
		rt.ExecuteFrame(0)

		Expect(rt.ReadSlot(render.SlotRef{Slot: int(slot)})).To(Equal([]float64{42}))
	})

	It("computes sin(2*pi*phaseA) for a 1Hz oscillator wired straight off phaseA", func() {
		b := ir.NewBuilder()
		phaseA := b.AddSig(ir.SigExpr{Kind: ir.SigTime, TimeAxis: ir.TimeAxisPhaseA})
		twoPi := b.AddSig(ir.SigExpr{Kind: ir.SigConst, Const: 2 * 3.141592653589793})
		scaled := b.AddSig(ir.SigExpr{Kind: ir.SigZip, Fn: string(ir.FnMul), Args: []ir.SigExprID{phaseA, twoPi}})
		sined := b.AddSig(ir.SigExpr{Kind: ir.SigMap, Fn: string(ir.FnSin), Args: []ir.SigExprID{scaled}})
		slot := b.AllocSlot(floatType())
		b.AddStep(ir.Step{Kind: ir.StepEvalSig, SigExprRef: sined, SlotRef: slot})
		program := b.Build(ir.TimeModel{Kind: "infinite"})

		rt := runtime.CreateRuntime(program)
		rt.ExecuteFrame(250) // phaseA = 0.25 -> sin(pi/2) = 1

		out := rt.ReadSlot(render.SlotRef{Slot: int(slot)})
		Expect(out[0]).To(BeNumerically("~", 1.0, 1e-9))
	})

	It("re-evaluates event scalars fresh every frame rather than latching a stale fired state", func() {
		b := ir.NewBuilder()
		fired := b.AddEvent(ir.EventExpr{Kind: ir.EventConst, ConstFires: true})
		eventSlot := b.AllocSlot(types.NewCanonicalType(types.Bool, types.TriggerUnit, types.Extent{
			Cardinality: types.One, Temporality: types.Discrete, Binding: types.BindingBound,
		}))
		b.AddStep(ir.Step{Kind: ir.StepEvalEvent, EventExprRef: fired, EventSlotRef: eventSlot})
		program := b.Build(ir.TimeModel{Kind: "infinite"})

		rt := runtime.CreateRuntime(program)
		rt.ExecuteFrame(0)
		v1 := rt.ReadSlot(render.SlotRef{Slot: int(eventSlot)})
		Expect(v1[0]).To(Equal(1.0))

		rt.ExecuteFrame(16)
		v2 := rt.ReadSlot(render.SlotRef{Slot: int(eventSlot)})
		Expect(v2[0]).To(Equal(1.0), "EventConst refires every frame by design")
	})

	It("reads state before this frame's stateWrite so reads observe the previous frame's value", func() {
		b := ir.NewBuilder()
		stateSlot := b.AllocStateSlot("counter#held", 0)
		read := b.AddSig(ir.SigExpr{Kind: ir.SigStateRead, StateSlotRef: stateSlot})
		one := b.AddSig(ir.SigExpr{Kind: ir.SigConst, Const: 1})
		incremented := b.AddSig(ir.SigExpr{Kind: ir.SigZip, Fn: string(ir.FnAdd), Args: []ir.SigExprID{read, one}})
		outSlot := b.AllocSlot(floatType())

		b.AddStep(ir.Step{Kind: ir.StepEvalSig, SigExprRef: read, SlotRef: outSlot})
		b.AddStep(ir.Step{Kind: ir.StepStateWrite, SigExprRef: incremented, StateSlotRef: stateSlot})
		program := b.Build(ir.TimeModel{Kind: "infinite"})

		rt := runtime.CreateRuntime(program)

		rt.ExecuteFrame(0)
		Expect(rt.ReadSlot(render.SlotRef{Slot: int(outSlot)})[0]).To(Equal(0.0))

		rt.ExecuteFrame(16)
		Expect(rt.ReadSlot(render.SlotRef{Slot: int(outSlot)})[0]).To(Equal(1.0))

		rt.ExecuteFrame(32)
		Expect(rt.ReadSlot(render.SlotRef{Slot: int(outSlot)})[0]).To(Equal(2.0))
	})

	It("materializes a grid field's positions across its instance count", func() {
		b := ir.NewBuilder()
		anchor := b.AddSig(ir.SigExpr{Kind: ir.SigConst, Const: 0})
		fieldType := types.NewCanonicalType(types.Vec2, types.PositionWorld, types.Extent{
			Cardinality: types.Many(types.InstanceRef{DomainType: "Grid", InstanceID: "grid-1"}),
			Temporality: types.Continuous,
			Binding:     types.BindingBound,
		})
		fe := b.AddField(ir.FieldExpr{Kind: ir.FieldMaterialize, From: anchor, Count: 4, Layout: "grid"})
		slot := b.AllocSlot(fieldType)
		b.AddStep(ir.Step{Kind: ir.StepMaterialize, FieldExprRef: fe, BufferSlotRef: slot})
		program := b.Build(ir.TimeModel{Kind: "infinite"})

		rt := runtime.CreateRuntime(program)
		rt.ExecuteFrame(0)

		data := rt.ReadSlot(render.SlotRef{Slot: int(slot)})
		Expect(data).To(HaveLen(8)) // 4 instances * stride 2
	})

	It("bounds the runtime clock for a bounded/looped TimeModel", func() {
		b := ir.NewBuilder()
		tMs := b.AddSig(ir.SigExpr{Kind: ir.SigTime, TimeAxis: ir.TimeAxisTMs})
		slot := b.AllocSlot(floatType())
		b.AddStep(ir.Step{Kind: ir.StepEvalSig, SigExprRef: tMs, SlotRef: slot})
		program := b.Build(ir.TimeModel{Kind: "looped", DurationMs: 1000})

		rt := runtime.CreateRuntime(program)
		rt.ExecuteFrame(1500)

		Expect(rt.ReadSlot(render.SlotRef{Slot: int(slot)})[0]).To(Equal(500.0))
	})
})

var _ = Describe("MigrateState", func() {
	It("preserves a state cell's value across a recompile when its stableStateId survives", func() {
		oldB := ir.NewBuilder()
		oldState := oldB.AllocStateSlot("osc-1#phase", 0)
		oldRead := oldB.AddSig(ir.SigExpr{Kind: ir.SigStateRead, StateSlotRef: oldState})
		oldSlot := oldB.AllocSlot(floatType())
		oldB.AddStep(ir.Step{Kind: ir.StepEvalSig, SigExprRef: oldRead, SlotRef: oldSlot})
		five := oldB.AddSig(ir.SigExpr{Kind: ir.SigConst, Const: 5})
		oldB.AddStep(ir.Step{Kind: ir.StepStateWrite, SigExprRef: five, StateSlotRef: oldState})
		oldProgram := oldB.Build(ir.TimeModel{Kind: "infinite"})

		rt := runtime.CreateRuntime(oldProgram)
		rt.ExecuteFrame(0)
		rt.ExecuteFrame(16) // state now holds 5, written on frame 0

		newB := ir.NewBuilder()
		// A block was inserted before the oscillator in the new patch,
		// so its stable id's StateSlot index shifts from 0 to 1 — but
		// the stableStateId string itself is unchanged.
		_ = newB.AllocStateSlot("unrelated-block#held", 0)
		newState := newB.AllocStateSlot("osc-1#phase", 0)
		newRead := newB.AddSig(ir.SigExpr{Kind: ir.SigStateRead, StateSlotRef: newState})
		newSlot := newB.AllocSlot(floatType())
		newB.AddStep(ir.Step{Kind: ir.StepEvalSig, SigExprRef: newRead, SlotRef: newSlot})
		newProgram := newB.Build(ir.TimeModel{Kind: "infinite"})

		rt.MigrateState(newProgram)
		rt.ExecuteFrame(32)

		Expect(rt.ReadSlot(render.SlotRef{Slot: int(newSlot)})[0]).To(Equal(5.0))
	})

	It("seeds a brand new stableStateId from its initial value", func() {
		oldProgram := ir.NewBuilder().Build(ir.TimeModel{Kind: "infinite"})

		newB := ir.NewBuilder()
		newState := newB.AllocStateSlot("fresh#held", 7)
		newRead := newB.AddSig(ir.SigExpr{Kind: ir.SigStateRead, StateSlotRef: newState})
		newSlot := newB.AllocSlot(floatType())
		newB.AddStep(ir.Step{Kind: ir.StepEvalSig, SigExprRef: newRead, SlotRef: newSlot})
		newProgram := newB.Build(ir.TimeModel{Kind: "infinite"})

		rt := runtime.CreateRuntime(oldProgram)
		rt.MigrateState(newProgram)
		rt.ExecuteFrame(0)

		Expect(rt.ReadSlot(render.SlotRef{Slot: int(newSlot)})[0]).To(Equal(7.0))
	})
})
