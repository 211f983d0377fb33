package blocks

import (
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/types"
)

// OscillatorDef is the canonical state block: it accumulates a
// 0..1 phase at `rate` cycles per millisecond-of-dt, wrapping with
// `mod`, and persists the phase across frames via stateWrite/
// stateRead keyed by stableStateId (spec.md §4.3 "State blocks obtain
// a persistent state slot via ctx.b.allocStateSlot(...)").
func OscillatorDef() BlockDef {
	return BlockDef{
		Type: "Oscillator",
		Inputs: []PortDecl{
			{ID: "rate", Payload: types.Float, Unit: types.NoneUnit},
		},
		Outputs: []PortDecl{
			{ID: "out", Payload: types.Float, Unit: types.AnglePhase01},
		},
		Capability: CapabilityState,
		Lower: func(args LowerArgs) (LowerResult, error) {
			b := args.Ctx.B
			rate := args.InputsByID["rate"]

			stateSlot := b.AllocStateSlot(ir.StableStateID(args.Ctx.InstanceID, "phase"), 0)
			phaseRead := b.AddSig(ir.SigExpr{Kind: ir.SigStateRead, StateSlotRef: stateSlot})
			dt := b.AddSig(ir.SigExpr{Kind: ir.SigTime, TimeAxis: ir.TimeAxisDt})
			delta := b.AddSig(ir.SigExpr{Kind: ir.SigZip, Fn: string(ir.FnMul), Args: []ir.SigExprID{rate.SigID, dt}})
			sum := b.AddSig(ir.SigExpr{Kind: ir.SigZip, Fn: string(ir.FnAdd), Args: []ir.SigExprID{phaseRead, delta}})
			one := b.AddSig(ir.SigExpr{Kind: ir.SigConst, Const: 1.0})
			wrapped := b.AddSig(ir.SigExpr{Kind: ir.SigZip, Fn: string(ir.FnMod), Args: []ir.SigExprID{sum, one}})

			t := types.NewCanonicalType(types.Float, types.AnglePhase01, types.DefaultExtent())
			slot := b.AllocSlot(t)
			b.AddStep(ir.Step{Kind: ir.StepEvalSig, SigExprRef: wrapped, SlotRef: slot})
			StateWrite(b, wrapped, stateSlot)

			return LowerResult{OutputsByID: map[string]ValueRef{
				"out": {Kind: ValueSig, SigID: wrapped, Slot: slot, Stride: 1},
			}}, nil
		},
	}
}

// PhaseOscillatorDef is Oscillator with its output already converted
// to radians, for patches that want to skip an explicit adapter block
// (spec.md §9 names this kind of "common pairing gets its own block"
// tradeoff explicitly).
func PhaseOscillatorDef() BlockDef {
	return BlockDef{
		Type:   "PhaseOscillator",
		Inputs: OscillatorDef().Inputs,
		Outputs: []PortDecl{
			{ID: "out", Payload: types.Float, Unit: types.AngleRadians},
		},
		Capability: CapabilityState,
		Lower: func(args LowerArgs) (LowerResult, error) {
			inner, err := OscillatorDef().Lower(args)
			if err != nil {
				return LowerResult{}, err
			}
			b := args.Ctx.B
			phase01 := inner.OutputsByID["out"]

			twoPi := b.AddSig(ir.SigExpr{Kind: ir.SigConst, Const: 6.283185307179586})
			radians := b.AddSig(ir.SigExpr{Kind: ir.SigZip, Fn: string(ir.FnMul), Args: []ir.SigExprID{phase01.SigID, twoPi}})

			t := types.NewCanonicalType(types.Float, types.AngleRadians, types.DefaultExtent())
			out := EmitSigFromExisting(b, radians, t)
			return LowerResult{OutputsByID: map[string]ValueRef{"out": out}}, nil
		},
	}
}

// EmitSigFromExisting schedules an evalSig step for a SigExpr that was
// already appended to the builder (e.g. derived from an inner lower()
// call's output), without re-adding the expression.
func EmitSigFromExisting(b *ir.Builder, id ir.SigExprID, t types.CanonicalType) ValueRef {
	slot := b.AllocSlot(t)
	b.AddStep(ir.Step{Kind: ir.StepEvalSig, SigExprRef: id, SlotRef: slot})
	return ValueRef{Kind: ValueSig, SigID: id, Slot: slot, Stride: t.Stride()}
}
