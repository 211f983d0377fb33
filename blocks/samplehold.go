package blocks

import (
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/types"
)

// SampleHoldDef latches `value` into persistent state whenever
// `trigger` fires this frame, and otherwise holds its previous value.
// Because every Step runs unconditionally each frame (spec.md §5: "no
// operation suspends within a frame"), the condition is expressed
// inside the SigExpr itself via Fn "select", not by skipping the
// stateWrite step.
func SampleHoldDef() BlockDef {
	return BlockDef{
		Type: "SampleHold",
		Inputs: []PortDecl{
			{ID: "value", Payload: types.Float, Unit: types.NoneUnit},
			{ID: "trigger", Payload: types.Bool, Unit: types.TriggerUnit},
		},
		Outputs: []PortDecl{
			{ID: "out", Payload: types.Float, Unit: types.NoneUnit},
		},
		Capability: CapabilityState,
		Lower: func(args LowerArgs) (LowerResult, error) {
			b := args.Ctx.B
			value := args.InputsByID["value"]
			trigger := args.InputsByID["trigger"]

			stateSlot := b.AllocStateSlot(ir.StableStateID(args.Ctx.InstanceID, "held"), 0)
			held := b.AddSig(ir.SigExpr{Kind: ir.SigStateRead, StateSlotRef: stateSlot})
			triggerAsFloat := b.AddSig(ir.SigExpr{Kind: ir.SigEventRead, EventSlotRef: trigger.Slot})
			selected := b.AddSig(ir.SigExpr{
				Kind: ir.SigZip,
				Fn:   string(ir.FnSelect),
				Args: []ir.SigExprID{triggerAsFloat, value.SigID, held},
			})

			t := types.NewCanonicalType(types.Float, types.NoneUnit, types.DefaultExtent())
			out := EmitSigFromExisting(b, selected, t)
			StateWrite(b, selected, stateSlot)

			return LowerResult{OutputsByID: map[string]ValueRef{"out": out}}, nil
		},
	}
}
