package blocks

import (
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/types"
)

// InfiniteTimeRoot exposes the runtime's externally-clocked time axes
// as signal outputs (spec.md §3 "Runtime state": time.{tMs, dt,
// phaseA, phaseB, energy}). It has no inputs and never writes state —
// the time axes themselves are advanced by the runtime, not by any
// block (spec.md §4.6).
func InfiniteTimeRootDef() BlockDef {
	return BlockDef{
		Type: "InfiniteTimeRoot",
		Outputs: []PortDecl{
			{ID: "tMs", Payload: types.Float, Unit: types.NoneUnit},
			{ID: "dt", Payload: types.Float, Unit: types.NoneUnit},
			{ID: "phaseA", Payload: types.Float, Unit: types.AnglePhase01},
			{ID: "phaseB", Payload: types.Float, Unit: types.AnglePhase01},
			{ID: "energy", Payload: types.Float, Unit: types.EnergyUnit},
		},
		Capability: CapabilityPure,
		Lower: func(args LowerArgs) (LowerResult, error) {
			b := args.Ctx.B
			axis := func(a ir.TimeAxis, unit types.Unit) ValueRef {
				t := types.NewCanonicalType(types.Float, unit, types.DefaultExtent())
				return EmitSig(b, ir.SigExpr{Kind: ir.SigTime, TimeAxis: a}, t)
			}
			return LowerResult{OutputsByID: map[string]ValueRef{
				"tMs":    axis(ir.TimeAxisTMs, types.NoneUnit),
				"dt":     axis(ir.TimeAxisDt, types.NoneUnit),
				"phaseA": axis(ir.TimeAxisPhaseA, types.AnglePhase01),
				"phaseB": axis(ir.TimeAxisPhaseB, types.AnglePhase01),
				"energy": axis(ir.TimeAxisEnergy, types.EnergyUnit),
			}}, nil
		},
	}
}

// BoundedTimeRoot is the non-infinite TimeModel counterpart: it
// declares the same outputs, the duration is carried on the compiled
// IRProgram's TimeModel rather than on this block (spec.md §4.1
// Non-goal: no per-block time-loop logic duplicating the runtime's
// own clock). durationMs/loop are read by the compiler when it builds
// the program's ir.TimeModel, not by this block's own Lower — a
// BoundedTimeRoot's outputs are evaluated the same way an
// InfiniteTimeRoot's are; only the clock's wraparound rule differs.
func BoundedTimeRootDef() BlockDef {
	def := InfiniteTimeRootDef()
	def.Type = "BoundedTimeRoot"
	def.Params = []ParamDecl{
		{ID: "durationMs", Default: 1000.0},
		{ID: "loop", Default: true},
	}
	return def
}
