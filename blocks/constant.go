package blocks

import (
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/types"
)

// ConstantDef is the literal-value source every other block's
// defaultSource descriptor names (e.g. OscillatorDef's "rate" port
// falls back to one), and the block an author wires in directly when
// a port just needs a fixed number. It has no inputs: its only job is
// to lift a param into the SigExpr stream once per instance.
func ConstantDef() BlockDef {
	return BlockDef{
		Type: "Constant",
		Params: []ParamDecl{
			{ID: "value", Default: 0.0},
		},
		Outputs: []PortDecl{
			{ID: "out", Payload: types.Float, Unit: types.NoneUnit},
		},
		Capability: CapabilityPure,
		Lower: func(args LowerArgs) (LowerResult, error) {
			value := configFloat(args.Config, "value", 0)
			t := types.NewCanonicalType(types.Float, types.NoneUnit, types.DefaultExtent())
			out := EmitSig(args.Ctx.B, ir.SigExpr{Kind: ir.SigConst, Const: value}, t)
			return LowerResult{OutputsByID: map[string]ValueRef{"out": out}}, nil
		},
	}
}
