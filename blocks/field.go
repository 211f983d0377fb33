package blocks

import (
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/types"
)

// BroadcastFieldDef expands a scalar signal into a field over a named
// instance domain — the FieldExpr.broadcast case (spec.md §3: "every
// instance of the target domain reads the same value").
func BroadcastFieldDef() BlockDef {
	return BlockDef{
		Type: "BroadcastField",
		Inputs: []PortDecl{
			{ID: "value", Payload: types.Float, Unit: types.NoneUnit},
		},
		Params: []ParamDecl{
			{ID: "domain", Default: "Grid"},
		},
		Outputs: []PortDecl{
			{ID: "out", Payload: types.Float, Unit: types.NoneUnit, Many: true},
		},
		Capability: CapabilityPure,
		Lower: func(args LowerArgs) (LowerResult, error) {
			b := args.Ctx.B
			value := args.InputsByID["value"]
			domain, _ := args.Config["domain"].(string)
			if domain == "" {
				domain = "Grid"
			}
			instance := types.InstanceRef{DomainType: domain, InstanceID: args.Ctx.InstanceID}

			t := types.NewCanonicalType(types.Float, types.NoneUnit, types.Extent{
				Cardinality: types.Many(instance),
				Temporality: types.Continuous,
				Binding:     types.BindingBound,
			})
			out := EmitField(b, ir.FieldExpr{Kind: ir.FieldBroadcast, BroadcastOf: value.SigID}, t)
			return LowerResult{OutputsByID: map[string]ValueRef{"out": out}}, nil
		},
	}
}
