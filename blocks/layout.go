package blocks

import (
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/types"
)

// GridLayoutDef is a field-producing pure block: it materializes a
// PositionWorld field of `rows * cols` instances laid out on a grid.
// The field's per-instance producer is a constant placeholder — the
// "grid" layout name tells the runtime's materialize step to derive
// each instance's position from its index directly, rather than from
// a user-composable per-instance signal (spec.md §3 FieldExpr:
// "materialize(from, count, layout)" — layout selects the position
// function; from still needs a producer expression to anchor the
// field's base type).
func GridLayoutDef() BlockDef {
	return BlockDef{
		Type: "GridLayout",
		Params: []ParamDecl{
			{ID: "rows", Default: 1.0},
			{ID: "cols", Default: 1.0},
		},
		Outputs: []PortDecl{
			{ID: "positions", Payload: types.Vec2, Unit: types.PositionWorld, Many: true},
		},
		Capability: CapabilityPure,
		Lower: func(args LowerArgs) (LowerResult, error) {
			b := args.Ctx.B
			rows := configFloat(args.Config, "rows", 1)
			cols := configFloat(args.Config, "cols", 1)
			count := int(rows * cols)
			if count < 1 {
				count = 1
			}

			instance := types.InstanceRef{DomainType: "Grid", InstanceID: args.Ctx.InstanceID}
			anchor := b.AddSig(ir.SigExpr{Kind: ir.SigConst, Const: 0})

			t := types.NewCanonicalType(types.Vec2, types.PositionWorld, types.Extent{
				Cardinality: types.Many(instance),
				Temporality: types.Continuous,
				Binding:     types.BindingBound,
			})
			out := EmitField(b, ir.FieldExpr{
				Kind:     ir.FieldMaterialize,
				From:     anchor,
				Count:    count,
				Layout:   "grid",
				Instance: instance,
			}, t)

			return LowerResult{OutputsByID: map[string]ValueRef{"positions": out}}, nil
		},
	}
}

// configFloat reads a numeric param out of a block's resolved config
// map, tolerating both float64 (the common case from YAML/JSON) and a
// missing key (falls back to def).
func configFloat(cfg map[string]any, key string, def float64) float64 {
	v, ok := cfg[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return def
	}
}
