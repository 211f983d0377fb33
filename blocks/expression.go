package blocks

import (
	"fmt"

	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/blocks/expr"
	"github.com/oscilla-sh/oscilla/diag"
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/types"
)

// ExpressionDef is the block wrapping blocks/expr's lexer/parser/
// typechecker/compiler into the lowering protocol (spec.md §4.4). It
// declares no static input ports: every reference arrives through the
// "refs" vararg, resolved by patch.ResolveVarargs before lower() ever
// runs. Each resolved connection is exposed twice, per spec.md §4.4 —
// once as the legacy positional alias ("in0", "in1", ...) and, when
// the source address resolves to a target with a displayName, once
// more as a "Block.port" member-access alias. Uniqueness of that
// displayName is not checked here.
func ExpressionDef() BlockDef {
	return BlockDef{
		Type: "Expression",
		Outputs: []PortDecl{
			{ID: "out", Payload: types.Float, Unit: types.NoneUnit},
		},
		Params: []ParamDecl{
			{ID: "text", Default: ""},
		},
		Capability: CapabilityPure,
		Lower: func(args LowerArgs) (LowerResult, error) {
			text, _ := args.Config["text"].(string)

			refs := args.VarargInputsByID["refs"]
			conns := args.VarargConnections["refs"]

			env := expr.TypeEnv{}
			sigIDs := make(map[string]ir.SigExprID, len(refs)*2)
			for i, ref := range refs {
				legacy := fmt.Sprintf("in%d", i)
				sigIDs[legacy] = ref.SigID
				if i >= len(conns) {
					continue
				}
				env[legacy] = conns[i].Payload

				if args.Ctx.AddressRegistry == nil {
					continue
				}
				target, err := args.Ctx.AddressRegistry.Resolve(conns[i].Source.String())
				if err != nil || target.DisplayName == "" {
					continue
				}
				alias := target.DisplayName + "." + conns[i].Source.Port
				sigIDs[alias] = ref.SigID
				env[alias] = conns[i].Payload
			}

			node, err := expr.Parse(text)
			if err != nil {
				return LowerResult{}, fmt.Errorf("expression %s: %w", args.Ctx.Label, err)
			}

			out := addr.NewOutputAddress(args.Ctx.InstanceID, "out")
			_, diags := expr.Check(node, env, args.Ctx.AddressRegistry, out)
			if diag.AnyErrors(diags) {
				for _, d := range diags {
					if d.Severity == diag.SeverityError {
						return LowerResult{}, &DiagError{Diagnostic: d}
					}
				}
			}

			sigID, err := expr.Compile(args.Ctx.B, node, func(name string) (ir.SigExprID, bool) {
				id, ok := sigIDs[name]
				return id, ok
			})
			if err != nil {
				return LowerResult{}, fmt.Errorf("expression %s: %w", args.Ctx.Label, err)
			}

			t := types.NewCanonicalType(types.Float, types.NoneUnit, types.DefaultExtent())
			result := EmitSigFromExisting(args.Ctx.B, sigID, t)
			return LowerResult{OutputsByID: map[string]ValueRef{"out": result}}, nil
		},
	}
}
