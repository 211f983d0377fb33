package expr

import (
	"fmt"

	"github.com/oscilla-sh/oscilla/ir"
)

// SigLookup resolves a compiled expression's free variables — plain
// identifiers and "Block.port" member references alike — to an
// already-emitted SigExprID (spec.md §4.4: "a signal environment
// mapping the same names to SigExprIds"). The Expression block builds
// this from its own InputsById plus any address-registry-resolved
// block references the patch author wrote.
type SigLookup func(name string) (ir.SigExprID, bool)

var binaryFn = map[string]ir.Fn{
	"+": ir.FnAdd, "-": ir.FnSub, "*": ir.FnMul, "/": ir.FnDiv, "%": ir.FnMod,
	"<": ir.FnLt, "<=": ir.FnLe, ">": ir.FnGt, ">=": ir.FnGe,
	"==": ir.FnEq, "!=": ir.FnNe, "&&": ir.FnAnd, "||": ir.FnOr,
}

// Compile lowers a parsed expression tree into the builder's SigExpr
// stream and returns the ID of its root node. Callers must type-check
// first (Check). Compile does not panic: a SigLookup miss, or an
// operator or node kind it does not know, is returned as an error.
func Compile(b *ir.Builder, n *Node, env SigLookup) (ir.SigExprID, error) {
	switch n.Kind {
	case NodeNumber:
		return b.AddSig(ir.SigExpr{Kind: ir.SigConst, Const: n.Number}), nil

	case NodeIdent:
		id, ok := env(n.Ident)
		if !ok {
			return 0, fmt.Errorf("expr: compile: unresolved identifier %q at %d", n.Ident, n.Pos)
		}
		return id, nil

	case NodeMember:
		full := n.Object.Ident + "." + n.Member
		id, ok := env(full)
		if !ok {
			return 0, fmt.Errorf("expr: compile: unresolved reference %q at %d", full, n.Pos)
		}
		return id, nil

	case NodeUnary:
		operand, err := Compile(b, n.Operand, env)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case "-":
			return b.AddSig(ir.SigExpr{Kind: ir.SigMap, Fn: string(ir.FnNeg), Args: []ir.SigExprID{operand}}), nil
		case "!":
			return b.AddSig(ir.SigExpr{Kind: ir.SigMap, Fn: string(ir.FnNot), Args: []ir.SigExprID{operand}}), nil
		default:
			return 0, fmt.Errorf("expr: compile: unknown unary operator %q at %d", n.Op, n.Pos)
		}

	case NodeBinary:
		left, err := Compile(b, n.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := Compile(b, n.Right, env)
		if err != nil {
			return 0, err
		}
		fn, ok := binaryFn[n.Op]
		if !ok {
			return 0, fmt.Errorf("expr: compile: unknown binary operator %q at %d", n.Op, n.Pos)
		}
		return b.AddSig(ir.SigExpr{Kind: ir.SigZip, Fn: string(fn), Args: []ir.SigExprID{left, right}}), nil

	case NodeTernary:
		cond, err := Compile(b, n.Cond, env)
		if err != nil {
			return 0, err
		}
		then, err := Compile(b, n.Then, env)
		if err != nil {
			return 0, err
		}
		els, err := Compile(b, n.Else, env)
		if err != nil {
			return 0, err
		}
		return b.AddSig(ir.SigExpr{Kind: ir.SigZip, Fn: string(ir.FnSelect), Args: []ir.SigExprID{cond, then, els}}), nil

	case NodeCall:
		args := make([]ir.SigExprID, 0, len(n.Args))
		for _, a := range n.Args {
			id, err := Compile(b, a, env)
			if err != nil {
				return 0, err
			}
			args = append(args, id)
		}
		if len(args) == 1 {
			return b.AddSig(ir.SigExpr{Kind: ir.SigMap, Fn: n.Callee, Args: args}), nil
		}
		return b.AddSig(ir.SigExpr{Kind: ir.SigZip, Fn: n.Callee, Args: args}), nil

	default:
		return 0, fmt.Errorf("expr: compile: unhandled node kind %d at %d", n.Kind, n.Pos)
	}
}
