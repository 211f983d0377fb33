package expr

import (
	"fmt"

	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/diag"
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/types"
)

// TypeEnv maps identifiers — plain input names and block-reference
// aliases ("Block.port") — to the payload they carry (spec.md §4.4:
// "a type environment mapping input names and block-reference aliases
// to payload types").
type TypeEnv map[string]types.Payload

// Check validates expr's identifiers, member accesses, and function
// calls against env and (optionally) an AddressRegistry for
// "Block.port" references, and infers the expression's result
// payload. It never panics: unknown identifiers, unresolved members,
// and arity mismatches become diagnostics (spec.md §7 "no panics for
// user-reachable conditions"), each carrying the offending position
// and, where useful, a same-prefix suggestion.
func Check(n *Node, env TypeEnv, registry *addr.Registry, target addr.Address) (types.Payload, []diag.Diagnostic) {
	switch n.Kind {
	case NodeNumber:
		return types.Float, nil

	case NodeIdent:
		if p, ok := env[n.Ident]; ok {
			return p, nil
		}
		return types.Float, []diag.Diagnostic{undefinedIdent(n.Ident, n.Pos, env, target)}

	case NodeMember:
		if n.Object.Kind != NodeIdent {
			return types.Float, []diag.Diagnostic{exprSyntax(n.Pos, "member access target must be a plain identifier", target)}
		}
		full := n.Object.Ident + "." + n.Member
		if p, ok := env[full]; ok {
			return p, nil
		}
		if registry != nil {
			if _, err := registry.Resolve(full); err == nil {
				return types.Float, nil
			}
		}
		return types.Float, []diag.Diagnostic{undefinedIdent(full, n.Pos, env, target)}

	case NodeUnary:
		p, diags := Check(n.Operand, env, registry, target)
		return p, diags

	case NodeBinary:
		lp, ld := Check(n.Left, env, registry, target)
		_, rd := Check(n.Right, env, registry, target)
		return lp, append(ld, rd...)

	case NodeTernary:
		_, cd := Check(n.Cond, env, registry, target)
		tp, td := Check(n.Then, env, registry, target)
		_, ed := Check(n.Else, env, registry, target)
		return tp, append(append(cd, td...), ed...)

	case NodeCall:
		var diags []diag.Diagnostic
		if !ir.IsValidFn(n.Callee) {
			diags = append(diags, exprSyntax(n.Pos, fmt.Sprintf("unknown function %q", n.Callee), target))
		} else if want := ir.FnArity[ir.Fn(n.Callee)]; want != len(n.Args) {
			diags = append(diags, exprSyntax(n.Pos,
				fmt.Sprintf("%s expects %d argument(s), got %d", n.Callee, want, len(n.Args)), target))
		}
		for _, a := range n.Args {
			_, d := Check(a, env, registry, target)
			diags = append(diags, d...)
		}
		return types.Float, diags

	default:
		return types.Float, nil
	}
}

func undefinedIdent(name string, pos int, env TypeEnv, target addr.Address) diag.Diagnostic {
	msg := fmt.Sprintf("%q is not defined at position %d", name, pos)
	if s := suggest(name, env); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return diag.New(diag.EExprUndefinedIdentifier, diag.SeverityError, diag.DomainType,
		"Undefined identifier", msg, target)
}

func exprSyntax(pos int, msg string, target addr.Address) diag.Diagnostic {
	return diag.New(diag.EExprSyntax, diag.SeverityError, diag.DomainType,
		"Expression error", fmt.Sprintf("%s (at %d)", msg, pos), target)
}

// suggest offers the known name sharing the longest prefix (at least
// two characters) with name, a cheap approximation of a spelling-correction hint that
// costs nothing to compute for typical (small) expression environments.
func suggest(name string, env TypeEnv) string {
	best := ""
	for candidate := range env {
		prefixLen := commonPrefixLen(name, candidate)
		if prefixLen >= 2 && prefixLen > commonPrefixLen(name, best) {
			best = candidate
		}
	}
	return best
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
