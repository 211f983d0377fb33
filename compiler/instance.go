package compiler

import (
	"fmt"

	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/blocks"
	"github.com/oscilla-sh/oscilla/diag"
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/types"
)

// unifyFieldInstances is pass 5 (spec.md §4.2 Pass 5 "Instance
// unification"): when more than one Many-cardinality edge feeds the
// same input, every contributing field must range over the same
// instance domain, or the combine has no coherent per-instance
// meaning. A field's concrete types.InstanceRef is only known once its
// producer block has actually lowered (GridLayout/BroadcastField each
// mint their own ctx.InstanceID-derived ref), so this check runs
// inline during pass 6's combine step rather than as an earlier,
// separate traversal over static port declarations.
func unifyFieldInstances(b *ir.Builder, target addr.Address, refs []blocks.ValueRef) (types.InstanceRef, []diag.Diagnostic) {
	var first types.InstanceRef
	var have bool
	var diags []diag.Diagnostic

	for _, ref := range refs {
		if ref.Kind != blocks.ValueField {
			continue
		}
		inst := b.Field(ref.FieldID).Instance
		if !have {
			first = inst
			have = true
			continue
		}
		if inst != first {
			diags = append(diags, diag.New(diag.EUnresolvedInstance, diag.SeverityError, diag.DomainType,
				"Fields disagree on instance domain",
				fmt.Sprintf("%s combines fields over %s/%s and %s/%s, which cannot unify",
					target, first.DomainType, first.InstanceID, inst.DomainType, inst.InstanceID),
				target))
		}
	}

	return first, diags
}
