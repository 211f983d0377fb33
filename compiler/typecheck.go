package compiler

import (
	"fmt"

	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/blocks"
	"github.com/oscilla-sh/oscilla/diag"
	"github.com/oscilla-sh/oscilla/patch"
	"github.com/oscilla-sh/oscilla/types"
)

// timeRootTypes is the closed set of block types that may serve as a
// patch's TimeRoot (spec.md §3 "exactly one TimeRoot block is
// reachable"). This compiler checks patch-wide presence rather than
// true per-sink reachability — a simplification documented in
// DESIGN.md, since every example patch in this corpus has a single
// connected component.
var timeRootTypes = map[string]bool{
	"InfiniteTimeRoot": true,
	"BoundedTimeRoot":  true,
}

// validateStructure checks the patch-level invariants spec.md §3 lists
// before any pass runs: unique canonical block names, and exactly one
// TimeRoot block. Both produce blocking diagnostics.
func validateStructure(p *patch.Patch) []diag.Diagnostic {
	var diags []diag.Diagnostic

	seen := make(map[string]string) // canonicalName -> first blockID
	var timeRoots []patch.Block

	for _, b := range p.Blocks {
		name := patch.NormalizeCanonicalName(b.DisplayName)
		if name == "" {
			continue
		}
		if firstID, ok := seen[name]; ok && firstID != b.ID {
			diags = append(diags, diag.New(diag.EDuplicateCanonicalName, diag.SeverityError, diag.DomainAuthoring,
				"Duplicate canonical name",
				fmt.Sprintf("blocks %q and %q both normalize to canonical name %q", firstID, b.ID, name),
				addr.NewBlockAddress(b.ID)))
			continue
		}
		seen[name] = b.ID

		if timeRootTypes[b.Type] {
			timeRoots = append(timeRoots, b)
		}
	}

	switch len(timeRoots) {
	case 0:
		diags = append(diags, diag.New(diag.ETimeRootMissing, diag.SeverityError, diag.DomainAuthoring,
			"No time root",
			"the patch has no reachable TimeRoot block; every render sink needs exactly one",
			addr.Address{}).
			WithActions(diag.CreateTimeRoot("Infinite")))
	case 1:
		// fine
	default:
		for _, tr := range timeRoots[1:] {
			diags = append(diags, diag.New(diag.ETimeRootMultiple, diag.SeverityError, diag.DomainAuthoring,
				"Multiple time roots",
				fmt.Sprintf("block %q is a second TimeRoot; a patch may only have one", tr.ID),
				addr.NewBlockAddress(tr.ID)).
				WithActions(diag.RemoveBlock(tr.ID)))
		}
	}

	return diags
}

// blockDefLookup resolves a block in p against registry, by block ID.
func blockDefLookup(p *patch.Patch, registry *blocks.Registry, blockID string) (patch.Block, blocks.BlockDef, bool) {
	b, ok := p.BlockByID(blockID)
	if !ok {
		return patch.Block{}, blocks.BlockDef{}, false
	}
	def, ok := registry.Get(b.Type)
	if !ok {
		return b, blocks.BlockDef{}, false
	}
	return b, def, true
}

// buildPortTypeLookup is pass 4's source-side answer to "what does
// this address produce" (spec.md §4.2 Passes 2/3 both need it; it is
// the compiler-supplied PortTypeLookup patch itself cannot build,
// since patch never imports blocks — spec.md §2 dependency order).
func buildPortTypeLookup(p *patch.Patch, registry *blocks.Registry) patch.PortTypeLookup {
	return func(source addr.Address) (patch.ResolvedPort, error) {
		_, def, ok := blockDefLookup(p, registry, source.BlockID)
		if !ok {
			return patch.ResolvedPort{}, fmt.Errorf("compiler: unknown block or block type for %s", source)
		}
		decl, ok := def.OutputDecl(source.Port)
		if !ok {
			return patch.ResolvedPort{}, fmt.Errorf("compiler: %s has no output %q", source.BlockID, source.Port)
		}
		return patch.ResolvedPort{Payload: decl.Payload, Unit: decl.Unit, Many: decl.Many}, nil
	}
}

// buildInputTypeLookup is pass 4's target-side counterpart, used by
// pass 3 (InsertAdapters) to resolve what an input port accepts.
func buildInputTypeLookup(p *patch.Patch, registry *blocks.Registry) patch.InputTypeLookup {
	return func(target addr.Address) (patch.ResolvedPort, error) {
		_, def, ok := blockDefLookup(p, registry, target.BlockID)
		if !ok {
			return patch.ResolvedPort{}, fmt.Errorf("compiler: unknown block or block type for %s", target)
		}
		decl, ok := def.InputDecl(target.Port)
		if !ok {
			return patch.ResolvedPort{}, fmt.Errorf("compiler: %s has no input %q", target.BlockID, target.Port)
		}
		return patch.ResolvedPort{Payload: decl.Payload, Unit: decl.Unit, Many: decl.Many}, nil
	}
}

// buildAddressRegistry indexes every block and declared port in p
// against registry, for addr.Registry.Resolve's "block.port" shorthand
// (used by vararg sourceAddress entries and Expression's member-access
// aliases alike). Re-run after every pass that adds blocks, since a
// freshly spliced adapter/default-source block must be resolvable too.
func buildAddressRegistry(p *patch.Patch, registry *blocks.Registry) *addr.Registry {
	reg := addr.NewRegistry()
	for _, b := range p.Blocks {
		reg.Register(addr.Target{Address: addr.NewBlockAddress(b.ID), DisplayName: b.DisplayName})

		def, ok := registry.Get(b.Type)
		if !ok {
			continue
		}
		for _, out := range def.Outputs {
			t := out.CanonicalType(types.InstanceRef{DomainType: b.Type, InstanceID: b.ID})
			reg.Register(addr.Target{
				Address:     addr.NewOutputAddress(b.ID, out.ID),
				DisplayName: b.DisplayName,
				TypeString:  t.String(),
			})
		}
		for _, in := range def.Inputs {
			t := in.CanonicalType(types.InstanceRef{DomainType: b.Type, InstanceID: b.ID})
			reg.Register(addr.Target{
				Address:     addr.NewInputAddress(b.ID, in.ID),
				DisplayName: b.DisplayName,
				TypeString:  t.String(),
			})
		}
	}
	return reg
}
