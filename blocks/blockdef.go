// Package blocks implements the block registry and lowering protocol
// described in spec.md §4.3: translating patch blocks into IR.
package blocks

import (
	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/patch"
	"github.com/oscilla-sh/oscilla/types"
)

// Capability is the closed set of block behaviors: a pure block emits
// only evalSig/materialize/evalEvent steps (the CameraProjection
// adapter, also pure, emits a projection step), a state block also
// issues stateWrite, a render block issues renderPass.
type Capability string

const (
	CapabilityPure   Capability = "pure"
	CapabilityState  Capability = "state"
	CapabilityRender Capability = "render"
)

// PortDecl is a block's static declaration of one port's type.
type PortDecl struct {
	ID      string
	Payload types.Payload
	Unit    types.Unit
	Many    bool // a field (cardinality-many) rather than a signal
}

// ParamDecl is a block's static declaration of one parameter.
type ParamDecl struct {
	ID      string
	Default any
}

// ValueKind discriminates a ValueRef the way spec.md §4.3 does:
// `{k:'sig', ...} | {k:'field', ...} | {k:'event', ...}`.
type ValueKind string

const (
	ValueSig   ValueKind = "sig"
	ValueField ValueKind = "field"
	ValueEvent ValueKind = "event"
)

// ValueRef is what a block's output (or a wired input) carries: enough
// to read the value from the runtime's ValueStore, plus which IR
// expression stream produced it.
type ValueRef struct {
	Kind ValueKind

	SigID   ir.SigExprID   // Kind == sig
	FieldID ir.FieldExprID // Kind == field
	EventID ir.EventExprID // Kind == event

	Slot   ir.Slot
	Stride int
}

// LowerContext is the ambient compile-time context a lower() call
// receives: the shared IR builder, this instance's identity, and its
// resolved port types (spec.md §4.3 LowerArgs.ctx).
type LowerContext struct {
	B               *ir.Builder
	BlockIdx        int
	InstanceID      string
	Label           string
	SeedConstID     int
	InTypes         map[string]types.CanonicalType
	OutTypes        map[string]types.CanonicalType
	AddressRegistry *addr.Registry
}

// LowerArgs bundles a LowerContext with the already-lowered values
// feeding this block's inputs (spec.md §4.3 LowerArgs).
type LowerArgs struct {
	Ctx              LowerContext
	InputsByID       map[string]ValueRef
	VarargInputsByID map[string][]ValueRef
	VarargConnections map[string][]patch.ResolvedVarargConnection
	Config           map[string]any
}

// LowerResult is what lower() hands back: one ValueRef per declared
// output (spec.md §4.3 LowerResult).
type LowerResult struct {
	OutputsByID map[string]ValueRef
}

// BlockDef is a registered block type: its port/param declarations,
// its capability, and the lower() function that turns one instance
// into IR. lower is called exactly once per instance per compile, in
// topological order (spec.md §4.3 Protocol).
type BlockDef struct {
	Type       string
	Inputs     []PortDecl
	Outputs    []PortDecl
	Params     []ParamDecl
	Capability Capability
	Lower      func(LowerArgs) (LowerResult, error)
}

// InputDecl looks up one of this def's declared input ports by ID.
func (d BlockDef) InputDecl(id string) (PortDecl, bool) {
	for _, p := range d.Inputs {
		if p.ID == id {
			return p, true
		}
	}
	return PortDecl{}, false
}

// OutputDecl looks up one of this def's declared output ports by ID.
func (d BlockDef) OutputDecl(id string) (PortDecl, bool) {
	for _, p := range d.Outputs {
		if p.ID == id {
			return p, true
		}
	}
	return PortDecl{}, false
}

// CanonicalType derives the canonical type a port decl implies.
// Fields and signals both flow through the same Extent machinery; only
// Cardinality differs.
func (p PortDecl) CanonicalType(instance types.InstanceRef) types.CanonicalType {
	extent := types.DefaultExtent()
	if p.Many {
		extent.Cardinality = types.Many(instance)
	}
	return types.NewCanonicalType(p.Payload, p.Unit, extent)
}
