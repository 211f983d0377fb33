package compiler

import (
	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/diag"
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/obslog"
	"github.com/oscilla-sh/oscilla/patch"
)

// timeModelFor derives the TimeModel.Kind the runtime clock reads
// (spec.md §3 TimeModel) from the patch's TimeRoot block. "looped" has
// no dedicated block type in this registry — a BoundedTimeRoot whose
// "loop" param is true produces it.
func timeModelFor(p *patch.Patch, timeRootID string) ir.TimeModel {
	blk, ok := p.BlockByID(timeRootID)
	if !ok || blk.Type == "InfiniteTimeRoot" {
		return ir.TimeModel{Kind: "infinite"}
	}

	duration, _ := blk.Params["durationMs"].(float64)
	if duration == 0 {
		duration = 1000.0
	}
	loop, ok := blk.Params["loop"].(bool)
	if !ok {
		loop = true
	}
	if loop {
		return ir.TimeModel{Kind: "looped", DurationMs: duration}
	}
	return ir.TimeModel{Kind: "bounded", DurationMs: duration}
}

func findTimeRoot(p *patch.Patch) (string, bool) {
	for _, b := range p.Blocks {
		if timeRootTypes[b.Type] {
			return b.ID, true
		}
	}
	return "", false
}

func clonePatch(p *patch.Patch) *patch.Patch {
	blocks := make([]patch.Block, len(p.Blocks))
	for i, b := range p.Blocks {
		params := make(map[string]any, len(b.Params))
		for k, v := range b.Params {
			params[k] = v
		}
		inputPorts := make(map[string]patch.InputPortConfig, len(b.InputPorts))
		for k, v := range b.InputPorts {
			cfg := v
			cfg.VarargConnections = append([]patch.VarargConnectionSpec(nil), v.VarargConnections...)
			inputPorts[k] = cfg
		}
		outputPorts := make(map[string]patch.OutputPortConfig, len(b.OutputPorts))
		for k, v := range b.OutputPorts {
			outputPorts[k] = v
		}
		blocks[i] = patch.Block{
			ID:          b.ID,
			Type:        b.Type,
			DisplayName: b.DisplayName,
			Params:      params,
			InputPorts:  inputPorts,
			OutputPorts: outputPorts,
			Role:        b.Role,
		}
	}
	edges := append([]patch.Edge(nil), p.Edges...)
	return &patch.Patch{Blocks: blocks, Edges: edges}
}

// Compile runs the full seven-pass pipeline over p (spec.md §4.5) and
// produces either a complete IRProgram or the diagnostics that blocked
// it. p itself is never mutated — every pass operates on an internal
// clone, so a caller can retry a compile against the same original
// patch after editing it in response to a diagnostic's Action.
func Compile(p *patch.Patch, opts ...Option) CompileResult {
	o := applyOptions(opts)
	working := clonePatch(p)
	obslog.Trace("compile start", "blocks", len(working.Blocks), "edges", len(working.Edges))

	var diags []diag.Diagnostic
	diags = append(diags, validateStructure(working)...)

	patch.ApplyDefaultSources(working)
	obslog.Trace("pass1 defaultSources", "blocks", len(working.Blocks))

	addrReg := buildAddressRegistry(working, o.Registry)
	portTypeLookup := buildPortTypeLookup(working, o.Registry)
	inputTypeLookup := buildInputTypeLookup(working, o.Registry)

	resolvedVarargs, varargDiags := patch.ResolveVarargs(working, addrReg, portTypeLookup)
	diags = append(diags, varargDiags...)
	obslog.Trace("pass2 varargs", "diags", len(varargDiags))

	adapterDiags := patch.InsertAdapters(working, o.Adapters, portTypeLookup, inputTypeLookup)
	diags = append(diags, adapterDiags...)
	obslog.Trace("pass3 adapters", "blocks", len(working.Blocks), "diags", len(adapterDiags))

	// InsertAdapters adds blocks after the registry above was built;
	// an Expression block's member-access
	// aliases need every spliced block resolvable too.
	addrReg = buildAddressRegistry(working, o.Registry)

	if diag.AnyErrors(diags) {
		return failure(diags)
	}

	b := ir.NewBuilder()
	outcome := lowerBlocks(b, working, o.Registry, addrReg, resolvedVarargs)
	diags = append(diags, outcome.diags...)
	if diag.AnyErrors(diags) {
		return failure(diags)
	}

	timeRootID, ok := findTimeRoot(working)
	if !ok {
		// validateStructure already reported E_TIME_ROOT_MISSING; this
		// is an internal-consistency guard, not a user-reachable path.
		return failure(append(diags, diag.New(diag.ETimeRootMissing, diag.SeverityError, diag.DomainAuthoring,
			"No time root",
			"compile reached schedule emission with no TimeRoot block",
			addr.Address{})))
	}

	program := b.Build(timeModelFor(working, timeRootID))
	obslog.Trace("compile done", "steps", len(program.Steps))

	return CompileResult{
		OK:              true,
		Program:         program,
		AddressRegistry: addrReg,
		DebugGraph:      outcome.graph,
		Warnings:        append(diags, outcome.warns...),
	}
}
