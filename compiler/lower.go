package compiler

import (
	"errors"
	"fmt"
	"sort"

	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/blocks"
	"github.com/oscilla-sh/oscilla/debugtap"
	"github.com/oscilla-sh/oscilla/diag"
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/patch"
	"github.com/oscilla-sh/oscilla/types"
)

// dep is one block-level "must lower before" edge, gathered from both
// regular patch.Edges and resolved vararg connections — a vararg
// source has no patch.Edge at all (spec.md §4.2 Pass 2 resolves it
// straight from a sourceAddress string), so it would be invisible to
// the topological sort without folding it in here too.
type dep struct{ from, to string }

// lowerOutcome is pass 6+7's result: the schedule lives in the
// builder's append-only streams (see package doc), so all this struct
// carries out is the per-port ValueRef index lowering produced and the
// indices built alongside it.
type lowerOutcome struct {
	outputs map[string]map[string]blocks.ValueRef
	graph   *debugtap.DebugGraph
	diags   []diag.Diagnostic
	warns   []diag.Diagnostic
}

// lowerBlocks is compiler passes 5 (instance unification, inlined into
// the combine step below), 6 (block lowering) and 7 (schedule
// emission). Passes 6 and 7 collapse into one loop: every built-in
// block's lower() appends directly to b's step stream (mostly through
// blocks.EmitSig/EmitField/EmitEvent/StateWrite; OscillatorDef calls
// b.AddStep itself), so a valid topological
// lowering order is already a valid schedule — there is no separate
// step-ordering artifact to build afterward.
func lowerBlocks(
	b *ir.Builder,
	p *patch.Patch,
	registry *blocks.Registry,
	addrReg *addr.Registry,
	resolvedVarargs map[string]map[string][]patch.ResolvedVarargConnection,
) lowerOutcome {
	order, cycleDiags := topoOrder(p)
	if len(cycleDiags) > 0 {
		return lowerOutcome{diags: cycleDiags}
	}

	outcome := lowerOutcome{
		outputs: make(map[string]map[string]blocks.ValueRef, len(p.Blocks)),
		graph:   debugtap.NewDebugGraph(),
	}

	edgesInto := indexEdgesByTarget(p)
	touched := make(map[string]bool, len(p.Blocks))

	for _, id := range order {
		blk, def, ok := blockDefLookup(p, registry, id)
		if !ok {
			outcome.diags = append(outcome.diags, diag.New(diag.EAddressUnknown, diag.SeverityError, diag.DomainSchedule,
				"Unknown block type",
				fmt.Sprintf("block %q has type %q, which is not registered", id, blk.Type),
				addr.NewBlockAddress(id)))
			continue
		}

		args, inputDiags := buildLowerArgs(b, p, &blk, def, outcome.outputs, edgesInto, resolvedVarargs, addrReg)
		outcome.diags = append(outcome.diags, inputDiags...)
		if diag.AnyErrors(inputDiags) {
			continue
		}
		if len(args.InputsByID) > 0 || len(args.VarargInputsByID) > 0 {
			touched[id] = true
			for _, e := range edgesInto[id] {
				touched[e.From.BlockID] = true
			}
			for _, conns := range resolvedVarargs[id] {
				for _, c := range conns {
					touched[c.Source.BlockID] = true
				}
			}
		}

		result, err := def.Lower(args)
		if err != nil {
			var de *blocks.DiagError
			if errors.As(err, &de) {
				outcome.diags = append(outcome.diags, de.Diagnostic)
			} else {
				outcome.diags = append(outcome.diags, diag.New(diag.EExprSyntax, diag.SeverityError, diag.DomainType,
					"Block failed to lower",
					fmt.Sprintf("%s (%s): %v", blk.ID, blk.Type, err),
					addr.NewBlockAddress(id)))
			}
			continue
		}

		outcome.outputs[id] = result.OutputsByID
		for portID, ref := range result.OutputsByID {
			outAddr := addr.NewOutputAddress(id, portID)
			decl, _ := def.OutputDecl(portID)
			t := decl.CanonicalType(types.InstanceRef{DomainType: blk.Type, InstanceID: blk.ID})
			if ref.Kind == blocks.ValueField {
				t = types.NewCanonicalType(decl.Payload, decl.Unit, types.Extent{
					Cardinality: types.Many(b.Field(ref.FieldID).Instance),
					Temporality: t.Extent.Temporality,
					Binding:     types.BindingBound,
				})
			}
			outcome.graph.Add(outAddr, debugtap.GraphEntry{
				Slot:              ref.Slot,
				Type:              t,
				UpstreamProducers: upstreamOf(edgesInto, resolvedVarargs, id, portID),
			})
		}
	}

	for _, blk := range p.Blocks {
		if blk.Role.Kind == patch.RoleDerived {
			continue
		}
		if !touched[blk.ID] {
			outcome.warns = append(outcome.warns, diag.New(diag.WGraphDisconnectedBlock, diag.SeverityWarn, diag.DomainSchedule,
				"Disconnected block",
				fmt.Sprintf("block %q has no edges in or out and contributes nothing to the schedule", blk.ID),
				addr.NewBlockAddress(blk.ID)).
				WithActions(diag.GoToTarget(addr.NewBlockAddress(blk.ID))))
		}
	}

	return outcome
}

// topoOrder runs Kahn's algorithm over the patch's block-level
// dependency graph, breaking ties between simultaneously-ready blocks
// by canonical name (falling back to block ID) so two compiles of the
// same patch always lower blocks in the same order.
func topoOrder(p *patch.Patch) ([]string, []diag.Diagnostic) {
	indegree := make(map[string]int, len(p.Blocks))
	adjacency := make(map[string][]string, len(p.Blocks))
	byID := make(map[string]patch.Block, len(p.Blocks))
	for _, blk := range p.Blocks {
		byID[blk.ID] = blk
		if _, ok := indegree[blk.ID]; !ok {
			indegree[blk.ID] = 0
		}
	}
	for _, d := range collectDeps(p) {
		indegree[d.to]++
		adjacency[d.from] = append(adjacency[d.from], d.to)
	}

	less := func(a, b string) bool {
		na, nb := patch.NormalizeCanonicalName(byID[a].DisplayName), patch.NormalizeCanonicalName(byID[b].DisplayName)
		if na != nb {
			return na < nb
		}
		return a < b
	}

	ready := make(map[string]bool)
	for id, n := range indegree {
		if n == 0 {
			ready[id] = true
		}
	}

	var order []string
	for len(ready) > 0 {
		pick := ""
		for id := range ready {
			if pick == "" || less(id, pick) {
				pick = id
			}
		}
		delete(ready, pick)
		order = append(order, pick)
		for _, next := range adjacency[pick] {
			indegree[next]--
			if indegree[next] == 0 {
				ready[next] = true
			}
		}
	}

	if len(order) == len(p.Blocks) {
		return order, nil
	}

	processed := make(map[string]bool, len(order))
	for _, id := range order {
		processed[id] = true
	}
	var diags []diag.Diagnostic
	for _, blk := range p.Blocks {
		if !processed[blk.ID] {
			diags = append(diags, diag.New(diag.ECycleDetected, diag.SeverityError, diag.DomainSchedule,
				"Cycle detected",
				fmt.Sprintf("block %q participates in a dependency cycle", blk.ID),
				addr.NewBlockAddress(blk.ID)))
		}
	}
	return nil, diags
}

func collectDeps(p *patch.Patch) []dep {
	var deps []dep
	for _, e := range p.Edges {
		if !e.Enabled || e.From.BlockID == e.To.BlockID {
			continue
		}
		deps = append(deps, dep{from: e.From.BlockID, to: e.To.BlockID})
	}
	return deps
}

func indexEdgesByTarget(p *patch.Patch) map[string][]patch.Edge {
	m := make(map[string][]patch.Edge)
	for _, e := range p.Edges {
		if !e.Enabled {
			continue
		}
		m[e.To.BlockID] = append(m[e.To.BlockID], e)
	}
	return m
}

// buildLowerArgs gathers one block's inputs: regular ports combine
// their incoming edges per the port's CombineMode, vararg ports take
// their connections straight from pass 2's resolved map (spec.md §4.2
// Pass 2: varargs bypass the combine system entirely).
func buildLowerArgs(
	b *ir.Builder,
	p *patch.Patch,
	blk *patch.Block,
	def blocks.BlockDef,
	outputs map[string]map[string]blocks.ValueRef,
	edgesInto map[string][]patch.Edge,
	resolvedVarargs map[string]map[string][]patch.ResolvedVarargConnection,
	addrReg *addr.Registry,
) (blocks.LowerArgs, []diag.Diagnostic) {
	var diags []diag.Diagnostic

	inputsByID := make(map[string]blocks.ValueRef)
	varargInputsByID := make(map[string][]blocks.ValueRef)
	varargConnections := resolvedVarargs[blk.ID]

	portIDs := make(map[string]bool)
	for _, in := range def.Inputs {
		portIDs[in.ID] = true
	}
	for portID := range blk.InputPorts {
		portIDs[portID] = true
	}

	for portID := range portIDs {
		cfg, hasCfg := blk.InputPorts[portID]
		if hasCfg && cfg.IsVararg {
			conns := varargConnections[portID]
			refs := make([]blocks.ValueRef, 0, len(conns))
			for _, c := range conns {
				ref, ok := outputs[c.Source.BlockID][c.Source.Port]
				if !ok {
					continue
				}
				refs = append(refs, ref)
			}
			varargInputsByID[portID] = refs
			continue
		}

		edges := append([]patch.Edge(nil), edgesInto[blk.ID]...)
		var matching []patch.Edge
		for _, e := range edges {
			if e.To.PortID == portID {
				matching = append(matching, e)
			}
		}
		if len(matching) == 0 {
			continue
		}
		sort.SliceStable(matching, func(i, j int) bool { return matching[i].SortKey < matching[j].SortKey })

		refs := make([]blocks.ValueRef, 0, len(matching))
		for _, e := range matching {
			ref, ok := outputs[e.From.BlockID][e.From.PortID]
			if !ok {
				continue
			}
			refs = append(refs, ref)
		}
		if len(refs) == 0 {
			continue
		}

		if len(refs) > 1 && refs[0].Kind == blocks.ValueField {
			target := addr.NewInputAddress(blk.ID, portID)
			_, unifyDiags := unifyFieldInstances(b, target, refs)
			diags = append(diags, unifyDiags...)
		}

		mode := cfg.CombineMode
		if mode == "" {
			mode = patch.CombineSum
		}
		inputsByID[portID] = combineRefs(b, mode, refs)
	}

	backfillBroadcastFields(b, inputsByID, varargInputsByID)

	args := blocks.LowerArgs{
		Ctx: blocks.LowerContext{
			B:               b,
			InstanceID:      blk.ID,
			Label:           labelFor(*blk),
			InTypes:         typesFor(def.Inputs, *blk),
			OutTypes:        typesFor(def.Outputs, *blk),
			AddressRegistry: addrReg,
		},
		InputsByID:        inputsByID,
		VarargInputsByID:  varargInputsByID,
		VarargConnections: varargConnections,
		Config:            configFor(def, *blk),
	}
	return args, diags
}

// backfillBroadcastFields resolves a still-open forward dependency
// flagged when BroadcastFieldDef was written: a broadcast field has no
// sibling field in scope at its own lowering time, so it mints Count 0
// and a standalone InstanceRef. Once a consuming block gathers several
// Many-cardinality inputs together, any field among them that already
// carries a resolved instance (e.g. a GridLayout/CameraProjection
// chain) is the authority the broadcast one should adopt — this is
// what lets a RenderSink's "colors" (fed by a BroadcastField) line up
// one-to-one with its "positions" (fed by a grid) without the user
// ever wiring them to agree explicitly.
func backfillBroadcastFields(b *ir.Builder, inputsByID map[string]blocks.ValueRef, varargInputsByID map[string][]blocks.ValueRef) {
	var resolvedInstance types.InstanceRef
	var resolvedCount int
	var haveResolved bool
	var unresolved []ir.FieldExprID

	consider := func(ref blocks.ValueRef) {
		if ref.Kind != blocks.ValueField {
			return
		}
		f := b.Field(ref.FieldID)
		if f.Count > 0 {
			if !haveResolved {
				resolvedInstance, resolvedCount, haveResolved = f.Instance, f.Count, true
			}
			return
		}
		unresolved = append(unresolved, ref.FieldID)
	}

	for _, ref := range inputsByID {
		consider(ref)
	}
	for _, refs := range varargInputsByID {
		for _, ref := range refs {
			consider(ref)
		}
	}

	if !haveResolved {
		return
	}
	for _, id := range unresolved {
		b.PatchFieldExtent(id, resolvedInstance, resolvedCount)
	}
}

func labelFor(blk patch.Block) string {
	if blk.DisplayName != "" {
		return blk.DisplayName
	}
	return blk.ID
}

func typesFor(decls []blocks.PortDecl, blk patch.Block) map[string]types.CanonicalType {
	out := make(map[string]types.CanonicalType, len(decls))
	instance := types.InstanceRef{DomainType: blk.Type, InstanceID: blk.ID}
	for _, d := range decls {
		out[d.ID] = d.CanonicalType(instance)
	}
	return out
}

func configFor(def blocks.BlockDef, blk patch.Block) map[string]any {
	config := make(map[string]any, len(def.Params))
	for _, pd := range def.Params {
		config[pd.ID] = pd.Default
	}
	for k, v := range blk.Params {
		config[k] = v
	}
	return config
}

// combineFnTable maps the CombineModes with a direct binary Fn
// equivalent; average/first/last/layer need special handling since
// they are not simple binary folds (see combineRefs).
var combineFnTable = map[patch.CombineMode]ir.Fn{
	patch.CombineSum: ir.FnAdd,
	patch.CombineMax: ir.FnMax,
	patch.CombineMin: ir.FnMin,
	patch.CombineMul: ir.FnMul,
	patch.CombineOr:  ir.FnOr,
	patch.CombineAnd: ir.FnAnd,
}

// combineRefs folds multiple same-port ValueRefs into one, per
// CombineMode. Event-kind refs fold through ir.EventCombine (a single
// N-ary node); sig-kind refs fold pairwise through SigZip, since every
// Fn here has fixed binary arity. Field-kind refs have no IR-level
// N-ary combine node today — after unifyFieldInstances has confirmed
// every contributor ranges over the same instance domain, the first
// contributor is used as a documented simplification (no built-in
// block currently wires more than one field edge into the same port).
func combineRefs(b *ir.Builder, mode patch.CombineMode, refs []blocks.ValueRef) blocks.ValueRef {
	if len(refs) == 1 {
		return refs[0]
	}

	switch refs[0].Kind {
	case blocks.ValueField:
		return refs[0]
	case blocks.ValueEvent:
		ids := make([]ir.EventExprID, len(refs))
		for i, r := range refs {
			ids[i] = r.EventID
		}
		return blocks.EmitEvent(b, ir.EventExpr{Kind: ir.EventCombine, CombineInputs: ids})
	}

	switch mode {
	case patch.CombineFirst:
		return refs[0]
	case patch.CombineLast, patch.CombineLayer:
		return refs[len(refs)-1]
	case patch.CombineAverage:
		sum := foldSig(b, ir.FnAdd, refs)
		n := b.AddSig(ir.SigExpr{Kind: ir.SigConst, Const: float64(len(refs))})
		avg := b.AddSig(ir.SigExpr{Kind: ir.SigZip, Fn: string(ir.FnDiv), Args: []ir.SigExprID{sum, n}})
		return blocks.ValueRef{Kind: blocks.ValueSig, SigID: avg, Stride: refs[0].Stride}
	default:
		fn, ok := combineFnTable[mode]
		if !ok {
			fn = ir.FnAdd
		}
		id := foldSig(b, fn, refs)
		return blocks.ValueRef{Kind: blocks.ValueSig, SigID: id, Stride: refs[0].Stride}
	}
}

func foldSig(b *ir.Builder, fn ir.Fn, refs []blocks.ValueRef) ir.SigExprID {
	id := refs[0].SigID
	for _, r := range refs[1:] {
		id = b.AddSig(ir.SigExpr{Kind: ir.SigZip, Fn: string(fn), Args: []ir.SigExprID{id, r.SigID}})
	}
	return id
}

// upstreamOf reports which addresses feed a given input port, for the
// DebugGraph's UpstreamProducers (spec.md §4.7: walk a value's
// dependency chain without re-running the compiler).
func upstreamOf(
	edgesInto map[string][]patch.Edge,
	resolvedVarargs map[string]map[string][]patch.ResolvedVarargConnection,
	blockID, portID string,
) []addr.Address {
	var out []addr.Address
	for _, e := range edgesInto[blockID] {
		if e.To.PortID == portID {
			out = append(out, addr.NewOutputAddress(e.From.BlockID, e.From.PortID))
		}
	}
	for pid, conns := range resolvedVarargs[blockID] {
		if pid != portID {
			continue
		}
		for _, c := range conns {
			out = append(out, c.Source)
		}
	}
	return out
}
