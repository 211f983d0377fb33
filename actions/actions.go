// Package actions implements spec.md §4.8's fix-it dispatcher:
// executeAction(action, deps) validates a diag.Action's target against
// the current patch, mutates it through the patch-editing path when
// the action is a graph edit, and reports {success, error} rather than
// panicking on a stale or malformed target. Diagnostics attach actions
// (diag.AddAdapter, diag.CreateTimeRoot, ...) as data; this package is
// the one place that actually carries them out, mirroring the
// teacher's split between a diagnostic/record type and the code that
// acts on it (diag.Action is the record, this package is the actor).
package actions

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/blocks"
	"github.com/oscilla-sh/oscilla/diag"
	"github.com/oscilla-sh/oscilla/patch"
)

// Result is executeAction's return value (spec.md §4.8: "{success,
// error?}"). Success is false whenever Err is non-nil.
type Result struct {
	Success bool
	Err     error
}

func ok() Result           { return Result{Success: true} }
func fail(err error) Result { return Result{Success: false, Err: err} }

// Deps bundles the collaborators executeAction needs to validate and
// carry out an action: the block registry (to check BlockType exists
// and to fetch default port sets for InsertBlock) and the adapter
// table compiler pass 3 uses. No action reads Adapters at present:
// AddAdapter checks its adapterType against Registry only, and does
// not check that the adapter matches the source port's type. Either
// may be nil for actions that never consult it (e.g. a pure
// GoToTarget never touches Registry or Adapters).
type Deps struct {
	Registry *blocks.Registry
	Adapters patch.AdapterRegistry
}

// Execute validates action.Target (and any other action-specific
// reference) against p, then mutates p in place for the variants that
// are patch edits (InsertBlock, RemoveBlock, AddAdapter,
// CreateTimeRoot). GoToTarget, MuteDiagnostic and OpenDocs are UI-only
// and never touch p; they still validate what they can and report
// success so a caller can drive a single dispatch switch regardless of
// kind.
func Execute(p *patch.Patch, action diag.Action, deps Deps) Result {
	switch action.Kind {
	case diag.ActionGoToTarget:
		return executeGoToTarget(p, action)
	case diag.ActionInsertBlock:
		return executeInsertBlock(p, action, deps)
	case diag.ActionRemoveBlock:
		return executeRemoveBlock(p, action)
	case diag.ActionAddAdapter:
		return executeAddAdapter(p, action, deps)
	case diag.ActionCreateTimeRoot:
		return executeCreateTimeRoot(p, action, deps)
	case diag.ActionMuteDiagnostic:
		return executeMuteDiagnostic(action)
	case diag.ActionOpenDocs:
		return executeOpenDocs(action)
	default:
		return fail(fmt.Errorf("actions: unknown action kind %q", action.Kind))
	}
}

// resolveBlock validates that an addr.Address's BlockID names a block
// still present in p, the same "target no longer exists" failure mode
// every editor action can hit once a diagnostic's patch has moved on.
func resolveBlock(p *patch.Patch, blockID string) (patch.Block, error) {
	b, found := p.BlockByID(blockID)
	if !found {
		return patch.Block{}, fmt.Errorf("actions: block %q no longer exists in patch", blockID)
	}
	return b, nil
}

func executeGoToTarget(p *patch.Patch, action diag.Action) Result {
	switch action.Target.Kind {
	case addr.Block:
		if _, err := resolveBlock(p, action.Target.BlockID); err != nil {
			return fail(err)
		}
	case addr.Output, addr.Input, addr.Param:
		if _, err := resolveBlock(p, action.Target.BlockID); err != nil {
			return fail(err)
		}
	case addr.Edge:
		if !edgeExists(p, action.Target.EdgeID) {
			return fail(fmt.Errorf("actions: edge %q no longer exists in patch", action.Target.EdgeID))
		}
	}
	return ok()
}

func edgeExists(p *patch.Patch, edgeID string) bool {
	for _, e := range p.Edges {
		if e.ID == edgeID {
			return true
		}
	}
	return false
}

// executeInsertBlock is the patch-editing path for diag.InsertBlock:
// it validates BlockType against the registry, then appends a new
// RoleUser block with one zero-value InputPortConfig/OutputPortConfig
// per the registry's declared ports — an authored block, not a
// compiler-derived one, since InsertBlock always originates from a
// user-facing fix-it ("Insert an Oscillator here").
func executeInsertBlock(p *patch.Patch, action diag.Action, deps Deps) Result {
	if deps.Registry == nil {
		return fail(fmt.Errorf("actions: InsertBlock requires a block registry"))
	}
	def, found := deps.Registry.Get(action.BlockType)
	if !found {
		return fail(fmt.Errorf("actions: unknown block type %q", action.BlockType))
	}

	id := "block_" + xid.New().String()
	inputs := make(map[string]patch.InputPortConfig, len(def.Inputs))
	for _, in := range def.Inputs {
		inputs[in.ID] = patch.InputPortConfig{}
	}
	outputs := make(map[string]patch.OutputPortConfig, len(def.Outputs))
	for _, out := range def.Outputs {
		outputs[out.ID] = patch.OutputPortConfig{}
	}

	p.Blocks = append(p.Blocks, patch.Block{
		ID:          id,
		Type:        def.Type,
		DisplayName: def.Type,
		Params:      map[string]any{},
		InputPorts:  inputs,
		OutputPorts: outputs,
		Role:        patch.BlockRole{Kind: patch.RoleUser},
	})
	return ok()
}

// executeRemoveBlock validates the block still exists, then drops it
// and every edge touching it — spec.md §3's Patch invariant that every
// Edge.From/To must name a live block/port would otherwise be
// immediately violated by the block's own removal.
func executeRemoveBlock(p *patch.Patch, action diag.Action) Result {
	if _, err := resolveBlock(p, action.BlockID); err != nil {
		return fail(err)
	}

	idx := p.BlockIndexByID(action.BlockID)
	p.Blocks = append(p.Blocks[:idx], p.Blocks[idx+1:]...)

	kept := p.Edges[:0:0]
	for _, e := range p.Edges {
		if e.From.BlockID == action.BlockID || e.To.BlockID == action.BlockID {
			continue
		}
		kept = append(kept, e)
	}
	p.Edges = kept
	return ok()
}

// executeAddAdapter validates the source port still exists, then
// rewires every enabled edge leaving it through a new derived adapter
// block — the same splice compiler pass 3 performs automatically, but
// triggered here on a single diagnostic's "Insert an adapter" action
// rather than on every mismatched edge in the patch (spec.md §4.8:
// "apply just the one fix the user picked").
func executeAddAdapter(p *patch.Patch, action diag.Action, deps Deps) Result {
	if action.FromPort.Kind != addr.Output {
		return fail(fmt.Errorf("actions: AddAdapter target must be an output port, got %v", action.FromPort.Kind))
	}
	if _, err := resolveBlock(p, action.FromPort.BlockID); err != nil {
		return fail(err)
	}

	adapterType := action.AdapterType
	if adapterType == "" {
		return fail(fmt.Errorf("actions: AddAdapter requires an adapter block type"))
	}
	if deps.Registry != nil {
		if _, found := deps.Registry.Get(adapterType); !found {
			return fail(fmt.Errorf("actions: unknown adapter type %q", adapterType))
		}
	}

	var rewired int
	for i := range p.Edges {
		e := &p.Edges[i]
		if !e.Enabled || e.Role == patch.EdgeAdapter {
			continue
		}
		if e.From.BlockID != action.FromPort.BlockID || e.From.PortID != action.FromPort.Port {
			continue
		}

		adapterID := fmt.Sprintf("adapter_%s_%s_%s", action.FromPort.BlockID, action.FromPort.Port, xid.New().String())
		p.Blocks = append(p.Blocks, patch.Block{
			ID:          adapterID,
			Type:        adapterType,
			DisplayName: adapterID,
			Params:      map[string]any{},
			InputPorts:  map[string]patch.InputPortConfig{"in": {}},
			OutputPorts: map[string]patch.OutputPortConfig{"out": {}},
			Role: patch.BlockRole{
				Kind: patch.RoleDerived,
				Meta: map[string]string{"kind": "adapter", "from": action.FromPort.String()},
			},
		})

		originalTo := e.To
		e.To = patch.PortAddress{BlockID: adapterID, PortID: "in"}
		e.Role = patch.EdgeAdapter

		p.Edges = append(p.Edges, patch.Edge{
			ID:      adapterID + "_out",
			From:    patch.PortAddress{BlockID: adapterID, PortID: "out"},
			To:      originalTo,
			Enabled: true,
			SortKey: e.SortKey,
			Role:    patch.EdgeAdapter,
		})
		rewired++
	}

	if rewired == 0 {
		return fail(fmt.Errorf("actions: no enabled edges leave %s", action.FromPort))
	}
	return ok()
}

// executeCreateTimeRoot validates that no time root already exists
// (spec.md §4.1: at most one), whether marked by RoleTime or by a
// time-root block type, then appends one of the requested kind. The
// kind is a block type ("InfiniteTimeRoot" or "BoundedTimeRoot") or the
// short form a diagnostic carries ("Infinite" or "Bounded"); an empty
// kind means InfiniteTimeRoot.
func executeCreateTimeRoot(p *patch.Patch, action diag.Action, deps Deps) Result {
	kind := action.AdapterType
	switch kind {
	case "", "Infinite":
		kind = "InfiniteTimeRoot"
	case "Bounded":
		kind = "BoundedTimeRoot"
	}
	var def blocks.BlockDef
	if deps.Registry != nil {
		var found bool
		def, found = deps.Registry.Get(kind)
		if !found {
			return fail(fmt.Errorf("actions: unknown time root block type %q", kind))
		}
	}
	for _, b := range p.Blocks {
		if b.Role.Kind == patch.RoleTime || b.Type == "InfiniteTimeRoot" || b.Type == "BoundedTimeRoot" {
			return fail(fmt.Errorf("actions: patch already has a time root (%s)", b.ID))
		}
	}

	outputs := make(map[string]patch.OutputPortConfig, len(def.Outputs))
	for _, out := range def.Outputs {
		outputs[out.ID] = patch.OutputPortConfig{}
	}
	params := make(map[string]any, len(def.Params))
	for _, prm := range def.Params {
		params[prm.ID] = prm.Default
	}

	id := "timeroot_" + xid.New().String()
	p.Blocks = append(p.Blocks, patch.Block{
		ID:          id,
		Type:        kind,
		DisplayName: kind,
		Params:      params,
		InputPorts:  map[string]patch.InputPortConfig{},
		OutputPorts: outputs,
		Role:        patch.BlockRole{Kind: patch.RoleTime},
	})
	return ok()
}

// executeMuteDiagnostic and executeOpenDocs never touch the patch:
// muting is editor-session state, opening docs is a UI navigation.
// Both still validate that their payload is non-empty so a caller
// can't silently no-op a malformed action.
func executeMuteDiagnostic(action diag.Action) Result {
	if action.DiagnosticID == "" {
		return fail(fmt.Errorf("actions: MuteDiagnostic requires a diagnostic id"))
	}
	return ok()
}

func executeOpenDocs(action diag.Action) Result {
	if action.URL == "" {
		return fail(fmt.Errorf("actions: OpenDocs requires a URL"))
	}
	return ok()
}
