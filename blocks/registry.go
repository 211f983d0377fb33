package blocks

// Registry is the block-type lookup table the compiler consults
// during pass 6 (lowering) and passes 3/2 (adapter selection, vararg
// validation) — grounded on the teacher's PE/core-type registries in
// core/program.go, the same "map from a string key to a declared
// capability" shape generalized from ISA opcodes to block types.
type Registry struct {
	defs map[string]BlockDef
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]BlockDef)}
}

// Register adds or replaces a BlockDef under its own Type.
func (r *Registry) Register(def BlockDef) {
	r.defs[def.Type] = def
}

// Get looks up a BlockDef by type name.
func (r *Registry) Get(blockType string) (BlockDef, bool) {
	d, ok := r.defs[blockType]
	return d, ok
}

// Len reports how many block types are registered.
func (r *Registry) Len() int { return len(r.defs) }

// Types returns every registered block type name, for diagnostics and
// tests (order is not significant; callers that need determinism
// should sort).
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.defs))
	for t := range r.defs {
		out = append(out, t)
	}
	return out
}
