// Package debugtap implements the observation tap described in
// spec.md §4.7: an optional sink the runtime calls through so values
// are inspectable without affecting execution.
package debugtap

import (
	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/types"
)

// GraphEntry is what one canonical address resolves to in a compiled
// program: its slot, its type, and the addresses of whatever produced
// it — enough for a UI to walk a signal's dependency chain without
// re-running the compiler.
type GraphEntry struct {
	Slot              ir.Slot
	Type              types.CanonicalType
	UpstreamProducers []addr.Address
}

// DebugGraph is the compile-time index from CanonicalAddress to
// GraphEntry (spec.md §4.7 "DebugGraph"). It is immutable across a
// program's life — a recompile produces a new DebugGraph rather than
// mutating this one.
type DebugGraph struct {
	entries map[string]GraphEntry
}

// NewDebugGraph returns an empty DebugGraph ready for Add calls during
// compilation.
func NewDebugGraph() *DebugGraph {
	return &DebugGraph{entries: make(map[string]GraphEntry)}
}

// Add indexes one address's graph entry. Compiler passes call this as
// they lower each port to a slot.
func (g *DebugGraph) Add(a addr.Address, entry GraphEntry) {
	g.entries[a.String()] = entry
}

// ProbePort resolves a canonical port address to its graph entry. UI
// queries use this rather than edge identity, which is unstable across
// recompile (spec.md §4.7 "Slot->edge resolution").
func (g *DebugGraph) ProbePort(a addr.Address) (GraphEntry, bool) {
	e, ok := g.entries[a.String()]
	return e, ok
}

// Len reports how many addresses this graph indexes.
func (g *DebugGraph) Len() int { return len(g.entries) }
