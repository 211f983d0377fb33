package patch

import (
	"fmt"

	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/diag"
	"github.com/oscilla-sh/oscilla/types"
)

// AdapterKey is the lookup key for pass 3's adapter table: a
// (srcPayload, srcUnit, dstPayload, dstUnit) tuple (spec.md §4.2
// Pass 3: "Adapter selection is a table lookup").
type AdapterKey struct {
	SrcPayload types.Payload
	SrcUnit    types.Unit
	DstPayload types.Payload
	DstUnit    types.Unit
}

// AdapterRegistry maps an AdapterKey to the block type that bridges
// it. It is supplied by the compiler (backed by the block registry),
// not owned by patch, for the same layering reason as PortTypeLookup.
type AdapterRegistry map[AdapterKey]string

// InputTypeLookup answers "what type does this input port accept",
// the target-side counterpart to PortTypeLookup.
type InputTypeLookup func(target addr.Address) (ResolvedPort, error)

// InsertAdapters is compiler pass 3 (spec.md §4.2 Pass 3): for every
// enabled edge whose source and target types don't already unify, look
// up an adapter by (srcPayload, srcUnit, dstPayload, dstUnit). If one
// exists, splice a derived adapter block between source and target
// (role.meta.kind = "adapter"); if not, emit a diagnostic.
func InsertAdapters(p *Patch, registry AdapterRegistry, sourceType PortTypeLookup, targetType InputTypeLookup) []diag.Diagnostic {
	var diags []diag.Diagnostic
	originalEdges := append([]Edge(nil), p.Edges...)
	var keptEdges []Edge

	for _, e := range originalEdges {
		if !e.Enabled || e.Role == EdgeAdapter {
			keptEdges = append(keptEdges, e)
			continue
		}

		srcAddr := addr.NewOutputAddress(e.From.BlockID, e.From.PortID)
		dstAddr := addr.NewInputAddress(e.To.BlockID, e.To.PortID)

		src, err := sourceType(srcAddr)
		if err != nil {
			keptEdges = append(keptEdges, e)
			continue
		}
		dst, err := targetType(dstAddr)
		if err != nil {
			keptEdges = append(keptEdges, e)
			continue
		}

		if src.Payload == dst.Payload && types.UnitsEqual(src.Unit, dst.Unit) && src.Many == dst.Many {
			keptEdges = append(keptEdges, e)
			continue
		}

		key := AdapterKey{SrcPayload: src.Payload, SrcUnit: src.Unit, DstPayload: dst.Payload, DstUnit: dst.Unit}
		adapterType, ok := registry[key]
		if !ok {
			diags = append(diags, diag.New(diag.EUnitMismatch, diag.SeverityError, diag.DomainType,
				"No adapter for this connection",
				fmt.Sprintf("%s (%s<%s>) does not unify with %s (%s<%s>) and no adapter is registered",
					srcAddr, src.Payload, src.Unit, dstAddr, dst.Payload, dst.Unit),
				dstAddr).
				WithActions(diag.AddAdapter(srcAddr, "")))
			keptEdges = append(keptEdges, e)
			continue
		}

		adapterID := fmt.Sprintf("adapter_%s_%s_to_%s_%s", e.From.BlockID, e.From.PortID, e.To.BlockID, e.To.PortID)
		if p.BlockIndexByID(adapterID) == -1 {
			p.Blocks = append(p.Blocks, Block{
				ID:          adapterID,
				Type:        adapterType,
				DisplayName: adapterID,
				Params:      map[string]any{},
				InputPorts:  map[string]InputPortConfig{"in": {}},
				OutputPorts: map[string]OutputPortConfig{"out": {}},
				Role: BlockRole{
					Kind: RoleDerived,
					Meta: map[string]string{"kind": "adapter", "from": srcAddr.String(), "to": dstAddr.String()},
				},
			})
		}

		keptEdges = append(keptEdges,
			Edge{
				ID:      adapterID + "_in",
				From:    e.From,
				To:      PortAddress{BlockID: adapterID, PortID: "in"},
				Enabled: true,
				SortKey: e.SortKey,
				Role:    EdgeAdapter,
			},
			Edge{
				ID:      adapterID + "_out",
				From:    PortAddress{BlockID: adapterID, PortID: "out"},
				To:      e.To,
				Enabled: true,
				SortKey: e.SortKey,
				Role:    EdgeAdapter,
			},
		)
	}

	p.Edges = keptEdges
	return diags
}
