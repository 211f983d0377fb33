package patch

import "fmt"

// ApplyDefaultSources is compiler pass 1 (spec.md §4.2 Pass 1): for
// every non-vararg input that carries a defaultSource descriptor and
// has no enabled edge feeding it, synthesize a derived block plus a
// 'default'-role edge. Derived block IDs are deterministic
// (DerivedBlockID) so recompiling the same patch twice produces
// identical derived blocks.
//
// Synthesis walks a snapshot of the blocks taken before this pass
// runs, so a default-source block never itself receives a default
// source.
func ApplyDefaultSources(p *Patch) {
	wired := wiredInputs(p)
	originalBlocks := append([]Block(nil), p.Blocks...)

	for _, b := range originalBlocks {
		for portID, cfg := range b.InputPorts {
			if cfg.IsVararg || cfg.DefaultSource == nil {
				continue
			}
			if wired[PortAddress{BlockID: b.ID, PortID: portID}] {
				continue
			}

			derivedID := DerivedBlockID(b.ID, portID)
			if p.BlockIndexByID(derivedID) == -1 {
				p.Blocks = append(p.Blocks, Block{
					ID:          derivedID,
					Type:        cfg.DefaultSource.BlockType,
					DisplayName: derivedID,
					Params:      map[string]any{},
					InputPorts:  map[string]InputPortConfig{},
					OutputPorts: map[string]OutputPortConfig{cfg.DefaultSource.OutputID: {}},
					Role: BlockRole{
						Kind: RoleDerived,
						Meta: map[string]string{"servesInput": portID, "servesBlock": b.ID, "derivedKind": "defaultSource"},
					},
				})
			}

			p.Edges = append(p.Edges, Edge{
				ID:      fmt.Sprintf("edge_default_%s_%s", b.ID, portID),
				From:    PortAddress{BlockID: derivedID, PortID: cfg.DefaultSource.OutputID},
				To:      PortAddress{BlockID: b.ID, PortID: portID},
				Enabled: true,
				Role:    EdgeDefault,
			})
		}
	}
}

func wiredInputs(p *Patch) map[PortAddress]bool {
	wired := make(map[PortAddress]bool)
	for _, e := range p.Edges {
		if e.Enabled {
			wired[e.To] = true
		}
	}
	return wired
}
