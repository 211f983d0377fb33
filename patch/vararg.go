package patch

import (
	"fmt"
	"sort"

	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/diag"
	"github.com/oscilla-sh/oscilla/types"
)

// ResolvedPort is what a PortTypeLookup reports about an address: the
// canonical payload/unit/cardinality a source output produces. Patch
// stays below the block registry in the dependency order (spec.md §2),
// so it never imports blocks directly — the compiler orchestrator
// supplies this lookup, backed by the registry's declared port types.
type ResolvedPort struct {
	Payload types.Payload
	Unit    types.Unit
	Many    bool
}

// PortTypeLookup answers "what does this address produce", used by
// vararg validation and adapter selection alike.
type PortTypeLookup func(source addr.Address) (ResolvedPort, error)

// ResolvedVarargConnection is one validated, sorted vararg connection,
// keyed by owning block/port in the returned map (spec.md §4.2 Pass 2:
// "resolvedConnections: map<blockId, map<portId, ResolvedVarargConnection[]>>").
type ResolvedVarargConnection struct {
	Source  addr.Address
	SortKey float64
	Payload types.Payload
	Unit    types.Unit
}

// ResolveVarargs is compiler pass 2 (spec.md §4.2 Pass 2): resolve
// every vararg input's sourceAddress entries to outputs, reject
// kind- and payload-mismatched connections, enforce
// min/maxConnections, and sort survivors by sortKey. A source output's
// cardinality (signal or field) is not compared.
func ResolveVarargs(p *Patch, registry *addr.Registry, lookup PortTypeLookup) (map[string]map[string][]ResolvedVarargConnection, []diag.Diagnostic) {
	resolved := make(map[string]map[string][]ResolvedVarargConnection)
	var diags []diag.Diagnostic

	for _, b := range p.Blocks {
		for portID, cfg := range b.InputPorts {
			if !cfg.IsVararg {
				continue
			}

			target := addr.NewInputAddress(b.ID, portID)

			var conns []ResolvedVarargConnection
			for _, spec := range cfg.VarargConnections {
				srcTarget, err := registry.Resolve(spec.SourceAddress)
				if err != nil {
					diags = append(diags, diag.New(diag.EVarargUnresolvedAddress, diag.SeverityError, diag.DomainType,
						"Unresolved vararg source",
						fmt.Sprintf("vararg source %q on %s.%s does not resolve: %v", spec.SourceAddress, b.ID, portID, err),
						target))
					continue
				}
				if srcTarget.Address.Kind != addr.Output {
					diags = append(diags, diag.New(diag.EVarargUnresolvedAddress, diag.SeverityError, diag.DomainType,
						"Vararg source is not an output",
						fmt.Sprintf("vararg source %q on %s.%s must name an output port", spec.SourceAddress, b.ID, portID),
						target))
					continue
				}

				port, err := lookup(srcTarget.Address)
				if err != nil {
					diags = append(diags, diag.New(diag.EVarargUnresolvedAddress, diag.SeverityError, diag.DomainType,
						"Vararg source has no known type",
						fmt.Sprintf("vararg source %q on %s.%s: %v", spec.SourceAddress, b.ID, portID, err),
						target))
					continue
				}

				if cfg.VarargConstraint != nil {
					wantPayload, ok := types.ParsePayload(cfg.VarargConstraint.PayloadType)
					if ok && port.Payload != wantPayload {
						diags = append(diags, diag.New(diag.EVarargTypeMismatch, diag.SeverityError, diag.DomainType,
							"Vararg payload mismatch",
							fmt.Sprintf("vararg source %q on %s.%s has payload %s, want %s",
								spec.SourceAddress, b.ID, portID, port.Payload, cfg.VarargConstraint.PayloadType),
							target))
						continue
					}
				}

				conns = append(conns, ResolvedVarargConnection{
					Source:  srcTarget.Address,
					SortKey: spec.SortKey,
					Payload: port.Payload,
					Unit:    port.Unit,
				})
			}

			if len(conns) > 1 {
				first := conns[0].Payload
				for _, c := range conns[1:] {
					if c.Payload != first {
						diags = append(diags, diag.New(diag.EVarargTypeMismatch, diag.SeverityError, diag.DomainType,
							"Vararg connections disagree on payload",
							fmt.Sprintf("vararg input %s.%s mixes payload %s and %s", b.ID, portID, first, c.Payload),
							target))
						break
					}
				}
			}

			if cfg.VarargConstraint != nil {
				min := cfg.VarargConstraint.MinConnections
				max := cfg.VarargConstraint.MaxConnections
				if len(conns) < min || (max > 0 && len(conns) > max) {
					diags = append(diags, diag.New(diag.EVarargCountViolation, diag.SeverityError, diag.DomainType,
						"Vararg connection count out of range",
						fmt.Sprintf("vararg input %s.%s has %d connections, want between %d and %d",
							b.ID, portID, len(conns), min, max),
						target))
				}
			}

			sort.SliceStable(conns, func(i, j int) bool { return conns[i].SortKey < conns[j].SortKey })

			if resolved[b.ID] == nil {
				resolved[b.ID] = make(map[string][]ResolvedVarargConnection)
			}
			resolved[b.ID][portID] = conns
		}
	}

	return resolved, diags
}
