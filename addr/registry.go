package addr

import "fmt"

// Target is whatever a Registry entry resolves to. The compiler fills
// this with enough to render a useful diagnostic (a display name and,
// for ports, the canonical type string) without addr depending on the
// patch or types packages.
type Target struct {
	Address     Address
	DisplayName string // the block's displayName, for error messages
	TypeString  string // human-readable type, empty when not a port
}

// Registry is the O(1) lookup index built once per compile (spec.md
// §3 "AddressRegistry"). It also resolves the `block.port` shorthand
// when a block's displayName is unique across the patch.
type Registry struct {
	byAddress map[string]Target
	// shorthand maps "displayName.port" to the list of full addresses
	// it could mean; more than one entry means the shorthand is
	// ambiguous and must be rejected.
	shorthand map[string][]string
}

func NewRegistry() *Registry {
	return &Registry{
		byAddress: make(map[string]Target),
		shorthand: make(map[string][]string),
	}
}

// Register indexes target under its own canonical address, under the
// "displayName.port" shorthand when the address names a port, and
// under the bare displayName when it names a block.
func (r *Registry) Register(target Target) {
	full := target.Address.String()
	r.byAddress[full] = target

	if target.DisplayName == "" {
		return
	}
	switch target.Address.Kind {
	case Output, Input, Param:
		key := target.DisplayName + "." + target.Address.Port
		r.shorthand[key] = append(r.shorthand[key], full)
	case Block:
		r.shorthand[target.DisplayName] = append(r.shorthand[target.DisplayName], full)
	}
}

// Resolve looks up a canonical address string or a "block.port"
// shorthand. Ambiguous shorthand (two blocks sharing a displayName) is
// an error, as is an address naming nothing registered.
func (r *Registry) Resolve(s string) (Target, error) {
	if t, ok := r.byAddress[s]; ok {
		return t, nil
	}
	if candidates, ok := r.shorthand[s]; ok {
		switch len(candidates) {
		case 1:
			return r.byAddress[candidates[0]], nil
		default:
			return Target{}, fmt.Errorf("addr: shorthand %q is ambiguous: matches %v", s, candidates)
		}
	}
	if _, err := Parse(s); err == nil {
		return Target{}, fmt.Errorf("addr: unknown target: %q", s)
	}
	return Target{}, fmt.Errorf("addr: invalid address syntax: %q", s)
}

// Len reports how many canonical addresses are registered, mostly for
// tests and diagnostics ("compiled N addressable elements").
func (r *Registry) Len() int { return len(r.byAddress) }
