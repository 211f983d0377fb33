// Package addr implements Oscilla's canonical addressing scheme
// (spec.md §3 "Canonical addresses"): every addressable patch element
// has a deterministic path, and parseAddress/addressToString round-trip.
package addr

import (
	"fmt"
	"regexp"
)

// Kind discriminates what an Address names.
type Kind int

const (
	Block Kind = iota
	Output
	Input
	Param
	Edge
)

// Address is a parsed canonical address. Construct one with Parse or
// one of the New* helpers rather than the struct literal, so Kind and
// the populated fields always agree.
type Address struct {
	Kind    Kind
	BlockID string
	Port    string // output/input/param id; unused for Block and Edge
	EdgeID  string // unused except for Kind == Edge
}

func NewBlockAddress(blockID string) Address { return Address{Kind: Block, BlockID: blockID} }

func NewOutputAddress(blockID, port string) Address {
	return Address{Kind: Output, BlockID: blockID, Port: port}
}

func NewInputAddress(blockID, port string) Address {
	return Address{Kind: Input, BlockID: blockID, Port: port}
}

func NewParamAddress(blockID, param string) Address {
	return Address{Kind: Param, BlockID: blockID, Port: param}
}

func NewEdgeAddress(edgeID string) Address { return Address{Kind: Edge, EdgeID: edgeID} }

// String renders the canonical "v1:..." form.
func (a Address) String() string {
	switch a.Kind {
	case Block:
		return "v1:blocks." + a.BlockID
	case Output:
		return "v1:blocks." + a.BlockID + ".outputs." + a.Port
	case Input:
		return "v1:blocks." + a.BlockID + ".inputs." + a.Port
	case Param:
		return "v1:blocks." + a.BlockID + ".params." + a.Port
	case Edge:
		return "v1:edges." + a.EdgeID
	default:
		panic(fmt.Sprintf("addr: unknown kind %d", a.Kind))
	}
}

var (
	blockAddrRe = regexp.MustCompile(`^v1:blocks\.([^.]+)(?:\.(outputs|inputs|params)\.(.+))?$`)
	edgeAddrRe  = regexp.MustCompile(`^v1:edges\.(.+)$`)
)

// Parse parses a canonical address string. It is the inverse of
// String: Parse(a.String()) == a for every Address constructed above
// (spec.md §8 "Address round-trip").
func Parse(s string) (Address, error) {
	if m := edgeAddrRe.FindStringSubmatch(s); m != nil {
		return Address{Kind: Edge, EdgeID: m[1]}, nil
	}
	m := blockAddrRe.FindStringSubmatch(s)
	if m == nil {
		return Address{}, fmt.Errorf("addr: invalid address syntax: %q", s)
	}
	blockID, section, port := m[1], m[2], m[3]
	switch section {
	case "":
		return Address{Kind: Block, BlockID: blockID}, nil
	case "outputs":
		return Address{Kind: Output, BlockID: blockID, Port: port}, nil
	case "inputs":
		return Address{Kind: Input, BlockID: blockID, Port: port}, nil
	case "params":
		return Address{Kind: Param, BlockID: blockID, Port: port}, nil
	default:
		return Address{}, fmt.Errorf("addr: invalid address syntax: %q", s)
	}
}
