// Package patch implements the authoring-level graph (spec.md §3
// "Patch") and its three normalization passes: default-source
// synthesis, vararg resolution, and adapter insertion (spec.md §4.2).
package patch

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CombineMode selects how multiple edges feeding one input port are
// reduced to a single value.
type CombineMode string

const (
	CombineSum     CombineMode = "sum"
	CombineAverage CombineMode = "average"
	CombineMax     CombineMode = "max"
	CombineMin     CombineMode = "min"
	CombineMul     CombineMode = "mul"
	CombineLast    CombineMode = "last"
	CombineFirst   CombineMode = "first"
	CombineLayer   CombineMode = "layer"
	CombineOr      CombineMode = "or"
	CombineAnd     CombineMode = "and"
)

// EdgeRole distinguishes how an edge came to exist.
type EdgeRole string

const (
	EdgeUser    EdgeRole = "user"
	EdgeDefault EdgeRole = "default"
	EdgeAuto    EdgeRole = "auto"
	EdgeAdapter EdgeRole = "adapter"
)

// BlockRoleKind distinguishes user blocks from the compiler's own
// derived blocks and the patch's domain blocks.
type BlockRoleKind string

const (
	RoleUser   BlockRoleKind = "user"
	RoleTime   BlockRoleKind = "timeRoot"
	RoleDomain BlockRoleKind = "domain"
	RoleDerived BlockRoleKind = "derived"
)

// BlockRole carries the kind plus compiler-assigned metadata (e.g. an
// adapter's source/target, a default-source's owning input).
type BlockRole struct {
	Kind BlockRoleKind
	Meta map[string]string
}

// DefaultSource names a block type + output that an unwired input
// falls back to.
type DefaultSource struct {
	BlockType string
	OutputID  string
}

// VarargConstraint bounds what a vararg input will accept.
type VarargConstraint struct {
	PayloadType    string
	MinConnections int
	MaxConnections int // 0 means unbounded
}

// VarargConnectionSpec is one authored entry in an input's
// varargConnections list, before resolution.
type VarargConnectionSpec struct {
	SourceAddress string
	SortKey       float64
}

// InputPortConfig is a block's declared configuration for one input
// port.
type InputPortConfig struct {
	DefaultSource *DefaultSource
	CombineMode   CombineMode

	IsVararg          bool
	VarargConstraint  *VarargConstraint
	VarargConnections []VarargConnectionSpec
}

// OutputPortConfig is a block's declared configuration for one output
// port. Most outputs carry no extra configuration today; this exists
// so blocks.BlockDef has a symmetric input/output shape to declare
// against.
type OutputPortConfig struct{}

// Block is one node of the authoring graph.
type Block struct {
	ID          string
	Type        string
	DisplayName string
	Params      map[string]any
	InputPorts  map[string]InputPortConfig
	OutputPorts map[string]OutputPortConfig
	Role        BlockRole
}

// PortAddress names one port of one block.
type PortAddress struct {
	BlockID string
	PortID  string
}

// Edge connects one block's output to another's input.
type Edge struct {
	ID      string
	From    PortAddress
	To      PortAddress
	Enabled bool
	SortKey float64
	Role    EdgeRole
}

// Patch is the full authoring graph: (Blocks, Edges).
type Patch struct {
	Blocks []Block
	Edges  []Edge
}

// BlockByID finds a block by ID, or returns (_, false).
func (p *Patch) BlockByID(id string) (Block, bool) {
	for _, b := range p.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

// BlockIndexByID is like BlockByID but returns the index, for callers
// needing to mutate p.Blocks[i] in place.
func (p *Patch) BlockIndexByID(id string) int {
	for i := range p.Blocks {
		if p.Blocks[i].ID == id {
			return i
		}
	}
	return -1
}

var canonicalNameStrip = regexp.MustCompile(`[^a-zA-Z0-9 _]`)
var canonicalNameSpaces = regexp.MustCompile(`\s+`)

// canonicalNameCaser lowercases displayName text the same way the
// teacher's titleCaser (core/emu.go) cases direction names: a single
// package-level caser reused across calls rather than constructed per
// call. language.Und since a canonical name is an identifier, not
// user-facing prose in any particular language.
var canonicalNameCaser = cases.Lower(language.Und)

// NormalizeCanonicalName derives a block's canonical name from its
// displayName: strip punctuation, spaces become underscores, lowercase
// the result. Two blocks with the same canonical name is a patch
// authoring error (spec.md §3 Patch invariants).
func NormalizeCanonicalName(displayName string) string {
	stripped := canonicalNameStrip.ReplaceAllString(displayName, "")
	underscored := canonicalNameSpaces.ReplaceAllString(strings.TrimSpace(stripped), "_")
	return canonicalNameCaser.String(underscored)
}

// DerivedBlockID names a deterministic default-source block, per
// spec.md §4.2 Pass 1: "defaultsource_for_<block>_<input>".
func DerivedBlockID(ownerBlockID, inputID string) string {
	return "defaultsource_for_" + ownerBlockID + "_" + inputID
}
