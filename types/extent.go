package types

// InstanceRef names the domain a Field's cardinality-many axis ranges
// over (spec.md §3: "Instance axes carry InstanceRef(domainType,
// instanceId)"). Two fields over different domains fail to unify.
type InstanceRef struct {
	DomainType string
	InstanceID string
}

// CardinalityValue is the resolved value of the cardinality axis: a
// Signal (Many=false) or a Field over a concrete instance domain.
type CardinalityValue struct {
	Many     bool
	Instance InstanceRef // zero value when !Many
}

// One is the Signal cardinality: not-many, no instance.
var One = CardinalityValue{}

// Many builds a Field cardinality over the given instance.
func Many(ref InstanceRef) CardinalityValue {
	return CardinalityValue{Many: true, Instance: ref}
}

// Temporality distinguishes continuous signals/fields from discrete events.
type Temporality int

const (
	Continuous Temporality = iota
	Discrete
)

func (t Temporality) String() string {
	if t == Discrete {
		return "discrete"
	}
	return "continuous"
}

// Binding distinguishes a port that still needs a producer (Default,
// i.e. unwired and falling back to its defaultSource) from one with a
// user or derived edge feeding it (Bound).
type Binding int

const (
	BindingDefault Binding = iota
	BindingBound
)

// Perspective and Branch are reserved axes. spec.md §9 leaves their
// semantics at "default" throughout — they exist to be unified, and no
// pass may branch on their value yet.
type Perspective int
type Branch int

const (
	PerspectiveDefault Perspective = iota
)

const (
	BranchDefault Branch = iota
)

// Extent is the fully-resolved, canonical tuple of axes attached to a
// CanonicalType. Every field here is concrete — no `var` placeholders
// survive past pass 4 (type resolution); those live only in
// InferenceExtent below.
type Extent struct {
	Cardinality CardinalityValue
	Temporality Temporality
	Binding     Binding
	Perspective Perspective
	Branch      Branch
}

// DefaultExtent is a continuous, bound Signal with both reserved axes
// at their default value — the common case for simple pure blocks.
func DefaultExtent() Extent {
	return Extent{
		Cardinality: One,
		Temporality: Continuous,
		Binding:     BindingBound,
		Perspective: PerspectiveDefault,
		Branch:      BranchDefault,
	}
}

// VarOrInst is one inference-time axis: either an unresolved inference
// variable (IsVar) or a resolved, concrete value. The inference axis
// set is intentionally a distinct type family from the canonical
// Extent above — spec.md §4.1 requires they never be confused.
type VarOrInst[T comparable] struct {
	IsVar bool
	Value T // zero value when IsVar
}

// Var constructs an unresolved inference axis.
func Var[T comparable]() VarOrInst[T] {
	return VarOrInst[T]{IsVar: true}
}

// Inst constructs a resolved inference axis carrying v.
func Inst[T comparable](v T) VarOrInst[T] {
	return VarOrInst[T]{Value: v}
}

// InferenceExtent mirrors Extent but allows each axis to still be a
// `var` during passes 1–3. Pass 4 (type resolution) must resolve every
// axis to Inst before it can become a canonical Extent.
type InferenceExtent struct {
	Cardinality VarOrInst[CardinalityValue]
	Temporality VarOrInst[Temporality]
	Binding     VarOrInst[Binding]
	Perspective VarOrInst[Perspective]
	Branch      VarOrInst[Branch]
}

// Resolve converts an InferenceExtent into a canonical Extent. It
// panics if any axis is still a `var` — callers (pass 4) must detect
// and report unresolved axes as diagnostics before calling Resolve,
// never let an unresolved axis reach the IR.
func (e InferenceExtent) Resolve() Extent {
	if e.Cardinality.IsVar || e.Temporality.IsVar || e.Binding.IsVar ||
		e.Perspective.IsVar || e.Branch.IsVar {
		panic("types: Resolve called on an InferenceExtent with unresolved axes")
	}
	return Extent{
		Cardinality: e.Cardinality.Value,
		Temporality: e.Temporality.Value,
		Binding:     e.Binding.Value,
		Perspective: e.Perspective.Value,
		Branch:      e.Branch.Value,
	}
}

// FromExtent lifts a resolved Extent back into inference space, e.g.
// when re-unifying a concrete default against an inferred port type.
func FromExtent(e Extent) InferenceExtent {
	return InferenceExtent{
		Cardinality: Inst(e.Cardinality),
		Temporality: Inst(e.Temporality),
		Binding:     Inst(e.Binding),
		Perspective: Inst(e.Perspective),
		Branch:      Inst(e.Branch),
	}
}
