package types

import "fmt"

// AxisUnificationError reports a failed UnifyAxis call. Its Axis field
// names which of the five axes disagreed, for diagnostic reporting
// (spec.md §7 Type errors: "unresolvable unification").
type AxisUnificationError struct {
	Axis string
	A, B string
}

func (e *AxisUnificationError) Error() string {
	return fmt.Sprintf("types: axis %q does not unify: %s vs %s", e.Axis, e.A, e.B)
}

// UnifyAxis unifies two inference-time axis values of the same kind. A
// `var` absorbs a concrete value; two concrete values must be equal.
// UnifyAxis(a, b) == UnifyAxis(b, a) whenever both succeed — callers
// may rely on this symmetry (spec.md §8 Unification symmetry).
func UnifyAxis[T comparable](name string, a, b VarOrInst[T]) (VarOrInst[T], error) {
	switch {
	case a.IsVar && b.IsVar:
		return Var[T](), nil
	case a.IsVar:
		return b, nil
	case b.IsVar:
		return a, nil
	case a.Value == b.Value:
		return a, nil
	default:
		return VarOrInst[T]{}, &AxisUnificationError{
			Axis: name,
			A:    fmt.Sprint(a.Value),
			B:    fmt.Sprint(b.Value),
		}
	}
}

// UnifyExtent unifies every axis of two InferenceExtents, collecting
// all axis failures rather than stopping at the first (so a single
// edge produces one diagnostic per disagreeing axis, not just one).
func UnifyExtent(a, b InferenceExtent) (InferenceExtent, []error) {
	var errs []error
	out := InferenceExtent{}

	card, err := UnifyAxis("cardinality", a.Cardinality, b.Cardinality)
	if err != nil {
		errs = append(errs, err)
	}
	out.Cardinality = card

	temp, err := UnifyAxis("temporality", a.Temporality, b.Temporality)
	if err != nil {
		errs = append(errs, err)
	}
	out.Temporality = temp

	bind, err := UnifyAxis("binding", a.Binding, b.Binding)
	if err != nil {
		errs = append(errs, err)
	}
	out.Binding = bind

	persp, err := UnifyAxis("perspective", a.Perspective, b.Perspective)
	if err != nil {
		errs = append(errs, err)
	}
	out.Perspective = persp

	branch, err := UnifyAxis("branch", a.Branch, b.Branch)
	if err != nil {
		errs = append(errs, err)
	}
	out.Branch = branch

	return out, errs
}

// CanonicalType is the constructor for a fully-resolved type: payload
// × unit × extent. It performs no inference or widening — callers must
// resolve all axes first (spec.md §4.1: "no inference widening").
type CanonicalType struct {
	Payload Payload
	Unit    Unit
	Extent  Extent
}

// NewCanonicalType builds a CanonicalType from already-resolved parts.
func NewCanonicalType(payload Payload, unit Unit, extent Extent) CanonicalType {
	return CanonicalType{Payload: payload, Unit: unit, Extent: extent}
}

// Stride reports the component count for this type's payload.
func (t CanonicalType) Stride() int {
	return StrideOf(t.Payload)
}

// Equal reports full structural equality: same payload, same unit
// (structurally), same extent.
func (t CanonicalType) Equal(o CanonicalType) bool {
	return t.Payload == o.Payload &&
		UnitsEqual(t.Unit, o.Unit) &&
		t.Extent == o.Extent
}

func (t CanonicalType) String() string {
	card := "one"
	if t.Extent.Cardinality.Many {
		card = "many(" + t.Extent.Cardinality.Instance.DomainType + ")"
	}
	return fmt.Sprintf("%s<%s>[%s,%s]", t.Payload, t.Unit, card, t.Extent.Temporality)
}
