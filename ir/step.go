package ir

import "github.com/oscilla-sh/oscilla/render"

// StepKind is the closed set of per-frame execution steps from
// spec.md §5 "Schedule". A Schedule is a totally ordered []Step;
// execution is exactly: walk the slice, dispatch on Kind.
type StepKind int

const (
	StepEvalSig StepKind = iota
	StepMaterialize
	StepStateWrite
	StepEvalEvent
	StepRenderPass
	StepProjection
)

func (k StepKind) String() string {
	switch k {
	case StepEvalSig:
		return "evalSig"
	case StepMaterialize:
		return "materialize"
	case StepStateWrite:
		return "stateWrite"
	case StepEvalEvent:
		return "evalEvent"
	case StepRenderPass:
		return "renderPass"
	case StepProjection:
		return "projection"
	default:
		return "unknown"
	}
}

// RenderPassStep is the compile-time template for a renderPass step:
// the sink and binding shape are fixed at compile time, the slot data
// they read is filled in by the runtime each frame.
type RenderPassStep struct {
	Sink     render.Sink
	Bindings []render.Binding
}

// ProjectionStep projects a PositionWorld field through a camera into
// a PositionScreen field slot.
type ProjectionStep struct {
	Camera       render.Camera
	InputSlot    Slot
	OutputSlot   Slot
	InstanceCount int
}

// Step is a single node in the ordered schedule. Only the fields
// relevant to Kind are populated.
type Step struct {
	Kind StepKind

	SigExprRef SigExprID // StepEvalSig, StepStateWrite (source expression)
	SlotRef    Slot      // StepEvalSig (destination)

	FieldExprRef  FieldExprID // StepMaterialize
	BufferSlotRef Slot        // StepMaterialize (destination)

	StateSlotRef StateSlot // StepStateWrite (destination)

	EventExprRef EventExprID // StepEvalEvent
	EventSlotRef Slot        // StepEvalEvent (destination, 0/1 scalar)

	RenderPass *RenderPassStep // StepRenderPass
	Projection *ProjectionStep // StepProjection
}
