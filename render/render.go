// Package render defines the boundary record types a compiled patch
// emits each frame: spec.md §5's RenderPass, the hand-off to whatever
// draws pixels. Oscilla never draws anything itself — this package only
// describes the shape of that hand-off, mirroring the teacher's own
// emu/host boundary (core/emu.go's Memory/Device interfaces) where the
// simulator hands a finished artifact to something outside its scope.
package render

// SinkKind names the kind of output surface a RenderPass targets.
type SinkKind string

const (
	SinkCanvas     SinkKind = "canvas"
	SinkOffscreen  SinkKind = "offscreen"
	SinkCustom     SinkKind = "custom"
)

// Sink identifies a concrete render target by kind and ID (the ID is
// opaque to Oscilla — it is whatever the host renderer uses to look up
// a canvas/texture/buffer).
type Sink struct {
	Kind SinkKind
	ID   string
}

// Semantic names what a Binding's data means, so a generic host
// renderer can map slot data onto draw calls without hardcoding block
// knowledge.
type Semantic string

const (
	SemPosition  Semantic = "position"
	SemColor     Semantic = "color"
	SemRadius    Semantic = "radius"
	SemScreenPos Semantic = "screenPos"
)

// SlotRef is a render-side reference to a runtime value slot, kept as
// a bare int (rather than importing ir.Slot) so render stays a leaf
// package with no upward dependency on ir.
type SlotRef struct {
	Slot int
}

// Binding attaches a semantic meaning to a slot's data for one
// RenderPass, along with its instance count and per-instance stride.
type Binding struct {
	Semantic Semantic
	From     SlotRef
	Count    int
	Stride   int
}

// CameraMode selects the projection a Camera applies.
type CameraMode string

const (
	CameraOrtho CameraMode = "ortho"
	CameraPersp CameraMode = "persp"
)

// Camera is a row-major 4x4 view/projection pair. Oscilla computes
// these from PositionWorld field data; it never inverts or decomposes
// them.
type Camera struct {
	Mode CameraMode
	View [16]float64
	Proj [16]float64
}

// RenderPass is the finished, frame-scoped artifact a Step.renderPass
// produces: a sink, the bindings feeding it, and an optional camera.
type RenderPass struct {
	Sink     Sink
	Bindings []Binding
	Camera   *Camera
}
