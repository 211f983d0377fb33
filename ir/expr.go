package ir

import "github.com/oscilla-sh/oscilla/types"

// SigExprID indexes the SigExpr stream.
type SigExprID int

// FieldExprID indexes the FieldExpr stream.
type FieldExprID int

// EventExprID indexes the EventExpr stream.
type EventExprID int

// SigExprKind is the closed set of scalar-signal expression shapes
// from spec.md §3. As with diag.Action, this is one tagged struct
// rather than an interface per variant — the teacher dispatches
// instructions the same way, by opcode field, not by type switch over
// a hierarchy (core/emu.go's Instr.Op).
type SigExprKind int

const (
	SigConst SigExprKind = iota
	SigSlot
	SigTime
	SigExternal
	SigMap
	SigZip
	SigStateRead
	SigShapeRef
	SigEventRead
)

func (k SigExprKind) String() string {
	switch k {
	case SigConst:
		return "const"
	case SigSlot:
		return "slot"
	case SigTime:
		return "time"
	case SigExternal:
		return "external"
	case SigMap:
		return "map"
	case SigZip:
		return "zip"
	case SigStateRead:
		return "stateRead"
	case SigShapeRef:
		return "shapeRef"
	case SigEventRead:
		return "eventRead"
	default:
		return "unknown"
	}
}

// TimeAxis names the five externally-clocked quantities exposed
// through SigTime (spec.md §3 "TimeContext").
type TimeAxis string

const (
	TimeAxisTMs     TimeAxis = "tMs"
	TimeAxisDt      TimeAxis = "dt"
	TimeAxisPhaseA  TimeAxis = "phaseA"
	TimeAxisPhaseB  TimeAxis = "phaseB"
	TimeAxisEnergy  TimeAxis = "energy"
)

// SigExpr is a single node in the scalar-signal expression stream.
// Only the fields relevant to Kind are populated.
type SigExpr struct {
	Kind SigExprKind

	Const float64 // SigConst

	SlotRef Slot // SigSlot: a previously evaluated slot to alias

	TimeAxis TimeAxis // SigTime

	ExternalKey string // SigExternal: host-provided input name

	Fn   string       // SigMap, SigZip: function name, see fn.go
	Args []SigExprID // SigMap (len 1), SigZip (len >= 1)

	StateSlotRef StateSlot // SigStateRead

	ShapeRef string // SigShapeRef: named shape/path asset

	EventSlotRef Slot // SigEventRead: event-scalar slot to read as 0/1
}

// FieldExprKind is the closed set of per-instance field expression
// shapes from spec.md §3.
type FieldExprKind int

const (
	FieldMaterialize FieldExprKind = iota
	FieldBroadcast
	FieldIndexMap
	FieldLens
)

func (k FieldExprKind) String() string {
	switch k {
	case FieldMaterialize:
		return "materialize"
	case FieldBroadcast:
		return "broadcast"
	case FieldIndexMap:
		return "indexMap"
	case FieldLens:
		return "lens"
	default:
		return "unknown"
	}
}

// FieldExpr is a single node in the per-instance field expression
// stream.
type FieldExpr struct {
	Kind FieldExprKind

	From     SigExprID      // FieldMaterialize: per-instance producer, evaluated once per index
	Count    int            // FieldMaterialize, FieldBroadcast: instance count
	Layout   string         // FieldMaterialize: named layout function (e.g. "grid", "ring")
	Instance types.InstanceRef // FieldMaterialize, FieldBroadcast: which domain instance this field ranges over

	BroadcastOf SigExprID // FieldBroadcast: scalar expanded across instances

	IndexMapOf FieldExprID // FieldIndexMap: source field reindexed

	LensKind   string             // FieldLens
	LensParams map[string]float64 // FieldLens
	LensInput  FieldExprID        // FieldLens
}

// EventExprKind is the closed set of discrete-event expression shapes
// from spec.md §3.
type EventExprKind int

const (
	EventConst EventExprKind = iota
	EventPulse
	EventWrap
	EventCombine
	EventNever
)

func (k EventExprKind) String() string {
	switch k {
	case EventConst:
		return "const"
	case EventPulse:
		return "pulse"
	case EventWrap:
		return "wrap"
	case EventCombine:
		return "combine"
	case EventNever:
		return "never"
	default:
		return "unknown"
	}
}

// EventExpr is a single node in the discrete-event expression stream.
type EventExpr struct {
	Kind EventExprKind

	ConstFires bool // EventConst

	PulseRateHz float64 // EventPulse

	WrapPhaseOf SigExprID // EventWrap: fires when this phase signal wraps 1.0 -> 0.0

	CombineInputs []EventExprID // EventCombine: fires if any input fires this frame (logical OR)
}
