package debugtap

// ValueKind is the closed set of payload shapes a ValueSummary can
// carry (spec.md §4.7: "ValueSummary is a tagged union over payload
// kinds (num | phase | color | vec2 | bool | trigger | none | err)").
type ValueKind string

const (
	ValueNum     ValueKind = "num"
	ValuePhase   ValueKind = "phase"
	ValueColor   ValueKind = "color"
	ValueVec2    ValueKind = "vec2"
	ValueBool    ValueKind = "bool"
	ValueTrigger ValueKind = "trigger"
	ValueNone    ValueKind = "none"
	ValueErr     ValueKind = "err"
)

// ValueSummary is one sampled value, tagged by Kind; only the fields
// relevant to Kind are populated (same discriminated-struct shape as
// ir.SigExpr and diag.Action).
type ValueSummary struct {
	Kind ValueKind

	Num    float64    // ValueNum, ValuePhase, ValueTrigger, ValueBool (0/1)
	Vec    [2]float64 // ValueVec2
	Color  [4]float64 // ValueColor (r,g,b,a or h,s,v,a depending on unit)
	ErrMsg string     // ValueErr
}

// Health tallies the runtime error counters a DebugSnapshot carries
// (spec.md §7: "DebugSnapshot.health counters (nanCount, infCount,
// silentBuses)").
type Health struct {
	NaNCount     int
	InfCount     int
	SilentBuses  int
}

// Snapshot is emitted to a DebugTap at a bounded sample rate
// (spec.md §4.6 step 4, ~15 Hz).
type Snapshot struct {
	PatchRevision int
	TMs           float64
	BusNow        map[string]ValueSummary // keyed by canonical port address string
	Health        Health
}

// Tap is the runtime's observation sink (spec.md §4.7 "DebugTap").
// Minimum viable surface is RecordSlotValue; OnDebugGraph/OnSnapshot
// are the extended surface. A nil Tap is never called — the runtime
// checks before dispatching.
type Tap interface {
	RecordSlotValue(slot int, value float64)
	OnDebugGraph(graph *DebugGraph)
	OnSnapshot(snapshot Snapshot)
}
