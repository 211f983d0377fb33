package ir

// TimeModel captures the single TimeRoot's configuration (spec.md
// §4.1 invariant: exactly one reachable TimeRoot per patch). Kind
// selects which time-advance rule the runtime applies each frame.
type TimeModel struct {
	Kind       string  // "infinite" | "bounded" | "looped"
	DurationMs float64 // "bounded", "looped": length of the time window
}

// IRProgram is the immutable, fully compiled artifact a Compile call
// produces: the four expression streams, the slot/state-slot layout,
// the ordered schedule, and the time model. A Runtime only ever needs
// an IRProgram plus a RuntimeState to execute frames — it never looks
// back at the source Patch.
type IRProgram struct {
	SigExprs      []SigExpr
	FieldExprs    []FieldExpr
	EventExprs    []EventExpr
	Steps         []Step
	SlotMeta      []SlotMeta
	StateSlotMeta []StateSlotMeta
	TimeModel     TimeModel
}

// SlotCount reports the number of value slots a ValueStore must hold
// to run this program.
func (p IRProgram) SlotCount() int { return len(p.SlotMeta) }

// StateSlotCount reports the number of persistent state cells this
// program's blocks allocated.
func (p IRProgram) StateSlotCount() int { return len(p.StateSlotMeta) }
