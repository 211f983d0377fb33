package runtime

import "github.com/oscilla-sh/oscilla/obslog"

// FrameAccumulator collects one frame's step outcomes so ExecuteFrame
// can emit a single end-of-frame log line instead of one per step —
// grounded on the teacher's CycleAccumulator/LogPEState pair
// (core/util.go): accumulate silently while the schedule runs, then
// emit once at LevelSnapshot.
type FrameAccumulator struct {
	NowMs        float64
	EvalSigCount int
	EventsFired  int
	RenderPasses int
}

func newFrameAccumulator(nowMs float64) *FrameAccumulator {
	return &FrameAccumulator{NowMs: nowMs}
}

// log emits the accumulated frame state at obslog.LevelSnapshot, the
// runtime counterpart to the teacher's LogPEState — gated the same
// way, so a disabled snapshot log costs one bool check per frame.
func (acc *FrameAccumulator) log() {
	obslog.Snapshot("FrameState",
		"nowMs", acc.NowMs,
		"evalSig", acc.EvalSigCount,
		"eventsFired", acc.EventsFired,
		"renderPasses", acc.RenderPasses,
	)
}
