package runtime

import (
	"math"

	"github.com/oscilla-sh/oscilla/debugtap"
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/render"
)

// snapshotIntervalMs bounds the rate at which ExecuteFrame pushes a
// Snapshot to an installed Tap, independent of the host's actual frame
// rate (spec.md §4.7: "Snapshot emission... bounded to ~15 Hz so a tap
// observer never throttles the simulation").
const snapshotIntervalMs = 1000.0 / 15.0

// Runtime executes a compiled IRProgram one frame at a time against a
// RuntimeState, the way the teacher's core/emu.go Emulator executes an
// Instr stream against a Memory (spec.md §4.6).
type Runtime struct {
	program *ir.IRProgram
	state   *RuntimeState
	pool    *BufferPool

	tap            debugtap.Tap
	lastSnapshotMs float64
	snapshotPrimed bool
}

// CreateRuntime allocates a RuntimeState for program and returns a
// Runtime ready to execute frames starting at t=0.
func CreateRuntime(program ir.IRProgram) *Runtime {
	pool := NewBufferPool()
	return &Runtime{
		program: &program,
		state:   NewRuntimeState(program, pool),
		pool:    pool,
	}
}

// SetTap installs (or clears, with nil) the debug tap that receives
// per-slot samples and periodic snapshots. graph maps the program's
// slots back to patch addresses for ProbePort queries; a Runtime never
// looks back at the source Patch itself (spec.md §3 IRProgram design
// note), so the compiler builds graph alongside the IRProgram and
// hands both to the runtime together.
func (rt *Runtime) SetTap(tap debugtap.Tap, graph *debugtap.DebugGraph) {
	rt.tap = tap
	if tap != nil && graph != nil {
		tap.OnDebugGraph(graph)
	}
}

// SetExternal installs a host-provided input value, visible to
// SigExternal nodes on the next ExecuteFrame call.
func (rt *Runtime) SetExternal(key string, value float64) {
	rt.state.SetExternal(key, value)
}

// ReadSlot returns the current backing data for a render binding's
// slot reference: the single ReadVec value for an f64 scalar slot, or
// the full field buffer for a typed-array slot.
func (rt *Runtime) ReadSlot(ref render.SlotRef) []float64 {
	slot := ir.Slot(ref.Slot)
	meta := rt.program.SlotMeta[slot]
	if meta.Storage == ir.StorageTypedArray {
		if buf := rt.state.Buffer(slot); buf != nil {
			return buf.Data
		}
		return nil
	}
	return rt.state.ReadVec(slot, meta.Stride)
}

// ExecuteFrame advances the runtime clock to nowMs and runs the
// program's schedule exactly once, in order, dispatching each Step by
// Kind (spec.md §4.6). It returns the RenderPass list produced by this
// frame's renderPass steps.
func (rt *Runtime) ExecuteFrame(nowMs float64) []render.RenderPass {
	rt.state.AdvanceTime(nowMs, rt.program.TimeModel)
	rt.state.ZeroEvents()
	if recorder, ok := rt.tap.(interface{ Advance(float64) }); ok {
		recorder.Advance(rt.state.tMs)
	}

	ctx := &evalContext{program: rt.program, state: rt.state}
	acc := newFrameAccumulator(nowMs)

	var passes []render.RenderPass
	for _, step := range rt.program.Steps {
		switch step.Kind {
		case ir.StepEvalSig:
			v := evalSigExpr(ctx, step.SigExprRef)
			rt.state.WriteVec(step.SlotRef, v)
			if rt.tap != nil {
				rt.tap.RecordSlotValue(int(step.SlotRef), v[0])
			}
			acc.EvalSigCount++

		case ir.StepMaterialize:
			rt.materialize(ctx, step)

		case ir.StepEvalEvent:
			fired := evalEventExpr(ctx, step.EventExprRef)
			rt.state.WriteEvent(step.EventSlotRef, fired)
			if rt.tap != nil {
				rt.tap.RecordSlotValue(int(step.EventSlotRef), boolToF(fired))
			}
			if fired {
				acc.EventsFired++
			}

		case ir.StepStateWrite:
			v := evalSigExpr(ctx, step.SigExprRef)
			if cell := rt.state.state[step.StateSlotRef]; cell.IsVector {
				rt.state.StateWriteVector(step.StateSlotRef, v)
			} else {
				rt.state.StateWrite(step.StateSlotRef, v[0])
			}

		case ir.StepProjection:
			rt.project(step.Projection)

		case ir.StepRenderPass:
			passes = append(passes, render.RenderPass{
				Sink:     step.RenderPass.Sink,
				Bindings: step.RenderPass.Bindings,
			})
			acc.RenderPasses++
		}
	}

	rt.maybeSnapshot()
	acc.log()

	return passes
}

func boolToF(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// materialize fills a field slot's Buffer for one frame, per
// FieldExpr.Kind.
func (rt *Runtime) materialize(ctx *evalContext, step ir.Step) {
	fe := rt.program.FieldExprs[step.FieldExprRef]
	buf := rt.state.Buffer(step.BufferSlotRef)
	if buf == nil {
		return
	}

	switch fe.Kind {
	case ir.FieldMaterialize:
		materializeLayout(ctx, fe, buf)

	case ir.FieldBroadcast:
		v := evalSigExpr(ctx, fe.BroadcastOf)
		broadcastInto(buf, v)

	case ir.FieldIndexMap:
		src := rt.state.Buffer(slotForFieldExpr(*rt.program, fe.IndexMapOf))
		if src != nil {
			copy(buf.Data, src.Data)
		}

	case ir.FieldLens:
		src := rt.state.Buffer(slotForFieldExpr(*rt.program, fe.LensInput))
		applyLens(fe, src, buf)
	}
}

// slotForFieldExpr finds the BufferSlotRef a materialize step wrote
// the given FieldExprID into, so FieldIndexMap/FieldLens can locate
// their upstream field's buffer. Field steps execute in schedule order
// upstream-before-downstream (spec.md §4.2 topological scheduling), so
// the source has already been materialized this frame.
func slotForFieldExpr(program ir.IRProgram, id ir.FieldExprID) ir.Slot {
	for _, step := range program.Steps {
		if step.Kind == ir.StepMaterialize && step.FieldExprRef == id {
			return step.BufferSlotRef
		}
	}
	return -1
}

// materializeLayout fills buf's instances from fe's named layout
// function. "grid" derives each instance's 2D position purely from its
// index and the field's total count (spec.md's from-as-type-anchor
// design: the producer expression types the field but does not drive
// per-instance values for built-in layouts). Any other/empty layout
// name falls back to broadcasting the evaluated anchor expression
// across every instance and component.
func materializeLayout(ctx *evalContext, fe ir.FieldExpr, buf *Buffer) {
	switch fe.Layout {
	case "grid":
		cols := int(math.Ceil(math.Sqrt(float64(fe.Count))))
		if cols < 1 {
			cols = 1
		}
		rows := int(math.Ceil(float64(fe.Count) / float64(cols)))
		for i := 0; i < fe.Count; i++ {
			col := i % cols
			row := i / cols
			x := (float64(col)+0.5)/float64(cols)*2 - 1
			y := (float64(row)+0.5)/float64(rows)*2 - 1
			off := i * buf.Stride
			if buf.Stride >= 1 {
				buf.Data[off] = x
			}
			if buf.Stride >= 2 {
				buf.Data[off+1] = y
			}
		}
	default:
		v := evalSigExpr(ctx, fe.From)
		broadcastInto(buf, v)
	}
}

// broadcastInto replicates v across every instance of buf, repeating
// v's own components to fill buf's stride when they differ.
func broadcastInto(buf *Buffer, v vec) {
	for i := 0; i < buf.Count; i++ {
		off := i * buf.Stride
		for c := 0; c < buf.Stride; c++ {
			buf.Data[off+c] = v[c%len(v)]
		}
	}
}

// applyLens transforms src into buf component-wise using fe.LensKind
// and fe.LensParams. Unknown lens kinds pass the source through
// unchanged.
func applyLens(fe ir.FieldExpr, src, buf *Buffer) {
	if src == nil {
		return
	}
	switch fe.LensKind {
	case "scale":
		s := fe.LensParams["amount"]
		if s == 0 {
			s = 1
		}
		for i := range buf.Data {
			buf.Data[i] = src.Data[i] * s
		}
	case "offset":
		o := fe.LensParams["amount"]
		for i := range buf.Data {
			buf.Data[i] = src.Data[i] + o
		}
	default:
		copy(buf.Data, src.Data)
	}
}

// project runs a ProjectionStep: each world-space instance passes
// through the camera's view/projection matrices into screen space.
func (rt *Runtime) project(p *ir.ProjectionStep) {
	in := rt.state.Buffer(p.InputSlot)
	out := rt.state.Buffer(p.OutputSlot)
	if in == nil || out == nil {
		return
	}
	vp := multiply4x4(p.Camera.Proj, p.Camera.View)
	for i := 0; i < p.InstanceCount; i++ {
		x := in.Data[i*in.Stride]
		y := in.Data[i*in.Stride+1]
		sx, sy := applyMatrix4x4(vp, x, y)
		out.Data[i*out.Stride] = sx
		out.Data[i*out.Stride+1] = sy
	}
}

func multiply4x4(a, b [16]float64) [16]float64 {
	var out [16]float64
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += a[r*4+k] * b[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

func applyMatrix4x4(m [16]float64, x, y float64) (float64, float64) {
	w := m[12]*x + m[13]*y + m[15]
	if w == 0 {
		w = 1
	}
	sx := (m[0]*x + m[1]*y + m[3]) / w
	sy := (m[4]*x + m[5]*y + m[7]) / w
	return sx, sy
}

func evalEventExpr(ctx *evalContext, id ir.EventExprID) bool {
	e := ctx.program.EventExprs[id]
	switch e.Kind {
	case ir.EventConst:
		return e.ConstFires
	case ir.EventNever:
		return false
	case ir.EventPulse:
		if e.PulseRateHz <= 0 {
			return false
		}
		periodMs := 1000.0 / e.PulseRateHz
		phase := wrapMod(ctx.state.tMs, periodMs)
		return phase < ctx.state.dt
	case ir.EventWrap:
		now := evalSigExpr(ctx, e.WrapPhaseOf)[0]
		prev, seen := ctx.state.wrapPrev[id]
		ctx.state.wrapPrev[id] = now
		return seen && now < prev
	case ir.EventCombine:
		for _, in := range e.CombineInputs {
			if evalEventExpr(ctx, in) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// MigrateState recompiles rt in place onto newProgram, carrying over
// every persistent state cell whose stableStateId survived the
// recompile (spec.md §4.3 protocol: allocStateSlot is keyed by
// stableStateId precisely so this works even though StateSlot indices
// are renumbered on every compile). Cells with a new or changed
// stableStateId are seeded fresh from newProgram's initial values.
// Field buffers are released back to the pool and reacquired at the
// new program's shapes; the time clock and external-input map carry
// over unchanged.
func (rt *Runtime) MigrateState(newProgram ir.IRProgram) {
	oldByStableID := make(map[string]*StateCell, len(rt.program.StateSlotMeta))
	for i, meta := range rt.program.StateSlotMeta {
		oldByStableID[meta.StableID] = rt.state.state[i]
	}

	rt.state.releaseBuffers()

	next := NewRuntimeState(newProgram, rt.pool)
	for i, meta := range newProgram.StateSlotMeta {
		if old, ok := oldByStableID[meta.StableID]; ok && old.IsVector == meta.IsVector {
			next.state[i] = old
		}
	}

	next.tMs = rt.state.tMs
	next.lastMs = rt.state.lastMs
	next.dt = rt.state.dt
	next.external = rt.state.external
	// wrapPrev is intentionally NOT carried over: EventExprID indices are
	// renumbered by the new compile, so an old index could now name an
	// unrelated node. Losing one frame's wrap-edge memory is harmless;
	// misattributing it to the wrong node would not be.

	rt.program = &newProgram
	rt.state = next
}

func (rt *Runtime) maybeSnapshot() {
	if rt.tap == nil {
		return
	}
	if rt.snapshotPrimed && rt.state.tMs-rt.lastSnapshotMs < snapshotIntervalMs {
		return
	}
	rt.snapshotPrimed = true
	rt.lastSnapshotMs = rt.state.tMs
	rt.tap.OnSnapshot(debugtap.Snapshot{
		TMs: rt.state.tMs,
	})
}

