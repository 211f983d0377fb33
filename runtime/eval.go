package runtime

import (
	"math"

	"github.com/oscilla-sh/oscilla/ir"
)

// vec is a runtime signal value of one or more components: scalar
// floats have len 1, Vec2 has len 2, Color has len 4 (spec.md §3
// payload strides). Fn evaluation broadcasts a shorter vec against a
// longer one component-wise, the way a GLSL-style shader language
// broadcasts a scalar against a vector.
type vec []float64

func scalar(v float64) vec { return vec{v} }

// broadcastPair widens a and b to the same length when one is a
// scalar and the other is not; mismatched non-scalar lengths are a
// compiler invariant violation (type resolution guarantees matching
// strides reach here), not a runtime condition to recover from.
func broadcastPair(a, b vec) (vec, vec) {
	if len(a) == len(b) {
		return a, b
	}
	if len(a) == 1 {
		return repeat(a[0], len(b)), b
	}
	if len(b) == 1 {
		return a, repeat(b[0], len(a))
	}
	return a, b
}

func repeat(v float64, n int) vec {
	out := make(vec, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// evalContext bundles everything evalSigExpr needs to resolve a
// SigExpr node: the program's expression streams (for recursive Args
// lookups) and the live RuntimeState (for slot/state/time/external
// reads).
type evalContext struct {
	program *ir.IRProgram
	state   *RuntimeState
}

// evalSigExpr recursively evaluates a scalar-signal expression tree
// (spec.md §3 SigExpr union; §4.6 step 3 "evalSig: ... read args from
// expr tree, write result to slot").
func evalSigExpr(ctx *evalContext, id ir.SigExprID) vec {
	e := ctx.program.SigExprs[id]
	switch e.Kind {
	case ir.SigConst:
		return scalar(e.Const)

	case ir.SigSlot:
		meta := ctx.program.SlotMeta[e.SlotRef]
		return vec(ctx.state.ReadVec(e.SlotRef, meta.Stride))

	case ir.SigTime:
		return scalar(evalTimeAxis(ctx.state, e.TimeAxis))

	case ir.SigExternal:
		return scalar(ctx.state.readExternal(e.ExternalKey))

	case ir.SigStateRead:
		return scalar(ctx.state.StateRead(e.StateSlotRef))

	case ir.SigShapeRef:
		// Shape assets are resolved by the host renderer, not the
		// signal evaluator; the signal side only ever carries a
		// placeholder so downstream Fn nodes have something to chain.
		return scalar(0)

	case ir.SigEventRead:
		return scalar(ctx.state.ReadEvent(e.EventSlotRef))

	case ir.SigMap:
		args := []vec{evalSigExpr(ctx, e.Args[0])}
		return applyFn(ir.Fn(e.Fn), args)

	case ir.SigZip:
		args := make([]vec, len(e.Args))
		for i, a := range e.Args {
			args[i] = evalSigExpr(ctx, a)
		}
		return applyFn(ir.Fn(e.Fn), args)

	default:
		return scalar(0)
	}
}

func evalTimeAxis(s *RuntimeState, axis ir.TimeAxis) float64 {
	switch axis {
	case ir.TimeAxisTMs:
		return s.tMs
	case ir.TimeAxisDt:
		return s.dt
	case ir.TimeAxisPhaseA:
		return wrapMod(s.tMs/1000.0, 1.0)
	case ir.TimeAxisPhaseB:
		return wrapMod(s.tMs/5000.0, 1.0)
	case ir.TimeAxisEnergy:
		return math.Min(math.Max(s.dt/(1000.0/60.0), 0), 2)
	default:
		return 0
	}
}

// applyFn dispatches a Fn over already-evaluated argument vecs,
// broadcasting scalars against wider payloads (Vec2, Color) the way
// rgbaToHsv/hsvToRgba's stride-4 round trip requires.
func applyFn(fn ir.Fn, args []vec) vec {
	switch fn {
	case ir.FnAdd:
		return zipBinary(args[0], args[1], func(a, b float64) float64 { return a + b })
	case ir.FnSub:
		return zipBinary(args[0], args[1], func(a, b float64) float64 { return a - b })
	case ir.FnMul:
		return zipBinary(args[0], args[1], func(a, b float64) float64 { return a * b })
	case ir.FnDiv:
		return zipBinary(args[0], args[1], func(a, b float64) float64 {
			if b == 0 {
				return 0
			}
			return a / b
		})
	case ir.FnMin:
		return zipBinary(args[0], args[1], math.Min)
	case ir.FnMax:
		return zipBinary(args[0], args[1], math.Max)
	case ir.FnMod:
		return zipBinary(args[0], args[1], func(a, b float64) float64 {
			if b == 0 {
				return 0
			}
			return wrapMod(a, b)
		})
	case ir.FnAbs:
		return mapUnary(args[0], math.Abs)
	case ir.FnNeg:
		return mapUnary(args[0], func(a float64) float64 { return -a })
	case ir.FnSin:
		return mapUnary(args[0], math.Sin)
	case ir.FnCos:
		return mapUnary(args[0], math.Cos)
	case ir.FnFloor:
		return mapUnary(args[0], math.Floor)
	case ir.FnCeil:
		return mapUnary(args[0], math.Ceil)
	case ir.FnStep:
		return zipBinary(args[0], args[1], func(edge, x float64) float64 {
			if x < edge {
				return 0
			}
			return 1
		})
	case ir.FnClamp:
		return zipTernary(args[0], args[1], args[2], func(x, lo, hi float64) float64 {
			return math.Min(math.Max(x, lo), hi)
		})
	case ir.FnLerp:
		return zipTernary(args[0], args[1], args[2], func(a, b, t float64) float64 {
			return a + (b-a)*t
		})
	case ir.FnSmoothstep:
		return zipTernary(args[0], args[1], args[2], smoothstep)
	case ir.FnSelect:
		return zipTernary(args[0], args[1], args[2], func(cond, a, b float64) float64 {
			if cond != 0 {
				return a
			}
			return b
		})
	case ir.FnRgbaToHsv:
		return rgbaToHsv(args[0])
	case ir.FnHsvToRgba:
		return hsvToRgba(args[0])
	case ir.FnLt:
		return zipBinary(args[0], args[1], boolFn(func(a, b float64) bool { return a < b }))
	case ir.FnLe:
		return zipBinary(args[0], args[1], boolFn(func(a, b float64) bool { return a <= b }))
	case ir.FnGt:
		return zipBinary(args[0], args[1], boolFn(func(a, b float64) bool { return a > b }))
	case ir.FnGe:
		return zipBinary(args[0], args[1], boolFn(func(a, b float64) bool { return a >= b }))
	case ir.FnEq:
		return zipBinary(args[0], args[1], boolFn(func(a, b float64) bool { return a == b }))
	case ir.FnNe:
		return zipBinary(args[0], args[1], boolFn(func(a, b float64) bool { return a != b }))
	case ir.FnAnd:
		return zipBinary(args[0], args[1], boolFn(func(a, b float64) bool { return a != 0 && b != 0 }))
	case ir.FnOr:
		return zipBinary(args[0], args[1], boolFn(func(a, b float64) bool { return a != 0 || b != 0 }))
	case ir.FnNot:
		return mapUnary(args[0], func(a float64) float64 {
			if a == 0 {
				return 1
			}
			return 0
		})
	default:
		return scalar(0)
	}
}

func boolFn(pred func(a, b float64) bool) func(a, b float64) float64 {
	return func(a, b float64) float64 {
		if pred(a, b) {
			return 1
		}
		return 0
	}
}

func mapUnary(a vec, f func(float64) float64) vec {
	out := make(vec, len(a))
	for i, v := range a {
		out[i] = f(v)
	}
	return out
}

func zipBinary(a, b vec, f func(a, b float64) float64) vec {
	a, b = broadcastPair(a, b)
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(vec, n)
	for i := range out {
		out[i] = f(a[i], b[i])
	}
	return out
}

func zipTernary(a, b, c vec, f func(a, b, c float64) float64) vec {
	ab, bb := broadcastPair(a, b)
	ab, cb := broadcastPair(ab, c)
	bb, cb = broadcastPair(bb, cb)
	n := len(ab)
	out := make(vec, n)
	for i := range out {
		out[i] = f(ab[i], bb[i], cb[i])
	}
	return out
}

func smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := math.Min(math.Max((x-edge0)/(edge1-edge0), 0), 1)
	return t * t * (3 - 2*t)
}

// rgbaToHsv converts a stride-4 [r,g,b,a] vec to stride-4 [h,s,v,a].
// h is in turns (0..1), matching the AnglePhase01 unit used elsewhere
// for cyclic quantities.
func rgbaToHsv(c vec) vec {
	r, g, b, a := c[0], c[1], c[2], c[3]
	maxV := math.Max(r, math.Max(g, b))
	minV := math.Min(r, math.Min(g, b))
	delta := maxV - minV

	h := 0.0
	switch {
	case delta == 0:
		h = 0
	case maxV == r:
		h = wrapMod((g-b)/delta, 6) / 6
	case maxV == g:
		h = ((b-r)/delta + 2) / 6
	default:
		h = ((r-g)/delta + 4) / 6
	}

	s := 0.0
	if maxV != 0 {
		s = delta / maxV
	}

	return vec{h, s, maxV, a}
}

// hsvToRgba converts a stride-4 [h,s,v,a] vec (h in turns) to stride-4
// [r,g,b,a].
func hsvToRgba(c vec) vec {
	h, s, v, a := wrapMod(c[0], 1)*6, c[1], c[2], c[3]
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return vec{r, g, b, a}
}
