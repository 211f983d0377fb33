package ir

// Fn names the function a SigMap/SigZip node applies. This table is
// the single source of truth for which names are valid — grounded on
// the teacher's core/emu.go opcode table, which plays the identical
// role for its instruction set: one closed map from a string key to
// arity, consulted by the expression typechecker (to validate). The
// runtime dispatches with its own switch over these constants and does
// not read the table.
type Fn string

const (
	FnAdd   Fn = "add"
	FnSub   Fn = "sub"
	FnMul   Fn = "mul"
	FnDiv   Fn = "div"
	FnMin   Fn = "min"
	FnMax   Fn = "max"
	FnMod   Fn = "mod"
	FnAbs   Fn = "abs"
	FnNeg   Fn = "neg"
	FnSin   Fn = "sin"
	FnCos   Fn = "cos"
	FnClamp Fn = "clamp"
	FnLerp  Fn = "lerp"
	FnFloor Fn = "floor"
	FnCeil  Fn = "ceil"
	FnStep  Fn = "step"
	FnSmoothstep Fn = "smoothstep"
	FnSelect     Fn = "select" // select(cond, a, b): cond != 0 -> a, else b
	FnRgbaToHsv  Fn = "rgbaToHsv"
	FnHsvToRgba  Fn = "hsvToRgba"

	// Comparison/logical, used by the expression sub-compiler
	// (blocks/expr) to lower its binary/unary operators; results are
	// 0.0/1.0 floats, not a distinct boolean signal shape.
	FnLt  Fn = "lt"
	FnLe  Fn = "le"
	FnGt  Fn = "gt"
	FnGe  Fn = "ge"
	FnEq  Fn = "eq"
	FnNe  Fn = "ne"
	FnAnd Fn = "and"
	FnOr  Fn = "or"
	FnNot Fn = "not"
)

// FnArity is the required argument count for each Fn. SigMap nodes
// must have exactly one Arg; SigZip nodes must match this arity.
var FnArity = map[Fn]int{
	FnAdd:        2,
	FnSub:        2,
	FnMul:        2,
	FnDiv:        2,
	FnMin:        2,
	FnMax:        2,
	FnMod:        2,
	FnAbs:        1,
	FnNeg:        1,
	FnSin:        1,
	FnCos:        1,
	FnClamp:      3,
	FnLerp:       3,
	FnFloor:      1,
	FnCeil:       1,
	FnStep:       2,
	FnSmoothstep: 3,
	FnSelect:     3,
	FnRgbaToHsv:  1,
	FnHsvToRgba:  1,
	FnLt:         2,
	FnLe:         2,
	FnGt:         2,
	FnGe:         2,
	FnEq:         2,
	FnNe:         2,
	FnAnd:        2,
	FnOr:         2,
	FnNot:        1,
}

// IsValidFn reports whether name is a known Fn.
func IsValidFn(name string) bool {
	_, ok := FnArity[Fn(name)]
	return ok
}
