package blocks

// Lowerer is the interface a BlockDef.Lower function implicitly
// satisfies. BlockDef stores Lower as a bare func value (spec.md §4.3
// calls it "lower()"), but registry-level tests that want to assert
// *how* the seam is invoked — not exercise a real block's arithmetic —
// substitute a Lowerer behind this interface instead, the same
// mock-the-seam approach the teacher takes with sim.Port/sim.Engine.
type Lowerer interface {
	Lower(args LowerArgs) (LowerResult, error)
}

// LowerFunc adapts a bare Lower function into a Lowerer, so a
// BlockDef's Lower field can be built from either one interchangeably.
type LowerFunc func(LowerArgs) (LowerResult, error)

// Lower calls f(args).
func (f LowerFunc) Lower(args LowerArgs) (LowerResult, error) {
	return f(args)
}
