package compiler_test

import (
	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oscilla-sh/oscilla/compiler"
	"github.com/oscilla-sh/oscilla/patch"
)

// determinismPatch is a small but non-trivial patch (time root,
// constant, state block, expression) exercising every lowering pass
// at least once, so a spurious source of non-determinism in any of
// them would show up here.
func determinismPatch() *patch.Patch {
	return &patch.Patch{
		Blocks: []patch.Block{
			{ID: "time-1", Type: "InfiniteTimeRoot", DisplayName: "Time"},
			{ID: "rate-1", Type: "Constant", DisplayName: "Rate", Params: map[string]any{"value": 0.002}},
			{ID: "osc-1", Type: "Oscillator", DisplayName: "Osc1"},
			{
				ID: "expr-1", Type: "Expression", DisplayName: "Expr1",
				Params: map[string]any{"text": "in0 * 2"},
				InputPorts: map[string]patch.InputPortConfig{
					"refs": {
						IsVararg: true,
						VarargConnections: []patch.VarargConnectionSpec{
							{SourceAddress: "Osc1.out", SortKey: 0},
						},
					},
				},
			},
		},
		Edges: []patch.Edge{
			{ID: "e1", From: patch.PortAddress{BlockID: "rate-1", PortID: "out"}, To: patch.PortAddress{BlockID: "osc-1", PortID: "rate"}, Enabled: true, Role: patch.EdgeUser},
		},
	}
}

var _ = Describe("Compile determinism", func() {
	It("produces structurally identical programs across repeated compiles of the same patch (spec.md §8: compile(p) is pure)", func() {
		p1 := determinismPatch()
		p2 := determinismPatch()

		res1 := compiler.Compile(p1)
		res2 := compiler.Compile(p2)

		Expect(res1.OK).To(BeTrue())
		Expect(res2.OK).To(BeTrue())

		diff := cmp.Diff(res1.Program, res2.Program)
		Expect(diff).To(BeEmpty(), "compiling the same patch twice should yield structurally equal programs:\n%s", diff)
	})

	It("is not perturbed by recompiling the already-cloned caller patch (Compile never mutates its input)", func() {
		p := determinismPatch()
		before := determinismPatch()

		_ = compiler.Compile(p)

		Expect(cmp.Diff(p, before)).To(BeEmpty(), "Compile must not mutate the caller's patch")
	})
})
