package patch_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/patch"
	"github.com/oscilla-sh/oscilla/types"
)

func buildVarargRegistry() *addr.Registry {
	r := addr.NewRegistry()
	r.Register(addr.Target{Address: addr.NewOutputAddress("osc-a", "out"), DisplayName: "OscA", TypeString: "float"})
	r.Register(addr.Target{Address: addr.NewOutputAddress("osc-b", "out"), DisplayName: "OscB", TypeString: "float"})
	r.Register(addr.Target{Address: addr.NewOutputAddress("shape-a", "out"), DisplayName: "ShapeA", TypeString: "shape"})
	return r
}

func floatLookup(a addr.Address) (patch.ResolvedPort, error) {
	if a.BlockID == "shape-a" {
		return patch.ResolvedPort{Payload: types.Shape, Unit: types.NoneUnit}, nil
	}
	return patch.ResolvedPort{Payload: types.Float, Unit: types.AnglePhase01}, nil
}

var _ = Describe("ResolveVarargs", func() {
	It("resolves and sorts connections by sortKey", func() {
		p := &patch.Patch{
			Blocks: []patch.Block{
				{
					ID: "mixer-1",
					InputPorts: map[string]patch.InputPortConfig{
						"in": {
							IsVararg: true,
							VarargConstraint: &patch.VarargConstraint{
								PayloadType:    "float",
								MinConnections: 1,
							},
							VarargConnections: []patch.VarargConnectionSpec{
								{SourceAddress: "OscB.out", SortKey: 2},
								{SourceAddress: "OscA.out", SortKey: 1},
							},
						},
					},
				},
			},
		}

		resolved, diags := patch.ResolveVarargs(p, buildVarargRegistry(), floatLookup)
		Expect(diags).To(BeEmpty())
		conns := resolved["mixer-1"]["in"]
		Expect(conns).To(HaveLen(2))
		Expect(conns[0].Source.BlockID).To(Equal("osc-a"))
		Expect(conns[1].Source.BlockID).To(Equal("osc-b"))
	})

	It("rejects a payload-mismatched connection", func() {
		p := &patch.Patch{
			Blocks: []patch.Block{
				{
					ID: "mixer-1",
					InputPorts: map[string]patch.InputPortConfig{
						"in": {
							IsVararg: true,
							VarargConstraint: &patch.VarargConstraint{
								PayloadType: "float",
							},
							VarargConnections: []patch.VarargConnectionSpec{
								{SourceAddress: "ShapeA.out", SortKey: 0},
							},
						},
					},
				},
			},
		}

		resolved, diags := patch.ResolveVarargs(p, buildVarargRegistry(), floatLookup)
		Expect(diags).NotTo(BeEmpty())
		Expect(resolved["mixer-1"]["in"]).To(BeEmpty())
	})

	It("rejects a connection count below minConnections", func() {
		p := &patch.Patch{
			Blocks: []patch.Block{
				{
					ID: "mixer-1",
					InputPorts: map[string]patch.InputPortConfig{
						"in": {
							IsVararg: true,
							VarargConstraint: &patch.VarargConstraint{
								PayloadType:    "float",
								MinConnections: 2,
							},
							VarargConnections: []patch.VarargConnectionSpec{
								{SourceAddress: "OscA.out", SortKey: 0},
							},
						},
					},
				},
			},
		}

		_, diags := patch.ResolveVarargs(p, buildVarargRegistry(), floatLookup)
		Expect(diags).To(HaveLen(1))
	})

	It("reports an unresolved vararg source address", func() {
		p := &patch.Patch{
			Blocks: []patch.Block{
				{
					ID: "mixer-1",
					InputPorts: map[string]patch.InputPortConfig{
						"in": {
							IsVararg: true,
							VarargConnections: []patch.VarargConnectionSpec{
								{SourceAddress: "NoSuchBlock", SortKey: 0},
							},
						},
					},
				},
			},
		}

		_, diags := patch.ResolveVarargs(p, buildVarargRegistry(), floatLookup)
		Expect(diags).To(HaveLen(1))
	})
})
