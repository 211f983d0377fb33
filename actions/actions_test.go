package actions_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oscilla-sh/oscilla/actions"
	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/blocks"
	"github.com/oscilla-sh/oscilla/diag"
	"github.com/oscilla-sh/oscilla/patch"
)

var _ = Describe("Execute", func() {
	var registry *blocks.Registry

	BeforeEach(func() {
		registry = blocks.NewBuiltinRegistry()
	})

	Describe("InsertBlock", func() {
		It("appends a new user block with the registry's declared ports", func() {
			p := &patch.Patch{}
			action := diag.InsertBlock("Oscillator", &diag.Position{X: 10, Y: 20})

			res := actions.Execute(p, action, actions.Deps{Registry: registry})

			Expect(res.Success).To(BeTrue())
			Expect(res.Err).To(BeNil())
			Expect(p.Blocks).To(HaveLen(1))
			Expect(p.Blocks[0].Type).To(Equal("Oscillator"))
			Expect(p.Blocks[0].Role.Kind).To(Equal(patch.RoleUser))
			Expect(p.Blocks[0].InputPorts).To(HaveKey("rate"))
			Expect(p.Blocks[0].OutputPorts).To(HaveKey("out"))
		})

		It("fails for an unknown block type without mutating the patch", func() {
			p := &patch.Patch{}
			action := diag.InsertBlock("NoSuchBlock", nil)

			res := actions.Execute(p, action, actions.Deps{Registry: registry})

			Expect(res.Success).To(BeFalse())
			Expect(res.Err).To(HaveOccurred())
			Expect(p.Blocks).To(BeEmpty())
		})
	})

	Describe("RemoveBlock", func() {
		It("removes the block and every edge touching it", func() {
			p := &patch.Patch{
				Blocks: []patch.Block{
					{ID: "osc", Type: "Oscillator"},
					{ID: "sink", Type: "RenderSink"},
				},
				Edges: []patch.Edge{
					{ID: "e1", From: patch.PortAddress{BlockID: "osc", PortID: "out"}, To: patch.PortAddress{BlockID: "sink", PortID: "in"}, Enabled: true},
				},
			}

			res := actions.Execute(p, diag.RemoveBlock("osc"), actions.Deps{})

			Expect(res.Success).To(BeTrue())
			Expect(p.Blocks).To(HaveLen(1))
			Expect(p.Blocks[0].ID).To(Equal("sink"))
			Expect(p.Edges).To(BeEmpty())
		})

		It("fails when the target block no longer exists", func() {
			p := &patch.Patch{}

			res := actions.Execute(p, diag.RemoveBlock("ghost"), actions.Deps{})

			Expect(res.Success).To(BeFalse())
			Expect(res.Err).To(HaveOccurred())
		})
	})

	Describe("AddAdapter", func() {
		It("splices an adapter block between source and every downstream edge", func() {
			p := &patch.Patch{
				Blocks: []patch.Block{
					{ID: "osc", Type: "Oscillator"},
					{ID: "sink", Type: "RenderSink"},
				},
				Edges: []patch.Edge{
					{ID: "e1", From: patch.PortAddress{BlockID: "osc", PortID: "out"}, To: patch.PortAddress{BlockID: "sink", PortID: "in"}, Enabled: true, Role: patch.EdgeUser},
				},
			}
			action := diag.AddAdapter(addr.NewOutputAddress("osc", "out"), "Phase01ToRadians")

			res := actions.Execute(p, action, actions.Deps{Registry: registry})

			Expect(res.Success).To(BeTrue())
			Expect(p.Blocks).To(HaveLen(3))

			var adapter patch.Block
			for _, b := range p.Blocks {
				if b.Role.Meta["kind"] == "adapter" {
					adapter = b
				}
			}
			Expect(adapter.Type).To(Equal("Phase01ToRadians"))

			Expect(p.Edges).To(HaveLen(2))
			for _, e := range p.Edges {
				Expect(e.Role).To(Equal(patch.EdgeAdapter))
			}
		})

		It("fails when the source port has no enabled outgoing edges", func() {
			p := &patch.Patch{Blocks: []patch.Block{{ID: "osc", Type: "Oscillator"}}}
			action := diag.AddAdapter(addr.NewOutputAddress("osc", "out"), "Phase01ToRadians")

			res := actions.Execute(p, action, actions.Deps{Registry: registry})

			Expect(res.Success).To(BeFalse())
		})
	})

	Describe("CreateTimeRoot", func() {
		It("adds a time root block when none exists", func() {
			p := &patch.Patch{}

			res := actions.Execute(p, diag.CreateTimeRoot("InfiniteTimeRoot"), actions.Deps{Registry: registry})

			Expect(res.Success).To(BeTrue())
			Expect(p.Blocks).To(HaveLen(1))
			Expect(p.Blocks[0].Role.Kind).To(Equal(patch.RoleTime))
			Expect(p.Blocks[0].Type).To(Equal("InfiniteTimeRoot"))
		})

		It("fails when a time root already exists", func() {
			p := &patch.Patch{
				Blocks: []patch.Block{
					{ID: "t1", Type: "InfiniteTimeRoot", Role: patch.BlockRole{Kind: patch.RoleTime}},
				},
			}

			res := actions.Execute(p, diag.CreateTimeRoot("InfiniteTimeRoot"), actions.Deps{Registry: registry})

			Expect(res.Success).To(BeFalse())
			Expect(p.Blocks).To(HaveLen(1))
		})
	})

	Describe("GoToTarget", func() {
		It("succeeds for a live block address", func() {
			p := &patch.Patch{Blocks: []patch.Block{{ID: "osc", Type: "Oscillator"}}}

			res := actions.Execute(p, diag.GoToTarget(addr.NewBlockAddress("osc")), actions.Deps{})

			Expect(res.Success).To(BeTrue())
		})

		It("fails for a block address that no longer resolves", func() {
			p := &patch.Patch{}

			res := actions.Execute(p, diag.GoToTarget(addr.NewBlockAddress("ghost")), actions.Deps{})

			Expect(res.Success).To(BeFalse())
		})
	})

	Describe("MuteDiagnostic and OpenDocs", func() {
		It("never mutate the patch", func() {
			p := &patch.Patch{Blocks: []patch.Block{{ID: "osc"}}}

			res1 := actions.Execute(p, diag.MuteDiagnostic("diag123"), actions.Deps{})
			res2 := actions.Execute(p, diag.OpenDocs("https://example.invalid/docs/oscillator"), actions.Deps{})

			Expect(res1.Success).To(BeTrue())
			Expect(res2.Success).To(BeTrue())
			Expect(p.Blocks).To(HaveLen(1))
		})

		It("fails on an empty payload", func() {
			p := &patch.Patch{}

			Expect(actions.Execute(p, diag.MuteDiagnostic(""), actions.Deps{}).Success).To(BeFalse())
			Expect(actions.Execute(p, diag.OpenDocs(""), actions.Deps{}).Success).To(BeFalse())
		})
	})
})
