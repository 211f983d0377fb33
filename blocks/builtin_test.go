package blocks_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/blocks"
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/patch"
	"github.com/oscilla-sh/oscilla/types"
)

func newCtx(b *ir.Builder, instanceID string) blocks.LowerContext {
	return blocks.LowerContext{B: b, InstanceID: instanceID, Label: instanceID}
}

func constInput(b *ir.Builder, v float64) blocks.ValueRef {
	id := b.AddSig(ir.SigExpr{Kind: ir.SigConst, Const: v})
	t := types.NewCanonicalType(types.Float, types.NoneUnit, types.DefaultExtent())
	return blocks.EmitSigFromExisting(b, id, t)
}

var _ = Describe("NewBuiltinRegistry", func() {
	It("registers every built-in block type", func() {
		r := blocks.NewBuiltinRegistry()
		for _, want := range []string{
			"InfiniteTimeRoot", "BoundedTimeRoot", "Constant", "Oscillator", "PhaseOscillator",
			"GridLayout", "BroadcastField", "RenderSink", "SampleHold", "Expression",
			"Phase01ToRadians", "RadiansToPhase01", "RgbaToHsv", "HsvToRgba", "CameraProjection",
		} {
			_, ok := r.Get(want)
			Expect(ok).To(BeTrue(), "expected %s to be registered", want)
		}
		Expect(r.Len()).To(Equal(15))
	})
})

var _ = Describe("built-in block lowering", func() {
	It("lowers InfiniteTimeRoot to five time-axis outputs", func() {
		b := ir.NewBuilder()
		res, err := blocks.InfiniteTimeRootDef().Lower(blocks.LowerArgs{Ctx: newCtx(b, "time-1")})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.OutputsByID).To(HaveKey("tMs"))
		Expect(res.OutputsByID).To(HaveKey("energy"))
	})

	It("lowers Oscillator to a stateWrite-backed signal", func() {
		b := ir.NewBuilder()
		rate := constInput(b, 0.5)
		res, err := blocks.OscillatorDef().Lower(blocks.LowerArgs{
			Ctx:        newCtx(b, "osc-1"),
			InputsByID: map[string]blocks.ValueRef{"rate": rate},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.OutputsByID["out"].Kind).To(Equal(blocks.ValueSig))
	})

	It("lowers PhaseOscillator with a radians-unit output", func() {
		b := ir.NewBuilder()
		rate := constInput(b, 0.5)
		res, err := blocks.PhaseOscillatorDef().Lower(blocks.LowerArgs{
			Ctx:        newCtx(b, "posc-1"),
			InputsByID: map[string]blocks.ValueRef{"rate": rate},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.OutputsByID["out"].Kind).To(Equal(blocks.ValueSig))
	})

	It("lowers GridLayout to a materialized field", func() {
		b := ir.NewBuilder()
		res, err := blocks.GridLayoutDef().Lower(blocks.LowerArgs{
			Ctx:    newCtx(b, "grid-1"),
			Config: map[string]any{"rows": 2.0, "cols": 3.0},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.OutputsByID["positions"].Kind).To(Equal(blocks.ValueField))
	})

	It("lowers BroadcastField over the configured domain", func() {
		b := ir.NewBuilder()
		value := constInput(b, 1.0)
		res, err := blocks.BroadcastFieldDef().Lower(blocks.LowerArgs{
			Ctx:        newCtx(b, "bcast-1"),
			InputsByID: map[string]blocks.ValueRef{"value": value},
			Config:     map[string]any{"domain": "Grid"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.OutputsByID["out"].Kind).To(Equal(blocks.ValueField))
	})

	It("lowers RenderSink to a renderPass step with no outputs", func() {
		b := ir.NewBuilder()
		positions := constInput(b, 0)
		colors := constInput(b, 0)
		res, err := blocks.RenderSinkDef().Lower(blocks.LowerArgs{
			Ctx: newCtx(b, "sink-1"),
			InputsByID: map[string]blocks.ValueRef{
				"positions": positions,
				"colors":    colors,
			},
			Config: map[string]any{"sinkId": "canvas"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.OutputsByID).To(BeEmpty())
	})

	It("lowers SampleHold via a select zip rather than a conditional step", func() {
		b := ir.NewBuilder()
		value := constInput(b, 2.0)
		trigger := constInput(b, 0) // only Slot is consulted for eventRead
		res, err := blocks.SampleHoldDef().Lower(blocks.LowerArgs{
			Ctx: newCtx(b, "sh-1"),
			InputsByID: map[string]blocks.ValueRef{
				"value":   value,
				"trigger": trigger,
			},
		})
		Expect(err).NotTo(HaveOccurred())
		out := res.OutputsByID["out"]
		Expect(b.Sig(out.SigID).Fn).To(Equal(string(ir.FnSelect)))
	})

	It("lowers Expression, exposing vararg refs as both in0 and Block.port aliases", func() {
		b := ir.NewBuilder()
		r := addr.NewRegistry()
		r.Register(addr.Target{Address: addr.NewOutputAddress("osc-1", "out"), DisplayName: "Osc"})

		ref := constInput(b, 3.0)
		res, err := blocks.ExpressionDef().Lower(blocks.LowerArgs{
			Ctx: blocks.LowerContext{B: b, InstanceID: "expr-1", Label: "expr-1", AddressRegistry: r},
			VarargInputsByID: map[string][]blocks.ValueRef{"refs": {ref}},
			VarargConnections: map[string][]patch.ResolvedVarargConnection{
				"refs": {{Source: addr.NewOutputAddress("osc-1", "out"), SortKey: 0, Payload: types.Float, Unit: types.NoneUnit}},
			},
			Config: map[string]any{"text": "Osc.out + 1"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.OutputsByID["out"].Kind).To(Equal(blocks.ValueSig))
	})

	It("lowers Phase01ToRadians as a multiply-by-2pi map", func() {
		b := ir.NewBuilder()
		in := constInput(b, 0.25)
		res, err := blocks.Phase01ToRadiansDef().Lower(blocks.LowerArgs{
			Ctx:        newCtx(b, "adapt-1"),
			InputsByID: map[string]blocks.ValueRef{"in": in},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.OutputsByID["out"].Kind).To(Equal(blocks.ValueSig))
	})

	It("lowers RgbaToHsv as a unary map", func() {
		b := ir.NewBuilder()
		in := constInput(b, 0)
		res, err := blocks.RgbaToHsvDef().Lower(blocks.LowerArgs{
			Ctx:        newCtx(b, "adapt-2"),
			InputsByID: map[string]blocks.ValueRef{"in": in},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Sig(res.OutputsByID["out"].SigID).Fn).To(Equal(string(ir.FnRgbaToHsv)))
	})
})

var _ = Describe("BuiltinAdapterTable", func() {
	It("maps every built-in adapter pair to its block type", func() {
		table := blocks.BuiltinAdapterTable()
		Expect(table).To(HaveLen(5))
		Expect(table[patch.AdapterKey{
			SrcPayload: types.Float, SrcUnit: types.AnglePhase01,
			DstPayload: types.Float, DstUnit: types.AngleRadians,
		}]).To(Equal("Phase01ToRadians"))
	})
})
