package debugtap_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/debugtap"
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/types"
)

var _ = Describe("DebugGraph", func() {
	It("probes a registered port address", func() {
		g := debugtap.NewDebugGraph()
		a := addr.NewOutputAddress("osc-1", "out")
		g.Add(a, debugtap.GraphEntry{
			Slot: ir.Slot(3),
			Type: types.NewCanonicalType(types.Float, types.AnglePhase01, types.DefaultExtent()),
		})

		entry, ok := g.ProbePort(a)
		Expect(ok).To(BeTrue())
		Expect(entry.Slot).To(Equal(ir.Slot(3)))
		Expect(g.Len()).To(Equal(1))
	})

	It("reports not-found for an unregistered address", func() {
		g := debugtap.NewDebugGraph()
		_, ok := g.ProbePort(addr.NewOutputAddress("missing", "out"))
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Recorder", func() {
	It("returns samples within the requested trailing window", func() {
		r := debugtap.NewRecorder()
		r.Advance(0)
		r.RecordSlotValue(5, 0.0)
		r.Advance(500)
		r.RecordSlotValue(5, 0.5)
		r.Advance(1000)
		r.RecordSlotValue(5, 1.0)
		r.Advance(2000)
		r.RecordSlotValue(5, 2.0)

		series := r.GetBusSeries(5, 1000)
		Expect(len(series)).To(BeNumerically(">=", 2))
		Expect(series[len(series)-1].Value).To(Equal(2.0))
	})

	It("clears buffers on a new debug graph install", func() {
		r := debugtap.NewRecorder()
		r.Advance(0)
		r.RecordSlotValue(1, 42)
		Expect(r.GetBusSeries(1, 1000)).NotTo(BeEmpty())

		r.OnDebugGraph(debugtap.NewDebugGraph())
		Expect(r.GetBusSeries(1, 1000)).To(BeEmpty())
	})

	It("returns nil for a slot that was never recorded", func() {
		r := debugtap.NewRecorder()
		Expect(r.GetBusSeries(99, 1000)).To(BeNil())
	})

	It("caps a slot's buffered samples at the capacity given to NewRecorderWithCapacity", func() {
		r := debugtap.NewRecorderWithCapacity(3)
		for i := 0; i < 10; i++ {
			r.Advance(float64(i))
			r.RecordSlotValue(7, float64(i))
		}

		series := r.GetBusSeries(7, 1e9)
		Expect(series).To(HaveLen(3))
		Expect(series[len(series)-1].Value).To(Equal(9.0))
	})
})
