package addr_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oscilla-sh/oscilla/addr"
)

var _ = Describe("Address round-trip", func() {
	It("round-trips every constructed kind", func() {
		addresses := []addr.Address{
			addr.NewBlockAddress("osc1"),
			addr.NewOutputAddress("osc1", "out"),
			addr.NewInputAddress("render1", "color"),
			addr.NewParamAddress("osc1", "rate"),
			addr.NewEdgeAddress("e42"),
		}
		for _, a := range addresses {
			parsed, err := addr.Parse(a.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(a))
		}
	})

	It("rejects garbage", func() {
		_, err := addr.Parse("not-an-address")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Registry", func() {
	It("resolves full addresses and unique shorthand", func() {
		r := addr.NewRegistry()
		r.Register(addr.Target{
			Address:     addr.NewOutputAddress("osc1", "out"),
			DisplayName: "Oscillator",
		})

		byFull, err := r.Resolve("v1:blocks.osc1.outputs.out")
		Expect(err).NotTo(HaveOccurred())
		Expect(byFull.Address.BlockID).To(Equal("osc1"))

		byShort, err := r.Resolve("Oscillator.out")
		Expect(err).NotTo(HaveOccurred())
		Expect(byShort.Address).To(Equal(byFull.Address))
	})

	It("reports ambiguous shorthand", func() {
		r := addr.NewRegistry()
		r.Register(addr.Target{Address: addr.NewOutputAddress("osc1", "out"), DisplayName: "Osc"})
		r.Register(addr.Target{Address: addr.NewOutputAddress("osc2", "out"), DisplayName: "Osc"})

		_, err := r.Resolve("Osc.out")
		Expect(err).To(HaveOccurred())
	})
})
