package patch_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oscilla-sh/oscilla/patch"
)

var _ = Describe("NormalizeCanonicalName", func() {
	It("strips punctuation, spaces become underscores, lowercases", func() {
		Expect(patch.NormalizeCanonicalName("Oscillator #1 (Main)")).To(Equal("oscillator_1_main"))
	})

	It("collapses runs of whitespace into one underscore", func() {
		Expect(patch.NormalizeCanonicalName("Grid   Layout")).To(Equal("grid_layout"))
	})
})

var _ = Describe("DerivedBlockID", func() {
	It("is deterministic across calls for the same inputs", func() {
		a := patch.DerivedBlockID("osc-1", "rate")
		b := patch.DerivedBlockID("osc-1", "rate")
		Expect(a).To(Equal(b))
		Expect(a).To(Equal("defaultsource_for_osc-1_rate"))
	})
})
