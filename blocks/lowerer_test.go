package blocks_test

import (
	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oscilla-sh/oscilla/blocks"
)

var _ = Describe("Registry lowering seam", func() {
	It("invokes a registered BlockDef's Lower exactly once per call, with the args it was given", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		mockLowerer := NewMockLowerer(mockCtrl)

		args := blocks.LowerArgs{Ctx: blocks.LowerContext{InstanceID: "osc-1"}}
		want := blocks.LowerResult{OutputsByID: map[string]blocks.ValueRef{
			"out": {Kind: blocks.ValueSig, SigID: 3},
		}}
		mockLowerer.EXPECT().Lower(args).Return(want, nil)

		reg := blocks.NewRegistry()
		reg.Register(blocks.BlockDef{
			Type: "MockedBlock",
			Lower: func(a blocks.LowerArgs) (blocks.LowerResult, error) {
				return mockLowerer.Lower(a)
			},
		})

		def, found := reg.Get("MockedBlock")
		Expect(found).To(BeTrue())

		got, err := def.Lower(args)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(want))
	})

	It("adapts a bare Lower function into a Lowerer via LowerFunc", func() {
		var called blocks.LowerArgs
		fn := blocks.LowerFunc(func(a blocks.LowerArgs) (blocks.LowerResult, error) {
			called = a
			return blocks.LowerResult{}, nil
		})

		var l blocks.Lowerer = fn
		args := blocks.LowerArgs{Ctx: blocks.LowerContext{InstanceID: "osc-2"}}
		_, err := l.Lower(args)

		Expect(err).NotTo(HaveOccurred())
		Expect(called).To(Equal(args))
	})
})
