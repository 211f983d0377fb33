package patch_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oscilla-sh/oscilla/patch"
)

const samplePatchYAML = `
blocks:
  - id: time-1
    type: InfiniteTimeRoot
    displayName: Time
  - id: osc-1
    type: Oscillator
    displayName: Osc
    params:
      rate: 1.0
    inputPorts:
      rate:
        defaultSource:
          blockType: Constant
          outputId: out
  - id: sink-1
    type: RenderSink
    displayName: Sink
edges:
  - fromBlock: osc-1
    fromPort: out
    toBlock: sink-1
    toPort: in
    sortKey: 0
`

var _ = Describe("ParseYAML", func() {
	It("parses blocks, params, default sources, and edges", func() {
		p, err := patch.ParseYAML([]byte(samplePatchYAML))
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Blocks).To(HaveLen(3))
		Expect(p.Edges).To(HaveLen(1))

		idx := p.BlockIndexByID("osc-1")
		Expect(idx).NotTo(Equal(-1))
		Expect(p.Blocks[idx].InputPorts["rate"].DefaultSource.BlockType).To(Equal("Constant"))
		Expect(p.Blocks[idx].Params["rate"]).To(Equal(1.0))
	})

	It("rejects malformed YAML", func() {
		_, err := patch.ParseYAML([]byte("blocks: [this is not a block list"))
		Expect(err).To(HaveOccurred())
	})
})
