package expr_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oscilla-sh/oscilla/blocks/expr"
	"github.com/oscilla-sh/oscilla/ir"
)

var _ = Describe("Compile", func() {
	It("compiles a constant expression to a single SigConst node", func() {
		n, err := expr.Parse("2")
		Expect(err).NotTo(HaveOccurred())
		b := ir.NewBuilder()
		id, err := expr.Compile(b, n, func(string) (ir.SigExprID, bool) { return 0, false })
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Sig(id).Kind).To(Equal(ir.SigConst))
		Expect(b.Sig(id).Const).To(Equal(2.0))
	})

	It("compiles arithmetic into nested zip nodes", func() {
		n, err := expr.Parse("x + 1")
		Expect(err).NotTo(HaveOccurred())
		b := ir.NewBuilder()
		xID := b.AddSig(ir.SigExpr{Kind: ir.SigConst, Const: 5})

		id, err := expr.Compile(b, n, func(name string) (ir.SigExprID, bool) {
			if name == "x" {
				return xID, true
			}
			return 0, false
		})
		Expect(err).NotTo(HaveOccurred())
		result := b.Sig(id)
		Expect(result.Kind).To(Equal(ir.SigZip))
		Expect(result.Fn).To(Equal(string(ir.FnAdd)))
		Expect(result.Args).To(ContainElement(xID))
	})

	It("compiles a ternary into a 3-arg select zip", func() {
		n, err := expr.Parse("x > 0 ? 1 : -1")
		Expect(err).NotTo(HaveOccurred())
		b := ir.NewBuilder()
		xID := b.AddSig(ir.SigExpr{Kind: ir.SigConst, Const: 1})

		id, err := expr.Compile(b, n, func(name string) (ir.SigExprID, bool) {
			if name == "x" {
				return xID, true
			}
			return 0, false
		})
		Expect(err).NotTo(HaveOccurred())
		result := b.Sig(id)
		Expect(result.Fn).To(Equal(string(ir.FnSelect)))
		Expect(result.Args).To(HaveLen(3))
	})

	It("errors on an unresolved identifier", func() {
		n, err := expr.Parse("y")
		Expect(err).NotTo(HaveOccurred())
		b := ir.NewBuilder()
		_, err = expr.Compile(b, n, func(string) (ir.SigExprID, bool) { return 0, false })
		Expect(err).To(HaveOccurred())
	})
})
