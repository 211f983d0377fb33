package diag_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/diag"
)

var _ = Describe("Diagnostic", func() {
	It("reports IsError only for error severity", func() {
		e := diag.New(diag.ETimeRootMissing, diag.SeverityError, diag.DomainAuthoring, "", "", addr.Address{})
		w := diag.New(diag.WGraphDisconnectedBlock, diag.SeverityWarn, diag.DomainAuthoring, "", "", addr.Address{})
		Expect(e.IsError()).To(BeTrue())
		Expect(w.IsError()).To(BeFalse())
	})

	It("AnyErrors is true if any diagnostic is an error", func() {
		w := diag.New(diag.WGraphDisconnectedBlock, diag.SeverityWarn, diag.DomainAuthoring, "", "", addr.Address{})
		e := diag.New(diag.ETimeRootMissing, diag.SeverityError, diag.DomainAuthoring, "", "", addr.Address{})
		Expect(diag.AnyErrors([]diag.Diagnostic{w})).To(BeFalse())
		Expect(diag.AnyErrors([]diag.Diagnostic{w, e})).To(BeTrue())
	})

	It("empty-patch diagnostic carries a createTimeRoot action", func() {
		d := diag.New(diag.ETimeRootMissing, diag.SeverityError, diag.DomainAuthoring,
			"No time root", "The patch has no reachable TimeRoot block", addr.Address{}).
			WithActions(diag.CreateTimeRoot("Infinite"))
		Expect(d.Actions).To(HaveLen(1))
		Expect(d.Actions[0].Kind).To(Equal(diag.ActionCreateTimeRoot))
		Expect(d.Actions[0].AdapterType).To(Equal("Infinite"))
	})

	It("renders a table without panicking", func() {
		var buf bytes.Buffer
		diag.PrintTable(&buf, []diag.Diagnostic{
			diag.New(diag.ETimeRootMissing, diag.SeverityError, diag.DomainAuthoring, "t", "m", addr.Address{}),
		})
		Expect(buf.Len()).To(BeNumerically(">", 0))
	})
})
