package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oscilla-sh/oscilla/config"
)

var _ = Describe("CompileOptions", func() {
	It("defaults to requiring an explicit time root and an unbounded slot budget", func() {
		o := config.NewCompileOptions()
		Expect(o.TimeRootPolicy()).To(Equal(config.TimeRootRequireExplicit))
		Expect(o.MaxSlots()).To(Equal(0))
	})

	It("returns a modified copy from each With method, leaving the receiver untouched", func() {
		base := config.NewCompileOptions()
		tuned := base.WithMaxSlots(64).WithTimeRootPolicy(config.TimeRootAutoCreate)

		Expect(base.MaxSlots()).To(Equal(0))
		Expect(tuned.MaxSlots()).To(Equal(64))
		Expect(tuned.TimeRootPolicy()).To(Equal(config.TimeRootAutoCreate))
	})
})

var _ = Describe("RuntimeOptions", func() {
	It("defaults to a 15Hz sample rate and a 150-sample ring", func() {
		o := config.NewRuntimeOptions()
		Expect(o.SampleRateHz()).To(Equal(15.0))
		Expect(o.TapRingCapacity()).To(Equal(150))
	})

	It("builds a Recorder sized by TapRingCapacity", func() {
		o := config.NewRuntimeOptions().WithTapRingCapacity(4)
		r := o.NewRecorder()

		for i := 0; i < 10; i++ {
			r.RecordSlotValue(0, float64(i))
		}
		series := r.GetBusSeries(0, 1e9)
		Expect(series).To(HaveLen(4))
		Expect(series[len(series)-1].Value).To(Equal(9.0))
	})
})
