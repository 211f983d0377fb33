// Package config provides fluent option builders for a compile or
// runtime session, grounded on the teacher's config/config.go
// DeviceBuilder: value-receiver "With..." methods that return a
// modified copy, finished off by one terminal call (DeviceBuilder's
// Build(name); here CompileOptions/RuntimeOptions are consumed
// directly by compiler.CompileWithConfig and a Recorder constructor
// instead of a single Build method, since there's no single
// "device" object these options assemble).
package config

import "github.com/oscilla-sh/oscilla/debugtap"

// TimeRootPolicy selects what Compile does about spec.md §4.1's "at
// most one TimeRoot" rule when a patch has none.
type TimeRootPolicy string

const (
	// TimeRootRequireExplicit fails the compile with E_TIME_ROOT_MISSING
	// (spec.md's own behavior) when no TimeRoot block is present.
	TimeRootRequireExplicit TimeRootPolicy = "requireExplicit"

	// TimeRootAutoCreate synthesizes an InfiniteTimeRoot via the
	// actions package before compiling, the same edit a user would
	// apply by accepting E_TIME_ROOT_MISSING's CreateTimeRoot action.
	TimeRootAutoCreate TimeRootPolicy = "autoCreate"
)

// CompileOptions configures compiler.CompileWithConfig. The zero value
// (via NewCompileOptions) requires an explicit time root and leaves
// MaxSlots unbounded.
type CompileOptions struct {
	maxSlots       int
	timeRootPolicy TimeRootPolicy
}

// NewCompileOptions returns the default CompileOptions.
func NewCompileOptions() CompileOptions {
	return CompileOptions{timeRootPolicy: TimeRootRequireExplicit}
}

// WithMaxSlots caps the compiled program's slot count (ir.IRProgram.
// SlotCount()); 0 (the default) means unbounded.
func (o CompileOptions) WithMaxSlots(n int) CompileOptions {
	o.maxSlots = n
	return o
}

// WithTimeRootPolicy selects how a missing time root is handled.
func (o CompileOptions) WithTimeRootPolicy(p TimeRootPolicy) CompileOptions {
	o.timeRootPolicy = p
	return o
}

func (o CompileOptions) MaxSlots() int                  { return o.maxSlots }
func (o CompileOptions) TimeRootPolicy() TimeRootPolicy { return o.timeRootPolicy }

// RuntimeOptions configures a Runtime's debug tap. The zero value (via
// NewRuntimeOptions) matches the runtime package's own defaults: a
// ~15Hz snapshot cadence and a 150-sample ring per slot.
type RuntimeOptions struct {
	sampleRateHz    float64
	tapRingCapacity int
}

// NewRuntimeOptions returns the default RuntimeOptions.
func NewRuntimeOptions() RuntimeOptions {
	return RuntimeOptions{sampleRateHz: 15, tapRingCapacity: 150}
}

// WithSampleRateHz sets the rate a caller intends to drive
// ExecuteFrame at; it is informational (the runtime itself derives dt
// from consecutive ExecuteFrame(nowMs) calls, per spec.md §4.6) and is
// only stored for the caller to read back. Nothing in this module reads
// it; cmd/oscillac uses its own fixed frame step.
func (o RuntimeOptions) WithSampleRateHz(hz float64) RuntimeOptions {
	o.sampleRateHz = hz
	return o
}

// WithTapRingCapacity sets how many samples per slot a Recorder built
// from these options keeps.
func (o RuntimeOptions) WithTapRingCapacity(n int) RuntimeOptions {
	o.tapRingCapacity = n
	return o
}

func (o RuntimeOptions) SampleRateHz() float64 { return o.sampleRateHz }
func (o RuntimeOptions) TapRingCapacity() int  { return o.tapRingCapacity }

// NewRecorder builds a debugtap.Recorder sized by these options.
func (o RuntimeOptions) NewRecorder() *debugtap.Recorder {
	return debugtap.NewRecorderWithCapacity(o.tapRingCapacity)
}
