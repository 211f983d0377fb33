package blocks

// NewBuiltinRegistry assembles every block type shipped with the
// runtime into one Registry. The compiler starts here and layers any
// user-registered block types on top (spec.md §4.3: the registry is a
// map from type name to BlockDef, not a fixed switch).
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, def := range []BlockDef{
		InfiniteTimeRootDef(),
		BoundedTimeRootDef(),
		ConstantDef(),
		OscillatorDef(),
		PhaseOscillatorDef(),
		GridLayoutDef(),
		BroadcastFieldDef(),
		RenderSinkDef(),
		SampleHoldDef(),
		ExpressionDef(),
		Phase01ToRadiansDef(),
		RadiansToPhase01Def(),
		RgbaToHsvDef(),
		HsvToRgbaDef(),
		CameraProjectionDef(),
	} {
		r.Register(def)
	}
	return r
}
