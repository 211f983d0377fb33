package blocks

import (
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/patch"
	"github.com/oscilla-sh/oscilla/render"
	"github.com/oscilla-sh/oscilla/types"
)

const twoPi = 6.283185307179586

func mapAdapter(blockType string, inPayload types.Payload, inUnit types.Unit, outPayload types.Payload, outUnit types.Unit, fn ir.Fn, constArg *float64) BlockDef {
	return BlockDef{
		Type:       blockType,
		Inputs:     []PortDecl{{ID: "in", Payload: inPayload, Unit: inUnit}},
		Outputs:    []PortDecl{{ID: "out", Payload: outPayload, Unit: outUnit}},
		Capability: CapabilityPure,
		Lower: func(args LowerArgs) (LowerResult, error) {
			b := args.Ctx.B
			in := args.InputsByID["in"]

			var resultID ir.SigExprID
			if constArg != nil {
				c := b.AddSig(ir.SigExpr{Kind: ir.SigConst, Const: *constArg})
				resultID = b.AddSig(ir.SigExpr{Kind: ir.SigZip, Fn: string(fn), Args: []ir.SigExprID{in.SigID, c}})
			} else {
				resultID = b.AddSig(ir.SigExpr{Kind: ir.SigMap, Fn: string(fn), Args: []ir.SigExprID{in.SigID}})
			}

			t := types.NewCanonicalType(outPayload, outUnit, types.DefaultExtent())
			out := EmitSigFromExisting(b, resultID, t)
			return LowerResult{OutputsByID: map[string]ValueRef{"out": out}}, nil
		},
	}
}

// Phase01ToRadiansDef converts a 0..1 phase signal to radians (* 2π).
func Phase01ToRadiansDef() BlockDef {
	c := twoPi
	return mapAdapter("Phase01ToRadians", types.Float, types.AnglePhase01, types.Float, types.AngleRadians, ir.FnMul, &c)
}

// RadiansToPhase01Def is the inverse conversion (/ 2π), implemented as
// multiplication by the reciprocal since Fn zip nodes are binary.
func RadiansToPhase01Def() BlockDef {
	c := 1.0 / twoPi
	return mapAdapter("RadiansToPhase01", types.Float, types.AngleRadians, types.Float, types.AnglePhase01, ir.FnMul, &c)
}

// RgbaToHsvDef and HsvToRgbaDef bridge the two color representations
// the registry declares (spec.md §4.2 Pass 3 adapter table keys on
// exactly this kind of payload+unit pair).
func RgbaToHsvDef() BlockDef {
	return mapAdapter("RgbaToHsv", types.Color, types.ColorRGBA, types.Color, types.ColorHSV, ir.FnRgbaToHsv, nil)
}

func HsvToRgbaDef() BlockDef {
	return mapAdapter("HsvToRgba", types.Color, types.ColorHSV, types.Color, types.ColorRGBA, ir.FnHsvToRgba, nil)
}

// identity4x4 is a camera whose view/projection are both the identity
// matrix, so a PositionWorld field materialized into [-1,1] passes
// through to screen space unchanged (spec.md §4.6: "camera projects
// PositionWorld into PositionScreen").
func identity4x4() [16]float64 {
	return [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// CameraProjectionDef bridges PositionWorld fields to PositionScreen
// fields via a StepProjection rather than a SigExpr map — unlike the
// other adapters above, this one emits a single ir.Step directly,
// since the camera matrices apply per-instance across a whole field
// buffer rather than elementwise to a scalar signal (spec.md §4.6
// step ordering: "projection before render"). It is spliced in by the
// same pass-3 adapter mechanism as the scalar adapters, so it lowers
// between its source field and the render sink automatically.
func CameraProjectionDef() BlockDef {
	return BlockDef{
		Type:       "CameraProjection",
		Inputs:     []PortDecl{{ID: "in", Payload: types.Vec2, Unit: types.PositionWorld, Many: true}},
		Outputs:    []PortDecl{{ID: "out", Payload: types.Vec2, Unit: types.PositionScreen, Many: true}},
		Capability: CapabilityPure,
		Lower: func(args LowerArgs) (LowerResult, error) {
			b := args.Ctx.B
			in := args.InputsByID["in"]
			count := b.Field(in.FieldID).Count
			instance := b.Field(in.FieldID).Instance

			t := types.NewCanonicalType(types.Vec2, types.PositionScreen, types.Extent{
				Cardinality: types.Many(instance),
				Temporality: types.Continuous,
				Binding:     types.BindingBound,
			})
			outSlot := b.AllocSlot(t)
			b.AddStep(ir.Step{
				Kind: ir.StepProjection,
				Projection: &ir.ProjectionStep{
					Camera:        render.Camera{Mode: render.CameraOrtho, View: identity4x4(), Proj: identity4x4()},
					InputSlot:     in.Slot,
					OutputSlot:    outSlot,
					InstanceCount: count,
				},
			})

			return LowerResult{OutputsByID: map[string]ValueRef{
				"out": {Kind: ValueField, Slot: outSlot, Stride: t.Stride()},
			}}, nil
		},
	}
}

// BuiltinAdapterTable is the default pass-3 adapter lookup, built from
// the registry's own adapter block types. The compiler uses this as
// the AdapterRegistry argument to patch.InsertAdapters, keeping the
// "which adapter bridges which pair" decision colocated with the
// blocks that implement it.
func BuiltinAdapterTable() patch.AdapterRegistry {
	return patch.AdapterRegistry{
		{SrcPayload: types.Float, SrcUnit: types.AnglePhase01, DstPayload: types.Float, DstUnit: types.AngleRadians}: "Phase01ToRadians",
		{SrcPayload: types.Float, SrcUnit: types.AngleRadians, DstPayload: types.Float, DstUnit: types.AnglePhase01}: "RadiansToPhase01",
		{SrcPayload: types.Color, SrcUnit: types.ColorRGBA, DstPayload: types.Color, DstUnit: types.ColorHSV}:        "RgbaToHsv",
		{SrcPayload: types.Color, SrcUnit: types.ColorHSV, DstPayload: types.Color, DstUnit: types.ColorRGBA}:        "HsvToRgba",
		{SrcPayload: types.Vec2, SrcUnit: types.PositionWorld, DstPayload: types.Vec2, DstUnit: types.PositionScreen}: "CameraProjection",
	}
}
