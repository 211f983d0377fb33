package blocks

import (
	"github.com/oscilla-sh/oscilla/ir"
	"github.com/oscilla-sh/oscilla/render"
	"github.com/oscilla-sh/oscilla/types"
)

// RenderSinkDef is the terminal render block: it takes a position
// field and an optional color field and issues a renderPass step
// (spec.md §4.3 "render blocks issue a renderPass with bindings").
// It has no outputs — render blocks are sinks, not producers, so a
// cycle can never form through one.
func RenderSinkDef() BlockDef {
	return BlockDef{
		Type: "RenderSink",
		Inputs: []PortDecl{
			{ID: "positions", Payload: types.Vec2, Unit: types.PositionScreen, Many: true},
			{ID: "colors", Payload: types.Color, Unit: types.ColorRGBA, Many: true},
		},
		Params: []ParamDecl{
			{ID: "sinkId", Default: "canvas"},
		},
		Capability: CapabilityRender,
		Lower: func(args LowerArgs) (LowerResult, error) {
			b := args.Ctx.B
			sinkID, _ := args.Config["sinkId"].(string)
			if sinkID == "" {
				sinkID = "canvas"
			}

			fieldCount := func(ref ValueRef) int {
				if ref.Kind != ValueField {
					return 0
				}
				return b.Field(ref.FieldID).Count
			}

			var bindings []render.Binding
			if pos, ok := args.InputsByID["positions"]; ok {
				bindings = append(bindings, render.Binding{
					Semantic: render.SemScreenPos,
					From:     render.SlotRef{Slot: int(pos.Slot)},
					Count:    fieldCount(pos),
					Stride:   pos.Stride,
				})
			}
			if col, ok := args.InputsByID["colors"]; ok {
				bindings = append(bindings, render.Binding{
					Semantic: render.SemColor,
					From:     render.SlotRef{Slot: int(col.Slot)},
					Count:    fieldCount(col),
					Stride:   col.Stride,
				})
			}

			b.AddStep(ir.Step{
				Kind: ir.StepRenderPass,
				RenderPass: &ir.RenderPassStep{
					Sink:     render.Sink{Kind: render.SinkCanvas, ID: sinkID},
					Bindings: bindings,
				},
			})

			return LowerResult{OutputsByID: map[string]ValueRef{}}, nil
		},
	}
}
