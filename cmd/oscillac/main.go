// Command oscillac is an engine-free demo harness (spec.md §12): it
// compiles an embedded patch, drives a handful of frames through the
// runtime the same way a host renderer would, and prints what came
// out. It owns no window, no clock, no input device — every frame's
// `nowMs` is a value this program picks itself, the same
// "compiler+runtime with the outside world stubbed out" shape as the
// teacher's samples/passthrough demo (engine built locally, kernel
// embedded, no device drivers beyond what the demo itself wires up).
package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tebeka/atexit"

	"github.com/oscilla-sh/oscilla/compiler"
	"github.com/oscilla-sh/oscilla/diag"
	"github.com/oscilla-sh/oscilla/patch"
	"github.com/oscilla-sh/oscilla/runtime"
)

//go:embed demo.yaml
var demoPatchYAML []byte

const frameCount = 30
const frameStepMs = 1000.0 / 60.0

func main() {
	atexit.Register(func() { fmt.Println("oscillac: done") })

	p, err := patch.ParseYAML(demoPatchYAML)
	if err != nil {
		fmt.Fprintln(os.Stderr, "oscillac: parsing demo patch:", err)
		atexit.Exit(1)
		return
	}

	result := compiler.Compile(p)
	if len(result.Warnings) > 0 {
		fmt.Println("warnings:")
		diag.PrintTable(os.Stdout, result.Warnings)
	}
	if !result.OK {
		fmt.Println("compile failed:")
		diag.PrintTable(os.Stdout, result.Errors)
		atexit.Exit(1)
		return
	}

	rt := runtime.CreateRuntime(result.Program)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Frame", "nowMs", "RenderPasses", "Bindings", "Sink"})

	for frame := 0; frame < frameCount; frame++ {
		nowMs := float64(frame+1) * frameStepMs
		passes := rt.ExecuteFrame(nowMs)

		bindings := 0
		sinks := ""
		for i, pass := range passes {
			bindings += len(pass.Bindings)
			if i > 0 {
				sinks += ","
			}
			sinks += string(pass.Sink.Kind) + ":" + pass.Sink.ID
		}

		t.AppendRow(table.Row{frame, nowMs, len(passes), bindings, sinks})
	}

	t.Render()

	atexit.Exit(0)
}
