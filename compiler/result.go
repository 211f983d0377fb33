package compiler

import (
	"github.com/oscilla-sh/oscilla/addr"
	"github.com/oscilla-sh/oscilla/debugtap"
	"github.com/oscilla-sh/oscilla/diag"
	"github.com/oscilla-sh/oscilla/ir"
)

// CompileResult is Compile's return value (spec.md §6 "Compile API":
// "CompileResult = {ok:true, program, addressRegistry, debugGraph} |
// {ok:false, errors}"). OK discriminates which half is populated.
// Warnings is an addition beyond the literal spec shape: non-blocking
// diagnostics (e.g. a disconnected block) that a caller may want to
// surface even on a successful compile.
type CompileResult struct {
	OK bool

	Program         ir.IRProgram
	AddressRegistry *addr.Registry
	DebugGraph      *debugtap.DebugGraph
	Warnings        []diag.Diagnostic

	Errors []diag.Diagnostic
}

func failure(errs []diag.Diagnostic) CompileResult {
	return CompileResult{OK: false, Errors: errs}
}
