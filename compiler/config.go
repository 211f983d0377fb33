package compiler

import (
	"fmt"

	"github.com/oscilla-sh/oscilla/actions"
	"github.com/oscilla-sh/oscilla/blocks"
	"github.com/oscilla-sh/oscilla/config"
	"github.com/oscilla-sh/oscilla/diag"
	"github.com/oscilla-sh/oscilla/patch"
)

// CompileWithConfig layers config.CompileOptions on top of Compile:
// spec.md's CompileResult contract (returned unchanged by Compile
// itself) isn't touched by this, so ordinary callers are unaffected.
// TimeRootAutoCreate synthesizes a time root on p before compiling,
// via the same actions.Execute path a user's accepted fix-it action
// would take; WithMaxSlots is enforced after compiling, since the
// slot count is only known once the schedule is built.
func CompileWithConfig(p *patch.Patch, opts config.CompileOptions, compilerOpts ...Option) (CompileResult, error) {
	if opts.TimeRootPolicy() == config.TimeRootAutoCreate {
		if _, ok := findTimeRoot(p); !ok {
			res := actions.Execute(p, diag.CreateTimeRoot("InfiniteTimeRoot"), actions.Deps{Registry: blocks.NewBuiltinRegistry()})
			if !res.Success {
				return CompileResult{}, fmt.Errorf("compiler: auto-creating time root: %w", res.Err)
			}
		}
	}

	result := Compile(p, compilerOpts...)
	if result.OK && opts.MaxSlots() > 0 && result.Program.SlotCount() > opts.MaxSlots() {
		return result, fmt.Errorf("compiler: program uses %d slots, exceeding configured budget of %d",
			result.Program.SlotCount(), opts.MaxSlots())
	}
	return result, nil
}
