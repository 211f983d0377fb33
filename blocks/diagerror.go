package blocks

import "github.com/oscilla-sh/oscilla/diag"

// DiagError lets a block's Lower return an already-classified
// diagnostic — preserving its Code, Severity and Actions — instead of
// a plain error that the compiler would otherwise have to re-wrap
// under one generic "block failed to lower" code. blocks/expr's
// typechecker already produces precise diag.Diagnostic values (e.g.
// EExprUndefinedIdentifier); losing that distinction at the Lower
// boundary would make every expression failure look like a syntax
// error.
type DiagError struct {
	Diagnostic diag.Diagnostic
}

func (e *DiagError) Error() string { return e.Diagnostic.Message }
