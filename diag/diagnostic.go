// Package diag implements the structured diagnostic format described
// in spec.md §6/§7: compile passes never panic for user-reachable
// conditions, they accumulate Diagnostics and return them as a batch.
package diag

import (
	"time"

	"github.com/rs/xid"

	"github.com/oscilla-sh/oscilla/addr"
)

// Severity mirrors the teacher's STRUCT/TIMING lint split
// (verify/lint.go Issue.Type) generalized to three levels instead of two.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
	SeverityInfo  Severity = "info"
)

// Domain is which stage of the pipeline raised the diagnostic.
type Domain string

const (
	DomainAuthoring Domain = "authoring"
	DomainType      Domain = "type"
	DomainSchedule  Domain = "schedule"
	DomainRuntime   Domain = "runtime"
)

// Code is a stable diagnostic key (spec.md §6).
type Code string

const (
	ETimeRootMissing         Code = "E_TIME_ROOT_MISSING"
	ETimeRootMultiple        Code = "E_TIME_ROOT_MULTIPLE"
	WGraphDisconnectedBlock  Code = "W_GRAPH_DISCONNECTED_BLOCK"
	ETypeMismatch            Code = "E_TYPE_MISMATCH"
	EUnitMismatch            Code = "E_UNIT_MISMATCH"
	EVarargTypeMismatch      Code = "E_VARARG_TYPE_MISMATCH"
	EVarargUnresolvedAddress Code = "E_VARARG_UNRESOLVED_ADDRESS"
	EVarargCountViolation    Code = "E_VARARG_COUNT_VIOLATION"
	EUnresolvedInstance      Code = "E_UNRESOLVED_INSTANCE"
	ECycleDetected           Code = "E_CYCLE_DETECTED"
	EDuplicateCanonicalName  Code = "E_DUPLICATE_CANONICAL_NAME"
	EAddressAmbiguous        Code = "E_ADDRESS_AMBIGUOUS"
	EAddressUnknown          Code = "E_ADDRESS_UNKNOWN"
	EExprUndefinedIdentifier Code = "E_EXPR_UNDEFINED_IDENTIFIER"
	EExprSyntax              Code = "E_EXPR_SYNTAX"
	ERuntimeValueUnstable    Code = "E_RUNTIME_VALUE_UNSTABLE"
)

// Scope pins a diagnostic to the compile it was produced by.
type Scope struct {
	PatchRevision int
}

// Metadata tracks occurrence across recompiles so the UI can collapse
// repeated diagnostics instead of re-displaying every pass.
type Metadata struct {
	FirstSeenAt     time.Time
	LastSeenAt      time.Time
	OccurrenceCount int
}

// Diagnostic is the unit of compiler/runtime user-facing feedback.
type Diagnostic struct {
	ID            string
	Code          Code
	Severity      Severity
	Title         string
	Message       string
	PrimaryTarget addr.Address
	Domain        Domain
	Scope         Scope
	Metadata      Metadata
	Actions       []Action
}

// New builds a Diagnostic with a fresh id and FirstSeenAt/LastSeenAt
// stamped to now, OccurrenceCount 1. Use this at the point a pass
// detects the condition. This package has no helper for re-stamping
// Metadata on a repeat occurrence.
func New(code Code, severity Severity, domain Domain, title, message string, target addr.Address) Diagnostic {
	now := time.Now()
	return Diagnostic{
		ID:            xid.New().String(),
		Code:          code,
		Severity:      severity,
		Title:         title,
		Message:       message,
		PrimaryTarget: target,
		Domain:        domain,
		Metadata: Metadata{
			FirstSeenAt:     now,
			LastSeenAt:      now,
			OccurrenceCount: 1,
		},
	}
}

// WithActions attaches fix-it actions to a diagnostic, returning a copy.
func (d Diagnostic) WithActions(actions ...Action) Diagnostic {
	d.Actions = append(append([]Action(nil), d.Actions...), actions...)
	return d
}

// WithScope sets the patch revision a diagnostic belongs to.
func (d Diagnostic) WithScope(revision int) Diagnostic {
	d.Scope = Scope{PatchRevision: revision}
	return d
}

// IsError reports whether this diagnostic blocks program construction.
func (d Diagnostic) IsError() bool { return d.Severity == SeverityError }

// AnyErrors reports whether any diagnostic in the slice is an error —
// compilation is all-or-nothing (spec.md §4.5/§7).
func AnyErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.IsError() {
			return true
		}
	}
	return false
}
