// Package compiler implements the top-level Compile entry point
// (spec.md §4.5): it runs the seven-pass pipeline (default sources,
// vararg resolution, adapter insertion, type resolution, instance
// unification, block lowering, schedule emission) over a patch.Patch
// and produces an ir.IRProgram plus the address/debug indices a UI
// needs alongside it.
package compiler

import (
	"github.com/oscilla-sh/oscilla/blocks"
	"github.com/oscilla-sh/oscilla/patch"
)

// Options configures a Compile call. The zero Options (via
// defaultOptions) wires the built-in block and adapter registries —
// callers only need an Option to layer user-defined block types on
// top, the same "start from the builtin set, let callers extend it"
// shape as blocks.NewBuiltinRegistry's own doc comment.
type Options struct {
	Registry *blocks.Registry
	Adapters patch.AdapterRegistry
}

// Option mutates an Options in place.
type Option func(*Options)

// WithRegistry overrides the block registry Compile consults during
// lowering.
func WithRegistry(r *blocks.Registry) Option {
	return func(o *Options) { o.Registry = r }
}

// WithAdapters overrides the pass-3 adapter lookup table.
func WithAdapters(a patch.AdapterRegistry) Option {
	return func(o *Options) { o.Adapters = a }
}

func defaultOptions() Options {
	return Options{
		Registry: blocks.NewBuiltinRegistry(),
		Adapters: blocks.BuiltinAdapterTable(),
	}
}

func applyOptions(opts []Option) Options {
	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
