// Package ir implements the append-only intermediate representation
// described in spec.md §3 "IR": four expression/step streams plus the
// Slot/StorageClass allocation regime that backs them.
package ir

import "github.com/oscilla-sh/oscilla/types"

// Slot is an index into the runtime ValueStore.
type Slot int

// StateSlot is an index into the persistent state store.
type StateSlot int

// StorageClass is the physical representation backing a Slot.
type StorageClass int

const (
	StorageF64        StorageClass = iota // scalar signals
	StorageTypedArray                     // materialized fields
	StorageUint8                          // event scalars
)

func (s StorageClass) String() string {
	switch s {
	case StorageF64:
		return "f64"
	case StorageTypedArray:
		return "typedArray"
	case StorageUint8:
		return "uint8"
	default:
		return "unknown"
	}
}

// SlotMeta is the compile-time-known shape of a slot: its type, the
// stride derived from that type (never stored independently —
// types.StrideOf is the single source of truth), and its storage class.
type SlotMeta struct {
	Type    types.CanonicalType
	Stride  int
	Storage StorageClass
}

// storageClassFor derives a slot's storage class from its canonical
// type: events are packed Uint8, fields are typed arrays, everything
// else is an f64 scalar.
func storageClassFor(t types.CanonicalType) StorageClass {
	if t.Extent.Temporality == types.Discrete {
		return StorageUint8
	}
	if t.Extent.Cardinality.Many {
		return StorageTypedArray
	}
	return StorageF64
}

// StateSlotMeta describes a persistent state cell, keyed by a
// stableStateId so it survives hot recompile (spec.md §3 "Runtime
// state" lifecycle).
type StateSlotMeta struct {
	StableID      string
	IsVector      bool
	InitialValue  float64
	InitialVector []float64
}

// StableStateID derives the persistent key for a block's state cell
// from its instance identity and role, per spec.md §4.3 protocol:
// "ctx.b.allocStateSlot(stableStateId(instanceId, role), ...)".
func StableStateID(instanceID, role string) string {
	return instanceID + "#" + role
}
