// Package types implements the canonical type algebra described in
// spec.md §3/§4.1: every port and IR value carries a payload, a unit,
// and an extent, and this package is the single source of truth for
// how those three axes compare and combine.
package types

import "fmt"

// Payload is the authoring-level value kind carried by a port or slot.
type Payload int

const (
	Float Payload = iota
	Int
	Bool
	Color
	Vec2
	Shape
)

func (p Payload) String() string {
	switch p {
	case Float:
		return "float"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Color:
		return "color"
	case Vec2:
		return "vec2"
	case Shape:
		return "shape"
	default:
		return fmt.Sprintf("payload(%d)", int(p))
	}
}

// ParsePayload is the inverse of String, used where a payload type
// arrives as authoring-level text (e.g. a vararg constraint's
// payloadType field) and must be matched against a resolved port.
func ParsePayload(s string) (Payload, bool) {
	switch s {
	case "float":
		return Float, true
	case "int":
		return Int, true
	case "bool":
		return Bool, true
	case "color":
		return Color, true
	case "vec2":
		return Vec2, true
	case "shape":
		return Shape, true
	default:
		return 0, false
	}
}

// StrideOf is the single place component counts are derived from a
// payload. No other package may compute stride independently.
func StrideOf(p Payload) int {
	switch p {
	case Float, Int, Bool, Shape:
		return 1
	case Vec2:
		return 2
	case Color:
		return 4
	default:
		panic(fmt.Sprintf("types: StrideOf: unknown payload %v", p))
	}
}
