// value.go
//
// Operand values exchanged with the host VM.
//
// The host's stack carries tagged values; this binding only ever inspects
// VTStr (a binary-safe string, the host's byte-buffer type) and VTInt (the
// compression level for gzip_level), but the full tag set is kept so values
// popped off a real host stack can be reported precisely on type errors.
package qdcompress

import (
	"fmt"
	"strconv"
)

// ValueTag enumerates the runtime kinds a Value may hold.
// The tag determines which Go type Value.Data carries.
type ValueTag int

const (
	VTNull ValueTag = iota // null (no payload)
	VTBool                 // bool
	VTInt                  // int64
	VTNum                  // float64
	VTStr                  // string (binary-safe; bytes stored in a Str)
)

// Value is the universal operand carrier shared with the host VM.
//
// Invariants:
//   - When Tag==VTNull, Data is nil.
//   - When Tag==VTStr, Data is a string and may contain arbitrary bytes,
//     including NUL; length is the byte length.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Null is the singleton null Value.
var Null = Value{Tag: VTNull}

// Primitive constructors for convenience.
func Bool(b bool) Value   { return Value{Tag: VTBool, Data: b} }
func Int(n int64) Value   { return Value{Tag: VTInt, Data: n} }
func Num(f float64) Value { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value  { return Value{Tag: VTStr, Data: s} }

// Bytes returns the payload of a VTStr value as a byte slice.
// The slice is a copy; mutating it never affects the operand.
func (v Value) Bytes() []byte {
	if v.Tag != VTStr {
		return nil
	}
	return []byte(v.Data.(string))
}

// String renders a human-friendly debug representation.
func (v Value) String() string {
	switch v.Tag {
	case VTNull:
		return "null"
	case VTBool:
		return fmt.Sprintf("%v", v.Data.(bool))
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return fmt.Sprintf("<str len=%d>", len(v.Data.(string)))
	default:
		return "<unknown>"
	}
}
