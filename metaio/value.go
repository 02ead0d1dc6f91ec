package metaio

import "strconv"

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	default:
		return "Invalid"
	}
}

// Value is a small tagged value for waveform keyword arguments.
//
// Only the three kinds the stored schema can represent exist; there is no
// bool case. The kind is fixed at construction and is the sole dispatch
// rule on encode: an integral float stays a float, an int stays an int.
//
// NOTE: This is used for persistence; keep it stable.
type Value struct {
	Kind Kind
	I64  int64
	F64  float64
	Str  string
}

// Int creates an integer Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float creates a float Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String creates a string Value.
func String(v string) Value { return Value{Kind: KindString, Str: v} }

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind == KindInt {
		return v.I64, true
	}
	return 0, false
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.Kind == KindFloat {
		return v.F64, true
	}
	return 0, false
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind == KindString {
		return v.Str, true
	}
	return "", false
}

// GoString returns a readable representation for error messages and logs.
func (v Value) GoString() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.Str)
	default:
		return "invalid"
	}
}
