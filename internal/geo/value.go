package geo

import (
	"strconv"

	"github.com/goccy/go-json"
)

// Kind is the runtime type tag of a property value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	// KindOther holds nested arrays and objects.
	KindOther
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "object"
	}
}

// Value is a single property value with its type tag preserved from decoding.
type Value struct {
	raw  any
	str  string
	num  float64
	kind Kind
	b    bool
}

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue wraps a number.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// ValueOf converts a generically decoded JSON value into a Value.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return NullValue()
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case json.Number:
		f, _ := t.Float64()
		return NumberValue(f)
	case float64:
		return NumberValue(t)
	case float32:
		return NumberValue(float64(t))
	case int:
		return NumberValue(float64(t))
	case int64:
		return NumberValue(float64(t))
	case uint64:
		return NumberValue(float64(t))
	case Value:
		return t
	default:
		return Value{kind: KindOther, raw: t}
	}
}

// Kind returns the type tag.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload and whether the value is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Float returns the numeric payload and whether the value is a number.
func (v Value) Float() (float64, bool) { return v.num, v.kind == KindNumber }

// Bool returns the boolean payload and whether the value is a boolean.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// String renders the value the way it is shown in validation messages.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		data, err := json.Marshal(v.raw)
		if err != nil {
			return "<invalid>"
		}
		return string(data)
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return []byte(strconv.FormatFloat(v.num, 'g', -1, 64)), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.b)), nil
	default:
		return json.Marshal(v.raw)
	}
}
