// Package types provides the runtime value types shared by queries,
// schemas and models.
package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DateTimeLayout is the textual layout used for DATE/TIME/DATETIME values
// that reach the ORM as time.Time.
const DateTimeLayout = "2006-01-02 15:04:05"

// Kind identifies the variant held by a Value.
type Kind int

const (
	// Null is the SQL NULL value.
	Null Kind = iota
	// Bool is a boolean, bound as 1/0.
	Bool
	// Int is a signed 64-bit integer.
	Int
	// Float is a 64-bit float.
	Float
	// String is a text value.
	String
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a tagged column value. The zero Value is NULL.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// NullValue returns the NULL value.
func NullValue() Value { return Value{} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// IntValue wraps an int64.
func IntValue(i int64) Value { return Value{kind: Int, i: i} }

// FloatValue wraps a float64.
func FloatValue(f float64) Value { return Value{kind: Float, f: f} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// ValueOf converts a Go scalar or a database/sql driver value into a Value.
// Pointers are dereferenced, a nil pointer being NULL. A driver.Valuer is
// converted through its Value method and bound as NULL when that fails.
// Unsigned integers above math.MaxInt64 become decimal String values.
// Named scalar types bind as their underlying kind unless they implement
// fmt.Stringer. Other types are rendered with fmt into a String value.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return NullValue()
	case Value:
		return x
	case *Value:
		if x == nil {
			return NullValue()
		}
		return *x
	case bool:
		return BoolValue(x)
	case int:
		return IntValue(int64(x))
	case int8:
		return IntValue(int64(x))
	case int16:
		return IntValue(int64(x))
	case int32:
		return IntValue(int64(x))
	case int64:
		return IntValue(x)
	case uint:
		return uintValue(uint64(x))
	case uint8:
		return IntValue(int64(x))
	case uint16:
		return IntValue(int64(x))
	case uint32:
		return IntValue(int64(x))
	case uint64:
		return uintValue(x)
	case float32:
		return FloatValue(float64(x))
	case float64:
		return FloatValue(x)
	case string:
		return StringValue(x)
	case []byte:
		return StringValue(string(x))
	case time.Time:
		return StringValue(x.Format(DateTimeLayout))
	case driver.Valuer:
		if isNilPointer(x) {
			return NullValue()
		}
		dv, err := x.Value()
		if err != nil {
			return NullValue()
		}
		return ValueOf(dv)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return NullValue()
		}
		return ValueOf(rv.Elem().Interface())
	}
	if s, ok := v.(fmt.Stringer); ok {
		return StringValue(s.String())
	}

	switch rv.Kind() {
	case reflect.Bool:
		return BoolValue(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntValue(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uintValue(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return FloatValue(rv.Float())
	case reflect.String:
		return StringValue(rv.String())
	}
	return StringValue(fmt.Sprint(v))
}

func uintValue(u uint64) Value {
	if u > math.MaxInt64 {
		return StringValue(strconv.FormatUint(u, 10))
	}
	return IntValue(int64(u))
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is NULL.
func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns v as a bool. Numbers are true when non-zero, strings when
// they parse as a true boolean or a non-zero number.
func (v Value) Bool() bool {
	switch v.kind {
	case Bool:
		return v.b
	case Int:
		return v.i != 0
	case Float:
		return v.f != 0
	case String:
		if b, err := strconv.ParseBool(strings.TrimSpace(v.s)); err == nil {
			return b
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		return err == nil && f != 0
	default:
		return false
	}
}

// Int returns v as an int64. Unparseable strings and NULL yield 0.
func (v Value) Int() int64 {
	switch v.kind {
	case Bool:
		if v.b {
			return 1
		}
		return 0
	case Int:
		return v.i
	case Float:
		return int64(v.f)
	case String:
		s := strings.TrimSpace(v.s)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f)
		}
		return 0
	default:
		return 0
	}
}

// Float returns v as a float64. Unparseable strings and NULL yield 0.
func (v Value) Float() float64 {
	switch v.kind {
	case Bool, Int:
		return float64(v.Int())
	case Float:
		return v.f
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// String returns the textual form of v. NULL renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case Bool:
		return strconv.FormatBool(v.b)
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		if v.f == math.Trunc(v.f) && math.Abs(v.f) < 1e15 {
			return strconv.FormatFloat(v.f, 'f', 1, 64)
		}
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case String:
		return v.s
	default:
		return ""
	}
}

// Arg returns the driver argument bound for v: booleans become 1/0 and
// NULL becomes nil.
func (v Value) Arg() any {
	switch v.kind {
	case Bool:
		return v.Int()
	case Int:
		return v.i
	case Float:
		return v.f
	case String:
		return v.s
	default:
		return nil
	}
}

// Literal returns v in the form used inside SQL literals, with booleans
// as 0/1.
func (v Value) Literal() string {
	if v.kind == Bool {
		return strconv.FormatInt(v.Int(), 10)
	}
	return v.String()
}

// Interface returns the natural Go value held by v.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.b
	case Int:
		return v.i
	case Float:
		return v.f
	case String:
		return v.s
	default:
		return nil
	}
}

// Equal reports whether v and o hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	return v == o
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler. Whole JSON numbers decode as
// Int, other numbers as Float.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if n, ok := raw.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			*v = IntValue(i)
			return nil
		}
		f, err := n.Float64()
		if err != nil {
			return err
		}
		*v = FloatValue(f)
		return nil
	}
	switch raw.(type) {
	case nil, bool, string:
		*v = ValueOf(raw)
		return nil
	default:
		return fmt.Errorf("types: cannot decode %s into a Value", string(data))
	}
}
