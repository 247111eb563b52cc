package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one named value of a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is an ordered column name → value mapping. Iteration order is
// insertion order; it is the column order of rendered statements.
type Record []Field

// NewRecord builds a Record from alternating name/value pairs.
// It panics when a name is not a string or a value is missing.
func NewRecord(pairs ...any) Record {
	if len(pairs)%2 != 0 {
		panic("types: NewRecord requires name/value pairs")
	}
	r := make(Record, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("types: NewRecord name at position %d is %T, not string", i, pairs[i]))
		}
		r.Set(name, pairs[i+1])
	}
	return r
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r) }

// Names returns the field names in order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// Values returns the field values in order.
func (r Record) Values() []Value {
	values := make([]Value, len(r))
	for i, f := range r {
		values[i] = f.Value
	}
	return values
}

// Args returns the bound driver arguments in order.
func (r Record) Args() []any {
	args := make([]any, len(r))
	for i, f := range r {
		args[i] = f.Value.Arg()
	}
	return args
}

// Get returns the value stored under name.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Value returns the value stored under name, or NULL.
func (r Record) Value(name string) Value {
	v, _ := r.Get(name)
	return v
}

// Has reports whether name is present.
func (r Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Set stores v under name. An existing field keeps its position.
func (r *Record) Set(name string, v any) {
	val := ValueOf(v)
	for i := range *r {
		if (*r)[i].Name == name {
			(*r)[i].Value = val
			return
		}
	}
	*r = append(*r, Field{Name: name, Value: val})
}

// Without returns a copy of r without the named fields.
func (r Record) Without(names ...string) Record {
	skip := make(map[string]struct{}, len(names))
	for _, n := range names {
		skip[n] = struct{}{}
	}
	out := make(Record, 0, len(r))
	for _, f := range r {
		if _, ok := skip[f.Name]; !ok {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	copy(out, r)
	return out
}

// SameColumns reports whether o has exactly the columns of r, in order.
func (r Record) SameColumns(o Record) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if r[i].Name != o[i].Name {
			return false
		}
	}
	return true
}

// Map returns the record as a plain map of natural Go values.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r))
	for _, f := range r {
		m[f.Name] = f.Value.Interface()
	}
	return m
}

// MarshalJSON renders r as a JSON object preserving field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
