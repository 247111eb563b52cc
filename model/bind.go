package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/satishbabariya/pure-orm/runtime/types"
)

// ErrBindTarget is returned by Bind for a destination that is not a
// pointer to a struct.
var ErrBindTarget = errors.New("model: bind target must be a non-nil pointer to a struct")

var timeType = reflect.TypeOf(time.Time{})

// Layouts tried when binding a text value to a time.Time field.
var timeLayouts = []string{
	types.DateTimeLayout,
	time.RFC3339Nano,
	"2006-01-02",
	"15:04:05",
}

// Bind copies the properties of m into the struct pointed to by dst. A
// property fills the field whose db tag, name or case-insensitive name
// matches it; properties without a field are skipped. NULL leaves a value
// field at its zero value and a pointer field nil.
func (m *Model) Bind(dst any) error {
	return bindRecord(m.props, dst)
}

// Bind copies each model into a new T.
func Bind[T any](models []*Model) ([]T, error) {
	out := make([]T, len(models))
	for i, m := range models {
		if err := m.Bind(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func bindRecord(rec types.Record, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrBindTarget
	}
	target := rv.Elem()

	for _, f := range rec {
		field, ok := fieldFor(target.Type(), f.Name)
		if !ok {
			continue
		}
		if err := assign(target.FieldByIndex(field.Index), f.Value); err != nil {
			return fmt.Errorf("model: bind %s to %s.%s: %w", f.Name, target.Type().Name(), field.Name, err)
		}
	}
	return nil
}

// fieldFor finds the exported field for a column.
func fieldFor(typ reflect.Type, column string) (reflect.StructField, bool) {
	var folded reflect.StructField
	found := false

	for _, field := range reflect.VisibleFields(typ) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		tag, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		switch {
		case tag == "-":
			continue
		case tag == column:
			return field, true
		case tag != "":
			continue
		case field.Name == column:
			return field, true
		case !found && strings.EqualFold(field.Name, column):
			folded, found = field, true
		}
	}
	return folded, found
}

func assign(dst reflect.Value, v types.Value) error {
	if dst.Kind() == reflect.Pointer {
		if v.IsNull() {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		elem := reflect.New(dst.Type().Elem())
		if err := assign(elem.Elem(), v); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	}

	if v.IsNull() {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	if dst.Type() == timeType {
		t, err := parseTime(v.String())
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(t))
		return nil
	}

	switch dst.Kind() {
	case reflect.String:
		dst.SetString(v.String())
	case reflect.Bool:
		dst.SetBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i := v.Int()
		if i < 0 {
			return fmt.Errorf("negative value %d for unsigned field", i)
		}
		dst.SetUint(uint64(i))
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(v.Float())
	case reflect.Interface:
		dst.Set(reflect.ValueOf(v.Interface()))
	default:
		return fmt.Errorf("unsupported field type %s", dst.Type())
	}
	return nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as time", s)
}
