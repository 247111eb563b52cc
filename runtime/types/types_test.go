package types_test

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/satishbabariya/pure-orm/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind types.Kind
		arg  any
	}{
		{name: "nil", in: nil, kind: types.Null, arg: nil},
		{name: "bool true", in: true, kind: types.Bool, arg: int64(1)},
		{name: "bool false", in: false, kind: types.Bool, arg: int64(0)},
		{name: "int", in: 42, kind: types.Int, arg: int64(42)},
		{name: "uint8", in: uint8(7), kind: types.Int, arg: int64(7)},
		{name: "float32", in: float32(1.5), kind: types.Float, arg: 1.5},
		{name: "string", in: "bob", kind: types.String, arg: "bob"},
		{name: "bytes", in: []byte("raw"), kind: types.String, arg: "raw"},
		{
			name: "time",
			in:   time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
			kind: types.String,
			arg:  "2024-03-01 12:30:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := types.ValueOf(tt.in)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.arg, v.Arg())
		})
	}
}

type status string

type brokenValuer struct{}

func (brokenValuer) Value() (driver.Value, error) { return nil, errors.New("broken") }

func TestValueOfIndirectValues(t *testing.T) {
	name := "ada"
	var missing *string
	var nullable *sql.NullInt64

	tests := []struct {
		name string
		in   any
		kind types.Kind
		arg  any
	}{
		{name: "pointer", in: &name, kind: types.String, arg: "ada"},
		{name: "nil pointer", in: missing, kind: types.Null, arg: nil},
		{name: "null string", in: sql.NullString{String: "ada", Valid: true}, kind: types.String, arg: "ada"},
		{name: "invalid null string", in: sql.NullString{}, kind: types.Null, arg: nil},
		{name: "null bool", in: sql.NullBool{Bool: true, Valid: true}, kind: types.Bool, arg: int64(1)},
		{name: "null int pointer", in: &sql.NullInt64{Int64: 9, Valid: true}, kind: types.Int, arg: int64(9)},
		{name: "nil valuer pointer", in: nullable, kind: types.Null, arg: nil},
		{name: "failing valuer", in: brokenValuer{}, kind: types.Null, arg: nil},
		{name: "named string", in: status("open"), kind: types.String, arg: "open"},
		{name: "max int64", in: uint64(math.MaxInt64), kind: types.Int, arg: int64(math.MaxInt64)},
		{name: "large uint64", in: uint64(1 << 63), kind: types.String, arg: "9223372036854775808"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := types.ValueOf(tt.in)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.arg, v.Arg())
		})
	}
}

func TestValueConversions(t *testing.T) {
	assert.Equal(t, int64(5), types.StringValue("5").Int())
	assert.Equal(t, int64(3), types.StringValue("3.9").Int())
	assert.Equal(t, 2.5, types.StringValue("2.5").Float())
	assert.True(t, types.IntValue(1).Bool())
	assert.False(t, types.IntValue(0).Bool())
	assert.True(t, types.StringValue("true").Bool())
	assert.True(t, types.StringValue("1").Bool())
	assert.False(t, types.NullValue().Bool())
	assert.Equal(t, "", types.NullValue().String())
	assert.Equal(t, "1", types.BoolValue(true).Literal())
	assert.Equal(t, "0", types.BoolValue(false).Literal())
	assert.Equal(t, "true", types.BoolValue(true).String())
}

func TestValueJSON(t *testing.T) {
	var v types.Value
	require.NoError(t, json.Unmarshal([]byte(`12`), &v))
	assert.Equal(t, types.IntValue(12), v)

	require.NoError(t, json.Unmarshal([]byte(`1.25`), &v))
	assert.Equal(t, types.FloatValue(1.25), v)

	require.NoError(t, json.Unmarshal([]byte(`null`), &v))
	assert.True(t, v.IsNull())

	assert.Error(t, json.Unmarshal([]byte(`[1]`), &v))
}

func TestRecordKeepsInsertionOrder(t *testing.T) {
	r := types.NewRecord("name", "bob", "active", true, "age", 30)
	assert.Equal(t, []string{"name", "active", "age"}, r.Names())
	assert.Equal(t, []any{"bob", int64(1), int64(30)}, r.Args())

	r.Set("active", false)
	assert.Equal(t, []string{"name", "active", "age"}, r.Names())
	assert.Equal(t, types.BoolValue(false), r.Value("active"))

	r.Set("email", "bob@example.com")
	assert.Equal(t, "email", r.Names()[3])
}

func TestRecordHelpers(t *testing.T) {
	r := types.NewRecord("id", 1, "name", "bob")

	assert.True(t, r.Has("id"))
	assert.False(t, r.Has("missing"))
	assert.True(t, r.Value("missing").IsNull())
	assert.Equal(t, []string{"name"}, r.Without("id").Names())
	assert.True(t, r.SameColumns(types.NewRecord("id", 2, "name", "alice")))
	assert.False(t, r.SameColumns(types.NewRecord("name", "alice", "id", 2)))
	assert.Equal(t, map[string]any{"id": int64(1), "name": "bob"}, r.Map())

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"bob"}`, string(out))
	assert.Equal(t, `{"id":1,"name":"bob"}`, string(out))
}

func TestNewRecordPanicsOnOddPairs(t *testing.T) {
	assert.Panics(t, func() { types.NewRecord("name") })
	assert.Panics(t, func() { types.NewRecord(1, "x") })
}
