package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCondition(t *testing.T) {
	tests := []struct {
		name  string
		input string
		sql   string
		args  []any
	}{
		{
			name:  "equality",
			input: "id = 5",
			sql:   "id = ?",
			args:  []any{int64(5)},
		},
		{
			name:  "string literal with escaped quote",
			input: "name = 'O''Brien'",
			sql:   "name = ?",
			args:  []any{"O'Brien"},
		},
		{
			name:  "double quoted string",
			input: `name != "ada"`,
			sql:   "name <> ?",
			args:  []any{"ada"},
		},
		{
			name:  "float and boolean",
			input: "score >= 1.5 and active = true",
			sql:   "score >= ? AND active = ?",
			args:  []any{1.5, int64(1)},
		},
		{
			name:  "null tests",
			input: "deleted_at IS NULL OR archived_at is not null",
			sql:   "deleted_at IS NULL OR archived_at IS NOT NULL",
		},
		{
			name:  "equals null",
			input: "deleted_at = NULL",
			sql:   "deleted_at IS NULL",
		},
		{
			name:  "in list",
			input: "role IN ('admin', 'owner')",
			sql:   "role IN (?, ?)",
			args:  []any{"admin", "owner"},
		},
		{
			name:  "not in list",
			input: "id NOT IN (1, 2)",
			sql:   "id NOT IN (?, ?)",
			args:  []any{int64(1), int64(2)},
		},
		{
			name:  "like",
			input: "email LIKE '%@example.org'",
			sql:   "email LIKE ?",
			args:  []any{"%@example.org"},
		},
		{
			name:  "not like",
			input: "email NOT LIKE '%spam%'",
			sql:   "email NOT LIKE ?",
			args:  []any{"%spam%"},
		},
		{
			name:  "grouping",
			input: "age > 17 AND (role = 'admin' OR role = 'owner')",
			sql:   "age > ? AND (role = ? OR role = ?)",
			args:  []any{int64(17), "admin", "owner"},
		},
		{
			name:  "qualified column",
			input: "users.id < 10",
			sql:   "users.id < ?",
			args:  []any{int64(10)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Condition(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.sql, c.SQL())
			assert.Equal(t, tt.args, c.Args())
		})
	}
}

func TestConditionBlank(t *testing.T) {
	c, err := Condition("   ")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestConditionErrors(t *testing.T) {
	inputs := []string{
		"id =",
		"id = 1; DROP TABLE users",
		"= 5",
		"age > NULL",
		"name LIKE NULL",
		"name NOT LIKE NULL",
		"(id = 1",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Condition(input)
			assert.Error(t, err)
		})
	}
}

func TestMustConditionPanics(t *testing.T) {
	assert.Panics(t, func() { MustCondition("id ==") })
	assert.Equal(t, "id = ?", MustCondition("id = 1").SQL())
}
