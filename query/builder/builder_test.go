package builder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/pure-orm/runtime/types"
)

func TestInsert(t *testing.T) {
	rec := types.NewRecord("name", "ada", "age", 36, "active", true)

	sql, err := Insert("users", rec)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO users (name, age, active) VALUES (?, ?, ?)", sql)
}

func TestInsertPlaceholdersMatchColumns(t *testing.T) {
	for n := 1; n <= 6; n++ {
		var rec types.Record
		for i := 0; i < n; i++ {
			rec.Set(string(rune('a'+i)), i)
		}

		sql, err := Insert("t", rec)
		require.NoError(t, err)
		assert.Equal(t, n, strings.Count(sql, "?"))
		assert.Contains(t, sql, "("+strings.Join(rec.Names(), ", ")+")")
	}
}

func TestInsertErrors(t *testing.T) {
	_, err := Insert("users", nil)
	assert.ErrorIs(t, err, ErrEmptyRecord)

	_, err = Insert("", types.NewRecord("a", 1))
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestInsertMany(t *testing.T) {
	records := []types.Record{
		types.NewRecord("name", "ada", "age", 36),
		types.NewRecord("name", "bob", "age", 41),
	}

	sql, err := InsertMany("users", records)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO users (name, age) VALUES (?, ?), (?, ?)", sql)
	assert.Equal(t, 1, strings.Count(sql, "(name, age)"))
}

func TestInsertManyErrors(t *testing.T) {
	_, err := InsertMany("users", nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = InsertMany("users", []types.Record{{}})
	assert.ErrorIs(t, err, ErrEmptyRecord)

	_, err = InsertMany("users", []types.Record{
		types.NewRecord("name", "ada"),
		types.NewRecord("email", "bob@example.org"),
	})
	assert.ErrorIs(t, err, ErrNonUniformBatch)
}

func TestUpdate(t *testing.T) {
	rec := types.NewRecord("name", "ada", "age", 37)

	sql, err := Update("users", rec, "id = ?")
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET name=?, age=? WHERE id = ?", sql)
}

func TestUpdateRefusesMissingCondition(t *testing.T) {
	rec := types.NewRecord("name", "ada")

	for _, cond := range []string{"", "   "} {
		sql, err := Update("users", rec, cond)
		assert.ErrorIs(t, err, ErrMissingCondition)
		assert.Empty(t, sql)
	}

	_, err := Update("users", nil, "id = 1")
	assert.ErrorIs(t, err, ErrEmptyRecord)
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name      string
		fields    []string
		condition string
		statement string
		want      string
	}{
		{
			name: "all columns",
			want: "SELECT * FROM users",
		},
		{
			name:   "named columns",
			fields: []string{"a", "b"},
			want:   "SELECT a, b FROM users",
		},
		{
			name:      "condition",
			condition: "age > ?",
			want:      "SELECT * FROM users WHERE age > ?",
		},
		{
			name:      "condition and statement",
			fields:    []string{"id"},
			condition: "age > ?",
			statement: "ORDER BY id ASC LIMIT 10 OFFSET 0",
			want:      "SELECT id FROM users WHERE age > ? ORDER BY id ASC LIMIT 10 OFFSET 0",
		},
		{
			name:      "statement only",
			statement: "LIMIT 1 OFFSET 0",
			want:      "SELECT * FROM users LIMIT 1 OFFSET 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := Select("users", tt.fields, tt.condition, tt.statement)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
		})
	}
}

func TestDeleteCountDropExists(t *testing.T) {
	tests := []struct {
		name   string
		render func() (string, error)
		want   string
	}{
		{"delete all", func() (string, error) { return Delete("users", "") }, "DELETE FROM users"},
		{"delete where", func() (string, error) { return Delete("users", "id = ?") }, "DELETE FROM users WHERE id = ?"},
		{"count all", func() (string, error) { return Count("users", "") }, "SELECT COUNT(*) FROM users"},
		{"count where", func() (string, error) { return Count("users", "age > ?") }, "SELECT COUNT(*) FROM users WHERE age > ?"},
		{"drop", func() (string, error) { return Drop("users") }, "DROP TABLE IF EXISTS users"},
		{"exists", func() (string, error) { return Exists("users") }, "SELECT 1 FROM users LIMIT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := tt.render()
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
		})
	}
}

func TestEmptyTable(t *testing.T) {
	_, err := Select("", nil, "", "")
	assert.ErrorIs(t, err, ErrEmptyTable)
	_, err = Delete("", "")
	assert.ErrorIs(t, err, ErrEmptyTable)
	_, err = Count("", "")
	assert.ErrorIs(t, err, ErrEmptyTable)
	_, err = Drop("")
	assert.ErrorIs(t, err, ErrEmptyTable)
	_, err = Exists("")
	assert.ErrorIs(t, err, ErrEmptyTable)
}
