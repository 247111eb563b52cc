package sqlite

import (
	"context"
	"errors"
	"testing"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/pure-orm/driver"
)

func TestAdapterRegistered(t *testing.T) {
	a, err := driver.Lookup(driver.SQLite)
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", a.DriverName())
	assert.True(t, a.Dialect().Embedded())
}

func TestTranslateConstraints(t *testing.T) {
	tests := []struct {
		name string
		ext  sqlite3.ErrNoExtended
		want error
	}{
		{name: "unique", ext: sqlite3.ErrConstraintUnique, want: driver.ErrUniqueConstraint},
		{name: "primary key", ext: sqlite3.ErrConstraintPrimaryKey, want: driver.ErrUniqueConstraint},
		{name: "foreign key", ext: sqlite3.ErrConstraintForeignKey, want: driver.ErrForeignKeyConstraint},
		{name: "not null", ext: sqlite3.ErrConstraintNotNull, want: driver.ErrNullConstraint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: tt.ext}
			assert.ErrorIs(t, Adapter{}.Translate(src), tt.want)
		})
	}
}

func TestOpenAndTranslateMissingTable(t *testing.T) {
	ctx := context.Background()
	db, err := Adapter{}.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	var fk int
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	_, err = db.ExecContext(ctx, "SELECT 1 FROM missing LIMIT 1")
	require.Error(t, err)
	assert.ErrorIs(t, Adapter{}.Translate(err), driver.ErrNoSuchTable)
}

func TestTranslateLeavesUnknownErrors(t *testing.T) {
	src := errors.New("boom")
	assert.Same(t, src, Adapter{}.Translate(src))
}

func TestFormatDSN(t *testing.T) {
	assert.Equal(t, "db.sqlite", FormatDSN("db.sqlite", nil))
	assert.Equal(t,
		"file:app.db?_busy_timeout=5000&cache=shared",
		FormatDSN("app.db", map[string]string{"cache": "shared", "_busy_timeout": "5000"}),
	)
}
