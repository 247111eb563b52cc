// Package sqlite implements the SQLite engine adapter.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/satishbabariya/pure-orm/driver"
)

const defaultConnectTimeout = 10 * time.Second

// Adapter implements driver.Adapter for SQLite.
type Adapter struct{}

func init() {
	driver.Register(Adapter{})
}

// Dialect returns the SQL dialect.
func (Adapter) Dialect() driver.Dialect {
	return driver.SQLite
}

// DriverName returns the database/sql driver name.
func (Adapter) DriverName() string {
	return "sqlite3"
}

// Open opens the database file, enables foreign keys and pings it.
func (a Adapter) Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(a.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection also keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Translate classifies SQLite errors.
func (Adapter) Translate(err error) error {
	var sqErr sqlite3.Error
	if !errors.As(err, &sqErr) {
		return err
	}

	switch sqErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return driver.Classify(driver.ErrUniqueConstraint, err)
	case sqlite3.ErrConstraintForeignKey:
		return driver.Classify(driver.ErrForeignKeyConstraint, err)
	case sqlite3.ErrConstraintNotNull:
		return driver.Classify(driver.ErrNullConstraint, err)
	}

	if sqErr.Code == sqlite3.ErrError && strings.Contains(err.Error(), "no such table") {
		return driver.Classify(driver.ErrNoSuchTable, err)
	}
	return err
}

// VersionQuery returns the statement reporting the library version.
func (Adapter) VersionQuery() string {
	return "SELECT sqlite_version()"
}

// FormatDSN renders a go-sqlite3 DSN for filename with driver options
// appended as sorted query parameters.
func FormatDSN(filename string, params map[string]string) string {
	if len(params) == 0 {
		return filename
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	q := make([]string, 0, len(keys))
	for _, k := range keys {
		q = append(q, url.QueryEscape(k)+"="+url.QueryEscape(params[k]))
	}

	dsn := filename
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	return dsn + "?" + strings.Join(q, "&")
}

var _ driver.Adapter = Adapter{}
