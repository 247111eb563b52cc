// Package database provides the shared database handle used by queries and
// models, and the Provider that creates it lazily from prepared settings.
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/satishbabariya/pure-orm/connection"
	"github.com/satishbabariya/pure-orm/driver"
	"github.com/satishbabariya/pure-orm/internal/debug"
	"github.com/satishbabariya/pure-orm/runtime/types"
)

// Database owns one Connection and executes statements against it.
// It is not safe for concurrent use; callers serialize access.
type Database struct {
	conn        *connection.Connection
	middlewares []Middleware
}

// New creates a Database for settings and connects it. The result is never
// nil; a failed connection is reported by IsConnected and Err.
func New(ctx context.Context, settings *connection.Settings) *Database {
	return &Database{conn: connection.Open(ctx, settings)}
}

// FromDB wraps an already open handle of the given dialect.
func FromDB(d driver.Dialect, db *sql.DB) (*Database, error) {
	conn, err := connection.FromDB(d, db)
	if err != nil {
		return nil, err
	}
	return &Database{conn: conn}, nil
}

// IsConnected reports whether the owned connection holds a live handle.
func (d *Database) IsConnected() bool {
	return d != nil && d.conn.IsConnected()
}

// Handle returns the live handle, or nil.
func (d *Database) Handle() *sql.DB {
	return d.conn.DB()
}

// Connection returns the owned connection.
func (d *Database) Connection() *connection.Connection {
	return d.conn
}

// Dialect returns the engine of the owned connection.
func (d *Database) Dialect() driver.Dialect {
	return d.conn.Settings().Dialect()
}

// Err returns the last connection failure message.
func (d *Database) Err() string {
	return d.conn.Err()
}

// Close releases the handle.
func (d *Database) Close() error {
	d.conn.Disconnect()
	return nil
}

func (d *Database) translate(err error) error {
	if a := d.conn.Adapter(); a != nil && err != nil {
		return a.Translate(err)
	}
	return err
}

// Exec executes a statement that returns no rows.
func (d *Database) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if !d.IsConnected() {
		return nil, driver.ErrNotConnected
	}

	var res sql.Result
	err := d.executeWithMiddleware(ctx, OpExec, query, args, func() (int64, error) {
		var err error
		res, err = d.conn.DB().ExecContext(ctx, query, args...)
		if err != nil {
			return 0, d.translate(err)
		}
		n, _ := res.RowsAffected()
		return n, nil
	})
	d.log(query, args, err)
	return res, err
}

// Fetch executes a query and returns every row as an associative record.
func (d *Database) Fetch(ctx context.Context, query string, args ...any) ([]types.Record, error) {
	return d.fetch(ctx, query, args, 0)
}

// FetchOne executes a query and returns its first row, or nil when the
// result set is empty.
func (d *Database) FetchOne(ctx context.Context, query string, args ...any) (types.Record, error) {
	rows, err := d.fetch(ctx, query, args, 1)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (d *Database) fetch(ctx context.Context, query string, args []any, limit int) ([]types.Record, error) {
	if !d.IsConnected() {
		return nil, driver.ErrNotConnected
	}

	var records []types.Record
	err := d.executeWithMiddleware(ctx, OpFetch, query, args, func() (int64, error) {
		rows, err := d.conn.DB().QueryContext(ctx, query, args...)
		if err != nil {
			return 0, d.translate(err)
		}
		defer rows.Close()

		records, err = scanRecords(rows, limit)
		return int64(len(records)), d.translate(err)
	})
	d.log(query, args, err)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (d *Database) log(query string, args []any, err error) {
	if err != nil {
		debug.Debug("statement failed", "sql", query, "args", args, "error", err)
		return
	}
	debug.Debug("statement executed", "sql", query, "args", args)
}

// scanRecords reads up to limit rows (all when limit is 0) into records
// whose field order is the column order of the result set.
func scanRecords(rows *sql.Rows, limit int) ([]types.Record, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var records []types.Record
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := make(types.Record, len(columns))
		for i, col := range columns {
			record[i] = types.Field{Name: col, Value: types.ValueOf(values[i])}
		}
		records = append(records, record)

		if limit > 0 && len(records) >= limit {
			break
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return records, nil
}
