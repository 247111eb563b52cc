// Package driver defines the engine adapter contract and the error
// classification shared by the MySQL and SQLite adapters.
package driver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Dialect identifies a supported database engine.
type Dialect string

const (
	// MySQL is the client/server engine.
	MySQL Dialect = "mysql"
	// SQLite is the embedded, file based engine.
	SQLite Dialect = "sqlite"
)

// Embedded reports whether the dialect stores its data in a local file.
func (d Dialect) Embedded() bool {
	return d == SQLite
}

// Adapter opens handles for one engine and classifies its errors.
type Adapter interface {
	// Dialect returns the engine handled by the adapter.
	Dialect() Dialect

	// DriverName returns the database/sql driver name.
	DriverName() string

	// Open opens a single-connection handle for dsn and verifies it.
	Open(ctx context.Context, dsn string) (*sql.DB, error)

	// Translate maps an engine error onto the sentinel errors of this
	// package. Unknown errors are returned unchanged.
	Translate(err error) error

	// VersionQuery returns the statement that reports the server version.
	VersionQuery() string
}

// Sentinel errors for classified engine failures.
var (
	// ErrUniqueConstraint indicates a unique or primary key violation.
	ErrUniqueConstraint = errors.New("pure-orm: unique constraint violation")

	// ErrForeignKeyConstraint indicates a foreign key violation.
	ErrForeignKeyConstraint = errors.New("pure-orm: foreign key constraint violation")

	// ErrNullConstraint indicates a NOT NULL violation.
	ErrNullConstraint = errors.New("pure-orm: null constraint violation")

	// ErrNoSuchTable indicates that a referenced table does not exist.
	ErrNoSuchTable = errors.New("pure-orm: no such table")

	// ErrNotConnected indicates that no live handle is available.
	ErrNotConnected = errors.New("pure-orm: database not connected")

	// ErrUnknownDialect indicates that no adapter is registered for a dialect.
	ErrUnknownDialect = errors.New("pure-orm: unknown dialect")
)

// Error is an engine error classified under one of the sentinel errors.
// Its message is the engine message.
type Error struct {
	// Kind is the sentinel the error was classified as.
	Kind error
	// Err is the original engine error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the engine error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the classification sentinel.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// Classify wraps err under kind.
func Classify(kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

var (
	adaptersMu sync.RWMutex
	adapters   = make(map[Dialect]Adapter)
)

// Register makes an adapter available for its dialect. It panics when
// called twice for the same dialect or with a nil adapter.
func Register(a Adapter) {
	adaptersMu.Lock()
	defer adaptersMu.Unlock()

	if a == nil {
		panic("driver: Register adapter is nil")
	}
	if _, dup := adapters[a.Dialect()]; dup {
		panic("driver: Register called twice for dialect " + string(a.Dialect()))
	}
	adapters[a.Dialect()] = a
}

// Lookup returns the adapter registered for d.
func Lookup(d Dialect) (Adapter, error) {
	adaptersMu.RLock()
	defer adaptersMu.RUnlock()

	a, ok := adapters[d]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, string(d))
	}
	return a, nil
}

// Dialects returns the registered dialects, sorted.
func Dialects() []Dialect {
	adaptersMu.RLock()
	defer adaptersMu.RUnlock()

	out := make([]Dialect, 0, len(adapters))
	for d := range adapters {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
