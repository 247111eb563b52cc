package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/satishbabariya/pure-orm/driver"
	"github.com/satishbabariya/pure-orm/runtime/types"
)

// Operation tells whether a statement was executed or fetched.
type Operation string

const (
	OpExec  Operation = "exec"
	OpFetch Operation = "fetch"
)

// QueryEvent describes one statement passing through the middleware chain.
// Rows, Duration and Error are filled in once the statement has run.
type QueryEvent struct {
	Dialect   driver.Dialect
	Operation Operation
	Query     string
	Args      []any
	Start     time.Time

	// Rows is the number of affected rows for OpExec and of fetched rows
	// for OpFetch.
	Rows     int64
	Duration time.Duration
	Error    error
}

// BoundArgs renders Args the way they appear in a SQL literal, NULL for
// nil and booleans as 0/1.
func (e *QueryEvent) BoundArgs() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		v := types.ValueOf(a)
		switch {
		case v.IsNull():
			parts[i] = "NULL"
		case v.Kind() == types.String:
			parts[i] = "'" + strings.ReplaceAll(v.String(), "'", "''") + "'"
		default:
			parts[i] = v.Literal()
		}
	}
	return strings.Join(parts, ", ")
}

// Middleware intercepts statement execution. It must call next exactly once
// for the statement to run.
type Middleware func(ctx context.Context, event *QueryEvent, next func() error) error

// Use adds middlewares to the chain. They run in registration order.
func (d *Database) Use(middlewares ...Middleware) {
	for _, m := range middlewares {
		if m != nil {
			d.middlewares = append(d.middlewares, m)
		}
	}
}

// executeWithMiddleware runs exec through the middleware chain. exec
// returns the row count recorded on the event.
func (d *Database) executeWithMiddleware(ctx context.Context, op Operation, query string, args []any, exec func() (int64, error)) error {
	event := &QueryEvent{
		Dialect:   d.Dialect(),
		Operation: op,
		Query:     query,
		Args:      args,
		Start:     time.Now(),
	}

	index := 0
	var next func() error
	next = func() error {
		if index >= len(d.middlewares) {
			n, err := exec()
			event.Rows = n
			event.Duration = time.Since(event.Start)
			event.Error = err
			return err
		}

		middleware := d.middlewares[index]
		index++
		return middleware(ctx, event, next)
	}

	return next()
}

// LoggingMiddleware logs each statement with its bound arguments and its
// outcome.
func LoggingMiddleware(logger func(format string, args ...any)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		if len(event.Args) > 0 {
			logger("[%s] %s: %s -- args: %s", event.Dialect, event.Operation, event.Query, event.BoundArgs())
		} else {
			logger("[%s] %s: %s", event.Dialect, event.Operation, event.Query)
		}

		err := next()
		if err != nil {
			logger("[%s] failed: %v", event.Dialect, err)
		} else {
			logger("[%s] %d rows in %v", event.Dialect, event.Rows, event.Duration)
		}
		return err
	}
}

// TimingMiddleware reports the duration of every statement.
func TimingMiddleware(onTiming func(query string, duration time.Duration)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if onTiming != nil {
			onTiming(event.Query, event.Duration)
		}
		return err
	}
}

// ErrorMiddleware reports failed statements. With kinds, only failures
// matching one of them (driver.ErrUniqueConstraint and friends) are
// reported.
func ErrorMiddleware(onError func(query string, err error), kinds ...error) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if err == nil || onError == nil {
			return err
		}
		if len(kinds) == 0 {
			onError(event.Query, err)
			return err
		}
		for _, kind := range kinds {
			if errors.Is(err, kind) {
				onError(event.Query, err)
				break
			}
		}
		return err
	}
}
