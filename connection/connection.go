package connection

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/satishbabariya/pure-orm/driver"
	"github.com/satishbabariya/pure-orm/internal/debug"
)

// Connection owns at most one live database handle. A failed Connect
// leaves the handle unset and records the failure; the error message and
// the handle are never set at the same time.
type Connection struct {
	settings *Settings
	adapter  driver.Adapter
	db       *sql.DB
	err      string
	cause    error
}

// New creates a disconnected Connection for settings.
func New(settings *Settings) *Connection {
	if settings == nil {
		settings = &Settings{}
	}
	return &Connection{settings: settings}
}

// Open creates a Connection and connects it. The returned Connection is
// never nil; check IsConnected and Err.
func Open(ctx context.Context, settings *Settings) *Connection {
	c := New(settings)
	c.Connect(ctx)
	return c
}

// FromDB wraps an already open handle.
func FromDB(d driver.Dialect, db *sql.DB) (*Connection, error) {
	adapter, err := driver.Lookup(d)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, driver.ErrNotConnected
	}
	return &Connection{
		settings: &Settings{Type: d},
		adapter:  adapter,
		db:       db,
	}, nil
}

// Connect opens the handle. It reports success and never panics; on
// failure the error is available through Err and Cause.
func (c *Connection) Connect(ctx context.Context) bool {
	if c.IsConnected() {
		return true
	}

	adapter, err := driver.Lookup(c.settings.Dialect())
	if err != nil {
		c.fail(err)
		return false
	}
	c.adapter = adapter

	db, err := adapter.Open(ctx, c.settings.DSN())
	if err != nil {
		c.fail(err)
		return false
	}

	c.db = db
	c.err = ""
	c.cause = nil
	debug.Debug("connected", "dialect", string(adapter.Dialect()), "target", c.settings.ConnectionString())
	return true
}

func (c *Connection) fail(err error) {
	c.db = nil
	c.cause = err
	c.err = err.Error()
	debug.Warn("connection failed", "target", c.settings.ConnectionString(), "error", err)
}

// Disconnect releases the handle and clears any cached error.
func (c *Connection) Disconnect() {
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			debug.Warn("closing connection", "error", err)
		}
	}
	c.db = nil
	c.err = ""
	c.cause = nil
}

// IsConnected reports whether a live handle is held.
func (c *Connection) IsConnected() bool {
	return c.db != nil
}

// Err returns the message of the last connection failure, if any.
func (c *Connection) Err() string {
	return c.err
}

// Cause returns the last connection failure, if any.
func (c *Connection) Cause() error {
	return c.cause
}

// DB returns the live handle, or nil.
func (c *Connection) DB() *sql.DB {
	return c.db
}

// Settings returns the connection settings.
func (c *Connection) Settings() *Settings {
	return c.settings
}

// Adapter returns the engine adapter, nil before the first Connect.
func (c *Connection) Adapter() driver.Adapter {
	return c.adapter
}

// ServerVersion asks the engine for its version string.
func (c *Connection) ServerVersion(ctx context.Context) (string, error) {
	if !c.IsConnected() {
		return "", driver.ErrNotConnected
	}

	var v string
	if err := c.db.QueryRowContext(ctx, c.adapter.VersionQuery()).Scan(&v); err != nil {
		return "", fmt.Errorf("failed to read server version: %w", c.adapter.Translate(err))
	}
	return v, nil
}
