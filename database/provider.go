package database

import (
	"context"
	"sync"

	"github.com/satishbabariya/pure-orm/connection"
)

// Provider hands out one shared Database per process. Applications build a
// single Provider at start-up, Prepare it with settings, and pass it to the
// components that need the database.
type Provider struct {
	mu          sync.Mutex
	pending     *connection.Settings
	instance    *Database
	middlewares []Middleware
}

// NewProvider creates an empty Provider. Middlewares are installed on the
// Database when it is created.
func NewProvider(middlewares ...Middleware) *Provider {
	return &Provider{middlewares: middlewares}
}

// Prepare stores the settings used by the first call to Main. It does not
// connect; calling it again before Main replaces the settings.
func (p *Provider) Prepare(settings *connection.Settings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = settings
}

// Main returns the shared Database, creating and connecting it on first
// use. It panics when Prepare was never called.
func (p *Provider) Main(ctx context.Context) *Database {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.instance != nil {
		return p.instance
	}
	if p.pending == nil {
		panic("database: Main called before Prepare; no connection settings registered")
	}

	db := New(ctx, p.pending)
	db.Use(p.middlewares...)
	p.instance = db
	return db
}

// Change replaces the shared Database.
func (p *Provider) Change(db *Database) {
	if db == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.instance = db
}

// End closes the shared Database, if one was created. A later Main call
// creates a new one from the prepared settings.
func (p *Provider) End() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.instance == nil {
		return nil
	}
	err := p.instance.Close()
	p.instance = nil
	return err
}
