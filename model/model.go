package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/satishbabariya/pure-orm/database"
	"github.com/satishbabariya/pure-orm/internal/debug"
	"github.com/satishbabariya/pure-orm/query"
	"github.com/satishbabariya/pure-orm/runtime/types"
	"github.com/satishbabariya/pure-orm/schema"
)

var (
	// ErrUnknownProperty is returned by Set for a column the schema lacks.
	ErrUnknownProperty = errors.New("model: unknown property")
	// ErrNotPersisted is returned by Erase for a model that does not exist.
	ErrNotPersisted = errors.New("model: not persisted")
)

// Model is one row of a model's table.
type Model struct {
	db        *database.Database
	def       Definition
	schema    *schema.Builder
	props     types.Record
	ids       []string
	persisted bool
}

// New creates an unsaved model. Properties start at their column defaults
// and are then overwritten by the matching fields of data; fields without
// a column are ignored.
func New(db *database.Database, def Definition, data types.Record) *Model {
	s := SchemaOf(def)
	m := &Model{
		db:     db,
		def:    def,
		schema: s,
		ids:    s.Identifiers(),
	}

	m.props = make(types.Record, 0, len(s.Names()))
	for _, d := range s.Descriptors() {
		m.props = append(m.props, types.Field{Name: d.Name(), Value: d.DefaultValue()})
	}
	for _, f := range data {
		if d := s.Get(f.Name); d != nil {
			m.props.Set(f.Name, d.Coerce(f.Value))
		}
	}
	return m
}

// Hydrate creates a model from a fetched row and marks it persisted.
func Hydrate(db *database.Database, def Definition, row types.Record) *Model {
	m := New(db, def, row)
	m.persisted = true
	return m
}

// Hydrator returns a query hydrator building models of def.
func Hydrator(db *database.Database, def Definition) query.Hydrator {
	return func(row types.Record) any {
		return Hydrate(db, def, row)
	}
}

// Definition returns the model's definition.
func (m *Model) Definition() Definition { return m.def }

// Schema returns the model's shared schema.
func (m *Model) Schema() *schema.Builder { return m.schema }

// Table returns the model's table.
func (m *Model) Table() string { return m.schema.Table() }

// Get returns the named property.
func (m *Model) Get(name string) (types.Value, bool) {
	return m.props.Get(name)
}

// Value returns the named property, or NULL.
func (m *Model) Value(name string) types.Value {
	return m.props.Value(name)
}

// Set assigns the named property.
func (m *Model) Set(name string, v any) error {
	d := m.schema.Get(name)
	if d == nil {
		return fmt.Errorf("%w: %s.%s", ErrUnknownProperty, m.Table(), name)
	}
	m.props.Set(name, d.Coerce(types.ValueOf(v)))
	return nil
}

// PropertyNames returns the property names in column order.
func (m *Model) PropertyNames() []string {
	return m.props.Names()
}

// ToRecord returns a copy of the properties.
func (m *Model) ToRecord() types.Record {
	return m.props.Clone()
}

// ToJSON renders the properties as a JSON object in column order.
func (m *Model) ToJSON() ([]byte, error) {
	return m.props.MarshalJSON()
}

// Clear drops every property and the persisted flag.
func (m *Model) Clear() {
	m.props = types.Record{}
	m.persisted = false
}

// Exists reports whether the model was loaded or saved and every primary
// key column holds a value. A model whose definition has no primary key
// never exists: its row cannot be addressed.
func (m *Model) Exists() bool {
	if !m.persisted || len(m.ids) == 0 {
		return false
	}
	for _, id := range m.ids {
		if m.props.Value(id).IsNull() {
			return false
		}
	}
	return true
}

// identity matches the row of m by its primary key columns.
func (m *Model) identity() query.Condition {
	conds := make([]query.Condition, len(m.ids))
	for i, id := range m.ids {
		conds[i] = query.Eq(id, m.props.Value(id))
	}
	return query.And(conds...)
}

// insertRecord returns the properties to insert, leaving out auto-increment
// columns without a value.
func (m *Model) insertRecord() types.Record {
	rec := make(types.Record, 0, len(m.props))
	for _, f := range m.props {
		if d := m.schema.Get(f.Name); d != nil && d.AutoIncrements() && f.Value.IsNull() {
			continue
		}
		rec = append(rec, f)
	}
	return rec
}

// Save updates the row of an existing model, or inserts a new one. After
// an insert the model exists and a single auto-increment key holds the
// generated id. A model without a primary key is inserted on every Save.
func (m *Model) Save(ctx context.Context) error {
	if m.Exists() {
		rec := m.props.Without(m.ids...)
		if rec.Len() == 0 {
			return nil
		}
		_, err := query.New(m.db).Update(m.Table(), rec).Where(m.identity()).Execute(ctx)
		if err != nil {
			return err
		}
		debug.Debug("model updated", "table", m.Table())
		return nil
	}

	res, err := query.New(m.db).Insert(m.Table(), m.insertRecord()).Execute(ctx)
	if err != nil {
		return err
	}
	m.persisted = true

	if len(m.ids) == 1 {
		id := m.ids[0]
		if d := m.schema.Get(id); d.AutoIncrements() && m.props.Value(id).IsNull() && res.LastInsertID != 0 {
			m.props.Set(id, res.LastInsertID)
		}
	}
	debug.Debug("model inserted", "table", m.Table(), "id", res.LastInsertID)
	return nil
}

// Erase deletes the row of an existing model and clears it.
func (m *Model) Erase(ctx context.Context) error {
	if !m.Exists() {
		return fmt.Errorf("%w: %s", ErrNotPersisted, m.Table())
	}
	if _, err := query.New(m.db).Delete(m.Table()).Where(m.identity()).Execute(ctx); err != nil {
		return err
	}
	m.Clear()
	return nil
}
