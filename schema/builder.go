package schema

import (
	"strings"

	"github.com/satishbabariya/pure-orm/driver"
)

// Builder is the ordered set of column descriptors of one table. Columns
// are rendered in the order they were added.
type Builder struct {
	table   string
	names   []string
	columns map[string]*Descriptor
}

// NewBuilder creates an empty schema for table.
func NewBuilder(table string) *Builder {
	return &Builder{
		table:   table,
		columns: make(map[string]*Descriptor),
	}
}

// Table returns the table name.
func (b *Builder) Table() string { return b.table }

// Add adds a column. Adding an existing name returns the existing
// descriptor unchanged.
func (b *Builder) Add(name string, typ Type) *Descriptor {
	if d, ok := b.columns[name]; ok {
		return d
	}
	d := NewDescriptor(name, typ)
	b.columns[name] = d
	b.names = append(b.names, name)
	return d
}

// Get returns the named descriptor, or nil.
func (b *Builder) Get(name string) *Descriptor {
	return b.columns[name]
}

// Names returns the column names in order.
func (b *Builder) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Descriptors returns the descriptors in column order.
func (b *Builder) Descriptors() []*Descriptor {
	out := make([]*Descriptor, len(b.names))
	for i, name := range b.names {
		out[i] = b.columns[name]
	}
	return out
}

// Identifiers returns the primary key column names in order.
func (b *Builder) Identifiers() []string {
	var ids []string
	for _, name := range b.names {
		if b.columns[name].IsPrimary() {
			ids = append(ids, name)
		}
	}
	return ids
}

// ID adds an auto-increment INT primary key, named id unless a name is given.
func (b *Builder) ID(name ...string) *Descriptor {
	n := "id"
	if len(name) > 0 && name[0] != "" {
		n = name[0]
	}
	return b.Integer(n).Primary().Increments()
}

// Boolean adds a BOOL column.
func (b *Builder) Boolean(name string) *Descriptor { return b.Add(name, Bool) }

// Integer adds an INT column.
func (b *Builder) Integer(name string) *Descriptor { return b.Add(name, Int) }

// Float adds a FLOAT column.
func (b *Builder) Float(name string) *Descriptor { return b.Add(name, Float) }

// Char adds a VARCHAR column of size characters (DefaultCharSize when
// omitted).
func (b *Builder) Char(name string, size ...int) *Descriptor {
	n := DefaultCharSize
	if len(size) > 0 && size[0] > 0 {
		n = size[0]
	}
	return b.Add(name, VarChar(n))
}

// Text adds a TEXT column.
func (b *Builder) Text(name string) *Descriptor { return b.Add(name, Text) }

// Date adds a DATE column.
func (b *Builder) Date(name string) *Descriptor { return b.Add(name, Date) }

// Time adds a TIME column.
func (b *Builder) Time(name string) *Descriptor { return b.Add(name, Time) }

// DateTime adds a DATETIME column.
func (b *Builder) DateTime(name string) *Descriptor { return b.Add(name, DateTime) }

// Timestamps adds the created_at and updated_at DATETIME columns.
func (b *Builder) Timestamps() {
	b.DateTime("created_at")
	b.DateTime("updated_at")
}

// Primary would declare a composite primary key over names.
// TODO: render a single PRIMARY KEY (a, b) constraint for names in ToQuery.
func (b *Builder) Primary(names ...string) error {
	return ErrCompositePrimaryKey
}

// ToQuery renders the CREATE TABLE statement in the MySQL flavour, with
// each column's constraints following its definition.
func (b *Builder) ToQuery() string {
	return b.ToQueryFor(driver.MySQL)
}

// ToQueryFor renders the CREATE TABLE statement for dialect. SQLite
// requires table constraints after every column definition, so its
// constraints are collected at the end.
func (b *Builder) ToQueryFor(dialect driver.Dialect) string {
	var entries []string
	var trailing []string

	for _, d := range b.Descriptors() {
		if dialect == driver.SQLite {
			entries = append(entries, d.definition(dialect))
			trailing = append(trailing, d.constraints(dialect, b.table)...)
			continue
		}
		entries = append(entries, d.ToQuery(b.table))
	}
	entries = append(entries, trailing...)

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(b.table)
	sb.WriteString(" (")
	for i, e := range entries {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("\n\t")
		sb.WriteString(e)
	}
	sb.WriteString("\n)")
	return sb.String()
}
