package schema

import (
	"strings"

	"github.com/satishbabariya/pure-orm/driver"
	"github.com/satishbabariya/pure-orm/runtime/types"
)

// Descriptor describes one column. Modifiers return the descriptor so they
// can be chained:
//
//	b.Integer("owner_id").Unsigned().Link(User{}, "id")
type Descriptor struct {
	name          string
	typ           Type
	def           types.Value
	nullable      bool
	increments    bool
	primary       bool
	unique        bool
	unsigned      bool
	foreignTable  string
	foreignColumn string
}

// NewDescriptor creates a NOT NULL column without constraints.
func NewDescriptor(name string, typ Type) *Descriptor {
	return &Descriptor{name: name, typ: typ}
}

// Default sets the default value. nil removes it.
func (d *Descriptor) Default(v any) *Descriptor {
	d.def = types.ValueOf(v)
	return d
}

// Nullable allows NULL values.
func (d *Descriptor) Nullable() *Descriptor {
	d.nullable = true
	return d
}

// Primary makes the column the primary key.
func (d *Descriptor) Primary() *Descriptor {
	d.primary = true
	return d
}

// Unique adds a unique constraint.
func (d *Descriptor) Unique() *Descriptor {
	d.unique = true
	return d
}

// Unsigned marks a numeric column unsigned (MySQL only).
func (d *Descriptor) Unsigned() *Descriptor {
	d.unsigned = true
	return d
}

// Increments makes an INT column auto-increment. Other types ignore it.
func (d *Descriptor) Increments() *Descriptor {
	d.increments = true
	return d
}

// Link adds a foreign key referencing column of target's table. A nil
// target or an empty column leaves the descriptor unchanged.
func (d *Descriptor) Link(target Tabler, column string) *Descriptor {
	if target == nil || column == "" {
		return d
	}
	table := target.Table()
	if table == "" {
		return d
	}
	d.foreignTable = table
	d.foreignColumn = column
	return d
}

// Name returns the column name.
func (d *Descriptor) Name() string { return d.name }

// Type returns the column type.
func (d *Descriptor) Type() Type { return d.typ }

// IsNullable reports whether NULL is allowed.
func (d *Descriptor) IsNullable() bool { return d.nullable }

// IsPrimary reports whether the column is the primary key.
func (d *Descriptor) IsPrimary() bool { return d.primary }

// IsUnique reports whether the column has a unique constraint.
func (d *Descriptor) IsUnique() bool { return d.unique }

// IsUnsigned reports whether the column is unsigned.
func (d *Descriptor) IsUnsigned() bool { return d.unsigned }

// AutoIncrements reports whether the engine generates the value. Only INT
// columns auto-increment.
func (d *Descriptor) AutoIncrements() bool {
	return d.increments && d.typ == Int
}

// ForeignKey returns the referenced table and column.
func (d *Descriptor) ForeignKey() (table, column string, ok bool) {
	return d.foreignTable, d.foreignColumn, d.foreignTable != ""
}

// DefaultValue returns the default, coerced to the column type. It is NULL
// when no default was set.
func (d *Descriptor) DefaultValue() types.Value {
	return d.Coerce(d.def)
}

// Coerce converts a stored value to the column's natural form: BOOL
// columns hold booleans, everything else is returned unchanged.
func (d *Descriptor) Coerce(v types.Value) types.Value {
	if d.typ == Bool && !v.IsNull() {
		return types.BoolValue(v.Bool())
	}
	return v
}

// ToQuery renders the column definition and its constraints for table in
// the MySQL flavour.
func (d *Descriptor) ToQuery(table string) string {
	parts := []string{d.definition(driver.MySQL)}
	parts = append(parts, d.constraints(driver.MySQL, table)...)
	return strings.Join(parts, ",\n\t")
}

// definition renders name, type, nullability, default and auto-increment.
func (d *Descriptor) definition(dialect driver.Dialect) string {
	var sb strings.Builder
	sb.WriteString(d.name)

	if dialect == driver.SQLite && d.inlinePrimary(dialect) {
		sb.WriteString(" INTEGER PRIMARY KEY AUTOINCREMENT")
		return sb.String()
	}

	sb.WriteString(" ")
	sb.WriteString(string(d.typ))
	if d.unsigned && d.typ.IsNumeric() && dialect == driver.MySQL {
		sb.WriteString(" UNSIGNED")
	}

	if d.nullable {
		sb.WriteString(" NULL")
	} else {
		sb.WriteString(" NOT NULL")
	}

	if !d.def.IsNull() {
		sb.WriteString(" DEFAULT '")
		sb.WriteString(d.defaultLiteral())
		sb.WriteString("'")
	}

	if d.AutoIncrements() && dialect == driver.MySQL {
		sb.WriteString(" AUTO_INCREMENT")
	}
	return sb.String()
}

// constraints renders the PRIMARY KEY, UNIQUE and FOREIGN KEY clauses.
func (d *Descriptor) constraints(dialect driver.Dialect, table string) []string {
	var out []string
	if d.primary && !d.inlinePrimary(dialect) {
		out = append(out, "CONSTRAINT PK_"+d.name+" PRIMARY KEY ("+d.name+")")
	}
	if d.unique {
		kw := "UNIQUE KEY"
		if dialect == driver.SQLite {
			kw = "UNIQUE"
		}
		out = append(out, "CONSTRAINT UC_"+d.name+" "+kw+" ("+d.name+")")
	}
	if d.foreignTable != "" {
		out = append(out, "CONSTRAINT FK_"+table+"_"+d.name+
			" FOREIGN KEY ("+d.name+") REFERENCES "+d.foreignTable+"("+d.foreignColumn+")")
	}
	return out
}

// inlinePrimary reports whether the primary key is declared on the column
// itself, which SQLite requires for AUTOINCREMENT.
func (d *Descriptor) inlinePrimary(dialect driver.Dialect) bool {
	return dialect == driver.SQLite && d.primary && d.AutoIncrements()
}

func (d *Descriptor) defaultLiteral() string {
	if d.typ == Bool {
		if d.def.Bool() {
			return "1"
		}
		return "0"
	}
	return strings.ReplaceAll(d.def.Literal(), "'", "''")
}
