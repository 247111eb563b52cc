// Package schema describes table columns and compiles them into CREATE
// TABLE statements.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Type is the SQL type of a column.
type Type string

const (
	Bool     Type = "BOOL"
	Int      Type = "INT"
	Float    Type = "FLOAT"
	Text     Type = "TEXT"
	Date     Type = "DATE"
	Time     Type = "TIME"
	DateTime Type = "DATETIME"
)

// DefaultCharSize is the VARCHAR size used by Char when none is given.
const DefaultCharSize = 30

// VarChar returns the VARCHAR(size) type.
func VarChar(size int) Type {
	return Type(fmt.Sprintf("VARCHAR(%d)", size))
}

// IsNumeric reports whether t stores numbers.
func (t Type) IsNumeric() bool {
	return t == Int || t == Float || t == Bool
}

// IsText reports whether t stores character data.
func (t Type) IsText() bool {
	return t == Text || strings.HasPrefix(string(t), "VARCHAR(")
}

func (t Type) String() string { return string(t) }

// Tabler is implemented by anything that names a table, such as a model
// definition referenced by a foreign key.
type Tabler interface {
	Table() string
}

// TableName is a Tabler for a plain table name.
type TableName string

// Table returns the name.
func (t TableName) Table() string { return string(t) }

// ErrCompositePrimaryKey is returned by Builder.Primary.
var ErrCompositePrimaryKey = errors.New("schema: composite primary keys are not supported")
