// Package model is an active-record layer over query and schema. A model
// type supplies its columns through Define; instances carry their column
// values and know whether they were loaded from (or saved to) the database.
//
//	type User struct{}
//
//	func (User) Define(b *schema.Builder) {
//		b.ID()
//		b.Char("name", 50)
//		b.Boolean("active").Default(true)
//	}
//
//	u := model.New(db, User{}, types.NewRecord("name", "ada"))
//	err := u.Save(ctx)
package model

import (
	"context"
	"reflect"
	"sync"

	"github.com/satishbabariya/pure-orm/database"
	"github.com/satishbabariya/pure-orm/schema"
)

// Definition declares the columns of a model's table.
type Definition interface {
	Define(b *schema.Builder)
}

// Seeder is implemented by definitions that insert default rows after
// their table is created.
type Seeder interface {
	Seed(ctx context.Context, db *database.Database) error
}

var schemas sync.Map // reflect.Type -> *schema.Builder

// TableOf returns the table of def: its Table method when it implements
// schema.Tabler, otherwise the type name followed by "s".
func TableOf(def Definition) string {
	if t, ok := def.(schema.Tabler); ok {
		if name := t.Table(); name != "" {
			return name
		}
	}
	typ := reflect.TypeOf(def)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ.Name() + "s"
}

// Ref returns a schema.Tabler naming def's table, for use with
// schema.Descriptor.Link.
func Ref(def Definition) schema.Tabler {
	return schema.TableName(TableOf(def))
}

// SchemaOf returns the schema of def's type, building it on first use. The
// returned builder is shared and must not be modified.
func SchemaOf(def Definition) *schema.Builder {
	key := reflect.TypeOf(def)
	if b, ok := schemas.Load(key); ok {
		return b.(*schema.Builder)
	}

	b := schema.NewBuilder(TableOf(def))
	def.Define(b)
	actual, _ := schemas.LoadOrStore(key, b)
	return actual.(*schema.Builder)
}

// definitionOf returns a usable zero value of D, allocating pointer types.
func definitionOf[D Definition]() D {
	var def D
	typ := reflect.TypeOf(def)
	if typ != nil && typ.Kind() == reflect.Pointer {
		return reflect.New(typ.Elem()).Interface().(D)
	}
	return def
}
