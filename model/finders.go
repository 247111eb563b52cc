package model

import (
	"context"
	"fmt"

	"github.com/satishbabariya/pure-orm/database"
	"github.com/satishbabariya/pure-orm/query"
	"github.com/satishbabariya/pure-orm/runtime/types"
)

// Find returns the first model of type D matching cond, or nil when none
// matches.
func Find[D Definition](ctx context.Context, db *database.Database, cond query.Condition) (*Model, error) {
	def := definitionOf[D]()
	res, err := query.New(db).
		Select(TableOf(def)).
		Where(cond).
		Model(Hydrator(db, def)).
		Execute(ctx)
	if err != nil {
		return nil, err
	}
	m, _ := res.Model.(*Model)
	return m, nil
}

// FindByID returns the model of type D whose primary key equals id.
func FindByID[D Definition](ctx context.Context, db *database.Database, id any) (*Model, error) {
	def := definitionOf[D]()
	column := "id"
	if ids := SchemaOf(def).Identifiers(); len(ids) > 0 {
		column = ids[0]
	}
	return Find[D](ctx, db, query.Eq(column, id))
}

// All returns every model of type D.
func All[D Definition](ctx context.Context, db *database.Database) ([]*Model, error) {
	return Where[D](ctx, db, query.Condition{})
}

// Where returns the models of type D matching cond. An empty condition
// matches every row.
func Where[D Definition](ctx context.Context, db *database.Database, cond query.Condition) ([]*Model, error) {
	def := definitionOf[D]()
	res, err := query.New(db).
		Select(TableOf(def)).
		All().
		Where(cond).
		Model(Hydrator(db, def)).
		Execute(ctx)
	if err != nil {
		return nil, err
	}

	models := make([]*Model, 0, len(res.Models))
	for _, v := range res.Models {
		models = append(models, v.(*Model))
	}
	return models, nil
}

// Count returns the number of rows of D's table matching cond.
func Count[D Definition](ctx context.Context, db *database.Database, cond query.Condition) (int64, error) {
	return CountTable(ctx, db, TableOf(definitionOf[D]()), cond)
}

// InsertMany inserts models with a single statement. Every model must
// belong to the same table. Inserted models are not marked persisted since
// their generated keys are unknown.
func InsertMany(ctx context.Context, db *database.Database, models ...*Model) error {
	if len(models) == 0 {
		return nil
	}

	table := models[0].Table()
	records := make([]types.Record, len(models))
	for i, m := range models {
		if m.Table() != table {
			return fmt.Errorf("model: cannot insert %s and %s rows together", table, m.Table())
		}
		records[i] = m.insertRecord()
	}

	_, err := query.New(db).InsertMany(table, records).Execute(ctx)
	return err
}
