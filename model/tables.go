package model

import (
	"context"
	"fmt"

	"github.com/satishbabariya/pure-orm/database"
	"github.com/satishbabariya/pure-orm/internal/debug"
	"github.com/satishbabariya/pure-orm/query"
)

// CreateTable creates the table of D in the dialect of db and, when seed is
// set and D implements Seeder, inserts its default rows.
func CreateTable[D Definition](ctx context.Context, db *database.Database, seed bool) error {
	def := definitionOf[D]()
	ddl := SchemaOf(def).ToQueryFor(db.Dialect())

	if _, err := query.NewRaw(db, ddl).Execute(ctx); err != nil {
		return err
	}
	debug.Info("table created", "table", TableOf(def))

	if !seed {
		return nil
	}
	if s, ok := any(def).(Seeder); ok {
		if err := s.Seed(ctx, db); err != nil {
			return fmt.Errorf("failed to seed %s: %w", TableOf(def), err)
		}
	}
	return nil
}

// DropTable drops table if it exists.
func DropTable(ctx context.Context, db *database.Database, table string) error {
	_, err := query.New(db).Drop(table).Execute(ctx)
	return err
}

// TableExists reports whether table can be read.
func TableExists(ctx context.Context, db *database.Database, table string) (bool, error) {
	res, err := query.New(db).Exists(table).Execute(ctx)
	if err != nil {
		return false, err
	}
	return res.OK, nil
}

// ClearTable deletes every row of table and returns how many were removed.
func ClearTable(ctx context.Context, db *database.Database, table string) (int64, error) {
	res, err := query.New(db).DeleteAll(table).Execute(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// CountTable returns the number of rows of table matching cond.
func CountTable(ctx context.Context, db *database.Database, table string, cond query.Condition) (int64, error) {
	res, err := query.New(db).Count(table).Where(cond).Execute(ctx)
	if err != nil {
		return 0, err
	}
	return res.Count, nil
}
