// Package builder renders SQL statements from a table name, column values,
// a condition and a statement suffix. It never executes anything and never
// interpolates values: every value is a ? placeholder in column order.
//
// Table names, column names, conditions and suffixes are inserted as-is and
// must come from trusted code.
package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/satishbabariya/pure-orm/runtime/types"
)

var (
	// ErrEmptyTable is returned when no table name was given.
	ErrEmptyTable = errors.New("builder: empty table name")
	// ErrEmptyRecord is returned when an insert or update has no columns.
	ErrEmptyRecord = errors.New("builder: record has no columns")
	// ErrEmptyBatch is returned when a batch insert has no records.
	ErrEmptyBatch = errors.New("builder: batch has no records")
	// ErrNonUniformBatch is returned when batch records differ in columns.
	ErrNonUniformBatch = errors.New("builder: batch records have different columns")
	// ErrMissingCondition is returned for an update without a condition.
	ErrMissingCondition = errors.New("builder: update requires a condition")
)

// Insert renders INSERT INTO table (c1, c2) VALUES (?, ?).
func Insert(table string, record types.Record) (string, error) {
	if table == "" {
		return "", ErrEmptyTable
	}
	if record.Len() == 0 {
		return "", ErrEmptyRecord
	}

	parts := []string{
		"INSERT INTO " + table,
		"(" + strings.Join(record.Names(), ", ") + ")",
		"VALUES " + placeholders(record.Len()),
	}
	return strings.Join(parts, " "), nil
}

// InsertMany renders one INSERT with a placeholder group per record. The
// column list is taken from the first record.
func InsertMany(table string, records []types.Record) (string, error) {
	if table == "" {
		return "", ErrEmptyTable
	}
	if len(records) == 0 {
		return "", ErrEmptyBatch
	}

	first := records[0]
	if first.Len() == 0 {
		return "", ErrEmptyRecord
	}

	groups := make([]string, len(records))
	for i, rec := range records {
		if !first.SameColumns(rec) {
			return "", fmt.Errorf("%w: record %d", ErrNonUniformBatch, i)
		}
		groups[i] = placeholders(first.Len())
	}

	parts := []string{
		"INSERT INTO " + table,
		"(" + strings.Join(first.Names(), ", ") + ")",
		"VALUES " + strings.Join(groups, ", "),
	}
	return strings.Join(parts, " "), nil
}

// Update renders UPDATE table SET c1=?, c2=? WHERE condition. An update
// without a condition is refused.
func Update(table string, record types.Record, condition string) (string, error) {
	if table == "" {
		return "", ErrEmptyTable
	}
	if record.Len() == 0 {
		return "", ErrEmptyRecord
	}
	if strings.TrimSpace(condition) == "" {
		return "", ErrMissingCondition
	}

	sets := make([]string, record.Len())
	for i, name := range record.Names() {
		sets[i] = name + "=?"
	}

	parts := []string{
		"UPDATE " + table,
		"SET " + strings.Join(sets, ", "),
		"WHERE " + condition,
	}
	return strings.Join(parts, " "), nil
}

// Select renders SELECT fields FROM table [WHERE condition] [statement].
// No fields selects every column.
func Select(table string, fields []string, condition, statement string) (string, error) {
	if table == "" {
		return "", ErrEmptyTable
	}

	columns := "*"
	if len(fields) > 0 {
		columns = strings.Join(fields, ", ")
	}

	parts := []string{"SELECT " + columns, "FROM " + table}
	parts = appendWhere(parts, condition)
	if s := strings.TrimSpace(statement); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " "), nil
}

// Delete renders DELETE FROM table [WHERE condition]. Without a condition
// every row is deleted.
func Delete(table, condition string) (string, error) {
	if table == "" {
		return "", ErrEmptyTable
	}
	return strings.Join(appendWhere([]string{"DELETE FROM " + table}, condition), " "), nil
}

// Count renders SELECT COUNT(*) FROM table [WHERE condition].
func Count(table, condition string) (string, error) {
	if table == "" {
		return "", ErrEmptyTable
	}
	return strings.Join(appendWhere([]string{"SELECT COUNT(*) FROM " + table}, condition), " "), nil
}

// Drop renders DROP TABLE IF EXISTS table.
func Drop(table string) (string, error) {
	if table == "" {
		return "", ErrEmptyTable
	}
	return "DROP TABLE IF EXISTS " + table, nil
}

// Exists renders a cheap read used to probe whether table exists.
func Exists(table string) (string, error) {
	if table == "" {
		return "", ErrEmptyTable
	}
	return "SELECT 1 FROM " + table + " LIMIT 1", nil
}

func appendWhere(parts []string, condition string) []string {
	if c := strings.TrimSpace(condition); c != "" {
		parts = append(parts, "WHERE "+c)
	}
	return parts
}

func placeholders(n int) string {
	return "(" + strings.TrimSuffix(strings.Repeat("?, ", n), ", ") + ")"
}
