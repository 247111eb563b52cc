// Package query accumulates builder calls into a single parameterized
// statement, executes it once against a Database and shapes the result as
// raw records or hydrated models.
package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/satishbabariya/pure-orm/database"
	"github.com/satishbabariya/pure-orm/driver"
	"github.com/satishbabariya/pure-orm/query/builder"
	"github.com/satishbabariya/pure-orm/runtime/types"
)

// Intent is the kind of statement a Query represents.
type Intent int

const (
	IntentNone Intent = iota
	IntentCount
	IntentDelete
	IntentDrop
	IntentExists
	IntentInsert
	IntentRaw
	IntentSelect
	IntentUpdate
)

func (i Intent) String() string {
	switch i {
	case IntentCount:
		return "COUNT"
	case IntentDelete:
		return "DELETE"
	case IntentDrop:
		return "DROP"
	case IntentExists:
		return "EXISTS"
	case IntentInsert:
		return "INSERT"
	case IntentRaw:
		return "RAW"
	case IntentSelect:
		return "SELECT"
	case IntentUpdate:
		return "UPDATE"
	default:
		return "NULL"
	}
}

// Hydrator turns a fetched row into a model instance.
type Hydrator func(row types.Record) any

// Query is a single-statement state machine. Verbs (Select, Insert,
// Update, Delete, DeleteAll, Drop, Exists, Count, RawSQL) discard the
// previous verb's table and data; modifiers (Where, And, Or, Order, Limit,
// Statement, Model) are kept across verbs.
//
// A Query is not safe for concurrent use.
type Query struct {
	db *database.Database

	// intent-specific state
	intent    Intent
	table     string
	fields    []string
	record    types.Record
	records   []types.Record
	batch     bool
	selectAll bool
	deleteAll bool
	rawSQL    string
	rawArgs   []any

	// modifiers
	condition Condition
	order     string
	orderAsc  bool
	hasLimit  bool
	limit     int
	offset    int
	statement string
	hydrator  Hydrator

	success bool
	err     error
}

// New creates an empty Query executing against db.
func New(db *database.Database) *Query {
	return &Query{db: db}
}

// NewRaw creates a Query for a literal statement.
func NewRaw(db *database.Database, sql string, args ...any) *Query {
	return New(db).RawSQL(sql, args...)
}

func (q *Query) reset(intent Intent, table string) *Query {
	q.intent = intent
	q.table = table
	q.fields = nil
	q.record = nil
	q.records = nil
	q.batch = false
	q.selectAll = false
	q.deleteAll = false
	q.rawSQL = ""
	q.rawArgs = nil
	return q
}

// Select reads fields (every column when none are given) from table.
// Without All only the first matching row is fetched.
func (q *Query) Select(table string, fields ...string) *Query {
	q.reset(IntentSelect, table)
	q.fields = fields
	return q
}

// Insert writes one record into table.
func (q *Query) Insert(table string, record types.Record) *Query {
	q.reset(IntentInsert, table)
	q.record = record
	return q
}

// InsertMany writes records into table with a single statement.
func (q *Query) InsertMany(table string, records []types.Record) *Query {
	q.reset(IntentInsert, table)
	q.records = records
	q.batch = true
	return q
}

// Update writes record into the rows of table matching the condition.
// Execute refuses an Update without a condition.
func (q *Query) Update(table string, record types.Record) *Query {
	q.reset(IntentUpdate, table)
	q.record = record
	return q
}

// Delete removes the rows of table matching the condition. Execute refuses
// a Delete without a condition.
func (q *Query) Delete(table string) *Query {
	return q.reset(IntentDelete, table)
}

// DeleteAll removes the rows of table matching the condition, or every row
// when there is none.
func (q *Query) DeleteAll(table string) *Query {
	q.reset(IntentDelete, table)
	q.deleteAll = true
	return q
}

// Drop drops table if it exists.
func (q *Query) Drop(table string) *Query {
	return q.reset(IntentDrop, table)
}

// Exists probes whether table can be read.
func (q *Query) Exists(table string) *Query {
	return q.reset(IntentExists, table)
}

// Count counts the rows of table matching the condition.
func (q *Query) Count(table string) *Query {
	return q.reset(IntentCount, table)
}

// RawSQL executes sql as given, binding args to its placeholders.
func (q *Query) RawSQL(sql string, args ...any) *Query {
	q.reset(IntentRaw, "")
	q.rawSQL = strings.TrimSpace(sql)
	q.rawArgs = bindArgs(args)
	if q.rawSQL == "" {
		q.intent = IntentNone
	}
	return q
}

// All fetches every matching row. It has no effect unless the intent is
// Select.
func (q *Query) All() *Query {
	if q.intent == IntentSelect {
		q.selectAll = true
	}
	return q
}

// Where replaces the condition.
func (q *Query) Where(cond Condition) *Query {
	q.condition = cond
	return q
}

// And appends cond to the condition with AND.
func (q *Query) And(cond Condition) *Query {
	q.condition = q.condition.and(cond)
	return q
}

// Or appends cond to the condition with OR.
func (q *Query) Or(cond Condition) *Query {
	q.condition = q.condition.or(cond)
	return q
}

// Order sorts a Select by column.
func (q *Query) Order(column string, asc bool) *Query {
	q.order = column
	q.orderAsc = asc
	return q
}

// Limit restricts a Select to max rows starting at offset.
func (q *Query) Limit(max, offset int) *Query {
	q.hasLimit = true
	q.limit = max
	q.offset = offset
	return q
}

// Statement sets a free-form suffix rendered after the WHERE clause of a
// Select, before ORDER BY and LIMIT.
func (q *Query) Statement(statement string) *Query {
	q.statement = strings.TrimSpace(statement)
	return q
}

// Model hydrates every fetched row with h. It panics when h is nil.
func (q *Query) Model(h Hydrator) *Query {
	if h == nil {
		panic("query: Model requires a non-nil hydrator")
	}
	q.hydrator = h
	return q
}

// Intent returns the current intent.
func (q *Query) Intent() Intent { return q.intent }

// Table returns the current table.
func (q *Query) Table() string { return q.table }

// Condition returns the accumulated condition.
func (q *Query) Condition() Condition { return q.condition }

// IsValid reports whether a verb was configured.
func (q *Query) IsValid() bool { return q.intent != IntentNone }

// Success reports whether the last Execute succeeded.
func (q *Query) Success() bool { return q.success }

// Err returns the failure of the last Execute, if any.
func (q *Query) Err() error { return q.err }

// ErrorMessage returns the text of the last failure, or "".
func (q *Query) ErrorMessage() string {
	if q.err == nil {
		return ""
	}
	return q.err.Error()
}

// SQL renders the statement and its bound arguments without executing.
func (q *Query) SQL() (string, []any, error) {
	cond := q.condition.SQL()

	switch q.intent {
	case IntentSelect:
		s, err := builder.Select(q.table, q.fields, cond, q.suffix())
		return s, q.condition.Args(), err
	case IntentInsert:
		if q.batch {
			s, err := builder.InsertMany(q.table, q.records)
			return s, batchArgs(q.records), err
		}
		s, err := builder.Insert(q.table, q.record)
		return s, q.record.Args(), err
	case IntentUpdate:
		s, err := builder.Update(q.table, q.record, cond)
		args := append(q.record.Args(), q.condition.Args()...)
		return s, args, err
	case IntentDelete:
		if q.condition.IsEmpty() && !q.deleteAll {
			return "", nil, ErrUnconditionalDelete
		}
		s, err := builder.Delete(q.table, cond)
		return s, q.condition.Args(), err
	case IntentCount:
		s, err := builder.Count(q.table, cond)
		return s, q.condition.Args(), err
	case IntentDrop:
		s, err := builder.Drop(q.table)
		return s, nil, err
	case IntentExists:
		s, err := builder.Exists(q.table)
		return s, nil, err
	case IntentRaw:
		return q.rawSQL, q.rawArgs, nil
	default:
		return "", nil, ErrNoIntent
	}
}

// suffix renders the statement, ORDER BY and LIMIT in that order.
func (q *Query) suffix() string {
	var parts []string
	if q.statement != "" {
		parts = append(parts, q.statement)
	}
	if q.order != "" {
		mode := "DESC"
		if q.orderAsc {
			mode = "ASC"
		}
		parts = append(parts, fmt.Sprintf("ORDER BY %s %s", q.order, mode))
	}
	if q.hasLimit {
		parts = append(parts, fmt.Sprintf("LIMIT %d OFFSET %d", q.limit, q.offset))
	}
	return strings.Join(parts, " ")
}

func batchArgs(records []types.Record) []any {
	var args []any
	for _, r := range records {
		args = append(args, r.Args()...)
	}
	return args
}

// Execute renders and runs the statement once. Rendering and engine
// failures are returned as *ExecError and recorded for Success, Err and
// ErrorMessage.
//
// Execute panics when the Query has no connected Database.
func (q *Query) Execute(ctx context.Context) (*Result, error) {
	if !q.db.IsConnected() {
		panic("query: cannot execute without a connected database")
	}

	q.success = false
	q.err = nil

	text, args, err := q.SQL()
	if err != nil {
		return nil, q.fail(text, err)
	}

	res := &Result{Intent: q.intent}
	switch q.intent {
	case IntentSelect:
		err = q.fetch(ctx, res, text, args)
	case IntentCount:
		var row types.Record
		row, err = q.db.FetchOne(ctx, text, args...)
		res.Count = countOf(row)
		res.OK = err == nil
	case IntentExists:
		_, err = q.db.FetchOne(ctx, text, args...)
		switch {
		case err == nil:
			res.OK = true
		case errors.Is(err, driver.ErrNoSuchTable):
			err = nil
		}
	case IntentRaw:
		if returnsRows(text) {
			res.Rows, err = q.db.Fetch(ctx, text, args...)
			if err == nil && res.Rows == nil {
				res.Rows = []types.Record{}
			}
			res.OK = err == nil
		} else {
			err = q.exec(ctx, res, text, args)
		}
	default:
		err = q.exec(ctx, res, text, args)
	}

	if err != nil {
		return nil, q.fail(text, err)
	}
	q.success = true
	return res, nil
}

func (q *Query) fail(text string, err error) error {
	q.err = &ExecError{SQL: text, Err: err}
	return q.err
}

func (q *Query) fetch(ctx context.Context, res *Result, text string, args []any) error {
	if q.selectAll {
		rows, err := q.db.Fetch(ctx, text, args...)
		if err != nil {
			return err
		}
		res.Rows = rows
		if rows == nil {
			res.Rows = []types.Record{}
		}
		if q.hydrator != nil {
			res.Models = make([]any, 0, len(rows))
			for _, row := range rows {
				res.Models = append(res.Models, q.hydrator(row))
			}
		}
	} else {
		row, err := q.db.FetchOne(ctx, text, args...)
		if err != nil {
			return err
		}
		res.Row = row
		if q.hydrator != nil && row != nil {
			res.Model = q.hydrator(row)
		}
	}
	res.OK = true
	return nil
}

func (q *Query) exec(ctx context.Context, res *Result, text string, args []any) error {
	r, err := q.db.Exec(ctx, text, args...)
	if err != nil {
		return err
	}
	res.OK = true
	res.RowsAffected, res.LastInsertID = resultCounts(r)
	return nil
}

func resultCounts(r sql.Result) (affected, lastID int64) {
	if r == nil {
		return 0, 0
	}
	if n, err := r.RowsAffected(); err == nil {
		affected = n
	}
	if id, err := r.LastInsertId(); err == nil {
		lastID = id
	}
	return affected, lastID
}

// countOf extracts the aggregate from a COUNT(*) row.
func countOf(row types.Record) int64 {
	if v, ok := row.Get("COUNT(*)"); ok {
		return v.Int()
	}
	if row.Len() > 0 {
		return row[0].Value.Int()
	}
	return 0
}

var rowStatements = []string{"SELECT", "WITH", "PRAGMA", "SHOW", "EXPLAIN", "DESCRIBE", "DESC", "VALUES"}

// returnsRows reports whether a raw statement produces a result set.
func returnsRows(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	first := strings.ToUpper(strings.TrimLeft(fields[0], "("))
	for _, kw := range rowStatements {
		if first == kw {
			return true
		}
	}
	return false
}
