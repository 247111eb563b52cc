package query

import "github.com/satishbabariya/pure-orm/runtime/types"

// Result is the outcome of a successful Execute. Which fields are set
// depends on the intent:
//
//	Select  Row (first row) or Rows (All), plus Model/Models with a hydrator
//	Count   Count
//	Exists  OK reports whether the table could be read
//	Raw     Rows for statements returning rows, otherwise as Insert
//	others  OK, RowsAffected, LastInsertID
type Result struct {
	Intent       Intent
	OK           bool
	Row          types.Record
	Rows         []types.Record
	Model        any
	Models       []any
	Count        int64
	RowsAffected int64
	LastInsertID int64
}

// Len returns the number of fetched rows.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	if r.Rows != nil {
		return len(r.Rows)
	}
	if r.Row != nil {
		return 1
	}
	return 0
}
