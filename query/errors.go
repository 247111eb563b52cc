package query

import "errors"

var (
	// ErrNoIntent is returned when Execute is called before any verb.
	ErrNoIntent = errors.New("query: no statement configured")
	// ErrUnconditionalDelete is returned by a Delete without a condition.
	// Use DeleteAll to remove every row.
	ErrUnconditionalDelete = errors.New("query: delete requires a condition, use DeleteAll to remove every row")
)

// ExecError is the failure captured by Execute: the rendered statement and
// the engine (or rendering) error.
type ExecError struct {
	SQL string
	Err error
}

// Error returns the statement and the engine message on separate lines.
func (e *ExecError) Error() string {
	if e.SQL == "" {
		return e.Err.Error()
	}
	return e.SQL + "\n" + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExecError) Unwrap() error {
	return e.Err
}
