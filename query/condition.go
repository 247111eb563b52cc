package query

import (
	"strings"

	"github.com/satishbabariya/pure-orm/runtime/types"
)

// Condition is a WHERE clause fragment with its bound arguments.
//
// Predicates built with Eq, Gt, In and friends bind their values as ?
// placeholders. Raw embeds caller text verbatim: it must never contain
// unescaped user input.
type Condition struct {
	sql      string
	args     []any
	compound bool
}

// Raw wraps a trusted SQL fragment. Placeholders in sql are bound to args.
func Raw(sql string, args ...any) Condition {
	sql = strings.TrimSpace(sql)
	return Condition{
		sql:      sql,
		args:     bindArgs(args),
		compound: strings.Contains(strings.ToUpper(sql), " OR "),
	}
}

// Eq renders column = ?.
func Eq(column string, value any) Condition { return compare(column, "=", value) }

// Ne renders column <> ?.
func Ne(column string, value any) Condition { return compare(column, "<>", value) }

// Gt renders column > ?.
func Gt(column string, value any) Condition { return compare(column, ">", value) }

// Ge renders column >= ?.
func Ge(column string, value any) Condition { return compare(column, ">=", value) }

// Lt renders column < ?.
func Lt(column string, value any) Condition { return compare(column, "<", value) }

// Le renders column <= ?.
func Le(column string, value any) Condition { return compare(column, "<=", value) }

// Like renders column LIKE ?.
func Like(column string, pattern string) Condition { return compare(column, "LIKE", pattern) }

// IsNull renders column IS NULL.
func IsNull(column string) Condition { return Condition{sql: column + " IS NULL"} }

// NotNull renders column IS NOT NULL.
func NotNull(column string) Condition { return Condition{sql: column + " IS NOT NULL"} }

// In renders column IN (?, ...). An empty list matches nothing.
func In(column string, values ...any) Condition {
	if len(values) == 0 {
		return Condition{sql: "1 = 0"}
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	return Condition{sql: column + " IN (" + marks + ")", args: bindArgs(values)}
}

// NotIn renders column NOT IN (?, ...). An empty list matches everything.
func NotIn(column string, values ...any) Condition {
	if len(values) == 0 {
		return Condition{sql: "1 = 1"}
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	return Condition{sql: column + " NOT IN (" + marks + ")", args: bindArgs(values)}
}

// And joins conditions with AND. Empty conditions are skipped and
// conditions containing a top-level OR are parenthesized.
func And(conds ...Condition) Condition {
	return join("AND", conds)
}

// Or joins conditions with OR. Empty conditions are skipped.
func Or(conds ...Condition) Condition {
	return join("OR", conds)
}

// SQL returns the rendered fragment.
func (c Condition) SQL() string { return c.sql }

// Args returns the bound arguments in placeholder order.
func (c Condition) Args() []any { return c.args }

// IsEmpty reports whether c renders nothing.
func (c Condition) IsEmpty() bool { return c.sql == "" }

func (c Condition) String() string { return c.sql }

// and appends other with AND. A side containing a top-level OR is
// parenthesized so it cannot escape the other side.
func (c Condition) and(other Condition) Condition {
	return c.concat("AND", other)
}

// or appends other with OR. A compound other is parenthesized.
func (c Condition) or(other Condition) Condition {
	return c.concat("OR", other)
}

func (c Condition) concat(op string, other Condition) Condition {
	if other.IsEmpty() {
		return c
	}
	if c.IsEmpty() {
		return other
	}

	left, right := c.sql, other.sql
	if c.compound && op == "AND" {
		left = "(" + left + ")"
	}
	if other.compound {
		right = "(" + right + ")"
	}

	args := make([]any, 0, len(c.args)+len(other.args))
	args = append(args, c.args...)
	args = append(args, other.args...)
	return Condition{
		sql:      left + " " + op + " " + right,
		args:     args,
		compound: op == "OR",
	}
}

func join(op string, conds []Condition) Condition {
	var kept []Condition
	for _, c := range conds {
		if !c.IsEmpty() {
			kept = append(kept, c)
		}
	}

	switch len(kept) {
	case 0:
		return Condition{}
	case 1:
		return kept[0]
	}

	parts := make([]string, len(kept))
	var args []any
	for i, c := range kept {
		parts[i] = c.sql
		if c.compound && op == "AND" {
			parts[i] = "(" + c.sql + ")"
		}
		args = append(args, c.args...)
	}
	return Condition{sql: strings.Join(parts, " "+op+" "), args: args, compound: op == "OR"}
}

func compare(column, op string, value any) Condition {
	return Condition{sql: column + " " + op + " ?", args: bindArgs([]any{value})}
}

// bindArgs normalizes values the way record values are bound: booleans
// as 1/0 and types.Value as its driver argument.
func bindArgs(values []any) []any {
	if len(values) == 0 {
		return nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = types.ValueOf(v).Arg()
	}
	return out
}
