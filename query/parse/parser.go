// Package parse turns textual WHERE predicates such as
//
//	age >= 18 AND (role = 'admin' OR role IN ('owner', 'staff'))
//
// into parameterized query conditions. Literal values become bound
// arguments; only column names are rendered into the SQL text.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/satishbabariya/pure-orm/query"
)

// Expr is a disjunction of conjunctions.
type Expr struct {
	Pos lexer.Position
	Or  []*AndExpr `@@ ( "OR" @@ )*`
}

// AndExpr is a conjunction of terms.
type AndExpr struct {
	And []*Term `@@ ( "AND" @@ )*`
}

// Term is a parenthesized expression or a single predicate.
type Term struct {
	Group     *Expr      `  "(" @@ ")"`
	Predicate *Predicate `| @@`
}

// Predicate tests one column.
type Predicate struct {
	Column  string    `@Ident`
	Null    *NullTest `( @@`
	In      *InList   `| @@`
	Like    *LikeTest `| @@`
	Compare *Compare  `| @@ )`
}

// NullTest is IS [NOT] NULL.
type NullTest struct {
	Not bool `"IS" @"NOT"? "NULL"`
}

// InList is [NOT] IN (v, ...).
type InList struct {
	Not    bool     `@"NOT"? "IN"`
	Values []*Value `"(" @@ ( "," @@ )* ")"`
}

// LikeTest is [NOT] LIKE pattern.
type LikeTest struct {
	Not     bool   `@"NOT"? "LIKE"`
	Pattern *Value `@@`
}

// Compare is op value.
type Compare struct {
	Op    string `@Operator`
	Value *Value `@@`
}

// Value is a literal.
type Value struct {
	String *string `  @String`
	Number *string `| @Number`
	Bool   *string `| @("TRUE" | "FALSE")`
	Null   bool    `| @"NULL"`
}

// parser is the Participle parser instance.
var parser = participle.MustBuild[Expr](
	participle.Lexer(PredicateLexer),
	participle.Elide("Whitespace"),
	participle.CaseInsensitive("Keyword"),
	participle.UseLookahead(2),
)

// Condition parses input into a parameterized condition. Blank input yields
// the empty condition.
func Condition(input string) (query.Condition, error) {
	if strings.TrimSpace(input) == "" {
		return query.Condition{}, nil
	}

	expr, err := parser.ParseString("where", input)
	if err != nil {
		return query.Condition{}, fmt.Errorf("failed to parse condition %q: %w", input, err)
	}
	return expr.condition()
}

// MustCondition is like Condition but panics on error.
func MustCondition(input string) query.Condition {
	c, err := Condition(input)
	if err != nil {
		panic(err)
	}
	return c
}

func (e *Expr) condition() (query.Condition, error) {
	conds := make([]query.Condition, 0, len(e.Or))
	for _, and := range e.Or {
		c, err := and.condition()
		if err != nil {
			return query.Condition{}, err
		}
		conds = append(conds, c)
	}
	return query.Or(conds...), nil
}

func (a *AndExpr) condition() (query.Condition, error) {
	conds := make([]query.Condition, 0, len(a.And))
	for _, term := range a.And {
		var (
			c   query.Condition
			err error
		)
		if term.Group != nil {
			c, err = term.Group.condition()
		} else {
			c, err = term.Predicate.condition()
		}
		if err != nil {
			return query.Condition{}, err
		}
		conds = append(conds, c)
	}
	return query.And(conds...), nil
}

func (p *Predicate) condition() (query.Condition, error) {
	switch {
	case p.Null != nil:
		if p.Null.Not {
			return query.NotNull(p.Column), nil
		}
		return query.IsNull(p.Column), nil

	case p.In != nil:
		values := make([]any, len(p.In.Values))
		for i, v := range p.In.Values {
			val, err := v.value()
			if err != nil {
				return query.Condition{}, err
			}
			values[i] = val
		}
		if p.In.Not {
			return query.NotIn(p.Column, values...), nil
		}
		return query.In(p.Column, values...), nil

	case p.Like != nil:
		pattern, err := p.Like.Pattern.value()
		if err != nil {
			return query.Condition{}, err
		}
		if pattern == nil {
			return query.Condition{}, fmt.Errorf("operator LIKE cannot match %s against NULL", p.Column)
		}
		if p.Like.Not {
			return query.Raw(p.Column+" NOT LIKE ?", pattern), nil
		}
		return query.Like(p.Column, fmt.Sprint(pattern)), nil

	case p.Compare != nil:
		val, err := p.Compare.Value.value()
		if err != nil {
			return query.Condition{}, err
		}
		return compare(p.Column, p.Compare.Op, val)
	}
	return query.Condition{}, fmt.Errorf("empty predicate on column %s", p.Column)
}

func compare(column, op string, val any) (query.Condition, error) {
	if val == nil {
		switch op {
		case "=":
			return query.IsNull(column), nil
		case "<>", "!=":
			return query.NotNull(column), nil
		}
		return query.Condition{}, fmt.Errorf("operator %s cannot compare %s with NULL", op, column)
	}

	switch op {
	case "=":
		return query.Eq(column, val), nil
	case "<>", "!=":
		return query.Ne(column, val), nil
	case ">":
		return query.Gt(column, val), nil
	case ">=":
		return query.Ge(column, val), nil
	case "<":
		return query.Lt(column, val), nil
	case "<=":
		return query.Le(column, val), nil
	}
	return query.Condition{}, fmt.Errorf("unknown operator %q", op)
}

func (v *Value) value() (any, error) {
	switch {
	case v.String != nil:
		return unquote(*v.String)
	case v.Number != nil:
		if i, err := strconv.ParseInt(*v.Number, 10, 64); err == nil {
			return i, nil
		}
		return strconv.ParseFloat(*v.Number, 64)
	case v.Bool != nil:
		return strings.EqualFold(*v.Bool, "true"), nil
	default:
		return nil, nil
	}
}

// unquote strips SQL single quotes (with '' escapes) or Go double quotes.
func unquote(s string) (string, error) {
	if strings.HasPrefix(s, "'") {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'"), nil
	}
	return strconv.Unquote(s)
}
