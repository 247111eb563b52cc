package parse

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// PredicateLexer defines the token types of WHERE predicates.
var PredicateLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Keywords (matched case-insensitively by the parser)
	{Name: "Keyword", Pattern: `(?i)\b(AND|OR|NOT|IS|NULL|IN|LIKE|TRUE|FALSE)\b`},

	// Column names, optionally qualified by a table
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z_][a-zA-Z0-9_]*)?`},

	// Literals
	{Name: "String", Pattern: `'(?:''|[^'])*'|"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},

	// Comparison operators (longest first)
	{Name: "Operator", Pattern: `<>|!=|<=|>=|=|<|>`},

	// Punctuation
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},

	{Name: "Whitespace", Pattern: `\s+`},
})
