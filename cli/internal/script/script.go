// Package script splits SQL scripts into statements.
package script

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer separates quoted text and comments from the rest of a script so
// that semicolons inside them do not end a statement.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*|#[^\n]*|/\*(?s:.*?)\*/`},
	{Name: "String", Pattern: `'(?:[^']|'')*'|"(?:[^"\\]|\\.)*"|` + "`[^`]*`"},
	{Name: "Semicolon", Pattern: `;`},
	{Name: "Text", Pattern: `[^;'"` + "`" + `#\-/]+|[-/]`},
})

// Split returns the statements of src without their terminating
// semicolons. Statements holding nothing but comments are skipped.
func Split(src string) ([]string, error) {
	lex, err := Lexer.LexString("", src)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, fmt.Errorf("failed to split script: %w", err)
	}

	symbols := Lexer.Symbols()
	comment, semicolon := symbols["Comment"], symbols["Semicolon"]

	var (
		stmts   []string
		buf     strings.Builder
		hasCode bool
	)
	flush := func() {
		if hasCode {
			stmts = append(stmts, strings.TrimSpace(buf.String()))
		}
		buf.Reset()
		hasCode = false
	}

	for _, tok := range tokens {
		if tok.Type == semicolon {
			flush()
			continue
		}
		buf.WriteString(tok.Value)
		if tok.Type != comment && strings.TrimSpace(tok.Value) != "" {
			hasCode = true
		}
	}
	flush()
	return stmts, nil
}
