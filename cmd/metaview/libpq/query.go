package libpq

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/metaview-project/metaview/cmd/metaview/dberr"
	"github.com/metaview-project/metaview/cmd/metaview/etype"
	"github.com/metaview-project/metaview/cmd/metaview/jdbc"
	"github.com/metaview-project/metaview/cmd/metaview/recordset"
)

// The query surface is deliberately small: SELECT * over one virtual table
// with ANDed equality predicates and an optional LIMIT, plus LIST TABLES.
// Equality predicates on the leading name columns are pushed down to the
// metadata enumerator; the rest are applied to the materialized rows.

type selectStmt struct {
	schema string
	table  string
	where  []predicate
	limit  *int64
}

type predicate struct {
	column string
	value  string
}

type listStmt struct{}

// constraint converts the WHERE predicates to positional equality domains
// against the table's output schema.
func (s *selectStmt) constraint(tm *recordset.TableMetadata) (jdbc.Constraint, error) {
	c := jdbc.Constraint{}
	for _, p := range s.where {
		index := -1
		for i, col := range tm.Columns {
			if col.Name == p.column {
				index = i
				break
			}
		}
		if index < 0 {
			return nil, &dberr.Error{
				Err:  fmt.Errorf("column %q does not exist in %s", p.column, tm.Name()),
				Hint: "Column names are lower case, for example table_cat.",
			}
		}
		c.With(index, p.value)
	}
	return c, nil
}

// matches re-applies every equality predicate to a materialized row. The
// pushed-down predicates always hold; re-checking them is harmless and
// covers predicates on columns the tables do not push down.
func (s *selectStmt) matches(cursor *recordset.Cursor, tm *recordset.TableMetadata) bool {
	for _, p := range s.where {
		for i, col := range tm.Columns {
			if col.Name != p.column {
				continue
			}
			if cursor.IsNull(i) {
				return false
			}
			var v string
			if col.Type.Family() == etype.Bigint {
				v = strconv.FormatInt(cursor.Int64(i), 10)
			} else {
				v = cursor.String(i)
			}
			if v != p.value {
				return false
			}
		}
	}
	return true
}

func parseQuery(query string) (any, error) {
	tokens, err := tokenize(query)
	if err != nil {
		return nil, err
	}
	p := &queryParser{tokens: tokens}
	if p.acceptKeyword("list") {
		if !p.acceptKeyword("tables") {
			return nil, p.syntaxError("expected TABLES after LIST")
		}
		p.acceptSymbol(";")
		if !p.done() {
			return nil, p.syntaxError("unexpected input after LIST TABLES")
		}
		return &listStmt{}, nil
	}
	if !p.acceptKeyword("select") {
		return nil, p.syntaxError("expected SELECT or LIST")
	}
	if !p.acceptSymbol("*") {
		return nil, &dberr.Error{
			Err:  fmt.Errorf("syntax error: only SELECT * is supported"),
			Hint: "Select all columns with SELECT * FROM jdbc.columns.",
		}
	}
	if !p.acceptKeyword("from") {
		return nil, p.syntaxError("expected FROM")
	}
	schema, ok := p.acceptIdent()
	if !ok {
		return nil, p.syntaxError("expected table name")
	}
	stmt := &selectStmt{schema: schema}
	if p.acceptSymbol(".") {
		if stmt.table, ok = p.acceptIdent(); !ok {
			return nil, p.syntaxError("expected table name after schema")
		}
	} else {
		// Unqualified names default to the jdbc schema.
		stmt.schema, stmt.table = "jdbc", schema
	}
	if p.acceptKeyword("where") {
		for {
			pred, err := p.parsePredicate()
			if err != nil {
				return nil, err
			}
			stmt.where = append(stmt.where, pred)
			if !p.acceptKeyword("and") {
				break
			}
		}
	}
	if p.acceptKeyword("limit") {
		text, ok := p.acceptNumber()
		if !ok {
			return nil, p.syntaxError("expected row count after LIMIT")
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, p.syntaxError("invalid LIMIT value")
		}
		stmt.limit = &n
	}
	p.acceptSymbol(";")
	if !p.done() {
		return nil, p.syntaxError("unexpected input after statement")
	}
	return stmt, nil
}

type queryParser struct {
	tokens []token
	pos    int
}

func (p *queryParser) parsePredicate() (predicate, error) {
	column, ok := p.acceptIdent()
	if !ok {
		return predicate{}, p.syntaxError("expected column name in WHERE")
	}
	if !p.acceptSymbol("=") {
		return predicate{}, &dberr.Error{
			Err:  fmt.Errorf("unsupported predicate on column %q", column),
			Hint: "Only equality predicates (column = 'value') are supported.",
		}
	}
	if value, ok := p.acceptString(); ok {
		return predicate{column: column, value: value}, nil
	}
	if value, ok := p.acceptNumber(); ok {
		return predicate{column: column, value: value}, nil
	}
	return predicate{}, p.syntaxError("expected literal value in WHERE")
}

func (p *queryParser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *queryParser) peek() (token, bool) {
	if p.done() {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *queryParser) acceptKeyword(kw string) bool {
	t, ok := p.peek()
	if ok && t.kind == tokenIdent && strings.EqualFold(t.text, kw) {
		p.pos++
		return true
	}
	return false
}

func (p *queryParser) acceptIdent() (string, bool) {
	t, ok := p.peek()
	if ok && t.kind == tokenIdent {
		p.pos++
		return strings.ToLower(t.text), true
	}
	return "", false
}

func (p *queryParser) acceptSymbol(sym string) bool {
	t, ok := p.peek()
	if ok && t.kind == tokenSymbol && t.text == sym {
		p.pos++
		return true
	}
	return false
}

func (p *queryParser) acceptString() (string, bool) {
	t, ok := p.peek()
	if ok && t.kind == tokenString {
		p.pos++
		return t.text, true
	}
	return "", false
}

func (p *queryParser) acceptNumber() (string, bool) {
	t, ok := p.peek()
	if ok && t.kind == tokenNumber {
		p.pos++
		return t.text, true
	}
	return "", false
}

func (p *queryParser) syntaxError(msg string) error {
	if t, ok := p.peek(); ok {
		return fmt.Errorf("syntax error at or near %q: %s", t.text, msg)
	}
	return fmt.Errorf("syntax error at end of statement: %s", msg)
}

const (
	tokenIdent = iota
	tokenString
	tokenNumber
	tokenSymbol
)

type token struct {
	kind int
	text string
}

func tokenize(query string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(query) {
		c := query[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isIdentStart(c):
			start := i
			for i < len(query) && isIdentPart(query[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: query[start:i]})
		case c >= '0' && c <= '9':
			start := i
			for i < len(query) && query[i] >= '0' && query[i] <= '9' {
				i++
			}
			tokens = append(tokens, token{kind: tokenNumber, text: query[start:i]})
		case c == '\'':
			text, next, err := scanString(query, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, text: text})
			i = next
		case c == '*' || c == '.' || c == '=' || c == ';' || c == '(' || c == ')' || c == ',':
			tokens = append(tokens, token{kind: tokenSymbol, text: string(c)})
			i++
		case c == '<' || c == '>' || c == '!':
			return nil, &dberr.Error{
				Err:  fmt.Errorf("unsupported operator %q", string(c)),
				Hint: "Only equality predicates (column = 'value') are supported.",
			}
		default:
			return nil, fmt.Errorf("unexpected character %q in statement", string(c))
		}
	}
	return tokens, nil
}

// scanString reads a single-quoted literal starting at start, handling the
// doubled-quote escape. It returns the unescaped text and the next offset.
func scanString(query string, start int) (string, int, error) {
	var b strings.Builder
	i := start + 1
	for i < len(query) {
		if query[i] == '\'' {
			if i+1 < len(query) && query[i+1] == '\'' {
				b.WriteByte('\'')
				i += 2
				continue
			}
			return b.String(), i + 1, nil
		}
		b.WriteByte(query[i])
		i++
	}
	return "", 0, fmt.Errorf("unterminated string literal")
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
