// Package querysql compiles single-table queries to parameterized SQLite SQL.
//
// Every value is bound through a ? placeholder and never interpolated.
// Identifiers (tables and columns) are checked against a conservative
// pattern before they are written into the statement text.
package querysql

import (
	"fmt"
	"strings"
)

// Predicate is a WHERE clause fragment.
type Predicate interface {
	predicate()
}

// Equals matches rows whose Field equals Value.
type Equals struct {
	Field string
	Value any
}

// And is the conjunction of its predicates. An empty And matches every row.
type And struct {
	Predicates []Predicate
}

func (Equals) predicate() {}
func (And) predicate()    {}

// Select describes a SELECT over one table.
type Select struct {
	From    string
	Columns []string
	Filter  Predicate // nil matches every row

	// OrderBy is the column giving result order. Defaults to Columns[0],
	// which callers set to the primary key.
	OrderBy string
}

// Assignment sets Column to Value in an UPDATE.
type Assignment struct {
	Column string
	Value  any
}

// Update describes an UPDATE over one table.
type Update struct {
	Table  string
	Set    []Assignment
	Filter Predicate
}

// SQLCompiler compiles Select and Update values to SQL.
type SQLCompiler struct{}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{}
}

// EqualsNonEmpty returns an And of Equals predicates for every pair whose
// value is a non-empty string. Pairs are given as column, value, column,
// value... and keep their order in the output.
func EqualsNonEmpty(pairs ...string) And {
	var and And
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		and.Predicates = append(and.Predicates, Equals{Field: pairs[i], Value: pairs[i+1]})
	}
	return and
}

// CompileSelect converts a Select to SQL and its parameters.
// Every statement carries an ORDER BY so result order is deterministic.
func (c *SQLCompiler) CompileSelect(q Select) (string, []any, error) {
	if err := checkIdent(q.From); err != nil {
		return "", nil, fmt.Errorf("select from: %w", err)
	}
	if len(q.Columns) == 0 {
		return "", nil, fmt.Errorf("select from %s: no columns", q.From)
	}
	for _, col := range q.Columns {
		if err := checkIdent(col); err != nil {
			return "", nil, fmt.Errorf("select column: %w", err)
		}
	}

	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = q.Columns[0]
	}
	if err := checkIdent(orderBy); err != nil {
		return "", nil, fmt.Errorf("order by: %w", err)
	}

	whereClause, params, err := c.compileWhere(q.Filter)
	if err != nil {
		return "", nil, err
	}

	sql := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s ASC",
		strings.Join(q.Columns, ", "),
		q.From,
		whereClause,
		orderBy)

	return sql, params, nil
}

// CompileUpdate converts an Update to SQL and its parameters.
// SET values come first in the parameter list, then WHERE values.
//
// An Update without assignments or without a filter is rejected: the first
// has nothing to do and the second would rewrite the whole table.
func (c *SQLCompiler) CompileUpdate(u Update) (string, []any, error) {
	if err := checkIdent(u.Table); err != nil {
		return "", nil, fmt.Errorf("update table: %w", err)
	}
	if len(u.Set) == 0 {
		return "", nil, fmt.Errorf("update %s: no columns to set", u.Table)
	}
	if isEmpty(u.Filter) {
		return "", nil, fmt.Errorf("update %s: missing filter", u.Table)
	}

	setParts := make([]string, 0, len(u.Set))
	params := make([]any, 0, len(u.Set)+2)
	for _, a := range u.Set {
		if err := checkIdent(a.Column); err != nil {
			return "", nil, fmt.Errorf("update column: %w", err)
		}
		setParts = append(setParts, a.Column+" = ?")
		params = append(params, a.Value)
	}

	whereClause, whereParams, err := c.compileWhere(u.Filter)
	if err != nil {
		return "", nil, err
	}
	params = append(params, whereParams...)

	sql := fmt.Sprintf("UPDATE %s SET %s%s", u.Table, strings.Join(setParts, ", "), whereClause)
	return sql, params, nil
}

// compileWhere returns " WHERE ..." or "" when the filter matches everything.
func (c *SQLCompiler) compileWhere(p Predicate) (string, []any, error) {
	if isEmpty(p) {
		return "", nil, nil
	}
	sql, params, err := c.compilePredicate(p)
	if err != nil {
		return "", nil, fmt.Errorf("compile filter: %w", err)
	}
	return " WHERE " + sql, params, nil
}

// compilePredicate compiles a Predicate to a WHERE clause fragment.
func (c *SQLCompiler) compilePredicate(p Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case Equals:
		return c.compileEquals(pred)
	case *Equals:
		return c.compileEquals(*pred)
	case And:
		return c.compileAnd(pred)
	case *And:
		return c.compileAnd(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileEquals compiles an Equals predicate to "field = ?".
func (c *SQLCompiler) compileEquals(eq Equals) (string, []any, error) {
	if err := checkIdent(eq.Field); err != nil {
		return "", nil, err
	}
	return eq.Field + " = ?", []any{eq.Value}, nil
}

// compileAnd joins its predicates with AND.
func (c *SQLCompiler) compileAnd(and And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil // vacuous truth
	}

	var sqlParts []string
	var allParams []any
	for _, pred := range and.Predicates {
		sql, params, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		sqlParts = append(sqlParts, sql)
		allParams = append(allParams, params...)
	}

	return strings.Join(sqlParts, " AND "), allParams, nil
}

// isEmpty reports whether p matches every row.
func isEmpty(p Predicate) bool {
	switch pred := p.(type) {
	case nil:
		return true
	case And:
		return len(pred.Predicates) == 0
	case *And:
		return pred == nil || len(pred.Predicates) == 0
	default:
		return false
	}
}

// checkIdent accepts lowercase snake_case identifiers only.
func checkIdent(name string) error {
	if name == "" {
		return fmt.Errorf("empty identifier")
	}
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch == '_':
		case ch >= '0' && ch <= '9' && i > 0:
		default:
			return fmt.Errorf("invalid identifier %q", name)
		}
	}
	return nil
}
