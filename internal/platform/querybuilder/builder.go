// Package querybuilder renders the small set of SELECT and UPDATE shapes the
// roster repositories need, with Postgres $n placeholders.
package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

// sqlWriter accumulates SQL text and its positional arguments.
type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) text(parts ...string) {
	for _, p := range parts {
		w.buf.WriteString(p)
	}
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteByte('$')
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

// fragment writes expr, binding one arg for each '?' in order. Surplus
// question marks are written literally.
func (w *sqlWriter) fragment(expr string, args []any) {
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && len(args) > 0 {
			w.bind(args[0])
			args = args[1:]
			continue
		}
		w.buf.WriteByte(expr[i])
	}
}

func (w *sqlWriter) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.text(" WHERE ")
		} else {
			w.text(" AND ")
		}
		c.write(w)
	}
}

// Condition is one AND-ed term of a WHERE clause.
type Condition interface {
	write(w *sqlWriter)
}

type conditionFunc func(w *sqlWriter)

func (f conditionFunc) write(w *sqlWriter) { f(w) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(w *sqlWriter) {
		w.text(column, " = ")
		w.bind(value)
	})
}

// In renders "column IN (...)". An empty list matches nothing.
func In(column string, values []any) Condition {
	return conditionFunc(func(w *sqlWriter) {
		if len(values) == 0 {
			w.text("1=0")
			return
		}
		w.text(column, " IN (")
		for i, v := range values {
			if i > 0 {
				w.text(", ")
			}
			w.bind(v)
		}
		w.text(")")
	})
}

// Expr is a raw predicate; each '?' is bound to the next arg.
func Expr(expr string, args ...any) Condition {
	return conditionFunc(func(w *sqlWriter) { w.fragment(expr, args) })
}

type SelectBuilder struct {
	columns []string
	table   string
	joins   []string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// Join adds an INNER JOIN; on is copied verbatim and must not carry values.
func (b *SelectBuilder) Join(table, on string) *SelectBuilder {
	b.joins = append(b.joins, "JOIN "+table+" ON "+on)
	return b
}

func (b *SelectBuilder) LeftJoin(table, on string) *SelectBuilder {
	b.joins = append(b.joins, "LEFT JOIN "+table+" ON "+on)
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, errors.New("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errors.New("select table is required")
	}

	var w sqlWriter
	w.text("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	for _, j := range b.joins {
		w.text(" ", j)
	}
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.text(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.text(" LIMIT ", strconv.Itoa(b.limit))
	}
	return w.buf.String(), w.args, nil
}

type assignment struct {
	column string
	expr   string
	args   []any
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set binds value to column.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	return b.SetExpr(column, "?", value)
}

// SetExpr assigns a raw SQL expression; each '?' is bound to the next arg.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, args: args})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errors.New("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, errors.New("update sets are required")
	}
	// An UPDATE without a predicate would rewrite every team's roster.
	if len(b.where) == 0 {
		return "", nil, errors.New("update requires a where clause")
	}

	var w sqlWriter
	w.text("UPDATE ", b.table, " SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.text(", ")
		}
		w.text(s.column, " = ")
		w.fragment(s.expr, s.args)
	}
	w.where(b.where)
	return w.buf.String(), w.args, nil
}
