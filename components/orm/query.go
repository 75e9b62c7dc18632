package orm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-awesome/iface/executor"
	"github.com/go-awesome/logging"
	"github.com/go-awesome/utils"
	"github.com/pkg/errors"
)

// Clause collects the optional parts of a FindAll / FindNumber statement.
type Clause struct {
	where    string
	args     []interface{}
	orderBy  string
	limit    []int
	hasLimit bool
}

type QueryOption func(*Clause)

// Where sets the where clause; args bind its placeholders.
func Where(clause string, args ...interface{}) QueryOption {
	return func(c *Clause) {
		c.where = clause
		c.args = append(c.args, args...)
	}
}

// Args appends placeholder arguments.
func Args(args ...interface{}) QueryOption {
	return func(c *Clause) { c.args = append(c.args, args...) }
}

func OrderBy(clause string) QueryOption {
	return func(c *Clause) { c.orderBy = clause }
}

// Limit takes a row count, or an offset and a row count.
func Limit(v ...int) QueryOption {
	return func(c *Clause) {
		c.limit = v
		c.hasLimit = true
	}
}

// Build appends the clauses to base and returns the statement with its arguments.
func (c *Clause) Build(base string) (string, []interface{}, error) {
	parts := []string{base}
	args := append([]interface{}(nil), c.args...)
	if c.where != "" {
		parts = append(parts, "where", c.where)
	}
	if c.orderBy != "" {
		parts = append(parts, "order by", c.orderBy)
	}
	if c.hasLimit {
		switch len(c.limit) {
		case 1:
			parts = append(parts, "limit", "?")
			args = append(args, c.limit[0])
		case 2:
			parts = append(parts, "limit", "?, ?")
			args = append(args, c.limit[0], c.limit[1])
		default:
			return "", nil, errors.Wrapf(ErrInvalidLimit, "%v", c.limit)
		}
	}
	return strings.Join(parts, " "), args, nil
}

func newClause(opts []QueryOption) *Clause {
	c := &Clause{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func logSQL(query string, args []interface{}) {
	logging.Info().Str("sql", query).Interface("args", args).Msg("SQL")
}

func (s *Schema) fromRow(row executor.Row) *Model {
	m := &Model{schema: s, values: make(Values, len(row))}
	for col, v := range row {
		m.values[s.Attr(col)] = v
	}
	return m
}

// Find returns the record with the given primary key, nil when there is none.
func (s *Schema) Find(ctx context.Context, exec executor.Executor, pk interface{}) (*Model, error) {
	query := fmt.Sprintf("%s where %s=?", s.selectSQL, utils.Backquote(s.Column(s.primaryKey)))
	args := []interface{}{pk}
	logSQL(query, args)
	rs, err := exec.Select(ctx, query, args, 1)
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return nil, nil
	}
	return s.fromRow(rs[0]), nil
}

// FindAll returns one record per row, in the order the driver returns them.
func (s *Schema) FindAll(ctx context.Context, exec executor.Executor, opts ...QueryOption) ([]*Model, error) {
	query, args, err := newClause(opts).Build(s.selectSQL)
	if err != nil {
		return nil, err
	}
	logSQL(query, args)
	rs, err := exec.Select(ctx, query, args, 0)
	if err != nil {
		return nil, err
	}
	models := make([]*Model, 0, len(rs))
	for _, row := range rs {
		models = append(models, s.fromRow(row))
	}
	return models, nil
}

// FindNumber selects expr (e.g. "count(id)") as _num_ and returns the value of the first row.
func (s *Schema) FindNumber(ctx context.Context, exec executor.Executor, expr string, opts ...QueryOption) (interface{}, error) {
	base := fmt.Sprintf("select %s _num_ from %s", expr, utils.Backquote(s.table))
	query, args, err := newClause(opts).Build(base)
	if err != nil {
		return nil, err
	}
	logSQL(query, args)
	rs, err := exec.Select(ctx, query, args, 1)
	if err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return nil, nil
	}
	return rs[0]["_num_"], nil
}
