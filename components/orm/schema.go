package orm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-awesome/logging"
	"github.com/go-awesome/utils"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/pkg/errors"
)

// Mapping binds an attribute name to its Field. Declaration order is kept.
type Mapping struct {
	Attr  string
	Field Field
}

type Mappings []Mapping

// Schema is the per-model metadata computed once by Define.
type Schema struct {
	name       string
	table      string
	mappings   map[string]Field
	primaryKey string
	fields     []string
	attrs      map[string]string // column -> attribute

	selectSQL string
	insertSQL string
	updateSQL string
	deleteSQL string
}

var registry = cmap.New[*Schema]()

// Define validates the declarations and builds the schema. An empty table
// defaults to the model name.
func Define(name, table string, mappings Mappings) (*Schema, error) {
	if table == "" {
		table = name
	}
	logging.Debug().Str("model", name).Str("table", table).Msg("found model")

	s := &Schema{
		name:     name,
		table:    table,
		mappings: make(map[string]Field, len(mappings)),
		attrs:    make(map[string]string, len(mappings)),
	}
	for _, m := range mappings {
		if _, ok := s.mappings[m.Attr]; ok {
			return nil, errors.Wrapf(ErrDuplicateAttribute, "%s.%s", name, m.Attr)
		}
		logging.Debug().Str("model", name).Str("attr", m.Attr).Str("field", m.Field.String()).Msg("found mapping")
		s.mappings[m.Attr] = m.Field
		if m.Field.IsPrimaryKey() {
			if s.primaryKey != "" {
				return nil, errors.Wrapf(ErrDuplicatePrimaryKey, "%s: field %s", name, m.Attr)
			}
			s.primaryKey = m.Attr
		} else {
			s.fields = append(s.fields, m.Attr)
		}
	}
	if s.primaryKey == "" {
		return nil, errors.Wrapf(ErrPrimaryKeyNotFound, "model %s", name)
	}
	for attr := range s.mappings {
		s.attrs[s.Column(attr)] = attr
	}
	s.buildSQL()

	registry.Set(name, s)
	return s, nil
}

// MustDefine is Define for package level declarations; it panics on error.
func MustDefine(name, table string, mappings Mappings) *Schema {
	s, err := Define(name, table, mappings)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) buildSQL() {
	table := utils.Backquote(s.table)
	pk := utils.Backquote(s.Column(s.primaryKey))
	escaped := utils.BackquoteAll(s.columns(s.fields))

	s.selectSQL = fmt.Sprintf("select %s from %s", strings.Join(append([]string{pk}, escaped...), ", "), table)
	s.insertSQL = fmt.Sprintf("insert into %s (%s) values (%s)",
		table, strings.Join(append(escaped, pk), ", "), utils.Placeholders(len(escaped)+1))
	if len(escaped) > 0 {
		sets := make([]string, 0, len(escaped))
		for _, c := range escaped {
			sets = append(sets, c+"=?")
		}
		s.updateSQL = fmt.Sprintf("update %s set %s where %s=?", table, strings.Join(sets, ", "), pk)
	}
	s.deleteSQL = fmt.Sprintf("delete from %s where %s=?", table, pk)
}

func (s *Schema) columns(attrs []string) []string {
	cols := make([]string, 0, len(attrs))
	for _, a := range attrs {
		cols = append(cols, s.Column(a))
	}
	return cols
}

// Column returns the column mapped to attr.
func (s *Schema) Column(attr string) string {
	if f, ok := s.mappings[attr]; ok && f.Name() != "" {
		return f.Name()
	}
	return attr
}

// Attr returns the attribute mapped to column, or the column itself.
func (s *Schema) Attr(column string) string {
	if a, ok := s.attrs[column]; ok {
		return a
	}
	return column
}

func (s *Schema) Name() string       { return s.name }
func (s *Schema) Table() string      { return s.table }
func (s *Schema) PrimaryKey() string { return s.primaryKey }

// Fields returns the non-key attributes in declaration order.
func (s *Schema) Fields() []string {
	return append([]string(nil), s.fields...)
}

func (s *Schema) Field(attr string) (Field, bool) {
	f, ok := s.mappings[attr]
	return f, ok
}

func (s *Schema) SelectSQL() string { return s.selectSQL }
func (s *Schema) InsertSQL() string { return s.insertSQL }
func (s *Schema) UpdateSQL() string { return s.updateSQL }
func (s *Schema) DeleteSQL() string { return s.deleteSQL }

// CreateTableSQL renders the DDL for the schema.
func (s *Schema) CreateTableSQL() string {
	pk := s.Column(s.primaryKey)
	defs := []string{fmt.Sprintf("%s %s not null", utils.Backquote(pk), s.mappings[s.primaryKey].ColumnType())}
	for _, attr := range s.fields {
		defs = append(defs, fmt.Sprintf("%s %s", utils.Backquote(s.Column(attr)), s.mappings[attr].ColumnType()))
	}
	defs = append(defs, fmt.Sprintf("primary key (%s)", utils.Backquote(pk)))
	return fmt.Sprintf("create table if not exists %s (\n  %s\n) engine=innodb default charset=utf8",
		utils.Backquote(s.table), strings.Join(defs, ",\n  "))
}

// Lookup returns a schema registered by Define.
func Lookup(name string) (*Schema, bool) {
	return registry.Get(name)
}

// Schemas returns every registered schema ordered by name.
func Schemas() []*Schema {
	out := make([]*Schema, 0, registry.Count())
	registry.IterCb(func(_ string, s *Schema) {
		out = append(out, s)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
