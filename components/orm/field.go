package orm

import "fmt"

// Field describes one mapped column. It is immutable once built.
type Field struct {
	name       string
	columnType string
	primaryKey bool
	// a value, or a func() interface{} producing one
	def interface{}
}

type FieldOption func(*Field)

// Column overrides the column name, which defaults to the attribute name.
func Column(name string) FieldOption {
	return func(f *Field) { f.name = name }
}

func PrimaryKey() FieldOption {
	return func(f *Field) { f.primaryKey = true }
}

// Default sets a value or a zero-argument factory (func() interface{}).
func Default(v interface{}) FieldOption {
	return func(f *Field) { f.def = v }
}

// DDL overrides the column type.
func DDL(columnType string) FieldOption {
	return func(f *Field) { f.columnType = columnType }
}

func newField(columnType string, def interface{}, opts []FieldOption) Field {
	f := Field{columnType: columnType, def: def}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func StringField(opts ...FieldOption) Field {
	return newField("varchar(100)", nil, opts)
}

func IntegerField(opts ...FieldOption) Field {
	return newField("bigint", int64(0), opts)
}

func BooleanField(opts ...FieldOption) Field {
	return newField("boolean", false, opts)
}

func FloatField(opts ...FieldOption) Field {
	return newField("real", 0.0, opts)
}

func TextField(opts ...FieldOption) Field {
	return newField("mediumtext", nil, opts)
}

func (f Field) Name() string       { return f.name }
func (f Field) ColumnType() string { return f.columnType }
func (f Field) IsPrimaryKey() bool { return f.primaryKey }

// HasDefault reports whether a default value or factory is set.
func (f Field) HasDefault() bool { return f.def != nil }

// DefaultValue resolves the default, calling the factory if there is one.
func (f Field) DefaultValue() interface{} {
	switch d := f.def.(type) {
	case func() interface{}:
		return d()
	case func() string:
		return d()
	case func() int64:
		return d()
	case func() float64:
		return d()
	default:
		return d
	}
}

func (f Field) String() string {
	return fmt.Sprintf("<Field, %s:%s>", f.columnType, f.name)
}
