package orm

import (
	"encoding/json"

	"github.com/go-awesome/logging"
)

// Values is a set of attribute values.
type Values map[string]interface{}

// Model is one record of a Schema.
type Model struct {
	schema *Schema
	values Values
}

// New builds a record from explicit values. The map is copied.
func (s *Schema) New(values Values) *Model {
	m := &Model{schema: s, values: make(Values, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *Model) Schema() *Schema {
	return m.schema
}

// Get returns the stored value and whether it is set.
func (m *Model) Get(attr string) (interface{}, bool) {
	v, ok := m.values[attr]
	return v, ok
}

func (m *Model) Set(attr string, value interface{}) {
	m.values[attr] = value
}

// GetValue returns the stored value or nil.
func (m *Model) GetValue(attr string) interface{} {
	return m.values[attr]
}

// GetValueOrDefault returns the stored value; when it is nil the field default
// is resolved and stored on the record.
func (m *Model) GetValueOrDefault(attr string) interface{} {
	v := m.values[attr]
	if v != nil {
		return v
	}
	f, ok := m.schema.mappings[attr]
	if !ok || !f.HasDefault() {
		return nil
	}
	v = f.DefaultValue()
	logging.Debug().Str("attr", attr).Interface("value", v).Msg("using default value")
	m.values[attr] = v
	return v
}

// Values returns a copy of the attribute map.
func (m *Model) Values() Values {
	out := make(Values, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.values)
}
