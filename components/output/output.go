package output

import (
	"strings"

	"github.com/go-awesome/utils"
	"github.com/go-awesome/utils/validate"
	"github.com/thoas/go-funk"
)

// Output describes which attributes of a record may be returned to clients.
type Output struct {
	Available []string
	Default   []string
	filter    *StandardFilter
}

// New builds an Output over the available attributes. Attributes listed in
// hidden are never returned.
func New(available []string, defaults []string, hidden ...string) *Output {
	o := &Output{}
	if len(hidden) > 0 {
		o.filter = NewStandardFilter(NotIn, hidden, false)
	}
	for _, a := range available {
		if o.filter == nil || o.filter.Accepts(a) {
			o.Available = append(o.Available, a)
		}
	}
	for _, d := range defaults {
		if funk.ContainsString(o.Available, d) {
			o.Default = append(o.Default, d)
		}
	}
	if len(o.Default) == 0 {
		o.Default = o.Available
	}
	return o
}

// Select parses a comma separated field list. An empty list selects the
// defaults.
func (o *Output) Select(fields string) ([]string, error) {
	requested := utils.Split(strings.ReplaceAll(fields, " ", ""), ",")
	if len(requested) == 0 {
		return o.Default, nil
	}
	available := NewStandardFilter(In, o.Available, true)
	for _, f := range requested {
		if !available.Accepts(f) {
			return nil, &validate.FieldError{Field: "fields", Message: "unknown field: " + f}
		}
	}
	return funk.UniqString(requested), nil
}

// Project copies the selected keys of v.
func Project(v map[string]interface{}, fields []string) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		if val, ok := v[f]; ok {
			out[f] = val
		}
	}
	return out
}
