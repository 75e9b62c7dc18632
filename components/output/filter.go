package output

import (
	"fmt"

	"github.com/thoas/go-funk"
)

type Operator string

const (
	NotIn Operator = "not_in"
	In    Operator = "in"
)

// StandardFilter accepts a value set when any value satisfies Op against
// Conditions.
type StandardFilter struct {
	Op         Operator
	Conditions []string
	Strict     bool
}

func NewStandardFilter(operator Operator, conditions []string, strict bool) *StandardFilter {
	return &StandardFilter{Op: operator, Conditions: conditions, Strict: strict}
}

func (s *StandardFilter) Filter(values []string) bool {
	if len(values) == 0 {
		if s.Strict && len(s.Conditions) != 0 {
			return s.Op == NotIn
		}
		return len(s.Conditions) != 0 || s.Op != NotIn
	}
	for _, v := range values {
		if s.match(v) {
			return true
		}
	}
	return false
}

func (s *StandardFilter) match(v string) bool {
	switch s.Op {
	case In:
		return len(s.Conditions) == 0 || funk.ContainsString(s.Conditions, v)
	case NotIn:
		return len(s.Conditions) != 0 && !funk.ContainsString(s.Conditions, v)
	}
	panic(fmt.Sprintf("unknown filter operator %q", s.Op))
}

// Accepts reports whether the single value v passes.
func (s *StandardFilter) Accepts(v string) bool {
	return s.Filter([]string{v})
}
