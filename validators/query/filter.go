package query

import (
	"strconv"
	"strings"

	"github.com/go-awesome/components/orm/condition"
	"github.com/go-awesome/utils"
	"github.com/go-awesome/utils/validate"
)

// ListFilter matches a value exactly, or any of several comma separated values.
type ListFilter struct {
	MaxLen int
}

func (f ListFilter) Validate(v interface{}) error {
	s := utils.ToString(v)
	if strings.TrimSpace(s) == "" {
		return &validate.FieldError{Message: "filter value must not be empty"}
	}
	if f.MaxLen > 0 && len(s) > f.MaxLen {
		return &validate.FieldError{Message: "filter value is too long"}
	}
	return nil
}

func (f ListFilter) TransferCondition(table, field string, v interface{}) []*condition.QueryParam {
	values := utils.Split(utils.ToString(v), ",")
	if len(values) == 1 {
		return []*condition.QueryParam{condition.NewDefaultQueryParam(table, field, values[0])}
	}
	return []*condition.QueryParam{condition.NewDefaultQueryParam(table, field, values)}
}

// LikeFilter matches values containing the given text.
type LikeFilter struct{}

func (LikeFilter) Validate(v interface{}) error {
	if strings.TrimSpace(utils.ToString(v)) == "" {
		return &validate.FieldError{Message: "filter value must not be empty"}
	}
	return nil
}

func (LikeFilter) TransferCondition(table, field string, v interface{}) []*condition.QueryParam {
	return []*condition.QueryParam{condition.NewQueryParam(table, field, condition.Like, "%"+utils.ToString(v)+"%")}
}

// BoolFilter accepts 1, t, true, 0, f, false and the like.
type BoolFilter struct{}

func (BoolFilter) Validate(v interface{}) error {
	if _, ok := v.(bool); ok {
		return nil
	}
	if _, err := strconv.ParseBool(utils.ToString(v)); err != nil {
		return &validate.FieldError{Message: "filter value must be a boolean"}
	}
	return nil
}

func (BoolFilter) TransferCondition(table, field string, v interface{}) []*condition.QueryParam {
	b, ok := v.(bool)
	if !ok {
		b, _ = strconv.ParseBool(utils.ToString(v))
	}
	return []*condition.QueryParam{condition.NewQueryParam(table, field, condition.Equal, b)}
}
