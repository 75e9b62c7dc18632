package condition

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-awesome/utils"
	"github.com/pkg/errors"
)

const (
	// logical operator
	Equal           = "="
	NotEqual        = "!="
	NotEqual2       = "<>"
	LargerThan      = ">"
	LargerEqualThan = ">="
	LessThan        = "<"
	LessEqualThan   = "<="
	In              = "in"
	Like            = "like"
)

var ErrInvalidOperator = errors.New("invalid operator")

type QueryParam struct {
	*DBParam
	operator       string
	conditionValue []interface{}
	sql            string
}

func (q *QueryParam) Operator() string {
	return q.operator
}

func (q *QueryParam) GetSql() string {
	return q.sql
}

func (q *QueryParam) ConditionValue() []interface{} {
	return q.conditionValue
}

func NewQueryParam(table, field, operator string, value interface{}) *QueryParam {
	values := []interface{}{value}
	if operator == In {
		values = utils.Flatten(value)
	}
	return &QueryParam{
		DBParam:        newDatabaseParam(table, field),
		operator:       strings.ToLower(operator),
		conditionValue: values,
	}
}

// NewQueryParamWithSql uses sql verbatim, with value binding its placeholders.
func NewQueryParamWithSql(table, field, sql string, value []interface{}) *QueryParam {
	return &QueryParam{
		DBParam:        newDatabaseParam(table, field),
		sql:            sql,
		conditionValue: value,
	}
}

// NewDefaultQueryParam picks "in" for arrays and slices, "=" otherwise.
func NewDefaultQueryParam(table, field string, value interface{}) *QueryParam {
	var operator string
	_, isBytes := value.([]byte)
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		operator = In
		if isBytes {
			operator = Equal
		}
	default:
		operator = Equal
	}
	return NewQueryParam(table, field, operator, value)
}

// Build joins params with "and" into a where clause using "?" placeholders.
func Build(params []*QueryParam) (whereSQL string, vals []interface{}, err error) {
	parts := make([]string, 0, len(params))
	for _, v := range params {
		// 如果指定了sql模板, 优先使用sql
		if v.GetSql() != "" {
			parts = append(parts, fmt.Sprintf("(%s)", v.GetSql()))
			vals = append(vals, v.ConditionValue()...)
			continue
		}

		k := v.GetFullField()
		switch v.Operator() {
		case Equal, LargerThan, LargerEqualThan, LessThan, LessEqualThan, NotEqual:
			parts = append(parts, fmt.Sprintf("%s%s?", k, v.Operator()))
		case NotEqual2:
			parts = append(parts, fmt.Sprintf("%s!=?", k))
		case Like:
			parts = append(parts, fmt.Sprintf("%s like ?", k))
		case In:
			if len(v.ConditionValue()) == 0 {
				parts = append(parts, fmt.Sprintf("%s in (NULL)", k))
				continue
			}
			parts = append(parts, fmt.Sprintf("%s in (%s)", k, utils.Placeholders(len(v.ConditionValue()))))
		default:
			return "", nil, errors.Wrapf(ErrInvalidOperator, "%s %s", k, v.Operator())
		}
		vals = append(vals, v.ConditionValue()...)
	}
	return strings.Join(parts, " and "), vals, nil
}
