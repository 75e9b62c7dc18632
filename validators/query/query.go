package query

import (
	"sort"
	"strings"

	"github.com/go-awesome/components/orm"
	"github.com/go-awesome/components/orm/condition"
	"github.com/go-awesome/iface/validator"
	"github.com/go-awesome/utils"
	"github.com/go-awesome/utils/validate"
	"github.com/thoas/go-funk"
	"github.com/unknwon/com"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 500
)

type Parameters struct {
	Page     int `json:"page" validate:"gte=1"`
	PageSize int `json:"page_size" validate:"gte=1,lte=500"`
}

// Pagination is the page window of a list query.
type Pagination struct {
	Page        int  `json:"page_index"`
	PageSize    int  `json:"page_size"`
	PageCount   int  `json:"page_count"`
	TotalCount  int  `json:"item_count"`
	Offset      int  `json:"offset"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// ParsePagination reads "page" and "page_size" from kw.
func ParsePagination(kw map[string]interface{}) (Pagination, error) {
	var (
		parameters Parameters
		err        error
	)
	if parameters.Page, err = toInt(kw, "page", DefaultPage); err != nil {
		return Pagination{}, err
	}
	if parameters.PageSize, err = toInt(kw, "page_size", DefaultPageSize); err != nil {
		return Pagination{}, err
	}
	if err = validate.StructParam(parameters); err != nil {
		return Pagination{}, err
	}
	return Pagination{Page: parameters.Page, PageSize: parameters.PageSize}, nil
}

func toInt(kw map[string]interface{}, key string, def int) (int, error) {
	s := strings.TrimSpace(utils.ToString(kw[key]))
	if s == "" {
		return def, nil
	}
	n, err := com.StrTo(s).Int()
	if err != nil {
		return 0, &validate.FieldError{Field: key, Message: key + " must be a number"}
	}
	return n, nil
}

// Init computes the window for total items. A page past the end resets to
// page 1 with offset 0, so the first page of rows is returned.
func (p *Pagination) Init(total int) {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.PageSize == 0 || p.PageSize > MaxPageSize {
		p.PageSize = DefaultPageSize
	}
	p.TotalCount = total
	p.PageCount = total / p.PageSize
	if total%p.PageSize > 0 {
		p.PageCount++
	}
	if total == 0 || p.Page > p.PageCount {
		p.Page = DefaultPage
		p.Offset = 0
	} else {
		p.Offset = (p.Page - 1) * p.PageSize
	}
	p.HasNext = p.Page < p.PageCount
	p.HasPrevious = p.Page > 1
}

// Empty reports whether the window holds no rows.
func (p Pagination) Empty() bool {
	return p.TotalCount == 0 || p.Offset >= p.TotalCount
}

func (p Pagination) Limit() orm.QueryOption {
	return orm.Limit(p.Offset, p.PageSize)
}

// ParseOrder validates "column [asc|desc]" against the allowed columns.
func ParseOrder(v string, allowed ...string) (string, error) {
	parts := strings.Fields(v)
	if len(parts) == 0 || len(parts) > 2 || !funk.ContainsString(allowed, parts[0]) {
		return "", &validate.FieldError{Field: "order_by", Message: "order by is invalid"}
	}
	dir := "asc"
	if len(parts) == 2 {
		dir = strings.ToLower(parts[1])
		if dir != "asc" && dir != "desc" {
			return "", &validate.FieldError{Field: "order_by", Message: "order by is invalid"}
		}
	}
	return utils.Backquote(parts[0]) + " " + dir, nil
}

// Conditions validates every key of kw that has a filter and converts it to
// where conditions on table, ordered by key.
func Conditions(table string, kw map[string]interface{}, filters map[string]validator.Validator) ([]*condition.QueryParam, error) {
	keys := funk.Keys(filters).([]string)
	sort.Strings(keys)

	var params []*condition.QueryParam
	for _, field := range keys {
		v, ok := kw[field]
		if !ok {
			continue
		}
		f := filters[field]
		if err := f.Validate(v); err != nil {
			return nil, err
		}
		params = append(params, f.TransferCondition(table, field, v)...)
	}
	return params, nil
}
