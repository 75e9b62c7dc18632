package condition

import "github.com/go-awesome/utils"

type DBParam struct {
	Table string
	Field string
}

// GetFullField returns the quoted column, qualified by its table when set.
func (p *DBParam) GetFullField() string {
	if p.Table == "" {
		return utils.Backquote(p.Field)
	}
	return utils.Backquote(p.Table) + "." + utils.Backquote(p.Field)
}

func newDatabaseParam(table, field string) *DBParam {
	return &DBParam{
		Table: table,
		Field: field,
	}
}
