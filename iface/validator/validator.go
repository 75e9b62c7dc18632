package validator

import "github.com/go-awesome/components/orm/condition"

// Validator checks one request value and turns it into where conditions on
// field.
type Validator interface {
	Validate(v interface{}) error
	TransferCondition(table, field string, v interface{}) []*condition.QueryParam
}
