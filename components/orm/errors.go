package orm

import (
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

var (
	ErrPrimaryKeyNotFound  = errors.New("primary key not found")
	ErrDuplicatePrimaryKey = errors.New("duplicate primary key")
	ErrDuplicateAttribute  = errors.New("duplicate attribute")
	ErrNoFields            = errors.New("model has no non-key fields")
	ErrUnknownAttribute    = errors.New("unknown attribute")
	// ErrInvalidLimit is a caller error: Limit takes one or two values.
	ErrInvalidLimit = errors.New("invalid limit value")
)

// mysql error numbers reported for a duplicate key
var duplicateKeyCodes = map[uint16]bool{
	1062: true, // ER_DUP_ENTRY
	1586: true, // ER_DUP_ENTRY_WITH_KEY_NAME
}

// IsDuplicateKey reports whether err is a driver uniqueness violation.
func IsDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return duplicateKeyCodes[mysqlErr.Number]
	}
	return false
}
