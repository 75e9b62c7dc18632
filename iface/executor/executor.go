package executor

import "context"

// Row is one result row keyed by column name.
type Row map[string]interface{}

// Executor runs statements written with "?" placeholders.
type Executor interface {
	// Select returns at most size rows, all rows when size <= 0.
	Select(ctx context.Context, query string, args []interface{}, size int) ([]Row, error)
	// Execute returns the number of affected rows.
	Execute(ctx context.Context, query string, args []interface{}) (int64, error)
}
