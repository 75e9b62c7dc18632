package orm

import (
	"context"

	"github.com/go-awesome/iface/executor"
	"github.com/go-awesome/logging"
)

// Save inserts the record. A duplicate primary key and an unexpected affected
// row count are logged as warnings and not returned.
func (m *Model) Save(ctx context.Context, exec executor.Executor) error {
	s := m.schema
	args := make([]interface{}, 0, len(s.fields)+1)
	for _, f := range s.fields {
		args = append(args, m.GetValueOrDefault(f))
	}
	args = append(args, m.GetValueOrDefault(s.primaryKey))
	logSQL(s.insertSQL, args)

	rows, err := exec.Execute(ctx, s.insertSQL, args)
	if err != nil {
		if IsDuplicateKey(err) {
			logging.Warn().Err(err).Str("model", s.name).Interface("primary_key", m.GetValue(s.primaryKey)).
				Msg("failed to insert record: duplicate primary key")
			return nil
		}
		return err
	}
	if rows != 1 {
		logging.Warn().Str("model", s.name).Int64("affected", rows).Msg("failed to insert record")
	}
	return nil
}

// Update writes the current values by primary key. Defaults are not applied.
func (m *Model) Update(ctx context.Context, exec executor.Executor) error {
	s := m.schema
	if s.updateSQL == "" {
		return ErrNoFields
	}
	args := make([]interface{}, 0, len(s.fields)+1)
	for _, f := range s.fields {
		args = append(args, m.GetValue(f))
	}
	args = append(args, m.GetValue(s.primaryKey))
	logSQL(s.updateSQL, args)

	rows, err := exec.Execute(ctx, s.updateSQL, args)
	if err != nil {
		return err
	}
	if rows != 1 {
		logging.Warn().Str("model", s.name).Int64("affected", rows).Msg("failed to update by primary key")
	}
	return nil
}

// Remove deletes the record by primary key.
func (m *Model) Remove(ctx context.Context, exec executor.Executor) error {
	s := m.schema
	args := []interface{}{m.GetValue(s.primaryKey)}
	logSQL(s.deleteSQL, args)

	rows, err := exec.Execute(ctx, s.deleteSQL, args)
	if err != nil {
		return err
	}
	if rows != 1 {
		logging.Warn().Str("model", s.name).Int64("affected", rows).Msg("failed to remove by primary key")
	}
	return nil
}
