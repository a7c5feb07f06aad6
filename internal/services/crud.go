package services

import (
	"context"
	"encoding/json"

	"sitecms-backend-go/internal/db"
)

// Table and column names below are compile-time constants; only values are
// passed as arguments.

func nextSortOrder(ctx context.Context, gw *db.Gateway, table string) (int, error) {
	var max int
	if err := gw.Get(ctx, &max, `SELECT COALESCE(MAX(sort_order), 0) FROM `+table); err != nil {
		return 0, err
	}
	return max + 1, nil
}

func rowExists(ctx context.Context, gw *db.Gateway, table, keyColumn, key string) (bool, error) {
	var count int
	if err := gw.Get(ctx, &count, `SELECT COUNT(*) FROM `+table+` WHERE `+keyColumn+` = ?`, key); err != nil {
		return false, err
	}
	return count > 0, nil
}

func countRows(ctx context.Context, gw *db.Gateway, table string) (int, error) {
	var count int
	if err := gw.Get(ctx, &count, `SELECT COUNT(*) FROM `+table); err != nil {
		return 0, err
	}
	return count, nil
}

// updateRow applies the known fields of body (plus extra assignments) to the
// row identified by key. It rejects bodies with nothing to write and reports a
// missing row as not found.
func updateRow(ctx context.Context, gw *db.Gateway, table, keyColumn, key string, fields fieldTable, body map[string]json.RawMessage, extra []assignment, entity string) error {
	sets, err := fields.assignments(body)
	if err != nil {
		return err
	}
	sets = append(sets, extra...)
	if len(sets) == 0 {
		return ErrBadRequest("No fields to update")
	}
	query, args := buildUpdate(table, keyColumn, sets, now(), key)
	affected, err := gw.Exec(ctx, query, args...)
	if err != nil {
		return ErrPersistence("Could not update "+entity, err)
	}
	if affected == 0 {
		return ErrNotFound(capitalize(entity) + " not found")
	}
	return nil
}

func deleteRow(ctx context.Context, gw *db.Gateway, table, keyColumn, key, entity string) error {
	if _, err := gw.Exec(ctx, `DELETE FROM `+table+` WHERE `+keyColumn+` = ?`, key); err != nil {
		return ErrPersistence("Could not delete "+entity, err)
	}
	return nil
}

func listQuery(columns, table, orderBy, status string) (string, []interface{}) {
	query := `SELECT ` + columns + ` FROM ` + table
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	return query + ` ORDER BY ` + orderBy, args
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
