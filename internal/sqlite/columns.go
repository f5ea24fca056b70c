package sqlite

import "github.com/tkoehler/timekeep/internal/repository"

// column resolves a caller-facing field name against a per-table
// whitelist. Field names arrive from outside the storage layer and are
// never interpolated into SQL without passing through here.
func column(columns map[string]string, field string) (string, error) {
	col, ok := columns[field]
	if !ok {
		return "", repository.ErrInvalidInput
	}
	return col, nil
}

// orderClause builds an ORDER BY for an optional sort field. The default
// is insertion order.
func orderClause(columns map[string]string, sortField string) (string, error) {
	if sortField == "" {
		return "ORDER BY rowid", nil
	}
	col, err := column(columns, sortField)
	if err != nil {
		return "", err
	}
	return "ORDER BY " + col, nil
}
