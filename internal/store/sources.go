package store

import (
	"fmt"

	"github.com/akarlsen/userfill/internal/cursor"
	"github.com/akarlsen/userfill/internal/tables"
)

// SourceStore reads the legacy tables that embed a denormalized
// (user id, display name) pair.
type SourceStore struct {
	store *Store
}

// MissingUsers returns the next page of distinct (id, name) pairs from
// the source table for which no canonical user record exists, keyed on
// the embedded user-id column. Identifiers are interpolated, not
// bound; they always come from the static registry, never from user
// input.
func (ss *SourceStore) MissingUsers(table string, cols tables.Columns, after int64, limit int) ([]cursor.Row, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT s.%[1]s, s.%[2]s
		FROM %[3]s s
		LEFT JOIN user u ON u.user_id = s.%[1]s
		WHERE u.user_id IS NULL AND s.%[1]s > ?
		ORDER BY s.%[1]s
		LIMIT ?
	`, cols.ID, cols.Name, table)

	page, err := ss.store.queryPage(query, after, limit)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", table, err)
	}
	return page, nil
}
