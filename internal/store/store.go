// Package store provides the persistence layer over the wiki database:
// keyed page queries for the scanners, the conflict-tolerant stub
// insert, and the guarded actor link update.
package store

import (
	"fmt"

	"github.com/akarlsen/userfill/internal/cursor"
	"github.com/akarlsen/userfill/internal/db"
)

// Store is the root store that provides access to relation-specific
// stores.
type Store struct {
	db *db.DB

	Users   *UserStore
	Actors  *ActorStore
	Sources *SourceStore
}

// New creates a new Store wrapping the given database connection.
func New(database *db.DB) *Store {
	s := &Store{db: database}
	s.Users = &UserStore{store: s}
	s.Actors = &ActorStore{store: s}
	s.Sources = &SourceStore{store: s}
	return s
}

// DB returns the underlying database connection (for read-only queries).
func (s *Store) DB() *db.DB {
	return s.db
}

// queryPage runs a keyed page query expected to yield (int64, string)
// rows and collects them in order.
func (s *Store) queryPage(query string, args ...interface{}) ([]cursor.Row, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer rows.Close()

	var page []cursor.Row
	for rows.Next() {
		var r cursor.Row
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		page = append(page, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating page: %w", err)
	}
	return page, nil
}
