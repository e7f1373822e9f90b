package store

import (
	"database/sql"
	"fmt"

	"github.com/akarlsen/userfill/internal/cursor"
	"github.com/akarlsen/userfill/internal/domain"
)

// ActorStore handles actor persistence.
type ActorStore struct {
	store *Store
}

// Unlinked returns the next page of actor rows with no owning user,
// keyed on actor_id.
func (as *ActorStore) Unlinked(after int64, limit int) ([]cursor.Row, error) {
	return as.store.queryPage(`
		SELECT actor_id, actor_name FROM actor
		WHERE actor_user IS NULL AND actor_id > ?
		ORDER BY actor_id
		LIMIT ?
	`, after, limit)
}

// Link fills actor_user for the given actor and reports whether the
// row changed. The update is guarded on actor_user IS NULL so a link
// written by an earlier run or a concurrent writer wins.
func (as *ActorStore) Link(actorID, userID int64) (bool, error) {
	res, err := as.store.db.Exec(`
		UPDATE actor SET actor_user = ?
		WHERE actor_id = ? AND actor_user IS NULL
	`, userID, actorID)
	if err != nil {
		return false, fmt.Errorf("failed to link actor %d to user %d: %w", actorID, userID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read link result for actor %d: %w", actorID, err)
	}
	return n > 0, nil
}

// Get retrieves an actor by identifier.
func (as *ActorStore) Get(id int64) (*domain.Actor, error) {
	a := &domain.Actor{}
	var userID sql.NullInt64
	err := as.store.db.QueryRow(`
		SELECT actor_id, actor_name, actor_user FROM actor WHERE actor_id = ?
	`, id).Scan(&a.ID, &a.Name, &userID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("actor not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get actor %d: %w", id, err)
	}
	if userID.Valid {
		a.UserID = &userID.Int64
	}
	return a, nil
}

// CountUnlinked returns the number of actor rows with no owning user.
func (as *ActorStore) CountUnlinked() (int64, error) {
	var n int64
	err := as.store.db.QueryRow(`
		SELECT COUNT(*) FROM actor WHERE actor_user IS NULL
	`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count unlinked actors: %w", err)
	}
	return n, nil
}
