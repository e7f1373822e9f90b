package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/akarlsen/userfill/internal/domain"
)

// TouchedFormat is the layout of user_touched values.
const TouchedFormat = "20060102150405"

// UserStore handles canonical user persistence.
type UserStore struct {
	store *Store
}

// InsertStub inserts a stub canonical user record and reports whether
// a row was actually written. A conflict on user_id (or user_name)
// is silently dropped: renames across source tables can produce
// duplicate identifiers, and the existing record wins.
func (us *UserStore) InsertStub(id int64, name string, touched time.Time) (bool, error) {
	res, err := us.store.db.Exec(`
		INSERT OR IGNORE INTO user (
			user_id, user_name, user_real_name, user_password,
			user_newpassword, user_email, user_touched, user_token
		) VALUES (?, ?, '', '', '', '', ?, '')
	`, id, name, touched.UTC().Format(TouchedFormat))
	if err != nil {
		return false, fmt.Errorf("failed to insert stub user %d (%q): %w", id, name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result for user %d: %w", id, err)
	}
	return n > 0, nil
}

// FindStubByName returns the identifier of the canonical user whose
// name matches exactly and whose stored credential is empty. The empty
// credential marks a backfilled stub; a provisioned account must never
// be attached by name collision. Ties break to the lowest user_id.
func (us *UserStore) FindStubByName(name string) (int64, bool, error) {
	var id int64
	err := us.store.db.QueryRow(`
		SELECT user_id FROM user
		WHERE user_name = ? AND user_password = ''
		ORDER BY user_id
		LIMIT 1
	`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up user %q: %w", name, err)
	}
	return id, true, nil
}

// Get retrieves a user by identifier.
func (us *UserStore) Get(id int64) (*domain.User, error) {
	u := &domain.User{}
	err := us.store.db.QueryRow(`
		SELECT user_id, user_name, user_real_name, user_password,
		       user_newpassword, user_email, user_touched, user_token
		FROM user WHERE user_id = ?
	`, id).Scan(&u.ID, &u.Name, &u.RealName, &u.Password,
		&u.NewPassword, &u.Email, &u.Touched, &u.Token)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return u, nil
}

// Count returns the total number of users and how many are stubs
// (empty stored credential).
func (us *UserStore) Count() (total, stubs int64, err error) {
	err = us.store.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(user_password = ''), 0) FROM user
	`).Scan(&total, &stubs)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, stubs, nil
}
