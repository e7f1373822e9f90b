package domain

import "fmt"

// Scheme identifies how the deployment stores user identity.
type Scheme string

const (
	// SchemeLegacy stores (user id, display name) directly in each
	// content table.
	SchemeLegacy Scheme = "legacy"

	// SchemeActor routes identity through the actor table.
	SchemeActor Scheme = "actor"
)

// ParseScheme parses a scheme name from config or flags.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case SchemeLegacy, SchemeActor:
		return Scheme(s), nil
	case "":
		return SchemeLegacy, nil
	default:
		return "", &UsageError{Msg: fmt.Sprintf("unknown identity scheme %q (expected legacy or actor)", s)}
	}
}

// User is a canonical user record. Backfilled rows are stubs: every
// field except ID, Name and Touched is the empty string.
type User struct {
	ID          int64  `db:"user_id"`
	Name        string `db:"user_name"`
	RealName    string `db:"user_real_name"`
	Password    string `db:"user_password"`
	NewPassword string `db:"user_newpassword"`
	Email       string `db:"user_email"`
	Touched     string `db:"user_touched"`
	Token       string `db:"user_token"`
}

// Actor binds a display name to an eventually linked canonical user.
// UserID is nil until the linking pass finds a matching stub account.
type Actor struct {
	ID     int64  `db:"actor_id"`
	Name   string `db:"actor_name"`
	UserID *int64 `db:"actor_user"`
}

// RunEvent is one row of the run audit log.
type RunEvent struct {
	RunID     string  `db:"run_id"`
	EventType string  `db:"event_type"`
	Table     *string `db:"tbl"`
	Payload   *string `db:"payload"`
}

// UsageError marks operator misuse (bad table name, scheme/flag
// conflicts) detected before any scanning begins.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}
