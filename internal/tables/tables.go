// Package tables holds the static registry of source tables that embed
// a denormalized (user id, display name) pair, and resolves which of
// them a run covers.
package tables

import (
	"fmt"
	"sort"
	"strings"

	"github.com/akarlsen/userfill/internal/domain"
)

// Columns names the embedded user-id and display-name columns of a
// source table.
type Columns struct {
	ID   string
	Name string
}

// Actor is the logical name of the actor relation.
const Actor = "actor"

// legacyOrder fixes the processing order for a full legacy run.
var legacyOrder = []string{
	"revision",
	"logging",
	"image",
	"oldimage",
	"filearchive",
	"archive",
	"ipblocks",
}

var registry = map[string]Columns{
	"revision":    {ID: "rev_user", Name: "rev_user_text"},
	"logging":     {ID: "log_user", Name: "log_user_text"},
	"image":       {ID: "img_user", Name: "img_user_text"},
	"oldimage":    {ID: "oi_user", Name: "oi_user_text"},
	"filearchive": {ID: "fa_user", Name: "fa_user_text"},
	"archive":     {ID: "ar_user", Name: "ar_user_text"},
	"ipblocks":    {ID: "ipb_by", Name: "ipb_by_text"},
	Actor:         {ID: "actor_user", Name: "actor_name"},
}

// Lookup resolves the column pair for a table under the given scheme.
// The actor entry exists only under the actor scheme and is the only
// entry under it.
func Lookup(scheme domain.Scheme, table string) (Columns, error) {
	cols, ok := registry[table]
	if !ok {
		return Columns{}, &domain.UsageError{Msg: fmt.Sprintf("unknown table %q (valid: %s)", table, validNames(scheme))}
	}
	if scheme == domain.SchemeActor && table != Actor {
		return Columns{}, &domain.UsageError{Msg: fmt.Sprintf("table %q is not available under the actor identity scheme", table)}
	}
	if scheme == domain.SchemeLegacy && table == Actor {
		return Columns{}, &domain.UsageError{Msg: "table \"actor\" is not available under the legacy identity scheme"}
	}
	return cols, nil
}

// Select resolves which tables a run covers. Under the actor scheme a
// user-supplied table list is a usage error and the run covers exactly
// the actor relation. Under the legacy scheme an empty request selects
// every legacy table in fixed order; otherwise each requested name is
// validated against the registry.
func Select(scheme domain.Scheme, requested []string) ([]string, error) {
	if scheme == domain.SchemeActor {
		if len(requested) > 0 {
			return nil, &domain.UsageError{Msg: "--tables cannot be combined with the actor identity scheme"}
		}
		return []string{Actor}, nil
	}

	if len(requested) == 0 {
		out := make([]string, len(legacyOrder))
		copy(out, legacyOrder)
		return out, nil
	}

	out := make([]string, 0, len(requested))
	for _, table := range requested {
		if _, err := Lookup(scheme, table); err != nil {
			return nil, err
		}
		out = append(out, table)
	}
	return out, nil
}

// ParseList splits a pipe-separated table list, dropping empty
// segments.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func validNames(scheme domain.Scheme) string {
	if scheme == domain.SchemeActor {
		return Actor
	}
	names := make([]string, len(legacyOrder))
	copy(names, legacyOrder)
	sort.Strings(names)
	return strings.Join(names, ", ")
}
