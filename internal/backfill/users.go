package backfill

import (
	"context"
	"fmt"
	"time"

	"github.com/akarlsen/userfill/internal/cursor"
	"github.com/akarlsen/userfill/internal/domain"
	"github.com/akarlsen/userfill/internal/names"
	"github.com/akarlsen/userfill/internal/tables"
)

// Result summarizes one backfill pass over a source table.
type Result struct {
	Inserted   int
	SkippedIPs int
}

// UserBackfill scans a source table for identifiers with no canonical
// user record and inserts stub accounts for them.
type UserBackfill struct {
	opts   Options
	scheme domain.Scheme
}

// NewUserBackfill creates a backfill driver for the given scheme.
func NewUserBackfill(opts Options, scheme domain.Scheme) *UserBackfill {
	opts.setDefaults()
	return &UserBackfill{opts: opts, scheme: scheme}
}

// Run drains the given source table. Rows whose display name is
// IP-shaped are skipped; identifier conflicts are silently dropped by
// the store. The pass is idempotent: rows already backed by a
// canonical user never reach the scan.
func (b *UserBackfill) Run(ctx context.Context, table string) (Result, error) {
	cols, err := tables.Lookup(b.scheme, table)
	if err != nil {
		return Result{}, err
	}

	fetch := func(after int64, limit int) ([]cursor.Row, error) {
		if err := b.opts.wait(ctx); err != nil {
			return nil, err
		}
		return b.opts.Store.Sources.MissingUsers(table, cols, after, limit)
	}

	scanner, err := cursor.NewScanner(fetch, b.opts.PageSize)
	if err != nil {
		return Result{}, err
	}

	b.opts.Logger.Debug("starting backfill pass", "table", table, "page_size", b.opts.PageSize)

	var res Result
	err = scanner.Each(func(row cursor.Row) error {
		if names.IsIP(row.Name) {
			// Anonymous activity, not an account.
			res.SkippedIPs++
			return nil
		}

		inserted, err := b.opts.Store.Users.InsertStub(row.ID, row.Name, time.Now())
		if err != nil {
			return err
		}
		if !inserted {
			// An earlier table already claimed this identifier under a
			// different historical name; the existing record wins.
			b.opts.Logger.Debug("identifier already claimed", "table", table, "user_id", row.ID, "name", row.Name)
			return nil
		}

		res.Inserted++
		if res.Inserted%b.opts.ReportEvery == 0 {
			fmt.Fprintf(b.opts.Out, "... %d users inserted from %s\n", res.Inserted, table)
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("backfill over %s: %w", table, err)
	}

	fmt.Fprintf(b.opts.Out, "Added %d users from %s (%d IP names skipped)\n", res.Inserted, table, res.SkippedIPs)
	return res, nil
}
