package backfill

import (
	"context"
	"fmt"

	"github.com/akarlsen/userfill/internal/cursor"
)

// LinkResult summarizes one actor linking pass.
type LinkResult struct {
	Linked int
}

// ActorLinker scans actor rows with no owning user and links each one
// to the canonical stub account matching its name, if any exists.
type ActorLinker struct {
	opts Options
}

// NewActorLinker creates a linking driver.
func NewActorLinker(opts Options) *ActorLinker {
	opts.setDefaults()
	return &ActorLinker{opts: opts}
}

// Run drains the actor table. Only accounts with an empty stored
// credential are link targets; ties break to the lowest user_id.
// Actors with no match are left untouched and picked up again by a
// future run.
func (l *ActorLinker) Run(ctx context.Context) (LinkResult, error) {
	fetch := func(after int64, limit int) ([]cursor.Row, error) {
		if err := l.opts.wait(ctx); err != nil {
			return nil, err
		}
		return l.opts.Store.Actors.Unlinked(after, limit)
	}

	scanner, err := cursor.NewScanner(fetch, l.opts.PageSize)
	if err != nil {
		return LinkResult{}, err
	}

	l.opts.Logger.Debug("starting linking pass", "page_size", l.opts.PageSize)

	var res LinkResult
	err = scanner.Each(func(row cursor.Row) error {
		userID, ok, err := l.opts.Store.Users.FindStubByName(row.Name)
		if err != nil {
			return err
		}
		if !ok {
			l.opts.Logger.Debug("no stub account for actor", "actor_id", row.ID, "name", row.Name)
			return nil
		}

		changed, err := l.opts.Store.Actors.Link(row.ID, userID)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}

		l.opts.Logger.Info("linked actor", "actor_id", row.ID, "name", row.Name, "user_id", userID)
		if l.opts.Audit != nil {
			if err := l.opts.Audit.LogActorLinked(l.opts.RunID, row.ID, userID); err != nil {
				return err
			}
		}

		res.Linked++
		if res.Linked%l.opts.ReportEvery == 0 {
			fmt.Fprintf(l.opts.Out, "... %d actors linked\n", res.Linked)
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("actor linking: %w", err)
	}

	fmt.Fprintf(l.opts.Out, "Linked %d actors\n", res.Linked)
	return res, nil
}
