package backfill

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/akarlsen/userfill/internal/config"
	"github.com/akarlsen/userfill/internal/domain"
	"github.com/akarlsen/userfill/internal/events"
	"github.com/akarlsen/userfill/internal/store"
	"github.com/akarlsen/userfill/internal/tables"
)

// Runner sequences a full run: one backfill pass per selected table,
// then, only under the actor scheme, the linking pass. A single
// logical worker drives everything; tables are drained strictly in
// order.
type Runner struct {
	cfg     *config.Config
	store   *store.Store
	logger  *log.Logger
	out     io.Writer
	scheme  domain.Scheme
	limiter *rate.Limiter
	audit   *events.Writer
}

// NewRunner builds a Runner from explicit configuration. The identity
// scheme is resolved once here and passed down as a plain value.
func NewRunner(cfg *config.Config, st *store.Store, logger *log.Logger, out io.Writer) (*Runner, error) {
	scheme, err := domain.ParseScheme(cfg.Scheme)
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if cfg.Throttle > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Throttle), 1)
	}

	return &Runner{
		cfg:     cfg,
		store:   st,
		logger:  logger,
		out:     out,
		scheme:  scheme,
		limiter: limiter,
		audit:   events.NewWriter(st.DB().DB),
	}, nil
}

// Scheme returns the resolved identity scheme.
func (r *Runner) Scheme() domain.Scheme {
	return r.scheme
}

// Run executes the whole pass. requested restricts the legacy-scheme
// run to specific tables; combining it with the actor scheme is a
// usage error, raised before anything is written. Store failures are
// fatal; the run is safe to repeat after one because every insert and
// link is individually idempotent.
func (r *Runner) Run(ctx context.Context, requested []string) error {
	selected, err := tables.Select(r.scheme, requested)
	if err != nil {
		return err
	}

	runID := events.NewRunID()
	r.logger.Info("starting run", "run_id", runID, "scheme", r.scheme, "tables", selected)
	if err := r.audit.LogRunStarted(runID, r.scheme, selected); err != nil {
		return err
	}

	opts := Options{
		Store:       r.store,
		Logger:      r.logger,
		Out:         r.out,
		PageSize:    r.cfg.BatchSize,
		ReportEvery: r.cfg.ReportEvery,
		Limiter:     r.limiter,
		Audit:       r.audit,
		RunID:       runID,
	}

	var totals Result
	for _, table := range selected {
		res, err := NewUserBackfill(opts, r.scheme).Run(ctx, table)
		if err != nil {
			return err
		}
		totals.Inserted += res.Inserted
		totals.SkippedIPs += res.SkippedIPs
		if err := r.audit.LogTableCompleted(runID, table, res.Inserted, res.SkippedIPs); err != nil {
			return err
		}
	}

	var linked int
	if r.scheme == domain.SchemeActor {
		res, err := NewActorLinker(opts).Run(ctx)
		if err != nil {
			return err
		}
		linked = res.Linked
	}

	if err := r.audit.LogRunFinished(runID, totals.Inserted, totals.SkippedIPs, linked); err != nil {
		return err
	}
	r.logger.Info("run complete", "run_id", runID,
		"inserted", totals.Inserted, "skipped_ips", totals.SkippedIPs, "linked", linked)
	return nil
}
