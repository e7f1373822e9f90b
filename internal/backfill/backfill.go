// Package backfill implements the two driver passes over the wiki
// database — stub-user backfill and actor linking — and the runner
// that sequences them.
package backfill

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/akarlsen/userfill/internal/events"
	"github.com/akarlsen/userfill/internal/store"
)

// Options carries the collaborators shared by both drivers.
type Options struct {
	Store  *store.Store
	Logger *log.Logger

	// Out receives human-readable progress and completion messages.
	// Defaults to stdout.
	Out io.Writer

	// PageSize is the number of rows fetched per page.
	PageSize int

	// ReportEvery is the progress-report cadence, counted in effective
	// insertions or links.
	ReportEvery int

	// Limiter, when set, paces page fetches.
	Limiter *rate.Limiter

	// Audit, when set, records table completions and links under RunID.
	Audit *events.Writer

	RunID string
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.New(os.Stderr)
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.PageSize < 1 {
		o.PageSize = 100
	}
	if o.ReportEvery < 1 {
		o.ReportEvery = 500
	}
}

// wait blocks until the limiter admits the next page fetch.
func (o *Options) wait(ctx context.Context) error {
	if o.Limiter == nil {
		return nil
	}
	return o.Limiter.Wait(ctx)
}
