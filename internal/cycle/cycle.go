// Package cycle drives the fetch-diff-notify-commit pass over all
// configured filters.
package cycle

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"yad2watch/internal/diff"
	"yad2watch/internal/fetcher"
	"yad2watch/internal/model"
	"yad2watch/internal/notify"
)

// Fetcher retrieves raw listing payloads for one filter.
type Fetcher interface {
	Fetch(ctx context.Context, flt model.Filter) ([]fetcher.RawListing, error)
}

// Sender delivers one rendered notification.
type Sender interface {
	Send(text string) error
}

// States loads and saves per-filter snapshots.
type States interface {
	Load(ctx context.Context, filterName string) (model.FilterState, error)
	Save(ctx context.Context, filterName string, st model.FilterState) error
}

// Runner orchestrates cycles. Filters are processed sequentially; each
// filter's failure is isolated into its CycleResult and never aborts the
// others.
type Runner struct {
	fetch        Fetcher
	states       States
	sender       Sender
	log          *slog.Logger
	notifyOnSeed bool
	now          func() time.Time
}

// New creates a Runner. With notifyOnSeed false a filter's first ever cycle
// commits its snapshot silently and notifications start from the second
// cycle.
func New(fetch Fetcher, states States, sender Sender, notifyOnSeed bool, log *slog.Logger) *Runner {
	return &Runner{
		fetch:        fetch,
		states:       states,
		sender:       sender,
		log:          log,
		notifyOnSeed: notifyOnSeed,
		now:          time.Now,
	}
}

// RunCycle executes one full pass and returns a result per filter, in
// filter order. An empty filter list is a no-op, not an error.
func (r *Runner) RunCycle(ctx context.Context, filters []model.Filter) []model.CycleResult {
	results := make([]model.CycleResult, 0, len(filters))
	for _, flt := range filters {
		if ctx.Err() != nil {
			break
		}
		results = append(results, r.runFilter(ctx, flt))
	}
	return results
}

func (r *Runner) runFilter(ctx context.Context, flt model.Filter) model.CycleResult {
	res := model.CycleResult{Filter: flt.Name}

	raw, err := r.fetch.Fetch(ctx, flt)
	if err != nil {
		switch {
		case errors.Is(err, fetcher.ErrRateLimited):
			r.log.Warn("fetch blocked, backing off until next cycle", "filter", flt.Name, "error", err)
		case errors.Is(err, fetcher.ErrBadResponse):
			r.log.Error("response shape changed", "filter", flt.Name, "error", err)
		default:
			r.log.Warn("fetch failed", "filter", flt.Name, "error", err)
		}
		res.Err = err
		return res
	}
	res.Fetched = len(raw)

	listings := make([]model.Listing, 0, len(raw))
	for _, rl := range raw {
		l, err := fetcher.Normalize(rl)
		if err != nil {
			r.log.Warn("skipping malformed listing", "filter", flt.Name, "error", err)
			res.Skipped++
			continue
		}
		listings = append(listings, l)
	}

	prev, err := r.states.Load(ctx, flt.Name)
	if err != nil {
		r.log.Error("load state", "filter", flt.Name, "error", err)
		res.Err = err
		return res
	}
	firstRun := prev.UpdatedAt.IsZero()

	next, added := diff.Apply(prev, listings, r.now())
	res.New = added

	if firstRun && !r.notifyOnSeed {
		if len(added) > 0 {
			r.log.Info("seeding new filter without notifications", "filter", flt.Name, "listings", len(added))
		}
	} else {
		for _, l := range added {
			if err := r.sender.Send(notify.Render(flt.Name, l)); err != nil {
				r.log.Warn("notification failed", "filter", flt.Name, "listing", l.ID, "error", err)
				continue
			}
			res.Notified++
		}
	}

	// Commit happens last. Notifications are already out, so a failure here
	// risks re-notifying next cycle and is logged at error severity.
	if err := r.states.Save(ctx, flt.Name, next); err != nil {
		r.log.Error("state not committed, duplicate notifications possible next cycle",
			"filter", flt.Name, "error", err)
		res.Err = err
		return res
	}

	r.log.Info("filter cycle done",
		"filter", flt.Name, "fetched", res.Fetched, "new", len(res.New), "notified", res.Notified)
	return res
}

// Summarize reduces per-filter results to the aggregate cycle status.
func Summarize(results []model.CycleResult) model.Status {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	switch {
	case failed == 0:
		return model.StatusDone
	case failed == len(results):
		return model.StatusFailed
	default:
		return model.StatusDegraded
	}
}
