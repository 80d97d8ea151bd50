// Package pipeline runs one pass: pick the newest listing, extract it, gate it, dispatch it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-superset-notifier/internal/dedup"
	"go-superset-notifier/internal/extract"
	"go-superset-notifier/internal/listing"
	"go-superset-notifier/internal/models"
	"go-superset-notifier/internal/scraper"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, job models.JobRecord) error
}

type Outcome int

const (
	OutcomeNoListings Outcome = iota
	OutcomeDuplicate
	OutcomeDispatched
	OutcomeDryRun
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoListings:
		return "no listings"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeDispatched:
		return "dispatched"
	case OutcomeDryRun:
		return "dry run"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

type Result struct {
	Outcome Outcome
	Job     models.JobRecord
	JobID   string
}

type Options struct {
	// CommitAfterDispatch records the marker only after the required sinks accepted
	// the job. The default records it first, so a failed dispatch is never repeated.
	CommitAfterDispatch bool
	// DryRun extracts and gates but neither commits nor dispatches.
	DryRun bool
}

type Runner struct {
	Portal     scraper.Portal
	Gate       *dedup.Gate
	Dispatcher Dispatcher
	ApplyLink  string
	Now        func() time.Time
	Options    Options
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run executes one pass. "Nothing to do" and duplicates are outcomes, not errors.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	log.Printf("▶️ Starting portal: %s", r.Portal.Name())
	if err := r.Portal.Login(ctx); err != nil {
		return Result{}, fmt.Errorf("login: %w", err)
	}
	if err := r.Portal.OpenJobs(ctx); err != nil {
		return Result{}, fmt.Errorf("open job profiles: %w", err)
	}

	snippets, err := r.Portal.Snippets(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("read job cards: %w", err)
	}

	latest, err := listing.SelectLatest(snippets, r.now())
	if errors.Is(err, listing.ErrNoListings) {
		log.Println("❌ No job cards found.")
		return Result{Outcome: OutcomeNoListings}, nil
	}
	if err != nil {
		return Result{}, err
	}

	log.Printf("🕒 Opening job card %d...", latest.Index+1)
	if err := r.Portal.Open(ctx, latest.Index); err != nil {
		return Result{}, fmt.Errorf("open job card %d: %w", latest.Index+1, err)
	}

	view, err := r.Portal.Detail(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load job detail: %w", err)
	}
	fields, err := extract.Extract(view)
	if err != nil {
		return Result{}, fmt.Errorf("extract job detail: %w", err)
	}

	job := models.JobRecord{
		Company:     fields.Company,
		Location:    fields.Location,
		Category:    fields.Category,
		Role:        fields.Role,
		CTC:         fields.CTC,
		Eligibility: fields.Eligibility,
		ApplyLink:   r.ApplyLink,
		Timestamp:   models.FormatTimestamp(r.now()),
	}

	decision := r.Gate.Check(job)
	res := Result{Job: job, JobID: decision.ID}

	log.Printf("🧩 Company: %s", job.Company)
	log.Printf("🎯 Role: %s", job.Role)
	log.Printf("💸 CTC: %s", job.CTC)
	log.Printf("🆔 currentJobId: %s", decision.ID)

	if decision.Duplicate {
		log.Println("⏸ No new job detected.")
		res.Outcome = OutcomeDuplicate
		return res, nil
	}
	log.Println("🆕 New job detected. Proceeding...")

	if r.Options.DryRun {
		log.Printf("🧪 Dry run: %+v", job)
		res.Outcome = OutcomeDryRun
		return res, nil
	}

	if !r.Options.CommitAfterDispatch {
		if err := r.Gate.Commit(decision); err != nil {
			return res, err
		}
	}

	if err := r.Dispatcher.Dispatch(ctx, job); err != nil {
		return res, fmt.Errorf("dispatch: %w", err)
	}

	if r.Options.CommitAfterDispatch {
		if err := r.Gate.Commit(decision); err != nil {
			return res, err
		}
	}

	log.Println("✅ Done")
	res.Outcome = OutcomeDispatched
	return res, nil
}
