package sink

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-superset-notifier/internal/models"

	"golang.org/x/time/rate"
)

// Sink receives finalized job records.
type Sink interface {
	Name() string
	Send(ctx context.Context, job models.JobRecord) error
}

// Dispatcher pushes one record to every sink exactly once.
// A Required failure aborts the dispatch; BestEffort failures are logged and dropped.
type Dispatcher struct {
	Required   []Sink
	BestEffort []Sink
	limiter    *rate.Limiter
}

func NewDispatcher(required, bestEffort []Sink, spacing time.Duration) *Dispatcher {
	limit := rate.Inf
	if spacing > 0 {
		limit = rate.Every(spacing)
	}
	return &Dispatcher{
		Required:   required,
		BestEffort: bestEffort,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Dispatch returns the first Required sink error. Best-effort sinks still run
// only when every Required sink succeeded.
func (d *Dispatcher) Dispatch(ctx context.Context, job models.JobRecord) error {
	for _, s := range d.Required {
		if err := d.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := s.Send(ctx, job); err != nil {
			return fmt.Errorf("%s: %w", s.Name(), err)
		}
		log.Printf("📄 Job sent to %s", s.Name())
	}

	for _, s := range d.BestEffort {
		if err := d.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := s.Send(ctx, job); err != nil {
			log.Printf("❌ Failed to send to %s: %v", s.Name(), err)
			continue
		}
		log.Printf("🚀 Sent to %s", s.Name())
	}
	return nil
}
