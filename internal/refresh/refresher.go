package refresh

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/service"
)

// jobTimeout bounds one refresh run: worst case the orchestrator spends the
// watchdog plus three 30s attempts plus backoff, so give it room beyond that.
const jobTimeout = 2 * time.Minute

// Refresher periodically warms the recommendation cache so clients opening
// the app get instant content while a live fetch runs. Both operation
// variants (personalized and defaults) are warmed concurrently.
type Refresher struct {
	cron *cron.Cron
	svc  *service.RecommendationService
	spec string
}

// NewRefresher creates a refresher on the given cron spec (robfig v3 syntax,
// e.g. "@every 15m").
func NewRefresher(svc *service.RecommendationService, spec string) *Refresher {
	return &Refresher{
		cron: cron.New(),
		svc:  svc,
		spec: spec,
	}
}

// Start schedules the refresh job and begins running it. The first run
// happens on schedule, not immediately.
func (r *Refresher) Start() error {
	if _, err := r.cron.AddFunc(r.spec, r.run); err != nil {
		return err
	}
	r.cron.Start()
	log.Printf("Recommendation refresher scheduled: %s", r.spec)
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, useDefaults := range []bool{false, true} {
		g.Go(func() error {
			return r.svc.Refresh(gctx, useDefaults)
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("Recommendation refresh failed: %v", err)
		return
	}
	log.Printf("Recommendation cache refreshed")
}
