// Package dispatcher runs the periodic due-post scan. One cron entry sweeps
// every scheduled post whose wall-clock instant has passed, instead of
// keeping a per-post job store.
package dispatcher

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"media-planner/logger"
	"media-planner/services"
)

type Dispatcher struct {
	cron *cron.Cron
	svc  *services.PostService
}

// New builds a dispatcher ticking on the given cron schedule in loc. The
// schedule uses standard five-field cron syntax, e.g. "* * * * *".
func New(svc *services.PostService, schedule string, loc *time.Location) (*Dispatcher, error) {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc))

	d := &Dispatcher{cron: c, svc: svc}
	if _, err := c.AddFunc(schedule, d.scan); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dispatcher) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	result, err := d.svc.CheckPending(ctx)
	if err != nil {
		logger.ErrorWithFields("dispatcher scan failed", logger.Fields{
			"error": err.Error(),
		})
		return
	}
	if result.TotalPending == 0 {
		return
	}
	logger.InfoWithFields("dispatcher scan completed", logger.Fields{
		"checked_at": result.CheckedAt,
		"pending":    result.TotalPending,
		"published":  result.Published,
		"failed":     result.Failed,
		"duration":   time.Since(start).String(),
	})
}

// Start begins the periodic scans.
func (d *Dispatcher) Start() {
	d.cron.Start()
}

// Stop halts scheduling and returns a context that is done once running
// scans finish.
func (d *Dispatcher) Stop() context.Context {
	return d.cron.Stop()
}
