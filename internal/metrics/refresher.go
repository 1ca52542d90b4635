package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/nekogravitycat/smart-parking-backend/internal/slot"
)

// SlotCounter is implemented by slot.Repository.
type SlotCounter interface {
	CountByStatus(ctx context.Context) (map[slot.Status]int, error)
}

// Refresher periodically copies slot counts from storage into the gauge.
type Refresher struct {
	counter SlotCounter
	metrics *Metrics
	logger  *zap.Logger
	timeout time.Duration
	cron    *cron.Cron
}

func NewRefresher(counter SlotCounter, m *Metrics, logger *zap.Logger) *Refresher {
	return &Refresher{
		counter: counter,
		metrics: m,
		logger:  logger.Named("metrics"),
		timeout: 10 * time.Second,
		cron:    cron.New(),
	}
}

// Refresh runs one update.
func (r *Refresher) Refresh(ctx context.Context) error {
	counts, err := r.counter.CountByStatus(ctx)
	if err != nil {
		return fmt.Errorf("refresh slot gauge failed: %w", err)
	}
	r.metrics.SetSlotCounts(counts)
	return nil
}

// Start schedules Refresh on spec (standard five-field cron syntax or a
// descriptor such as "@every 30s") and runs it once immediately.
func (r *Refresher) Start(spec string) error {
	job := func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.Refresh(ctx); err != nil {
			r.logger.Warn("slot gauge refresh failed", zap.Error(err))
		}
	}

	if _, err := r.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("invalid metrics refresh schedule %q: %w", spec, err)
	}
	job()
	r.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}
