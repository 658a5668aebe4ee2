package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/panuwat/gacp-certification/internal/domain/workflow"
	"github.com/panuwat/gacp-certification/internal/metrics"
	"github.com/panuwat/gacp-certification/internal/repository"
	"github.com/panuwat/gacp-certification/internal/workflow"
	"go.uber.org/zap"
)

// ReviewIntakeConfig holds intake worker tuning.
type ReviewIntakeConfig struct {
	Interval  time.Duration
	BatchSize int
}

// ReviewIntake moves submitted applications into under_review. The edge is
// SYSTEM-owned: submission lands in a queue and this worker is the queue
// consumer.
type ReviewIntake struct {
	config  ReviewIntakeConfig
	appRepo *repository.ApplicationRepository
	engine  *workflow.Engine
	metrics *metrics.Metrics
	logger  *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewReviewIntake creates a review intake worker.
func NewReviewIntake(cfg ReviewIntakeConfig, appRepo *repository.ApplicationRepository, engine *workflow.Engine, m *metrics.Metrics, logger *zap.Logger) *ReviewIntake {
	return &ReviewIntake{
		config:  cfg,
		appRepo: appRepo,
		engine:  engine,
		metrics: m,
		logger:  logger,
	}
}

// Name implements Worker.
func (w *ReviewIntake) Name() string { return "review-intake" }

// Start implements Worker.
func (w *ReviewIntake) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("review intake already running")
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	w.running = true

	go w.loop(ctx)
	return nil
}

// Stop implements Worker and blocks until the loop exits.
func (w *ReviewIntake) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.cancel()
	done := w.done
	w.running = false
	w.mu.Unlock()

	<-done
}

func (w *ReviewIntake) loop(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.intake()
		}
	}
}

func (w *ReviewIntake) intake() {
	submitted, err := w.appRepo.ListByStatus(domain.StateSubmitted.String(), w.config.BatchSize)
	if err != nil {
		w.logger.Error("Failed to list submitted applications", zap.Error(err))
		return
	}

	for _, app := range submitted {
		if _, err := w.engine.Transition(app.ID, domain.StateUnderReview, domain.RoleSystem, nil, "picked up for review"); err != nil {
			w.logger.Error("Failed to move application into review",
				zap.Int64("application_id", app.ID),
				zap.Error(err))
			continue
		}

		if w.metrics != nil {
			w.metrics.ReviewIntakes.Inc()
		}
		w.logger.Info("Application entered review", zap.Int64("application_id", app.ID))
	}
}
