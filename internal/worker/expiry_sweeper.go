package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domain "github.com/panuwat/gacp-certification/internal/domain/workflow"
	"github.com/panuwat/gacp-certification/internal/metrics"
	"github.com/panuwat/gacp-certification/internal/repository"
	"github.com/panuwat/gacp-certification/internal/workflow"
	"go.uber.org/zap"
)

// ExpirySweeperConfig holds sweeper tuning.
type ExpirySweeperConfig struct {
	Interval  time.Duration
	BatchSize int
}

// ExpirySweeper periodically drives overdue applications into the expired
// state with the SYSTEM role. Refusals (e.g. the application moved on
// between the query and the transition) are logged and skipped, not fatal.
type ExpirySweeper struct {
	config  ExpirySweeperConfig
	appRepo *repository.ApplicationRepository
	engine  *workflow.Engine
	metrics *metrics.Metrics
	logger  *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewExpirySweeper creates an expiry sweeper.
func NewExpirySweeper(cfg ExpirySweeperConfig, appRepo *repository.ApplicationRepository, engine *workflow.Engine, m *metrics.Metrics, logger *zap.Logger) *ExpirySweeper {
	return &ExpirySweeper{
		config:  cfg,
		appRepo: appRepo,
		engine:  engine,
		metrics: m,
		logger:  logger,
	}
}

// Name implements Worker.
func (s *ExpirySweeper) Name() string { return "expiry-sweeper" }

// Start implements Worker.
func (s *ExpirySweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("expiry sweeper already running")
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.running = true

	go s.loop(ctx)
	return nil
}

// Stop implements Worker and blocks until the loop exits.
func (s *ExpirySweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	done := s.done
	s.running = false
	s.mu.Unlock()

	<-done
}

func (s *ExpirySweeper) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *ExpirySweeper) sweep() {
	overdue, err := s.appRepo.ListOverdue(time.Now(), s.config.BatchSize)
	if err != nil {
		s.logger.Error("Failed to list overdue applications", zap.Error(err))
		return
	}

	for _, app := range overdue {
		_, err := s.engine.Transition(app.ID, domain.StateExpired, domain.RoleSystem, nil, "timeout window elapsed")
		if err != nil {
			if errors.Is(err, workflow.ErrApplicationNotFound) {
				continue
			}
			if te, ok := workflow.AsTransitionError(err); ok {
				s.logger.Debug("Skipping application no longer eligible for expiry",
					zap.Int64("application_id", app.ID),
					zap.String("code", string(te.Code)))
				continue
			}
			s.logger.Error("Failed to expire application",
				zap.Int64("application_id", app.ID),
				zap.Error(err))
			continue
		}

		if s.metrics != nil {
			s.metrics.ExpirationsSwept.Inc()
		}
		s.logger.Info("Application expired",
			zap.Int64("application_id", app.ID),
			zap.String("previous_status", app.Status))
	}
}
