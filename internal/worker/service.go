package worker

import (
	"context"
	"errors"
	"time"

	"github.com/heatspares-next/internal/config"
	"github.com/heatspares-next/internal/logger"
	"github.com/heatspares-next/internal/queue"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

const (
	// midnightSpec runs right after the day rolls over, local time.
	midnightSpec = "0 0 * * *"
	// expiredOrderSweepSpec is the safety net behind the per-order delayed
	// cancellation tasks.
	expiredOrderSweepSpec = "*/10 * * * *"

	expiredOrderSweepBatch = 100
)

// Service runs the asynq consumer together with the cron maintenance jobs.
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	cron     *cron.Cron
	consumer *Consumer
}

// NewService creates the background worker service.
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	s := &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		cron:     cron.New(cron.WithLocation(time.Local)),
		consumer: consumer,
	}
	if err := s.registerCronJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the service name.
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the consumer; blocks until the server stops.
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	_ = ctx
	if s.cron != nil {
		s.cron.Start()
	}
	return s.server.Run(s.mux)
}

// Stop shuts down the consumer and the cron scheduler.
func (s *Service) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	if s.cron != nil {
		stopped := s.cron.Stop()
		select {
		case <-stopped.Done():
		case <-ctx.Done():
		}
	}
	if s.server != nil {
		s.server.Shutdown()
	}
	return nil
}

func (s *Service) registerCronJobs() error {
	if _, err := s.cron.AddFunc(midnightSpec, s.runMidnightMaintenance); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(expiredOrderSweepSpec, s.runExpiredOrderSweep); err != nil {
		return err
	}
	return nil
}

// runMidnightMaintenance closes out yesterday's schedules and resets every
// provider's daily order counter.
func (s *Service) runMidnightMaintenance() {
	if s == nil || s.consumer == nil || s.consumer.Container == nil {
		return
	}
	today := time.Now().Format("2006-01-02")

	swept, err := s.consumer.ScheduleRepo.SweepPastScheduled(today)
	if err != nil {
		logger.Warnw("worker_schedule_sweep_failed", "error", err)
	} else if swept > 0 {
		logger.Infow("worker_schedule_sweep_done", "completed", swept)
	}

	reset, err := s.consumer.ProviderRepo.ResetDailyOrders()
	if err != nil {
		logger.Warnw("worker_daily_orders_reset_failed", "error", err)
	} else {
		logger.Infow("worker_daily_orders_reset_done", "providers", reset)
	}
}

func (s *Service) runExpiredOrderSweep() {
	if s == nil || s.consumer == nil || s.consumer.OrderService == nil {
		return
	}
	cancelled, err := s.consumer.OrderService.CancelExpired(expiredOrderSweepBatch)
	if err != nil {
		logger.Warnw("worker_expired_order_sweep_failed", "error", err)
		return
	}
	if cancelled > 0 {
		logger.Infow("worker_expired_order_sweep_done", "cancelled", cancelled)
	}
}
