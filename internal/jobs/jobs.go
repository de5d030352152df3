package jobs

import (
	"context"
	"errors"
	"hotelbooker/config"
	"hotelbooker/infras/otel"
	bookingService "hotelbooker/internal/domains/booking/service"
	"hotelbooker/shared/constant"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

var ErrInvalidSchedule = errors.New("invalid reconcile schedule")

// Scheduler runs background jobs on cron schedules.
type Scheduler struct {
	cron    *cron.Cron
	booking bookingService.Booking
	cfg     *config.Config
	otel    otel.Otel
}

func New(cfg *config.Config, booking bookingService.Booking, otel otel.Otel) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger), cron.Recover(cron.DiscardLogger))),
		booking: booking,
		cfg:     cfg,
		otel:    otel,
	}
}

// Start registers the enabled jobs and starts the scheduler. It is a no-op
// when no job is enabled.
func (s *Scheduler) Start() error {
	if !s.cfg.Booking.Reconcile.Enable {
		log.Info().Msg("pending booking reconciliation is disabled")

		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.Booking.Reconcile.Schedule, s.ReconcilePendingBookings)
	if err != nil {
		return errors.Join(ErrInvalidSchedule, err)
	}

	s.cron.Start()

	log.Info().Str("schedule", s.cfg.Booking.Reconcile.Schedule).Msg("pending booking reconciliation scheduled")

	return nil
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		log.Warn().Msg("scheduler stopped before running jobs finished")
	}
}

func (s *Scheduler) ReconcilePendingBookings() {
	ctx, scope := s.otel.NewScope(context.Background(), constant.OtelJobScopeName, constant.OtelJobScopeName+".ReconcilePendingBookings")
	defer scope.End()

	start := time.Now()

	settled, err := s.booking.ReconcilePending(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile pending bookings")

		return
	}

	log.Info().Int("settled", settled).Dur("took", time.Since(start)).Msg("pending bookings reconciled")
}
