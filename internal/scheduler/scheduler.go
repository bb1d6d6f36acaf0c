// Package scheduler runs the periodic maintenance jobs. Today that is a
// single hourly sweep flipping past-due sent invoices to overdue.
package scheduler

import (
	"context"
	"time"

	invoicedomain "github.com/facturio/facturio/internal/invoice/domain"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const overdueSpec = "@hourly"

type Params struct {
	fx.In

	Log      *zap.Logger
	Invoices invoicedomain.Service
}

type Scheduler struct {
	cron     *cron.Cron
	log      *zap.Logger
	invoices invoicedomain.Service
}

func New(p Params) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		log:      p.Log.Named("scheduler"),
		invoices: p.Invoices,
	}
	if _, err := s.cron.AddFunc(overdueSpec, s.sweepOverdue); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", zap.String("overdue_sweep", overdueSpec))
}

// Stop waits for an in-flight sweep to finish before returning.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) sweepOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	affected, err := s.invoices.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("overdue sweep failed", zap.Error(err))
		return
	}
	if affected > 0 {
		s.log.Info("overdue sweep done", zap.Int64("affected", affected))
	}
}
