package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler refreshes the news digest cache on a cron spec.
type Scheduler struct {
	cron        *cron.Cron
	ctx         context.Context
	cancel      context.CancelFunc
	refreshFunc func(ctx context.Context) error
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Scheduler) SetRefreshFunction(f func(ctx context.Context) error) {
	s.refreshFunc = f
}

// Start registers the refresh job under spec (cron syntax, @every shorthands
// included) and starts the scheduler.
func (s *Scheduler) Start(spec string) error {
	if s.refreshFunc == nil {
		log.Println("⚠️ Refresh function not set, scheduler will not run")
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		if err := s.refreshFunc(s.ctx); err != nil {
			log.Printf("❌ News refresh failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("📅 Scheduler started - news refresh on %q", spec)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("📅 Scheduler stopped")
}
