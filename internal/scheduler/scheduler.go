package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler fires the broadcast at the start of every hour.
type Scheduler struct {
	cron          *cron.Cron
	ctx           context.Context
	cancel        context.CancelFunc
	broadcastFunc func(ctx context.Context)
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetBroadcastFunction устанавливает функцию рассылки по расписаниям
func (s *Scheduler) SetBroadcastFunction(f func(ctx context.Context)) {
	s.broadcastFunc = f
}

func (s *Scheduler) Start() error {
	if s.broadcastFunc == nil {
		log.Println("⚠️ Broadcast function not set, scheduler will not send motivations")
		return nil
	}

	// В начале каждого часа
	_, err := s.cron.AddFunc("0 * * * *", func() {
		log.Println("⏰ Triggered hourly motivation broadcast")
		s.broadcastFunc(s.ctx)
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("📅 Scheduler started - motivations are checked every hour")
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
