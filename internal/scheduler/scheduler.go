package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	notification "github.com/picineiros/pool-manager/internal/usecase/notification"
)

// Scheduler registra as duas varridas diárias de notificação. Cada job é
// reentrante e idempotente; não há lock de exclusão mútua entre execuções.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

func New(lembrete *notification.LembreteSweep, vencimento *notification.VencimentoSweep, log *zap.Logger) *Scheduler {
	c := cron.New()

	c.AddFunc("0 8 * * *", func() {
		n, err := lembrete.Execute(context.Background())
		if err != nil {
			log.Error("lembrete sweep failed", zap.Error(err))
			return
		}
		log.Info("lembrete sweep done", zap.Int("created", n))
	})

	c.AddFunc("0 9 * * *", func() {
		n, err := vencimento.Execute(context.Background())
		if err != nil {
			log.Error("vencimento sweep failed", zap.Error(err))
			return
		}
		log.Info("vencimento sweep done", zap.Int("created", n))
	})

	return &Scheduler{cron: c, log: log}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
