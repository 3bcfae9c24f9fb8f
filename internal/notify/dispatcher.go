package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	notification "github.com/picineiros/pool-manager/internal/usecase/notification"
)

type Event struct {
	UsuarioID     uuid.UUID
	AgendamentoID uuid.UUID
	ClienteNome   string
	DataHora      time.Time
}

// Dispatcher desacopla a criação da notificação do request que criou o
// agendamento: o handler enfileira e segue; falha aqui nunca falha o POST.
type Dispatcher struct {
	uc    *notification.AgendamentoCriado
	queue chan Event
	log   *zap.Logger
}

func NewDispatcher(uc *notification.AgendamentoCriado, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		uc:    uc,
		queue: make(chan Event, 100),
		log:   log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		err := d.uc.Execute(context.Background(), notification.AgendamentoCriadoInput{
			UsuarioID:     ev.UsuarioID,
			AgendamentoID: ev.AgendamentoID,
			ClienteNome:   ev.ClienteNome,
			DataHora:      ev.DataHora,
		})
		if err != nil {
			d.log.Error("notification error",
				zap.String("agendamento_id", ev.AgendamentoID.String()),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos a notificação (nunca quebrar a API)
		d.log.Warn("notification queue full, dropping event",
			zap.String("agendamento_id", ev.AgendamentoID.String()),
		)
	}
}
