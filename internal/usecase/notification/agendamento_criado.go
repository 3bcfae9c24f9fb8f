package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/picineiros/pool-manager/internal/models"
	"github.com/picineiros/pool-manager/internal/timezone"
)

type AgendamentoCriadoInput struct {
	UsuarioID     uuid.UUID
	AgendamentoID uuid.UUID
	ClienteNome   string
	DataHora      time.Time
}

// AgendamentoCriado grava a notificação imediata disparada na criação de
// um agendamento.
type AgendamentoCriado struct {
	repo Repository
}

func NewAgendamentoCriado(repo Repository) *AgendamentoCriado {
	return &AgendamentoCriado{repo: repo}
}

func (uc *AgendamentoCriado) Execute(ctx context.Context, in AgendamentoCriadoInput) error {
	agendamentoID := in.AgendamentoID

	n := &models.Notificacao{
		UsuarioID:     in.UsuarioID,
		Tipo:          models.NotificacaoAgendamentoCriado,
		Titulo:        "Novo Agendamento Criado",
		Mensagem:      fmt.Sprintf("Agendamento para %s em %s", in.ClienteNome, in.DataHora.In(timezone.Location()).Format("02/01/2006 15:04")),
		AgendamentoID: &agendamentoID,
	}

	return uc.repo.CreateNotificacao(ctx, n)
}
