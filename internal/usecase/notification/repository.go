package notification

import (
	"context"
	"time"

	"github.com/picineiros/pool-manager/internal/models"
)

type Repository interface {
	// -------- Notificação --------
	CreateNotificacao(
		ctx context.Context,
		n *models.Notificacao,
	) error

	// GetOrCreateNotificacao insere a notificação apenas se ainda não
	// existir uma com a mesma chave (usuário, tipo, origem). É a única
	// proteção contra varridas repetidas ou sobrepostas.
	GetOrCreateNotificacao(
		ctx context.Context,
		n *models.Notificacao,
	) (created bool, err error)

	// -------- Alvos das varridas --------
	ListAgendamentosPendentes(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Agendamento, error)

	ListFinanceirosPendentes(
		ctx context.Context,
		from time.Time,
		until time.Time,
	) ([]models.Financeiro, error)
}
