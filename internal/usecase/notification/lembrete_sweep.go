package notification

import (
	"context"
	"fmt"

	"github.com/picineiros/pool-manager/internal/models"
	"github.com/picineiros/pool-manager/internal/timezone"
)

// LembreteSweep roda uma vez por dia: cria um lembrete para cada
// agendamento pendente caindo no dia de calendário seguinte, no máximo um
// por agendamento. Reexecutar no mesmo dia não duplica nada.
type LembreteSweep struct {
	repo Repository
}

func NewLembreteSweep(repo Repository) *LembreteSweep {
	return &LembreteSweep{repo: repo}
}

// Execute devolve quantos lembretes novos foram criados.
func (uc *LembreteSweep) Execute(ctx context.Context) (int, error) {
	start, end := timezone.DayWindow(timezone.Now().AddDate(0, 0, 1))

	agendamentos, err := uc.repo.ListAgendamentosPendentes(ctx, start, end)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, ag := range agendamentos {
		agendamentoID := ag.ID

		n := &models.Notificacao{
			UsuarioID:     ag.UsuarioID,
			Tipo:          models.NotificacaoAgendamentoLembrete,
			Titulo:        "Lembrete de Agendamento",
			Mensagem:      fmt.Sprintf("Amanhã: %s às %s", ag.Cliente.Nome, ag.DataHora.In(timezone.Location()).Format("15:04")),
			AgendamentoID: &agendamentoID,
		}

		ok, err := uc.repo.GetOrCreateNotificacao(ctx, n)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	return created, nil
}
