package notification

import (
	"context"
	"fmt"

	"github.com/picineiros/pool-manager/internal/models"
	"github.com/picineiros/pool-manager/internal/timezone"
)

// VencimentoSweep roda uma vez por dia sobre os lançamentos pendentes com
// vencimento entre hoje e hoje+3 dias: vencimento no futuro gera aviso de
// vencimento, vencimento hoje ou no passado gera aviso de vencido.
// Idempotente por (usuário, tipo, lançamento).
type VencimentoSweep struct {
	repo Repository
}

func NewVencimentoSweep(repo Repository) *VencimentoSweep {
	return &VencimentoSweep{repo: repo}
}

func (uc *VencimentoSweep) Execute(ctx context.Context) (int, error) {
	hoje := timezone.StartOfDay(timezone.Now())
	// O dia hoje+3 entra inteiro, qualquer que seja a hora do vencimento.
	_, limite := timezone.DayWindow(hoje.AddDate(0, 0, 3))

	financeiros, err := uc.repo.ListFinanceirosPendentes(ctx, hoje, limite)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, f := range financeiros {
		financeiroID := f.ID

		tipo := models.NotificacaoFinanceiroVencimento
		titulo := "Vencimento Financeiro"
		if !timezone.StartOfDay(f.DataVencimento).After(hoje) {
			tipo = models.NotificacaoFinanceiroVencido
			titulo = "Financeiro Vencido"
		}

		n := &models.Notificacao{
			UsuarioID:    f.UsuarioID,
			Tipo:         tipo,
			Titulo:       titulo,
			Mensagem:     fmt.Sprintf("%s - R$ %.2f - Vencimento: %s", f.Cliente.Nome, f.Valor, f.DataVencimento.In(timezone.Location()).Format("02/01/2006")),
			FinanceiroID: &financeiroID,
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
