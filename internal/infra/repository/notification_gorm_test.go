package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/picineiros/pool-manager/internal/db"
	"github.com/picineiros/pool-manager/internal/models"
	"github.com/picineiros/pool-manager/internal/timezone"
	"github.com/picineiros/pool-manager/internal/usecase/notification"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func seedUsuarioCliente(t *testing.T, db *gorm.DB) (*models.User, *models.Cliente) {
	t.Helper()

	user := &models.User{Email: "dono@piscinas.com", PasswordHash: "hash", IsActive: true}
	require.NoError(t, db.Create(user).Error)

	cliente := &models.Cliente{UsuarioID: user.ID, Nome: "Cliente Varredura", Ativo: true}
	require.NoError(t, db.Create(cliente).Error)

	return user, cliente
}

func contarNotificacoes(t *testing.T, db *gorm.DB, tipo string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Notificacao{}).Where("tipo = ?", tipo).Count(&count).Error)
	return count
}

func TestGetOrCreateNotificacaoIdempotente(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewNotificationGormRepository(db)
	user, cliente := seedUsuarioCliente(t, db)

	agendamento := &models.Agendamento{
		UsuarioID: user.ID,
		ClienteID: cliente.ID,
		DataHora:  time.Now().Add(24 * time.Hour),
		Status:    models.AgendamentoPendente,
		Ativo:     true,
	}
	require.NoError(t, db.Create(agendamento).Error)

	n := func() *models.Notificacao {
		id := agendamento.ID
		return &models.Notificacao{
			UsuarioID:     user.ID,
			Tipo:          models.NotificacaoAgendamentoLembrete,
			Titulo:        "Lembrete de Agendamento",
			Mensagem:      "Amanhã",
			AgendamentoID: &id,
		}
	}

	created, err := repo.GetOrCreateNotificacao(context.Background(), n())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.GetOrCreateNotificacao(context.Background(), n())
	require.NoError(t, err)
	assert.False(t, created)

	assert.EqualValues(t, 1, contarNotificacoes(t, db, models.NotificacaoAgendamentoLembrete))
}

func TestLembreteSweepIdempotente(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewNotificationGormRepository(db)
	user, cliente := seedUsuarioCliente(t, db)
	sweep := notification.NewLembreteSweep(repo)

	amanha := timezone.StartOfDay(timezone.Now()).AddDate(0, 0, 1).Add(10 * time.Hour)

	alvos := []models.Agendamento{
		// Qualifica: pendente, ativo, amanhã.
		{UsuarioID: user.ID, ClienteID: cliente.ID, DataHora: amanha, Status: models.AgendamentoPendente, Ativo: true},
		// Fora da janela.
		{UsuarioID: user.ID, ClienteID: cliente.ID, DataHora: amanha.AddDate(0, 0, 5), Status: models.AgendamentoPendente, Ativo: true},
		// Já confirmado: sem lembrete.
		{UsuarioID: user.ID, ClienteID: cliente.ID, DataHora: amanha, Status: models.AgendamentoConfirmado, Ativo: true},
		// Soft-deletado.
		{UsuarioID: user.ID, ClienteID: cliente.ID, DataHora: amanha, Status: models.AgendamentoPendente, Ativo: false},
	}
	for i := range alvos {
		require.NoError(t, db.Create(&alvos[i]).Error)
	}

	created, err := sweep.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// Segunda varredura do mesmo dia não duplica.
	created, err = sweep.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	assert.EqualValues(t, 1, contarNotificacoes(t, db, models.NotificacaoAgendamentoLembrete))
}

func TestVencimentoSweepClassificacao(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewNotificationGormRepository(db)
	user, cliente := seedUsuarioCliente(t, db)
	sweep := notification.NewVencimentoSweep(repo)

	hoje := timezone.StartOfDay(timezone.Now())

	alvos := []models.Financeiro{
		// Vence hoje → vencido.
		{UsuarioID: user.ID, ClienteID: cliente.ID, Valor: 100, DataVencimento: hoje, Status: models.FinanceiroPendente, Ativo: true},
		// Vence em 2 dias → aviso de vencimento.
		{UsuarioID: user.ID, ClienteID: cliente.ID, Valor: 200, DataVencimento: hoje.AddDate(0, 0, 2), Status: models.FinanceiroPendente, Ativo: true},
		// Vence no fim do terceiro dia: a janela cobre o dia inteiro.
		{UsuarioID: user.ID, ClienteID: cliente.ID, Valor: 250, DataVencimento: hoje.AddDate(0, 0, 3).Add(18 * time.Hour), Status: models.FinanceiroPendente, Ativo: true},
		// Fora da janela de 3 dias.
		{UsuarioID: user.ID, ClienteID: cliente.ID, Valor: 300, DataVencimento: hoje.AddDate(0, 0, 10), Status: models.FinanceiroPendente, Ativo: true},
		// Já pago: nada a avisar.
		{UsuarioID: user.ID, ClienteID: cliente.ID, Valor: 400, DataVencimento: hoje.AddDate(0, 0, 1), Status: models.FinanceiroPago, Ativo: true},
	}
	for i := range alvos {
		require.NoError(t, db.Create(&alvos[i]).Error)
	}

	created, err := sweep.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	assert.EqualValues(t, 1, contarNotificacoes(t, db, models.NotificacaoFinanceiroVencido))
	assert.EqualValues(t, 2, contarNotificacoes(t, db, models.NotificacaoFinanceiroVencimento))

	// Reexecução é idempotente por (usuário, tipo, lançamento).
	created, err = sweep.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}
