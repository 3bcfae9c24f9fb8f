package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/picineiros/pool-manager/internal/models"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

// --------------------------------------------------
// Notificação
// --------------------------------------------------

func (r *NotificationGormRepository) CreateNotificacao(
	ctx context.Context,
	n *models.Notificacao,
) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationGormRepository) GetOrCreateNotificacao(
	ctx context.Context,
	n *models.Notificacao,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Notificacao{}).
		Where("usuario_id = ? AND tipo = ?", n.UsuarioID, n.Tipo)

	switch {
	case n.AgendamentoID != nil:
		q = q.Where("agendamento_id = ?", *n.AgendamentoID)
	case n.FinanceiroID != nil:
		q = q.Where("financeiro_id = ?", *n.FinanceiroID)
	}

	var existing models.Notificacao
	err := q.First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return false, err
	}
	return true, nil
}

// --------------------------------------------------
// Alvos das varridas
// --------------------------------------------------

func (r *NotificationGormRepository) ListAgendamentosPendentes(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Agendamento, error) {

	var agendamentos []models.Agendamento
	if err := r.db.WithContext(ctx).
		Preload("Cliente").
		Where(
			"ativo = ? AND status = ? AND data_hora >= ? AND data_hora < ?",
			true, models.AgendamentoPendente, start, end,
		).
		Find(&agendamentos).Error; err != nil {
		return nil, err
	}
	return agendamentos, nil
}

func (r *NotificationGormRepository) ListFinanceirosPendentes(
	ctx context.Context,
	from time.Time,
	until time.Time,
) ([]models.Financeiro, error) {

	var financeiros []models.Financeiro
	if err := r.db.WithContext(ctx).
		Preload("Cliente").
		Where(
			"ativo = ? AND status = ? AND data_vencimento >= ? AND data_vencimento < ?",
			true, models.FinanceiroPendente, from, until,
		).
		Find(&financeiros).Error; err != nil {
		return nil, err
	}
	return financeiros, nil
}
