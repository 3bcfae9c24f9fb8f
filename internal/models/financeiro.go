package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FinanceiroTipoServico = "servico"
	FinanceiroTipoProduto = "produto"
	FinanceiroTipoMulta   = "multa"
	FinanceiroTipoOutro   = "outro"

	FinanceiroPendente = "pendente"
	FinanceiroPago     = "pago"
)

type Financeiro struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UsuarioID uuid.UUID `gorm:"type:uuid;index:idx_financeiros_usuario_ativo;not null" json:"-"`
	Usuario   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	ClienteID uuid.UUID `gorm:"type:uuid;not null" json:"cliente"`
	Cliente   Cliente   `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	// Hard delete do agendamento anula a referência em vez de cascatear.
	AgendamentoID *uuid.UUID   `gorm:"type:uuid" json:"agendamento"`
	Agendamento   *Agendamento `gorm:"constraint:OnDelete:SET NULL;" json:"-"`

	Tipo           string    `gorm:"size:15;default:'servico'" json:"tipo"`
	Descricao      string    `gorm:"size:200" json:"descricao"`
	Valor          float64   `gorm:"type:decimal(10,2);not null" json:"valor"`
	DataVencimento time.Time `gorm:"index:idx_financeiros_status_venc;not null" json:"data_vencimento"`
	Status         string    `gorm:"size:15;default:'pendente';index:idx_financeiros_status_venc" json:"status"`

	Ativo bool `gorm:"default:true;index:idx_financeiros_usuario_ativo" json:"ativo"`

	CriadoEm     time.Time `gorm:"autoCreateTime" json:"criado_em"`
	AtualizadoEm time.Time `gorm:"autoUpdateTime" json:"atualizado_em"`
}

func (f *Financeiro) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
