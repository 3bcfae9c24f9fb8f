package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AgendamentoPendente   = "pendente"
	AgendamentoConfirmado = "confirmado"
	AgendamentoCancelado  = "cancelado"
	AgendamentoRealizado  = "realizado"
)

type Agendamento struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UsuarioID uuid.UUID `gorm:"type:uuid;index:idx_agendamentos_usuario_ativo;not null" json:"-"`
	Usuario   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	ClienteID uuid.UUID `gorm:"type:uuid;not null" json:"cliente"`
	Cliente   Cliente   `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	DataHora    time.Time `gorm:"index:idx_agendamentos_data_status;not null" json:"data_hora"`
	Status      string    `gorm:"size:15;default:'pendente';index:idx_agendamentos_data_status" json:"status"`
	Observacoes string    `gorm:"type:text" json:"observacoes"`

	Ativo bool `gorm:"default:true;index:idx_agendamentos_usuario_ativo" json:"ativo"`

	CriadoEm     time.Time `gorm:"autoCreateTime" json:"criado_em"`
	AtualizadoEm time.Time `gorm:"autoUpdateTime" json:"atualizado_em"`
}

func (a *Agendamento) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
