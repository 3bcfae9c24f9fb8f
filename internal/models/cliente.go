package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TipoPiscinaResidencial = "residencial"
	TipoPiscinaComercial   = "comercial"
)

// Cliente atendido pelo piscineiro, sempre vinculado ao usuário dono.
type Cliente struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UsuarioID uuid.UUID `gorm:"type:uuid;index:idx_clientes_usuario_ativo;not null" json:"-"`
	Usuario   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Nome        string `gorm:"size:150;not null" json:"nome"`
	Email       string `gorm:"size:100" json:"email"`
	Telefone    string `gorm:"size:30" json:"telefone"`
	Endereco    string `gorm:"type:text" json:"endereco"`
	TipoPiscina string `gorm:"size:20;default:'residencial'" json:"tipo_piscina"`

	Ativo bool `gorm:"default:true;index:idx_clientes_usuario_ativo" json:"ativo"`

	CriadoEm     time.Time `gorm:"autoCreateTime" json:"criado_em"`
	AtualizadoEm time.Time `gorm:"autoUpdateTime" json:"atualizado_em"`
}

func (c *Cliente) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
