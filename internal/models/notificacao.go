package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificacaoAgendamentoCriado    = "agendamento_criado"
	NotificacaoAgendamentoLembrete  = "agendamento_lembrete"
	NotificacaoFinanceiroVencimento = "financeiro_vencimento"
	NotificacaoFinanceiroVencido    = "financeiro_vencido"
)

// Notificacao guarda só o id do agendamento/financeiro que a originou,
// sem foreign key: o registro de origem pode ser removido depois.
type Notificacao struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UsuarioID uuid.UUID `gorm:"type:uuid;index:idx_notificacoes_usuario_lida;not null" json:"-"`
	Usuario   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Tipo     string `gorm:"size:30;not null" json:"tipo"`
	Titulo   string `gorm:"size:200;not null" json:"titulo"`
	Mensagem string `gorm:"type:text" json:"mensagem"`
	Lida     bool   `gorm:"default:false;index:idx_notificacoes_usuario_lida" json:"lida"`

	AgendamentoID *uuid.UUID `gorm:"type:uuid" json:"agendamento_id"`
	FinanceiroID  *uuid.UUID `gorm:"type:uuid" json:"financeiro_id"`

	CriadoEm time.Time `gorm:"autoCreateTime;index" json:"criado_em"`
}

func (n *Notificacao) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
