package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Nome         string `gorm:"size:150" json:"nome"`
	Telefone     string `gorm:"size:30" json:"telefone"`
	CNPJ         string `gorm:"size:20" json:"cnpj"`

	IsActive        bool `gorm:"default:true" json:"is_active"`
	IsEmailVerified bool `gorm:"default:false" json:"is_email_verified"`
	IsStaff         bool `gorm:"default:false" json:"-"`
	IsSuperuser     bool `gorm:"default:false" json:"-"`

	// Entra no token de verificação/reset: trocar a senha ou logar
	// invalida tokens emitidos antes.
	LastLogin *time.Time `json:"-"`

	CriadoEm time.Time `gorm:"autoCreateTime" json:"criado_em"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
