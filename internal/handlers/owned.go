package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/picineiros/pool-manager/internal/httperr"
)

// O template de recurso por dono: toda leitura e escrita carrega o
// predicado usuario_id = dono. Recurso de outro usuário e recurso
// inexistente respondem o mesmo 404.

func getOwned[T any](c *gin.Context, db *gorm.DB, ownerID uuid.UUID, id string) (*T, bool) {
	if _, err := uuid.Parse(id); err != nil {
		httperr.NotFound(c)
		return nil, false
	}

	var obj T
	err := db.Where("id = ? AND usuario_id = ?", id, ownerID).First(&obj).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c)
		return nil, false
	}
	if err != nil {
		httperr.Internal(c, "internal error")
		return nil, false
	}

	return &obj, true
}

// getOwnedAtivo é o getOwned dos endpoints de leitura/edição: registro
// soft-deletado responde 404, embora continue existindo para o hard delete
// e para os dependentes que apontam para ele.
func getOwnedAtivo[T any](c *gin.Context, db *gorm.DB, ownerID uuid.UUID, id string) (*T, bool) {
	if _, err := uuid.Parse(id); err != nil {
		httperr.NotFound(c)
		return nil, false
	}

	var obj T
	err := db.Where("id = ? AND usuario_id = ? AND ativo = ?", id, ownerID, true).First(&obj).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c)
		return nil, false
	}
	if err != nil {
		httperr.Internal(c, "internal error")
		return nil, false
	}

	return &obj, true
}

// ownedScope monta a query base das listagens: só registros do dono e
// ativos (soft delete é exclusão de listagem, não remoção).
func ownedScope[T any](db *gorm.DB, ownerID uuid.UUID) *gorm.DB {
	var model T
	return db.Model(&model).Where("usuario_id = ? AND ativo = ?", ownerID, true)
}
