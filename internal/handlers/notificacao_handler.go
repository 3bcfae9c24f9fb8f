package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/picineiros/pool-manager/internal/httperr"
	"github.com/picineiros/pool-manager/internal/httpresp"
	"github.com/picineiros/pool-manager/internal/middleware"
	"github.com/picineiros/pool-manager/internal/models"
)

type NotificacaoHandler struct {
	db *gorm.DB
}

func NewNotificacaoHandler(db *gorm.DB) *NotificacaoHandler {
	return &NotificacaoHandler{db: db}
}

// List não filtra por ativo: notificação não tem soft delete, só leitura.
func (h *NotificacaoHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	q := h.db.Where("usuario_id = ?", userID)

	if tipo := strings.TrimSpace(c.Query("tipo")); tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	if lida := strings.TrimSpace(c.Query("lida")); lida != "" {
		switch lida {
		case "true":
			q = q.Where("lida = ?", true)
		case "false":
			q = q.Where("lida = ?", false)
		}
	}

	var notificacoes []models.Notificacao
	if err := q.Order("criado_em DESC").Find(&notificacoes).Error; err != nil {
		httperr.Internal(c, "failed to list notificacoes")
		return
	}

	httpresp.OK(c, notificacoes)
}

func (h *NotificacaoHandler) MarcarLida(c *gin.Context) {
	userID := middleware.UserID(c)

	notificacao, ok := getOwned[models.Notificacao](c, h.db, userID, c.Param("id"))
	if !ok {
		return
	}

	if err := h.db.Model(notificacao).Update("lida", true).Error; err != nil {
		httperr.Internal(c, "failed to update notificacao")
		return
	}

	httpresp.NoContent(c)
}

func (h *NotificacaoHandler) MarcarTodasLidas(c *gin.Context) {
	userID := middleware.UserID(c)

	err := h.db.Model(&models.Notificacao{}).
		Where("usuario_id = ? AND lida = ?", userID, false).
		Update("lida", true).Error
	if err != nil {
		httperr.Internal(c, "failed to update notificacoes")
		return
	}

	httpresp.NoContent(c)
}
