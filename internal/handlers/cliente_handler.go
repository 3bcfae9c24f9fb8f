package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/picineiros/pool-manager/internal/httperr"
	"github.com/picineiros/pool-manager/internal/httpresp"
	"github.com/picineiros/pool-manager/internal/middleware"
	"github.com/picineiros/pool-manager/internal/models"
)

type ClienteHandler struct {
	db *gorm.DB
}

func NewClienteHandler(db *gorm.DB) *ClienteHandler {
	return &ClienteHandler{db: db}
}

// --------- Requests ---------

type CreateClienteRequest struct {
	Nome        string `json:"nome" binding:"required"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	Endereco    string `json:"endereco"`
	TipoPiscina string `json:"tipo_piscina" binding:"omitempty,oneof=residencial comercial"`
}

type UpdateClienteRequest struct {
	Nome        *string `json:"nome,omitempty"`
	Email       *string `json:"email,omitempty"`
	Telefone    *string `json:"telefone,omitempty"`
	Endereco    *string `json:"endereco,omitempty"`
	TipoPiscina *string `json:"tipo_piscina,omitempty" binding:"omitempty,oneof=residencial comercial"`
}

// --------- Handlers ---------

func (h *ClienteHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	q := ownedScope[models.Cliente](h.db, userID)

	if tipo := strings.TrimSpace(c.Query("tipo_piscina")); tipo != "" {
		q = q.Where("tipo_piscina = ?", tipo)
	}

	var clientes []models.Cliente
	if err := q.Order("criado_em DESC").Find(&clientes).Error; err != nil {
		httperr.Internal(c, "failed to list clientes")
		return
	}

	httpresp.OK(c, clientes)
}

func (h *ClienteHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req CreateClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	tipo := req.TipoPiscina
	if tipo == "" {
		tipo = models.TipoPiscinaResidencial
	}

	cliente := models.Cliente{
		// O dono vem sempre do token, nunca do payload.
		UsuarioID:   userID,
		Nome:        req.Nome,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Telefone:    req.Telefone,
		Endereco:    req.Endereco,
		TipoPiscina: tipo,
		Ativo:       true,
	}

	if err := h.db.Create(&cliente).Error; err != nil {
		httperr.Internal(c, "failed to create cliente")
		return
	}

	httpresp.Created(c, cliente)
}

func (h *ClienteHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)

	cliente, ok := getOwnedAtivo[models.Cliente](c, h.db, userID, c.Param("id"))
	if !ok {
		return
	}

	httpresp.OK(c, cliente)
}

func (h *ClienteHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)

	cliente, ok := getOwnedAtivo[models.Cliente](c, h.db, userID, c.Param("id"))
	if !ok {
		return
	}

	var req UpdateClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Nome != nil {
		cliente.Nome = *req.Nome
	}
	if req.Email != nil {
		cliente.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Telefone != nil {
		cliente.Telefone = *req.Telefone
	}
	if req.Endereco != nil {
		cliente.Endereco = *req.Endereco
	}
	if req.TipoPiscina != nil {
		cliente.TipoPiscina = *req.TipoPiscina
	}

	if err := h.db.Save(cliente).Error; err != nil {
		httperr.Internal(c, "failed to update cliente")
		return
	}

	httpresp.OK(c, cliente)
}

// SoftDelete tira o cliente das listagens mas mantém a linha para os
// agendamentos/lançamentos que apontam para ela.
func (h *ClienteHandler) SoftDelete(c *gin.Context) {
	userID := middleware.UserID(c)

	cliente, ok := getOwnedAtivo[models.Cliente](c, h.db, userID, c.Param("id"))
	if !ok {
		return
	}

	if err := h.db.Model(cliente).Update("ativo", false).Error; err != nil {
		httperr.Internal(c, "failed to delete cliente")
		return
	}

	httpresp.NoContent(c)
}

// HardDelete remove de vez, cascateando agendamentos e lançamentos do
// cliente na mesma transação.
func (h *ClienteHandler) HardDelete(c *gin.Context) {
	userID := middleware.UserID(c)

	cliente, ok := getOwned[models.Cliente](c, h.db, userID, c.Param("id"))
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cliente_id = ?", cliente.ID).Delete(&models.Financeiro{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cliente_id = ?", cliente.ID).Delete(&models.Agendamento{}).Error; err != nil {
			return err
		}
		return tx.Delete(cliente).Error
	})
	if err != nil {
		httperr.Internal(c, "failed to delete cliente")
		return
	}

	httpresp.NoContent(c)
}
