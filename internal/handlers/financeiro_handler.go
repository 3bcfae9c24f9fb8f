package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/picineiros/pool-manager/internal/httperr"
	"github.com/picineiros/pool-manager/internal/httpresp"
	"github.com/picineiros/pool-manager/internal/middleware"
	"github.com/picineiros/pool-manager/internal/models"
)

type FinanceiroHandler struct {
	db *gorm.DB
}

func NewFinanceiroHandler(db *gorm.DB) *FinanceiroHandler {
	return &FinanceiroHandler{db: db}
}

// --------- Requests / responses ---------

type CreateFinanceiroRequest struct {
	Cliente        string     `json:"cliente" binding:"required,uuid"`
	Agendamento    *string    `json:"agendamento,omitempty" binding:"omitempty,uuid"`
	Tipo           string     `json:"tipo" binding:"omitempty,oneof=servico produto multa outro"`
	Descricao      string     `json:"descricao"`
	Valor          *float64   `json:"valor" binding:"required"`
	DataVencimento *time.Time `json:"data_vencimento" binding:"required"`
	Status         string     `json:"status" binding:"omitempty,oneof=pendente pago"`
}

type UpdateFinanceiroRequest struct {
	Cliente        *string    `json:"cliente,omitempty" binding:"omitempty,uuid"`
	Agendamento    *string    `json:"agendamento,omitempty" binding:"omitempty,uuid"`
	Tipo           *string    `json:"tipo,omitempty" binding:"omitempty,oneof=servico produto multa outro"`
	Descricao      *string    `json:"descricao,omitempty"`
	Valor          *float64   `json:"valor,omitempty"`
	DataVencimento *time.Time `json:"data_vencimento,omitempty"`
	Status         *string    `json:"status,omitempty" binding:"omitempty,oneof=pendente pago"`
}

type FinanceiroResponse struct {
	models.Financeiro
	ClienteNome string `json:"cliente_nome"`
}

func toFinanceiroResponse(f models.Financeiro) FinanceiroResponse {
	return FinanceiroResponse{Financeiro: f, ClienteNome: f.Cliente.Nome}
}

// --------- Handlers ---------

func (h *FinanceiroHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	q := ownedScope[models.Financeiro](h.db, userID).Preload("Cliente")

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}
	if tipo := strings.TrimSpace(c.Query("tipo")); tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	if cliente := strings.TrimSpace(c.Query("cliente")); cliente != "" {
		q = q.Where("cliente_id = ?", cliente)
	}

	var financeiros []models.Financeiro
	if err := q.Order("data_vencimento ASC").Find(&financeiros).Error; err != nil {
		httperr.Internal(c, "failed to list financeiros")
		return
	}

	out := make([]FinanceiroResponse, 0, len(financeiros))
	for _, f := range financeiros {
		out = append(out, toFinanceiroResponse(f))
	}

	httpresp.OK(c, out)
}

func (h *FinanceiroHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req CreateFinanceiroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	cliente, ok := getOwned[models.Cliente](c, h.db, userID, req.Cliente)
	if !ok {
		return
	}

	var agendamentoID *uuid.UUID
	if req.Agendamento != nil {
		agendamento, ok := getOwned[models.Agendamento](c, h.db, userID, *req.Agendamento)
		if !ok {
			return
		}
		agendamentoID = &agendamento.ID
	}

	tipo := req.Tipo
	if tipo == "" {
		tipo = models.FinanceiroTipoServico
	}
	status := req.Status
	if status == "" {
		status = models.FinanceiroPendente
	}

	financeiro := models.Financeiro{
		UsuarioID:      userID,
		ClienteID:      cliente.ID,
		AgendamentoID:  agendamentoID,
		Tipo:           tipo,
		Descricao:      req.Descricao,
		Valor:          *req.Valor,
		DataVencimento: *req.DataVencimento,
		Status:         status,
		Ativo:          true,
	}

	if err := h.db.Create(&financeiro).Error; err != nil {
		httperr.Internal(c, "failed to create financeiro")
		return
	}

	financeiro.Cliente = *cliente
	httpresp.Created(c, toFinanceiroResponse(financeiro))
}

func (h *FinanceiroHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)

	financeiro, ok := getOwnedAtivo[models.Financeiro](c, h.db, userID, c.Param("id"))
	if !ok {
		return
	}

	if err := h.db.Preload("Cliente").First(financeiro, "id = ?", financeiro.ID).Error; err != nil {
		httperr.Internal(c, "failed to load financeiro")
		return
	}
	httpresp.OK(c, toFinanceiroResponse(*financeiro))
}

func (h *FinanceiroHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)

	financeiro, ok := getOwnedAtivo[models.Financeiro](c, h.db, userID, c.Param("id"))
	if !ok {
		return
	}

	var req UpdateFinanceiroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Cliente != nil {
		cliente, ok := getOwned[models.Cliente](c, h.db, userID, *req.Cliente)
		if !ok {
			return
		}
		financeiro.ClienteID = cliente.ID
	}
	if req.Agendamento != nil {
		agendamento, ok := getOwned[models.Agendamento](c, h.db, userID, *req.Agendamento)
		if !ok {
			return
		}
		financeiro.AgendamentoID = &agendamento.ID
	}
	if req.Tipo != nil {
		financeiro.Tipo = *req.Tipo
	}
	if req.Descricao != nil {
		financeiro.Descricao = *req.Descricao
	}
	if req.Valor != nil {
		financeiro.Valor = *req.Valor
	}
	if req.DataVencimento != nil {
		financeiro.DataVencimento = *req.DataVencimento
	}
	if req.Status != nil {
		financeiro.Status = *req.Status
	}

	if err := h.db.Save(financeiro).Error; err != nil {
		httperr.Internal(c, "failed to update financeiro")
		return
	}

	if err := h.db.Preload("Cliente").First(financeiro, "id = ?", financeiro.ID).Error; err != nil {
		httperr.Internal(c, "failed to load financeiro")
		return
	}
	httpresp.OK(c, toFinanceiroResponse(*financeiro))
}

func (h *FinanceiroHandler) SoftDelete(c *gin.Context) {
	userID := middleware.UserID(c)

	financeiro, ok := getOwnedAtivo[models.Financeiro](c, h.db, userID, c.Param("id"))
	if !ok {
		return
	}

	if err := h.db.Model(financeiro).Update("ativo", false).Error; err != nil {
		httperr.Internal(c, "failed to delete financeiro")
		return
	}

	httpresp.NoContent(c)
}

func (h *FinanceiroHandler) HardDelete(c *gin.Context) {
	userID := middleware.UserID(c)

	financeiro, ok := getOwned[models.Financeiro](c, h.db, userID, c.Param("id"))
	if !ok {
		return
	}

	if err := h.db.Delete(financeiro).Error; err != nil {
		httperr.Internal(c, "failed to delete financeiro")
		return
	}

	httpresp.NoContent(c)
}
