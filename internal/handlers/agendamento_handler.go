package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/picineiros/pool-manager/internal/httperr"
	"github.com/picineiros/pool-manager/internal/httpresp"
	"github.com/picineiros/pool-manager/internal/middleware"
	"github.com/picineiros/pool-manager/internal/models"
	"github.com/picineiros/pool-manager/internal/notify"
)

type AgendamentoHandler struct {
	db         *gorm.DB
	dispatcher *notify.Dispatcher
}

func NewAgendamentoHandler(db *gorm.DB, dispatcher *notify.Dispatcher) *AgendamentoHandler {
	return &AgendamentoHandler{db: db, dispatcher: dispatcher}
}

// --------- Requests / responses ---------

type CreateAgendamentoRequest struct {
	Cliente     string     `json:"cliente" binding:"required,uuid"`
	DataHora    *time.Time `json:"data_hora" binding:"required"`
	Status      string     `json:"status" binding:"omitempty,oneof=pendente confirmado cancelado realizado"`
	Observacoes string     `json:"observacoes"`
}

type UpdateAgendamentoRequest struct {
	Cliente     *string    `json:"cliente,omitempty" binding:"omitempty,uuid"`
	DataHora    *time.Time `json:"data_hora,omitempty"`
	Status      *string    `json:"status,omitempty" binding:"omitempty,oneof=pendente confirmado cancelado realizado"`
	Observacoes *string    `json:"observacoes,omitempty"`
}

type AgendamentoResponse struct {
	models.Agendamento
	ClienteNome string `json:"cliente_nome"`
}

func toAgendamentoResponse(a models.Agendamento) AgendamentoResponse {
	return AgendamentoResponse{Agendamento: a, ClienteNome: a.Cliente.Nome}
}

// --------- Handlers ---------

func (h *AgendamentoHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	q := ownedScope[models.Agendamento](h.db, userID).Preload("Cliente")

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}
	if cliente := strings.TrimSpace(c.Query("cliente")); cliente != "" {
		q = q.Where("cliente_id = ?", cliente)
	}

	var agendamentos []models.Agendamento
	if err := q.Order("data_hora ASC").Find(&agendamentos).Error; err != nil {
		httperr.Internal(c, "failed to list agendamentos")
		return
	}

	out := make([]AgendamentoResponse, 0, len(agendamentos))
	for _, a := range agendamentos {
		out = append(out, toAgendamentoResponse(a))
	}

	httpresp.OK(c, out)
}

func (h *AgendamentoHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req CreateAgendamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	// O cliente referenciado precisa ser do mesmo dono.
	cliente, ok := getOwned[models.Cliente](c, h.db, userID, req.Cliente)
	if !ok {
		return
	}

	status := req.Status
	if status == "" {
		status = models.AgendamentoPendente
	}

	agendamento := models.Agendamento{
		UsuarioID:   userID,
		ClienteID:   cliente.ID,
		DataHora:    *req.DataHora,
		Status:      status,
		Observacoes: req.Observacoes,
		Ativo:       true,
	}

	if err := h.db.Create(&agendamento).Error; err != nil {
		httperr.Internal(c, "failed to create agendamento")
		return
	}

	// Fire-and-forget: a notificação nunca atrasa nem falha o create.
	h.dispatcher.Dispatch(notify.Event{
		UsuarioID:     userID,
		AgendamentoID: agendamento.ID,
		ClienteNome:   cliente.Nome,
		DataHora:      agendamento.DataHora,
	})

	agendamento.Cliente = *cliente
	httpresp.Created(c, toAgendamentoResponse(agendamento))
}

func (h *AgendamentoHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)

	agendamento, ok := getOwnedAtivo[models.Agendamento](c, h.db, userID, c.Param("id"))
	if !ok {
		return
	}

	if err := h.db.Preload("Cliente").First(agendamento, "id = ?", agendamento.ID).Error; err != nil {
		httperr.Internal(c, "failed to load agendamento")
		return
	}
	httpresp.OK(c, toAgendamentoResponse(*agendamento))
}

func (h *AgendamentoHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)

	agendamento, ok := getOwnedAtivo[models.Agendamento](c, h.db, userID, c.Param("id"))
	if !ok {
		return
	}

	var req UpdateAgendamentoRequest
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
		agendamento.ClienteID = cliente.ID
	}
	if req.DataHora != nil {
		agendamento.DataHora = *req.DataHora
	}
	if req.Status != nil {
		agendamento.Status = *req.Status
	}
	if req.Observacoes != nil {
		agendamento.Observacoes = *req.Observacoes
	}

	if err := h.db.Save(agendamento).Error; err != nil {
		httperr.Internal(c, "failed to update agendamento")
		return
	}

	if err := h.db.Preload("Cliente").First(agendamento, "id = ?", agendamento.ID).Error; err != nil {
		httperr.Internal(c, "failed to load agendamento")
		return
	}
	httpresp.OK(c, toAgendamentoResponse(*agendamento))
}

func (h *AgendamentoHandler) SoftDelete(c *gin.Context) {
	userID := middleware.UserID(c)

	agendamento, ok := getOwnedAtivo[models.Agendamento](c, h.db, userID, c.Param("id"))
	if !ok {
		return
	}

	if err := h.db.Model(agendamento).Update("ativo", false).Error; err != nil {
		httperr.Internal(c, "failed to delete agendamento")
		return
	}

	httpresp.NoContent(c)
}

// HardDelete remove o agendamento e anula a referência nos lançamentos
// financeiros, na mesma transação.
func (h *AgendamentoHandler) HardDelete(c *gin.Context) {
	userID := middleware.UserID(c)

	agendamento, ok := getOwned[models.Agendamento](c, h.db, userID, c.Param("id"))
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Financeiro{}).
			Where("agendamento_id = ?", agendamento.ID).
			Update("agendamento_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(agendamento).Error
	})
	if err != nil {
		httperr.Internal(c, "failed to delete agendamento")
		return
	}

	httpresp.NoContent(c)
}
