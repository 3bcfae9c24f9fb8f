package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/picineiros/pool-manager/internal/httperr"
	"github.com/picineiros/pool-manager/internal/middleware"
	"github.com/picineiros/pool-manager/internal/models"
	"github.com/picineiros/pool-manager/internal/reports"
	"github.com/picineiros/pool-manager/internal/timezone"
)

// ===========================
// RELATÓRIOS (CSV / PDF)
// ===========================

type RelatorioHandler struct {
	db *gorm.DB
}

func NewRelatorioHandler(db *gorm.DB) *RelatorioHandler {
	return &RelatorioHandler{db: db}
}

// ---------------------------
// GET /api/relatorios/clientes/:formato/
// ---------------------------
func (h *RelatorioHandler) Clientes(c *gin.Context) {
	ownerID := middleware.UserID(c)

	var clientes []models.Cliente
	if err := ownedScope[models.Cliente](h.db, ownerID).
		Order("nome ASC").
		Find(&clientes).Error; err != nil {
		httperr.Internal(c, "Não foi possível gerar o relatório.")
		return
	}

	table := reports.Table{
		Title:   "Relatório de Clientes",
		Headers: []string{"Nome", "Email", "Telefone", "Endereço", "Tipo de Piscina"},
	}
	for _, cl := range clientes {
		table.Rows = append(table.Rows, []string{
			cl.Nome, cl.Email, cl.Telefone, cl.Endereco, cl.TipoPiscina,
		})
	}

	h.write(c, "clientes", table)
}

// ---------------------------
// GET /api/relatorios/agendamentos/:formato/
// ---------------------------
func (h *RelatorioHandler) Agendamentos(c *gin.Context) {
	ownerID := middleware.UserID(c)

	var agendamentos []models.Agendamento
	if err := ownedScope[models.Agendamento](h.db, ownerID).
		Preload("Cliente").
		Order("data_hora ASC").
		Find(&agendamentos).Error; err != nil {
		httperr.Internal(c, "Não foi possível gerar o relatório.")
		return
	}

	loc := timezone.Location()

	table := reports.Table{
		Title:   "Relatório de Agendamentos",
		Headers: []string{"Cliente", "Data/Hora", "Status", "Observações"},
	}
	for _, ag := range agendamentos {
		table.Rows = append(table.Rows, []string{
			ag.Cliente.Nome,
			ag.DataHora.In(loc).Format("02/01/2006 15:04"),
			ag.Status,
			ag.Observacoes,
		})
	}

	h.write(c, "agendamentos", table)
}

// ---------------------------
// GET /api/relatorios/financeiro/:formato/
// ---------------------------
func (h *RelatorioHandler) Financeiro(c *gin.Context) {
	ownerID := middleware.UserID(c)

	var financeiros []models.Financeiro
	if err := ownedScope[models.Financeiro](h.db, ownerID).
		Preload("Cliente").
		Order("data_vencimento ASC").
		Find(&financeiros).Error; err != nil {
		httperr.Internal(c, "Não foi possível gerar o relatório.")
		return
	}

	table := reports.Table{
		Title:   "Relatório Financeiro",
		Headers: []string{"Cliente", "Tipo", "Descrição", "Valor", "Vencimento", "Status"},
	}
	for _, fin := range financeiros {
		table.Rows = append(table.Rows, []string{
			fin.Cliente.Nome,
			fin.Tipo,
			fin.Descricao,
			fmt.Sprintf("R$ %.2f", fin.Valor),
			fin.DataVencimento.Format("02/01/2006"),
			fin.Status,
		})
	}

	h.write(c, "financeiro", table)
}

// write serializa a tabela no formato pedido na URL e devolve como download.
func (h *RelatorioHandler) write(c *gin.Context, nome string, table reports.Table) {
	var buf bytes.Buffer

	switch c.Param("formato") {
	case "csv":
		if err := reports.WriteCSV(&buf, table); err != nil {
			httperr.Internal(c, "Não foi possível gerar o relatório.")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", nome))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())

	case "pdf":
		if err := reports.WritePDF(&buf, table); err != nil {
			httperr.Internal(c, "Não foi possível gerar o relatório.")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", nome))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())

	default:
		httperr.NotFound(c)
	}
}
