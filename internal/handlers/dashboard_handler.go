package handlers

import (
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/picineiros/pool-manager/internal/dto"
	"github.com/picineiros/pool-manager/internal/httperr"
	"github.com/picineiros/pool-manager/internal/httpresp"
	"github.com/picineiros/pool-manager/internal/middleware"
	"github.com/picineiros/pool-manager/internal/models"
	"github.com/picineiros/pool-manager/internal/timezone"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	userID := middleware.UserID(c)
	now := timezone.Now()

	var resp dto.DashboardResponse

	// -------- Totais --------
	ownedScope[models.Cliente](h.db, userID).Count(&resp.Totais.Clientes)
	ownedScope[models.Agendamento](h.db, userID).Count(&resp.Totais.Agendamentos)
	ownedScope[models.Financeiro](h.db, userID).Count(&resp.Totais.Financeiro)

	// -------- Financeiro pendente x pago --------
	type somaRow struct {
		Status string
		Total  float64
	}
	var somas []somaRow
	if err := ownedScope[models.Financeiro](h.db, userID).
		Select("status, COALESCE(SUM(valor), 0) AS total").
		Group("status").
		Scan(&somas).Error; err != nil {
		httperr.Internal(c, "failed to aggregate financeiro")
		return
	}

	resp.FinanceiroPorStatus = make([]dto.FinanceiroPorStatus, 0, len(somas))
	sort.Slice(somas, func(i, j int) bool { return somas[i].Status < somas[j].Status })
	for _, s := range somas {
		switch s.Status {
		case models.FinanceiroPendente:
			resp.Financeiro.Pendente = s.Total
		case models.FinanceiroPago:
			resp.Financeiro.Pago = s.Total
		}
		resp.FinanceiroPorStatus = append(resp.FinanceiroPorStatus, dto.FinanceiroPorStatus{
			Status: s.Status,
			Valor:  s.Total,
		})
	}

	// -------- Próximos agendamentos (7 dias, até 5) --------
	var proximos []models.Agendamento
	if err := ownedScope[models.Agendamento](h.db, userID).
		Preload("Cliente").
		Where("data_hora >= ? AND data_hora <= ?", now, now.AddDate(0, 0, 7)).
		Order("data_hora ASC").
		Limit(5).
		Find(&proximos).Error; err != nil {
		httperr.Internal(c, "failed to list agendamentos")
		return
	}

	resp.ProximosAgendamentos = make([]dto.ProximoAgendamento, 0, len(proximos))
	for _, a := range proximos {
		resp.ProximosAgendamentos = append(resp.ProximosAgendamentos, dto.ProximoAgendamento{
			ID:          a.ID,
			ClienteNome: a.Cliente.Nome,
			DataHora:    a.DataHora.Format(time.RFC3339),
			Status:      a.Status,
		})
	}

	// -------- Receita mensal (últimos 6 meses) --------
	// O agrupamento por mês roda em Go para a mesma query valer em
	// postgres e sqlite.
	type receitaRow struct {
		CriadoEm time.Time
		Valor    float64
	}
	var pagos []receitaRow
	if err := ownedScope[models.Financeiro](h.db, userID).
		Select("criado_em, valor").
		Where("status = ? AND criado_em >= ?", models.FinanceiroPago, now.AddDate(0, 0, -180)).
		Scan(&pagos).Error; err != nil {
		httperr.Internal(c, "failed to aggregate receita")
		return
	}

	porMes := make(map[string]float64)
	for _, p := range pagos {
		porMes[p.CriadoEm.In(timezone.Location()).Format("2006-01")] += p.Valor
	}

	meses := make([]string, 0, len(porMes))
	for mes := range porMes {
		meses = append(meses, mes)
	}
	sort.Strings(meses)

	resp.ReceitaMensal = make([]dto.ReceitaMensal, 0, len(meses))
	for _, mes := range meses {
		resp.ReceitaMensal = append(resp.ReceitaMensal, dto.ReceitaMensal{
			Mes:   mes,
			Valor: porMes[mes],
		})
	}

	httpresp.OK(c, resp)
}
