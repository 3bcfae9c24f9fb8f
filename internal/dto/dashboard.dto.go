package dto

import "github.com/google/uuid"

type DashboardTotais struct {
	Clientes     int64 `json:"clientes"`
	Agendamentos int64 `json:"agendamentos"`
	Financeiro   int64 `json:"financeiro"`
}

type DashboardFinanceiro struct {
	Pendente float64 `json:"pendente"`
	Pago     float64 `json:"pago"`
}

type ProximoAgendamento struct {
	ID          uuid.UUID `json:"id"`
	ClienteNome string    `json:"cliente_nome"`
	DataHora    string    `json:"data_hora"`
	Status      string    `json:"status"`
}

type ReceitaMensal struct {
	Mes   string  `json:"mes"`
	Valor float64 `json:"valor"`
}

type FinanceiroPorStatus struct {
	Status string  `json:"status"`
	Valor  float64 `json:"valor"`
}

// DashboardResponse agrega, num request só, tudo que o painel mostra.
// Valores monetários saem como float64; a perda de precisão decimal é um
// tradeoff aceito da API.
type DashboardResponse struct {
	Totais               DashboardTotais       `json:"totais"`
	Financeiro           DashboardFinanceiro   `json:"financeiro"`
	ProximosAgendamentos []ProximoAgendamento  `json:"proximos_agendamentos"`
	ReceitaMensal        []ReceitaMensal       `json:"receita_mensal"`
	FinanceiroPorStatus  []FinanceiroPorStatus `json:"financeiro_por_status"`
}
