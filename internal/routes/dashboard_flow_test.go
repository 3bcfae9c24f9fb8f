package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picineiros/pool-manager/internal/dto"
	"github.com/picineiros/pool-manager/internal/timezone"
)

func TestDashboardStats(t *testing.T) {
	r, db, cfg := setupAPI(t)
	access, _ := accessFor(t, r, db, cfg, "dono@piscinas.com")
	accessOutro, _ := accessFor(t, r, db, cfg, "outro@piscinas.com")

	clienteID := createCliente(t, r, access, "Cliente Painel")

	// Agendamento dentro da janela de 7 dias do painel.
	amanha := timezone.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	w := doJSON(r, http.MethodPost, "/api/agendamentos/",
		fmt.Sprintf(`{"cliente":%q,"data_hora":%q}`, clienteID, amanha), withBearer(access))
	require.Equal(t, http.StatusCreated, w.Code, "body=%s", w.Body.String())

	vencimento := timezone.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	w = doJSON(r, http.MethodPost, "/api/financeiro/",
		fmt.Sprintf(`{"cliente":%q,"valor":100.0,"data_vencimento":%q}`, clienteID, vencimento),
		withBearer(access))
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/api/financeiro/",
		fmt.Sprintf(`{"cliente":%q,"valor":250.0,"data_vencimento":%q,"status":"pago"}`, clienteID, vencimento),
		withBearer(access))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/api/dashboard/", "", withBearer(access))
	require.Equal(t, http.StatusOK, w.Code, "body=%s", w.Body.String())

	var resp dto.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.EqualValues(t, 1, resp.Totais.Clientes)
	assert.EqualValues(t, 1, resp.Totais.Agendamentos)
	assert.EqualValues(t, 2, resp.Totais.Financeiro)

	assert.InDelta(t, 100.0, resp.Financeiro.Pendente, 0.001)
	assert.InDelta(t, 250.0, resp.Financeiro.Pago, 0.001)

	require.Len(t, resp.ProximosAgendamentos, 1)
	assert.Equal(t, "Cliente Painel", resp.ProximosAgendamentos[0].ClienteNome)

	// Receita mensal só conta o que está pago.
	require.Len(t, resp.ReceitaMensal, 1)
	assert.InDelta(t, 250.0, resp.ReceitaMensal[0].Valor, 0.001)
	assert.Equal(t, timezone.Now().Format("2006-01"), resp.ReceitaMensal[0].Mes)

	// O painel do outro usuário sai zerado.
	w = doJSON(r, http.MethodGet, "/api/dashboard/", "", withBearer(accessOutro))
	require.Equal(t, http.StatusOK, w.Code)
	var vazio dto.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vazio))
	assert.EqualValues(t, 0, vazio.Totais.Clientes)
	assert.Empty(t, vazio.ProximosAgendamentos)
}

func TestRelatorios(t *testing.T) {
	r, db, cfg := setupAPI(t)
	access, _ := accessFor(t, r, db, cfg, "dono@piscinas.com")

	clienteID := createCliente(t, r, access, "Cliente Relatório")

	w := doJSON(r, http.MethodPost, "/api/agendamentos/",
		fmt.Sprintf(`{"cliente":%q,"data_hora":"2030-01-01T10:00:00Z"}`, clienteID), withBearer(access))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/financeiro/",
		fmt.Sprintf(`{"cliente":%q,"valor":99.9,"data_vencimento":"2030-01-05T00:00:00Z"}`, clienteID),
		withBearer(access))
	require.Equal(t, http.StatusCreated, w.Code)

	for _, recurso := range []string{"clientes", "agendamentos", "financeiro"} {
		w = doJSON(r, http.MethodGet, "/api/relatorios/"+recurso+"/csv/", "", withBearer(access))
		require.Equal(t, http.StatusOK, w.Code, "recurso=%s body=%s", recurso, w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, w.Header().Get("Content-Disposition"), recurso+".csv")

		w = doJSON(r, http.MethodGet, "/api/relatorios/"+recurso+"/pdf/", "", withBearer(access))
		require.Equal(t, http.StatusOK, w.Code, "recurso=%s", recurso)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"), "resposta não parece um PDF")
	}

	// CSV de clientes carrega cabeçalho e a linha do cliente.
	w = doJSON(r, http.MethodGet, "/api/relatorios/clientes/csv/", "", withBearer(access))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nome,Email,Telefone")
	assert.Contains(t, w.Body.String(), "Cliente Relatório")

	// Formato desconhecido → 404.
	w = doJSON(r, http.MethodGet, "/api/relatorios/clientes/xml/", "", withBearer(access))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
