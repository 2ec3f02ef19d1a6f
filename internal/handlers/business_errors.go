package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/odontosys/clinic-api/internal/httperr"
)

type businessMapping struct {
	status  int
	message string
}

// Mapeamento de erro de negócio para resposta HTTP. Códigos fora da tabela
// caem em 400 com o próprio código como mensagem.
var businessMappings = map[string]businessMapping{
	"missing_customer_name":   {http.StatusBadRequest, "Nome do cliente é obrigatório."},
	"missing_customer_phone":  {http.StatusBadRequest, "Telefone do cliente é obrigatório."},
	"missing_professional":    {http.StatusBadRequest, "Selecione um profissional."},
	"missing_service":         {http.StatusBadRequest, "Selecione um serviço."},
	"invalid_date_or_time":    {http.StatusBadRequest, "Data ou hora inválida."},
	"in_the_past":             {http.StatusBadRequest, "O horário precisa estar no futuro."},
	"too_soon":                {http.StatusBadRequest, "Horário abaixo da antecedência mínima."},
	"outside_business_hours":  {http.StatusBadRequest, "Fora do horário de atendimento."},
	"service_not_found":       {http.StatusBadRequest, "Serviço não encontrado."},
	"service_inactive":        {http.StatusBadRequest, "Serviço inativo."},
	"service_not_allowed":     {http.StatusBadRequest, "Profissional não executa esse serviço."},
	"professional_not_found":  {http.StatusBadRequest, "Profissional não encontrado."},
	"time_conflict":           {http.StatusConflict, "Conflito de horário."},
	"duplicate_association":   {http.StatusConflict, "Vínculo já existe para esse par."},
	"version_conflict":        {http.StatusConflict, "Registro alterado por outra sessão."},
	"association_not_found":   {http.StatusNotFound, "Vínculo não encontrado."},
	"appointment_not_found":   {http.StatusNotFound, "Agendamento não encontrado."},
	"appointment_in_past":     {http.StatusBadRequest, "Agendamento no passado não pode ser removido."},
	"client_locked":           {http.StatusBadRequest, "Cliente travado; agendamento não pode ser removido."},
	"invalid_state":           {http.StatusBadRequest, "Transição de status inválida."},
	"transaction_not_pending": {http.StatusBadRequest, "Transação não está pendente."},
}

// writeBusinessError traduz um erro de negócio para a resposta HTTP.
// Devolve false quando o erro não é de negócio (falha real do banco).
func writeBusinessError(c *gin.Context, err error) bool {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		return false
	}

	if m, found := businessMappings[be.Code]; found {
		httperr.Write(c, m.status, be.Code, m.message)
		return true
	}

	httperr.BadRequest(c, be.Code, be.Code)
	return true
}
