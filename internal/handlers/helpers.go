package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studiobela/salon-scheduler/internal/httperr"
)

func parseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// writeBusinessOr converte o erro: código de negócio sai como 400/404/409
// conforme a natureza; o resto vira o erro interno informado.
func writeBusinessOr(c *gin.Context, err error, code, message string) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, code, message)
		return
	}

	switch be.Code {
	case "time_conflict":
		httperr.Conflict(c, be.Code, "Conflito de horário.")
	case "appointment_not_found", "professional_not_found", "service_not_found",
		"salon_not_found", "session_not_found", "payment_not_found":
		httperr.NotFound(c, be.Code, "Recurso não encontrado.")
	case "gateway_unavailable":
		httperr.BadGateway(c, be.Code, "Gateway de pagamento indisponível.")
	default:
		httperr.BadRequest(c, be.Code, "Operação inválida.")
	}
}
