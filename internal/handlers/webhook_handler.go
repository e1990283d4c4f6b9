package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studiobela/salon-scheduler/internal/httperr"
	usecase "github.com/studiobela/salon-scheduler/internal/usecase/appointment"
)

// WebhookHandler recebe notificações do Mercado Pago. O corpo traz só o id
// do pagamento; o status real é sempre re-consultado no gateway.
type WebhookHandler struct {
	confirmPayment *usecase.ConfirmPayment
}

func NewWebhookHandler(confirmPayment *usecase.ConfirmPayment) *WebhookHandler {
	return &WebhookHandler{confirmPayment: confirmPayment}
}

type mercadoPagoNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (h *WebhookHandler) MercadoPago(c *gin.Context) {
	salonID, err := parseUintParam(c, "salon_id")
	if err != nil {
		httperr.BadRequest(c, "invalid_salon_id", "Salão inválido.")
		return
	}

	var notif mercadoPagoNotification
	if err := c.ShouldBindJSON(&notif); err != nil {
		httperr.BadRequest(c, "invalid_request", "Notificação inválida.")
		return
	}

	if notif.Type != "payment" || notif.Data.ID == "" {
		// evento que não interessa; 200 para o gateway não reenviar
		c.Status(http.StatusOK)
		return
	}

	_, err = h.confirmPayment.Execute(c.Request.Context(), salonID, notif.Data.ID)
	if err != nil {
		// pagamento recusado é resultado, não falha de entrega
		if httperr.IsBusiness(err, "payment_rejected") {
			c.Status(http.StatusOK)
			return
		}
		writeBusinessOr(c, err, "webhook_failed", "Erro ao processar notificação.")
		return
	}

	c.Status(http.StatusOK)
}
