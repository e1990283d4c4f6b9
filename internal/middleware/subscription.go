package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/studiobela/salon-scheduler/internal/domain/appointment"
	"github.com/studiobela/salon-scheduler/internal/models"
)

// SubscriptionGate bloqueia escrita quando a assinatura do salão expirou.
// Leitura segue liberada, e qualquer falha ao consultar o salão deixa a
// requisição passar: cobrança nunca derruba a operação.
func SubscriptionGate(repo domain.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		salonID, ok := c.MustGet(ContextSalonID).(uint)
		if !ok {
			c.Next()
			return
		}

		salon, err := repo.GetSalonByID(c.Request.Context(), salonID)
		if err != nil {
			c.Next()
			return
		}

		if salon.SubscriptionStatus == models.SubscriptionExpired {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{"error": "subscription_expired"})
			return
		}

		c.Next()
	}
}
