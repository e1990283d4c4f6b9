package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/schedule"
	"github.com/studiobela/salon-scheduler/internal/timezone"
	usecase "github.com/studiobela/salon-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler atende a página pública do salão, sem autenticação. Tudo é
// resolvido pelo slug da URL.
type PublicHandler struct {
	db           *gorm.DB
	availability *usecase.GetAvailability
}

func NewPublicHandler(db *gorm.DB, availability *usecase.GetAvailability) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
	}
}

////////////////////////////////////////////////////////
// SALON CARD
////////////////////////////////////////////////////////

func (h *PublicHandler) GetSalon(c *gin.Context) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	// cartão público: nada de credencial ou configuração interna
	c.JSON(http.StatusOK, gin.H{
		"id":                salon.ID,
		"name":              salon.Name,
		"slug":              salon.Slug,
		"phone":             salon.Phone,
		"address":           salon.Address,
		"hours":             salon.Hours,
		"assistant_enabled": salon.AssistantEnabled,
		"accepts_payment":   salon.HasPaymentGateway(),
		"mp_public_key":     salon.MPPublicKey,
	})
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("salon_id = ? AND active = true", salon.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salon":    gin.H{"id": salon.ID, "name": salon.Name, "slug": salon.Slug},
		"services": services,
	})
}

////////////////////////////////////////////////////////
// PROFESSIONALS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	var pros []models.Professional
	if err := h.db.
		Where("salon_id = ? AND active = true", salon.ID).
		Order("name ASC").
		Find(&pros).Error; err != nil {

		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	out := make([]gin.H, 0, len(pros))
	for _, p := range pros {
		out = append(out, gin.H{"id": p.ID, "name": p.Name, "role": p.Role})
	}

	c.JSON(http.StatusOK, gin.H{"professionals": out})
}

////////////////////////////////////////////////////////
// DAYS (datas com expediente na janela de oferta)
////////////////////////////////////////////////////////

func (h *PublicHandler) ListDays(c *gin.Context) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	var proHours schedule.OperatingHours
	if proIDStr := c.Query("professional_id"); proIDStr != "" {
		proID, err := strconv.ParseUint(proIDStr, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
			return
		}

		var pro models.Professional
		if err := h.db.
			Where("id = ? AND salon_id = ?", proID, salon.ID).
			First(&pro).Error; err != nil {

			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		proHours = pro.Hours
	}

	today := timezone.NowIn(salon.Timezone)

	days := make([]string, 0, 14)
	for i := 0; i < 14; i++ {
		day := today.AddDate(0, 0, i)
		w := schedule.ResolveDayWindow(salon.Hours, proHours, day)
		if w.Closed {
			continue
		}
		days = append(days, day.Format(timezone.DateLayout))
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")
	proIDStr := c.Query("professional_id")
	serviceIDsStr := c.Query("service_ids") // "5,6"

	if dateStr == "" || proIDStr == "" || serviceIDsStr == "" {
		httperr.BadRequest(c, "missing_params", "Data, profissional e serviços obrigatórios.")
		return
	}

	proID, err := strconv.ParseUint(proIDStr, 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	serviceIDs, err := parseIDList(serviceIDsStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_ids", "Serviços inválidos.")
		return
	}

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		usecase.AvailabilityInput{
			SalonID:        salon.ID,
			ProfessionalID: uint(proID),
			ServiceIDs:     serviceIDs,
			Date:           dateStr,
		},
	)
	if err != nil {
		writeBusinessOr(c, err, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

func parseIDList(s string) ([]uint, error) {
	parts := strings.Split(s, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(v))
	}
	return ids, nil
}
