package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/middleware"
	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/schedule"
	"github.com/studiobela/salon-scheduler/internal/timezone"
)

type SalonHandler struct {
	db *gorm.DB
}

func NewSalonHandler(db *gorm.DB) *SalonHandler {
	return &SalonHandler{db: db}
}

type UpdateSalonRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`

	Hours *schedule.OperatingHours `json:"hours"`

	MinAdvanceMinutes *int `json:"min_advance_minutes"`

	AssistantEnabled *bool    `json:"assistant_enabled"`
	PromoDiscountPct *float64 `json:"promo_discount_pct"`

	MPPublicKey   *string `json:"mp_public_key"`
	MPAccessToken *string `json:"mp_access_token"`
}

func (h *SalonHandler) GetMeSalon(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Erro ao buscar dados do salão.")
		return
	}

	c.JSON(http.StatusOK, salon)
}

func (h *SalonHandler) UpdateMeSalon(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_salon", "Erro ao buscar dados do salão.")
		return
	}

	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		salon.Name = *req.Name
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido.")
			return
		}
		salon.Timezone = *req.Timezone
	}

	if req.Hours != nil {
		if err := validateHours(*req.Hours); err != nil {
			httperr.BadRequest(c, "invalid_hours", "Horário de funcionamento inválido.")
			return
		}
		salon.Hours = *req.Hours
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		salon.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if req.AssistantEnabled != nil {
		salon.AssistantEnabled = *req.AssistantEnabled
	}
	if req.PromoDiscountPct != nil {
		if *req.PromoDiscountPct < 0 || *req.PromoDiscountPct > 100 {
			httperr.BadRequest(c, "invalid_discount", "Desconto deve estar entre 0 e 100.")
			return
		}
		salon.PromoDiscountPct = *req.PromoDiscountPct
	}

	if req.MPPublicKey != nil {
		salon.MPPublicKey = *req.MPPublicKey
	}
	if req.MPAccessToken != nil {
		salon.MPAccessToken = *req.MPAccessToken
	}

	if err := h.db.Save(&salon).Error; err != nil {
		httperr.Internal(c, "failed_to_update_salon", "Erro ao salvar as configurações do salão.")
		return
	}

	c.JSON(http.StatusOK, salon)
}

// validateHours aceita dias ausentes (caem no horário padrão), mas rejeita
// chaves desconhecidas e janelas invertidas em dias abertos.
func validateHours(hours schedule.OperatingHours) error {
	for day, dh := range hours {
		if _, ok := schedule.ParseWeekday(day); !ok {
			return fmt.Errorf("unknown weekday %q", day)
		}
		if dh.Closed {
			continue
		}
		open, err := schedule.ParseHM(dh.Open)
		if err != nil {
			return err
		}
		closeMin, err := schedule.ParseHM(dh.Close)
		if err != nil {
			return err
		}
		if closeMin <= open {
			return fmt.Errorf("window closes before it opens on %s", day)
		}
	}
	return nil
}
