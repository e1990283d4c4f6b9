package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/middleware"
	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/schedule"
)

type ProfessionalHandler struct {
	db *gorm.DB
}

func NewProfessionalHandler(db *gorm.DB) *ProfessionalHandler {
	return &ProfessionalHandler{db: db}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role"`

	Hours schedule.OperatingHours `json:"hours"`
}

type UpdateProfessionalRequest struct {
	Name   *string                  `json:"name,omitempty"`
	Role   *string                  `json:"role,omitempty"`
	Hours  *schedule.OperatingHours `json:"hours,omitempty"`
	Active *bool                    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ProfessionalHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var pros []models.Professional
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("name ASC").
		Find(&pros).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_professionals"})
		return
	}

	c.JSON(http.StatusOK, pros)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Hours != nil {
		if err := validateHours(req.Hours); err != nil {
			httperr.BadRequest(c, "invalid_hours", "Horário de atendimento inválido.")
			return
		}
	}

	pro := models.Professional{
		SalonID: salonID,
		Name:    req.Name,
		Role:    req.Role,
		Hours:   req.Hours,
		Active:  true,
	}

	if err := h.db.Create(&pro).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_professional"})
		return
	}

	c.JSON(http.StatusCreated, pro)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id := c.Param("id")

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&pro).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "professional_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_professional"})
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		pro.Name = *req.Name
	}
	if req.Role != nil {
		pro.Role = *req.Role
	}
	if req.Hours != nil {
		if err := validateHours(*req.Hours); err != nil {
			httperr.BadRequest(c, "invalid_hours", "Horário de atendimento inválido.")
			return
		}
		pro.Hours = *req.Hours
	}
	if req.Active != nil {
		pro.Active = *req.Active
	}

	if err := h.db.Save(&pro).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_professional"})
		return
	}

	c.JSON(http.StatusOK, pro)
}
