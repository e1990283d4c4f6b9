package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/middleware"
	"github.com/studiobela/salon-scheduler/internal/models"
)

// ======================================================
// FILTRO
// ======================================================

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

// auditQuery agrupa os filtros da trilha de auditoria. Datas em
// YYYY-MM-DD; valores inválidos são simplesmente ignorados.
type auditQuery struct {
	Action string `form:"action"`
	Entity string `form:"entity"`
	From   string `form:"from"`
	To     string `form:"to"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (q *auditQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > auditMaxLimit {
		q.Limit = auditDefaultLimit
	}
}

func (q *auditQuery) apply(tx *gorm.DB) *gorm.DB {
	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if from, err := time.Parse("2006-01-02", q.From); err == nil {
		tx = tx.Where("created_at >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", q.To); err == nil {
		// "to" é inclusivo: cobre o dia inteiro
		tx = tx.Where("created_at < ?", to.AddDate(0, 0, 1))
	}
	return tx
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var filter auditQuery
	_ = c.ShouldBindQuery(&filter)
	filter.normalize()

	scoped := filter.apply(
		h.db.Model(&models.AuditLog{}).Where("salon_id = ?", salonID),
	)

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var logs []models.AuditLog
	err := scoped.
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&logs).Error
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  filter.Page,
		"limit": filter.Limit,
		"total": total,
		"logs":  logs,
	})
}
