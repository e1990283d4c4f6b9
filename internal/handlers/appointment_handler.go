package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/httpresp"
	"github.com/studiobela/salon-scheduler/internal/middleware"
	usecase "github.com/studiobela/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create      *usecase.CreateStaffAppointment
	reschedule  *usecase.RescheduleAppointment
	cancel      *usecase.CancelAppointment
	complete    *usecase.CompleteAppointment
	delete      *usecase.DeleteAppointment
	listByDate  *usecase.ListAppointmentsByDate
	listByMonth *usecase.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	create *usecase.CreateStaffAppointment,
	reschedule *usecase.RescheduleAppointment,
	cancel *usecase.CancelAppointment,
	complete *usecase.CompleteAppointment,
	del *usecase.DeleteAppointment,
	listByDate *usecase.ListAppointmentsByDate,
	listByMonth *usecase.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:      create,
		reschedule:  reschedule,
		cancel:      cancel,
		complete:    complete,
		delete:      del,
		listByDate:  listByDate,
		listByMonth: listByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceIDs     []uint `json:"service_ids" binding:"required,min=1"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type RescheduleAppointmentRequest struct {
	ProfessionalID uint   `json:"professional_id"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
}

// ======================================================
// CREATE (entrada manual)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.ClientID == 0 && req.ClientName == "" {
		httperr.BadRequest(c, "client_required", "Informe o cliente.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateStaffAppointmentInput{
		SalonID:        salonID,
		UserID:         userID,
		ClientID:       req.ClientID,
		ClientName:     req.ClientName,
		ClientPhone:    req.ClientPhone,
		ClientEmail:    req.ClientEmail,
		ProfessionalID: req.ProfessionalID,
		ServiceIDs:     req.ServiceIDs,
		Date:           req.Date,
		Time:           req.Time,
	})
	if err != nil {
		writeBusinessOr(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	apID, err := parseUintParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), usecase.RescheduleAppointmentInput{
		SalonID:        salonID,
		UserID:         userID,
		AppointmentID:  apID,
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		Time:           req.Time,
	})
	if err != nil {
		writeBusinessOr(c, err, "failed_to_reschedule", "Erro ao remarcar agendamento.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CANCEL / COMPLETE / DELETE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	apID, err := parseUintParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), salonID, userID, apID)
	if err != nil {
		writeBusinessOr(c, err, "failed_to_cancel", "Erro ao cancelar agendamento.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	apID, err := parseUintParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), salonID, userID, apID)
	if err != nil {
		writeBusinessOr(c, err, "failed_to_complete", "Erro ao concluir agendamento.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	apID, err := parseUintParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.delete.Execute(c.Request.Context(), salonID, userID, apID); err != nil {
		writeBusinessOr(c, err, "failed_to_delete", "Erro ao remover agendamento.")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), salonID, date)
	if err != nil {
		writeBusinessOr(c, err, "failed_to_list", "Erro ao listar agendamentos.")
		return
	}

	httpresp.OK(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), salonID, year, month)
	if err != nil {
		writeBusinessOr(c, err, "failed_to_list", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  out,
	})
}
