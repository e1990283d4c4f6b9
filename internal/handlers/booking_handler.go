package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studiobela/salon-scheduler/internal/booking"
	"github.com/studiobela/salon-scheduler/internal/config"
	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/middleware"
	"github.com/studiobela/salon-scheduler/internal/models"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// BookingHandler expõe a máquina do fluxo guiado por HTTP. O cliente só
// conhece o id da sessão; todo o resto mora no servidor.
type BookingHandler struct {
	db      *gorm.DB
	machine *booking.Machine
	config  *config.Config
}

func NewBookingHandler(db *gorm.DB, machine *booking.Machine, cfg *config.Config) *BookingHandler {
	return &BookingHandler{
		db:      db,
		machine: machine,
		config:  cfg,
	}
}

////////////////////////////////////////////////////////
// START (público, via slug)
////////////////////////////////////////////////////////

func (h *BookingHandler) Start(c *gin.Context) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	promoToken := c.Query("promo")
	entry := booking.EntryOptions{
		PromoMarker:       promoToken != "",
		AssistantVerified: h.promoTokenValid(slug, promoToken),
		ViaAssistant:      c.Query("via") == "assistant",
	}

	s, err := h.machine.Start(c.Request.Context(), salon.ID, entry)
	if err != nil {
		writeBusinessOr(c, err, "failed_to_start", "Erro ao iniciar agendamento.")
		return
	}

	h.writeView(c, http.StatusCreated, s.ID)
}

// promoTokenValid confere o marcador do link promocional: o token é o HMAC
// do slug com o segredo do servidor, gerado quando o assistente monta o
// link. Marcador forjado não passa.
func (h *BookingHandler) promoTokenValid(slug, token string) bool {
	if token == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.config.JWTSecret))
	mac.Write([]byte("promo:" + slug))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(token))
}

////////////////////////////////////////////////////////
// START (equipe, painel)
////////////////////////////////////////////////////////

type StartStaffBookingRequest struct {
	ClientID       uint   `json:"client_id" binding:"required"`
	ProfessionalID uint   `json:"professional_id"`
	Date           string `json:"date"`
}

func (h *BookingHandler) StartStaff(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req StartStaffBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	s, err := h.machine.StartStaff(
		c.Request.Context(),
		salonID,
		req.ClientID,
		req.ProfessionalID,
		req.Date,
	)
	if err != nil {
		writeBusinessOr(c, err, "failed_to_start", "Erro ao iniciar agendamento.")
		return
	}

	h.writeView(c, http.StatusCreated, s.ID)
}

////////////////////////////////////////////////////////
// TRANSITIONS
////////////////////////////////////////////////////////

func (h *BookingHandler) Advance(c *gin.Context) {
	sessionID := c.Param("session_id")

	var in booking.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	s, err := h.machine.Advance(c.Request.Context(), sessionID, in)
	if err != nil {
		h.writeStepError(c, s, err)
		return
	}

	h.writeView(c, http.StatusOK, sessionID)
}

func (h *BookingHandler) Back(c *gin.Context) {
	sessionID := c.Param("session_id")

	if _, err := h.machine.Back(c.Request.Context(), sessionID); err != nil {
		writeBusinessOr(c, err, "failed_to_go_back", "Erro ao voltar.")
		return
	}

	h.writeView(c, http.StatusOK, sessionID)
}

func (h *BookingHandler) View(c *gin.Context) {
	h.writeView(c, http.StatusOK, c.Param("session_id"))
}

func (h *BookingHandler) Abandon(c *gin.Context) {
	sessionID := c.Param("session_id")

	if err := h.machine.Abandon(c.Request.Context(), sessionID); err != nil {
		writeBusinessOr(c, err, "failed_to_abandon", "Erro ao descartar sessão.")
		return
	}

	c.Status(http.StatusNoContent)
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *BookingHandler) writeView(c *gin.Context, status int, sessionID string) {
	v, err := h.machine.View(c.Request.Context(), sessionID)
	if err != nil {
		writeBusinessOr(c, err, "failed_to_load_session", "Erro ao carregar sessão.")
		return
	}
	c.JSON(status, v)
}

// writeStepError devolve o código do erro junto da visão atualizada: um
// passo rejeitado pode ter movido a sessão (ex.: conflito volta para a
// escolha de horário) e o front precisa da tela nova.
func (h *BookingHandler) writeStepError(c *gin.Context, s *booking.Session, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, "step_failed", "Erro ao avançar.")
		return
	}

	status := http.StatusUnprocessableEntity
	if be.Code == "time_conflict" {
		status = http.StatusConflict
	}

	body := gin.H{"error": be.Code}
	if s != nil {
		if v, vErr := h.machine.View(c.Request.Context(), s.ID); vErr == nil {
			body["view"] = v
		}
	}

	c.JSON(status, body)
}
