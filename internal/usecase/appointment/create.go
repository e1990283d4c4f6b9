package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/studiobela/salon-scheduler/internal/audit"
	"github.com/studiobela/salon-scheduler/internal/booking"
	"github.com/studiobela/salon-scheduler/internal/cache"
	domain "github.com/studiobela/salon-scheduler/internal/domain/appointment"
	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/schedule"
	"github.com/studiobela/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateStaffAppointmentInput struct {
	SalonID uint
	UserID  uint

	ClientID    uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	ProfessionalID uint
	ServiceIDs     []uint

	Date string
	Time string
}

// ======================================================
// USE CASE
// ======================================================

// CreateStaffAppointment é a entrada manual da equipe: nasce confirmado,
// sem passo de pagamento.
type CreateStaffAppointment struct {
	repo  domain.Repository
	cache *cache.SlotsCache
	audit *audit.Dispatcher
}

func NewCreateStaffAppointment(
	repo domain.Repository,
	slotsCache *cache.SlotsCache,
	auditD *audit.Dispatcher,
) *CreateStaffAppointment {
	return &CreateStaffAppointment{
		repo:  repo,
		cache: slotsCache,
		audit: auditD,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateStaffAppointment) Execute(
	ctx context.Context,
	in CreateStaffAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Salão
	// --------------------------------------------------
	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone do salão
	// --------------------------------------------------
	date, err := timezone.ParseDateIn(salon.Timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	startMin, err := schedule.ParseHM(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3️⃣ Antecedência mínima (quando configurada)
	// --------------------------------------------------
	if salon.MinAdvanceMinutes > 0 {
		now := timezone.NowIn(salon.Timezone)
		start := date.Add(time.Duration(startMin) * time.Minute)
		if start.Before(now.Add(time.Duration(salon.MinAdvanceMinutes) * time.Minute)) {
			return nil, httperr.ErrBusiness("too_soon")
		}
	}

	// --------------------------------------------------
	// 4️⃣ Profissional + serviços
	// --------------------------------------------------
	pro, err := uc.repo.GetProfessional(ctx, in.SalonID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	svcs, err := uc.repo.GetServices(ctx, in.SalonID, in.ServiceIDs)
	if err != nil || len(svcs) == 0 {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	duration := 0
	subtotal := 0.0
	names := make([]string, 0, len(svcs))
	for _, svc := range svcs {
		duration += svc.DurationMin
		subtotal += svc.Price
		names = append(names, svc.Name)
	}

	// --------------------------------------------------
	// 5️⃣ Dentro da janela de funcionamento
	// --------------------------------------------------
	window := schedule.ResolveDayWindow(salon.Hours, pro.Hours, date)
	if window.Closed || startMin < window.OpenMin || startMin+duration > window.CloseMin {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 6️⃣ Cliente (id direto ou get-or-create)
	// --------------------------------------------------
	clientID := in.ClientID
	if clientID == 0 {
		client, err := uc.repo.GetOrCreateClient(
			ctx,
			in.SalonID,
			in.ClientName,
			in.ClientPhone,
			in.ClientEmail,
		)
		if err != nil {
			return nil, err
		}
		clientID = client.ID
	}

	// --------------------------------------------------
	// 7️⃣ Criação com checagem de conflito transacional
	// --------------------------------------------------
	ap := &models.Appointment{
		SalonID:        in.SalonID,
		ClientID:       clientID,
		ProfessionalID: pro.ID,
		ServicesLabel:  strings.Join(names, " + "),
		Total:          booking.FinalTotal(subtotal, 0),
		Date:           in.Date,
		StartMin:       startMin,
		DurationMin:    duration,
		Status:         string(domain.InitialStatus(false)),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, pro.ID, in.Date)

	// --------------------------------------------------
	// 8️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
