package appointment

import (
	"context"

	"github.com/studiobela/salon-scheduler/internal/audit"
	"github.com/studiobela/salon-scheduler/internal/cache"
	domain "github.com/studiobela/salon-scheduler/internal/domain/appointment"
	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/schedule"
	"github.com/studiobela/salon-scheduler/internal/timezone"
)

type RescheduleAppointmentInput struct {
	SalonID       uint
	UserID        uint
	AppointmentID uint

	ProfessionalID uint
	Date           string
	Time           string
}

type RescheduleAppointment struct {
	repo  domain.Repository
	cache *cache.SlotsCache
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	slotsCache *cache.SlotsCache,
	auditD *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		cache: slotsCache,
		audit: auditD,
	}
}

// Execute move o agendamento para outro profissional/dia/horário. Estados
// terminais não são remarcáveis; a duração original é preservada.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.SalonID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// mesmo critério do cancelamento: completed e canceled são imutáveis
	if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	proID := in.ProfessionalID
	if proID == 0 {
		proID = ap.ProfessionalID
	}

	pro, err := uc.repo.GetProfessional(ctx, in.SalonID, proID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	date, err := timezone.ParseDateIn(salon.Timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	startMin, err := schedule.ParseHM(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	window := schedule.ResolveDayWindow(salon.Hours, pro.Hours, date)
	if window.Closed || startMin < window.OpenMin || startMin+ap.DurationMin > window.CloseMin {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	oldProID := ap.ProfessionalID
	oldDate := ap.Date

	if err := uc.repo.Reschedule(ctx, ap, pro.ID, in.Date, startMin); err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, oldProID, oldDate)
	uc.cache.InvalidateDay(ctx, pro.ID, in.Date)

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
