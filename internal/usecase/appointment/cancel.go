package appointment

import (
	"context"

	"github.com/studiobela/salon-scheduler/internal/audit"
	"github.com/studiobela/salon-scheduler/internal/cache"
	domain "github.com/studiobela/salon-scheduler/internal/domain/appointment"
	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/notify"
	"github.com/studiobela/salon-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo     domain.Repository
	cache    *cache.SlotsCache
	audit    *audit.Dispatcher
	notifier notify.Notifier
}

func NewCancelAppointment(
	repo domain.Repository,
	slotsCache *cache.SlotsCache,
	auditD *audit.Dispatcher,
	notifier notify.Notifier,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		cache:    slotsCache,
		audit:    auditD,
		notifier: notifier,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	salonID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, salonID, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(salon.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// o horário volta a ficar disponível
	uc.cache.InvalidateDay(ctx, ap.ProfessionalID, ap.Date)

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "appointment_canceled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.notifier.AppointmentCanceled(ctx, salon, ap, &ap.Client)

	return ap, nil
}
