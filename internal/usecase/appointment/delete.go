package appointment

import (
	"context"

	"github.com/studiobela/salon-scheduler/internal/audit"
	"github.com/studiobela/salon-scheduler/internal/cache"
	domain "github.com/studiobela/salon-scheduler/internal/domain/appointment"
	"github.com/studiobela/salon-scheduler/internal/httperr"
)

// DeleteAppointment remove de vez um agendamento pendente que nunca se
// concretizou (pagamento abandonado, entrada por engano). Agendamentos que
// já viraram histórico se cancelam, não se apagam.
type DeleteAppointment struct {
	repo  domain.Repository
	cache *cache.SlotsCache
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	slotsCache *cache.SlotsCache,
	auditD *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		cache: slotsCache,
		audit: auditD,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	salonID uint,
	userID uint,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointment(ctx, salonID, appointmentID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if domain.Status(ap.Status) != domain.StatusPending {
		return httperr.ErrBusiness("only_pending_deletable")
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.cache.InvalidateDay(ctx, ap.ProfessionalID, ap.Date)

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return nil
}
