package appointment

import (
	"context"

	"github.com/studiobela/salon-scheduler/internal/audit"
	"github.com/studiobela/salon-scheduler/internal/booking"
	"github.com/studiobela/salon-scheduler/internal/cache"
	domain "github.com/studiobela/salon-scheduler/internal/domain/appointment"
	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/notify"
	"github.com/studiobela/salon-scheduler/internal/payment"
	"github.com/studiobela/salon-scheduler/internal/timezone"
)

// ConfirmPayment processa a notificação do gateway para pagamentos
// assíncronos (pix). Idempotente: reentregas do webhook sobre um agendamento
// já confirmado são no-ops.
type ConfirmPayment struct {
	repo     domain.Repository
	cache    *cache.SlotsCache
	gateways payment.Factory
	audit    *audit.Dispatcher
	notifier notify.Notifier
}

func NewConfirmPayment(
	repo domain.Repository,
	slotsCache *cache.SlotsCache,
	gateways payment.Factory,
	auditD *audit.Dispatcher,
	notifier notify.Notifier,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:     repo,
		cache:    slotsCache,
		gateways: gateways,
		audit:    auditD,
		notifier: notifier,
	}
}

func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	salonID uint,
	paymentID string,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	gateway, err := uc.gateways(salon.MPAccessToken)
	if err != nil || gateway == nil {
		return nil, httperr.ErrBusiness("gateway_unavailable")
	}

	// sempre consulta o gateway; o corpo do webhook não é confiável
	result, err := gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, httperr.ErrBusiness("payment_not_found")
	}

	apID, err := booking.ParseExternalReference(result.ExternalReference)
	if err != nil {
		return nil, httperr.ErrBusiness("unknown_reference")
	}

	ap, err := uc.repo.GetAppointment(ctx, salonID, apID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	status := domain.Status(ap.Status)

	switch result.Status {
	case payment.StatusApproved:
		if status == domain.StatusConfirmed {
			return ap, nil
		}
		if err := domain.CanConfirm(status); err != nil {
			return nil, err
		}

		now := timezone.NowIn(salon.Timezone)
		if err := domain.Confirm(ap, now); err != nil {
			return nil, err
		}
		ap.PaymentID = &result.PaymentID
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}

		uc.audit.Dispatch(audit.Event{
			SalonID:  salonID,
			Action:   "appointment_confirmed",
			Entity:   "appointment",
			EntityID: &ap.ID,
		})
		uc.notifier.AppointmentConfirmed(ctx, salon, ap, &ap.Client)
		return ap, nil

	case payment.StatusRejected, payment.StatusCanceled:
		if status != domain.StatusPending {
			return ap, nil
		}

		if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
			return nil, err
		}
		uc.cache.InvalidateDay(ctx, ap.ProfessionalID, ap.Date)

		uc.audit.Dispatch(audit.Event{
			SalonID:  salonID,
			Action:   "appointment_payment_failed",
			Entity:   "appointment",
			EntityID: &ap.ID,
		})
		return nil, httperr.ErrBusiness("payment_rejected")
	}

	// pendente no gateway: nada a fazer ainda
	return ap, nil
}
