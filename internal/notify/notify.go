package notify

import (
	"context"

	"github.com/studiobela/salon-scheduler/internal/models"
)

// Notifier avisa o cliente sobre mudanças no agendamento. Falha de envio
// nunca falha a operação que a disparou; implementações logam e seguem.
type Notifier interface {
	AppointmentConfirmed(ctx context.Context, salon *models.Salon, ap *models.Appointment, client *models.Client)
	AppointmentCanceled(ctx context.Context, salon *models.Salon, ap *models.Appointment, client *models.Client)
}

// Noop atende instalações sem provedor de SMS configurado.
type Noop struct{}

func (Noop) AppointmentConfirmed(context.Context, *models.Salon, *models.Appointment, *models.Client) {
}

func (Noop) AppointmentCanceled(context.Context, *models.Salon, *models.Appointment, *models.Client) {
}

var _ Notifier = Noop{}
