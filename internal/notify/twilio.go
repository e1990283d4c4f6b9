package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/schedule"
)

// TwilioNotifier envia SMS de confirmação/cancelamento ao cliente.
type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioNotifier(accountSID, authToken, from string) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

func (n *TwilioNotifier) AppointmentConfirmed(
	_ context.Context,
	salon *models.Salon,
	ap *models.Appointment,
	client *models.Client,
) {
	body := fmt.Sprintf(
		"%s: agendamento confirmado para %s às %s (%s).",
		salon.Name, ap.Date, schedule.FormatHM(ap.StartMin), ap.ServicesLabel,
	)
	n.send(client.Phone, body)
}

func (n *TwilioNotifier) AppointmentCanceled(
	_ context.Context,
	salon *models.Salon,
	ap *models.Appointment,
	client *models.Client,
) {
	body := fmt.Sprintf(
		"%s: seu agendamento de %s às %s foi cancelado.",
		salon.Name, ap.Date, schedule.FormatHM(ap.StartMin),
	)
	n.send(client.Phone, body)
}

func (n *TwilioNotifier) send(to, body string) {
	if to == "" {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("twilio: falha ao enviar para %s: %v", to, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("twilio: mensagem enviada para %s, SID %s", to, *resp.Sid)
	}
}

var _ Notifier = (*TwilioNotifier)(nil)
