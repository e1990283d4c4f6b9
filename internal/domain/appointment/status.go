package appointment

import "github.com/studiobela/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// completed e canceled são terminais: nenhuma transição sai deles.

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_status_transition")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_status_transition")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_status_transition")
	}
	return nil
}

// InitialStatus decide o status de criação conforme o ramo de pagamento:
// com gateway o agendamento nasce pendente até a captura.
func InitialStatus(paymentRequired bool) Status {
	if paymentRequired {
		return StatusPending
	}
	return StatusConfirmed
}
