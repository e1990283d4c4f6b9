package booking

import (
	"strings"
	"time"
)

// ===============================
// Booking session
// ===============================

type State string

const (
	StateIdentity     State = "IDENTITY_CHECK"
	StateCredential   State = "IDENTITY_CREDENTIAL"
	StateName         State = "IDENTITY_NAME"
	StateServices     State = "SERVICE_SELECTION"
	StateProfessional State = "PROFESSIONAL_SELECTION"
	StateDate         State = "DATE_SELECTION"
	StateTime         State = "TIME_SELECTION"
	StateReview       State = "REVIEW_CONFIRM"
	StatePayment      State = "PAYMENT"
	StateSuccess      State = "TERMINAL_SUCCESS"
)

// DateWindowDays é a janela rolante de dias oferecidos na escolha de data.
const DateWindowDays = 14

type DraftService struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
}

// Draft é o agregado efêmero da sessão: vive só em memória/Redis e é
// descartado após a criação do agendamento ou no abandono.
type Draft struct {
	Services         []DraftService `json:"services"`
	ProfessionalID   uint           `json:"professional_id"`
	ProfessionalName string         `json:"professional_name"`
	Date             string         `json:"date"`
	StartMin         int            `json:"start_min"`
	DiscountPct      float64        `json:"discount_pct"`
}

func NewDraft() Draft {
	return Draft{StartMin: -1}
}

func (d *Draft) Subtotal() float64 {
	var total float64
	for _, s := range d.Services {
		total += s.Price
	}
	return Round2(total)
}

func (d *Draft) DurationMin() int {
	var total int
	for _, s := range d.Services {
		total += s.DurationMin
	}
	return total
}

func (d *Draft) Label() string {
	names := make([]string, 0, len(d.Services))
	for _, s := range d.Services {
		names = append(names, s.Name)
	}
	return strings.Join(names, " + ")
}

func (d *Draft) HasService(id uint) bool {
	for _, s := range d.Services {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (d *Draft) ToggleService(svc DraftService) {
	for i, s := range d.Services {
		if s.ID == svc.ID {
			d.Services = append(d.Services[:i], d.Services[i+1:]...)
			return
		}
	}
	d.Services = append(d.Services, svc)
}

type Session struct {
	ID      string `json:"id"`
	SalonID uint   `json:"salon_id"`
	State   State  `json:"state"`
	Draft   Draft  `json:"draft"`

	Contact        string `json:"contact"`
	ContactIsEmail bool   `json:"contact_is_email"`
	AccountID      uint   `json:"account_id"`
	AccountName    string `json:"account_name"`
	AccountEmail   string `json:"account_email"`

	StaffMode    bool `json:"staff_mode"`
	ViaAssistant bool `json:"via_assistant"`

	// PromoVerified só é verdadeiro quando o marcador do link E o sinal
	// corroborante da sessão do assistente chegam juntos; nunca vem de
	// query param sozinho.
	PromoVerified bool `json:"promo_verified"`

	AppointmentID *uint          `json:"appointment_id"`
	Payment       *PaymentResult `json:"payment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// PaymentResult guarda a apresentação de um método assíncrono (pix) para a
// tela de espera.
type PaymentResult struct {
	PaymentID    string `json:"payment_id"`
	Method       string `json:"method"`
	Status       string `json:"status"`
	QRCode       string `json:"qr_code,omitempty"`
	QRCodeBase64 string `json:"qr_code_base64,omitempty"`
	CopyPaste    string `json:"copy_paste,omitempty"`
	TicketURL    string `json:"ticket_url,omitempty"`
}
