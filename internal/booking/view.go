package booking

import (
	"context"
	"strconv"

	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/schedule"
	"github.com/studiobela/salon-scheduler/internal/timezone"
)

// externalReference liga o pedido de pagamento ao agendamento.
func externalReference(appointmentID uint) string {
	return strconv.FormatUint(uint64(appointmentID), 10)
}

// ParseExternalReference desfaz externalReference no webhook.
func ParseExternalReference(ref string) (uint, error) {
	id, err := strconv.ParseUint(ref, 10, 64)
	if err != nil || id == 0 {
		return 0, httperr.ErrBusiness("invalid_external_reference")
	}
	return uint(id), nil
}

// ======================================================
// VIEW (exposed to the presentation layer)
// ======================================================

type SlotView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type TotalsView struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DiscountPct float64 `json:"discount_pct"`
	Total       float64 `json:"total"`
}

// View é o instantâneo de uma sessão para a camada de apresentação: estado
// atual, ações possíveis, rascunho e as opções do estado corrente.
type View struct {
	SessionID string   `json:"session_id"`
	State     State    `json:"state"`
	Actions   []string `json:"actions"`
	Draft     Draft    `json:"draft"`

	Dates   []string       `json:"dates,omitempty"`
	Slots   []SlotView     `json:"slots,omitempty"`
	Totals  *TotalsView    `json:"totals,omitempty"`
	Payment *PaymentResult `json:"payment,omitempty"`

	AppointmentID *uint `json:"appointment_id,omitempty"`
}

// View monta o instantâneo da sessão, recomputando as opções do estado
// atual (datas abertas, slots livres) a cada chamada.
func (m *Machine) View(ctx context.Context, sessionID string) (*View, error) {
	s, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	v := &View{
		SessionID:     s.ID,
		State:         s.State,
		Actions:       actionsFor(s),
		Draft:         s.Draft,
		Payment:       s.Payment,
		AppointmentID: s.AppointmentID,
	}

	switch s.State {
	case StateDate:
		dates, err := m.DateOptions(ctx, s)
		if err != nil {
			return nil, err
		}
		v.Dates = dates

	case StateTime:
		starts, err := m.slotStarts(ctx, s)
		if err != nil {
			return nil, err
		}
		duration := s.Draft.DurationMin()
		for _, st := range starts {
			v.Slots = append(v.Slots, SlotView{
				Start: schedule.FormatHM(st),
				End:   schedule.FormatHM(st + duration),
			})
		}

	case StateReview, StatePayment, StateSuccess:
		subtotal := s.Draft.Subtotal()
		v.Totals = &TotalsView{
			Subtotal:    subtotal,
			Tax:         Tax(subtotal),
			DiscountPct: s.Draft.DiscountPct,
			Total:       FinalTotal(subtotal, s.Draft.DiscountPct),
		}
	}

	return v, nil
}

func actionsFor(s *Session) []string {
	switch s.State {
	case StateIdentity:
		return []string{"advance", "cancel"}
	case StatePayment:
		return []string{"advance", "cancel"}
	case StateSuccess:
		return nil
	default:
		return []string{"advance", "back", "cancel"}
	}
}

// ======================================================
// OPTIONS
// ======================================================

// DateOptions lista a janela rolante de dias, omitindo (não apenas
// desabilitando) dias cuja janela resolvida está fechada.
func (m *Machine) DateOptions(ctx context.Context, s *Session) ([]string, error) {
	salon, err := m.repo.GetSalonByID(ctx, s.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	var proHours schedule.OperatingHours
	if s.Draft.ProfessionalID != 0 {
		pro, err := m.repo.GetProfessional(ctx, s.SalonID, s.Draft.ProfessionalID)
		if err != nil {
			return nil, httperr.ErrBusiness("professional_not_found")
		}
		proHours = pro.Hours
	}

	today := m.now().In(timezone.Location(salon.Timezone))

	var dates []string
	for i := 0; i < DateWindowDays; i++ {
		day := today.AddDate(0, 0, i)
		w := schedule.ResolveDayWindow(salon.Hours, proHours, day)
		if w.Closed {
			continue
		}
		dates = append(dates, day.Format(timezone.DateLayout))
	}

	return dates, nil
}

func (m *Machine) slotStarts(ctx context.Context, s *Session) ([]int, error) {
	salon, err := m.repo.GetSalonByID(ctx, s.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	pro, err := m.repo.GetProfessional(ctx, s.SalonID, s.Draft.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	date, err := timezone.ParseDateIn(salon.Timezone, s.Draft.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	busy, err := m.repo.ListBusy(ctx, pro.ID, s.Draft.Date)
	if err != nil {
		return nil, err
	}

	window := schedule.ResolveDayWindow(salon.Hours, pro.Hours, date)

	cutoff := schedule.NoCutoff
	now := m.now().In(timezone.Location(salon.Timezone))
	if s.Draft.Date == now.Format(timezone.DateLayout) {
		cutoff = timezone.MinutesOfDay(now)
	}

	return schedule.Slots(window, busy, s.Draft.DurationMin(), cutoff), nil
}
