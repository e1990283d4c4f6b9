package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studiobela/salon-scheduler/internal/audit"
	domain "github.com/studiobela/salon-scheduler/internal/domain/appointment"
	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/payment"
	"github.com/studiobela/salon-scheduler/internal/schedule"
	"github.com/studiobela/salon-scheduler/internal/timezone"
	"github.com/studiobela/salon-scheduler/internal/validators"
)

// ======================================================
// BOOKING STATE MACHINE
// ======================================================

// Machine dirige o fluxo guiado de agendamento. Todo estado compartilhado
// (usuário, salão, seleções) vive na Session passada a cada transição —
// nada de estado ambiente.
type Machine struct {
	repo     domain.Repository
	identity IdentityService
	store    SessionStore
	gateways payment.Factory
	slots    SlotsInvalidator
	audit    *audit.Dispatcher

	now func() time.Time
}

// SlotsInvalidator derruba a disponibilidade cacheada do dia de um
// profissional depois de uma escrita que muda os horários livres.
type SlotsInvalidator interface {
	InvalidateDay(ctx context.Context, professionalID uint, date string)
}

func NewMachine(
	repo domain.Repository,
	identity IdentityService,
	store SessionStore,
	gateways payment.Factory,
	slots SlotsInvalidator,
	auditD *audit.Dispatcher,
) *Machine {
	return &Machine{
		repo:     repo,
		identity: identity,
		store:    store,
		gateways: gateways,
		slots:    slots,
		audit:    auditD,
		now:      time.Now,
	}
}

// Input é a união dos dados aceitos por Advance; cada estado lê só os
// campos que lhe pertencem.
type Input struct {
	Contact  string `json:"contact"`
	Password string `json:"password"`
	Name     string `json:"name"`

	ServiceID      uint   `json:"service_id"`
	ProfessionalID uint   `json:"professional_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`

	Confirm bool `json:"confirm"`

	PaymentMethod string `json:"payment_method"`
	CardToken     string `json:"card_token"`
}

// EntryOptions configura a entrada do fluxo guiado. PromoMarker vem do
// link; AssistantVerified é o sinal corroborante setado por um passo
// confiável do handler — o desconto exige os dois.
type EntryOptions struct {
	PromoMarker       bool
	AssistantVerified bool
	ViaAssistant      bool
}

// ======================================================
// ENTRY POINTS
// ======================================================

// Start abre uma sessão do fluxo guiado no IDENTITY_CHECK.
func (m *Machine) Start(ctx context.Context, salonID uint, entry EntryOptions) (*Session, error) {
	salon, err := m.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	s := &Session{
		ID:           uuid.NewString(),
		SalonID:      salon.ID,
		State:        StateIdentity,
		Draft:        NewDraft(),
		ViaAssistant: entry.ViaAssistant,
		CreatedAt:    m.now(),
	}

	if entry.PromoMarker && entry.AssistantVerified && salon.PromoActive() {
		s.PromoVerified = true
		s.Draft.DiscountPct = salon.PromoDiscountPct
	}

	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// StartStaff abre uma sessão da entrada manual da equipe direto na seleção
// de serviços, com profissional/data pré-selecionados do clique na grade.
func (m *Machine) StartStaff(ctx context.Context, salonID, clientID, professionalID uint, date string) (*Session, error) {
	salon, err := m.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	s := &Session{
		ID:        uuid.NewString(),
		SalonID:   salon.ID,
		State:     StateServices,
		Draft:     NewDraft(),
		AccountID: clientID,
		StaffMode: true,
		CreatedAt: m.now(),
	}

	if professionalID != 0 {
		pro, err := m.repo.GetProfessional(ctx, salonID, professionalID)
		if err != nil {
			return nil, httperr.ErrBusiness("professional_not_found")
		}
		s.Draft.ProfessionalID = pro.ID
		s.Draft.ProfessionalName = pro.Name
	}
	s.Draft.Date = date

	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Abandon descarta a sessão. Um agendamento pendente já criado pelo passo
// de pagamento é apagado explicitamente, não fica decaindo.
func (m *Machine) Abandon(ctx context.Context, sessionID string) error {
	s, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	if s.AppointmentID != nil && s.State == StatePayment {
		if err := m.repo.DeleteAppointment(ctx, *s.AppointmentID); err != nil {
			return err
		}
		m.invalidateDay(ctx, s.Draft.ProfessionalID, s.Draft.Date)
	}

	return m.store.Delete(ctx, sessionID)
}

// ======================================================
// TRANSITIONS
// ======================================================

// Advance aplica a entrada ao estado atual. Erros de validação e de
// conflito são de negócio e deixam a sessão utilizável; nunca corrompem o
// rascunho.
func (m *Machine) Advance(ctx context.Context, sessionID string, in Input) (*Session, error) {
	s, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch s.State {
	case StateIdentity:
		err = m.stepIdentity(ctx, s, in)
	case StateCredential:
		err = m.stepCredential(ctx, s, in)
	case StateName:
		err = m.stepName(ctx, s, in)
	case StateServices:
		err = m.stepServices(ctx, s, in)
	case StateProfessional:
		err = m.stepProfessional(ctx, s, in)
	case StateDate:
		err = m.stepDate(ctx, s, in)
	case StateTime:
		err = m.stepTime(ctx, s, in)
	case StateReview:
		err = m.stepReview(ctx, s, in)
	case StatePayment:
		err = m.stepPayment(ctx, s, in)
	default:
		err = httperr.ErrBusiness("flow_finished")
	}

	if err != nil {
		// sessão pode ter mudado de estado mesmo com erro de negócio
		// (ex.: conflito de horário volta para TIME_SELECTION)
		if saveErr := m.store.Save(ctx, s); saveErr != nil {
			return nil, saveErr
		}
		return s, err
	}

	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Back volta ao predecessor imediato, descartando apenas a seleção do
// próprio estado. O passo de pagamento não tem volta.
func (m *Machine) Back(ctx context.Context, sessionID string) (*Session, error) {
	s, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch s.State {
	case StateCredential, StateName:
		s.Contact = ""
		s.ContactIsEmail = false
		s.State = StateIdentity
	case StateServices:
		if s.StaffMode {
			return nil, httperr.ErrBusiness("cannot_go_back")
		}
		s.Draft.Services = nil
		s.State = StateIdentity
	case StateProfessional:
		s.Draft.ProfessionalID = 0
		s.Draft.ProfessionalName = ""
		s.State = StateServices
	case StateDate:
		s.Draft.Date = ""
		s.State = StateProfessional
	case StateTime:
		s.Draft.StartMin = -1
		s.State = StateDate
	case StateReview:
		s.State = StateTime
	default:
		return nil, httperr.ErrBusiness("cannot_go_back")
	}

	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ======================================================
// STEPS
// ======================================================

func (m *Machine) stepIdentity(ctx context.Context, s *Session, in Input) error {
	contact := validators.NormalizeContact(in.Contact)
	if contact == "" {
		return httperr.ErrBusiness("contact_required")
	}

	account, err := m.identity.LookupByContact(ctx, s.SalonID, contact)
	if err != nil {
		return err
	}

	s.Contact = contact
	s.ContactIsEmail = validators.IsEmail(contact)

	if account != nil {
		s.AccountID = account.ID
		s.AccountName = account.Name
		s.AccountEmail = account.Email
		s.State = StateCredential
		return nil
	}

	if s.ContactIsEmail {
		s.State = StateName
		return nil
	}

	// telefone sozinho não decide novo-vs-existente; pede e-mail
	s.Contact = ""
	s.ContactIsEmail = false
	return httperr.ErrBusiness("email_required")
}

func (m *Machine) stepCredential(ctx context.Context, s *Session, in Input) error {
	email := s.AccountEmail
	if email == "" {
		email = s.Contact
	}

	account, err := m.identity.SignIn(ctx, s.SalonID, email, in.Password)
	if err != nil {
		return err
	}

	s.AccountID = account.ID
	s.AccountName = account.Name
	s.AccountEmail = account.Email
	s.State = StateServices
	return nil
}

func (m *Machine) stepName(ctx context.Context, s *Session, in Input) error {
	if in.Name == "" {
		return httperr.ErrBusiness("name_required")
	}
	if in.Password == "" {
		return httperr.ErrBusiness("password_required")
	}

	account, err := m.identity.SignUp(ctx, s.SalonID, in.Name, s.Contact, in.Password)
	if httperr.IsBusiness(err, "already_registered") {
		// cadastro e login são uma conversa só: conta existente redireciona
		// para o passo de credencial
		s.AccountEmail = s.Contact
		s.State = StateCredential
		return nil
	}
	if err != nil {
		return err
	}

	s.AccountID = account.ID
	s.AccountName = account.Name
	s.AccountEmail = account.Email
	s.State = StateServices
	return nil
}

func (m *Machine) stepServices(ctx context.Context, s *Session, in Input) error {
	if in.ServiceID != 0 {
		svcs, err := m.repo.GetServices(ctx, s.SalonID, []uint{in.ServiceID})
		if err != nil || len(svcs) == 0 {
			return httperr.ErrBusiness("service_not_found")
		}
		svc := svcs[0]
		s.Draft.ToggleService(DraftService{
			ID:          svc.ID,
			Name:        svc.Name,
			Price:       svc.Price,
			DurationMin: svc.DurationMin,
		})
		return nil
	}

	if !in.Confirm {
		return httperr.ErrBusiness("service_required")
	}
	if len(s.Draft.Services) == 0 {
		return httperr.ErrBusiness("service_required")
	}

	if s.Draft.ProfessionalID != 0 {
		if s.Draft.Date != "" {
			s.State = StateTime
		} else {
			s.State = StateDate
		}
		return nil
	}

	s.State = StateProfessional
	return nil
}

func (m *Machine) stepProfessional(ctx context.Context, s *Session, in Input) error {
	if in.ProfessionalID == 0 {
		return httperr.ErrBusiness("professional_required")
	}

	pro, err := m.repo.GetProfessional(ctx, s.SalonID, in.ProfessionalID)
	if err != nil {
		return httperr.ErrBusiness("professional_not_found")
	}

	s.Draft.ProfessionalID = pro.ID
	s.Draft.ProfessionalName = pro.Name
	s.State = StateDate
	return nil
}

func (m *Machine) stepDate(ctx context.Context, s *Session, in Input) error {
	if in.Date == "" {
		return httperr.ErrBusiness("date_required")
	}

	dates, err := m.DateOptions(ctx, s)
	if err != nil {
		return err
	}

	for _, d := range dates {
		if d == in.Date {
			s.Draft.Date = in.Date
			s.State = StateTime
			return nil
		}
	}

	return httperr.ErrBusiness("date_unavailable")
}

func (m *Machine) stepTime(ctx context.Context, s *Session, in Input) error {
	start, err := schedule.ParseHM(in.Time)
	if err != nil {
		return httperr.ErrBusiness("invalid_time")
	}

	starts, err := m.slotStarts(ctx, s)
	if err != nil {
		return err
	}

	for _, st := range starts {
		if st == start {
			s.Draft.StartMin = start
			s.State = StateReview
			return nil
		}
	}

	return httperr.ErrBusiness("slot_unavailable")
}

func (m *Machine) stepReview(ctx context.Context, s *Session, in Input) error {
	if !in.Confirm {
		return httperr.ErrBusiness("confirmation_required")
	}

	salon, err := m.repo.GetSalonByID(ctx, s.SalonID)
	if err != nil {
		return httperr.ErrBusiness("salon_not_found")
	}

	total := FinalTotal(s.Draft.Subtotal(), s.Draft.DiscountPct)
	paymentRequired := salon.HasPaymentGateway() && !s.StaffMode

	ap := &models.Appointment{
		SalonID:        s.SalonID,
		ClientID:       s.AccountID,
		ProfessionalID: s.Draft.ProfessionalID,
		ServicesLabel:  s.Draft.Label(),
		Total:          total,
		Date:           s.Draft.Date,
		StartMin:       s.Draft.StartMin,
		DurationMin:    s.Draft.DurationMin(),
		Status:         string(domain.InitialStatus(paymentRequired)),
		ViaAssistant:   s.ViaAssistant,
	}

	if err := m.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") || httperr.IsExclusionConflict(err) {
			// horário não está mais disponível: volta para a escolha de
			// horário, slots serão recomputados
			s.Draft.StartMin = -1
			s.State = StateTime
			return httperr.ErrBusiness("time_conflict")
		}
		return err
	}

	s.AppointmentID = &ap.ID
	m.invalidateDay(ctx, ap.ProfessionalID, ap.Date)
	m.dispatch(s, "appointment_created", &ap.ID)

	if paymentRequired {
		s.State = StatePayment
		return nil
	}

	s.State = StateSuccess
	return nil
}

func (m *Machine) stepPayment(ctx context.Context, s *Session, in Input) error {
	if s.AppointmentID == nil {
		return httperr.ErrBusiness("appointment_missing")
	}

	salon, err := m.repo.GetSalonByID(ctx, s.SalonID)
	if err != nil {
		return httperr.ErrBusiness("salon_not_found")
	}

	gateway, err := m.gateways(salon.MPAccessToken)
	if err != nil || gateway == nil {
		return httperr.ErrBusiness("gateway_unavailable")
	}

	ap, err := m.repo.GetAppointment(ctx, s.SalonID, *s.AppointmentID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	result, err := gateway.CreateOrder(ctx, payment.Order{
		Amount:            ap.Total,
		Description:       ap.ServicesLabel,
		PayerEmail:        s.AccountEmail,
		PayerName:         s.AccountName,
		ExternalReference: externalReference(ap.ID),
		Method:            in.PaymentMethod,
		CardToken:         in.CardToken,
	})

	if err != nil || result.Status == payment.StatusRejected {
		// captura falhou: deleção compensatória, nenhum agendamento
		// fantasma pendente sobrevive
		if delErr := m.repo.DeleteAppointment(ctx, ap.ID); delErr != nil {
			return delErr
		}
		m.invalidateDay(ctx, ap.ProfessionalID, ap.Date)
		m.dispatch(s, "appointment_payment_failed", &ap.ID)
		s.AppointmentID = nil
		s.State = StateReview
		if err != nil {
			return httperr.ErrBusiness("payment_failed")
		}
		return httperr.ErrBusiness("payment_rejected")
	}

	method := in.PaymentMethod
	ap.PaymentID = &result.PaymentID
	ap.PaymentMethod = &method

	if result.Status == payment.StatusApproved {
		now := timezone.NowIn(salon.Timezone)
		if err := domain.Confirm(ap, now); err != nil {
			return err
		}
		if err := m.repo.UpdateAppointment(ctx, ap); err != nil {
			return err
		}
		m.dispatch(s, "appointment_confirmed", &ap.ID)
		s.Payment = &PaymentResult{PaymentID: result.PaymentID, Method: method, Status: result.Status}
		s.State = StateSuccess
		return nil
	}

	// método assíncrono: fica pendente até o webhook
	if err := m.repo.UpdateAppointment(ctx, ap); err != nil {
		return err
	}
	s.Payment = &PaymentResult{
		PaymentID:    result.PaymentID,
		Method:       method,
		Status:       result.Status,
		QRCode:       result.QRCode,
		QRCodeBase64: result.QRCodeBase64,
		CopyPaste:    result.CopyPaste,
		TicketURL:    result.TicketURL,
	}
	return nil
}

func (m *Machine) invalidateDay(ctx context.Context, professionalID uint, date string) {
	if m.slots == nil {
		return
	}
	m.slots.InvalidateDay(ctx, professionalID, date)
}

func (m *Machine) dispatch(s *Session, action string, entityID *uint) {
	if m.audit == nil {
		return
	}
	m.audit.Dispatch(audit.Event{
		SalonID:  s.SalonID,
		Action:   action,
		Entity:   "appointment",
		EntityID: entityID,
	})
}
