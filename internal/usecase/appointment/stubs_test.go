package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/studiobela/salon-scheduler/internal/cache"
	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/payment"
	"github.com/studiobela/salon-scheduler/internal/schedule"
)

// ======================================================
// STUB COLLABORATORS
// ======================================================

type stubRepo struct {
	salon        models.Salon
	pros         map[uint]models.Professional
	services     map[uint]models.Service
	appointments map[uint]*models.Appointment
	nextID       uint
	deleted      []uint
}

func newStubRepo(salon models.Salon) *stubRepo {
	return &stubRepo{
		salon:        salon,
		pros:         map[uint]models.Professional{},
		services:     map[uint]models.Service{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (r *stubRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if id != r.salon.ID {
		return nil, errors.New("not found")
	}
	s := r.salon
	return &s, nil
}

func (r *stubRepo) GetSalonBySlug(_ context.Context, slug string) (*models.Salon, error) {
	if slug != r.salon.Slug {
		return nil, errors.New("not found")
	}
	s := r.salon
	return &s, nil
}

func (r *stubRepo) GetProfessional(_ context.Context, salonID, id uint) (*models.Professional, error) {
	p, ok := r.pros[id]
	if !ok || p.SalonID != salonID {
		return nil, errors.New("not found")
	}
	return &p, nil
}

func (r *stubRepo) ListProfessionals(_ context.Context, salonID uint) ([]models.Professional, error) {
	var out []models.Professional
	for _, p := range r.pros {
		if p.SalonID == salonID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubRepo) GetServices(_ context.Context, salonID uint, ids []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if s, ok := r.services[id]; ok && s.SalonID == salonID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubRepo) GetOrCreateClient(_ context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	return &models.Client{ID: 99, SalonID: salonID, Name: name, Phone: phone, Email: email}, nil
}

func (r *stubRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	busy := r.busyExcept(ap.ProfessionalID, ap.Date, 0)
	if schedule.HasConflict(ap.StartMin, ap.DurationMin, busy) {
		return httperr.ErrBusiness("time_conflict")
	}

	r.nextID++
	ap.ID = r.nextID
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *stubRepo) GetAppointment(_ context.Context, salonID, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok || ap.SalonID != salonID {
		return nil, errors.New("not found")
	}
	cp := *ap
	return &cp, nil
}

func (r *stubRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *ap
	return &cp, nil
}

func (r *stubRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *stubRepo) DeleteAppointment(_ context.Context, id uint) error {
	delete(r.appointments, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubRepo) Reschedule(_ context.Context, ap *models.Appointment, proID uint, date string, startMin int) error {
	busy := r.busyExcept(proID, date, ap.ID)
	if schedule.HasConflict(startMin, ap.DurationMin, busy) {
		return httperr.ErrBusiness("time_conflict")
	}
	stored := r.appointments[ap.ID]
	stored.ProfessionalID = proID
	stored.Date = date
	stored.StartMin = startMin
	*ap = *stored
	return nil
}

func (r *stubRepo) ListBusy(_ context.Context, proID uint, date string) ([]schedule.Interval, error) {
	return r.busyExcept(proID, date, 0), nil
}

func (r *stubRepo) ListAppointmentsForDay(_ context.Context, salonID uint, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.SalonID == salonID && ap.Date == date {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *stubRepo) ListAppointmentsForMonth(_ context.Context, salonID uint, year, month int) ([]models.Appointment, error) {
	prefix := fmt.Sprintf("%04d-%02d", year, month)
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.SalonID == salonID && strings.HasPrefix(ap.Date, prefix) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *stubRepo) busyExcept(proID uint, date string, skip uint) []schedule.Interval {
	var busy []schedule.Interval
	for _, ap := range r.appointments {
		if ap.ID == skip || ap.ProfessionalID != proID || ap.Date != date {
			continue
		}
		if ap.Status == "canceled" {
			continue
		}
		busy = append(busy, schedule.Interval{StartMin: ap.StartMin, EndMin: ap.EndMin()})
	}
	return busy
}

type stubGateway struct {
	result *payment.Result
	err    error
}

func (g *stubGateway) CreateOrder(_ context.Context, o payment.Order) (*payment.Result, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func (g *stubGateway) GetPayment(_ context.Context, id string) (*payment.Result, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

// ======================================================
// FIXTURE
// ======================================================

func openWeek() schedule.OperatingHours {
	h := schedule.OperatingHours{"sunday": {Closed: true}}
	for _, d := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"} {
		h[d] = schedule.DayHours{Open: "09:00", Close: "18:00"}
	}
	return h
}

func newTestRepo(t *testing.T) *stubRepo {
	t.Helper()

	repo := newStubRepo(models.Salon{
		ID:       1,
		Name:     "Studio X",
		Slug:     "studio-x",
		Timezone: "UTC",
		Hours:    openWeek(),
	})
	repo.pros[10] = models.Professional{ID: 10, SalonID: 1, Name: "Ana"}
	repo.pros[11] = models.Professional{ID: 11, SalonID: 1, Name: "Bia"}
	repo.services[5] = models.Service{ID: 5, SalonID: 1, Name: "Corte", Price: 50, DurationMin: 30}
	repo.services[6] = models.Service{ID: 6, SalonID: 1, Name: "Escova", Price: 50, DurationMin: 30}
	return repo
}

func noCache() *cache.SlotsCache {
	return cache.NewSlotsCache(nil)
}
