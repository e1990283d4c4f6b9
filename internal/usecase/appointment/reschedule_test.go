package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/models"
)

func seedAppointment(repo *stubRepo, id uint, status string) *models.Appointment {
	ap := &models.Appointment{
		ID: id, SalonID: 1, ClientID: 42, ProfessionalID: 10,
		ServicesLabel: "Corte", Total: 52.50,
		Date: openDate, StartMin: 540, DurationMin: 30,
		Status: status,
	}
	repo.appointments[id] = ap
	if id > repo.nextID {
		repo.nextID = id
	}
	return ap
}

func TestRescheduleMovesAndKeepsDuration(t *testing.T) {
	repo := newTestRepo(t)
	seedAppointment(repo, 1, "confirmed")
	uc := NewRescheduleAppointment(repo, noCache(), nil)

	ap, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		SalonID:        1,
		UserID:         2,
		AppointmentID:  1,
		ProfessionalID: 11,
		Date:           "2030-06-12",
		Time:           "11:00",
	})
	require.NoError(t, err)

	assert.Equal(t, uint(11), ap.ProfessionalID)
	assert.Equal(t, "2030-06-12", ap.Date)
	assert.Equal(t, 660, ap.StartMin)
	assert.Equal(t, 30, ap.DurationMin)
	assert.Equal(t, "confirmed", ap.Status)
}

func TestRescheduleKeepsProfessionalWhenOmitted(t *testing.T) {
	repo := newTestRepo(t)
	seedAppointment(repo, 1, "pending")
	uc := NewRescheduleAppointment(repo, noCache(), nil)

	ap, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		SalonID:       1,
		AppointmentID: 1,
		Date:          openDate,
		Time:          "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(10), ap.ProfessionalID)
	assert.Equal(t, 840, ap.StartMin)
}

func TestRescheduleTerminalStatusRejected(t *testing.T) {
	repo := newTestRepo(t)
	uc := NewRescheduleAppointment(repo, noCache(), nil)

	for _, status := range []string{"completed", "canceled"} {
		seedAppointment(repo, 1, status)

		_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
			SalonID:       1,
			AppointmentID: 1,
			Date:          openDate,
			Time:          "14:00",
		})
		assert.True(t, httperr.IsBusiness(err, "invalid_status_transition"), status)
	}
}

func TestRescheduleConflictLeavesOriginalUntouched(t *testing.T) {
	repo := newTestRepo(t)
	seedAppointment(repo, 1, "confirmed")
	seedAppointment(repo, 2, "confirmed").StartMin = 840 // 14:00 ocupado
	uc := NewRescheduleAppointment(repo, noCache(), nil)

	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		SalonID:       1,
		AppointmentID: 1,
		Date:          openDate,
		Time:          "14:00",
	})
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	// registro original permanece no horário antigo
	assert.Equal(t, 540, repo.appointments[1].StartMin)
}

func TestRescheduleOutsideWindow(t *testing.T) {
	repo := newTestRepo(t)
	seedAppointment(repo, 1, "confirmed")
	uc := NewRescheduleAppointment(repo, noCache(), nil)

	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		SalonID:       1,
		AppointmentID: 1,
		Date:          openDate,
		Time:          "17:45",
	})
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestRescheduleUnknownAppointment(t *testing.T) {
	repo := newTestRepo(t)
	uc := NewRescheduleAppointment(repo, noCache(), nil)

	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		SalonID:       1,
		AppointmentID: 404,
		Date:          openDate,
		Time:          "14:00",
	})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
