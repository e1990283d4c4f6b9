package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/schedule"
)

// terça-feira; o salão abre 09:00–18:00
const openDate = "2030-06-11"

func newAvailability(repo *stubRepo) *GetAvailability {
	uc := NewGetAvailability(repo, noCache())
	uc.now = func() time.Time { return time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC) }
	return uc
}

func TestAvailabilityFullDay(t *testing.T) {
	repo := newTestRepo(t)
	uc := newAvailability(repo)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 10,
		ServiceIDs:     []uint{5},
		Date:           openDate,
	})
	require.NoError(t, err)

	require.Len(t, slots, 18)
	assert.Equal(t, TimeSlot{Start: "09:00", End: "09:30"}, slots[0])
	assert.Equal(t, TimeSlot{Start: "17:30", End: "18:00"}, slots[17])
}

func TestAvailabilityExcludesBusyIntervals(t *testing.T) {
	repo := newTestRepo(t)
	repo.appointments[1] = &models.Appointment{
		ID: 1, SalonID: 1, ProfessionalID: 10,
		Date: openDate, StartMin: 540, DurationMin: 60,
		Status: "confirmed",
	}
	uc := newAvailability(repo)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 10,
		ServiceIDs:     []uint{5},
		Date:           openDate,
	})
	require.NoError(t, err)

	// 09:00 e 09:30 caem; 10:00 encosta no fim do ocupado e permanece
	require.Len(t, slots, 16)
	assert.Equal(t, "10:00", slots[0].Start)
}

func TestAvailabilityCanceledDoesNotBlock(t *testing.T) {
	repo := newTestRepo(t)
	repo.appointments[1] = &models.Appointment{
		ID: 1, SalonID: 1, ProfessionalID: 10,
		Date: openDate, StartMin: 540, DurationMin: 60,
		Status: "canceled",
	}
	uc := newAvailability(repo)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 10,
		ServiceIDs:     []uint{5},
		Date:           openDate,
	})
	require.NoError(t, err)
	assert.Len(t, slots, 18)
}

func TestAvailabilitySameDayCutoff(t *testing.T) {
	repo := newTestRepo(t)
	uc := NewGetAvailability(repo, noCache())
	uc.now = func() time.Time { return time.Date(2030, 6, 11, 10, 0, 0, 0, time.UTC) }

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 10,
		ServiceIDs:     []uint{5},
		Date:           openDate,
	})
	require.NoError(t, err)

	// 10:00 em ponto ainda leva o buffer de 10 min: 10:00 e anteriores caem
	require.NotEmpty(t, slots)
	assert.Equal(t, "10:30", slots[0].Start)
	assert.Len(t, slots, 15)
}

func TestAvailabilityClosedDayIsEmpty(t *testing.T) {
	repo := newTestRepo(t)
	uc := newAvailability(repo)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 10,
		ServiceIDs:     []uint{5},
		Date:           "2030-06-09", // domingo
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailabilityProfessionalHoursOverride(t *testing.T) {
	repo := newTestRepo(t)
	pro := repo.pros[11]
	pro.Hours = schedule.OperatingHours{
		"tuesday": {Open: "10:00", Close: "12:00"},
	}
	repo.pros[11] = pro
	uc := newAvailability(repo)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 11,
		ServiceIDs:     []uint{5},
		Date:           openDate,
	})
	require.NoError(t, err)

	require.Len(t, slots, 4)
	assert.Equal(t, "10:00", slots[0].Start)
	assert.Equal(t, "11:30", slots[3].Start)
}

func TestAvailabilityMultipleServicesSumDuration(t *testing.T) {
	repo := newTestRepo(t)
	uc := newAvailability(repo)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 10,
		ServiceIDs:     []uint{5, 6},
		Date:           openDate,
	})
	require.NoError(t, err)

	// 60 min por slot: o último início que cabe é 17:00
	require.Len(t, slots, 17)
	assert.Equal(t, TimeSlot{Start: "17:00", End: "18:00"}, slots[16])
}

func TestAvailabilityUnknownServiceRejected(t *testing.T) {
	repo := newTestRepo(t)
	uc := newAvailability(repo)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		SalonID:        1,
		ProfessionalID: 10,
		ServiceIDs:     []uint{404},
		Date:           openDate,
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}
