package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiobela/salon-scheduler/internal/models"
)

func TestListByDateMapsToDTO(t *testing.T) {
	repo := newTestRepo(t)
	ap := seedAppointment(repo, 1, "confirmed")
	ap.Client = models.Client{ID: 42, Name: "Maria"}
	ap.Professional = models.Professional{ID: 10, Name: "Ana"}
	uc := NewListAppointmentsByDate(repo)

	out, err := uc.Execute(context.Background(), 1, openDate)
	require.NoError(t, err)
	require.Len(t, out.Appointments, 1)

	got := out.Appointments[0]
	assert.Equal(t, uint(1), got.ID)
	assert.Equal(t, "09:00", got.Start)
	assert.Equal(t, "09:30", got.End)
	assert.Equal(t, "Maria", got.ClientName)
	assert.Equal(t, "Ana", got.Professional)
	assert.Equal(t, "Corte", got.ServicesLabel)
	assert.InDelta(t, 52.50, got.Total, 0.001)

	// janela resolvida acompanha a lista para a grade do painel
	assert.False(t, out.Window.Closed)
	assert.Equal(t, "09:00", out.Window.Open)
	assert.Equal(t, "18:00", out.Window.Close)
}

func TestListByDateEmptyDayStillCarriesWindow(t *testing.T) {
	repo := newTestRepo(t)
	uc := NewListAppointmentsByDate(repo)

	out, err := uc.Execute(context.Background(), 1, openDate)
	require.NoError(t, err)
	assert.Empty(t, out.Appointments)
	assert.NotNil(t, out.Appointments)
	assert.Equal(t, "09:00", out.Window.Open)
}

func TestListByDateClosedDayWindow(t *testing.T) {
	repo := newTestRepo(t)
	uc := NewListAppointmentsByDate(repo)

	out, err := uc.Execute(context.Background(), 1, "2030-06-09") // domingo
	require.NoError(t, err)
	assert.True(t, out.Window.Closed)
	assert.Empty(t, out.Window.Open)
}

func TestListByMonthGroupsByDate(t *testing.T) {
	repo := newTestRepo(t)
	seedAppointment(repo, 1, "confirmed")
	seedAppointment(repo, 2, "confirmed").StartMin = 600
	day2 := seedAppointment(repo, 3, "pending")
	day2.Date = "2030-06-12"
	other := seedAppointment(repo, 4, "confirmed")
	other.Date = "2030-07-01" // mês seguinte fica de fora
	uc := NewListAppointmentsByMonth(repo)

	out, err := uc.Execute(context.Background(), 1, 2030, 6)
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Len(t, out[openDate], 2)
	assert.Len(t, out["2030-06-12"], 1)
	assert.NotContains(t, out, "2030-07-01")
}
