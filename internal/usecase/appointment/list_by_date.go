package appointment

import (
	"context"

	domain "github.com/studiobela/salon-scheduler/internal/domain/appointment"
	"github.com/studiobela/salon-scheduler/internal/dto"
	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/schedule"
	"github.com/studiobela/salon-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute devolve o dia completo: agendamentos mais a janela de
// funcionamento resolvida, que o painel usa para desenhar a grade.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	salonID uint,
	date string,
) (*dto.DayScheduleDTO, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	parsed, err := timezone.ParseDateIn(salon.Timezone, date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, salonID, date)
	if err != nil {
		return nil, err
	}

	list := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		list = append(list, toListDTO(ap))
	}

	window := schedule.ResolveDayWindow(salon.Hours, nil, parsed)
	w := dto.DayWindowDTO{Closed: window.Closed}
	if !window.Closed {
		w.Open = schedule.FormatHM(window.OpenMin)
		w.Close = schedule.FormatHM(window.CloseMin)
	}

	return &dto.DayScheduleDTO{
		Date:         date,
		Window:       w,
		Appointments: list,
	}, nil
}

func toListDTO(ap models.Appointment) dto.AppointmentListDTO {
	return dto.AppointmentListDTO{
		ID:            ap.ID,
		Date:          ap.Date,
		Start:         schedule.FormatHM(ap.StartMin),
		End:           schedule.FormatHM(ap.EndMin()),
		Status:        ap.Status,
		ClientName:    ap.Client.Name,
		Professional:  ap.Professional.Name,
		ServicesLabel: ap.ServicesLabel,
		Total:         ap.Total,
	}
}
