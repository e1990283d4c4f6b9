package appointment

import (
	"context"

	domain "github.com/studiobela/salon-scheduler/internal/domain/appointment"
	"github.com/studiobela/salon-scheduler/internal/dto"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

// Execute devolve o mês agrupado por dia, pronto para a grade do painel.
func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	salonID uint,
	year int,
	month int,
) (map[string][]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForMonth(ctx, salonID, year, month)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]dto.AppointmentListDTO)
	for _, ap := range appointments {
		out[ap.Date] = append(out[ap.Date], toListDTO(ap))
	}

	return out, nil
}
