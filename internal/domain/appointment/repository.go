package appointment

import (
	"context"

	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/schedule"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonBySlug(
		ctx context.Context,
		slug string,
	) (*models.Salon, error)

	// -------- Professional --------
	GetProfessional(
		ctx context.Context,
		salonID uint,
		professionalID uint,
	) (*models.Professional, error)

	ListProfessionals(
		ctx context.Context,
		salonID uint,
	) ([]models.Professional, error)

	// -------- Service --------
	GetServices(
		ctx context.Context,
		salonID uint,
		ids []uint,
	) ([]models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment valida o conflito dentro de uma transação com lock
	// e insere; conflito vira o código de negócio "time_conflict" — a
	// constraint de exclusão do banco é a garantia final contra corrida.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		salonID uint,
		id uint,
	) (*models.Appointment, error)

	// GetAppointmentByID busca sem escopo de salão (webhook de pagamento).
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// Reschedule move o agendamento para (professional, date, start) de
	// forma atômica: check-then-write na mesma transação, registro original
	// intocado em caso de conflito.
	Reschedule(
		ctx context.Context,
		ap *models.Appointment,
		professionalID uint,
		date string,
		startMin int,
	) error

	// -------- Availability --------

	// ListBusy retorna os intervalos não cancelados de um profissional numa
	// data, já na forma consumida pelo predicado compartilhado.
	ListBusy(
		ctx context.Context,
		professionalID uint,
		date string,
	) ([]schedule.Interval, error)

	ListAppointmentsForDay(
		ctx context.Context,
		salonID uint,
		date string,
	) ([]models.Appointment, error)

	ListAppointmentsForMonth(
		ctx context.Context,
		salonID uint,
		year int,
		month int,
	) ([]models.Appointment, error)
}
