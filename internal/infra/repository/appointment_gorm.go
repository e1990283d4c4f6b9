package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/studiobela/salon-scheduler/internal/domain/appointment"
	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/schedule"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *AppointmentGormRepository) GetSalonBySlug(
	ctx context.Context,
	slug string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&salon).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Professional
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	salonID uint,
	professionalID uint,
) (*models.Professional, error) {

	var pro models.Professional
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", professionalID, salonID).
		First(&pro).Error; err != nil {
		return nil, err
	}
	return &pro, nil
}

func (r *AppointmentGormRepository) ListProfessionals(
	ctx context.Context,
	salonID uint,
) ([]models.Professional, error) {

	var pros []models.Professional
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = true", salonID).
		Order("name ASC").
		Find(&pros).Error; err != nil {
		return nil, err
	}
	return pros, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetServices(
	ctx context.Context,
	salonID uint,
	ids []uint,
) ([]models.Service, error) {

	var svcs []models.Service
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND id IN ?", salonID, ids).
		Find(&svcs).Error; err != nil {
		return nil, err
	}
	return svcs, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND (email = ? OR phone = ?)", salonID, email, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// CreateAppointment valida o conflito e insere na mesma transação. As linhas
// ocupadas do profissional/dia são travadas FOR UPDATE; a exclusion
// constraint do Postgres cobre a janela entre réplicas.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoConflict(tx, ap.ProfessionalID, ap.Date, ap.StartMin, ap.DurationMin, 0); err != nil {
			return err
		}
		return tx.Create(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}
	return err
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.Appointment{}, appointmentID).Error
}

// Reschedule move o agendamento validando o destino na mesma transação. O
// próprio agendamento é excluído da checagem de conflito.
func (r *AppointmentGormRepository) Reschedule(
	ctx context.Context,
	ap *models.Appointment,
	professionalID uint,
	date string,
	startMin int,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertNoConflict(tx, professionalID, date, startMin, ap.DurationMin, ap.ID); err != nil {
			return err
		}

		ap.ProfessionalID = professionalID
		ap.Date = date
		ap.StartMin = startMin
		return tx.Save(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}
	return err
}

func assertNoConflict(
	tx *gorm.DB,
	professionalID uint,
	date string,
	startMin int,
	durationMin int,
	excludeID uint,
) error {

	if durationMin <= 0 {
		return fmt.Errorf("invalid duration: %d", durationMin)
	}

	end := startMin + durationMin

	// Postgres não aceita FOR UPDATE junto com agregação: seleciona as
	// linhas sobrepostas com lock e conta em memória. A constraint de
	// exclusão do banco segue sendo a garantia final contra corrida.
	var blocking []models.Appointment
	q := tx.Model(&models.Appointment{}).
		Select("id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"professional_id = ? AND date = ? AND status != 'canceled' AND start_min < ? AND start_min + duration_min > ?",
			professionalID, date, end, startMin,
		)
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	if err := q.Find(&blocking).Error; err != nil {
		return err
	}

	if len(blocking) > 0 {
		return httperr.ErrBusiness("time_conflict")
	}
	return nil
}

// --------------------------------------------------
// Availability / listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBusy(
	ctx context.Context,
	professionalID uint,
	date string,
) ([]schedule.Interval, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_min", "duration_min").
		Where(
			"professional_id = ? AND date = ? AND status != 'canceled'",
			professionalID, date,
		).
		Order("start_min ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	busy := make([]schedule.Interval, 0, len(apps))
	for _, ap := range apps {
		busy = append(busy, schedule.Interval{
			StartMin: ap.StartMin,
			EndMin:   ap.EndMin(),
		})
	}
	return busy, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	salonID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Professional").
		Where("salon_id = ? AND date = ?", salonID, date).
		Order("start_min ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForMonth(
	ctx context.Context,
	salonID uint,
	year int,
	month int,
) ([]models.Appointment, error) {

	prefix := fmt.Sprintf("%04d-%02d-%%", year, month)

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Professional").
		Where("salon_id = ? AND date LIKE ?", salonID, prefix).
		Order("date ASC, start_min ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
