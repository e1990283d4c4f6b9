package repository

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/studiobela/salon-scheduler/internal/booking"
	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/validators"
)

// IdentityGormRepository resolve contas de cliente para o fluxo guiado.
type IdentityGormRepository struct {
	db *gorm.DB
}

func NewIdentityGormRepository(db *gorm.DB) *IdentityGormRepository {
	return &IdentityGormRepository{db: db}
}

func (r *IdentityGormRepository) LookupByContact(
	ctx context.Context,
	salonID uint,
	contact string,
) (*booking.Account, error) {

	q := r.db.WithContext(ctx).Where("salon_id = ?", salonID)
	if validators.IsEmail(contact) {
		q = q.Where("email = ?", contact)
	} else {
		q = q.Where("phone = ?", contact)
	}

	var client models.Client
	if err := q.First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toAccount(&client), nil
}

func (r *IdentityGormRepository) SignUp(
	ctx context.Context,
	salonID uint,
	name string,
	email string,
	password string,
) (*booking.Account, error) {

	var existing models.Client
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND email = ?", salonID, email).
		First(&existing).Error
	if err == nil {
		return nil, httperr.ErrBusiness("already_registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	client := models.Client{
		SalonID:      salonID,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return toAccount(&client), nil
}

func (r *IdentityGormRepository) SignIn(
	ctx context.Context,
	salonID uint,
	email string,
	password string,
) (*booking.Account, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND email = ?", salonID, email).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("invalid_credentials")
		}
		return nil, err
	}

	if client.PasswordHash == "" {
		// conta provisionada pela equipe, nunca definiu senha
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(password)) != nil {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	return toAccount(&client), nil
}

func toAccount(c *models.Client) *booking.Account {
	return &booking.Account{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}
}

// Compile-time check
var _ booking.IdentityService = (*IdentityGormRepository)(nil)
