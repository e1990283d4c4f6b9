package models

import "time"

// Conta de cliente do salão, criada pelo fluxo guiado ou provisionada na
// entrada manual da equipe (sem senha neste caso).
type Client struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100;index" json:"email"`

	PasswordHash string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
