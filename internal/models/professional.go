package models

import (
	"time"

	"github.com/studiobela/salon-scheduler/internal/schedule"
)

type Professional struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Name string `gorm:"size:100;not null" json:"name"`
	Role string `gorm:"size:50" json:"role"`

	// Hours sobrepõe o horário do salão quando o dia existe e não está
	// fechado; ausente, vale o horário do salão.
	Hours schedule.OperatingHours `gorm:"type:jsonb;default:'{}'" json:"hours"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
