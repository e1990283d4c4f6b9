package models

import "time"

type Service struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Category    string  `gorm:"size:50" json:"category"`
	Price       float64 `gorm:"type:decimal(10,2)" json:"price"`
	DurationMin int     `json:"duration_min"`
	ImageURL    string  `gorm:"size:255" json:"image_url"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
