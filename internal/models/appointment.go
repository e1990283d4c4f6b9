package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint  `gorm:"index" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ProfessionalID uint         `gorm:"index:idx_appointments_pro_date" json:"professional_id"`
	Professional   Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"professional"`

	// Rótulo concatenado dos serviços escolhidos ("Corte + Escova").
	ServicesLabel string  `gorm:"size:255" json:"services_label"`
	Total         float64 `gorm:"type:decimal(10,2)" json:"total"`

	// Data local do salão, sem componente de hora.
	Date        string `gorm:"size:10;index:idx_appointments_pro_date" json:"date"`
	StartMin    int    `json:"start_min"`
	DurationMin int    `json:"duration_min"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	ViaAssistant  bool    `gorm:"default:false" json:"via_assistant"`
	PaymentID     *string `gorm:"size:64" json:"payment_id"`
	PaymentMethod *string `gorm:"size:30" json:"payment_method"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CanceledAt  *time.Time `json:"canceled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) EndMin() int {
	return a.StartMin + a.DurationMin
}
