package models

import (
	"time"

	"github.com/studiobela/salon-scheduler/internal/schedule"
)

const (
	SubscriptionTrial   = "trial"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

type Salon struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	Timezone string `gorm:"size:50" json:"timezone"`

	Hours schedule.OperatingHours `gorm:"type:jsonb;default:'{}'" json:"hours"`

	SubscriptionStatus string     `gorm:"size:20" json:"subscription_status"`
	SubscriptionPlan   string     `gorm:"size:20" json:"subscription_plan"`
	TrialEndsAt        *time.Time `json:"trial_ends_at"`

	AssistantEnabled bool    `gorm:"default:false" json:"assistant_enabled"`
	PromoDiscountPct float64 `gorm:"type:decimal(5,2);default:0" json:"promo_discount_pct"`

	MPPublicKey   string `gorm:"size:255" json:"mp_public_key"`
	MPAccessToken string `gorm:"size:255" json:"-"`

	MinAdvanceMinutes int `gorm:"default:0" json:"min_advance_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPaymentGateway decide o ramo de confirmação: sem gateway o agendamento
// nasce confirmado (pagamento no local).
func (s *Salon) HasPaymentGateway() bool {
	return s.MPAccessToken != ""
}

// PromoActive exige assistente habilitado e desconto configurado.
func (s *Salon) PromoActive() bool {
	return s.AssistantEnabled && s.PromoDiscountPct > 0
}
