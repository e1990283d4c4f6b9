package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/studiobela/salon-scheduler/internal/cache"
	"github.com/studiobela/salon-scheduler/internal/models"
	"github.com/studiobela/salon-scheduler/internal/payment"
)

// PendingTTL é o tempo que um agendamento pode ficar aguardando pagamento
// antes de ser varrido e o horário liberado.
const PendingTTL = 30 * time.Minute

// PendingSweeper apaga agendamentos pendentes cujo pagamento nunca chegou
// (pix abandonado, sessão fechada antes do webhook). Antes de apagar um
// pendente que já tem payment_id, reconsulta o gateway: aprovação cujo
// webhook se perdeu vira confirmação em vez de remoção.
type PendingSweeper struct {
	db       *gorm.DB
	cache    *cache.SlotsCache
	gateways payment.Factory
	cron     *cron.Cron
}

func NewPendingSweeper(db *gorm.DB, slotsCache *cache.SlotsCache, gateways payment.Factory) *PendingSweeper {
	return &PendingSweeper{
		db:       db,
		cache:    slotsCache,
		gateways: gateways,
		cron:     cron.New(),
	}
}

func (s *PendingSweeper) Start() {
	s.cron.AddFunc("*/10 * * * *", func() {
		s.Sweep(context.Background())
	})
	s.cron.Start()
	log.Println("pending sweeper iniciado")
}

func (s *PendingSweeper) Stop() {
	s.cron.Stop()
}

func (s *PendingSweeper) Sweep(ctx context.Context) {
	cutoff := time.Now().Add(-PendingTTL)

	var stale []models.Appointment
	if err := s.db.WithContext(ctx).
		Where("status = 'pending' AND created_at < ?", cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("sweeper: falha ao listar pendentes: %v", err)
		return
	}

	tokens := s.gatewayTokens(ctx, stale)

	removed := 0
	for _, ap := range stale {
		if s.rescue(ctx, &ap, tokens[ap.SalonID]) {
			continue
		}

		if err := s.db.WithContext(ctx).
			Delete(&models.Appointment{}, ap.ID).Error; err != nil {
			log.Printf("sweeper: falha ao apagar agendamento %d: %v", ap.ID, err)
			continue
		}
		removed++
		s.cache.InvalidateDay(ctx, ap.ProfessionalID, ap.Date)
	}

	if removed > 0 {
		log.Printf("sweeper: %d agendamentos pendentes expirados removidos", removed)
	}
}

// gatewayTokens carrega de uma vez os tokens dos salões que têm algum
// pendente com payment_id, evitando uma consulta por linha varrida.
func (s *PendingSweeper) gatewayTokens(ctx context.Context, stale []models.Appointment) map[uint]string {
	ids := make([]uint, 0, len(stale))
	seen := map[uint]bool{}
	for _, ap := range stale {
		if ap.PaymentID == nil || *ap.PaymentID == "" || seen[ap.SalonID] {
			continue
		}
		seen[ap.SalonID] = true
		ids = append(ids, ap.SalonID)
	}

	tokens := map[uint]string{}
	if len(ids) == 0 {
		return tokens
	}

	var salons []models.Salon
	if err := s.db.WithContext(ctx).
		Select("id", "mp_access_token").
		Where("id IN ?", ids).
		Find(&salons).Error; err != nil {
		log.Printf("sweeper: falha ao carregar tokens dos salões: %v", err)
		return tokens
	}
	for _, sl := range salons {
		tokens[sl.ID] = sl.MPAccessToken
	}
	return tokens
}

// rescue reconsulta o gateway para um pendente com payment_id e confirma o
// agendamento quando o pagamento foi aprovado sem o webhook ter chegado.
func (s *PendingSweeper) rescue(ctx context.Context, ap *models.Appointment, accessToken string) bool {
	if ap.PaymentID == nil || *ap.PaymentID == "" {
		return false
	}

	gateway, err := s.gateways(accessToken)
	if err != nil || gateway == nil {
		return false
	}

	result, err := gateway.GetPayment(ctx, *ap.PaymentID)
	if err != nil || result.Status != payment.StatusApproved {
		return false
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = 'pending'", ap.ID).
		Updates(map[string]any{
			"status":       "confirmed",
			"confirmed_at": now,
		}).Error; err != nil {
		log.Printf("sweeper: falha ao resgatar agendamento %d: %v", ap.ID, err)
		return false
	}

	log.Printf("sweeper: agendamento %d confirmado por reconsulta ao gateway", ap.ID)
	return true
}
