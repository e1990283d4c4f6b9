package appointment

import (
	"context"
	"time"

	"github.com/studiobela/salon-scheduler/internal/cache"
	domain "github.com/studiobela/salon-scheduler/internal/domain/appointment"
	"github.com/studiobela/salon-scheduler/internal/httperr"
	"github.com/studiobela/salon-scheduler/internal/schedule"
	"github.com/studiobela/salon-scheduler/internal/timezone"
)

type AvailabilityInput struct {
	SalonID        uint
	ProfessionalID uint
	ServiceIDs     []uint
	Date           string
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.SlotsCache

	now func() time.Time
}

func NewGetAvailability(repo domain.Repository, slotsCache *cache.SlotsCache) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: slotsCache,
		now:   time.Now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]TimeSlot, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	pro, err := uc.repo.GetProfessional(ctx, in.SalonID, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrBusiness("professional_not_found")
	}

	svcs, err := uc.repo.GetServices(ctx, in.SalonID, in.ServiceIDs)
	if err != nil || len(svcs) == 0 {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	duration := 0
	for _, svc := range svcs {
		duration += svc.DurationMin
	}

	date, err := timezone.ParseDateIn(salon.Timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	starts, ok := uc.cache.Get(ctx, in.SalonID, pro.ID, in.Date, duration)
	if !ok {
		starts, err = uc.compute(ctx, salon.Hours, pro.Hours, pro.ID, date, in.Date, duration, salon.Timezone)
		if err != nil {
			return nil, err
		}
		uc.cache.Set(ctx, in.SalonID, pro.ID, in.Date, duration, starts)
	}

	slots := make([]TimeSlot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, TimeSlot{
			Start: schedule.FormatHM(start),
			End:   schedule.FormatHM(start + duration),
		})
	}
	return slots, nil
}

func (uc *GetAvailability) compute(
	ctx context.Context,
	salonHours schedule.OperatingHours,
	proHours schedule.OperatingHours,
	professionalID uint,
	date time.Time,
	dateStr string,
	durationMin int,
	tz string,
) ([]int, error) {

	window := schedule.ResolveDayWindow(salonHours, proHours, date)

	busy, err := uc.repo.ListBusy(ctx, professionalID, dateStr)
	if err != nil {
		return nil, err
	}

	cutoff := schedule.NoCutoff
	now := uc.now().In(timezone.Location(tz))
	if dateStr == now.Format(timezone.DateLayout) {
		cutoff = timezone.MinutesOfDay(now)
	}

	return schedule.Slots(window, busy, durationMin, cutoff), nil
}
