package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SlotsTTL é curto de propósito: o cache só amortece rajadas de consulta de
// disponibilidade; escritas invalidam o dia explicitamente.
const SlotsTTL = 60 * time.Second

// SlotsCache guarda os inícios de slot computados por
// profissional/dia/duração.
type SlotsCache struct {
	rdb *redis.Client
}

func NewSlotsCache(rdb *redis.Client) *SlotsCache {
	return &SlotsCache{rdb: rdb}
}

func slotsKey(salonID, professionalID uint, date string, durationMin int) string {
	return fmt.Sprintf("slots:%d:%d:%s:%d", salonID, professionalID, date, durationMin)
}

func dayPattern(professionalID uint, date string) string {
	return fmt.Sprintf("slots:*:%d:%s:*", professionalID, date)
}

func (c *SlotsCache) Get(
	ctx context.Context,
	salonID uint,
	professionalID uint,
	date string,
	durationMin int,
) ([]int, bool) {

	if c == nil || c.rdb == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, slotsKey(salonID, professionalID, date, durationMin)).Bytes()
	if err != nil {
		return nil, false
	}

	var starts []int
	if err := json.Unmarshal(data, &starts); err != nil {
		return nil, false
	}
	return starts, true
}

func (c *SlotsCache) Set(
	ctx context.Context,
	salonID uint,
	professionalID uint,
	date string,
	durationMin int,
	starts []int,
) {

	if c == nil || c.rdb == nil {
		return
	}

	data, err := json.Marshal(starts)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, slotsKey(salonID, professionalID, date, durationMin), data, SlotsTTL)
}

// InvalidateDay derruba todas as entradas do profissional no dia, qualquer
// que seja a duração consultada.
func (c *SlotsCache) InvalidateDay(ctx context.Context, professionalID uint, date string) {
	if c == nil || c.rdb == nil {
		return
	}

	iter := c.rdb.Scan(ctx, 0, dayPattern(professionalID, date), 100).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
