package booking

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"

	"github.com/studiobela/salon-scheduler/internal/httperr"
)

// RedisStore mantém as sessões fora do processo, com TTL: abandono expira
// sozinho sem deixar resíduo.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func sessionKey(id string) string {
	return "booking:session:" + id
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, sessionKey(s.ID), b, SessionTTL).Err()
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	b, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, httperr.ErrBusiness("session_not_found")
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, sessionKey(id)).Err()
}

var _ SessionStore = (*RedisStore)(nil)
