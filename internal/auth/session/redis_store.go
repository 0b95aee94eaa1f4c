package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	authdomain "talentdesk-backend/internal/auth/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "talentdesk:session:"

// RedisStore keeps sessions as JSON values whose TTL matches the session
// expiry, so Redis drops them on its own.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps a connected client
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, sess *authdomain.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+sess.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*authdomain.Session, error) {
	payload, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis GET session: %w", err)
	}

	var sess authdomain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.Expired(time.Now()) {
		return nil, nil
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis DEL session: %w", err)
	}
	return nil
}
