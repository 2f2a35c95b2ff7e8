package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"adminhub/console/internal/models"
)

const (
	redisTokenKey = "console:session:access_token"
	redisUserKey  = "console:session:user_info"
)

// RedisStore holds the session in Redis for deployments where the gateway's
// durable state lives out of process.
type RedisStore struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisStore(client *redis.Client, log zerolog.Logger) *RedisStore {
	return &RedisStore{client: client, log: log}
}

func (s *RedisStore) Save(ctx context.Context, token string, user *models.UserInfo) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, redisTokenKey, token, 0).Err(); err != nil {
		return err
	}
	return s.client.Set(ctx, redisUserKey, data, 0).Err()
}

func (s *RedisStore) Load(ctx context.Context) (string, *models.UserInfo) {
	token, err := s.client.Get(ctx, redisTokenKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("session token read failed")
	}

	raw, err := s.client.Get(ctx, redisUserKey).Bytes()
	if err != nil {
		return token, nil
	}

	var user models.UserInfo
	if err := json.Unmarshal(raw, &user); err != nil {
		s.log.Warn().Err(err).Msg("discarding corrupt persisted user")
		_ = s.client.Del(ctx, redisUserKey).Err()
		return token, nil
	}
	return token, &user
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, redisTokenKey, redisUserKey).Err()
}
