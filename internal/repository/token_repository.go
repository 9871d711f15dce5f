package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	redisapp "escolta/internal/storage/redis"
)

// RedisTokenRepo keeps refresh and password-reset tokens in redis with
// their natural TTLs.
type RedisTokenRepo struct {
	Client *redisapp.Client
}

func NewRedisTokenRepo(client *redisapp.Client) *RedisTokenRepo {
	return &RedisTokenRepo{Client: client}
}

func (r *RedisTokenRepo) SaveRefreshToken(ctx context.Context, userID, token string, exp time.Duration) error {
	return r.Client.Set(ctx, refreshTokenKey(userID, token), "1", exp).Err()
}

func (r *RedisTokenRepo) GetRefreshToken(ctx context.Context, userID, token string) (bool, error) {
	val, err := r.Client.Get(ctx, refreshTokenKey(userID, token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	return val == "1", err
}

func (r *RedisTokenRepo) DeleteRefreshToken(ctx context.Context, userID, token string) error {
	return r.Client.Del(ctx, refreshTokenKey(userID, token)).Err()
}

func (r *RedisTokenRepo) DeleteAllUserTokens(ctx context.Context, userID string) error {
	keys, err := r.Client.Keys(ctx, refreshTokenKey(userID, "*")).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.Client.Del(ctx, keys...).Err()
}

func (r *RedisTokenRepo) SaveResetToken(ctx context.Context, userID, token string, exp time.Duration) error {
	return r.Client.Set(ctx, resetTokenKey(token), userID, exp).Err()
}

// ConsumeResetToken resolves a reset token to its user and removes it so
// the link is single-use.
func (r *RedisTokenRepo) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	userID, err := r.Client.GetDel(ctx, resetTokenKey(token)).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("reset token not found")
	}
	return userID, err
}

func refreshTokenKey(userID, token string) string {
	return "refresh:" + userID + ":" + token
}

func resetTokenKey(token string) string {
	return "reset:" + token
}
