package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/mquinn/folio/backend/internal/apperrors"
)

// Redis implements Store over a single Redis instance.
type Redis struct {
	rdb *redis.Client
}

// RedisOptions configures the Redis driver.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, apperrors.Wrap(apperrors.ErrBackendUnavailable,
			fmt.Sprintf("cannot reach redis at %s", opts.Addr), err)
	}
	return &Redis{rdb: rdb}, nil
}

func (r *Redis) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	fields, err := r.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, backendErr("HGETALL", key, err)
	}
	return fields, nil
}

func (r *Redis) HGet(ctx context.Context, key, field string) (string, bool, error) {
	value, err := r.rdb.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, backendErr("HGET", key, err)
	}
	return value, true, nil
}

func (r *Redis) HSet(ctx context.Context, key string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.rdb.HSet(ctx, key, flatten(fields)...).Err(); err != nil {
		return backendErr("HSET", key, err)
	}
	return nil
}

func (r *Redis) HDel(ctx context.Context, key string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.rdb.HDel(ctx, key, fields...).Err(); err != nil {
		return backendErr("HDEL", key, err)
	}
	return nil
}

func (r *Redis) HLen(ctx context.Context, key string) (int64, error) {
	n, err := r.rdb.HLen(ctx, key).Result()
	if err != nil {
		return 0, backendErr("HLEN", key, err)
	}
	return n, nil
}

func (r *Redis) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	if err := r.rdb.SAdd(ctx, key, toAny(members)...).Err(); err != nil {
		return backendErr("SADD", key, err)
	}
	return nil
}

func (r *Redis) SRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	if err := r.rdb.SRem(ctx, key, toAny(members)...).Err(); err != nil {
		return backendErr("SREM", key, err)
	}
	return nil
}

func (r *Redis) SMembers(ctx context.Context, key string) ([]string, error) {
	members, err := r.rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, backendErr("SMEMBERS", key, err)
	}
	return members, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, backendErr("GET", key, err)
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return backendErr("SET", key, err)
	}
	return nil
}

func (r *Redis) Del(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return backendErr("DEL", key, err)
	}
	return nil
}

// Tx queues the batched writes on a MULTI/EXEC pipeline so the backend
// applies them as one unit.
func (r *Redis) Tx(ctx context.Context, fn func(b Batch) error) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		return fn(&redisBatch{ctx: ctx, pipe: pipe})
	})
	if err != nil {
		return backendErr("EXEC", "tx", err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	if err := r.rdb.Ping(ctx).Err(); err != nil {
		return backendErr("PING", "", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}

// redisBatch queues writes on a pipeliner; errors surface from EXEC.
type redisBatch struct {
	ctx  context.Context
	pipe redis.Pipeliner
}

func (b *redisBatch) HSet(key string, fields map[string]string) {
	if len(fields) == 0 {
		return
	}
	b.pipe.HSet(b.ctx, key, flatten(fields)...)
}

func (b *redisBatch) HDel(key string, fields ...string) {
	if len(fields) == 0 {
		return
	}
	b.pipe.HDel(b.ctx, key, fields...)
}

func (b *redisBatch) SAdd(key string, members ...string) {
	if len(members) == 0 {
		return
	}
	b.pipe.SAdd(b.ctx, key, toAny(members)...)
}

func (b *redisBatch) SRem(key string, members ...string) {
	if len(members) == 0 {
		return
	}
	b.pipe.SRem(b.ctx, key, toAny(members)...)
}

func (b *redisBatch) Set(key, value string) {
	b.pipe.Set(b.ctx, key, value, 0)
}

func (b *redisBatch) Del(key string) {
	b.pipe.Del(b.ctx, key)
}

func backendErr(op, key string, err error) error {
	return apperrors.Wrap(apperrors.ErrBackendUnavailable,
		fmt.Sprintf("redis %s %s failed", op, key), err)
}

func flatten(fields map[string]string) []interface{} {
	out := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}

func toAny(members []string) []interface{} {
	out := make([]interface{}, len(members))
	for i, m := range members {
		out[i] = m
	}
	return out
}
