package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/fornecedor-api/internal/config"
	"github.com/MKhiriev/fornecedor-api/internal/logger"
)

const (
	redisFailuresKeyPrefix = "lockout:failures:"
	redisUntilKeyPrefix    = "lockout:until:"
	redisPingTimeout       = 5 * time.Second
)

// redisLockoutStorage keeps lockout state in Redis. The lock key expires on
// its own when the lockout window closes; the failure counter expires
// failureWindow after the last failure.
type redisLockoutStorage struct {
	client        *redis.Client
	failureWindow time.Duration
	logger        *logger.Logger
}

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: redis ping: %w", ErrLockoutStorage, err)
	}

	return client, nil
}

// NewRedisLockoutStorage constructs a [LockoutStorage] over client. A
// non-positive failureWindow keeps failure counters until they are reset.
func NewRedisLockoutStorage(client *redis.Client, failureWindow time.Duration, logger *logger.Logger) LockoutStorage {
	logger.Debug().Dur("failure_window", failureWindow).Msg("creating redis lockout storage")
	return &redisLockoutStorage{
		client:        client,
		failureWindow: failureWindow,
		logger:        logger,
	}
}

func (s *redisLockoutStorage) RecordFailure(ctx context.Context, userID string) (int, error) {
	key := redisFailuresKeyPrefix + userID

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		if s.failureWindow > 0 {
			pipe.Expire(ctx, key, s.failureWindow)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisLockoutStorage.RecordFailure").Msg("error incrementing failed count")
		return 0, fmt.Errorf("%w: %w", ErrLockoutStorage, err)
	}

	return int(incr.Val()), nil
}

func (s *redisLockoutStorage) Lock(ctx context.Context, userID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return s.Reset(ctx, userID)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisUntilKeyPrefix+userID, until.UTC().Format(time.RFC3339Nano), ttl)
		pipe.Del(ctx, redisFailuresKeyPrefix+userID)
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisLockoutStorage.Lock").Msg("error locking user")
		return fmt.Errorf("%w: %w", ErrLockoutStorage, err)
	}

	return nil
}

func (s *redisLockoutStorage) LockedUntil(ctx context.Context, userID string) (time.Time, bool, error) {
	raw, err := s.client.Get(ctx, redisUntilKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisLockoutStorage.LockedUntil").Msg("error reading lockout end")
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrLockoutStorage, err)
	}

	until, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: malformed lockout end %q: %w", ErrLockoutStorage, raw, err)
	}

	return until, true, nil
}

func (s *redisLockoutStorage) Reset(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, redisFailuresKeyPrefix+userID, redisUntilKeyPrefix+userID).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisLockoutStorage.Reset").Msg("error resetting lockout")
		return fmt.Errorf("%w: %w", ErrLockoutStorage, err)
	}

	return nil
}

