package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/fornecedor-api/internal/config"
	"github.com/MKhiriev/fornecedor-api/internal/logger"
)

// Storages bundles every storage dependency handed to the service layer.
type Storages struct {
	UserRepository     UserRepository
	SupplierRepository SupplierRepository
	LockoutStorage     LockoutStorage
	HealthChecker      HealthChecker

	db    *DB
	redis *redis.Client
}

// NewStorages connects to the configured database, applies migrations and
// builds the repositories. When cfg.Redis.Address is set, lockout state is
// kept in Redis; otherwise in the users table.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		db.Close()
		return nil, err
	}

	storages := newStoragesFromDB(db, log)

	if cfg.Redis.Address != "" {
		client, err := NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Err(err).Str("func", "NewStorages").Msg("error connecting to redis")
			db.Close()
			return nil, err
		}
		storages.redis = client
		storages.LockoutStorage = NewRedisLockoutStorage(client, cfg.Redis.FailureWindow, log)
		log.Info().Str("address", cfg.Redis.Address).Msg("lockout counters kept in redis")
	}

	return storages, nil
}

func newStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	storages := &Storages{
		UserRepository:     NewUserRepository(db, log),
		SupplierRepository: NewSupplierRepository(db, log),
		LockoutStorage:     NewSQLLockoutStorage(db, log),
		db:                 db,
	}
	storages.HealthChecker = storages

	return storages
}

// Ping checks the database and, when configured, Redis.
func (s *Storages) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return err
	}
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrLockoutStorage, err)
		}
	}
	return nil
}

// Close releases the database pool and the Redis client.
func (s *Storages) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}
