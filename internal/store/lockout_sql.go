package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/fornecedor-api/internal/logger"
)

// sqlLockoutStorage keeps lockout state in the access_failed_count and
// lockout_end columns of the users table.
type sqlLockoutStorage struct {
	*DB
	logger *logger.Logger
}

// NewSQLLockoutStorage constructs a [LockoutStorage] over the users table.
func NewSQLLockoutStorage(db *DB, logger *logger.Logger) LockoutStorage {
	logger.Debug().Msg("creating sql lockout storage")
	return &sqlLockoutStorage{
		DB:     db,
		logger: logger,
	}
}

func (s *sqlLockoutStorage) RecordFailure(ctx context.Context, userID string) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildIncrementAccessFailedQuery(s.builder, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sqlLockoutStorage.RecordFailure").Msg("error incrementing failed count")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if query, args, err = buildSelectAccessFailedQuery(s.builder, userID); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		log.Err(err).Str("func", "*sqlLockoutStorage.RecordFailure").Msg("error reading failed count")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return count, nil
}

func (s *sqlLockoutStorage) Lock(ctx context.Context, userID string, until time.Time) error {
	query, args, err := buildLockUserQuery(s.builder, userID, until)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sqlLockoutStorage.Lock").Msg("error locking user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlLockoutStorage) LockedUntil(ctx context.Context, userID string) (time.Time, bool, error) {
	query, args, err := buildSelectLockoutEndQuery(s.builder, userID)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var end sql.NullTime
	if err = s.DB.QueryRowContext(ctx, query, args...).Scan(&end); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, ErrUserNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*sqlLockoutStorage.LockedUntil").Msg("error reading lockout end")
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return end.Time, end.Valid, nil
}

func (s *sqlLockoutStorage) Reset(ctx context.Context, userID string) error {
	query, args, err := buildResetLockoutQuery(s.builder, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sqlLockoutStorage.Reset").Msg("error resetting lockout")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
