package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/models"
)

// userRepository is the SQL implementation of [UserRepository].
// It handles account creation and lookup against the "users",
// "user_claims" and "user_roles" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record along with its claims and roles.
//
// Error handling:
//   - unique violation on the normalized email → [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped low-level sentinel.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error beginning transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := buildInsertUserQuery(r.builder, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		if r.errorClassificator.IsUniqueViolation(err) {
			log.Debug().Str("func", "*userRepository.CreateUser").Str("email", user.Email).Msg("email already taken")
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).
			Str("func", "*userRepository.CreateUser").
			Stringer("classification", r.errorClassificator.Classify(err)).
			Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(user.Claims) > 0 {
		if query, args, err = buildInsertUserClaimsQuery(r.builder, user.ID, user.Claims); err != nil {
			return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user claims")
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if len(user.Roles) > 0 {
		if query, args, err = buildInsertUserRolesQuery(r.builder, user.ID, user.Roles); err != nil {
			return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user roles")
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error committing transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return user, nil
}

// FindUserByEmail retrieves the account whose normalized email matches
// email, together with its claims and roles.
//
// Error handling:
//   - no rows → [ErrUserNotFound].
//   - any other driver-level error → wrapped low-level sentinel.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserByEmailQuery(r.builder, email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		user       models.User
		lockoutEnd sql.NullTime
	)
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.EmailConfirmed,
		&user.LockoutEnabled,
		&user.AccessFailedCount,
		&lockoutEnd,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if lockoutEnd.Valid {
		end := lockoutEnd.Time
		user.LockoutEnd = &end
	}

	if user.Claims, err = r.findClaims(ctx, user.ID); err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error loading user claims")
		return models.User{}, err
	}

	if user.Roles, err = r.findRoles(ctx, user.ID); err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error loading user roles")
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) findClaims(ctx context.Context, userID string) ([]models.Claim, error) {
	query, args, err := buildSelectUserClaimsQuery(r.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	claims := make([]models.Claim, 0)
	for rows.Next() {
		var c models.Claim
		if err = rows.Scan(&c.Type, &c.Value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		claims = append(claims, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return claims, nil
}

func (r *userRepository) findRoles(ctx context.Context, userID string) ([]string, error) {
	query, args, err := buildSelectUserRolesQuery(r.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	roles := make([]string, 0)
	for rows.Next() {
		var role string
		if err = rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		roles = append(roles, role)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return roles, nil
}
