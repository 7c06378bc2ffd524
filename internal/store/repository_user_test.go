package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/models"
)

func newTestUser() models.User {
	return models.User{
		ID:             "0190f5c2-0000-7000-8000-000000000001",
		Email:          "ana@example.com",
		PasswordHash:   "$2a$04$hash",
		EmailConfirmed: true,
		LockoutEnabled: true,
		Claims:         []models.Claim{{Type: models.ClaimDeleteSupplier, Value: "true"}},
		Roles:          []string{"Admin"},
		CreatedAt:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestCreateUser_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())
	user := newTestUser()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.ID, user.Email, "ANA@EXAMPLE.COM", user.PasswordHash, true, true, 0, user.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_claims")).
		WithArgs(user.ID, models.ClaimDeleteSupplier, "true").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_roles")).
		WithArgs(user.ID, "Admin").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreateUser(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, user, created)
}

func TestCreateUser_WithoutClaimsOrRoles(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())
	user := newTestUser()
	user.Claims, user.Roles = nil, nil

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.CreateUser(context.Background(), newTestUser())

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCreateUser_Errors(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(mock sqlmock.Sqlmock)
		target error
	}{
		{
			name: "begin fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("conn refused"))
			},
			target: ErrBeginningTransaction,
		},
		{
			name: "insert fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO users").WillReturnError(pgError(pgerrcode.ConnectionFailure))
				mock.ExpectRollback()
			},
			target: ErrExecutingStatement,
		},
		{
			name: "claims insert fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO user_claims").WillReturnError(errors.New("boom"))
				mock.ExpectRollback()
			},
			target: ErrExecutingStatement,
		},
		{
			name: "commit fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO user_claims").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO user_roles").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(errors.New("commit failed"))
			},
			target: ErrCommitingTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepository(db, logger.Nop())
			tt.setup(mock)

			_, err := repo.CreateUser(context.Background(), newTestUser())

			assert.ErrorIs(t, err, tt.target)
			assert.NotErrorIs(t, err, ErrEmailAlreadyExists)
		})
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())
	user := newTestUser()
	lockoutEnd := time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE normalized_email = $1")).
		WithArgs("ANA@EXAMPLE.COM").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(user.ID, user.Email, user.PasswordHash, true, true, 2, lockoutEnd, user.CreatedAt))
	mock.ExpectQuery(regexp.QuoteMeta("FROM user_claims")).
		WithArgs(user.ID).
		WillReturnRows(sqlmock.NewRows([]string{"claim_type", "claim_value"}).
			AddRow(models.ClaimDeleteSupplier, "true"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM user_roles")).
		WithArgs(user.ID).
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("Admin"))

	found, err := repo.FindUserByEmail(context.Background(), " Ana@Example.com")

	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, 2, found.AccessFailedCount)
	require.NotNil(t, found.LockoutEnd)
	assert.Equal(t, lockoutEnd, *found.LockoutEnd)
	assert.Equal(t, user.Claims, found.Claims)
	assert.Equal(t, user.Roles, found.Roles)
}

func TestFindUserByEmail_NoClaimsNoLockout(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())
	user := newTestUser()

	mock.ExpectQuery("FROM users").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(user.ID, user.Email, user.PasswordHash, true, true, 0, nil, user.CreatedAt))
	mock.ExpectQuery("FROM user_claims").WillReturnRows(sqlmock.NewRows([]string{"claim_type", "claim_value"}))
	mock.ExpectQuery("FROM user_roles").WillReturnRows(sqlmock.NewRows([]string{"role"}))

	found, err := repo.FindUserByEmail(context.Background(), user.Email)

	require.NoError(t, err)
	assert.Nil(t, found.LockoutEnd)
	assert.Empty(t, found.Claims)
	assert.NotNil(t, found.Claims)
	assert.Empty(t, found.Roles)
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("FROM users").WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindUserByEmail(context.Background(), "ghost@example.com")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindUserByEmail_Errors(t *testing.T) {
	user := newTestUser()

	tests := []struct {
		name   string
		setup  func(mock sqlmock.Sqlmock)
		target error
	}{
		{
			name: "query fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM users").WillReturnError(errors.New("db failure"))
			},
			target: ErrScanningRow,
		},
		{
			name: "claims query fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM users").WillReturnRows(sqlmock.NewRows(userColumns).
					AddRow(user.ID, user.Email, user.PasswordHash, true, true, 0, nil, user.CreatedAt))
				mock.ExpectQuery("FROM user_claims").WillReturnError(errors.New("db failure"))
			},
			target: ErrExecutingQuery,
		},
		{
			name: "roles scan fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM users").WillReturnRows(sqlmock.NewRows(userColumns).
					AddRow(user.ID, user.Email, user.PasswordHash, true, true, 0, nil, user.CreatedAt))
				mock.ExpectQuery("FROM user_claims").WillReturnRows(sqlmock.NewRows([]string{"claim_type", "claim_value"}))
				mock.ExpectQuery("FROM user_roles").WillReturnRows(sqlmock.NewRows([]string{"role", "extra"}).AddRow("Admin", "x"))
			},
			target: ErrScanningRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewUserRepository(db, logger.Nop())
			tt.setup(mock)

			_, err := repo.FindUserByEmail(context.Background(), user.Email)

			assert.ErrorIs(t, err, tt.target)
		})
	}
}
