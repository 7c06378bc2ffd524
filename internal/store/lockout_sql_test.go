package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fornecedor-api/internal/logger"
)

func TestSQLLockoutStorage_RecordFailure(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewSQLLockoutStorage(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET access_failed_count = access_failed_count + 1 WHERE id = $1")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT access_failed_count FROM users WHERE id = $1")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"access_failed_count"}).AddRow(3))
	mock.ExpectCommit()

	count, err := s.RecordFailure(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSQLLockoutStorage_RecordFailure_Errors(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(mock sqlmock.Sqlmock)
		target error
	}{
		{
			name: "begin fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("no conn"))
			},
			target: ErrBeginningTransaction,
		},
		{
			name: "increment fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE users").WillReturnError(errors.New("boom"))
				mock.ExpectRollback()
			},
			target: ErrExecutingStatement,
		},
		{
			name: "unknown user",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT access_failed_count").
					WillReturnRows(sqlmock.NewRows([]string{"access_failed_count"}))
				mock.ExpectRollback()
			},
			target: ErrUserNotFound,
		},
		{
			name: "commit fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery("SELECT access_failed_count").
					WillReturnRows(sqlmock.NewRows([]string{"access_failed_count"}).AddRow(1))
				mock.ExpectCommit().WillReturnError(errors.New("conflict"))
			},
			target: ErrCommitingTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			s := NewSQLLockoutStorage(db, logger.Nop())
			tt.setup(mock)

			_, err := s.RecordFailure(context.Background(), "u1")

			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestSQLLockoutStorage_Lock(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewSQLLockoutStorage(db, logger.Nop())
	until := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET lockout_end = $1, access_failed_count = $2 WHERE id = $3")).
		WithArgs(until, 0, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Lock(context.Background(), "u1", until))
}

func TestSQLLockoutStorage_LockedUntil(t *testing.T) {
	until := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name       string
		rows       *sqlmock.Rows
		wantUntil  time.Time
		wantLocked bool
		wantErr    error
	}{
		{
			name:       "locked",
			rows:       sqlmock.NewRows([]string{"lockout_end"}).AddRow(until),
			wantUntil:  until,
			wantLocked: true,
		},
		{
			name: "never locked",
			rows: sqlmock.NewRows([]string{"lockout_end"}).AddRow(nil),
		},
		{
			name:    "unknown user",
			rows:    sqlmock.NewRows([]string{"lockout_end"}),
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			s := NewSQLLockoutStorage(db, logger.Nop())

			mock.ExpectQuery(regexp.QuoteMeta("SELECT lockout_end FROM users WHERE id = $1")).
				WithArgs("u1").
				WillReturnRows(tt.rows)

			got, locked, err := s.LockedUntil(context.Background(), "u1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLocked, locked)
			assert.True(t, tt.wantUntil.Equal(got))
		})
	}
}

func TestSQLLockoutStorage_Reset(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewSQLLockoutStorage(db, logger.Nop())

		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET access_failed_count = $1, lockout_end = $2 WHERE id = $3")).
			WithArgs(0, nil, "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Reset(context.Background(), "u1"))
	})

	t.Run("exec fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewSQLLockoutStorage(db, logger.Nop())

		mock.ExpectExec("UPDATE users").WillReturnError(errors.New("boom"))

		assert.ErrorIs(t, s.Reset(context.Background(), "u1"), ErrExecutingStatement)
	})
}
