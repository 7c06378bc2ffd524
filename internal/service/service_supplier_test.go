// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/internal/mock"
	"github.com/MKhiriev/fornecedor-api/internal/store"
	"github.com/MKhiriev/fornecedor-api/internal/validators"
	"github.com/MKhiriev/fornecedor-api/models"
)

func newTestSupplierSvc(t *testing.T) (SupplierService, *mock.MockSupplierRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockSupplierRepository(ctrl)

	return NewSupplierService(repo, logger.Nop()), repo
}

var acme = models.Supplier{ID: "s1", Name: "Acme", Document: "12345678000190", Active: true}

// ─────────────────────────────────────────────
// List / Get
// ─────────────────────────────────────────────

func TestSupplierService_List(t *testing.T) {
	svc, repo := newTestSupplierSvc(t)
	repo.EXPECT().GetAll(gomock.Any()).Return([]models.Supplier{acme}, nil)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.Supplier{acme}, got)
}

func TestSupplierService_Get(t *testing.T) {
	svc, repo := newTestSupplierSvc(t)
	repo.EXPECT().GetByID(gomock.Any(), "s1").Return(acme, nil)

	got, err := svc.Get(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, acme, got)
}

func TestSupplierService_Get_NotFound(t *testing.T) {
	svc, repo := newTestSupplierSvc(t)
	repo.EXPECT().GetByID(gomock.Any(), "missing").Return(models.Supplier{}, store.ErrSupplierNotFound)

	_, err := svc.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestSupplierService_Get_StorageError(t *testing.T) {
	svc, repo := newTestSupplierSvc(t)
	repo.EXPECT().GetByID(gomock.Any(), "s1").Return(models.Supplier{}, store.ErrScanningRow)

	_, err := svc.Get(context.Background(), "s1")

	assert.ErrorIs(t, err, store.ErrScanningRow)
	assert.NotErrorIs(t, err, ErrSupplierNotFound)
}

// ─────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────

func TestSupplierService_Create_AssignsID(t *testing.T) {
	svc, repo := newTestSupplierSvc(t)

	input := acme
	input.ID = "client-chosen"

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s models.Supplier) (int64, error) {
			assert.NotEqual(t, "client-chosen", s.ID)
			assert.Len(t, s.ID, 36)
			assert.Equal(t, "Acme", s.Name)
			return 1, nil
		},
	)

	created, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.NotEqual(t, "client-chosen", created.ID)
	assert.Equal(t, input.Document, created.Document)
}

func TestSupplierService_Create_Invalid(t *testing.T) {
	svc, _ := newTestSupplierSvc(t)

	_, err := svc.Create(context.Background(), models.Supplier{Active: true})

	var validationErrors validators.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	assert.Contains(t, validationErrors, validators.FieldName)
	assert.Contains(t, validationErrors, validators.FieldDocument)
}

func TestSupplierService_Create_NothingCommitted(t *testing.T) {
	svc, repo := newTestSupplierSvc(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(0), nil)

	_, err := svc.Create(context.Background(), acme)

	assert.ErrorIs(t, err, ErrSupplierNotSaved)
}

func TestSupplierService_Create_StorageError(t *testing.T) {
	svc, repo := newTestSupplierSvc(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(int64(0), store.ErrExecutingStatement)

	_, err := svc.Create(context.Background(), acme)

	assert.ErrorIs(t, err, store.ErrExecutingStatement)
}

// ─────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────

func TestSupplierService_Update(t *testing.T) {
	svc, repo := newTestSupplierSvc(t)
	changed := acme
	changed.Name = "Acme Ltda"

	gomock.InOrder(
		repo.EXPECT().GetByID(gomock.Any(), "s1").Return(acme, nil),
		repo.EXPECT().Update(gomock.Any(), changed).Return(int64(1), nil),
	)

	require.NoError(t, svc.Update(context.Background(), changed))
}

func TestSupplierService_Update_Failures(t *testing.T) {
	tests := []struct {
		name     string
		supplier models.Supplier
		setup    func(repo *mock.MockSupplierRepository)
		wantErr  error
	}{
		{
			name:     "missing row wins over invalid payload",
			supplier: models.Supplier{ID: "missing"},
			setup: func(repo *mock.MockSupplierRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "missing").Return(models.Supplier{}, store.ErrSupplierNotFound)
			},
			wantErr: ErrSupplierNotFound,
		},
		{
			name:     "nothing committed",
			supplier: acme,
			setup: func(repo *mock.MockSupplierRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "s1").Return(acme, nil)
				repo.EXPECT().Update(gomock.Any(), acme).Return(int64(0), nil)
			},
			wantErr: ErrSupplierNotSaved,
		},
		{
			name:     "storage error",
			supplier: acme,
			setup: func(repo *mock.MockSupplierRepository) {
				repo.EXPECT().GetByID(gomock.Any(), "s1").Return(acme, nil)
				repo.EXPECT().Update(gomock.Any(), acme).Return(int64(0), store.ErrExecutingStatement)
			},
			wantErr: store.ErrExecutingStatement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestSupplierSvc(t)
			tt.setup(repo)

			assert.ErrorIs(t, svc.Update(context.Background(), tt.supplier), tt.wantErr)
		})
	}
}

func TestSupplierService_Update_Invalid(t *testing.T) {
	svc, repo := newTestSupplierSvc(t)
	repo.EXPECT().GetByID(gomock.Any(), "s1").Return(acme, nil)

	err := svc.Update(context.Background(), models.Supplier{ID: "s1", Name: "Acme"})

	var validationErrors validators.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	assert.Equal(t, []string{"O campo documento é obrigatório"}, validationErrors[validators.FieldDocument])
}

// ─────────────────────────────────────────────
// Delete
// ─────────────────────────────────────────────

func TestSupplierService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "one row", affected: 1},
		{name: "zero rows still succeeds", affected: 0},
		{name: "negative count", affected: -1, wantErr: ErrSupplierNotRemoved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestSupplierSvc(t)
			repo.EXPECT().GetByID(gomock.Any(), "s1").Return(acme, nil)
			repo.EXPECT().Delete(gomock.Any(), "s1").Return(tt.affected, nil)

			err := svc.Delete(context.Background(), "s1")

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSupplierService_Delete_NotFound(t *testing.T) {
	svc, repo := newTestSupplierSvc(t)
	repo.EXPECT().GetByID(gomock.Any(), "s1").Return(models.Supplier{}, store.ErrSupplierNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), "s1"), ErrSupplierNotFound)
}

func TestSupplierService_Delete_StorageError(t *testing.T) {
	svc, repo := newTestSupplierSvc(t)
	boom := errors.New("boom")
	repo.EXPECT().GetByID(gomock.Any(), "s1").Return(acme, nil)
	repo.EXPECT().Delete(gomock.Any(), "s1").Return(int64(0), boom)

	assert.ErrorIs(t, svc.Delete(context.Background(), "s1"), boom)
}
