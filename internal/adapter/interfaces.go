// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the supplier API.
//
// [ServerAdapter] hides the REST transport from the CLI. Non-2xx responses
// are mapped to [*ResponseError] values that wrap the sentinels in errors.go,
// so callers can use [errors.Is] (e.g. [ErrNotFound] for 404) and still read
// the field messages the server returned.
package adapter

import (
	"context"

	"github.com/MKhiriev/fornecedor-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter talks to a running fornecedor-api server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to every authenticated request.
	SetToken(token string)

	// Token returns the stored bearer token or "".
	Token() string

	// Register creates an account. On success the issued token is stored.
	Register(ctx context.Context, request models.RegisterUser) (models.LoginResponse, error)

	// Login authenticates an account. On success the issued token is stored.
	Login(ctx context.Context, request models.LoginUser) (models.LoginResponse, error)

	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	GetSupplier(ctx context.Context, id string) (models.Supplier, error)

	// CreateSupplier returns the record as stored, with its server-generated id.
	CreateSupplier(ctx context.Context, supplier models.Supplier) (models.Supplier, error)

	UpdateSupplier(ctx context.Context, supplier models.Supplier) error
	DeleteSupplier(ctx context.Context, id string) error

	// Version returns the server's version string.
	Version(ctx context.Context) (string, error)
}
