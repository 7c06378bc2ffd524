package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/fornecedor-api/internal/config"
	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/internal/utils"
	"github.com/MKhiriev/fornecedor-api/models"
)

const (
	registerPath = "/registro"
	loginPath    = "/login"
	supplierPath = "/fornecedor"
	versionPath  = "/version"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter builds the REST implementation of [ServerAdapter] for
// the server at cfg.HTTPAddress. An address without a scheme is treated as
// plain HTTP.
func NewHTTPServerAdapter(cfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	if err := checkBaseURL(cfg.HTTPAddress); err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(cfg.HTTPAddress, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func checkBaseURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return errors.New("empty address")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Host == "" {
		return errors.New("address must include a host")
	}

	return nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, request models.RegisterUser) (models.LoginResponse, error) {
	return h.authenticate(ctx, registerPath, request)
}

func (h *httpServerAdapter) Login(ctx context.Context, request models.LoginUser) (models.LoginResponse, error) {
	return h.authenticate(ctx, loginPath, request)
}

// authenticate posts credentials to path and keeps the bearer token from the
// Authorization response header, falling back to the body's accessToken.
func (h *httpServerAdapter) authenticate(ctx context.Context, path string, body any) (models.LoginResponse, error) {
	var response models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&response).
		Post(path)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	token := response.AccessToken
	if header := resp.Header().Get("Authorization"); header != "" {
		if token, err = utils.ParseBearerToken(header); err != nil {
			return models.LoginResponse{}, fmt.Errorf("%s parse bearer token: %w", path, err)
		}
	}
	if token == "" {
		return models.LoginResponse{}, ErrMissingToken
	}

	h.SetToken(token)
	h.logger.Debug().Str("user_id", response.UserToken.ID).Msg("authenticated")

	return response, nil
}

func (h *httpServerAdapter) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier

	resp, err := h.request(ctx).
		SetResult(&suppliers).
		Get(supplierPath)
	if err != nil {
		return nil, fmt.Errorf("list suppliers request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return suppliers, nil
}

func (h *httpServerAdapter) GetSupplier(ctx context.Context, id string) (models.Supplier, error) {
	if id == "" {
		return models.Supplier{}, ErrEmptyID
	}

	var supplier models.Supplier

	resp, err := h.request(ctx).
		SetPathParam("id", id).
		SetResult(&supplier).
		Get(supplierPath + "/{id}")
	if err != nil {
		return models.Supplier{}, fmt.Errorf("get supplier request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Supplier{}, err
	}

	return supplier, nil
}

func (h *httpServerAdapter) CreateSupplier(ctx context.Context, supplier models.Supplier) (models.Supplier, error) {
	var created models.Supplier

	resp, err := h.request(ctx).
		SetBody(supplier).
		SetResult(&created).
		Post(supplierPath)
	if err != nil {
		return models.Supplier{}, fmt.Errorf("create supplier request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Supplier{}, err
	}

	return created, nil
}

func (h *httpServerAdapter) UpdateSupplier(ctx context.Context, supplier models.Supplier) error {
	if supplier.ID == "" {
		return ErrEmptyID
	}

	resp, err := h.request(ctx).
		SetPathParam("id", supplier.ID).
		SetBody(supplier).
		Put(supplierPath + "/{id}")
	if err != nil {
		return fmt.Errorf("update supplier request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) DeleteSupplier(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}

	resp, err := h.request(ctx).
		SetPathParam("id", id).
		Delete(supplierPath + "/{id}")
	if err != nil {
		return fmt.Errorf("delete supplier request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get(versionPath)
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

// request starts a request carrying the stored token, if any.
func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
