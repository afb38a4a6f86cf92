package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/prepa/internal/client/models"
	"github.com/dmitrijs2005/prepa/internal/common"
	"github.com/dmitrijs2005/prepa/internal/logging"
)

// HTTPClient implements Client over the backend's JSON API.
type HTTPClient struct {
	base *url.URL
	http *http.Client
	log  logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API rooted at baseURL. The session
// is read from and written to tokens.
func NewHTTPClient(baseURL string, tokens TokenStore, opts ...Option) (*HTTPClient, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	tr := &authTransport{
		base:      o.base,
		tokens:    tokens,
		refresher: newRefresher(base.ResolveReference(&url.URL{Path: common.PathTokenRefresh}).String(), o.base, o.timeout),
		basePath:  base.Path,
		log:       o.log,
		onSession: o.onSession,
		now:       o.now,
	}
	if o.rps > 0 {
		tr.limiter = rate.NewLimiter(rate.Limit(o.rps), 1)
	}

	return &HTTPClient{
		base: base,
		http: &http.Client{Transport: tr, Timeout: o.timeout},
		log:  o.log,
	}, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do sends in as JSON to path and decodes the response into out. Both may be
// nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader = http.NoBody
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	u := c.base.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, id)

	log := c.log.With("request_id", id, "method", method, "path", path)
	log.Debug(ctx, "api request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "api request failed", "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		apiErr := newAPIError(resp.StatusCode, b)
		log.Debug(ctx, "api error", "status", resp.StatusCode, "code", apiErr.Code)
		return apiErr
	}

	log.Debug(ctx, "api response", "status", resp.StatusCode)
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, common.PathToken, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPost, common.PathRegister, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, common.PathCurrentUser, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateCurrentUser(ctx context.Context, u models.User) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, common.PathCurrentUserMe, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, password string) error {
	return c.do(ctx, http.MethodPut, common.PathCurrentPassword, models.PasswordChange{Password: password}, nil)
}

func (c *HTTPClient) DeleteCurrentUser(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, common.PathUserDelete, nil, nil)
}

func (c *HTTPClient) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	var out []models.Alert
	if err := c.do(ctx, http.MethodGet, common.PathAlerts, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateAlert(ctx context.Context, in models.AlertInput) (*models.Alert, error) {
	var out models.Alert
	if err := c.do(ctx, http.MethodPost, common.PathAlerts, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteAlert(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, common.PathAlerts+strconv.FormatInt(id, 10)+"/", nil, nil)
}

func (c *HTTPClient) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	if err := c.do(ctx, http.MethodGet, common.PathEmployees, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AddEmployee(ctx context.Context, e models.Employee) (*models.Employee, error) {
	var out models.Employee
	if err := c.do(ctx, http.MethodPost, common.PathEmployeesAdd, e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
