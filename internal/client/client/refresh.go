package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/prepa/internal/client/models"
	"github.com/dmitrijs2005/prepa/internal/common"
)

// maxBodySize caps how much of an error or refresh body is buffered.
const maxBodySize = 1 << 20

// refreshExpiry returns the exp claim of a refresh token. The signature is
// not verified; the client does not hold the server key and only needs to
// know whether sending the token is pointless.
func refreshExpiry(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("%w: no exp claim", common.ErrInvalidToken)
	}
	return claims.ExpiresAt.Time, nil
}

// refresher exchanges a refresh token for a new access token. It talks to
// the base transport directly so the refresh call is never intercepted.
type refresher struct {
	endpoint string
	http     *http.Client
}

func newRefresher(endpoint string, base http.RoundTripper, timeout time.Duration) *refresher {
	return &refresher{
		endpoint: endpoint,
		http:     &http.Client{Transport: base, Timeout: timeout},
	}
}

func (r *refresher) call(ctx context.Context, token string) (*models.RefreshResponse, error) {
	payload, err := json.Marshal(models.RefreshRequest{Refresh: token})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refresh request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("refresh response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, body)
	}

	var out models.RefreshResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("refresh response: %w", err)
	}
	if out.Access == "" {
		return nil, errors.New("refresh response: empty access token")
	}
	return &out, nil
}
