package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/prepa/internal/common"
	"github.com/dmitrijs2005/prepa/internal/logging"
)

var errNotTokenInvalid = errors.New("unauthorized without " + common.TokenNotValidCode)

// authTransport attaches the session's access token to outgoing requests and
// recovers from an expired access token with one refresh and one replay.
type authTransport struct {
	base      http.RoundTripper
	tokens    TokenStore
	refresher *refresher
	group     singleflight.Group
	limiter   *rate.Limiter
	basePath  string
	log       logging.Logger
	onSession SessionHandler
	now       func() time.Time
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	attempt := req.Clone(ctx)
	if attempt.Header.Get(common.AuthorizationHeaderName) == "" {
		if access, ok := t.tokens.AccessToken(); ok {
			attempt.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+access)
		}
	}
	sent := bearerToken(attempt.Header.Get(common.AuthorizationHeaderName))

	resp, err := t.send(attempt)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	return t.handleUnauthorized(req, resp, sent)
}

func (t *authTransport) send(req *http.Request) (*http.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return t.base.RoundTrip(req)
}

// handleUnauthorized returns either the replayed request's response or, when
// the session is lost, the original 401 with its body intact.
func (t *authTransport) handleUnauthorized(req *http.Request, resp *http.Response, sent string) (*http.Response, error) {
	ctx := req.Context()
	log := t.log.With("request_id", req.Header.Get(common.RequestIDHeaderName), "path", t.relPath(req))

	if peekCode(resp) != common.TokenNotValidCode {
		t.fail(ctx, req, errNotTokenInvalid)
		return resp, nil
	}

	// Another request refreshed the session while this one was in flight.
	if current, ok := t.tokens.AccessToken(); ok && sent != "" && current != sent {
		log.Debug(ctx, "access token already refreshed, replaying")
		return t.replay(req, resp, current)
	}

	refresh, ok := t.tokens.RefreshToken()
	if !ok {
		t.fail(ctx, req, common.ErrRefreshTokenMissing)
		return resp, nil
	}

	exp, err := refreshExpiry(refresh)
	if err != nil {
		t.fail(ctx, req, err)
		return resp, nil
	}
	if !exp.After(t.now()) {
		t.fail(ctx, req, common.ErrRefreshTokenExpired)
		return resp, nil
	}

	access, err := t.refresh(ctx, log, refresh, sent)
	if err != nil {
		if ctx.Err() != nil {
			drain(resp)
			return nil, ctx.Err()
		}
		log.Warn(ctx, "token refresh failed", "error", err)
		t.fail(ctx, req, err)
		return resp, nil
	}

	return t.replay(req, resp, access)
}

// refresh returns a fresh access token. Callers holding the same refresh
// token share one refresh call; the store is updated before the call is
// released, so a caller arriving after it finds the new token and skips the
// network. A cancelled caller stops waiting without aborting the shared call.
func (t *authTransport) refresh(ctx context.Context, log logging.Logger, refresh, sent string) (string, error) {
	ch := t.group.DoChan(refresh, func() (any, error) {
		if current, ok := t.tokens.AccessToken(); ok && current != sent {
			return current, nil
		}

		ctx := context.WithoutCancel(ctx)
		log.Debug(ctx, "access token expired, refreshing")
		tokens, err := t.refresher.call(ctx, refresh)
		if err != nil {
			return nil, err
		}
		if err := t.tokens.UpdateTokens(ctx, refresh, tokens.Access, tokens.Refresh); err != nil {
			return nil, fmt.Errorf("store refreshed tokens: %w", err)
		}
		log.Info(ctx, "access token refreshed")
		return tokens.Access, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// replay sends req once more with the given access token. Its outcome is
// final: a second 401 is returned as is.
func (t *authTransport) replay(req *http.Request, original *http.Response, access string) (*http.Response, error) {
	again := req.Clone(req.Context())
	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			t.log.Warn(req.Context(), "request body cannot be replayed", "path", t.relPath(req))
			return original, nil
		}
		body, err := req.GetBody()
		if err != nil {
			return original, nil
		}
		again.Body = body
	}
	again.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+access)

	drain(original)
	return t.send(again)
}

// fail ends the session. The login request is exempt from the event: its
// caller is already on the login screen.
func (t *authTransport) fail(ctx context.Context, req *http.Request, reason error) {
	if err := t.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		t.log.Error(ctx, "failed to clear session", "error", err)
	}

	path := t.relPath(req)
	if path == common.PathToken {
		return
	}

	t.log.Info(ctx, "session invalidated", "path", path, "reason", reason)
	if t.onSession != nil {
		t.onSession(SessionEvent{Reason: reason, RedirectTo: common.LoginRedirectPath, RequestPath: path})
	}
}

// relPath returns the request path relative to the API base URL.
func (t *authTransport) relPath(req *http.Request) string {
	return strings.TrimPrefix(req.URL.Path, t.basePath)
}

// bearerToken returns the token of a "Bearer <token>" header value, or "".
func bearerToken(header string) string {
	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok {
		return ""
	}
	return token
}

// peekCode reads the "code" field of a JSON body and puts the body back so
// the caller can still read all of it.
func peekCode(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	resp.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(body), resp.Body), resp.Body}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Code
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	_ = resp.Body.Close()
}
