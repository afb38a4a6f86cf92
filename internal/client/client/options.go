package client

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/prepa/internal/logging"
)

// DefaultTimeout bounds one API call, refresh and replay included.
const DefaultTimeout = 30 * time.Second

type options struct {
	timeout   time.Duration
	rps       float64
	base      http.RoundTripper
	log       logging.Logger
	onSession SessionHandler
	now       func() time.Time
}

func defaultOptions() options {
	return options{
		timeout: DefaultTimeout,
		base:    http.DefaultTransport,
		log:     logging.Nop(),
		now:     time.Now,
	}
}

// Option configures an HTTPClient.
type Option func(*options)

// WithTimeout sets the per-call time limit. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRateLimit caps outbound requests per second. Zero disables the limit.
func WithRateLimit(rps float64) Option {
	return func(o *options) { o.rps = rps }
}

// WithTransport replaces the underlying round tripper, http.DefaultTransport
// by default.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		if rt != nil {
			o.base = rt
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithSessionHandler registers the receiver of session invalidation events.
func WithSessionHandler(h SessionHandler) Option {
	return func(o *options) { o.onSession = h }
}

// withClock overrides the time source used for refresh-token expiry checks.
func withClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}
