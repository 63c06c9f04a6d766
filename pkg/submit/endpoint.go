package submit

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Kind names an endpoint flavour.
type Kind string

const (
	KindLocal  Kind = "local"
	KindRelay  Kind = "relay"
	KindSheets Kind = "sheets"
)

// ParseKind converts a configured string into a Kind.
func ParseKind(raw string) (Kind, error) {
	switch kind := Kind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case KindLocal, KindRelay, KindSheets:
		return kind, nil
	default:
		return "", fmt.Errorf("submit: unknown endpoint kind %q", raw)
	}
}

// Receipt acknowledges a delivered submission.
type Receipt struct {
	ID      string
	Message string
}

// Endpoint delivers submissions.
type Endpoint interface {
	Kind() Kind
	Submit(ctx context.Context, sub Submission) (Receipt, error)
}

// Store persists submissions for the local endpoint.
type Store interface {
	SaveSubmission(ctx context.Context, sub Submission) error
}

// Config selects and configures an endpoint.
type Config struct {
	Kind Kind
	// URL is the relay or spreadsheet form URL. Unused by the local endpoint.
	URL string
	// Fields maps form field names to backend field names (sheets only).
	Fields  map[string]string
	Timeout time.Duration
	// RatePerMinute caps submissions; zero disables limiting.
	RatePerMinute int
	Burst         int
}

// Option customises HTTP-backed endpoints.
type Option func(*httpConfig)

type httpConfig struct {
	client  *http.Client
	timeout time.Duration
}

// WithHTTPClient injects the client used to reach the remote endpoint.
func WithHTTPClient(client *http.Client) Option {
	return func(c *httpConfig) {
		if client != nil {
			c.client = client
		}
	}
}

// WithTimeout caps each remote delivery.
func WithTimeout(timeout time.Duration) Option {
	return func(c *httpConfig) {
		c.timeout = timeout
	}
}

func newHTTPConfig(options []Option) httpConfig {
	cfg := httpConfig{timeout: 10 * time.Second}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.client == nil {
		cfg.client = &http.Client{Timeout: cfg.timeout}
	}
	return cfg
}

// New builds the endpoint described by cfg. store is required for the local
// endpoint and ignored otherwise.
func New(cfg Config, store Store, options ...Option) (Endpoint, error) {
	if cfg.Timeout > 0 {
		options = append([]Option{WithTimeout(cfg.Timeout)}, options...)
	}

	var (
		endpoint Endpoint
		err      error
	)
	switch cfg.Kind {
	case KindLocal:
		endpoint, err = NewLocal(store)
	case KindRelay:
		endpoint, err = NewRelay(cfg.URL, options...)
	case KindSheets:
		endpoint, err = NewSheets(cfg.URL, cfg.Fields, options...)
	default:
		return nil, fmt.Errorf("submit: unknown endpoint kind %q", cfg.Kind)
	}
	if err != nil {
		return nil, err
	}
	if cfg.RatePerMinute > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		endpoint = Limited(endpoint, rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), burst))
	}
	return endpoint, nil
}

// Limited wraps endpoint so submissions beyond the limiter budget fail fast
// with ErrRateLimited.
func Limited(endpoint Endpoint, limiter *rate.Limiter) Endpoint {
	if limiter == nil {
		return endpoint
	}
	return &limitedEndpoint{next: endpoint, limiter: limiter}
}

type limitedEndpoint struct {
	next    Endpoint
	limiter *rate.Limiter
}

func (l *limitedEndpoint) Kind() Kind { return l.next.Kind() }

func (l *limitedEndpoint) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	if !l.limiter.Allow() {
		return Receipt{}, ErrRateLimited
	}
	return l.next.Submit(ctx, sub)
}
