package submit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// RemoteError reports a non-success response from a remote endpoint.
type RemoteError struct {
	Kind       Kind
	URL        string
	StatusCode int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("submit: %s endpoint %s returned status %d", e.Kind, e.URL, e.StatusCode)
}

type relayEndpoint struct {
	url    string
	client *http.Client
}

// NewRelay posts submissions URL-encoded to a mail relay.
func NewRelay(rawURL string, options ...Option) (Endpoint, error) {
	target, err := endpointURL(rawURL)
	if err != nil {
		return nil, err
	}
	cfg := newHTTPConfig(options)
	return &relayEndpoint{url: target, client: cfg.client}, nil
}

func (r *relayEndpoint) Kind() Kind { return KindRelay }

func (r *relayEndpoint) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	values := sub.Values()
	values.Set("_subject", "Yêu cầu đặt xe: "+sub.Name)
	values.Set("_id", sub.ID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, strings.NewReader(values.Encode()))
	if err != nil {
		return Receipt{}, fmt.Errorf("submit: build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	if err := deliver(r.client, req, KindRelay); err != nil {
		return Receipt{}, err
	}
	return Receipt{ID: sub.ID, Message: MessageSent}, nil
}

type sheetsEndpoint struct {
	url    string
	fields map[string]string
	client *http.Client
}

// NewSheets posts submissions as multipart form data, renaming fields through
// fields (e.g. name → entry.123). Unmapped fields are sent under their form
// name.
func NewSheets(rawURL string, fields map[string]string, options ...Option) (Endpoint, error) {
	target, err := endpointURL(rawURL)
	if err != nil {
		return nil, err
	}
	mapping := make(map[string]string, len(fields))
	for from, to := range fields {
		if strings.TrimSpace(to) == "" {
			return nil, fmt.Errorf("submit: sheets field mapping for %q is empty", from)
		}
		mapping[from] = to
	}
	cfg := newHTTPConfig(options)
	return &sheetsEndpoint{url: target, fields: mapping, client: cfg.client}, nil
}

func (s *sheetsEndpoint) Kind() Kind { return KindSheets }

func (s *sheetsEndpoint) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	values := sub.Values()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		target := name
		if mapped, ok := s.fields[name]; ok {
			target = mapped
		}
		if err := writer.WriteField(target, values.Get(name)); err != nil {
			return Receipt{}, fmt.Errorf("submit: encode field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return Receipt{}, fmt.Errorf("submit: encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, &body)
	if err != nil {
		return Receipt{}, fmt.Errorf("submit: build sheets request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	if err := deliver(s.client, req, KindSheets); err != nil {
		return Receipt{}, err
	}
	return Receipt{ID: sub.ID, Message: MessageSent}, nil
}

func deliver(client *http.Client, req *http.Request, kind Kind) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("submit: %s request: %w", kind, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{Kind: kind, URL: req.URL.String(), StatusCode: resp.StatusCode}
	}
	return nil
}

func endpointURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("submit: endpoint url is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("submit: invalid endpoint url %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("submit: endpoint url %q must be http or https", raw)
	}
	return parsed.String(), nil
}
