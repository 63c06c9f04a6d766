package loader

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"
)

// httpResult carries the pieces of a response the loader needs once the body
// has been drained.
type httpResult struct {
	body        []byte
	statusCode  int
	status      string
	contentType string
}

func (r httpResult) ok() bool {
	return r.statusCode >= 200 && r.statusCode < 300
}

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) (httpResult, error) {
	if client == nil {
		return httpResult{}, errors.New("section loader: http client is not configured")
	}
	if url == "" {
		return httpResult{}, errors.New("section loader: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return httpResult{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return httpResult{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	result := httpResult{
		statusCode:  resp.StatusCode,
		status:      resp.Status,
		contentType: resp.Header.Get("Content-Type"),
	}
	if !result.ok() {
		return result, nil
	}

	result.body, err = io.ReadAll(resp.Body)
	if err != nil {
		return httpResult{}, err
	}
	return result, nil
}
