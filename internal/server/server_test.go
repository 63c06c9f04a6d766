package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-sitegen/internal/watch"
	"github.com/goliatone/go-sitegen/pkg/orchestrator"
	"github.com/goliatone/go-sitegen/pkg/submit"
)

func staticBuild(html string, calls *int32) BuildFunc {
	return func(context.Context) (orchestrator.Result, error) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		return orchestrator.Result{HTML: []byte(html), Outcome: orchestrator.OutcomeRendered}, nil
	}
}

type fakeEndpoint struct {
	err  error
	subs []submit.Submission
}

func (f *fakeEndpoint) Kind() submit.Kind { return submit.KindLocal }

func (f *fakeEndpoint) Submit(_ context.Context, sub submit.Submission) (submit.Receipt, error) {
	if f.err != nil {
		return submit.Receipt{}, f.err
	}
	f.subs = append(f.subs, sub)
	return submit.Receipt{ID: sub.ID, Message: submit.MessageSent}, nil
}

func contactForm() url.Values {
	return url.Values{
		submit.FieldName:      {"Phạm D"},
		submit.FieldPhone:     {"0933 333 333"},
		submit.FieldItinerary: {"Hà Nội - Sapa"},
	}
}

func postContact(t *testing.T, h http.Handler, values url.Values) (*httptest.ResponseRecorder, contactResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp contactResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestServer_PageIsBuiltOnceAndCached(t *testing.T) {
	var calls int32
	s := New(staticBuild("<html><body>xin chào</body></html>", &calls))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "xin chào")
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestServer_BuildErrorIs500(t *testing.T) {
	s := New(func(context.Context) (orchestrator.Result, error) {
		return orchestrator.Result{}, errors.New("template missing")
	})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_Health(t *testing.T) {
	s := New(func(context.Context) (orchestrator.Result, error) {
		return orchestrator.Result{HTML: []byte("<html></html>"), Outcome: orchestrator.OutcomeLoadFailed, Err: errors.New("http error: status 404 for data/hero.json")}, nil
	})
	require.NoError(t, s.Rebuild(context.Background()))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Built)
	assert.Equal(t, "load_failed", resp.Outcome)
	assert.Contains(t, resp.Error, "404")
}

func TestServer_ServesDataAndAssets(t *testing.T) {
	s := New(staticBuild("<html></html>", nil), WithDataFS(fstest.MapFS{
		"hero.json": {Data: []byte(`{"title":"Tiêu đề"}`)},
	}), WithStaticFS(fstest.MapFS{
		"css/style.css": {Data: []byte("body{}")},
	}))

	cases := map[string]string{
		"/data/hero.json":            "Tiêu đề",
		"/assets/sitegen-runtime.js": "wireMenu",
		"/assets/sitegen.css":        "render-error",
		"/css/style.css":             "body{}",
	}
	for path, want := range cases {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), want, path)
	}
}

func TestServer_ContactDelivered(t *testing.T) {
	endpoint := &fakeEndpoint{}
	s := New(staticBuild("", nil), WithEndpoint(endpoint))

	rec, resp := postContact(t, s.Handler(), contactForm())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.OK)
	assert.Equal(t, submit.MessageSent, resp.Message)
	require.Len(t, endpoint.subs, 1)
	assert.Equal(t, resp.ID, endpoint.subs[0].ID)
	assert.NotEmpty(t, endpoint.subs[0].RemoteAddr)
}

func TestServer_ContactErrors(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		s := New(staticBuild("", nil), WithEndpoint(&fakeEndpoint{}))
		form := contactForm()
		form.Del(submit.FieldPhone)
		rec, resp := postContact(t, s.Handler(), form)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, submit.MessageInvalid, resp.Message)
	})
	t.Run("rate limited", func(t *testing.T) {
		s := New(staticBuild("", nil), WithEndpoint(&fakeEndpoint{err: submit.ErrRateLimited}))
		rec, resp := postContact(t, s.Handler(), contactForm())
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, submit.MessageRateLimited, resp.Message)
	})
	t.Run("upstream failure", func(t *testing.T) {
		s := New(staticBuild("", nil), WithEndpoint(&fakeEndpoint{err: &submit.RemoteError{Kind: submit.KindRelay, StatusCode: 500}}))
		rec, resp := postContact(t, s.Handler(), contactForm())
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.False(t, resp.OK)
	})
	t.Run("no endpoint", func(t *testing.T) {
		s := New(staticBuild("", nil))
		rec, _ := postContact(t, s.Handler(), contactForm())
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestServer_WatchRebuilds(t *testing.T) {
	var calls int32
	s := New(staticBuild("<html></html>", &calls))

	changes := make(chan watch.Change, 2)
	changes <- watch.Change{Paths: []string{"data/hero.json"}}
	changes <- watch.Change{Paths: []string{"index.html"}}
	close(changes)

	s.Watch(context.Background(), changes)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
