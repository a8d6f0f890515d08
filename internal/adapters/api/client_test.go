package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DanielPopoola/shelter-fetch/internal/adapters/api"
	"github.com/DanielPopoola/shelter-fetch/internal/adapters/session"
	"github.com/DanielPopoola/shelter-fetch/internal/config"
	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echo struct {
	Method string            `json:"method"`
	Path   string            `json:"path"`
	Header map[string]string `json:"header"`
	Body   string            `json:"body"`
}

func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		header := map[string]string{}
		for k := range r.Header {
			header[k] = r.Header.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(echo{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: header,
			Body:   string(body),
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func apiConfig(baseURL string) config.APIConfig {
	return config.APIConfig{BaseURL: baseURL, Timeout: 2 * time.Second}
}

func newBrowserClient(t *testing.T, baseURL string) (*api.BrowserClient, *session.TokenStore) {
	t.Helper()
	store := session.NewTokenStore(session.NewMemoryStorage(), nil)
	client, err := api.NewBrowserClient(apiConfig(baseURL), store)
	require.NoError(t, err)
	return client, store
}

func TestBrowserClient_AttachesCredential(t *testing.T) {
	srv := newEchoServer(t)
	client, store := newBrowserClient(t, srv.URL)
	require.NoError(t, store.Set("abc"))

	var got echo
	err := client.Do(context.Background(), domain.NewRequest("/news").MustBuild(), &got)

	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", got.Header["Authorization"])
	assert.Equal(t, "/news", got.Path)
}

func TestBrowserClient_CredentialOverridesCallerHeader(t *testing.T) {
	srv := newEchoServer(t)
	client, store := newBrowserClient(t, srv.URL)
	require.NoError(t, store.Set("abc"))

	req := domain.NewRequest("/news").Header("Authorization", "Bearer forged").MustBuild()

	var got echo
	require.NoError(t, client.Do(context.Background(), req, &got))
	assert.Equal(t, "Bearer abc", got.Header["Authorization"])
}

func TestBrowserClient_NoCredentialNoHeader(t *testing.T) {
	srv := newEchoServer(t)
	client, _ := newBrowserClient(t, srv.URL)

	var got echo
	err := client.Do(context.Background(), domain.NewRequest("/stats").Authenticated().MustBuild(), &got)

	require.NoError(t, err)
	_, present := got.Header["Authorization"]
	assert.False(t, present)
}

func TestBrowserClient_NormalizesMethodAndForwardsBody(t *testing.T) {
	srv := newEchoServer(t)
	client, _ := newBrowserClient(t, srv.URL+"/")

	req := domain.NewRequest("/tags").
		Method("post").
		Header("X-Client", "shelter").
		JSON(map[string]string{"name": "calm"}).
		MustBuild()

	var got echo
	require.NoError(t, client.Do(context.Background(), req, &got))

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/tags", got.Path)
	assert.Equal(t, "shelter", got.Header["X-Client"])
	assert.Equal(t, "application/json", got.Header["Content-Type"])
	assert.JSONEq(t, `{"name":"calm"}`, got.Body)
}

func TestBrowserClient_GetIsCaseNormalized(t *testing.T) {
	srv := newEchoServer(t)
	client, _ := newBrowserClient(t, srv.URL)

	var got echo
	require.NoError(t, client.Do(context.Background(), domain.NewRequest("/tags").Method("get").MustBuild(), &got))
	assert.Equal(t, "GET", got.Method)
}

func TestBrowserClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"not found"}`))
	}))
	defer srv.Close()
	client, _ := newBrowserClient(t, srv.URL)

	var dog domain.Dog
	err := client.Do(context.Background(), domain.NewRequest("/dogs/999").MustBuild(), &dog)

	httpErr, ok := domain.IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.JSONEq(t, `{"detail":"not found"}`, string(httpErr.Body))
	assert.Equal(t, srv.URL+"/dogs/999", httpErr.URL)
}

func TestBrowserClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()
	client, _ := newBrowserClient(t, srv.URL)

	var tags []domain.Tag
	err := client.Do(context.Background(), domain.NewRequest("/tags").MustBuild(), &tags)

	var decodeErr *domain.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "<html>oops</html>", string(decodeErr.Body))
}

func TestBrowserClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client, _ := newBrowserClient(t, baseURL)
	err := client.Do(context.Background(), domain.NewRequest("/news").MustBuild(), nil)

	var netErr *domain.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.True(t, domain.IsRetryable(err))
}

func TestBrowserClient_UnauthorizedClearsCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	client, store := newBrowserClient(t, srv.URL)
	require.NoError(t, store.Set("expired"))

	err := client.Do(context.Background(), domain.NewRequest("/stats").MustBuild(), nil)

	assert.True(t, domain.IsUnauthorized(err))
	_, ok := store.Get()
	assert.False(t, ok)
}

func TestBrowserClient_UnauthorizedKeepsNewerCredential(t *testing.T) {
	var store *session.TokenStore
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// a login completes while the stale request is in flight
		assert.NoError(t, store.Set("fresh"))
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	client, s := newBrowserClient(t, srv.URL)
	store = s
	require.NoError(t, store.Set("old"))

	err := client.Do(context.Background(), domain.NewRequest("/stats").Authenticated().MustBuild(), nil)

	assert.True(t, domain.IsUnauthorized(err))
	token, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, "fresh", token)
}

func TestBrowserClient_OneRequestPerCall(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	client, _ := newBrowserClient(t, srv.URL)

	err := client.Do(context.Background(), domain.NewRequest("/news").MustBuild(), nil)

	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestBrowserClient_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()
	client, _ := newBrowserClient(t, srv.URL)

	var tag domain.Tag
	err := client.Do(context.Background(), domain.NewRequest("/tags/1").Method("DELETE").MustBuild(), &tag)
	assert.NoError(t, err)
}

func TestNewBrowserClient_InvalidBaseURL(t *testing.T) {
	_, err := api.NewBrowserClient(apiConfig(""), nil)
	assert.Error(t, err)

	_, err = api.NewBrowserClient(apiConfig("localhost"), nil)
	assert.Error(t, err)
}

func TestRenderPassClient_NeverReadsSession(t *testing.T) {
	srv := newEchoServer(t)
	passID := uuid.New()
	client, err := api.NewRenderPassClient(apiConfig(srv.URL), passID)
	require.NoError(t, err)

	var got echo
	require.NoError(t, client.Do(context.Background(), domain.NewRequest("/news").MustBuild(), &got))

	_, present := got.Header["Authorization"]
	assert.False(t, present)
	assert.Equal(t, passID.String(), got.Header["X-Render-Pass"])
	assert.Equal(t, passID, client.PassID())
}

func TestRenderPassClient_ExplicitAuthorization(t *testing.T) {
	srv := newEchoServer(t)
	client, err := api.NewRenderPassClient(apiConfig(srv.URL), uuid.New())
	require.NoError(t, err)

	req := domain.NewRequest("/stats").Header("Authorization", "Bearer service").MustBuild()

	var got echo
	require.NoError(t, client.Do(context.Background(), req, &got))
	assert.Equal(t, "Bearer service", got.Header["Authorization"])
}

func TestRenderPassClient_InstancesAreIndependent(t *testing.T) {
	srv := newEchoServer(t)
	first, err := api.NewRenderPassClient(apiConfig(srv.URL), uuid.New())
	require.NoError(t, err)
	second, err := api.NewRenderPassClient(apiConfig(srv.URL), uuid.New())
	require.NoError(t, err)

	var a, b echo
	require.NoError(t, first.Do(context.Background(), domain.NewRequest("/news").MustBuild(), &a))
	require.NoError(t, second.Do(context.Background(), domain.NewRequest("/news").MustBuild(), &b))

	assert.NotEqual(t, a.Header["X-Render-Pass"], b.Header["X-Render-Pass"])
}
