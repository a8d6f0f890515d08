package domain_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestBuilder(t *testing.T) {
	t.Run("defaults to GET", func(t *testing.T) {
		d, err := domain.NewRequest("/news").Build()

		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, d.Method())
		assert.Equal(t, "/news", d.Path())
		assert.Nil(t, d.Body())
	})

	t.Run("normalizes method case", func(t *testing.T) {
		d, err := domain.NewRequest("/tags").Method("get").Build()

		require.NoError(t, err)
		assert.Equal(t, "GET", d.Method())

		d, err = domain.NewRequest("/tags/1").Method(" patch ").Build()
		require.NoError(t, err)
		assert.Equal(t, "PATCH", d.Method())
	})

	t.Run("rejects unsupported method", func(t *testing.T) {
		_, err := domain.NewRequest("/tags").Method("TRACE").Build()

		var invalid *domain.InvalidRequestError
		require.True(t, errors.As(err, &invalid))
		assert.Contains(t, invalid.Reason, "TRACE")
	})

	t.Run("rejects relative path without slash", func(t *testing.T) {
		_, err := domain.NewRequest("news").Build()
		assert.Error(t, err)
	})

	t.Run("json body sets content type", func(t *testing.T) {
		d, err := domain.NewRequest("/tags").
			Method("post").
			Header("Content-Type", "text/plain").
			JSON(domain.Tag{Name: "friendly"}).
			Build()

		require.NoError(t, err)
		assert.Equal(t, "application/json", d.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"id":0,"name":"friendly"}`, string(d.Body()))
	})

	t.Run("form body is urlencoded", func(t *testing.T) {
		d, err := domain.NewRequest("/auth/login").
			Method(http.MethodPost).
			Form(url.Values{"username": {"admin"}, "password": {"secret"}}).
			Build()

		require.NoError(t, err)
		assert.Equal(t, "application/x-www-form-urlencoded", d.Header().Get("Content-Type"))
		assert.Equal(t, "password=secret&username=admin", string(d.Body()))
	})

	t.Run("descriptor is isolated from builder and callers", func(t *testing.T) {
		body := []byte("payload")
		b := domain.NewRequest("/news").Method("POST").Header("X-Trace", "one").Body(body)
		d := b.MustBuild()

		b.Header("X-Trace", "two")
		body[0] = 'P'
		h := d.Header()
		h.Set("X-Trace", "three")
		got := d.Body()
		got[1] = 'A'

		assert.Equal(t, "one", d.Header().Get("X-Trace"))
		assert.Equal(t, "payload", string(d.Body()))
	})

	t.Run("authenticated flag", func(t *testing.T) {
		d := domain.NewRequest("/stats").Authenticated().MustBuild()
		assert.True(t, d.RequireAuth())
		assert.False(t, domain.NewRequest("/news").MustBuild().RequireAuth())
	})
}

func TestErrorHelpers(t *testing.T) {
	notFound := &domain.HTTPError{Status: http.StatusNotFound, Body: []byte(`{"detail":"not found"}`)}
	wrapped := errors.Join(errors.New("loading dog"), notFound)

	assert.True(t, domain.IsNotFound(wrapped))
	assert.False(t, domain.IsRetryable(notFound))
	assert.True(t, domain.IsRetryable(&domain.HTTPError{Status: http.StatusBadGateway}))
	assert.True(t, domain.IsRetryable(&domain.NetworkError{Err: errors.New("connection refused")}))
	assert.False(t, domain.IsRetryable(&domain.DecodeError{Err: errors.New("bad json")}))
	assert.True(t, domain.IsUnauthorized(&domain.HTTPError{Status: http.StatusUnauthorized}))
}
