package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
)

type backend struct {
	mu    sync.Mutex
	auth  []string
	paths []string
}

func newBackend(t *testing.T) (*backend, string) {
	t.Helper()
	b := &backend{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.auth = append(b.auth, r.Header.Get("Authorization"))
		b.paths = append(b.paths, r.Method+" "+r.URL.Path)
		b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.Method + " " + r.URL.Path {
		case "POST /auth/login":
			if r.FormValue("password") != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
				return
			}
			_, _ = w.Write([]byte(`{"access_token":"jwt-abc","token_type":"bearer"}`))
		case "GET /stats":
			if r.Header.Get("Authorization") != "Bearer jwt-abc" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"new_requests_count":2,"total_dogs_count":9}`))
		case "GET /tags":
			_, _ = w.Write([]byte(`[{"id":1,"name":"calm"},{"id":2,"name":"friendly"}]`))
		case "GET /dogs":
			_, _ = w.Write([]byte(`[{"id":3,"name":"Bim","age":2,"breed":"setter","intake_date":"2024-11-02","gender":"M","tags":[]}]`))
		case "GET /news/7":
			_, _ = w.Write([]byte(`{"id":7,"title":"Open day","date":"2025-05-17T12:30:00","body":"Come along","tags":[{"id":1,"name":"events"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return b, srv.URL
}

type cli struct {
	apiURL      string
	sessionFile string
}

func newCLI(t *testing.T, apiURL string) cli {
	return cli{apiURL: apiURL, sessionFile: filepath.Join(t.TempDir(), "session.json")}
}

func (c cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--api-url", c.apiURL, "--session-file", c.sessionFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginStatsLogout(t *testing.T) {
	b, url := newBackend(t)
	c := newCLI(t, url)

	out, err := c.run(t, "login", "-u", "admin", "-p", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as admin")

	raw, err := os.ReadFile(c.sessionFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "jwt-abc")

	out, err = c.run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Dogs in shelter: 9")

	_, err = c.run(t, "logout")
	require.NoError(t, err)

	_, err = c.run(t, "stats")
	assert.True(t, domain.IsUnauthorized(err))

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, []string{"", "Bearer jwt-abc", ""}, b.auth)
}

func TestLogin_ReadsPasswordFromStdin(t *testing.T) {
	_, url := newBackend(t)
	c := newCLI(t, url)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("secret\n"))
	cmd.SetArgs([]string{"--api-url", c.apiURL, "--session-file", c.sessionFile, "login", "-u", "admin"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Signed in")
}

func TestLogin_WrongPassword(t *testing.T) {
	_, url := newBackend(t)
	c := newCLI(t, url)

	_, err := c.run(t, "login", "-u", "admin", "-p", "nope")

	assert.True(t, domain.IsUnauthorized(err))
	_, statErr := os.Stat(c.sessionFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestTags_JSON(t *testing.T) {
	_, url := newBackend(t)
	c := newCLI(t, url)

	out, err := c.run(t, "--json", "tags")
	require.NoError(t, err)

	var tags []domain.Tag
	require.NoError(t, json.Unmarshal([]byte(out), &tags))
	assert.Equal(t, []domain.Tag{{ID: 1, Name: "calm"}, {ID: 2, Name: "friendly"}}, tags)
}

func TestDogs_Table(t *testing.T) {
	_, url := newBackend(t)
	c := newCLI(t, url)

	out, err := c.run(t, "dogs")
	require.NoError(t, err)
	assert.Contains(t, out, "Bim")
	assert.Contains(t, out, "2 года")
}

func TestDogs_NotFound(t *testing.T) {
	_, url := newBackend(t)
	c := newCLI(t, url)

	_, err := c.run(t, "dogs", "999")
	assert.True(t, domain.IsNotFound(err))
}

func TestNews_Item(t *testing.T) {
	_, url := newBackend(t)
	c := newCLI(t, url)

	out, err := c.run(t, "news", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Open day")
	assert.Contains(t, out, "events")
}

func TestNews_InvalidID(t *testing.T) {
	_, url := newBackend(t)
	c := newCLI(t, url)

	_, err := c.run(t, "news", "abc")
	assert.ErrorContains(t, err, "invalid id")
}
