package cloud

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/texdrill/internal/store"
)

func TestPushThenPull(t *testing.T) {
	var stored []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/profile", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		switch r.Method {
		case http.MethodPut:
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			stored = body
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			if stored == nil {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write(stored)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	ctx := context.Background()

	// Nothing pushed yet.
	_, err := c.Pull(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	profile := &store.ProfileData{
		Version: store.CurrentVersion,
		Name:    "Ada",
		XP:      90,
		Streak:  6,
	}
	require.NoError(t, c.Push(ctx, profile))

	got, err := c.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90, got.XP)
	assert.Equal(t, 6, got.Streak)
	assert.Equal(t, "Ada", got.Name)
}

func TestPullServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	_, err := c.Pull(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestPushServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := New(server.URL, "bad-key")
	err := c.Push(context.Background(), &store.ProfileData{Version: store.CurrentVersion})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}

func TestPullDecodesFullProfile(t *testing.T) {
	profile := store.ProfileData{
		Version: store.CurrentVersion,
		XP:      30,
	}
	profile.Hearts = 2
	profile.MaxHearts = 5

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(profile))
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	got, err := c.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, got.Hearts)
	assert.Equal(t, 5, got.MaxHearts)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("TEXDRILL_SYNC_URL", "")
	t.Setenv("TEXDRILL_SYNC_KEY", "")
	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrNotConfigured)

	t.Setenv("TEXDRILL_SYNC_URL", "https://sync.example.com")
	t.Setenv("TEXDRILL_SYNC_KEY", "k")
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://sync.example.com", c.baseURL)
}
