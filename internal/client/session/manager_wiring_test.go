package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinebridge/dinebridge/internal/client/api"
	"github.com/dinebridge/dinebridge/internal/client/services"
	"github.com/dinebridge/dinebridge/internal/client/storage"
)

// tokenProxy defers the credential source to a manager constructed later,
// the way the composition root wires the client and the manager together.
type tokenProxy struct{ m *Manager }

func (p *tokenProxy) Token() (string, bool) {
	if p.m == nil {
		return "", false
	}
	return p.m.Token()
}

// wiredManager builds the full client ↔ manager loop: the API client pulls
// its credential from the manager, the manager refreshes through the API
// client, and 401 responses feed back into the manager's hook.
func wiredManager(t *testing.T, baseURL string) (*Manager, *api.Client, *storage.MemoryStore, *fakeNavigator) {
	t.Helper()

	proxy := &tokenProxy{}
	client := api.New(api.Options{
		BaseURL:         baseURL,
		Timeout:         time.Second,
		MaxRetries:      1,
		RetryDelay:      time.Millisecond,
		WithCredentials: true,
	}, proxy, nil, testLogger())

	durable := storage.NewMemoryStore()
	navigator := &fakeNavigator{}
	m := NewManager(services.NewAuthService(client), durable, storage.NewMemoryStore(), navigator, testLogger())
	proxy.m = m
	client.SetUnauthorizedHook(m.HandleUnauthorized)

	return m, client, durable, navigator
}

// The ordinary way a refresh credential dies: the refresh endpoint itself
// answers 401. The attempt must settle with a teardown rather than wedging
// on its own unauthorized hook.
func TestManager_Refresh_SettlesWhenRefreshEndpointRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	m, client, durable, navigator := wiredManager(t, srv.URL)

	require.NoError(t, durable.Set(context.Background(), storage.KeyToken, makeToken(t, time.Now().Add(time.Hour))))
	require.NoError(t, m.Restore(context.Background()))
	require.True(t, m.IsAuthenticated())

	done := make(chan error, 1)
	go func() { done <- m.Refresh(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("refresh never settled")
	}

	assert.Equal(t, StateAnonymous, m.CurrentState())
	assert.False(t, m.IsAuthenticated())
	_, ok, _ := durable.Get(context.Background(), storage.KeyToken)
	assert.False(t, ok)
	require.Len(t, navigator.calls(), 1)

	// The client's once-per-burst latch must be free again afterwards: a
	// later 401 with no credential held goes straight back to login.
	_, err := services.NewAuthService(client).Refresh(context.Background())
	require.Error(t, err)
	assert.Len(t, navigator.calls(), 2)
}
