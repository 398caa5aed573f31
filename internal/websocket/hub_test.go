package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_FirstAndLastConnection(t *testing.T) {
	hub := NewHub()
	employee := uuid.New()

	// First socket flips the employee online.
	assert.True(t, hub.Register(employee))
	// A second tab does not.
	assert.False(t, hub.Register(employee))

	// Closing one tab keeps them online.
	assert.False(t, hub.Unregister(employee))
	// Closing the last one takes them offline.
	assert.True(t, hub.Unregister(employee))
}

func TestHub_Stats(t *testing.T) {
	hub := NewHub()
	a := uuid.New()
	b := uuid.New()

	hub.Register(a)
	hub.Register(a)
	hub.Register(b)

	stats := hub.Stats()
	assert.Equal(t, 2, stats.ConnectedEmployees)
	assert.Equal(t, int64(3), stats.TotalConnections)

	hub.Unregister(a)
	hub.Unregister(a)

	stats = hub.Stats()
	assert.Equal(t, 1, stats.ConnectedEmployees)
}

func TestHub_ConcurrentRegistrations(t *testing.T) {
	hub := NewHub()
	employee := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Register(employee)
		}()
	}
	wg.Wait()

	stats := hub.Stats()
	assert.Equal(t, 1, stats.ConnectedEmployees)
	assert.Equal(t, int64(50), stats.TotalConnections)

	for i := 0; i < 49; i++ {
		assert.False(t, hub.Unregister(employee))
	}
	assert.True(t, hub.Unregister(employee))
}

func TestPresenceHandler_StatsEndpoint(t *testing.T) {
	hub := NewHub()
	hub.Register(uuid.New())
	hub.Register(uuid.New())
	handler := NewPresenceHandler(hub, nil)

	rec := httptest.NewRecorder()
	handler.Stats(rec, httptest.NewRequest(http.MethodGet, "/ws/presence/stats", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var stats HubStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.ConnectedEmployees)
	assert.Equal(t, int64(2), stats.TotalConnections)
}
