package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub, snapshot []byte) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.HandleConnection(w, r, snapshot)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	return payload
}

func TestHubSnapshotOnConnect(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := dialHub(t, hub, []byte(`{"event":"products","data":[]}`))
	assert.JSONEq(t, `{"event":"products","data":[]}`, string(readFrame(t, conn)))
}

func TestHubBroadcastReachesClients(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	first := dialHub(t, hub, []byte(`["seed"]`))
	readFrame(t, first)

	hub.Broadcast(context.Background(), []byte(`["updated"]`))
	assert.Equal(t, `["updated"]`, string(readFrame(t, first)))

	// A client connecting without a fresh snapshot gets the last broadcast.
	second := dialHub(t, hub, nil)
	assert.Equal(t, `["updated"]`, string(readFrame(t, second)))
}

func TestHubClientCount(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	assert.Equal(t, 0, hub.ClientCount())

	conn := dialHub(t, hub, nil)
	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestBroadcasterFrame(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	conn := dialHub(t, hub, nil)
	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	NewBroadcaster(hub).BroadcastProducts(context.Background(), []models.Product{
		{ID: "1", Title: "Pen", Code: "P1", Price: 1.5},
	})

	var event Event
	require.NoError(t, json.Unmarshal(readFrame(t, conn), &event))
	assert.Equal(t, "products", event.Event)
	require.Len(t, event.Data, 1)
	assert.Equal(t, "Pen", event.Data[0].Title)
}
