package handlers_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spin-history-dashboard/internal/handlers"
	"spin-history-dashboard/internal/models"
)

type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWebSocketFlow(t *testing.T) {
	router, dashboard := setupRouter(t, &stubHistory{history: sampleHistory()})
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	msg := readMessage(t, conn)
	require.Equal(t, handlers.MessageDashboardUpdate, msg.Type)
	var initial models.Dashboard
	require.NoError(t, json.Unmarshal(msg.Data, &initial))
	assert.Equal(t, models.StateIdle, initial.State)
	assert.Empty(t, initial.Roster)

	require.NoError(t, conn.WriteJSON(handlers.Message{Type: handlers.MessagePing}))
	assert.Equal(t, handlers.MessagePong, readMessage(t, conn).Type)

	_, err = dashboard.Refresh(context.Background())
	require.NoError(t, err)

	msg = readMessage(t, conn)
	require.Equal(t, handlers.MessageDashboardUpdate, msg.Type)
	var updated models.Dashboard
	require.NoError(t, json.Unmarshal(msg.Data, &updated))
	assert.Equal(t, models.StateRendered, updated.State)
	require.Len(t, updated.Roster, 1)
	assert.Len(t, updated.Feed, 2)

	require.NoError(t, conn.WriteJSON(handlers.Message{Type: handlers.MessageSelectPlayer, Data: "0xA"}))
	msg = readMessage(t, conn)
	require.Equal(t, handlers.MessagePlayerDetail, msg.Type)
	var detail models.PlayerDetail
	require.NoError(t, json.Unmarshal(msg.Data, &detail))
	assert.Equal(t, "alice.eth", detail.DisplayName)
	assert.Equal(t, 2, detail.TotalBets)

	require.NoError(t, conn.WriteJSON(handlers.Message{Type: handlers.MessageSelectPlayer, Data: "0xNobody"}))
	assert.Equal(t, handlers.MessageError, readMessage(t, conn).Type)
}
