package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)

	a := &Client{ID: "a", Hub: hub, Send: make(chan []byte, 4)}
	b := &Client{ID: "b", Hub: hub, Send: make(chan []byte, 4)}
	require.True(t, hub.Attach(a))
	require.True(t, hub.Attach(b))

	require.NoError(t, hub.Broadcast(MessageBoardError, map[string]string{"error_kind": "source_unavailable"}))

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			var env struct {
				Type    string            `json:"type"`
				Payload map[string]string `json:"payload"`
			}
			require.NoError(t, json.Unmarshal(msg, &env))
			assert.Equal(t, MessageBoardError, env.Type)
			assert.Equal(t, "source_unavailable", env.Payload["error_kind"])
		case <-time.After(time.Second):
			t.Fatalf("клиент %s не получил сообщение", c.ID)
		}
	}

	hub.detach(a)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	_, open := <-b.Send
	assert.False(t, open, "после остановки хаба каналы клиентов закрыты")
	assert.False(t, hub.Attach(&Client{ID: "late", Send: make(chan []byte)}))
}
