package ws

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_NextClientIDUnique(t *testing.T) {
	h := NewHub()

	assert.Equal(t, "client-1", h.NextClientID())
	assert.Equal(t, "client-2", h.NextClientID())
	assert.Equal(t, 2, h.Stats().Accepted)
}

func TestHub_RegisterRouteUnregister(t *testing.T) {
	h := NewHub()
	received := make(chan *ClientMessage, 1)
	disconnected := make(chan *Client, 1)
	h.OnMessage = func(cm *ClientMessage) { received <- cm }
	h.OnDisconnect = func(c *Client) { disconnected <- c }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	c := &Client{ID: "c1", Hub: h, Send: make(chan []byte, 1)}
	h.Register <- c
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	h.Incoming <- &ClientMessage{Client: c, Data: []byte(`{"type":"boost_zone"}`)}
	select {
	case cm := <-received:
		assert.Same(t, c, cm.Client)
	case <-time.After(time.Second):
		t.Fatal("message not routed")
	}

	h.Unregister <- c
	select {
	case got := <-disconnected:
		assert.Same(t, c, got)
	case <-time.After(time.Second):
		t.Fatal("disconnect not reported")
	}
	assert.Equal(t, 0, h.ClientCount())

	_, open := <-c.Send
	assert.False(t, open, "send channel should be closed on unregister")
}

func TestHub_UnregisterTwiceReportsOnce(t *testing.T) {
	h := NewHub()
	disconnected := make(chan *Client, 2)
	h.OnDisconnect = func(c *Client) { disconnected <- c }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	c := &Client{ID: "c1", Hub: h, Send: make(chan []byte, 1)}
	h.Register <- c
	h.Unregister <- c
	h.Unregister <- c

	<-disconnected
	select {
	case <-disconnected:
		t.Fatal("disconnect reported twice")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_RunStopsOnCancel(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	c := &Client{ID: "c1", Hub: h, Send: make(chan []byte, 1)}
	h.Register <- c
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	_, open := <-c.Send
	assert.False(t, open)
	assert.Equal(t, 0, h.ClientCount())
}

func TestClient_SendRawDropsWhenFull(t *testing.T) {
	c := &Client{ID: "c1", Send: make(chan []byte, 1)}

	assert.True(t, c.SendRaw([]byte("a")))
	assert.False(t, c.SendRaw([]byte("b")))
	assert.False(t, c.SendRaw([]byte("c")))
	assert.Equal(t, int64(2), c.Dropped())

	h := NewHub()
	h.Clients[c] = true
	assert.Equal(t, Stats{Clients: 1, Dropped: 2}, h.Stats())
}

func TestClient_SendAfterCloseIsDiscarded(t *testing.T) {
	c := &Client{ID: "c1", Send: make(chan []byte, 1)}
	c.closeSend()
	c.closeSend()

	assert.NotPanics(t, func() {
		assert.False(t, c.SendRaw([]byte("late")))
	})
}

func TestClient_UnregisterAfterHubStopped(t *testing.T) {
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	cancel()
	<-h.Done()

	c := &Client{ID: "c1", Hub: h, Send: make(chan []byte, 1)}
	forwarded := make(chan bool, 1)
	go func() {
		c.unregister()
		forwarded <- c.forward([]byte(`{"type":"boost_zone"}`))
	}()

	select {
	case ok := <-forwarded:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("client blocked on a stopped hub")
	}
}
