package socket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func echoServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	srv := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
		for {
			var data []byte
			if err := websocket.Message.Receive(ws, &data); err != nil {
				return
			}
			if err := websocket.Message.Send(ws, data); err != nil {
				return
			}
		}
	}))
	return srv, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWSEchoRoundTrip(t *testing.T) {
	srv, url := echoServer(t)
	defer srv.Close()

	opened := make(chan struct{})
	msgs := make(chan []byte, 1)
	w := NewWS(url, Events{
		OnOpen:    func() { close(opened) },
		OnMessage: func(data []byte) { msgs <- data },
	})
	defer w.Close()

	select {
	case <-opened:
	case <-time.After(time.Second * 2):
		t.Fatal("socket never opened")
	}
	require.NoError(t, w.Send([]byte("ping")))
	select {
	case data := <-msgs:
		assert.Equal(t, []byte("ping"), data)
	case <-time.After(time.Second * 2):
		t.Fatal("echo never arrived")
	}
}

func TestWSDialFailure(t *testing.T) {
	failed := make(chan Socket, 1)
	w := NewWS("ws://127.0.0.1:1/", Events{
		OnError: func(s Socket) { failed <- s },
	})
	defer w.Close()
	select {
	case s := <-failed:
		assert.Same(t, w, s)
	case <-time.After(time.Second * 2):
		t.Fatal("dial failure never reported")
	}
}

func TestWSRemoteClose(t *testing.T) {
	srv, url := echoServer(t)

	opened := make(chan struct{})
	dropped := make(chan Socket, 1)
	w := NewWS(url, Events{
		OnOpen:   func() { close(opened) },
		OnClosed: func(s Socket) { dropped <- s },
	})
	defer w.Close()
	<-opened
	srv.CloseClientConnections()
	select {
	case s := <-dropped:
		assert.Same(t, w, s)
	case <-time.After(time.Second * 2):
		t.Fatal("close never reported")
	}
	srv.Close()
}

func TestWSLocalCloseIsSilent(t *testing.T) {
	srv, url := echoServer(t)
	defer srv.Close()

	opened := make(chan struct{})
	var dropped bool
	w := NewWS(url, Events{
		OnOpen:   func() { close(opened) },
		OnClosed: func(Socket) { dropped = true },
	})
	<-opened
	require.NoError(t, w.Close())
	time.Sleep(time.Millisecond * 50)
	assert.False(t, dropped, "local close must not signal OnClosed")
	assert.Error(t, w.Send([]byte("late")))
}
