package stream

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// relayServer pushes the given messages to every client, then closes
// the connection normally.
func relayServer(t *testing.T, messages [][2]any) *httptest.Server {
	t.Helper()

	upgrader := ws.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for _, m := range messages {
			if err := conn.WriteMessage(m[0].(int), m[1].([]byte)); err != nil {
				return
			}
		}
		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(ws.CloseMessage,
			ws.FormatCloseMessage(ws.CloseNormalClosure, ""), deadline)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSocketSource_ReceivesBinaryChunks(t *testing.T) {
	srv := relayServer(t, [][2]any{
		{ws.BinaryMessage, []byte{0x35, 0x01}},
		{ws.TextMessage, []byte("keepalive")}, // ignored
		{ws.BinaryMessage, []byte{0x38, 0x02, 0x03}},
	})

	src, err := DialWebSocket(wsURL(srv), false, slog.Default())
	require.NoError(t, err)
	defer src.Close()

	ctx := context.Background()

	chunk, err := src.NextChunk(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x35, 0x01}, chunk)

	chunk, err = src.NextChunk(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x38, 0x02, 0x03}, chunk)
}

func TestWebSocketSource_NormalCloseIsEOF(t *testing.T) {
	srv := relayServer(t, nil)

	src, err := DialWebSocket(wsURL(srv), false, slog.Default())
	require.NoError(t, err)
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for {
		chunk, err := src.NextChunk(ctx)
		if err != nil {
			assert.ErrorIs(t, err, io.EOF)
			return
		}
		require.NotNil(t, chunk)
	}
}

func TestWebSocketSource_PollingReturnsNilWhenIdle(t *testing.T) {
	upgrader := ws.Upgrader{}
	hold := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		<-hold
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(hold) })

	src, err := DialWebSocket(wsURL(srv), true, slog.Default())
	require.NoError(t, err)
	defer src.Close()

	chunk, err := src.NextChunk(context.Background())
	require.NoError(t, err)
	assert.Nil(t, chunk)
}

func TestDialWebSocket_Unreachable(t *testing.T) {
	_, err := DialWebSocket("ws://127.0.0.1:1/stream", false, slog.Default())
	assert.Error(t, err)
}

func TestWebSocketSource_DrainsBufferedTailBeforeEOF(t *testing.T) {
	// Chunks buffered when the read loop stops must come out before
	// the terminal error, even when both channels are ready.
	s := &WebSocketSource{
		recvCh: make(chan []byte, 4),
		errCh:  make(chan error, 1),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	s.recvCh <- []byte{0x38}
	s.recvCh <- []byte{0x3c}
	s.errCh <- io.EOF
	close(s.recvCh)

	ctx := context.Background()

	chunk, err := s.NextChunk(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x38}, chunk)

	chunk, err = s.NextChunk(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x3c}, chunk)

	_, err = s.NextChunk(ctx)
	assert.ErrorIs(t, err, io.EOF)
}
