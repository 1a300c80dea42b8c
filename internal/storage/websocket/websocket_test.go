package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewAXue/libmelee/pkg/core"
	"github.com/AndrewAXue/libmelee/pkg/streaming"
)

// testServer is a minimal viewer-server stand-in. It records every
// envelope received and acks the types listed in ackTypes.
type testServer struct {
	*httptest.Server

	mu        sync.Mutex
	envelopes []streaming.Envelope
	secrets   []string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{}
	upgrader := ws.Upgrader{}

	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.mu.Lock()
		ts.secrets = append(ts.secrets, r.URL.Query().Get("secret"))
		ts.mu.Unlock()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var env streaming.Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				continue
			}
			ts.mu.Lock()
			ts.envelopes = append(ts.envelopes, env)
			ts.mu.Unlock()

			if env.Type == streaming.TypeStartSession || env.Type == streaming.TypeEndSession {
				ack := streaming.AckMessage{Type: "ack", For: env.Type}
				raw, _ := json.Marshal(ack)
				if err := conn.WriteMessage(ws.TextMessage, raw); err != nil {
					return
				}
			}
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *testServer) wsURL() string {
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func (ts *testServer) received(msgType string) []streaming.Envelope {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	var out []streaming.Envelope
	for _, env := range ts.envelopes {
		if env.Type == msgType {
			out = append(out, env)
		}
	}
	return out
}

func (ts *testServer) waitFor(t *testing.T, msgType string, count int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(ts.received(msgType)) >= count {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d %s messages", count, msgType)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestBackend_StartSessionAcked(t *testing.T) {
	ts := newTestServer(t)
	b := New(Config{URL: ts.wsURL(), Secret: "hunter2"}, testLogger())
	require.NoError(t, b.Init())
	defer b.Close()

	meta := &core.SessionMeta{SLPVersion: "3.2.0", Stage: core.StageYoshisStory}
	require.NoError(t, b.StartSession(meta))

	envs := ts.received(streaming.TypeStartSession)
	require.Len(t, envs, 1)

	var payload streaming.StartSessionPayload
	require.NoError(t, json.Unmarshal(envs[0].Payload, &payload))
	assert.Equal(t, "3.2.0", payload.Meta.SLPVersion)
	assert.Equal(t, core.StageYoshisStory, payload.Meta.Stage)

	ts.mu.Lock()
	secrets := ts.secrets
	ts.mu.Unlock()
	require.Len(t, secrets, 1)
	assert.Equal(t, "hunter2", secrets[0])
}

func TestBackend_RecordSnapshotStreams(t *testing.T) {
	ts := newTestServer(t)
	b := New(Config{URL: ts.wsURL()}, testLogger())
	require.NoError(t, b.Init())
	defer b.Close()

	require.NoError(t, b.StartSession(&core.SessionMeta{SLPVersion: "3.2.0"}))

	game := core.NewSnapshot()
	game.Frame = 12
	require.NoError(t, b.RecordSnapshot(game))

	menu := core.NewSnapshot()
	menu.MenuScene = core.SceneCharacterSelect
	require.NoError(t, b.RecordSnapshot(menu))

	ts.waitFor(t, streaming.TypeGameFrame, 1)
	ts.waitFor(t, streaming.TypeMenuFrame, 1)

	envs := ts.received(streaming.TypeGameFrame)
	var snap core.Snapshot
	require.NoError(t, json.Unmarshal(envs[0].Payload, &snap))
	assert.Equal(t, int32(12), snap.Frame)
}

func TestBackend_EndSessionAcked(t *testing.T) {
	ts := newTestServer(t)
	b := New(Config{URL: ts.wsURL()}, testLogger())
	require.NoError(t, b.Init())
	defer b.Close()

	require.NoError(t, b.StartSession(&core.SessionMeta{}))
	require.NoError(t, b.EndSession())

	assert.Len(t, ts.received(streaming.TypeEndSession), 1)
}

func TestBackend_DialFailure(t *testing.T) {
	b := New(Config{URL: "ws://127.0.0.1:1/ws"}, testLogger())
	err := b.Init()
	require.Error(t, err)
}

func TestConnection_CloseIdempotent(t *testing.T) {
	ts := newTestServer(t)
	b := New(Config{URL: ts.wsURL()}, testLogger())
	require.NoError(t, b.Init())

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
}
