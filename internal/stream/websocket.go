package stream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	ws "github.com/gorilla/websocket"
)

const recvChSize = 1024

// WebSocketSource receives the live event stream from a Slippi relay
// over a WebSocket. A single reader goroutine drains the connection
// into a buffered channel; NextChunk pulls from it.
type WebSocketSource struct {
	conn    *ws.Conn
	recvCh  chan []byte
	errCh   chan error
	polling bool

	closeOnce sync.Once
	logger    *slog.Logger
}

// DialWebSocket connects to a relay. With polling set, NextChunk
// returns immediately with (nil, nil) when no message is buffered
// instead of blocking.
func DialWebSocket(url string, polling bool, logger *slog.Logger) (*WebSocketSource, error) {
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing relay %s: %w", url, err)
	}

	s := &WebSocketSource{
		conn:    conn,
		recvCh:  make(chan []byte, recvChSize),
		errCh:   make(chan error, 1),
		polling: polling,
		logger:  logger,
	}
	go s.readLoop()
	return s, nil
}

func (s *WebSocketSource) readLoop() {
	defer close(s.recvCh)
	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if ws.IsCloseError(err, ws.CloseNormalClosure, ws.CloseGoingAway) {
				s.errCh <- io.EOF
			} else {
				s.errCh <- err
			}
			return
		}
		if msgType != ws.BinaryMessage {
			s.logger.Debug("ignoring non-binary relay message", "type", msgType)
			continue
		}
		s.recvCh <- data
	}
}

// NextChunk returns the next relay message.
func (s *WebSocketSource) NextChunk(ctx context.Context) ([]byte, error) {
	if s.polling {
		select {
		case data, ok := <-s.recvCh:
			if !ok {
				return nil, s.readErr()
			}
			return data, nil
		case err := <-s.errCh:
			return s.drainOrFail(err)
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			return nil, nil
		}
	}

	select {
	case data, ok := <-s.recvCh:
		if !ok {
			return nil, s.readErr()
		}
		return data, nil
	case err := <-s.errCh:
		return s.drainOrFail(err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// drainOrFail hands out any chunk still buffered ahead of the read
// loop's terminal error, re-queuing the error until the tail of the
// stream is delivered.
func (s *WebSocketSource) drainOrFail(err error) ([]byte, error) {
	select {
	case data, ok := <-s.recvCh:
		if ok {
			s.errCh <- err
			return data, nil
		}
	default:
	}
	return nil, err
}

// readErr reports why the read loop stopped. The error is consumed at
// most once; later calls see io.EOF.
func (s *WebSocketSource) readErr() error {
	select {
	case err := <-s.errCh:
		return err
	default:
		return io.EOF
	}
}

// Close shuts the connection down.
func (s *WebSocketSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.conn.Close()
	})
	return err
}
