package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mDuo13/txsplain/internal/rpc/rpc_types"
	"go.uber.org/zap"
)

var ErrConnectionClosed = errors.New("websocket connection closed")

const (
	wsPingInterval = 54 * time.Second
	wsWriteWait    = 10 * time.Second
	wsMaxMessage   = 16 << 20
)

// WebSocketTransport multiplexes calls over one connection using request
// ids. The connection is dialed on first use and redialed after a failure.
type WebSocketTransport struct {
	url     string
	dialer  *websocket.Dialer
	timeout time.Duration
	logger  *zap.Logger
	nextID  atomic.Uint64

	mu   sync.Mutex
	conn *wsConnection
}

// wsConnection is one dialed socket and the calls waiting on it.
type wsConnection struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[uint64]chan rpc_types.WebSocketResponse
	err     error
	done    chan struct{}
}

func NewWebSocketTransport(url string, timeout time.Duration, logger *zap.Logger) *WebSocketTransport {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &WebSocketTransport{
		url:     url,
		dialer:  &websocket.Dialer{HandshakeTimeout: timeout},
		timeout: timeout,
		logger:  logger,
	}
}

func (t *WebSocketTransport) Call(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	wc, err := t.connection(ctx)
	if err != nil {
		return nil, err
	}

	id := t.nextID.Add(1)
	reply := make(chan rpc_types.WebSocketResponse, 1)
	if err := wc.register(id, reply); err != nil {
		return nil, err
	}
	defer wc.unregister(id)

	cmd := rpc_types.WebSocketCommand{ID: id, Command: method, Params: params}
	if err := wc.write(cmd); err != nil {
		t.drop(wc, err)
		return nil, fmt.Errorf("send %s: %w", method, err)
	}

	select {
	case resp := <-reply:
		if rpcErr := resp.Status.Err(); rpcErr != nil {
			return nil, rpcErr
		}
		return resp.Result, nil
	case <-wc.done:
		return nil, wc.failure()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// connection returns the live connection, dialing a new one if needed.
func (t *WebSocketTransport) connection(ctx context.Context) (*wsConnection, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		select {
		case <-t.conn.done:
			t.conn = nil
		default:
			return t.conn, nil
		}
	}

	conn, _, err := t.dialer.DialContext(ctx, t.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", t.url, err)
	}
	conn.SetReadLimit(wsMaxMessage)

	wc := &wsConnection{
		conn:    conn,
		pending: make(map[uint64]chan rpc_types.WebSocketResponse),
		done:    make(chan struct{}),
	}
	t.conn = wc
	t.logger.Debug("websocket connected", zap.String("url", t.url))

	go t.readLoop(wc)
	go t.pingLoop(wc)
	return wc, nil
}

func (t *WebSocketTransport) readLoop(wc *wsConnection) {
	for {
		_, message, err := wc.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				t.logger.Warn("websocket read failed", zap.Error(err))
			}
			t.drop(wc, err)
			return
		}

		var resp rpc_types.WebSocketResponse
		if err := json.Unmarshal(message, &resp); err != nil {
			t.logger.Warn("undecodable websocket message", zap.Error(err))
			continue
		}
		if resp.Type != "" && resp.Type != "response" {
			continue
		}
		wc.deliver(resp)
	}
}

func (t *WebSocketTransport) pingLoop(wc *wsConnection) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-wc.done:
			return
		case <-ticker.C:
			wc.writeMu.Lock()
			err := wc.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
			wc.writeMu.Unlock()
			if err != nil {
				t.drop(wc, err)
				return
			}
		}
	}
}

// drop fails every pending call on wc and forgets it so the next call
// redials.
func (t *WebSocketTransport) drop(wc *wsConnection, cause error) {
	t.mu.Lock()
	if t.conn == wc {
		t.conn = nil
	}
	t.mu.Unlock()
	wc.close(cause)
}

func (t *WebSocketTransport) Close() error {
	t.mu.Lock()
	wc := t.conn
	t.conn = nil
	t.mu.Unlock()

	if wc == nil {
		return nil
	}
	wc.writeMu.Lock()
	_ = wc.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(wsWriteWait))
	wc.writeMu.Unlock()
	wc.close(ErrConnectionClosed)
	return nil
}

func (wc *wsConnection) register(id uint64, reply chan rpc_types.WebSocketResponse) error {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if wc.err != nil {
		return wc.err
	}
	wc.pending[id] = reply
	return nil
}

func (wc *wsConnection) unregister(id uint64) {
	wc.mu.Lock()
	delete(wc.pending, id)
	wc.mu.Unlock()
}

func (wc *wsConnection) deliver(resp rpc_types.WebSocketResponse) {
	wc.mu.Lock()
	reply, ok := wc.pending[resp.ID]
	delete(wc.pending, resp.ID)
	wc.mu.Unlock()
	if ok {
		reply <- resp
	}
}

func (wc *wsConnection) write(cmd rpc_types.WebSocketCommand) error {
	data, err := json.Marshal(cmd)
	if err != nil {
		return err
	}
	wc.writeMu.Lock()
	defer wc.writeMu.Unlock()
	if err := wc.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return err
	}
	return wc.conn.WriteMessage(websocket.TextMessage, data)
}

func (wc *wsConnection) close(cause error) {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	if wc.err != nil {
		return
	}
	if cause == nil {
		cause = ErrConnectionClosed
	}
	wc.err = cause
	close(wc.done)
	_ = wc.conn.Close()
}

func (wc *wsConnection) failure() error {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	return fmt.Errorf("%w: %v", ErrConnectionClosed, wc.err)
}
