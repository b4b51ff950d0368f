package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
)

// Notice is pushed to every open tab of a session when it is invalidated,
// so tabs that issued no logout themselves still reset and show a message.
type Notice struct {
	Type   string `json:"type"`
	Reason string `json:"reason,omitempty"`
}

// Notifier tracks the open websocket connections per session id and fans
// session events out to them. It only pushes; inbound frames are drained
// solely to service close/pong handling.
type Notifier struct {
	mu       sync.RWMutex
	conns    map[string]map[*conn]struct{}
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewNotifier builds the notifier.
func NewNotifier(logger *zap.Logger) *Notifier {
	return &Notifier{
		conns:  make(map[string]map[*conn]struct{}),
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin policy is enforced by the CORS layer in front.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Serve upgrades the request and keeps the connection until the client
// leaves or the session is invalidated.
func (n *Notifier) Serve(w http.ResponseWriter, r *http.Request, sessionID string) {
	socket, err := n.upgrader.Upgrade(w, r, nil)
	if err != nil {
		n.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &conn{
		sessionID: sessionID,
		ws:        socket,
		send:      make(chan []byte, 8),
		logger:    n.logger,
	}
	n.add(c)
	defer n.remove(c)

	go c.writePump()
	c.readPump()
}

// SessionInvalidated pushes the invalidation notice to every tab of the
// session and closes their connections.
func (n *Notifier) SessionInvalidated(sessionID, reason string) {
	payload, err := json.Marshal(Notice{Type: "session_invalidated", Reason: reason})
	if err != nil {
		return
	}

	n.mu.RLock()
	targets := make([]*conn, 0, len(n.conns[sessionID]))
	for c := range n.conns[sessionID] {
		targets = append(targets, c)
	}
	n.mu.RUnlock()

	for _, c := range targets {
		c.enqueue(payload)
		c.shutdown()
	}
}

func (n *Notifier) add(c *conn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conns[c.sessionID] == nil {
		n.conns[c.sessionID] = make(map[*conn]struct{})
	}
	n.conns[c.sessionID][c] = struct{}{}
}

func (n *Notifier) remove(c *conn) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if set, ok := n.conns[c.sessionID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(n.conns, c.sessionID)
		}
	}
}

type conn struct {
	sessionID string
	ws        *websocket.Conn
	send      chan []byte
	logger    *zap.Logger

	mu     sync.Mutex
	closed bool
}

func (c *conn) readPump() {
	defer func() { _ = c.ws.Close() }()
	c.ws.SetReadLimit(512)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *conn) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				_ = c.ws.Close()
				return
			}
			if err := c.write(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *conn) write(messageType int, data []byte) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(messageType, data)
}

// enqueue delivers a notice unless the conn is already shut down. A second
// invalidation for the same session can arrive while the pumps are still
// unwinding, so the closed check and the send share one critical section.
func (c *conn) enqueue(msg []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		c.logger.Warn("dropping session notice, buffer full",
			zap.String("session_id", c.sessionID))
	}
}

func (c *conn) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
